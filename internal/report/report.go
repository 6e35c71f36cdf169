// Package report renders the printable documents: the achievement card
// (KARTU PRESTASI RAMADAN) and the 30-day progress report for parents.
package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
)

const appBrand = "GassPoll Matika • by Kak Mus"

// CertificateData fills the achievement card.
type CertificateData struct {
	Student    engine.Profile
	Points     int
	LevelName  string
	Streak     int
	BestStreak int
	Badges     []engine.Badge
	Motivation string
}

// ReportData fills the 30-day progress report.
type ReportData struct {
	Student   engine.Profile
	Points    int
	Streak    int
	LevelName string
	StartDate string
	Rows      []engine.ReportRow
}

var certificateTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>KARTU PRESTASI RAMADAN</title>
<style>
body { font-family: Arial, sans-serif; background: #fff; color: #1f2937; margin: 2rem; }
.card { max-width: 720px; margin: 0 auto; border: 3px solid #9d76f2; border-radius: 24px; padding: 2.5rem; text-align: center; }
h1 { color: #6d28d9; margin-bottom: 0; }
.brand { color: #9ca3af; font-size: 0.8rem; letter-spacing: 0.2em; text-transform: uppercase; }
.student { font-size: 1.5rem; font-weight: bold; margin: 1.5rem 0 0.25rem; }
.meta { color: #6b7280; font-size: 0.9rem; }
.stats { display: flex; justify-content: center; gap: 2.5rem; margin: 2rem 0; }
.stats div { text-align: center; }
.stats .num { font-size: 2rem; font-weight: 900; }
.badges { margin: 1.5rem 0; }
.badge { display: inline-block; margin: 0.3rem; padding: 0.5rem 0.9rem; border: 1px solid #e5e7eb; border-radius: 16px; font-size: 0.85rem; }
.motivation { font-style: italic; color: #7c3aed; margin-top: 1.5rem; }
</style>
</head>
<body>
<div class="card">
  <p class="brand">{{.Brand}}</p>
  <h1>🏆 KARTU PRESTASI RAMADAN</h1>
  <p class="student">{{.Data.Student.Name}}</p>
  <p class="meta">Kelas {{.Data.Student.Grade}}{{with .Data.Student.School}} • {{.}}{{end}}{{with .Data.Student.City}} • {{.}}{{end}}</p>
  <div class="stats">
    <div><div class="num">{{.Data.Points}}</div><div>Total Poin</div></div>
    <div><div class="num">{{.Data.Streak}}</div><div>Streak (rekor {{.Data.BestStreak}})</div></div>
    <div><div class="num">{{.Data.LevelName}}</div><div>Level</div></div>
  </div>
  <div class="badges">
    {{range .Data.Badges}}<span class="badge">{{.Icon}} {{.Title}}</span>{{else}}<span class="meta">Belum ada badge — semangat terus!</span>{{end}}
  </div>
  <p class="motivation">{{.Data.Motivation}}</p>
</div>
</body>
</html>
`))

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>LAPORAN PROGRES RAMADAN</title>
<style>
body { font-family: Arial, sans-serif; background: #fff; color: #1f2937; margin: 2rem; }
h1 { color: #15803d; }
.brand { color: #9ca3af; font-size: 0.8rem; letter-spacing: 0.2em; text-transform: uppercase; }
.summary { display: flex; gap: 2rem; margin: 1.5rem 0; }
table { border-collapse: collapse; width: 100%; font-size: 0.9rem; }
th, td { border: 1px solid #e5e7eb; padding: 0.5rem 0.75rem; text-align: center; }
th { background: #f9fafb; text-transform: uppercase; font-size: 0.7rem; letter-spacing: 0.1em; color: #6b7280; }
tr.perfect { background: #f0fdf4; }
</style>
</head>
<body>
<p class="brand">{{.Brand}}</p>
<h1>📋 LAPORAN PROGRES RAMADAN</h1>
<p>{{.Data.Student.Name}} — Kelas {{.Data.Student.Grade}}{{with .Data.Student.School}} • {{.}}{{end}}</p>
<p>1 Ramadan: {{.Data.StartDate}}</p>
<div class="summary">
  <div><strong>{{.Data.Points}}</strong> Poin Terkumpul</div>
  <div><strong>{{.Data.Streak}} Hari</strong> Streak Aktif</div>
  <div><strong>{{.Data.LevelName}}</strong> Level Saat Ini</div>
</div>
<table>
  <thead>
    <tr><th>Hari</th><th>Tanggal</th><th>Wajib</th><th>Target</th><th>Poin</th><th>Perfect?</th></tr>
  </thead>
  <tbody>
    {{range .Data.Rows}}
    <tr{{if .Stat.IsWajibPerfect}} class="perfect"{{end}}>
      <td>Ramadan {{.DayNum}}</td>
      <td>{{.Date}}</td>
      {{if .HasStat}}
      <td>{{.Stat.WajibDone}}/{{.Stat.WajibTotal}}</td>
      <td>{{.Stat.TargetDone}}/{{.Stat.TargetTotal}}</td>
      <td>+{{add .Stat.DailyPoints .Stat.BonusPoints}}</td>
      <td>{{if .Stat.IsWajibPerfect}}✅{{else}}-{{end}}</td>
      {{else}}
      <td>---</td><td>---</td><td>---</td><td>-</td>
      {{end}}
    </tr>
    {{end}}
  </tbody>
</table>
</body>
</html>
`))

// RenderCertificate writes the achievement card HTML.
func RenderCertificate(w io.Writer, d CertificateData) error {
	if err := certificateTmpl.Execute(w, struct {
		Brand string
		Data  CertificateData
	}{Brand: appBrand, Data: d}); err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}
	return nil
}

// RenderReport writes the 30-day progress report HTML.
func RenderReport(w io.Writer, d ReportData) error {
	if err := reportTmpl.Execute(w, struct {
		Brand string
		Data  ReportData
	}{Brand: appBrand, Data: d}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
