package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
)

func TestRenderCertificate(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCertificate(&buf, CertificateData{
		Student:    engine.Profile{Name: "Aisyah", Grade: engine.GradeK5, School: "SDN 1 Bandung"},
		Points:     740,
		LevelName:  "Hebat Sekali",
		Streak:     12,
		BestStreak: 15,
		Badges: []engine.Badge{
			{ID: "streak_3", Title: "Pejuang Konsisten", Icon: "🏅"},
		},
		Motivation: engine.MotivationForGrade(engine.GradeK5),
	})
	if err != nil {
		t.Fatalf("RenderCertificate: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"KARTU PRESTASI RAMADAN",
		"Aisyah",
		"Kelas 5",
		"SDN 1 Bandung",
		"740",
		"Hebat Sekali",
		"Pejuang Konsisten",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("certificate missing %q", want)
		}
	}
}

func TestRenderCertificateNoBadges(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCertificate(&buf, CertificateData{
		Student:   engine.Profile{Name: "Budi", Grade: engine.GradeK4},
		LevelName: "Pemula Kebaikan",
	})
	if err != nil {
		t.Fatalf("RenderCertificate: %v", err)
	}
	if !strings.Contains(buf.String(), "Belum ada badge") {
		t.Fatalf("empty badge set should render the placeholder")
	}
}

func TestRenderReport(t *testing.T) {
	rows := []engine.ReportRow{
		{DayNum: 1, Date: "2026-02-18", HasStat: true, Stat: engine.DailyStat{
			WajibDone: 10, WajibTotal: 10, TargetDone: 3, TargetTotal: 4,
			DailyPoints: 59, BonusPoints: 15, IsWajibPerfect: true,
		}},
		{DayNum: 2, Date: "2026-02-19"},
	}

	var buf bytes.Buffer
	err := RenderReport(&buf, ReportData{
		Student:   engine.Profile{Name: "Aisyah", Grade: engine.GradeK5},
		Points:    74,
		Streak:    1,
		LevelName: "Pemula Kebaikan",
		StartDate: "2026-02-18",
		Rows:      rows,
	})
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"LAPORAN PROGRES RAMADAN",
		"Aisyah",
		"2026-02-18",
		"10/10",
		"3/4",
		"+74", // 59 base + 15 bonus summed per row
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("report missing %q", want)
		}
	}
	if !strings.Contains(html, "Ramadan 2") {
		t.Fatalf("report missing the empty day row")
	}
}
