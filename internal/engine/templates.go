package engine

import (
	"strings"
	"time"
)

// wajibBase is the fixed daily obligation list seeded for every date.
var wajibBase = []struct {
	Title string
	Note  string
}{
	{"Sahur (niat & makan cukup)", "minum air ya"},
	{"Sholat Subuh", ""},
	{"Dzikir / Doa pagi (3–5 menit)", "pelan saja"},
	{"Sholat Dzuhur", ""},
	{"Sholat Ashar", ""},
	{"Baca Al-Qur’an 10 menit", "1–2 halaman boleh"},
	{"Sholat Maghrib", ""},
	{"Sholat Isya", ""},
	{"Tarawih (semampunya)", "di rumah/masjid"},
	{"Kebaikan kecil hari ini", "senyum, bantu, sopan"},
}

// mathPlaceholder in a target entry is replaced with the grade-specific
// practice target at seeding time.
const mathPlaceholder = "Latihan Matika (auto by kelas)"

// dailyTargets is the 30-entry bonus cycle, indexed by Ramadan day 1-30.
var dailyTargets = [30][]string{
	{"Tulis 3 hal yang kamu syukuri hari ini", "Bantu orang tua 1 tugas kecil", mathPlaceholder, "Baca kisah nabi 5 menit"},
	{"Hafal 1 doa pendek", "Rapikan meja belajar", mathPlaceholder, "Tidak marah hari ini (latihan sabar)"},
	{"Sedekah: uang/barang/kebaikan", "Baca buku 10 menit", mathPlaceholder, "Tidur lebih awal (sebelum 22.00)"},
	{"Latihan menulis rapi 5 menit", "Bantu adik/kakak belajar 5 menit", mathPlaceholder, "Jalan santai 10 menit (sehat)"},
	{"Hafal 1 ayat pendek", "Jaga lisan (tidak berkata kasar)", mathPlaceholder, "Siapkan baju/alat sekolah besok"},
	{"Bersihkan kamar 10 menit", "Baca Al-Qur’an +5 menit (bonus)", mathPlaceholder, "Tolong tetangga/teman (kebaikan)"},
	{"Catat 1 rumus praktis hari ini", mathPlaceholder, "Review 1 kesalahan (kelas 6 wajib)", "Tulis 1 target besok"},
	{"Hafal 1 hadits pendek (atau 1 pesan baik)", "Bantu siapkan berbuka", mathPlaceholder, "No gadget 30 menit (tantangan)"},
	{"Baca buku cerita islami 10 menit", "Rapikan tas sekolah", mathPlaceholder, "Minum air cukup saat berbuka"},
	{"Tulis surat kecil untuk orang tua (terima kasih)", mathPlaceholder, "Latihan fokus 10 menit (tanpa distraksi)", "Senyum & salam lebih sering"},
	{"Hafal 1 doa berbuka/puasa", "Bantu cuci piring 5 menit", mathPlaceholder, "Olahraga ringan 10 menit"},
	{"Baca Al-Qur’an +5 menit (bonus)", "Tidak mengeluh hari ini (tantangan)", mathPlaceholder, "Tulis 1 hal baik yang kamu lakukan"},
	{"Hafal 1 ayat pendek", "Bantu beres-beres rumah 10 menit", mathPlaceholder, "Siapkan jadwal belajar besok"},
	{"Catat 1 materi yang masih bingung", mathPlaceholder, "Tanya Kak Chat Matika 1 pertanyaan", "Tidur lebih awal"},
	{"Sedekah / berbagi makanan", "Baca kisah sahabat nabi 5 menit", mathPlaceholder, "Jaga emosi (tarik napas 3x kalau kesal)"},
	{"Bantu adik/kakak 1 hal", "Rapikan lemari/buku 10 menit", mathPlaceholder, "No gadget 30 menit"},
	{"Catat 1 rumus praktis baru", mathPlaceholder, "Review 1 soal salah (kelas 5–6)", "Tulis 1 target minggu ini"},
	{"Hafal 1 doa pendek", "Bantu siapkan sahur", mathPlaceholder, "Baca buku 10 menit"},
	{"Baca Al-Qur’an +5 menit (bonus)", "Tidak berkata kasar (tantangan)", mathPlaceholder, "Minum air cukup saat berbuka"},
	{"Tulis 3 hal yang kamu syukuri", "Bersihkan meja belajar", mathPlaceholder, "Olahraga ringan 10 menit"},
	{"Hafal 1 ayat pendek", "Bantu orang tua 1 tugas", mathPlaceholder, "Tulis 1 pelajaran hari ini"},
	{"Sedekah (apa saja)", "Baca kisah nabi 5 menit", mathPlaceholder, "No gadget 30 menit"},
	{"Catat 1 materi yang mau diulang", mathPlaceholder, "Tanya Kak Chat Matika 1 hal", "Tidur lebih awal"},
	{"Bantu siapkan berbuka", "Baca Al-Qur’an +5 menit (bonus)", mathPlaceholder, "Jaga sabar (tidak marah)"},
	{"Hafal 1 doa pendek", "Bersihkan kamar 10 menit", mathPlaceholder, "Baca buku 10 menit"},
	{"Catat 1 rumus praktis favorit", mathPlaceholder, "Review 1 soal salah (kelas 5–6)", "Tulis target besok"},
	{"Sedekah / berbagi kebaikan", "Bantu orang tua 1 tugas", mathPlaceholder, "No gadget 30 menit"},
	{"Baca Al-Qur’an +5 menit (bonus)", "Tulis 3 hal syukur", mathPlaceholder, "Olahraga ringan 10 menit"},
	{"Hafal 1 ayat/doa pendek", "Rapikan tas/buku sekolah", mathPlaceholder, "Siapkan rencana setelah Ramadan"},
	{"Tulis pencapaian Ramadan (3 hal)", "Minta maaf & maafkan orang lain", mathPlaceholder, "Rayakan dengan bersyukur 😊"},
}

// MathTargetForGrade returns the grade-specific daily math practice target.
func MathTargetForGrade(g Grade) string {
	switch g {
	case GradeK4:
		return "Latihan Matika: 5 soal PG"
	case GradeK5:
		return "Latihan Matika: 10 soal PG"
	default:
		return "Latihan Matika: 15 soal PG + bahas 1 soal salah"
	}
}

// MotivationForGrade is the flavor line printed on certificates.
func MotivationForGrade(g Grade) string {
	switch g {
	case GradeK4:
		return "Hebat! Kamu rajin dan berani mencoba 🌟"
	case GradeK5:
		return "Keren! Kamu makin disiplin, lanjutkan ya 🔥"
	default:
		return "Luar biasa! Kamu makin siap dan percaya diri 💪"
	}
}

// DayNumber returns the 1-based Ramadan day for a calendar date given the
// configured start, or 0 when the date falls outside days 1-30.
func DayNumber(date string, cfg RamadanConfig) int {
	start, err := time.Parse(DateLayout, cfg.StartDate)
	if err != nil {
		return 0
	}
	cur, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	n := int(cur.Sub(start).Hours()/24) + 1
	if n < 1 || n > 30 {
		return 0
	}
	return n
}

// DayPlan builds the default checklist template for a date: the wajib base
// plus the target cycle entry for the day's offset from the configured
// start. Out-of-range dates fall back to day 1's targets.
func DayPlan(date string, cfg RamadanConfig, grade Grade) []Task {
	dayIdx := DayNumber(date, cfg)
	if dayIdx == 0 {
		dayIdx = 1
	}
	if !grade.IsValid() {
		grade = DefaultGrade
	}
	mathTarget := MathTargetForGrade(grade)

	tasks := make([]Task, 0, len(wajibBase)+len(dailyTargets[dayIdx-1]))
	for _, w := range wajibBase {
		text := WajibMarker + " " + w.Title
		if w.Note != "" {
			text += " (" + w.Note + ")"
		}
		tasks = append(tasks, Task{
			ID:       "wajib-" + w.Title + "-" + date,
			Text:     text,
			Category: CategoryWajib,
		})
	}
	for _, raw := range dailyTargets[dayIdx-1] {
		text := TargetMarker + " " + strings.ReplaceAll(raw, mathPlaceholder, mathTarget)
		tasks = append(tasks, Task{
			ID:       "target-" + raw + "-" + date,
			Text:     text,
			Category: CategoryTarget,
		})
	}
	return tasks
}
