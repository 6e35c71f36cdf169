package engine

// dayCounters accumulates the per-history tallies the badge predicates
// look at. Filled by one full recomputation pass.
type dayCounters struct {
	BestStreak      int
	QuranDays       int
	HelperDays      int
	MathDays        int
	PerfectWajibDay int
}

type badgeRule struct {
	Badge  Badge
	Earned func(c dayCounters) bool
}

// badgeRules is the static badge catalog with its unlock predicates,
// checked in this fixed order on every recomputation. A badge fires at
// most once; several may fire in the same pass.
var badgeRules = []badgeRule{
	{
		Badge:  Badge{ID: "streak_3", Title: "Pejuang Konsisten", Icon: "🏅", Desc: "3 hari berturut-turut WAJIB rapi!"},
		Earned: func(c dayCounters) bool { return c.BestStreak >= 3 },
	},
	{
		Badge:  Badge{ID: "streak_7", Title: "Super Semangat", Icon: "🔥", Desc: "7 hari berturut-turut WAJIB rapi!"},
		Earned: func(c dayCounters) bool { return c.BestStreak >= 7 },
	},
	{
		Badge:  Badge{ID: "streak_15", Title: "Calon Juara", Icon: "🌙", Desc: "15 hari berturut-turut WAJIB rapi!"},
		Earned: func(c dayCounters) bool { return c.BestStreak >= 15 },
	},
	{
		Badge:  Badge{ID: "streak_30", Title: "Master Ramadan", Icon: "👑", Desc: "30 hari penuh perjuangan hebat!"},
		Earned: func(c dayCounters) bool { return c.BestStreak >= 30 },
	},
	{
		Badge:  Badge{ID: "quran_20", Title: "Sahabat Qur’an", Icon: "📖", Desc: "Baca Al-Qur’an minimal 20 hari."},
		Earned: func(c dayCounters) bool { return c.QuranDays >= 20 },
	},
	{
		Badge:  Badge{ID: "helper_15", Title: "Anak Penolong", Icon: "🤝", Desc: "Bantu orang tua minimal 15 hari."},
		Earned: func(c dayCounters) bool { return c.HelperDays >= 15 },
	},
	{
		Badge:  Badge{ID: "math_20", Title: "Pejuang Matika", Icon: "🧮", Desc: "Latihan Matematika minimal 20 hari."},
		Earned: func(c dayCounters) bool { return c.MathDays >= 20 },
	},
	{
		Badge:  Badge{ID: "wajib_10", Title: "Disiplin Hebat", Icon: "⭐", Desc: "WAJIB 100% selesai selama 10 hari."},
		Earned: func(c dayCounters) bool { return c.PerfectWajibDay >= 10 },
	},
}

// BadgeCatalog returns the full badge metadata list, unearned.
func BadgeCatalog() []Badge {
	out := make([]Badge, 0, len(badgeRules))
	for _, r := range badgeRules {
		out = append(out, r.Badge)
	}
	return out
}
