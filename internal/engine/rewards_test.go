package engine

import (
	"fmt"
	"testing"
	"time"
)

var testNow = time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

func wajibDay(date string, total, done int) []Task {
	tasks := make([]Task, 0, total)
	for i := 0; i < total; i++ {
		tasks = append(tasks, Task{
			ID:        fmt.Sprintf("w%d-%s", i, date),
			Text:      fmt.Sprintf("%s Tugas %d", WajibMarker, i+1),
			Category:  CategoryWajib,
			Completed: i < done,
		})
	}
	return tasks
}

func targetTasks(date string, total, done int) []Task {
	tasks := make([]Task, 0, total)
	for i := 0; i < total; i++ {
		tasks = append(tasks, Task{
			ID:        fmt.Sprintf("t%d-%s", i, date),
			Text:      fmt.Sprintf("%s Bonus %d", TargetMarker, i+1),
			Category:  CategoryTarget,
			Completed: i < done,
		})
	}
	return tasks
}

func TestSingleDayScoring(t *testing.T) {
	history := map[string][]Task{
		"2026-02-18": append(wajibDay("2026-02-18", 10, 10), targetTasks("2026-02-18", 4, 3)...),
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.TotalPoints != 74 {
		t.Fatalf("TotalPoints=%d, want 74", st.TotalPoints)
	}
	if st.CurrentStreak != 1 || st.BestStreak != 1 {
		t.Fatalf("streak=%d best=%d, want 1/1", st.CurrentStreak, st.BestStreak)
	}

	stat := st.DailyStats["2026-02-18"]
	if stat.DailyPoints != 59 {
		t.Fatalf("DailyPoints=%d, want 59", stat.DailyPoints)
	}
	if stat.BonusPoints != 15 {
		t.Fatalf("BonusPoints=%d, want 15", stat.BonusPoints)
	}
	if !stat.IsWajibPerfect || !stat.IsTargetBonus {
		t.Fatalf("perfect=%v targetBonus=%v, want both true", stat.IsWajibPerfect, stat.IsTargetBonus)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	history := map[string][]Task{
		"2026-02-18": wajibDay("2026-02-18", 5, 5),
		"2026-02-19": wajibDay("2026-02-19", 5, 5),
		"2026-02-20": wajibDay("2026-02-20", 5, 5),
	}

	first, unlocks1, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("first Recompute: %v", err)
	}
	if len(unlocks1) == 0 {
		t.Fatalf("expected unlocks on first pass")
	}

	second, unlocks2, err := Recompute(history, first, testNow)
	if err != nil {
		t.Fatalf("second Recompute: %v", err)
	}
	if len(unlocks2) != 0 {
		t.Fatalf("second pass fired %d unlocks, want 0", len(unlocks2))
	}
	if second.TotalPoints != first.TotalPoints ||
		second.CurrentStreak != first.CurrentStreak ||
		second.BestStreak != first.BestStreak ||
		len(second.Badges) != len(first.Badges) {
		t.Fatalf("second pass diverged: %+v vs %+v", second, first)
	}
}

func TestStreakContinuityEarnsBadge(t *testing.T) {
	history := map[string][]Task{
		"2026-02-18": wajibDay("2026-02-18", 10, 7),
		"2026-02-19": wajibDay("2026-02-19", 10, 8),
		"2026-02-20": wajibDay("2026-02-20", 10, 10),
	}

	st, unlocks, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.CurrentStreak != 3 {
		t.Fatalf("CurrentStreak=%d, want 3", st.CurrentStreak)
	}
	if !st.HasBadge("streak_3") {
		t.Fatalf("expected streak_3 badge")
	}
	for _, b := range st.Badges {
		if b.ID == "streak_3" && b.EarnedAtDate != testNow.Format(DateLayout) {
			t.Fatalf("earnedAtDate=%q, want %q", b.EarnedAtDate, testNow.Format(DateLayout))
		}
	}
	found := false
	for _, u := range unlocks {
		if u.Kind == UnlockBadge {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a badge unlock event")
	}
}

func TestStreakResetBelowThreshold(t *testing.T) {
	history := map[string][]Task{
		"2026-02-18": wajibDay("2026-02-18", 10, 10),
		"2026-02-19": wajibDay("2026-02-19", 10, 6), // 60% < 70%
		"2026-02-20": wajibDay("2026-02-20", 10, 10),
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1", st.CurrentStreak)
	}
	if st.BestStreak != 1 {
		t.Fatalf("BestStreak=%d, want 1", st.BestStreak)
	}
}

func TestZeroWajibDayResetsStreak(t *testing.T) {
	history := map[string][]Task{
		"2026-02-18": wajibDay("2026-02-18", 5, 5),
		"2026-02-19": targetTasks("2026-02-19", 3, 3),
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.CurrentStreak != 0 {
		t.Fatalf("CurrentStreak=%d, want 0", st.CurrentStreak)
	}
}

func TestAbsentDayBreaksStreak(t *testing.T) {
	history := map[string][]Task{
		"2026-02-18": wajibDay("2026-02-18", 5, 5),
		"2026-02-20": wajibDay("2026-02-20", 5, 5),
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1 (gap must reset)", st.CurrentStreak)
	}
	if st.BestStreak != 1 {
		t.Fatalf("BestStreak=%d, want 1", st.BestStreak)
	}
}

func TestBadgesNeverRevoked(t *testing.T) {
	prior := State{
		Badges: []Badge{{ID: "streak_3", Title: "Pejuang Konsisten", EarnedAtDate: "2026-02-10"}},
	}
	// Current history no longer satisfies the streak_3 condition.
	history := map[string][]Task{
		"2026-02-18": wajibDay("2026-02-18", 5, 0),
	}

	st, unlocks, err := Recompute(history, prior, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if !st.HasBadge("streak_3") {
		t.Fatalf("earned badge was revoked")
	}
	for _, u := range unlocks {
		if u.Kind == UnlockBadge {
			t.Fatalf("re-fired badge unlock: %+v", u)
		}
	}
	for _, b := range st.Badges {
		if b.ID == "streak_3" && b.EarnedAtDate != "2026-02-10" {
			t.Fatalf("earnedAtDate changed to %q", b.EarnedAtDate)
		}
	}
}

func TestMultipleBadgesOnePass(t *testing.T) {
	history := map[string][]Task{}
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i).Format(DateLayout)
		history[d] = wajibDay(d, 5, 5)
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if !st.HasBadge("streak_3") || !st.HasBadge("streak_7") {
		t.Fatalf("expected both streak badges, got %+v", st.Badges)
	}
}

func TestLevelUpUnlock(t *testing.T) {
	history := map[string][]Task{}
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	// 5 perfect days of 10 wajib: 5 * (50 + 10) = 300 points, still level 1.
	for i := 0; i < 5; i++ {
		d := start.AddDate(0, 0, i).Format(DateLayout)
		history[d] = wajibDay(d, 10, 10)
	}
	st, unlocks, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.TotalPoints != 300 {
		t.Fatalf("TotalPoints=%d, want 300", st.TotalPoints)
	}
	for _, u := range unlocks {
		if u.Kind == UnlockLevel {
			t.Fatalf("unexpected level unlock at 300 points")
		}
	}

	// One more perfect day crosses the 301 boundary.
	d := start.AddDate(0, 0, 5).Format(DateLayout)
	history[d] = wajibDay(d, 10, 10)
	st2, unlocks2, err := Recompute(history, st, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st2.TotalPoints != 360 {
		t.Fatalf("TotalPoints=%d, want 360", st2.TotalPoints)
	}
	levelUp := false
	for _, u := range unlocks2 {
		if u.Kind == UnlockLevel {
			levelUp = true
		}
	}
	if !levelUp {
		t.Fatalf("expected level unlock crossing 301")
	}
}

func TestPointsMonotonicUnderCompletion(t *testing.T) {
	date := "2026-02-18"
	history := map[string][]Task{date: wajibDay(date, 10, 0)}

	prevPoints := -1
	for done := 0; done <= 10; done++ {
		tasks := wajibDay(date, 10, done)
		history[date] = tasks
		st, _, err := Recompute(history, State{}, testNow)
		if err != nil {
			t.Fatalf("Recompute(done=%d): %v", done, err)
		}
		if st.TotalPoints < prevPoints {
			t.Fatalf("points decreased: %d -> %d at done=%d", prevPoints, st.TotalPoints, done)
		}
		prevPoints = st.TotalPoints
	}
}

func TestThemeDayBadge(t *testing.T) {
	history := map[string][]Task{}
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		d := start.AddDate(0, 0, i).Format(DateLayout)
		history[d] = []Task{{
			ID:        "q-" + d,
			Text:      WajibMarker + " Baca Al-Qur’an 10 menit",
			Category:  CategoryWajib,
			Completed: true,
		}}
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if !st.HasBadge("quran_20") {
		t.Fatalf("expected quran_20 badge, got %+v", st.Badges)
	}
}

func TestExtraTasksDoNotScore(t *testing.T) {
	date := "2026-02-18"
	history := map[string][]Task{
		date: {
			{ID: "e1", Text: "Main bola sore", Category: CategoryExtra, Completed: true},
			{ID: "e2", Text: "Gambar masjid", Category: CategoryExtra, Completed: true},
		},
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if st.TotalPoints != 0 {
		t.Fatalf("TotalPoints=%d, want 0", st.TotalPoints)
	}
	stat := st.DailyStats[date]
	if stat.WajibTotal != 0 || stat.TargetTotal != 0 {
		t.Fatalf("extra tasks counted: %+v", stat)
	}
}

func TestLegacyTasksFallBackToMarkers(t *testing.T) {
	// Histories stored before the category field carried only marker text.
	date := "2026-02-18"
	history := map[string][]Task{
		date: {
			{ID: "w1", Text: WajibMarker + " Sholat Subuh", Completed: true},
			{ID: "t1", Text: TargetMarker + " Baca buku", Completed: true},
		},
	}

	st, _, err := Recompute(history, State{}, testNow)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	stat := st.DailyStats[date]
	if stat.WajibDone != 1 || stat.TargetDone != 1 {
		t.Fatalf("legacy categorization failed: %+v", stat)
	}
}

func TestValidateHistoryRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		history map[string][]Task
	}{
		{"bad date key", map[string][]Task{"18-02-2026": wajibDay("2026-02-18", 1, 0)}},
		{"missing id", map[string][]Task{"2026-02-18": {{Text: "Sholat"}}}},
		{"missing text", map[string][]Task{"2026-02-18": {{ID: "x"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Recompute(tc.history, State{}, testNow); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
