package engine

import (
	"sort"
	"strings"
	"time"
)

// Point values and thresholds for the daily scoring.
const (
	WajibPointValue      = 5
	TargetPointValue     = 3
	WajibPerfectBonus    = 10
	TargetBonusPoints    = 5
	TargetBonusThreshold = 3

	// Streak requires at least 70% of the day's wajib items done.
	streakNum   = 7
	streakDenom = 10
)

// Completed-task markers for the themed day counters. The apostrophe in the
// Qur'an marker is U+2019, matching the seeded template text.
const (
	quranMarker  = "Baca Al-Qur’an"
	helperMarker = "Bantu orang tua"
	mathMarker   = "Latihan Matika"
)

// DetectCategory classifies task text by its embedded marker. Called once
// at task creation; the category is stored on the task from then on.
func DetectCategory(text string) TaskCategory {
	switch {
	case strings.Contains(text, WajibMarker):
		return CategoryWajib
	case strings.Contains(text, TargetMarker):
		return CategoryTarget
	default:
		return CategoryExtra
	}
}

func categoryOf(t Task) TaskCategory {
	if t.Category.IsValid() {
		return t.Category
	}
	// Histories persisted before the category field was stored.
	return DetectCategory(t.Text)
}

// Recompute derives the full aggregate reward state from the checklist
// history. Pure and total over well-formed input: the same history with
// the same prior badge set always yields the same state and fires no
// duplicate unlocks.
//
// prior supplies the already-earned badges (never revoked) and the
// previous point total used for the level-up comparison. now stamps
// earnedAtDate on badges unlocked by this pass.
func Recompute(history map[string][]Task, prior State, now time.Time) (State, []Unlock, error) {
	if err := validateHistory(history); err != nil {
		return State{}, nil, err
	}

	dates := make([]string, 0, len(history))
	for d := range history {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	st := State{
		Badges:     append([]Badge(nil), prior.Badges...),
		DailyStats: make(map[string]DailyStat, len(dates)),
	}
	var c dayCounters
	var prevDate string

	for _, date := range dates {
		stat, themes := scoreDay(history[date])
		st.DailyStats[date] = stat
		st.TotalPoints += stat.DailyPoints + stat.BonusPoints

		// An absent calendar day between two entries breaks the run the
		// same way a failed day would.
		if prevDate != "" && !consecutiveDates(prevDate, date) {
			st.CurrentStreak = 0
		}
		prevDate = date

		// A day with zero wajib items fails the threshold and resets the
		// streak, as does a below-threshold day.
		if stat.WajibTotal > 0 && stat.WajibDone*streakDenom >= stat.WajibTotal*streakNum {
			st.CurrentStreak++
		} else {
			st.CurrentStreak = 0
		}
		if st.CurrentStreak > st.BestStreak {
			st.BestStreak = st.CurrentStreak
		}

		if themes.quran {
			c.QuranDays++
		}
		if themes.helper {
			c.HelperDays++
		}
		if themes.math {
			c.MathDays++
		}
		if stat.IsWajibPerfect {
			c.PerfectWajibDay++
		}
	}
	c.BestStreak = st.BestStreak

	var unlocks []Unlock

	prevLevel := LevelForPoints(prior.TotalPoints)
	newLevel := LevelForPoints(st.TotalPoints)
	if newLevel.ID > prevLevel.ID {
		unlocks = append(unlocks, Unlock{
			Kind:  UnlockLevel,
			Title: "Naik Level: " + newLevel.Name + "!",
			Desc:  "Wah hebat! Kamu semakin rajin ya 🎉",
		})
	}

	today := now.Format(DateLayout)
	for _, rule := range badgeRules {
		if st.HasBadge(rule.Badge.ID) || !rule.Earned(c) {
			continue
		}
		earned := rule.Badge
		earned.EarnedAtDate = today
		st.Badges = append(st.Badges, earned)
		unlocks = append(unlocks, Unlock{
			Kind:  UnlockBadge,
			Title: "Badge Baru: " + earned.Title + "!",
			Desc:  earned.Desc,
		})
	}

	return st, unlocks, nil
}

// consecutiveDates reports whether b is the calendar day right after a.
// Both arguments are valid DateLayout strings by the time this runs.
func consecutiveDates(a, b string) bool {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return false
	}
	return ta.AddDate(0, 0, 1).Format(DateLayout) == b
}

type themeHits struct {
	quran  bool
	helper bool
	math   bool
}

// scoreDay computes the daily stat for one checklist. Extra (unmarked)
// tasks stay out of both counts but still feed the theme markers.
func scoreDay(tasks []Task) (DailyStat, themeHits) {
	var stat DailyStat
	var themes themeHits

	for _, t := range tasks {
		switch categoryOf(t) {
		case CategoryWajib:
			stat.WajibTotal++
			if t.Completed {
				stat.WajibDone++
			}
		case CategoryTarget:
			stat.TargetTotal++
			if t.Completed {
				stat.TargetDone++
			}
		}
		if t.Completed {
			if strings.Contains(t.Text, quranMarker) {
				themes.quran = true
			}
			if strings.Contains(t.Text, helperMarker) {
				themes.helper = true
			}
			if strings.Contains(t.Text, mathMarker) {
				themes.math = true
			}
		}
	}

	stat.IsWajibPerfect = stat.WajibTotal > 0 && stat.WajibDone == stat.WajibTotal
	stat.IsTargetBonus = stat.TargetDone >= TargetBonusThreshold
	stat.DailyPoints = stat.WajibDone*WajibPointValue + stat.TargetDone*TargetPointValue
	if stat.IsWajibPerfect {
		stat.BonusPoints += WajibPerfectBonus
	}
	if stat.IsTargetBonus {
		stat.BonusPoints += TargetBonusPoints
	}
	return stat, themes
}

func validateHistory(history map[string][]Task) error {
	for date, tasks := range history {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return ValidationError{Date: date, Reason: "date key must be YYYY-MM-DD"}
		}
		for _, t := range tasks {
			if strings.TrimSpace(t.ID) == "" {
				return ValidationError{Date: date, Reason: "task missing id"}
			}
			if strings.TrimSpace(t.Text) == "" {
				return ValidationError{Date: date, Reason: "task " + t.ID + " missing text"}
			}
		}
	}
	return nil
}
