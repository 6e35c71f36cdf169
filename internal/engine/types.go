package engine

// DateLayout is the key format for the checklist history. Lexicographic
// order on these keys equals chronological order, which the recomputation
// relies on.
const DateLayout = "2006-01-02"

// TaskCategory classifies a checklist item. It is assigned once when the
// task is created, from the marker embedded in the visible text.
type TaskCategory string

const (
	// CategoryWajib is a fixed daily obligation. Drives streak eligibility
	// and the perfect-day bonus.
	CategoryWajib TaskCategory = "wajib"
	// CategoryTarget is an optional daily extra. Smaller per-task points
	// plus a flat bonus once three or more are done.
	CategoryTarget TaskCategory = "target"
	// CategoryExtra is a freeform item added by the user. Visible on the
	// checklist but excluded from all counts and points.
	CategoryExtra TaskCategory = "extra"
)

func (c TaskCategory) IsValid() bool {
	switch c {
	case CategoryWajib, CategoryTarget, CategoryExtra:
		return true
	default:
		return false
	}
}

// Markers embedded in task text. They stay in the description so printed
// checklists look the same as on screen.
const (
	WajibMarker  = "[WAJIB]"
	TargetMarker = "[TARGET]"
)

// Task is one completable item on a day's checklist.
type Task struct {
	ID        string       `json:"id"`
	Text      string       `json:"task"`
	Category  TaskCategory `json:"category,omitempty"`
	Completed bool         `json:"completed"`
}

// DailyStat is derived from one day's checklist. Never hand-edited; fully
// rebuilt on every recomputation.
type DailyStat struct {
	WajibDone      int  `json:"wajibDone"`
	WajibTotal     int  `json:"wajibTotal"`
	TargetDone     int  `json:"targetDone"`
	TargetTotal    int  `json:"targetTotal"`
	DailyPoints    int  `json:"dailyPoints"`
	BonusPoints    int  `json:"bonusPoints"`
	IsWajibPerfect bool `json:"isWajibPerfect"`
	IsTargetBonus  bool `json:"isTargetBonus"`
}

// Badge is a permanent, one-time unlock. EarnedAtDate is stamped with the
// date of the recomputation that unlocked it.
type Badge struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	Desc         string `json:"desc"`
	EarnedAtDate string `json:"earnedAtDate,omitempty"`
}

// State is the aggregate reward state. It is a cache: fully rederivable
// from the checklist history plus the already-earned badge set.
type State struct {
	TotalPoints   int                  `json:"points"`
	CurrentStreak int                  `json:"streak"`
	BestStreak    int                  `json:"bestStreak"`
	Badges        []Badge              `json:"badges"`
	DailyStats    map[string]DailyStat `json:"stats"`
}

// HasBadge reports whether the badge id is already in the earned set.
func (s State) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

type UnlockKind string

const (
	UnlockLevel UnlockKind = "level"
	UnlockBadge UnlockKind = "badge"
)

// Unlock is a one-shot notification produced by a recomputation: a level-up
// or a newly earned badge. All unlocks from one pass are queued in order;
// none are dropped.
type Unlock struct {
	Kind  UnlockKind
	Title string
	Desc  string
}

// Grade is the student's school grade (Indonesian SD, kelas 4-6).
type Grade string

const (
	GradeK4 Grade = "4"
	GradeK5 Grade = "5"
	GradeK6 Grade = "6"
)

func (g Grade) IsValid() bool {
	switch g {
	case GradeK4, GradeK5, GradeK6:
		return true
	default:
		return false
	}
}

// DefaultGrade is used when the profile has no valid grade yet.
const DefaultGrade = GradeK4

// StartMode records how the first day of Ramadan was decided.
type StartMode string

const (
	StartModePemerintah StartMode = "Pemerintah"
	StartModeOrtu       StartMode = "Ortu"
	StartModeCustom     StartMode = "Custom"
)

func (m StartMode) IsValid() bool {
	switch m {
	case StartModePemerintah, StartModeOrtu, StartModeCustom:
		return true
	default:
		return false
	}
}

// RamadanConfig controls which day of the 30-day template cycle applies to
// a calendar date. It does not affect the point math.
type RamadanConfig struct {
	StartDate string    `json:"startDate"`
	StartMode StartMode `json:"startMode"`
}

// Profile is the student identity printed on certificates and reports.
type Profile struct {
	Name   string `json:"name"`
	Grade  Grade  `json:"grade"`
	School string `json:"school"`
	City   string `json:"city"`
}
