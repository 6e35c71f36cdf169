package engine

// Level is a named tier derived from the cumulative point total. Ranges
// are contiguous and non-overlapping; the last one is open-ended.
type Level struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	MinPoints int    `json:"minPoints"`
	MaxPoints *int   `json:"maxPoints"`
}

func maxPts(n int) *int { return &n }

// Levels is the static level table. Changing thresholds is a configuration
// change, not a code change.
var Levels = []Level{
	{ID: 1, Name: "Pemula Kebaikan", MinPoints: 0, MaxPoints: maxPts(300)},
	{ID: 2, Name: "Pejuang Kebaikan", MinPoints: 301, MaxPoints: maxPts(700)},
	{ID: 3, Name: "Hebat Sekali", MinPoints: 701, MaxPoints: maxPts(1200)},
	{ID: 4, Name: "Juara Ramadan", MinPoints: 1201, MaxPoints: maxPts(2000)},
	{ID: 5, Name: "Master Ramadan", MinPoints: 2001, MaxPoints: nil},
}

// LevelForPoints maps a point total to its level by interval containment.
// Totals below the first range fall back to the first level.
func LevelForPoints(points int) Level {
	for _, l := range Levels {
		if points >= l.MinPoints && (l.MaxPoints == nil || points <= *l.MaxPoints) {
			return l
		}
	}
	return Levels[0]
}

// NextLevel returns the level after the given one, or false at the top.
func NextLevel(l Level) (Level, bool) {
	for _, n := range Levels {
		if n.ID == l.ID+1 {
			return n, true
		}
	}
	return Level{}, false
}
