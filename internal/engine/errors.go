package engine

import "fmt"

// ValidationError reports malformed history input. The recomputation fails
// as a whole and the caller must keep the previous aggregate state.
type ValidationError struct {
	Date   string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("invalid history: %s", e.Reason)
	}
	return fmt.Sprintf("invalid history entry %q: %s", e.Date, e.Reason)
}
