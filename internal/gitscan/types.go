package gitscan

import "time"

// Commit is a single commit as read from git log. Commits are never mutated
// after scanning; the planner only rewrites their timestamp in the emitted
// plan, not here.
type Commit struct {
	Hash      string
	Email     string
	Message   string
	Timestamp time.Time
	Repo      string
}

// Window is the trailing span of calendar days under analysis. Start and End
// are inclusive instants; commits outside [Start, End] are discarded.
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns a window covering the given number of days ending at
// the given instant.
func TrailingWindow(end time.Time, days int) Window {
	return Window{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the number of calendar days the window spans, inclusive of
// both endpoints.
func (w Window) Days() int {
	start := truncateToDay(w.Start)
	end := truncateToDay(w.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
