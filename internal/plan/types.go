package plan

import (
	"fmt"
	"time"
)

// Range is an inclusive per-day commit count bound.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n lies inside the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// Bounds holds the allowed daily count ranges per day class.
type Bounds struct {
	Weekday Range `json:"weekday"`
	Weekend Range `json:"weekend"`
}

// For returns the range for the given day class.
func (b Bounds) For(weekend bool) Range {
	if weekend {
		return b.Weekend
	}
	return b.Weekday
}

// Config drives the distribution planner.
type Config struct {
	Bounds     Bounds
	MaxGapDays int
}

// Validate rejects configurations the planner cannot act on.
func (c Config) Validate() error {
	for _, r := range []Range{c.Bounds.Weekday, c.Bounds.Weekend} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("invalid bound range %s", r)
		}
	}
	if c.MaxGapDays < 1 {
		return fmt.Errorf("max gap days must be at least 1, got %d", c.MaxGapDays)
	}
	return nil
}

// DayTarget is one day of the plan: the original count and the target the
// planner settled on.
type DayTarget struct {
	Date     time.Time `json:"date"`
	Original int       `json:"original"`
	Target   int       `json:"target"`
	Weekend  bool      `json:"weekend"`
}

// BoundViolation records a day whose target fell outside its nominal range
// because conservation left no alternative. Non-fatal: surfaced, never
// silently absorbed.
type BoundViolation struct {
	Date   time.Time
	Target int
	Bound  Range
}

func (v BoundViolation) String() string {
	return fmt.Sprintf("%s: target %d outside %s", v.Date.Format("2006-01-02"), v.Target, v.Bound)
}

// Plan is the target daily distribution. Invariant: the sum of targets
// equals the sum of original counts — redistribution moves commits, it never
// invents or destroys them.
type Plan struct {
	Targets  []DayTarget
	Total    int
	Warnings []BoundViolation
}

// Workday is the time-of-day window assigned timestamps are spread across,
// to avoid every rewritten commit landing on the same second.
type Workday struct {
	StartHour int
	EndHour   int
}

// DefaultWorkday is 09:00–18:00.
var DefaultWorkday = Workday{StartHour: 9, EndHour: 18}

// Entry maps one commit to its rewritten timestamp.
type Entry struct {
	Hash string    `json:"hash"`
	Repo string    `json:"repo"`
	Old  time.Time `json:"old"`
	New  time.Time `json:"new"`
}

// Assignment is the commit→new-timestamp mapping handed to the exporter.
// Entries keep the commits' original chronological order.
type Assignment struct {
	Entries []Entry
}

// Lookup returns the entry for a hash, if assigned.
func (a *Assignment) Lookup(hash string) (Entry, bool) {
	for _, e := range a.Entries {
		if e.Hash == hash {
			return e, true
		}
	}
	return Entry{}, false
}

// InfeasiblePlanError reports input no plan can be built from: an empty
// window, or a window with nothing to redistribute.
type InfeasiblePlanError struct {
	Reason string
}

func (e *InfeasiblePlanError) Error() string {
	return "infeasible plan: " + e.Reason
}

// CountMismatchError reports disagreement between the plan's total and the
// commit pool. It indicates a planner defect, not bad input, and must abort
// the run rather than let a corrupt plan reach the rewriter.
type CountMismatchError struct {
	Planned int
	Commits int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("plan/commit count mismatch: plan wants %d commits, pool has %d", e.Planned, e.Commits)
}
