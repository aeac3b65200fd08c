package calendar

import "time"

// Gap is a maximal run of consecutive zero-commit days strictly between two
// commit days, longer than the configured threshold. Derived, read-only.
type Gap struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Days          int       `json:"days"`
	CommitsBefore int       `json:"commits_before"`
	CommitsAfter  int       `json:"commits_after"`
}

// FindGaps returns the gaps of a histogram whose length exceeds maxGapDays.
// Start and End are the commit days bracketing the run; Days counts only the
// zero days strictly between them. Leading and trailing zero runs of the
// window are not gaps: there is no bracketing activity to resume.
func FindGaps(h *Histogram, maxGapDays int) []Gap {
	var commitDays []Day
	for _, d := range h.Days() {
		if d.Count > 0 {
			commitDays = append(commitDays, d)
		}
	}
	if len(commitDays) < 2 {
		return nil
	}

	var gaps []Gap
	for i := 0; i < len(commitDays)-1; i++ {
		before := commitDays[i]
		after := commitDays[i+1]
		between := int(after.Date.Sub(before.Date).Hours()/24) - 1
		if between > maxGapDays {
			gaps = append(gaps, Gap{
				Start:         before.Date,
				End:           after.Date,
				Days:          between,
				CommitsBefore: before.Count,
				CommitsAfter:  after.Count,
			})
		}
	}
	return gaps
}
