package plan

import (
	"time"

	"github.com/gitspread/gitspread/internal/gitscan"
)

// Assign maps each commit to its rewritten timestamp by walking the plan's
// days in ascending date order and popping exactly that day's target off the
// front of the commit sequence. Commits are never reordered relative to each
// other, only restamped, so the new timestamps are non-decreasing wherever
// the originals were.
//
// The commits slice must be sorted ascending by original timestamp, as the
// scanner returns it.
func Assign(commits []gitscan.Commit, p *Plan, wd Workday) (*Assignment, error) {
	if p.Total != len(commits) {
		return nil, &CountMismatchError{Planned: p.Total, Commits: len(commits)}
	}

	a := &Assignment{Entries: make([]Entry, 0, len(commits))}
	next := 0
	for _, t := range p.Targets {
		if t.Target == 0 {
			continue
		}
		for i, c := range commits[next : next+t.Target] {
			a.Entries = append(a.Entries, Entry{
				Hash: c.Hash,
				Repo: c.Repo,
				Old:  c.Timestamp,
				New:  slotTime(t.Date, wd, i, t.Target),
			})
		}
		next += t.Target
	}
	return a, nil
}

// slotTime spreads a day's commits evenly across the working-hours window:
// slot i of n gets the midpoint of the i-th of n equal slices.
func slotTime(date time.Time, wd Workday, i, n int) time.Time {
	start := date.Add(time.Duration(wd.StartHour) * time.Hour)
	span := time.Duration(wd.EndHour-wd.StartHour) * time.Hour
	slot := span / time.Duration(n)
	return start.Add(slot*time.Duration(i) + slot/2).Truncate(time.Second)
}
