package plan

import (
	"math/rand"
	"time"

	"github.com/gitspread/gitspread/internal/calendar"
)

// Build produces the target daily distribution for a histogram.
//
// The per-day ranges are a soft target: seeding draws each day's desired
// count from its weekday/weekend range, then a greedy reconciliation pass
// walks the total back to the original commit count, since conservation is
// the one constraint that cannot bend. Days pushed outside their nominal
// range by reconciliation are reported as warnings on the plan.
func Build(h *calendar.Histogram, cfg Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	days := h.Days()
	if len(days) == 0 {
		return nil, &InfeasiblePlanError{Reason: "analysis window contains no days"}
	}

	total := h.Total()
	if total == 0 {
		return nil, &InfeasiblePlanError{Reason: "no commits in window, nothing to redistribute"}
	}

	targets := make([]DayTarget, len(days))
	for i, d := range days {
		targets[i] = DayTarget{
			Date:     d.Date,
			Original: d.Count,
			Weekend:  d.Weekend(),
		}
	}

	// A distribution already inside every bound with no oversized gap is
	// left untouched.
	if satisfied(targets, h, cfg) {
		for i := range targets {
			targets[i].Target = targets[i].Original
		}
		return &Plan{Targets: targets, Total: total}, nil
	}

	seed(targets, cfg.Bounds)
	fillers := fillGaps(targets, cfg)
	reconcile(targets, total-plannedTotal(targets), cfg.Bounds, fillers)

	p := &Plan{Targets: targets, Total: plannedTotal(targets)}
	for _, t := range targets {
		if r := cfg.Bounds.For(t.Weekend); !r.Contains(t.Target) {
			p.Warnings = append(p.Warnings, BoundViolation{Date: t.Date, Target: t.Target, Bound: r})
		}
	}
	return p, nil
}

// satisfied reports whether the original distribution already meets every
// per-day bound and contains no gap longer than the threshold.
func satisfied(targets []DayTarget, h *calendar.Histogram, cfg Config) bool {
	for _, t := range targets {
		if !cfg.Bounds.For(t.Weekend).Contains(t.Original) {
			return false
		}
	}
	return len(calendar.FindGaps(h, cfg.MaxGapDays)) == 0
}

// seed draws every day's desired count uniformly from its allowed range.
// The generator is seeded from the date itself so a given window always
// seeds the same shape, run after run.
func seed(targets []DayTarget, bounds Bounds) {
	for i := range targets {
		r := bounds.For(targets[i].Weekend)
		rng := rand.New(rand.NewSource(dateSeed(targets[i].Date)))
		targets[i].Target = r.Min + rng.Intn(r.Max-r.Min+1)
	}
}

func dateSeed(date time.Time) int64 {
	y, m, d := date.Date()
	return int64(y*10000 + int(m)*100 + d)
}

// fillGaps enforces the gap rule on the seeded targets: every maximal run of
// days that were originally silent or seeded to zero, longer than
// MaxGapDays, must end up with at least one non-zero day. The midpoint of
// the run is the designated filler (the earlier middle day when the run
// length is even). Returns the filler day indexes so reconciliation can
// protect them when supply runs short.
func fillGaps(targets []DayTarget, cfg Config) map[int]bool {
	fillers := make(map[int]bool)

	inRun := func(i int) bool {
		return targets[i].Original == 0 || targets[i].Target == 0
	}

	runStart := -1
	flush := func(end int) { // end is one past the last run index
		if runStart < 0 {
			return
		}
		start := runStart
		runStart = -1
		if end-start <= cfg.MaxGapDays {
			return
		}

		mid := start + (end-start-1)/2
		fillers[mid] = true
		if targets[mid].Target == 0 {
			r := cfg.Bounds.For(targets[mid].Weekend)
			targets[mid].Target = max(r.Min, 1)
		}
	}

	for i := range targets {
		if inRun(i) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i)
	}
	flush(len(targets))

	return fillers
}

// reconcile walks delta back to zero one unit at a time, always adjusting
// the day with the most slack toward its bound, earliest date breaking ties.
// When every day sits at a bound and delta is still non-zero, bounds give
// way: conservation wins, and the overflow lands on the least-damaged day.
// Designated gap fillers are drained last so gaps stay closed as long as the
// commit supply allows.
func reconcile(targets []DayTarget, delta int, bounds Bounds, fillers map[int]bool) {
	for delta > 0 {
		i := pickIncrement(targets, bounds)
		targets[i].Target++
		delta--
	}
	for delta < 0 {
		i := pickDecrement(targets, bounds, fillers)
		if i < 0 {
			return // every target at zero; nothing left to take
		}
		targets[i].Target--
		delta++
	}
}

func pickIncrement(targets []DayTarget, bounds Bounds) int {
	best, bestSlack := -1, 0
	for i, t := range targets {
		if slack := bounds.For(t.Weekend).Max - t.Target; slack > bestSlack {
			best, bestSlack = i, slack
		}
	}
	if best >= 0 {
		return best
	}
	// Forced above bounds: stack on the lowest target, earliest first.
	best = 0
	for i, t := range targets {
		if t.Target < targets[best].Target {
			best = i
		}
	}
	return best
}

func pickDecrement(targets []DayTarget, bounds Bounds, fillers map[int]bool) int {
	// A filler day never drops below one while any alternative exists; its
	// whole point is keeping a gap closed.
	floor := func(i int) int {
		lo := bounds.For(targets[i].Weekend).Min
		if fillers[i] && lo < 1 {
			return 1
		}
		return lo
	}

	// Within bounds first.
	best, bestSlack := -1, 0
	for i, t := range targets {
		if slack := t.Target - floor(i); slack > bestSlack {
			best, bestSlack = i, slack
		}
	}
	if best >= 0 {
		return best
	}
	// Forced below bounds: take from non-filler days down to zero.
	for i, t := range targets {
		if !fillers[i] && t.Target > 0 {
			if best < 0 || t.Target > targets[best].Target {
				best = i
			}
		}
	}
	if best >= 0 {
		return best
	}
	// Only fillers remain with commits; breaking a gap is now unavoidable.
	for i, t := range targets {
		if t.Target > 0 {
			return i
		}
	}
	return -1
}

func plannedTotal(targets []DayTarget) int {
	total := 0
	for _, t := range targets {
		total += t.Target
	}
	return total
}
