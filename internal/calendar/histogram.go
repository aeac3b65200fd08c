package calendar

import (
	"time"

	"github.com/gitspread/gitspread/internal/gitscan"
)

// DayFormat is the canonical key format for calendar days.
const DayFormat = "2006-01-02"

// Day is one calendar day of the analysis window with its commit count.
type Day struct {
	Date  time.Time
	Count int
}

// Weekend reports whether the day falls on a Saturday or Sunday.
func (d Day) Weekend() bool {
	wd := d.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Key returns the canonical YYYY-MM-DD key for the day.
func (d Day) Key() string {
	return d.Date.Format(DayFormat)
}

// Histogram is an ordered day→count mapping covering every calendar day of
// the window. Days without commits are present with count 0, never absent;
// gap detection depends on that.
type Histogram struct {
	days  []Day
	index map[string]int
}

// NewHistogram builds an all-zero histogram spanning the window, one entry
// per calendar day, in the location of the window start.
func NewHistogram(window gitscan.Window) *Histogram {
	start := dateOf(window.Start)
	end := dateOf(window.End)

	h := &Histogram{index: make(map[string]int)}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		h.index[d.Format(DayFormat)] = len(h.days)
		h.days = append(h.days, Day{Date: d})
	}
	return h
}

// Aggregate folds commits into per-day counts over the window. Commits whose
// timestamp falls outside the window are ignored; the scanner should have
// filtered them already.
func Aggregate(commits []gitscan.Commit, window gitscan.Window) *Histogram {
	h := NewHistogram(window)
	for _, c := range commits {
		h.Add(c.Timestamp)
	}
	return h
}

// Add increments the count of the day t falls on. No-op for instants outside
// the window.
func (h *Histogram) Add(t time.Time) {
	if i, ok := h.index[dateOf(t).Format(DayFormat)]; ok {
		h.days[i].Count++
	}
}

// Days returns the window's days in ascending date order. The slice is the
// histogram's backing store; callers must not modify it.
func (h *Histogram) Days() []Day {
	return h.days
}

// Len returns the number of calendar days in the window.
func (h *Histogram) Len() int {
	return len(h.days)
}

// Count returns the commit count for the given date, 0 for dates outside the
// window.
func (h *Histogram) Count(date time.Time) int {
	if i, ok := h.index[dateOf(date).Format(DayFormat)]; ok {
		return h.days[i].Count
	}
	return 0
}

// Total returns the sum of all day counts.
func (h *Histogram) Total() int {
	total := 0
	for _, d := range h.days {
		total += d.Count
	}
	return total
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
