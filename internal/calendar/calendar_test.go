package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/gitspread/gitspread/internal/gitscan"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func windowOf(start, end time.Time) gitscan.Window {
	return gitscan.Window{Start: start, End: end}
}

func TestAggregateCoversEveryDay(t *testing.T) {
	w := windowOf(day(2025, 6, 1), day(2025, 6, 10))
	commits := []gitscan.Commit{
		{Hash: "a", Timestamp: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		{Hash: "b", Timestamp: time.Date(2025, 6, 1, 17, 30, 0, 0, time.UTC)},
		{Hash: "c", Timestamp: time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)},
	}

	h := Aggregate(commits, w)

	if h.Len() != 10 {
		t.Fatalf("expected 10 days, got %d", h.Len())
	}
	if got := h.Count(day(2025, 6, 1)); got != 2 {
		t.Errorf("June 1 count = %d, want 2", got)
	}
	if got := h.Count(day(2025, 6, 5)); got != 1 {
		t.Errorf("June 5 count = %d, want 1", got)
	}
	// Zero days must be present, not absent.
	days := h.Days()
	if days[1].Count != 0 {
		t.Errorf("June 2 count = %d, want 0", days[1].Count)
	}
	if h.Total() != 3 {
		t.Errorf("Total() = %d, want 3", h.Total())
	}
}

func TestDayWeekend(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{day(2025, 6, 6), false}, // Friday
		{day(2025, 6, 7), true},  // Saturday
		{day(2025, 6, 8), true},  // Sunday
		{day(2025, 6, 9), false}, // Monday
	}
	for _, tt := range tests {
		if got := (Day{Date: tt.date}).Weekend(); got != tt.want {
			t.Errorf("Weekend(%s) = %v, want %v", tt.date.Weekday(), got, tt.want)
		}
	}
}

func TestComputeStatistics(t *testing.T) {
	w := windowOf(day(2025, 6, 1), day(2025, 6, 10))
	h := NewHistogram(w)
	// Counts on commit days: 2, 4, 6.
	for i := 0; i < 2; i++ {
		h.Add(day(2025, 6, 1))
	}
	for i := 0; i < 4; i++ {
		h.Add(day(2025, 6, 3))
	}
	for i := 0; i < 6; i++ {
		h.Add(day(2025, 6, 8))
	}

	stats := Compute(h)

	if stats.Total != 12 {
		t.Errorf("Total = %d, want 12", stats.Total)
	}
	if stats.DaysWithCommits != 3 {
		t.Errorf("DaysWithCommits = %d, want 3", stats.DaysWithCommits)
	}
	if stats.Mean != 4 {
		t.Errorf("Mean = %v, want 4", stats.Mean)
	}
	if stats.Median != 4 {
		t.Errorf("Median = %v, want 4", stats.Median)
	}
	if stats.Min != 2 || stats.Max != 6 {
		t.Errorf("Min/Max = %d/%d, want 2/6", stats.Min, stats.Max)
	}
	// Sample stddev of {2,4,6} is 2.
	if math.Abs(stats.StdDev-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2", stats.StdDev)
	}
	if math.Abs(stats.Coverage-0.3) > 1e-9 {
		t.Errorf("Coverage = %v, want 0.3", stats.Coverage)
	}
}

func TestComputeEmpty(t *testing.T) {
	h := NewHistogram(windowOf(day(2025, 6, 1), day(2025, 6, 10)))
	stats := Compute(h)
	if stats != (Statistics{}) {
		t.Errorf("expected zeroed statistics for empty histogram, got %+v", stats)
	}
}

func TestFindGaps(t *testing.T) {
	w := windowOf(day(2025, 1, 1), day(2025, 3, 1))
	h := NewHistogram(w)
	h.Add(day(2025, 1, 5))
	h.Add(day(2025, 1, 10)) // 4 days between: not a gap at threshold 7
	h.Add(day(2025, 2, 1))  // 21 days between: gap
	h.Add(day(2025, 2, 1))

	gaps := FindGaps(h, 7)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	g := gaps[0]
	if !g.Start.Equal(day(2025, 1, 10)) || !g.End.Equal(day(2025, 2, 1)) {
		t.Errorf("gap span = %s → %s, want 2025-01-10 → 2025-02-01",
			g.Start.Format(DayFormat), g.End.Format(DayFormat))
	}
	if g.Days != 21 {
		t.Errorf("gap days = %d, want 21", g.Days)
	}
	if g.CommitsBefore != 1 || g.CommitsAfter != 2 {
		t.Errorf("commits before/after = %d/%d, want 1/2", g.CommitsBefore, g.CommitsAfter)
	}
}

func TestFindGapsDegenerate(t *testing.T) {
	h := NewHistogram(windowOf(day(2025, 1, 1), day(2025, 1, 31)))
	if gaps := FindGaps(h, 7); gaps != nil {
		t.Errorf("expected no gaps for empty histogram, got %v", gaps)
	}

	h.Add(day(2025, 1, 15))
	if gaps := FindGaps(h, 7); gaps != nil {
		t.Errorf("expected no gaps with a single commit day, got %v", gaps)
	}
}
