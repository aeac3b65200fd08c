package plan

import (
	"testing"
	"time"

	"github.com/gitspread/gitspread/internal/calendar"
	"github.com/gitspread/gitspread/internal/gitscan"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// histogramFrom builds a histogram over [start, start+len(counts)) with the
// given per-day counts.
func histogramFrom(t *testing.T, start time.Time, counts []int) *calendar.Histogram {
	t.Helper()
	w := gitscan.Window{Start: start, End: start.AddDate(0, 0, len(counts)-1)}
	h := calendar.NewHistogram(w)
	for i, c := range counts {
		for j := 0; j < c; j++ {
			h.Add(start.AddDate(0, 0, i))
		}
	}
	return h
}

func defaultConfig() Config {
	return Config{
		Bounds: Bounds{
			Weekday: Range{Min: 2, Max: 6},
			Weekend: Range{Min: 6, Max: 10},
		},
		MaxGapDays: 7,
	}
}

func TestBuildConservation(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
	}{
		{"single burst", []int{0, 0, 25, 0, 0, 0, 0, 0, 0, 0}},
		{"sparse", []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 1}},
		{"heavy", []int{40, 40, 40, 40, 40, 40, 40, 40, 40, 40}},
		{"one commit", []int{0, 0, 0, 0, 1, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := histogramFrom(t, day(2025, 6, 2), tt.counts)
			p, err := Build(h, defaultConfig())
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			sum := 0
			for _, dt := range p.Targets {
				if dt.Target < 0 {
					t.Errorf("negative target on %s", dt.Date.Format(calendar.DayFormat))
				}
				sum += dt.Target
			}
			if sum != h.Total() {
				t.Errorf("target sum = %d, want %d (conservation)", sum, h.Total())
			}
			if p.Total != h.Total() {
				t.Errorf("Plan.Total = %d, want %d", p.Total, h.Total())
			}
		})
	}
}

func TestBuildInfeasible(t *testing.T) {
	h := histogramFrom(t, day(2025, 6, 2), make([]int, 30))
	if _, err := Build(h, defaultConfig()); err == nil {
		t.Fatal("expected InfeasiblePlan for empty window")
	} else if _, ok := err.(*InfeasiblePlanError); !ok {
		t.Fatalf("expected *InfeasiblePlanError, got %T", err)
	}
}

func TestBuildIdempotentWhenSatisfied(t *testing.T) {
	// Every count inside a wide-open range, no gap above threshold: the plan
	// must echo the original distribution exactly.
	counts := []int{3, 0, 0, 5, 1, 0, 2, 8, 0, 4}
	h := histogramFrom(t, day(2025, 6, 2), counts)

	cfg := Config{
		Bounds: Bounds{
			Weekday: Range{Min: 0, Max: 100},
			Weekend: Range{Min: 0, Max: 100},
		},
		MaxGapDays: 30,
	}

	p, err := Build(h, cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, dt := range p.Targets {
		if dt.Target != counts[i] {
			t.Errorf("day %d: target = %d, want original %d", i, dt.Target, counts[i])
		}
	}
	if len(p.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings)
	}
}

func TestBuildGapClosure(t *testing.T) {
	// Scenario B: a 20-day silent run inside an active window.
	counts := make([]int, 30)
	counts[0] = 15
	counts[1] = 15
	// days 2..21 silent (20 days)
	counts[22] = 15
	for i := 23; i < 30; i++ {
		counts[i] = 5
	}

	start := day(2025, 6, 2)
	h := histogramFrom(t, start, counts)
	p, err := Build(h, defaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	filled := false
	for i := 2; i <= 21; i++ {
		if p.Targets[i].Target > 0 {
			filled = true
			break
		}
	}
	if !filled {
		t.Error("20-day gap received no commits")
	}
	if p.Total != h.Total() {
		t.Errorf("total changed: %d != %d", p.Total, h.Total())
	}
}

func TestBuildGapFillerSurvivesScarcity(t *testing.T) {
	// Two commits, a long silent run, and bounds demanding at least two per
	// day: conservation wins, bounds break, the gap still gets a commit.
	counts := make([]int, 20)
	counts[0] = 1
	counts[19] = 1

	h := histogramFrom(t, day(2025, 6, 2), counts)
	p, err := Build(h, defaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if p.Total != 2 {
		t.Fatalf("total = %d, want 2", p.Total)
	}
	nonZero := 0
	interior := false
	for i, dt := range p.Targets {
		if dt.Target > 0 {
			nonZero++
			if i > 0 && i < 19 {
				interior = true
			}
		}
	}
	if nonZero == 0 || !interior {
		t.Errorf("expected an interior day to keep a commit, targets: %+v", p.Targets)
	}
	if len(p.Warnings) == 0 {
		t.Error("expected bound violation warnings when supply is this scarce")
	}
}

func TestBuildScenarioA(t *testing.T) {
	// 10 commits all on one day spread across multiple days within ranges.
	counts := make([]int, 14)
	counts[2] = 10

	h := histogramFrom(t, day(2025, 6, 2), counts) // Monday start
	p, err := Build(h, defaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	sum, daysUsed := 0, 0
	for _, dt := range p.Targets {
		sum += dt.Target
		if dt.Target > 0 {
			daysUsed++
		}
	}
	if sum != 10 {
		t.Errorf("total = %d, want 10", sum)
	}
	if daysUsed < 2 {
		t.Errorf("expected the burst spread across multiple days, got %d", daysUsed)
	}
}

func TestBuildDeterministic(t *testing.T) {
	counts := []int{0, 3, 0, 0, 0, 0, 0, 0, 0, 12, 0, 0, 1, 0}
	h1 := histogramFrom(t, day(2025, 6, 2), counts)
	h2 := histogramFrom(t, day(2025, 6, 2), counts)

	p1, err := Build(h1, defaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	p2, err := Build(h2, defaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := range p1.Targets {
		if p1.Targets[i].Target != p2.Targets[i].Target {
			t.Fatalf("plans diverge at day %d: %d vs %d", i, p1.Targets[i].Target, p2.Targets[i].Target)
		}
	}
}

func TestBuildWeekendClassification(t *testing.T) {
	// 2025-06-07 is a Saturday.
	counts := []int{4, 4, 4, 4, 4, 4, 4}
	h := histogramFrom(t, day(2025, 6, 2), counts)
	p, err := Build(h, defaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, dt := range p.Targets {
		wd := dt.Date.Weekday()
		want := wd == time.Saturday || wd == time.Sunday
		if dt.Weekend != want {
			t.Errorf("%s classified weekend=%v", dt.Date.Format(calendar.DayFormat), dt.Weekend)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", defaultConfig(), false},
		{"negative min", Config{Bounds: Bounds{Weekday: Range{Min: -1, Max: 5}, Weekend: Range{Min: 0, Max: 5}}, MaxGapDays: 7}, true},
		{"inverted range", Config{Bounds: Bounds{Weekday: Range{Min: 5, Max: 2}, Weekend: Range{Min: 0, Max: 5}}, MaxGapDays: 7}, true},
		{"zero gap threshold", Config{Bounds: Bounds{Weekday: Range{Min: 2, Max: 6}, Weekend: Range{Min: 6, Max: 10}}, MaxGapDays: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
