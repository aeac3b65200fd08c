package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gitspread/gitspread/internal/calendar"
	"github.com/gitspread/gitspread/internal/plan"
)

func TestStatisticsTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Statistics("Before", calendar.Statistics{
		Total: 42, DaysWithCommits: 10, Mean: 4.2, Median: 4, StdDev: 1.5, Min: 1, Max: 8, Coverage: 0.5,
	})

	out := buf.String()
	for _, want := range []string{"Before", "42", "4.20", "1.50", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGapsTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Gaps(nil, 7)
	if !strings.Contains(buf.String(), "none found") {
		t.Errorf("expected empty-gap message, got:\n%s", buf.String())
	}

	buf.Reset()
	p.Gaps([]calendar.Gap{{
		Start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Days:  21, CommitsBefore: 1, CommitsAfter: 2,
	}}, 7)
	out := buf.String()
	for _, want := range []string{"2025-01-10", "2025-02-01", "21"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDayDiffMarksNewDays(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	pl := &plan.Plan{Targets: []plan.DayTarget{
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Original: 3, Target: 3},
		{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), Original: 0, Target: 2},
		{Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), Original: 1, Target: 0},
	}}
	p.DayDiff(pl)

	out := buf.String()
	if !strings.Contains(out, "NEW") {
		t.Errorf("newly active day not marked:\n%s", out)
	}
	if !strings.Contains(out, "1 days still blank") {
		t.Errorf("blank-day summary missing:\n%s", out)
	}
}

func TestWriteHeatmapEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeatmap(&buf, &plan.Plan{}); err == nil {
		t.Error("expected error for empty plan")
	}
}
