// Package report renders analysis and plan results for human review. The
// tables and day-by-day diff are the last thing a user sees before deciding
// to run a destructive rewrite, so favor completeness over brevity.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gitspread/gitspread/internal/calendar"
	"github.com/gitspread/gitspread/internal/plan"
)

// Printer writes human-readable reports to a single destination.
type Printer struct {
	w      io.Writer
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// NewPrinter creates a Printer. Colors are only emitted when enabled; pass
// false when stdout is not a terminal.
func NewPrinter(w io.Writer, colored bool) *Printer {
	plain := fmt.Sprint
	p := &Printer{w: w, green: plain, yellow: plain, red: plain}
	if colored {
		p.green = color.New(color.FgGreen).SprintFunc()
		p.yellow = color.New(color.FgYellow).SprintFunc()
		p.red = color.New(color.FgRed).SprintFunc()
	}
	return p
}

// Statistics renders one distribution snapshot.
func (p *Printer) Statistics(title string, s calendar.Statistics) {
	fmt.Fprintf(p.w, "\n%s\n", title)

	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.AppendHeader(table.Row{"Total", "Active days", "Mean/day", "Median", "Std dev", "Min", "Max", "Coverage"})
	t.AppendRow(table.Row{
		s.Total,
		s.DaysWithCommits,
		fmt.Sprintf("%.2f", s.Mean),
		fmt.Sprintf("%.2f", s.Median),
		fmt.Sprintf("%.2f", s.StdDev),
		s.Min,
		s.Max,
		fmt.Sprintf("%.0f%%", s.Coverage*100),
	})
	t.Render()
}

// Gaps renders the detected gap list.
func (p *Printer) Gaps(gaps []calendar.Gap, maxGapDays int) {
	fmt.Fprintf(p.w, "\nGaps longer than %d days\n", maxGapDays)
	if len(gaps) == 0 {
		fmt.Fprintln(p.w, p.green("  none found"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.AppendHeader(table.Row{"From", "To", "Silent days", "Commits before", "Commits after"})
	for _, g := range gaps {
		t.AppendRow(table.Row{
			g.Start.Format(calendar.DayFormat),
			g.End.Format(calendar.DayFormat),
			p.red(g.Days),
			g.CommitsBefore,
			g.CommitsAfter,
		})
	}
	t.Render()
}

// Warnings renders the planner's bound violations.
func (p *Printer) Warnings(warnings []plan.BoundViolation) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(p.w, "\n%s %d day(s) outside nominal bounds (conservation forced it):\n",
		p.yellow("warning:"), len(warnings))
	for _, v := range warnings {
		fmt.Fprintf(p.w, "  %s\n", v)
	}
}

// DayDiff renders the before/after day-by-day comparison, marking days that
// were silent and now receive commits.
func (p *Printer) DayDiff(pl *plan.Plan) {
	fmt.Fprintln(p.w, "\nDay-by-day plan")

	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.AppendHeader(table.Row{"Date", "Day", "Before", "After", ""})

	newGreen, remainingBlank := 0, 0
	for _, dt := range pl.Targets {
		marker := ""
		switch {
		case dt.Original == 0 && dt.Target > 0:
			marker = p.green("NEW")
			newGreen++
		case dt.Target == 0:
			remainingBlank++
		}
		delta := ""
		if dt.Target != dt.Original {
			delta = fmt.Sprintf("%+d", dt.Target-dt.Original)
		}
		t.AppendRow(table.Row{
			dt.Date.Format(calendar.DayFormat),
			dt.Date.Format("Mon"),
			dt.Original,
			fmt.Sprintf("%d %s", dt.Target, delta),
			marker,
		})
	}
	t.Render()

	fmt.Fprintf(p.w, "\n%s days newly active, %d days still blank\n",
		p.green(newGreen), remainingBlank)
}

// Summary renders the one-paragraph outcome of a planning run.
func (p *Printer) Summary(repo string, before, after calendar.Statistics) {
	fmt.Fprintf(p.w, "\n%s: %d commits, std dev %.2f → %.2f, active days %d → %d\n",
		repo, before.Total, before.StdDev, after.StdDev,
		before.DaysWithCommits, after.DaysWithCommits)
}

// Failure renders a per-repository failure without stopping the run.
func (p *Printer) Failure(repo string, err error) {
	fmt.Fprintf(p.w, "\n%s %s: %v\n", p.red("skipped"), repo, err)
}
