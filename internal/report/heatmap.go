package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gitspread/gitspread/internal/plan"
)

// contributionPalette is the familiar blank-to-green ramp of a contribution
// graph.
var contributionPalette = []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WriteHeatmap renders before/after calendar heatmaps of the plan as a
// standalone HTML page.
func WriteHeatmap(w io.Writer, pl *plan.Plan) error {
	if len(pl.Targets) == 0 {
		return fmt.Errorf("empty plan, nothing to chart")
	}

	maxCount := 0
	for _, t := range pl.Targets {
		if t.Original > maxCount {
			maxCount = t.Original
		}
		if t.Target > maxCount {
			maxCount = t.Target
		}
	}

	before := heatmapChart("Before", pl, maxCount, func(t plan.DayTarget) int { return t.Original })
	after := heatmapChart("After", pl, maxCount, func(t plan.DayTarget) int { return t.Target })

	page := components.NewPage()
	page.PageTitle = "gitspread plan"
	page.AddCharts(before, after)
	return page.Render(w)
}

// heatmapChart lays the window out as a week-column grid, Monday row first,
// the way a contribution graph reads.
func heatmapChart(title string, pl *plan.Plan, maxCount int, value func(plan.DayTarget) int) *charts.HeatMap {
	var weeks []string
	var data []opts.HeatMapData

	week := -1
	for _, t := range pl.Targets {
		row := weekdayRow(t.Date)
		if row == 0 || week < 0 {
			week++
			weeks = append(weeks, t.Date.Format("Jan 02"))
		}
		data = append(data, opts.HeatMapData{Value: []any{week, row, value(t)}})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1400px", Height: "320px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category", Data: weeks,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{Interval: "3", FontSize: 10},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category", Data: weekdayLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true), Min: 0, Max: float32(maxCount),
			InRange: &opts.VisualMapInRange{Color: contributionPalette},
			Orient:  "horizontal", Left: "center", Bottom: "2%",
		}),
	)
	hm.AddSeries("Commits", data)
	return hm
}

// weekdayRow maps a date to its grid row, Monday = 0.
func weekdayRow(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
