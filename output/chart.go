package output

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotReport renders one chart per suite onto a single HTML page:
// line charts for the scaling and range suites (time vs N or K), a bar
// chart for the distribution suite.
func PlotReport(r *Report, filename string) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, s := range r.Suites {
		switch s.Kind {
		case "distribution":
			page.AddCharts(distributionChart(s))
		default:
			page.AddCharts(timingLineChart(s))
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create chart file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}

	fmt.Printf("Charts saved to %s\n", filename)
	return nil
}

// timingLineChart draws time-per-algorithm against the suite's varying
// axis (N for scaling, K for range sensitivity).
func timingLineChart(s SuiteResult) *charts.Line {
	axisName := "N (records)"
	axisValue := func(row SuiteRow) int { return row.N }
	if s.Kind == "range" {
		axisName = "K (key range)"
		axisValue = func(row SuiteRow) int { return row.K }
	}

	// Collect the category axis in row order, de-duplicated.
	var categories []string
	seen := make(map[int]bool)
	for _, row := range s.Rows {
		v := axisValue(row)
		if !seen[v] {
			seen[v] = true
			categories = append(categories, FormatNumber(v))
		}
	}

	// One series per algorithm, values aligned with the category axis.
	series := make(map[string][]opts.LineData)
	var order []string
	for _, row := range s.Rows {
		if _, ok := series[row.Algorithm]; !ok {
			order = append(order, row.Algorithm)
		}
		series[row.Algorithm] = append(series[row.Algorithm], opts.LineData{Value: row.TimeMS()})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "keysort benchmark",
			Theme:     types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Suite %q (%s)", s.Name, s.Kind),
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisName, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Time (ms)"}),
	)

	line.SetXAxis(categories)
	for _, name := range order {
		line.AddSeries(name, series[name])
	}
	return line
}

// distributionChart draws a grouped bar chart: one group per data
// distribution, one bar per algorithm.
func distributionChart(s SuiteResult) *charts.Bar {
	var categories []string
	seen := make(map[string]bool)
	for _, row := range s.Rows {
		if !seen[row.Distribution] {
			seen[row.Distribution] = true
			categories = append(categories, row.Distribution)
		}
	}

	series := make(map[string][]opts.BarData)
	var order []string
	for _, row := range s.Rows {
		if _, ok := series[row.Algorithm]; !ok {
			order = append(order, row.Algorithm)
		}
		series[row.Algorithm] = append(series[row.Algorithm], opts.BarData{Value: row.TimeMS()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "keysort benchmark",
			Theme:     types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Suite %q (%s)", s.Name, s.Kind),
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distribution", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Time (ms)"}),
	)

	bar.SetXAxis(categories)
	for _, name := range order {
		bar.AddSeries(name, series[name])
	}
	return bar
}
