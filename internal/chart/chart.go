// Package chart renders the weekly progress charts: per-unit % complete
// lines for work orders and machine hours against the linear weekly target.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/workorder"
)

// target is the nominal pace: 20% of the Monday load completed per day.
var target = []float64{20, 40, 60, 80, 100}

// FileName returns the chart page name for a week.
func FileName(week int) string {
	return fmt.Sprintf("Status Week %d.html", week)
}

// WriteWeekly renders the week's progress page to dir.
func WriteWeekly(dir string, week int, status map[string][]pipeline.ProgressRow) error {
	path := filepath.Join(dir, FileName(week))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create %s: %w", path, err)
	}
	defer file.Close()

	if err := Render(file, status); err != nil {
		return fmt.Errorf("chart: render %s: %w", path, err)
	}
	return nil
}

// Render writes an HTML page with one chart for MO progress and one for
// hours progress. Units whose percents are non-numeric (zero Monday
// baseline) contribute gaps rather than points.
func Render(w io.Writer, status map[string][]pipeline.ProgressRow) error {
	page := components.NewPage()
	page.AddCharts(
		progressChart("MO Status", status, func(r pipeline.ProgressRow) float64 {
			return r.PctMOsComplete
		}),
		progressChart("Labor Status", status, func(r pipeline.ProgressRow) float64 {
			return r.PctHrsComplete
		}),
	)
	return page.Render(w)
}

func progressChart(title string, status map[string][]pipeline.ProgressRow, value func(pipeline.ProgressRow) float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "% Complete"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	days := 0
	for _, unit := range workorder.Units() {
		if len(status[unit]) > days {
			days = len(status[unit])
		}
	}
	weekdays := workorder.Weekdays[:days]
	line.SetXAxis(weekdays)

	for _, unit := range workorder.Units() {
		data := make([]opts.LineData, 0, len(status[unit]))
		for _, row := range status[unit] {
			if !row.HasProgress || !pipeline.Numeric(value(row)) {
				data = append(data, opts.LineData{Value: nil})
				continue
			}
			data = append(data, opts.LineData{Value: value(row)})
		}
		line.AddSeries(unit, data)
	}

	pace := make([]opts.LineData, 0, days)
	for i := 0; i < days && i < len(target); i++ {
		pace = append(pace, opts.LineData{Value: target[i]})
	}
	line.AddSeries("Target", pace)
	return line
}
