package lightcurve

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aouyang1/go-lightcurve/series"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineSeries generates an echart line chart with one line per series plotted against its own
// times. Series with non-zero uncertainties get an upper and lower line at value +/- uncertainty.
// Legend entries come from the series labels.
func LineSeries(title string, lcs ...*series.Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Time",
				Type: "value",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Value",
				Type: "value",
			},
		),
		charts.WithLegendOpts(
			opts.Legend{
				Show: opts.Bool(true),
			},
		),
	)

	for i, lc := range lcs {
		name := lc.Label()
		if name == "" {
			name = fmt.Sprintf("series %d", i)
		}

		t := lc.Times()
		y := lc.Values()
		e := lc.Uncertainties()

		lineData := make([]opts.LineData, 0, len(t))
		lineDataUpper := make([]opts.LineData, 0, len(t))
		lineDataLower := make([]opts.LineData, 0, len(t))
		var hasErr bool
		for j := range t {
			lineData = append(lineData, opts.LineData{Value: []float64{t[j], y[j]}})
			lineDataUpper = append(lineDataUpper, opts.LineData{Value: []float64{t[j], y[j] + e[j]}})
			lineDataLower = append(lineDataLower, opts.LineData{Value: []float64{t[j], y[j] - e[j]}})
			if e[j] != 0 {
				hasErr = true
			}
		}

		line.AddSeries(name, lineData)
		if hasErr {
			line.AddSeries(name+" upper", lineDataUpper).
				AddSeries(name+" lower", lineDataLower)
		}
	}
	return line
}

// RenderPlot writes an html page holding a single chart of all series
func RenderPlot(w io.Writer, title string, lcs ...*series.Series) error {
	page := components.NewPage()
	page.AddCharts(LineSeries(title, lcs...))
	return page.Render(w)
}

// RenderFit writes an html page with the input series and smoothed trend on one chart and the
// residual on another.
func (r *Result) RenderFit(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(
		LineSeries("Lightcurve Fit", r.Original, r.Smoothed),
		LineSeries("Lightcurve Residual", r.Residual),
	)
	return page.Render(w)
}

// PlotFit uses the Apache Echarts library to generate an html file showing the input series,
// the smoothed trend on top of it and the residual on its own. The page is rendered in memory
// so a failed render never leaves a truncated file.
func (r *Result) PlotFit(path string) error {
	var buf bytes.Buffer
	if err := r.RenderFit(&buf); err != nil {
		return fmt.Errorf("unable to render fit, %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
