package render

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fcbenten/figures/internal/fsutil"
)

// WriteHTML renders an interactive preview of the chart with go-echarts.
// This is a browsing surface for the data series: lines and point sets are
// carried over, while decorations (fills, annotations, arrows, insets) only
// appear in the PNG output.
func WriteHTML(fsys fsutil.FileSystem, c *Chart, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(xAxisOpts(c.X)),
		charts.WithYAxisOpts(yAxisOpts(c.Y)),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(c.Legend.Show)}),
	)

	scatter := charts.NewScatter()
	haveScatter := false

	for i, layer := range c.Layers {
		switch l := layer.(type) {
		case Line:
			line.AddSeries(seriesName(l.Label, i), lineData(l.X, l.Y))
		case Scatter:
			scatter.AddSeries(seriesName(l.Label, i), scatterData(l.X, l.Y),
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
			haveScatter = true
		case YErrorBars:
			scatter.AddSeries(seriesName(l.Label, i), scatterData(l.X, l.Y),
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
			haveScatter = true
		case Bars:
			scatter.AddSeries(seriesName(l.Label, i), scatterData(l.X, l.Height),
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
			haveScatter = true
		case TickMarks:
			scatter.AddSeries(seriesName(l.Label, i), scatterData(l.X, l.Y),
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
			haveScatter = true
		case FillBetween, Labels, Arrow:
			// PNG-only decorations.
		default:
			return fmt.Errorf("render %q: unknown layer type %T", path, layer)
		}
	}
	if haveScatter {
		line.Overlap(scatter)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("render %q: %w", path, err)
	}
	if err := line.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %q: %w", path, err)
	}
	return f.Close()
}

func xAxisOpts(a Axis) opts.XAxis {
	x := opts.XAxis{Name: a.Label, Type: axisType(a), NameLocation: "middle", NameGap: 25}
	if a.Fixed {
		x.Min, x.Max = a.Min, a.Max
	}
	return x
}

func yAxisOpts(a Axis) opts.YAxis {
	y := opts.YAxis{Name: a.Label, Type: axisType(a), NameLocation: "middle", NameGap: 40}
	if a.Fixed {
		y.Min, y.Max = a.Min, a.Max
	}
	return y
}

func axisType(a Axis) string {
	if a.Log {
		return "log"
	}
	return "value"
}

func seriesName(label string, i int) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("series %d", i)
}

func lineData(x, y []float64) []opts.LineData {
	out := make([]opts.LineData, len(x))
	for i := range x {
		out[i] = opts.LineData{Value: []interface{}{x[i], y[i]}}
	}
	return out
}

func scatterData(x, y []float64) []opts.ScatterData {
	out := make([]opts.ScatterData, len(x))
	for i := range x {
		out[i] = opts.ScatterData{Value: []interface{}{x[i], y[i]}}
	}
	return out
}
