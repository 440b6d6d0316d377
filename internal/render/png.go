package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/fcbenten/figures/internal/fsutil"
)

const (
	defaultWidthInch  = 8.0
	defaultHeightInch = 6.0
)

// WritePNG renders the chart to a PNG file through the given filesystem.
func WritePNG(fsys fsutil.FileSystem, c *Chart, path string) error {
	wIn, hIn := c.Width, c.Height
	if wIn == 0 {
		wIn = defaultWidthInch
	}
	if hIn == 0 {
		hIn = defaultHeightInch
	}
	width := vg.Length(wIn) * vg.Inch
	height := vg.Length(hIn) * vg.Inch

	p, err := buildPlot(c)
	if err != nil {
		return fmt.Errorf("render %q: %w", path, err)
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	p.Draw(dc)

	for _, in := range c.Insets {
		if in.Chart == nil || in.Width <= 0 || in.Height <= 0 {
			return fmt.Errorf("render %q: malformed inset", path)
		}
		ip, err := buildPlot(in.Chart)
		if err != nil {
			return fmt.Errorf("render %q inset: %w", path, err)
		}
		sub := draw.Crop(dc,
			vg.Length(in.X)*width, vg.Length(in.X+in.Width-1)*width,
			vg.Length(in.Y)*height, vg.Length(in.Y+in.Height-1)*height)
		ip.Draw(sub)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("render %q: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("render %q: %w", path, err)
	}
	return f.Close()
}

func buildPlot(c *Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	applyAxis(&p.X, c.X)
	applyAxis(&p.Y, c.Y)

	for i, layer := range c.Layers {
		if err := addLayer(p, layer); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	if c.Legend.Show {
		p.Legend.Top = c.Legend.Top
		p.Legend.Left = c.Legend.Left
		p.Legend.XOffs = -10
		p.Legend.YOffs = -10
		if c.Legend.Left {
			p.Legend.XOffs = 10
		}
	}
	return p, nil
}

func applyAxis(ax *plot.Axis, spec Axis) {
	ax.Label.Text = spec.Label
	if spec.Fixed {
		ax.Min, ax.Max = spec.Min, spec.Max
	}
	switch {
	case spec.Log && spec.Inverted:
		ax.Scale = plot.InvertedScale{Normalizer: plot.LogScale{}}
		ax.Tick.Marker = plot.LogTicks{Prec: -1}
	case spec.Log:
		ax.Scale = plot.LogScale{}
		ax.Tick.Marker = plot.LogTicks{Prec: -1}
	case spec.Inverted:
		ax.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
}

func addLayer(p *plot.Plot, layer Layer) error {
	switch l := layer.(type) {
	case Line:
		xys, err := makeXYs(l.X, l.Y)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle = lineStyle(l.Color, l.Width, l.Dashed)
		p.Add(line)
		if l.Label != "" {
			p.Legend.Add(l.Label, line)
		}

	case Scatter:
		xys, err := makeXYs(l.X, l.Y)
		if err != nil {
			return err
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = colorOrBlack(l.Color)
		s.GlyphStyle.Radius = vg.Points(pointsOr(l.Radius, 2))
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		if l.Label != "" {
			p.Legend.Add(l.Label, s)
		}

	case YErrorBars:
		if len(l.YErr) != len(l.X) {
			return fmt.Errorf("error bars: %d values, %d errors", len(l.X), len(l.YErr))
		}
		xys, err := makeXYs(l.X, l.Y)
		if err != nil {
			return err
		}
		data := yerrData{XYs: xys, errs: l.YErr}
		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return err
		}
		bars.LineStyle.Color = colorOrBlack(l.Color)
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = colorOrBlack(l.Color)
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(bars, s)
		if l.Label != "" {
			p.Legend.Add(l.Label, s)
		}

	case Bars:
		if len(l.X) != len(l.Height) {
			return fmt.Errorf("bars: %d positions, %d heights", len(l.X), len(l.Height))
		}
		w := l.Width
		if w <= 0 {
			return fmt.Errorf("bars: non-positive width %g", w)
		}
		var first *plotter.Polygon
		for i := range l.X {
			poly, err := plotter.NewPolygon(plotter.XYs{
				{X: l.X[i] - w/2, Y: 0},
				{X: l.X[i] - w/2, Y: l.Height[i]},
				{X: l.X[i] + w/2, Y: l.Height[i]},
				{X: l.X[i] + w/2, Y: 0},
			})
			if err != nil {
				return err
			}
			poly.Color = colorOrBlack(l.Color)
			poly.LineStyle.Color = Black
			p.Add(poly)
			if first == nil {
				first = poly
			}
		}
		if l.Label != "" && first != nil {
			p.Legend.Add(l.Label, first)
		}

	case FillBetween:
		y2 := l.Y2
		if y2 == nil {
			y2 = make([]float64, len(l.X))
		}
		if len(l.X) != len(l.Y1) || len(l.X) != len(y2) {
			return fmt.Errorf("fill: mismatched series lengths")
		}
		ring := make(plotter.XYs, 0, 2*len(l.X))
		for i := range l.X {
			ring = append(ring, plotter.XY{X: l.X[i], Y: l.Y1[i]})
		}
		for i := len(l.X) - 1; i >= 0; i-- {
			ring = append(ring, plotter.XY{X: l.X[i], Y: y2[i]})
		}
		poly, err := plotter.NewPolygon(ring)
		if err != nil {
			return err
		}
		poly.Color = colorOrBlack(l.Color)
		poly.LineStyle.Color = color.Transparent
		p.Add(poly)

	case TickMarks:
		if len(l.X) != len(l.Y) {
			return fmt.Errorf("tick marks: mismatched series lengths")
		}
		tm := &tickMarks{TickMarks: l}
		p.Add(tm)
		if l.Label != "" {
			p.Legend.Add(l.Label, tm)
		}

	case Labels:
		if len(l.X) != len(l.Y) || len(l.X) != len(l.Text) {
			return fmt.Errorf("labels: mismatched series lengths")
		}
		xys, err := makeXYs(l.X, l.Y)
		if err != nil {
			return err
		}
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: l.Text})
		if err != nil {
			return err
		}
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Color = colorOrBlack(l.Color)
		}
		p.Add(lbl)

	case Arrow:
		p.Add(&arrow{Arrow: l})

	default:
		return fmt.Errorf("unknown layer type %T", layer)
	}
	return nil
}

func makeXYs(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("series lengths differ: %d vs %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("empty series")
	}
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return xys, nil
}

func lineStyle(c color.Color, width float64, dashed bool) draw.LineStyle {
	sty := draw.LineStyle{
		Color: colorOrBlack(c),
		Width: vg.Points(pointsOr(width, 1)),
	}
	if dashed {
		sty.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	return sty
}

func colorOrBlack(c color.Color) color.Color {
	if c == nil {
		return Black
	}
	return c
}

func pointsOr(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

type yerrData struct {
	plotter.XYs
	errs []float64
}

func (d yerrData) YError(i int) (float64, float64) {
	return d.errs[i], d.errs[i]
}

// tickMarks strokes a short vertical segment at each data point.
type tickMarks struct {
	TickMarks
}

func (t *tickMarks) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	h := vg.Points(pointsOr(t.Height, 6))
	sty := draw.LineStyle{Color: colorOrBlack(t.Color), Width: vg.Points(1)}
	for i := range t.X {
		x := trX(t.X[i])
		y := trY(t.Y[i])
		if !c.Contains(vg.Point{X: x, Y: y}) {
			continue
		}
		c.StrokeLine2(sty, x, y-h/2, x, y+h/2)
	}
}

func (t *tickMarks) Thumbnail(c *draw.Canvas) {
	sty := draw.LineStyle{Color: colorOrBlack(t.Color), Width: vg.Points(1)}
	x := (c.Min.X + c.Max.X) / 2
	c.StrokeLine2(sty, x, c.Min.Y, x, c.Max.Y)
}

// arrow strokes a straight shaft with a two-stroke head at the tip.
type arrow struct {
	Arrow
}

func (a *arrow) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x0, y0 := trX(a.X0), trY(a.Y0)
	x1, y1 := trX(a.X1), trY(a.Y1)
	sty := lineStyle(a.Color, 1, a.Dashed)
	c.StrokeLine2(sty, x0, y0, x1, y1)

	headSty := lineStyle(a.Color, 1, false)
	ang := math.Atan2(float64(y1-y0), float64(x1-x0))
	const headLen = vg.Length(6)
	for _, da := range []float64{math.Pi - 0.45, math.Pi + 0.45} {
		hx := x1 + headLen*vg.Length(math.Cos(ang+da))
		hy := y1 + headLen*vg.Length(math.Sin(ang+da))
		c.StrokeLine2(headSty, x1, y1, hx, hy)
	}
}
