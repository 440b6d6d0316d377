// Package render turns chart descriptions into PNG files (gonum/plot) or
// interactive HTML pages (go-echarts). Figures build a Chart value and hand
// it to one of the backends; the backends own all plotting library calls.
package render

import "image/color"

// Chart is a renderer-independent description of one figure panel.
type Chart struct {
	Title  string
	X, Y   Axis
	Layers []Layer
	Legend Legend
	Insets []Inset

	// Width and Height are in inches; zero means the 8x6 default.
	Width, Height float64
}

// Axis describes one chart axis. Min and Max apply only when Fixed is true;
// otherwise the axis autoscales to the data. Inverted flips the drawing
// direction without changing Min/Max ordering.
type Axis struct {
	Label    string
	Min, Max float64
	Fixed    bool
	Log      bool
	Inverted bool
}

// Legend placement. The zero value hides the legend.
type Legend struct {
	Show bool
	Top  bool
	Left bool
}

// Inset draws a second chart inside the main panel. Position and size are
// fractions of the full canvas, measured from the bottom-left corner.
type Inset struct {
	X, Y          float64
	Width, Height float64
	Chart         *Chart
}

// Layer is one drawable data series or decoration. Implementations are the
// exported structs below; the backends type-switch over them.
type Layer interface {
	layer()
}

// Line is a connected polyline.
type Line struct {
	Label  string
	X, Y   []float64
	Color  color.Color
	Width  float64 // line width in points; zero means 1
	Dashed bool
}

// Scatter draws unconnected markers.
type Scatter struct {
	Label  string
	X, Y   []float64
	Color  color.Color
	Radius float64 // marker radius in points; zero means 2
}

// YErrorBars draws markers with symmetric vertical error bars.
type YErrorBars struct {
	Label string
	X, Y  []float64
	YErr  []float64
	Color color.Color
}

// Bars draws vertical bars of the given width centered on each x.
type Bars struct {
	Label  string
	X      []float64
	Height []float64
	Width  float64
	Color  color.Color
}

// FillBetween shades the region between two curves. A nil Y2 fills down to
// zero.
type FillBetween struct {
	X, Y1, Y2 []float64
	Color     color.Color
}

// TickMarks draws short vertical strokes at each (x, y), the conventional
// marker for Bragg reflection positions under a diffraction pattern.
type TickMarks struct {
	Label  string
	X, Y   []float64
	Height float64 // stroke height in points; zero means 6
	Color  color.Color
}

// Labels places text annotations at data coordinates.
type Labels struct {
	X, Y  []float64
	Text  []string
	Color color.Color
}

// Arrow draws a straight arrow between two data points.
type Arrow struct {
	X0, Y0 float64
	X1, Y1 float64
	Color  color.Color
	Dashed bool
}

func (Line) layer()        {}
func (Scatter) layer()     {}
func (YErrorBars) layer()  {}
func (Bars) layer()        {}
func (FillBetween) layer() {}
func (TickMarks) layer()   {}
func (Labels) layer()      {}
func (Arrow) layer()       {}

// Named colors used across the figure set, matching the usual plotting
// palette names.
var (
	Black         = color.RGBA{A: 255}
	Red           = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	Blue          = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	Green         = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	Orange        = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	Purple        = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	Gray          = color.RGBA{R: 127, G: 127, B: 127, A: 255}
	DarkGreen     = color.RGBA{G: 100, A: 255}
	DarkSlateGray = color.RGBA{R: 47, G: 79, B: 79, A: 255}
	LightBlue     = color.RGBA{R: 174, G: 199, B: 232, A: 255}
	Cyan          = color.RGBA{G: 190, B: 190, A: 255}
	Brown         = color.RGBA{R: 140, G: 86, B: 75, A: 255}
	PeachPuff     = color.RGBA{R: 255, G: 218, B: 185, A: 255}
	DarkKhaki     = color.RGBA{R: 189, G: 183, B: 107, A: 255}
)

// WithAlpha returns c with its alpha channel replaced, for translucent
// fills.
func WithAlpha(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
