package transform

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Segment is one detector position's sweep of a segmented measurement:
// paired angle/intensity columns (Twotheta{i}, Count{i}/I0).
type Segment struct {
	X []float64
	Y []float64
}

// StitchPlan joins overlapping segments into one continuous profile.
// Neighboring segments overlap in angle; each segment is rescaled so the
// interpolated intensities agree at the overlap midpoint, and background
// segments additionally receive a chained additive offset so the subtraction
// stays consistent across joins.
type StitchPlan struct {
	Ranges     [][2]float64 // x window kept from each segment
	Scales     []float64
	BkgOffsets []float64
}

// NewStitchPlan derives scales and offsets from the raw and background
// segment sets, which must be parallel (same count, same angle coverage).
func NewStitchPlan(raw, bkg []Segment) (*StitchPlan, error) {
	if len(raw) == 0 || len(raw) != len(bkg) {
		return nil, fmt.Errorf("stitch: raw and background segment counts differ (%d vs %d)", len(raw), len(bkg))
	}
	n := len(raw)
	p := &StitchPlan{
		Ranges:     make([][2]float64, n),
		Scales:     make([]float64, n),
		BkgOffsets: make([]float64, n),
	}
	for i := range p.Scales {
		p.Scales[i] = 1.0
		p.Ranges[i] = [2]float64{0, 60}
	}

	for i := 0; i < n; i++ {
		start, end := 0.0, 60.0
		if i >= 1 {
			start = 0.5 * (floats.Max(raw[i-1].X) + floats.Min(raw[i].X))
		}
		if i < n-1 {
			end = 0.5 * (floats.Max(raw[i].X) + floats.Min(raw[i+1].X))
		}

		if i >= 1 && start < end {
			prev, err := Interp(start, raw[i-1].X, raw[i-1].Y)
			if err != nil {
				return nil, fmt.Errorf("stitch segment %d: %w", i, err)
			}
			cur, err := Interp(start, raw[i].X, raw[i].Y)
			if err != nil {
				return nil, fmt.Errorf("stitch segment %d: %w", i, err)
			}
			if cur == 0 {
				return nil, fmt.Errorf("stitch segment %d: zero intensity at overlap %g", i, start)
			}
			p.Scales[i] = p.Scales[i-1] * prev / cur
			p.Ranges[i] = [2]float64{start, end}

			prevBkg, err := Interp(start, bkg[i-1].X, bkg[i-1].Y)
			if err != nil {
				return nil, fmt.Errorf("stitch background %d: %w", i, err)
			}
			curBkg, err := Interp(start, bkg[i].X, bkg[i].Y)
			if err != nil {
				return nil, fmt.Errorf("stitch background %d: %w", i, err)
			}
			p.BkgOffsets[i] = p.BkgOffsets[i-1] + p.Scales[i-1]*prevBkg - p.Scales[i]*curBkg
		}
	}
	return p, nil
}

// Concatenate applies the plan to a segment set and returns one series
// sorted by x. Pass the plan's BkgOffsets for background data and nil for
// raw or corrected data.
func (p *StitchPlan) Concatenate(segs []Segment, offsets []float64) (xs, ys []float64, err error) {
	if len(segs) != len(p.Scales) {
		return nil, nil, fmt.Errorf("stitch: %d segments for a %d-segment plan", len(segs), len(p.Scales))
	}
	type point struct{ x, y float64 }
	var pts []point
	for i, seg := range segs {
		off := 0.0
		if offsets != nil {
			off = offsets[i]
		}
		for j := range seg.X {
			if seg.X[j] < p.Ranges[i][0] || seg.X[j] > p.Ranges[i][1] {
				continue
			}
			pts = append(pts, point{seg.X[j], seg.Y[j]*p.Scales[i] + off})
		}
	}
	sort.Slice(pts, func(a, b int) bool { return pts[a].x < pts[b].x })

	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, pt := range pts {
		xs[i] = pt.x
		ys[i] = pt.y
	}
	return xs, ys, nil
}
