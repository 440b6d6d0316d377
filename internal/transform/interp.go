package transform

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Interp evaluates a piecewise-linear interpolant of (xs, ys) at x, clamping
// to the endpoint values outside the data range. xs need not be sorted.
func Interp(x float64, xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, fmt.Errorf("interp: need at least 2 paired points")
	}

	type pair struct{ x, y float64 }
	pairs := make([]pair, len(xs))
	for i := range xs {
		pairs[i] = pair{xs[i], ys[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })

	sx := make([]float64, 0, len(pairs))
	sy := make([]float64, 0, len(pairs))
	for i, p := range pairs {
		// interp.PiecewiseLinear requires strictly increasing xs.
		if i > 0 && p.x == sx[len(sx)-1] {
			continue
		}
		sx = append(sx, p.x)
		sy = append(sy, p.y)
	}
	if len(sx) < 2 {
		return 0, fmt.Errorf("interp: fewer than 2 distinct x values")
	}

	if x <= sx[0] {
		return sy[0], nil
	}
	if x >= sx[len(sx)-1] {
		return sy[len(sy)-1], nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(sx, sy); err != nil {
		return 0, fmt.Errorf("interp: %w", err)
	}
	return pl.Predict(x), nil
}

// LeadingEdge finds the x position where a normalized spectrum crosses
// yLevel on its leading edge. Samples are scanned from the end of the series
// collecting the rising flank between yFloor and yCeil, then x is linearly
// interpolated as a function of y at yLevel. The HAXPES energy calibration
// aligns Fermi edges by the difference of two such crossings.
func LeadingEdge(x, y []float64, yFloor, yCeil, yLevel float64) (float64, error) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, fmt.Errorf("leading edge: series lengths mismatch")
	}
	var xs, ys []float64
	for i := len(x) - 1; i >= 0; i-- {
		if y[i] > yFloor {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
		if y[i] > yCeil {
			break
		}
	}
	if len(ys) < 2 {
		return 0, fmt.Errorf("leading edge: no flank samples between %g and %g", yFloor, yCeil)
	}
	return Interp(yLevel, ys, xs)
}
