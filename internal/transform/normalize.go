// Package transform derives plottable series from raw instrument tables:
// normalization, background subtraction, peak finding and fitting, linear
// regression, Fourier transforms and the arithmetic steps (offsets, segment
// stitching, Bragg angles) the figures need.
package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizeMax scales y so its maximum maps to exactly 1.0.
func NormalizeMax(y []float64) ([]float64, error) {
	if len(y) == 0 {
		return nil, fmt.Errorf("normalize: empty series")
	}
	max := floats.Max(y)
	if max == 0 {
		return nil, fmt.Errorf("normalize: series maximum is zero")
	}
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v / max
	}
	return out, nil
}

// NormalizeAtX scales y so the sample nearest to x0 maps to exactly 1.0.
// This is the edge-step normalization used for XANES μ(E): the declared edge
// energy becomes the unit reference independent of the input scale.
func NormalizeAtX(x, y []float64, x0 float64) ([]float64, error) {
	ref, err := valueAt(x, y, x0)
	if err != nil {
		return nil, err
	}
	if ref == 0 {
		return nil, fmt.Errorf("normalize: reference value at x=%g is zero", x0)
	}
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v / ref
	}
	return out, nil
}

// OffsetAtX shifts y so the sample nearest to x0 maps to exactly 0.0.
func OffsetAtX(x, y []float64, x0 float64) ([]float64, error) {
	ref, err := valueAt(x, y, x0)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v - ref
	}
	return out, nil
}

// Offset adds a constant to every sample (plot separation offsets).
func Offset(y []float64, c float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v + c
	}
	return out
}

// Scale multiplies every sample by a constant (unit conversions).
func Scale(y []float64, c float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v * c
	}
	return out
}

func valueAt(x, y []float64, x0 float64) (float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, fmt.Errorf("series lengths mismatch: %d vs %d", len(x), len(y))
	}
	best := 0
	bestDist := math.Abs(x[0] - x0)
	for i, v := range x {
		if d := math.Abs(v - x0); d < bestDist {
			best, bestDist = i, d
		}
	}
	return y[best], nil
}
