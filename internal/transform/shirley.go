package transform

import (
	"fmt"
	"math"
)

// Shirley subtracts a Shirley background from a core-level spectrum. The
// background at each point is proportional to the integrated intensity above
// it, iterated to self-consistency. xMin and xMax bound the spectral region
// whose endpoints anchor the background. Returns the corrected intensity.
func Shirley(bindingEnergy, intensity []float64, xMin, xMax float64) ([]float64, error) {
	if len(bindingEnergy) != len(intensity) || len(bindingEnergy) == 0 {
		return nil, fmt.Errorf("shirley: series lengths mismatch")
	}
	const (
		eps      = 1e-7
		maxIters = 50
	)

	idxMin := nearestIndex(bindingEnergy, xMin)
	idxMax := nearestIndex(bindingEnergy, xMax)
	if idxMin > idxMax {
		idxMin, idxMax = idxMax, idxMin
	}

	n := len(intensity)
	bg := make([]float64, n)
	newBg := make([]float64, n)
	iLeft := intensity[idxMin]
	iRight := intensity[idxMax]

	cumInt := cumsum(intensity)
	converged := false
	for iter := 0; iter < maxIters; iter++ {
		cumBg := cumsum(bg)
		denom := cumInt[idxMin] - cumInt[idxMax]
		if denom == 0 {
			return nil, fmt.Errorf("shirley: degenerate spectrum, zero integrated intensity between anchors")
		}
		k := (iLeft - iRight) / denom
		for i := 0; i < n; i++ {
			newBg[i] = iRight + k*(cumInt[idxMin]-cumInt[i]-cumBg[idxMin]+cumBg[i])
		}

		maxDelta := 0.0
		for i := 0; i < n; i++ {
			if d := math.Abs(newBg[i] - bg[i]); d > maxDelta {
				maxDelta = d
			}
		}
		copy(bg, newBg)
		if maxDelta < eps {
			converged = true
			break
		}
	}
	if !converged {
		return nil, &FitError{Detail: "shirley background did not converge within 50 iterations"}
	}

	out := make([]float64, n)
	for i := range intensity {
		out[i] = intensity[i] - bg[i]
	}
	return out, nil
}

func cumsum(v []float64) []float64 {
	out := make([]float64, len(v))
	sum := 0.0
	for i, x := range v {
		sum += x
		out[i] = sum
	}
	return out
}

func nearestIndex(x []float64, x0 float64) int {
	best := 0
	bestDist := math.Abs(x[0] - x0)
	for i, v := range x {
		if d := math.Abs(v - x0); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
