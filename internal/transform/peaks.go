package transform

import (
	"fmt"
	"sort"
)

// FindPeaks locates local maxima of y within the x window [xMin, xMax],
// keeping peaks at least minDistance apart in x (taller peaks win) and at
// most maxCount of the most prominent ones. Returned peak positions are
// sorted ascending in x.
func FindPeaks(x, y []float64, xMin, xMax, minDistance float64, maxCount int) ([]float64, error) {
	if len(x) != len(y) || len(x) < 3 {
		return nil, fmt.Errorf("find peaks: need at least 3 paired points")
	}

	type peak struct {
		pos    float64
		height float64
	}
	var cands []peak
	for i := 1; i < len(x)-1; i++ {
		if x[i] <= xMin || x[i] >= xMax {
			continue
		}
		if y[i] > y[i-1] && y[i] >= y[i+1] {
			cands = append(cands, peak{pos: x[i], height: y[i]})
		}
	}

	// Greedy selection by height with a spacing constraint, mirroring the
	// distance parameter of the usual peak pickers.
	sort.Slice(cands, func(i, j int) bool { return cands[i].height > cands[j].height })
	var kept []peak
	for _, c := range cands {
		tooClose := false
		for _, k := range kept {
			if abs(c.pos-k.pos) < minDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}

	if maxCount > 0 && len(kept) > maxCount {
		kept = kept[:maxCount]
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].pos < kept[j].pos })

	out := make([]float64, len(kept))
	for i, k := range kept {
		out[i] = k.pos
	}
	return out, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
