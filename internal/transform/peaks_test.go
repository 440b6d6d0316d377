package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaussSum(x float64, centers, heights []float64, sigma float64) float64 {
	var v float64
	for i, c := range centers {
		d := x - c
		v += heights[i] * math.Exp(-d*d/(2*sigma*sigma))
	}
	return v
}

func TestFindPeaks(t *testing.T) {
	t.Parallel()

	centers := []float64{2.0, 2.3, 5.0, 8.0}
	heights := []float64{5, 3, 4, 2}
	var x, y []float64
	for v := 0.0; v <= 10.0; v += 0.1 {
		x = append(x, v)
		y = append(y, gaussSum(v, centers, heights, 0.05))
	}

	t.Run("spacing constraint keeps the taller peak", func(t *testing.T) {
		t.Parallel()
		peaks, err := FindPeaks(x, y, 0.5, 9.5, 0.5, 6)
		require.NoError(t, err)
		require.Len(t, peaks, 3)
		assert.InDelta(t, 2.0, peaks[0], 0.05)
		assert.InDelta(t, 5.0, peaks[1], 0.05)
		assert.InDelta(t, 8.0, peaks[2], 0.05)
	})

	t.Run("maxCount keeps the most prominent", func(t *testing.T) {
		t.Parallel()
		peaks, err := FindPeaks(x, y, 0.5, 9.5, 0.5, 2)
		require.NoError(t, err)
		require.Len(t, peaks, 2)
		assert.InDelta(t, 2.0, peaks[0], 0.05)
		assert.InDelta(t, 5.0, peaks[1], 0.05)
	})

	t.Run("window excludes edge peaks", func(t *testing.T) {
		t.Parallel()
		peaks, err := FindPeaks(x, y, 3.0, 9.5, 0.5, 6)
		require.NoError(t, err)
		require.Len(t, peaks, 2)
		assert.InDelta(t, 5.0, peaks[0], 0.05)
	})

	t.Run("too few points", func(t *testing.T) {
		t.Parallel()
		_, err := FindPeaks([]float64{1, 2}, []float64{1, 2}, 0, 10, 0.5, 6)
		assert.Error(t, err)
	})
}
