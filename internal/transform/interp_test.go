package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterp(t *testing.T) {
	t.Parallel()

	t.Run("interior point", func(t *testing.T) {
		t.Parallel()
		v, err := Interp(1.5, []float64{0, 1, 2}, []float64{0, 10, 20})
		require.NoError(t, err)
		assert.InDelta(t, 15.0, v, 1e-12)
	})

	t.Run("clamps outside the range", func(t *testing.T) {
		t.Parallel()
		lo, err := Interp(-5, []float64{0, 1, 2}, []float64{3, 10, 20})
		require.NoError(t, err)
		assert.Equal(t, 3.0, lo)

		hi, err := Interp(100, []float64{0, 1, 2}, []float64{3, 10, 20})
		require.NoError(t, err)
		assert.Equal(t, 20.0, hi)
	})

	t.Run("unsorted input with duplicates", func(t *testing.T) {
		t.Parallel()
		v, err := Interp(0.5, []float64{2, 0, 1, 1}, []float64{20, 0, 10, 10})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, v, 1e-12)
	})

	t.Run("single distinct x fails", func(t *testing.T) {
		t.Parallel()
		_, err := Interp(1, []float64{2, 2}, []float64{5, 5})
		assert.Error(t, err)
	})
}

func TestLeadingEdge(t *testing.T) {
	t.Parallel()

	t.Run("crossing of a fermi-like edge", func(t *testing.T) {
		t.Parallel()
		var x, y []float64
		for v := 0.0; v <= 4.0; v += 0.1 {
			x = append(x, v)
			y = append(y, 1/(1+math.Exp((v-2.0)/0.2)))
		}

		pos, err := LeadingEdge(x, y, 0.05, 0.75, 0.4)
		require.NoError(t, err)
		// Logistic crosses 0.4 at 2 + 0.2*ln(1.5).
		assert.InDelta(t, 2.0+0.2*math.Log(1.5), pos, 0.01)
	})

	t.Run("flat series has no flank", func(t *testing.T) {
		t.Parallel()
		x := []float64{0, 1, 2, 3}
		y := []float64{0.01, 0.01, 0.01, 0.01}
		_, err := LeadingEdge(x, y, 0.05, 0.75, 0.4)
		assert.Error(t, err)
	})
}
