package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShirley(t *testing.T) {
	t.Parallel()

	t.Run("constant spectrum corrects to zero", func(t *testing.T) {
		t.Parallel()
		var be, intensity []float64
		for v := 84.0; v >= 64.0; v -= 0.25 {
			be = append(be, v)
			intensity = append(intensity, 3.5)
		}

		out, err := Shirley(be, intensity, 80, 68)
		require.NoError(t, err)
		for _, v := range out {
			assert.InDelta(t, 0.0, v, 1e-9)
		}
	})

	t.Run("peak on a flat background survives subtraction", func(t *testing.T) {
		t.Parallel()
		var be, intensity []float64
		for v := 84.0; v >= 64.0; v -= 0.25 {
			be = append(be, v)
			d := v - 74.0
			intensity = append(intensity, 2.0+10.0*math.Exp(-d*d/2.0))
		}

		out, err := Shirley(be, intensity, 80, 68)
		require.NoError(t, err)
		require.Len(t, out, len(be))

		peak := nearestIndex(be, 74.0)
		assert.InDelta(t, 10.0, out[peak], 0.1)
		assert.InDelta(t, 0.0, out[nearestIndex(be, 80.0)], 0.05)
		assert.InDelta(t, 0.0, out[nearestIndex(be, 68.0)], 0.05)
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := Shirley([]float64{1, 2}, []float64{1}, 0, 1)
		assert.Error(t, err)
	})
}
