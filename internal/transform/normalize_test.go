package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMax(t *testing.T) {
	t.Parallel()

	t.Run("peak maps to exactly one", func(t *testing.T) {
		t.Parallel()
		y, err := NormalizeMax([]float64{2, 8, 4})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.25, 1.0, 0.5}, y)
	})

	t.Run("scale invariance", func(t *testing.T) {
		t.Parallel()
		a, err := NormalizeMax([]float64{1, 3, 2})
		require.NoError(t, err)
		b, err := NormalizeMax([]float64{1000, 3000, 2000})
		require.NoError(t, err)
		assert.InDeltaSlice(t, a, b, 1e-12)
	})

	t.Run("empty and zero series fail", func(t *testing.T) {
		t.Parallel()
		_, err := NormalizeMax(nil)
		assert.Error(t, err)
		_, err = NormalizeMax([]float64{0, 0})
		assert.Error(t, err)
	})
}

func TestNormalizeAtX(t *testing.T) {
	t.Parallel()

	t.Run("reference point maps to exactly one", func(t *testing.T) {
		t.Parallel()
		x := []float64{11540, 11560, 11564, 11580}
		y := []float64{120, 480, 500, 490}

		norm, err := NormalizeAtX(x, y, 11564)
		require.NoError(t, err)
		assert.Equal(t, 1.0, norm[2])
		assert.InDelta(t, 0.24, norm[0], 1e-12)
	})

	t.Run("nearest sample is used for off-grid reference", func(t *testing.T) {
		t.Parallel()
		x := []float64{1, 2, 3}
		y := []float64{10, 20, 30}
		norm, err := NormalizeAtX(x, y, 2.2)
		require.NoError(t, err)
		assert.Equal(t, 1.0, norm[1])
	})
}

func TestOffsetAtX(t *testing.T) {
	t.Parallel()

	x := []float64{0, 1, 2}
	y := []float64{5, 7, 9}
	out, err := OffsetAtX(x, y, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 4}, out)
}

func TestOffsetAndScale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{11, 12}, Offset([]float64{1, 2}, 10))
	assert.Equal(t, []float64{2, 4}, Scale([]float64{1, 2}, 2))
}
