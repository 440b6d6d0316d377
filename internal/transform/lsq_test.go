package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLeastSquares(t *testing.T) {
	t.Parallel()

	// y = a*exp(-b*x) sampled exactly.
	xs := make([]float64, 40)
	ys := make([]float64, 40)
	for i := range xs {
		xs[i] = float64(i) * 0.25
		ys[i] = 2.0 * math.Exp(-0.5*xs[i])
	}
	expDecay := func(params, out []float64) {
		for i := range xs {
			out[i] = ys[i] - params[0]*math.Exp(-params[1]*xs[i])
		}
	}

	t.Run("recovers exponential decay parameters", func(t *testing.T) {
		t.Parallel()
		res, err := SolveLeastSquares(LeastSquaresProblem{
			Residuals:    expDecay,
			NumResiduals: len(xs),
		}, []float64{1, 1})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, res.Params[0], 1e-4)
		assert.InDelta(t, 0.5, res.Params[1], 1e-4)
		assert.Less(t, res.Cost, 1e-8)
		assert.Greater(t, res.Iterations, 0)
	})

	t.Run("upper bound pins the solution", func(t *testing.T) {
		t.Parallel()
		res, err := SolveLeastSquares(LeastSquaresProblem{
			Residuals:    expDecay,
			NumResiduals: len(xs),
			Lower:        []float64{0, 0},
			Upper:        []float64{1.5, 10},
		}, []float64{1, 1})
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Params[0], 1.5+1e-12)
	})

	t.Run("standard errors shrink with tighter data", func(t *testing.T) {
		t.Parallel()
		res, err := SolveLeastSquares(LeastSquaresProblem{
			Residuals:    expDecay,
			NumResiduals: len(xs),
		}, []float64{1, 1})
		require.NoError(t, err)
		require.Len(t, res.StdErr, 2)
		assert.False(t, math.IsNaN(res.StdErr[0]))
		assert.False(t, math.IsNaN(res.StdErr[1]))
	})

	t.Run("more parameters than residuals", func(t *testing.T) {
		t.Parallel()
		_, err := SolveLeastSquares(LeastSquaresProblem{
			Residuals:    func(params, out []float64) {},
			NumResiduals: 1,
		}, []float64{1, 1})
		assert.Error(t, err)
	})

	t.Run("non-finite initial residuals", func(t *testing.T) {
		t.Parallel()
		_, err := SolveLeastSquares(LeastSquaresProblem{
			Residuals: func(params, out []float64) {
				out[0] = math.NaN()
			},
			NumResiduals: 2,
		}, []float64{1})
		var ferr *FitError
		require.ErrorAs(t, err, &ferr)
	})
}
