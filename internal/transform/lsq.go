package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LeastSquaresProblem describes a bounded nonlinear least-squares fit.
// Residuals writes model-vs-data residuals for the given parameters into
// out, which has NumResiduals elements. Lower and Upper, when non-nil,
// clamp the parameters (box constraints).
type LeastSquaresProblem struct {
	Residuals    func(params, out []float64)
	NumResiduals int
	Lower        []float64
	Upper        []float64
}

// LeastSquaresResult carries the fitted parameters with standard errors
// derived from the Jacobian at the solution.
type LeastSquaresResult struct {
	Params     []float64
	StdErr     []float64
	Cost       float64 // half sum of squared residuals
	Iterations int
}

// SolveLeastSquares minimizes the sum of squared residuals with a
// Levenberg-Marquardt iteration using a forward-difference Jacobian.
// Parameters are projected onto the bounds after every accepted step.
// Returns a FitError if the iteration fails to converge or the model
// produces non-finite residuals.
func SolveLeastSquares(p LeastSquaresProblem, init []float64) (*LeastSquaresResult, error) {
	n := len(init)
	m := p.NumResiduals
	if n == 0 || m < n {
		return nil, fmt.Errorf("least squares: %d parameters, %d residuals", n, m)
	}

	const (
		maxIters = 200
		ftol     = 1e-10
		xtol     = 1e-10
	)

	params := make([]float64, n)
	copy(params, init)
	clampParams(params, p.Lower, p.Upper)

	r := make([]float64, m)
	p.Residuals(params, r)
	if !allFinite(r) {
		return nil, &FitError{Detail: "model produced non-finite residuals at the initial guess"}
	}
	cost := half(dot(r, r))

	lambda := 1e-3
	trial := make([]float64, n)
	rTrial := make([]float64, m)

	var iter int
	for iter = 0; iter < maxIters; iter++ {
		jac := numJacobian(p, params, r)

		var jtj mat.SymDense
		jtj.SymOuterK(1, jac.T())
		jtr := make([]float64, n)
		for j := 0; j < n; j++ {
			var s float64
			for i := 0; i < m; i++ {
				s += jac.At(i, j) * r[i]
			}
			jtr[j] = s
		}

		stepped := false
		for attempt := 0; attempt < 20; attempt++ {
			// Damped normal equations: (JtJ + lambda*diag(JtJ)) dx = -Jt r.
			damped := mat.NewDense(n, n, nil)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					v := jtj.At(i, j)
					if i == j {
						d := jtj.At(i, i)
						if d == 0 {
							d = 1e-12
						}
						v += lambda * d
					}
					damped.Set(i, j, v)
				}
			}
			delta := mat.NewVecDense(n, nil)
			rhs := mat.NewVecDense(n, nil)
			for i, v := range jtr {
				rhs.SetVec(i, -v)
			}
			if err := delta.SolveVec(damped, rhs); err != nil {
				lambda *= 10
				continue
			}

			for i := 0; i < n; i++ {
				trial[i] = params[i] + delta.AtVec(i)
			}
			clampParams(trial, p.Lower, p.Upper)

			p.Residuals(trial, rTrial)
			if !allFinite(rTrial) {
				lambda *= 10
				continue
			}
			trialCost := half(dot(rTrial, rTrial))
			if trialCost < cost {
				maxStep := 0.0
				for i := 0; i < n; i++ {
					if d := math.Abs(trial[i] - params[i]); d > maxStep {
						maxStep = d
					}
				}
				improvement := cost - trialCost
				copy(params, trial)
				copy(r, rTrial)
				cost = trialCost
				lambda = math.Max(lambda/10, 1e-12)
				stepped = true

				if improvement < ftol*(1+cost) || maxStep < xtol {
					iter++
					return finishLeastSquares(p, params, cost, iter)
				}
				break
			}
			lambda *= 10
		}
		if !stepped {
			// No downhill step found at any damping: stationary point.
			return finishLeastSquares(p, params, cost, iter+1)
		}
	}
	return nil, &FitError{Detail: fmt.Sprintf("no convergence after %d iterations (cost %.6g)", maxIters, cost)}
}

func finishLeastSquares(p LeastSquaresProblem, params []float64, cost float64, iters int) (*LeastSquaresResult, error) {
	n := len(params)
	r := make([]float64, p.NumResiduals)
	p.Residuals(params, r)
	jac := numJacobian(p, params, r)

	var jtj mat.SymDense
	jtj.SymOuterK(1, jac.T())

	stderr := make([]float64, n)
	var chol mat.Cholesky
	if chol.Factorize(&jtj) {
		var cov mat.SymDense
		if err := chol.InverseTo(&cov); err == nil {
			for i := 0; i < n; i++ {
				if v := cov.At(i, i); v > 0 {
					stderr[i] = math.Sqrt(v)
				} else {
					stderr[i] = math.NaN()
				}
			}
		}
	} else {
		for i := range stderr {
			stderr[i] = math.NaN()
		}
	}

	out := &LeastSquaresResult{
		Params:     append([]float64(nil), params...),
		StdErr:     stderr,
		Cost:       cost,
		Iterations: iters,
	}
	return out, nil
}

func numJacobian(p LeastSquaresProblem, params, r0 []float64) *mat.Dense {
	n := len(params)
	m := p.NumResiduals
	jac := mat.NewDense(m, n, nil)
	perturbed := make([]float64, n)
	rp := make([]float64, m)
	for j := 0; j < n; j++ {
		copy(perturbed, params)
		h := 1e-8 * math.Max(1, math.Abs(params[j]))
		perturbed[j] += h
		if p.Upper != nil && perturbed[j] > p.Upper[j] {
			perturbed[j] = params[j] - h
			h = -h
		}
		p.Residuals(perturbed, rp)
		for i := 0; i < m; i++ {
			jac.Set(i, j, (rp[i]-r0[i])/h)
		}
	}
	return jac
}

func clampParams(params, lower, upper []float64) {
	for i := range params {
		if lower != nil && params[i] < lower[i] {
			params[i] = lower[i]
		}
		if upper != nil && params[i] > upper[i] {
			params[i] = upper[i]
		}
	}
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func half(v float64) float64 { return v / 2 }
