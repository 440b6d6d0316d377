package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// TrPeak is one fitted Gaussian component of a T(r) profile with the area of
// its own contribution (peak + baseline, adjacent Gaussians excluded).
type TrPeak struct {
	Amplitude    float64
	AmplitudeErr float64
	Position     float64
	PositionErr  float64
	Sigma        float64
	SigmaErr     float64
	Area         float64
	AreaErr      float64
}

// TrFit is a fit of the total radial distribution function T(r) with a sum
// of Gaussians on top of the physical 4πρr baseline plus a short-range
// correction term A·r^n·e^(−λr) with A<0, n>0, λ>0.
type TrFit struct {
	Rho    float64
	RhoErr float64
	A      float64
	AErr   float64
	N      float64
	NErr   float64
	Lambda float64
	LamErr float64
	Peaks  []TrPeak
	Cost   float64
}

// Parameter vector layout: [rho, (amp, pos, sigma) per peak, A, n, lambda].
func trModel(x float64, params []float64) float64 {
	rho := params[0]
	numPeaks := (len(params) - 4) / 3
	v := 4 * math.Pi * x * rho
	for p := 0; p < numPeaks; p++ {
		amp, pos, sigma := params[1+3*p], params[2+3*p], params[3+3*p]
		if sigma == 0 {
			continue
		}
		d := x - pos
		v += amp * math.Exp(-d*d/(2*sigma*sigma))
	}
	a, n, lam := params[len(params)-3], params[len(params)-2], params[len(params)-1]
	v += a * math.Pow(x, n) * math.Exp(-lam*x)
	return v
}

// trBaseline is the model without the Gaussian components.
func trBaseline(x float64, rho, a, n, lam float64) float64 {
	return 4*math.Pi*x*rho + a*math.Pow(x, n)*math.Exp(-lam*x)
}

// FitTr fits the T(r) model at the given peak seed positions. Peak centers
// are constrained to ±0.1 Å of their seeds and amplitudes and widths to
// non-negative values; the correction term is held to its physical sign
// constraints. Seeds typically come from FindPeaks.
func FitTr(x, y []float64, peakSeeds []float64) (*TrFit, error) {
	if len(x) != len(y) || len(x) == 0 {
		return nil, fmt.Errorf("tr fit: series lengths mismatch")
	}
	if len(peakSeeds) == 0 {
		return nil, &FitError{Detail: "tr fit: no peaks found in the search window"}
	}

	nParams := 1 + 3*len(peakSeeds) + 3
	init := make([]float64, 0, nParams)
	lower := make([]float64, 0, nParams)
	upper := make([]float64, 0, nParams)

	init = append(init, 0.01) // rho
	lower = append(lower, math.Inf(-1))
	upper = append(upper, math.Inf(1))
	for _, seed := range peakSeeds {
		init = append(init, 1.0, seed, 0.1)
		lower = append(lower, 0, seed-0.1, 0)
		upper = append(upper, math.Inf(1), seed+0.1, math.Inf(1))
	}
	init = append(init, -1.0, 1.0, 1.0) // A, n, lambda
	lower = append(lower, math.Inf(-1), 0, 0)
	upper = append(upper, 0, math.Inf(1), math.Inf(1))

	problem := LeastSquaresProblem{
		NumResiduals: len(x),
		Lower:        lower,
		Upper:        upper,
		Residuals: func(params, out []float64) {
			for i := range x {
				out[i] = y[i] - trModel(x[i], params)
			}
		},
	}
	res, err := SolveLeastSquares(problem, init)
	if err != nil {
		return nil, err
	}

	params := res.Params
	errs := res.StdErr
	last := len(params)
	fit := &TrFit{
		Rho:    params[0],
		RhoErr: errs[0],
		A:      params[last-3],
		AErr:   errs[last-3],
		N:      params[last-2],
		NErr:   errs[last-2],
		Lambda: params[last-1],
		LamErr: errs[last-1],
		Cost:   res.Cost,
	}
	if fit.Rho < 0 {
		return nil, &FitError{Detail: fmt.Sprintf("non-physical density rho=%g", fit.Rho)}
	}

	for p := 0; p < len(peakSeeds); p++ {
		amp, pos, sigma := params[1+3*p], params[2+3*p], params[3+3*p]
		ampErr, posErr, sigmaErr := errs[1+3*p], errs[2+3*p], errs[3+3*p]

		area, err := fit.peakArea(x, amp, pos, sigma)
		if err != nil {
			return nil, err
		}
		areaErr := math.NaN()
		if amp != 0 && !math.IsNaN(ampErr) {
			areaErr = math.Abs(ampErr/amp) * area
		}
		fit.Peaks = append(fit.Peaks, TrPeak{
			Amplitude: amp, AmplitudeErr: ampErr,
			Position: pos, PositionErr: posErr,
			Sigma: sigma, SigmaErr: sigmaErr,
			Area: area, AreaErr: areaErr,
		})
	}
	return fit, nil
}

// Eval evaluates the full fitted model on a grid.
func (t *TrFit) Eval(x []float64) []float64 {
	params := t.paramVector()
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = trModel(v, params)
	}
	return out
}

// PeakProfile evaluates peak i plus the baseline terms on a grid, clipped to
// non-negative values, for area hatching in the rendered figure.
func (t *TrFit) PeakProfile(i int, x []float64) []float64 {
	pk := t.Peaks[i]
	out := make([]float64, len(x))
	for j, v := range x {
		d := v - pk.Position
		y := pk.Amplitude*math.Exp(-d*d/(2*pk.Sigma*pk.Sigma)) + trBaseline(v, t.Rho, t.A, t.N, t.Lambda)
		if y < 0 {
			y = 0
		}
		out[j] = y
	}
	return out
}

func (t *TrFit) paramVector() []float64 {
	params := make([]float64, 0, 4+3*len(t.Peaks))
	params = append(params, t.Rho)
	for _, pk := range t.Peaks {
		params = append(params, pk.Amplitude, pk.Position, pk.Sigma)
	}
	params = append(params, t.A, t.N, t.Lambda)
	return params
}

// peakArea integrates one peak's own contribution over ±3σ on the data grid,
// keeping only positive samples.
func (t *TrFit) peakArea(x []float64, amp, pos, sigma float64) (float64, error) {
	var xs, ys []float64
	for _, v := range x {
		if v < pos-3*sigma || v > pos+3*sigma {
			continue
		}
		d := v - pos
		y := amp*math.Exp(-d*d/(2*sigma*sigma)) + trBaseline(v, t.Rho, t.A, t.N, t.Lambda)
		if y <= 0 {
			continue
		}
		xs = append(xs, v)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return 0, &FitError{Detail: fmt.Sprintf("peak at %g Å too narrow to integrate (sigma %g)", pos, sigma)}
	}
	return integrate.Trapezoidal(xs, ys), nil
}
