package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Regression holds an ordinary least-squares line fit with the statistics
// the Williamson-Hall analysis reports.
type Regression struct {
	Slope     float64
	Intercept float64
	R         float64 // Pearson correlation of x and y
	StdErr    float64 // standard error of the slope
}

// LinearFit fits y = slope*x + intercept by least squares.
func LinearFit(x, y []float64) (*Regression, error) {
	if len(x) != len(y) || len(x) < 3 {
		return nil, fmt.Errorf("linear fit: need at least 3 paired points, got %d/%d", len(x), len(y))
	}
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(slope) || math.IsNaN(intercept) {
		return nil, &FitError{Detail: "linear regression produced NaN coefficients"}
	}
	r := stat.Correlation(x, y, nil)

	// Standard error of the slope from the residual variance.
	n := float64(len(x))
	xMean := stat.Mean(x, nil)
	var ssRes, ssX float64
	for i := range x {
		resid := y[i] - (slope*x[i] + intercept)
		ssRes += resid * resid
		dx := x[i] - xMean
		ssX += dx * dx
	}
	if ssX == 0 {
		return nil, &FitError{Detail: "linear regression on degenerate x values"}
	}
	stdErr := math.Sqrt(ssRes / (n - 2) / ssX)

	return &Regression{Slope: slope, Intercept: intercept, R: r, StdErr: stdErr}, nil
}

// Predict evaluates the fitted line at x.
func (r *Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// WilliamsonHall interprets a regression of βcosθ/λ against sinθ/λ:
// the intercept carries the crystallite-size broadening and the slope the
// lattice strain. Sizes come out in the units of 1/intercept.
type WilliamsonHall struct {
	Regression
	CrystalliteSize float64
	LatticeStrain   float64
}

// WilliamsonHallFit runs the size/strain separation on peak-width data.
func WilliamsonHallFit(sinThetaLambda, betaCosThetaLambda []float64) (*WilliamsonHall, error) {
	reg, err := LinearFit(sinThetaLambda, betaCosThetaLambda)
	if err != nil {
		return nil, err
	}
	if reg.Intercept <= 0 {
		return nil, &FitError{Detail: fmt.Sprintf("non-physical Williamson-Hall intercept %g", reg.Intercept)}
	}
	return &WilliamsonHall{
		Regression:      *reg,
		CrystalliteSize: 1.0 / reg.Intercept,
		LatticeStrain:   reg.Slope / 4.0,
	}, nil
}

// Pearson returns the Pearson correlation coefficient of two size series,
// e.g. SAXS particle size against XRD Scherrer size over the sample set.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, fmt.Errorf("correlation: need at least 2 paired points, got %d/%d", len(x), len(y))
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, fmt.Errorf("correlation: undefined for constant series")
	}
	return r, nil
}
