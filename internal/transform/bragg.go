package transform

import (
	"fmt"
	"math"
)

// hbarc is the reduced Planck constant times c in keV·Å.
const hbarc = 1.97

// BraggTwoTheta returns the 2θ diffraction angle in degrees for the (hkl)
// reflection of a cubic lattice with constant a (Å) at the given X-ray
// energy (keV), first diffraction order.
func BraggTwoTheta(a float64, h, k, l int, energyKeV float64) (float64, error) {
	if a <= 0 || energyKeV <= 0 {
		return 0, fmt.Errorf("bragg: non-physical lattice constant %g or energy %g", a, energyKeV)
	}
	d := a / math.Sqrt(float64(h*h+k*k+l*l))
	s := hbarc * math.Pi / (d * energyKeV)
	if s > 1 {
		return 0, fmt.Errorf("bragg: reflection (%d%d%d) not reachable at %g keV", h, k, l, energyKeV)
	}
	return 2.0 * math.Asin(s) * 180 / math.Pi, nil
}
