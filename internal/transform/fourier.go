package transform

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FourierOptions configures the EXAFS k-space to R-space transform.
type FourierOptions struct {
	KMin    float64 // Hann window onset in Å⁻¹
	KMax    float64 // Hann window cutoff in Å⁻¹
	KWeight int     // k-weighting exponent applied to χ(k), typically 2
	DK      float64 // uniform grid spacing; defaults to 0.05 Å⁻¹
	NFFT    int     // transform length; defaults to 2048
	RMax    float64 // truncate the returned R axis; defaults to 10 Å
}

// FourierKtoR computes |χ(R)|, the magnitude of the windowed Fourier
// transform of k-weighted χ(k):
//
//	χ(R) = 1/√π ∫ k^w χ(k) W(k) e^{2ikR} dk
//
// χ(k) is resampled onto a uniform k grid, Hann-windowed over [KMin, KMax],
// zero-padded and transformed. The conjugate variable of k under e^{2ikR} is
// 2R, so the R grid spacing is π/(NFFT·dk).
func FourierKtoR(k, chi []float64, opts FourierOptions) (r, mag []float64, err error) {
	if len(k) != len(chi) || len(k) < 4 {
		return nil, nil, fmt.Errorf("fourier: need at least 4 paired samples")
	}
	if opts.KMax <= opts.KMin {
		return nil, nil, fmt.Errorf("fourier: bad window [%g, %g]", opts.KMin, opts.KMax)
	}
	dk := opts.DK
	if dk == 0 {
		dk = 0.05
	}
	nfft := opts.NFFT
	if nfft == 0 {
		nfft = 2048
	}
	rMax := opts.RMax
	if rMax == 0 {
		rMax = 10
	}

	kLo, kHi := k[0], k[len(k)-1]
	grid := make([]float64, nfft)
	for i := 0; i < nfft; i++ {
		kg := float64(i) * dk
		if kg < kLo || kg > kHi || kg < opts.KMin || kg > opts.KMax {
			continue
		}
		v, err := Interp(kg, k, chi)
		if err != nil {
			return nil, nil, fmt.Errorf("fourier: %w", err)
		}
		// Hann window over the transform range.
		w := 0.5 * (1 - math.Cos(2*math.Pi*(kg-opts.KMin)/(opts.KMax-opts.KMin)))
		grid[i] = v * math.Pow(kg, float64(opts.KWeight)) * w
	}

	fft := fourier.NewFFT(nfft)
	coeffs := fft.Coefficients(nil, grid)

	dr := math.Pi / (float64(nfft) * dk)
	scale := dk / math.Sqrt(math.Pi)
	for j := range coeffs {
		rj := float64(j) * dr
		if rj > rMax {
			break
		}
		r = append(r, rj)
		mag = append(mag, scale*cmplx.Abs(coeffs[j]))
	}
	return r, mag, nil
}
