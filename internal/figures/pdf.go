package figures

import (
	"fmt"
	"image/color"

	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
	"github.com/fcbenten/figures/internal/transform"
)

// pdfSQ plots the total structure factor S(Q) of TEC10V30E.
func pdfSQ() figure.Spec {
	return figure.Spec{
		Name:   "pdf_sq",
		Output: "pdf_sq.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			x, y, err := textXY(env.FS, env.DataPath("pdf_S_q_fqd.txt"), 0, 1, 2)
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Q (Å^-1)", Min: 0, Max: 27, Fixed: true},
				Y: render.Axis{Label: "S(Q)"},
				Layers: []render.Layer{
					render.Line{Label: "TEC10V30E", X: x, Y: y, Color: render.Black, Width: 2},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// pdfGr plots the reduced pair distribution function G(r).
func pdfGr() figure.Spec {
	return figure.Spec{
		Name:   "pdf_gr",
		Output: "pdf_Gr.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			x, y, err := textXY(env.FS, env.DataPath("pdf_bigG_r.txt"), 0, 1, 2)
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "r (Å)", Min: 0, Max: 63, Fixed: true},
				Y: render.Axis{Label: "G(r) (Å^-2)"},
				Layers: []render.Layer{
					render.Line{Label: "TEC10V30E", X: x, Y: y, Color: render.Black},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

const pdfSegments = 7

// readSegments collects the Twotheta{i}/Count{i}/I0 column pairs of one
// sheet of the segmented PDF measurement.
func readSegments(env figure.Env, sheet string) ([]transform.Segment, error) {
	var required []string
	for i := 1; i <= pdfSegments; i++ {
		required = append(required,
			fmt.Sprintf("Twotheta%d", i),
			fmt.Sprintf("Count%d/I0", i))
	}
	tbl, err := dataset.ReadSheet(env.FS, env.DataPath("pdf_data.xlsx"), sheet, required)
	if err != nil {
		return nil, err
	}
	segs := make([]transform.Segment, pdfSegments)
	for i := 1; i <= pdfSegments; i++ {
		x, y, err := tbl.ColumnNoNaN(fmt.Sprintf("Twotheta%d", i), fmt.Sprintf("Count%d/I0", i))
		if err != nil {
			return nil, err
		}
		segs[i-1] = transform.Segment{X: x, Y: y}
	}
	return segs, nil
}

// pdfData joins the seven detector positions of the PDF measurement into
// continuous raw, background and corrected profiles on a log intensity
// axis. Segment scales come from the raw data overlaps; the background
// additionally gets chained offsets so its subtraction stays consistent.
func pdfData() figure.Spec {
	return figure.Spec{
		Name:   "pdf_data",
		Output: "pdf_data.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			raw, err := readSegments(env, "raw_data")
			if err != nil {
				return nil, err
			}
			bkg, err := readSegments(env, "quartz_cap")
			if err != nil {
				return nil, err
			}
			corrected, err := readSegments(env, "corrected_data")
			if err != nil {
				return nil, err
			}

			plan, err := transform.NewStitchPlan(raw, bkg)
			if err != nil {
				return nil, err
			}
			rawX, rawY, err := plan.Concatenate(raw, nil)
			if err != nil {
				return nil, err
			}
			bkgX, bkgY, err := plan.Concatenate(bkg, plan.BkgOffsets)
			if err != nil {
				return nil, err
			}
			corrX, corrY, err := plan.Concatenate(corrected, nil)
			if err != nil {
				return nil, err
			}

			return &render.Chart{
				X: render.Axis{Label: "2θ (degree)", Min: 0, Max: 55.5, Fixed: true},
				Y: render.Axis{Label: "Intensity (a.u.)", Min: 1e-5, Max: 1e-1, Fixed: true, Log: true},
				Layers: []render.Layer{
					render.Line{Label: "Raw data", X: rawX, Y: rawY, Color: render.Red},
					render.Line{Label: "Background", X: bkgX, Y: bkgY, Color: render.Blue},
					render.Line{Label: "Corrected data", X: corrX, Y: corrY, Color: render.Black},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// Peak search and display windows for the T(r) shell fit.
const (
	trPeakMin      = 2.0
	trPeakMax      = 8.0
	trPeakSpacing  = 0.5
	trPeakMaxCount = 6
	trPeaksShown   = 5
	trFitVisibleTo = 6.9
)

var trPeakFills = []color.Color{render.Blue, render.Orange, render.Green, render.Red, render.Purple, render.Brown}

// pdfTrFit fits the total radial distribution function T(r) with Gaussian
// shells on the physical baseline and hatches each shell's own area.
func pdfTrFit() figure.Spec {
	return figure.Spec{
		Name:   "pdf_tr_fit",
		Output: "pdf_tr_fit.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			x, y, err := textXY(env.FS, env.DataPath("pdf_T_r.txt"), 0, 1, 0)
			if err != nil {
				return nil, err
			}

			seeds, err := transform.FindPeaks(x, y, trPeakMin, trPeakMax, trPeakSpacing, trPeakMaxCount)
			if err != nil {
				return nil, err
			}
			fit, err := transform.FitTr(x, y, seeds)
			if err != nil {
				return nil, err
			}
			for i, pk := range fit.Peaks {
				figure.Logf("pdf_tr_fit: peak %d position %.3f ± %.3f, sigma %.3f ± %.3f, area %.2f ± %.2f",
					i+1, pk.Position, pk.PositionErr, pk.Sigma, pk.SigmaErr, pk.Area, pk.AreaErr)
			}

			grid := linspace(x[0], x[len(x)-1], 1000)
			var fitX, fitY []float64
			model := fit.Eval(grid)
			for i, v := range grid {
				if v > trFitVisibleTo {
					break
				}
				fitX = append(fitX, v)
				fitY = append(fitY, model[i])
			}

			layers := []render.Layer{
				render.Line{Label: "Experimental Data", X: x, Y: y, Color: render.Black},
				render.Line{Label: "Gaussian + Baseline Fit", X: fitX, Y: fitY, Color: render.Red, Width: 1.5, Dashed: true},
			}
			for i := 0; i < len(fit.Peaks) && i < trPeaksShown; i++ {
				pk := fit.Peaks[i]
				var hx []float64
				for _, v := range grid {
					if v >= pk.Position-3*pk.Sigma && v <= pk.Position+3*pk.Sigma {
						hx = append(hx, v)
					}
				}
				if len(hx) < 2 {
					continue
				}
				layers = append(layers, render.FillBetween{
					X:     hx,
					Y1:    fit.PeakProfile(i, hx),
					Color: render.WithAlpha(trPeakFills[i%len(trPeakFills)], 38),
				})
			}

			return &render.Chart{
				X:      render.Axis{Label: "r (Å)", Min: 0, Max: 10, Fixed: true},
				Y:      render.Axis{Label: "T(r) (Å^-2)", Min: -10, Max: 70, Fixed: true},
				Layers: layers,
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}
