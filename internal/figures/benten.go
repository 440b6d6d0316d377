package figures

import (
	"image/color"
	"math"

	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
	"github.com/fcbenten/figures/internal/transform"
)

const bentenWorkbook = "fcbenten_standard_sample_data.xlsx"

// Pt-Co alloy catalysts; everything else in the workbook is pure Pt.
var ptCoSamples = map[string]bool{
	"TEC35V31E": true,
	"TEC36E52":  true,
	"TEC36F52":  true,
}

// sampleTransition holds one sample's AsMade -> H -> EC trajectory in the
// size/strain plane.
type sampleTransition struct {
	name   string
	ptCo   bool
	x, y   [3]float64 // AsMade, H, EC
	xWidth float64    // SAXS_d_width of the AsMade point
}

// readTransitions groups the standard-sample workbook rows by sample and
// keeps those measured in all three pretreatment states. yColumn selects the
// XRD quantity on the vertical axis (lattice strain or Scherrer size).
func readTransitions(env figure.Env, yColumn string) ([]sampleTransition, error) {
	path := env.DataPath(bentenWorkbook)
	tbl, err := dataset.ReadSheet(env.FS, path, "data",
		[]string{"SAXS_d", "SAXS_d_width", yColumn})
	if err != nil {
		return nil, err
	}
	samples, err := dataset.ReadSheetStrings(env.FS, path, "data", "Sample")
	if err != nil {
		return nil, err
	}
	states, err := dataset.ReadSheetStrings(env.FS, path, "data", "pretreatment")
	if err != nil {
		return nil, err
	}
	saxsD, err := tbl.Column("SAXS_d")
	if err != nil {
		return nil, err
	}
	saxsW, err := tbl.Column("SAXS_d_width")
	if err != nil {
		return nil, err
	}
	yCol, err := tbl.Column(yColumn)
	if err != nil {
		return nil, err
	}
	if len(samples) != len(saxsD) || len(states) != len(saxsD) {
		return nil, &dataset.FormatError{Path: bentenWorkbook, Detail: "label and value columns differ in length"}
	}

	stateIdx := map[string]int{"AsMade": 0, "H": 1, "EC": 2}
	byName := make(map[string]*sampleTransition)
	var order []string
	seen := make(map[string]int) // bitmask of states found per sample
	for i, name := range samples {
		idx, ok := stateIdx[states[i]]
		if !ok || name == "" {
			continue
		}
		tr := byName[name]
		if tr == nil {
			tr = &sampleTransition{name: name, ptCo: ptCoSamples[name]}
			byName[name] = tr
			order = append(order, name)
		}
		if seen[name]&(1<<idx) != 0 {
			continue // first measurement per state wins
		}
		seen[name] |= 1 << idx
		tr.x[idx] = saxsD[i]
		tr.y[idx] = yCol[i]
		if idx == 0 && !math.IsNaN(saxsW[i]) {
			tr.xWidth = saxsW[i]
		}
	}

	var out []sampleTransition
	for _, name := range order {
		if seen[name] == 0b111 {
			out = append(out, *byName[name])
		}
	}
	if len(out) == 0 {
		return nil, &dataset.FormatError{Path: bentenWorkbook, Detail: "no sample has all three pretreatment states"}
	}
	return out, nil
}

// sampleShade picks the i-th of n shades from the warm (Pt) or cool (Pt-Co)
// ramp, light to dark.
func sampleShade(ptCo bool, i, n int) color.Color {
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	lerp := func(a, b float64) uint8 { return uint8(a + (b-a)*t) }
	if ptCo {
		return color.RGBA{R: lerp(198, 8), G: lerp(219, 81), B: lerp(239, 156), A: 255}
	}
	return color.RGBA{R: lerp(252, 165), G: lerp(174, 15), B: lerp(145, 21), A: 255}
}

// transitionLayers renders one sample's trajectory: an arrow per treatment
// from the AsMade point, the three measured points, and a horizontal bar for
// the AsMade SAXS size distribution width.
func transitionLayers(tr sampleTransition, c color.Color) []render.Layer {
	layers := []render.Layer{
		render.Arrow{X0: tr.x[0], Y0: tr.y[0], X1: tr.x[1], Y1: tr.y[1],
			Color: render.WithAlpha(render.DarkGreen, 128)},
		render.Arrow{X0: tr.x[0], Y0: tr.y[0], X1: tr.x[2], Y1: tr.y[2],
			Color: render.WithAlpha(render.DarkSlateGray, 128), Dashed: true},
		render.Scatter{Label: tr.name, X: tr.x[:], Y: tr.y[:], Color: c, Radius: 2.5},
	}
	if tr.xWidth > 0 {
		layers = append(layers, render.Line{
			X:     []float64{tr.x[0] - tr.xWidth, tr.x[0] + tr.xWidth},
			Y:     []float64{tr.y[0], tr.y[0]},
			Color: render.WithAlpha(c, 128),
		})
	}
	return layers
}

func transitionChart(transitions []sampleTransition) []render.Layer {
	nPt, nPtCo := 0, 0
	for _, tr := range transitions {
		if tr.ptCo {
			nPtCo++
		} else {
			nPt++
		}
	}
	var layers []render.Layer
	iPt, iPtCo := 0, 0
	for _, tr := range transitions {
		var c color.Color
		if tr.ptCo {
			c = sampleShade(true, iPtCo, nPtCo)
			iPtCo++
		} else {
			c = sampleShade(false, iPt, nPt)
			iPt++
		}
		layers = append(layers, transitionLayers(tr, c)...)
	}
	return layers
}

// bentenLatticeStrain tracks how particle size (SAXS) and lattice strain
// (XRD Williamson-Hall) move under the H and EC pretreatments.
func bentenLatticeStrain() figure.Spec {
	return figure.Spec{
		Name:   "fcbenten_lattice_strain",
		Output: "fcbenten_lattice_strain.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			transitions, err := readTransitions(env, "XRD_ws")
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				Title:  "Transition of Particle Size and Lattice Strain",
				X:      render.Axis{Label: "Particle Size by SAXS (nm)"},
				Y:      render.Axis{Label: "Lattice Strain"},
				Layers: transitionChart(transitions),
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// bentenParticleSize compares SAXS particle size against XRD Scherrer size
// across the same pretreatments, with the x = y guideline.
func bentenParticleSize() figure.Spec {
	return figure.Spec{
		Name:   "fcbenten_particle_size",
		Output: "fcbenten_particle_size.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			transitions, err := readTransitions(env, "XRD_sd")
			if err != nil {
				return nil, err
			}
			var saxs, xrd []float64
			for _, tr := range transitions {
				saxs = append(saxs, tr.x[:]...)
				xrd = append(xrd, tr.y[:]...)
			}
			if r, err := transform.Pearson(saxs, xrd); err == nil {
				figure.Logf("fcbenten_particle_size: SAXS vs XRD size correlation r = %.3f", r)
			}

			layers := []render.Layer{
				render.Line{X: []float64{0, 13}, Y: []float64{0, 13},
					Color: render.WithAlpha(render.Gray, 178), Width: 0.7, Dashed: true},
			}
			layers = append(layers, transitionChart(transitions)...)
			return &render.Chart{
				Title:  "Transition of Particle and Scherrer Sizes",
				X:      render.Axis{Label: "Particle Size by SAXS (nm)", Min: 0, Max: 13, Fixed: true},
				Y:      render.Axis{Label: "Scherrer Size by XRD (nm)", Min: 0, Max: 13, Fixed: true},
				Layers: layers,
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}
