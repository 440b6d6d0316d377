package figures

import (
	"fmt"
	"image/color"

	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
	"github.com/fcbenten/figures/internal/transform"
)

// The four Pt/C catalysts measured by HAXPES. Order fixes the color
// assignment across the core-level and valence-band figures.
var haxpesSamples = []struct {
	name  string
	color color.Color
}{
	{"TEC10F50E", render.Black},
	{"TEC10F50E-HT", render.Red},
	{"TEC10E50E", render.Blue},
	{"TEC10EA50E", render.Green},
}

// Energy calibration parameters: the Fermi edge of the reference sample
// anchors the binding-energy scale of the analyzer.
const (
	calTargetPhotonEnergy = 7940.0
	calEnergyShift        = 0.02 // analyzer offset applied before edge detection
	calBindingEnergyCut   = 13.0 // eV, drop the deep tail before normalizing
	calEdgeFloor          = 0.05
	calEdgeCeil           = 0.75
	calEdgeLevel          = 0.4
)

// haxpesEnergyCalibration detects the valence-band leading edge of the
// TEC36F52 target and the 10VE reference and shifts the target onto the
// reference's binding-energy scale.
func haxpesEnergyCalibration() figure.Spec {
	return figure.Spec{
		Name:   "haxpes_energy_calibration",
		Output: "haxpes_energy_calibration.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			targetX, targetY, err := calibrationSpectrum(env, "haxpes_VB_TEC36F52_0001.txt", calTargetPhotonEnergy)
			if err != nil {
				return nil, err
			}
			refX, refY, err := calibrationSpectrum(env, "haxpes_VB_10VE_0001.txt", 0)
			if err != nil {
				return nil, err
			}

			targetEdge, err := transform.LeadingEdge(targetX, targetY, calEdgeFloor, calEdgeCeil, calEdgeLevel)
			if err != nil {
				return nil, fmt.Errorf("target edge: %w", err)
			}
			refEdge, err := transform.LeadingEdge(refX, refY, calEdgeFloor, calEdgeCeil, calEdgeLevel)
			if err != nil {
				return nil, fmt.Errorf("reference edge: %w", err)
			}
			energyOffset := refEdge - targetEdge
			figure.Logf("haxpes_energy_calibration: target edge %.4f eV, reference edge %.4f eV, offset %.4f eV",
				targetEdge, refEdge, energyOffset)

			level := make([]float64, len(refX))
			for i := range level {
				level[i] = calEdgeLevel
			}

			return &render.Chart{
				X: render.Axis{Label: "Binding energy (eV)", Min: -1, Max: 1.5, Fixed: true, Inverted: true},
				Y: render.Axis{Label: "Normalized intensity (a.u.)", Min: -0.1, Max: 1.2, Fixed: true},
				Layers: []render.Layer{
					render.Line{Label: "Reference (10VE)", X: refX, Y: refY, Color: render.Red},
					render.Line{Label: "TEC36F52", X: targetX, Y: targetY, Color: render.Black},
					render.Line{Label: "TEC36F52 corrected", X: transform.Offset(targetX, energyOffset), Y: targetY,
						Color: render.Black, Dashed: true},
					render.Line{X: refX, Y: level, Color: render.Green, Dashed: true},
					render.Labels{X: []float64{-0.25}, Y: []float64{1.11}, Text: []string{"Valence band"}},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// calibrationSpectrum loads one analyzer export, converts its kinetic-energy
// axis to binding energy, trims the deep valence tail and normalizes the
// intensity to its maximum. A zero photonEnergy means use the file's own
// Excitation Energy metadata.
func calibrationSpectrum(env figure.Env, name string, photonEnergy float64) (x, y []float64, err error) {
	h, err := dataset.ReadHAXPES(env.FS, env.DataPath(name))
	if err != nil {
		return nil, nil, err
	}
	if photonEnergy == 0 {
		photonEnergy, err = h.PhotonEnergy()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	be := h.BindingEnergy(photonEnergy)
	for i, b := range be {
		if b > calBindingEnergyCut {
			continue
		}
		x = append(x, b-calEnergyShift)
		y = append(y, h.Intensity[i])
	}
	if len(y) == 0 {
		return nil, nil, &dataset.FormatError{Path: name, Detail: "no samples below the binding-energy cut"}
	}
	y, err = transform.NormalizeMax(y)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return x, y, nil
}

// Shirley anchor window for the Pt 4f doublet.
const (
	pt4fShirleyLeft  = 78.0
	pt4fShirleyRight = 68.0
)

// haxpesPt4f overlays the Shirley-corrected, max-normalized Pt 4f spectra
// of the four catalysts.
func haxpesPt4f() figure.Spec {
	return figure.Spec{
		Name:   "haxpes_pt4f",
		Output: "haxpes_pt4f.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			var layers []render.Layer
			for _, s := range haxpesSamples {
				file := fmt.Sprintf("haxpes_Pt4f_%s_H_0001.csv", s.name)
				be, intensity, err := haxpesCSV(env, file)
				if err != nil {
					return nil, err
				}
				corrected, err := transform.Shirley(be, intensity, pt4fShirleyLeft, pt4fShirleyRight)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				norm, err := transform.NormalizeMax(corrected)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				layers = append(layers, render.Line{Label: s.name, X: be, Y: norm, Color: s.color})
			}
			layers = append(layers, render.Labels{
				X: []float64{77.6}, Y: []float64{1.216}, Text: []string{"Pt 4f"},
			})
			return &render.Chart{
				X:      render.Axis{Label: "Binding energy (eV)", Min: 68, Max: 78, Fixed: true, Inverted: true},
				Y:      render.Axis{Label: "Normalized intensity (a.u.)", Min: -0.1, Max: 1.3, Fixed: true},
				Layers: layers,
				Legend: render.Legend{Show: true, Top: true, Left: true},
			}, nil
		},
	}
}

// haxpesVB overlays the max-normalized valence-band spectra of the four
// catalysts.
func haxpesVB() figure.Spec {
	return figure.Spec{
		Name:   "haxpes_vb",
		Output: "haxpes_vb.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			var layers []render.Layer
			for _, s := range haxpesSamples {
				file := fmt.Sprintf("haxpes_VB_%s_H_0001.csv", s.name)
				be, intensity, err := haxpesCSV(env, file)
				if err != nil {
					return nil, err
				}
				norm, err := transform.NormalizeMax(intensity)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				layers = append(layers, render.Line{Label: s.name, X: be, Y: norm, Color: s.color})
			}
			layers = append(layers, render.Labels{
				X: []float64{13.4}, Y: []float64{1.122}, Text: []string{"Valence band"},
			})
			return &render.Chart{
				X:      render.Axis{Label: "Binding energy (eV)", Min: -1, Max: 14, Fixed: true, Inverted: true},
				Y:      render.Axis{Label: "Normalized intensity (a.u.)", Min: -0.1, Max: 1.2, Fixed: true},
				Layers: layers,
				Legend: render.Legend{Show: true, Top: true, Left: true},
			}, nil
		},
	}
}

func haxpesCSV(env figure.Env, name string) (be, intensity []float64, err error) {
	tbl, err := dataset.ReadCSV(env.FS, env.DataPath(name), []string{"Binding energy", "Intensity"})
	if err != nil {
		return nil, nil, err
	}
	be, err = tbl.Column("Binding energy")
	if err != nil {
		return nil, nil, err
	}
	intensity, err = tbl.Column("Intensity")
	if err != nil {
		return nil, nil, err
	}
	return be, intensity, nil
}
