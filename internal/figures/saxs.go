package figures

import (
	"image/color"

	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
	"github.com/fcbenten/figures/internal/transform"
)

// saxsProfile overlays the measured TEC10V30E scattering profile with two
// simulated monodisperse/polydisperse particle profiles on log-log axes.
func saxsProfile() figure.Spec {
	files := []struct {
		file  string
		label string
		color color.Color
	}{
		{"saxs_Particle1.33.38_2024-11-21_17-25-43_profileV.txt", "Simulated: Particle Radius 1.33 ± 0.38 nm", render.Red},
		{"saxs_Particle1.33.05_2024-11-21_17-24-29_profileV.txt", "Simulated: Particle Radius 1.33 ± 0.05 nm", render.Blue},
		{"saxs_TEC10V30E_As_FE_00001__sum_Connected.txt", "Experimental: TEC10V30E", render.Green},
	}

	return figure.Spec{
		Name:   "saxs_profile",
		Output: "saxs_profile.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			var layers []render.Layer
			for _, f := range files {
				x, y, err := textXY(env.FS, env.DataPath(f.file), 0, 1, 4)
				if err != nil {
					return nil, err
				}
				layers = append(layers, render.Line{Label: f.label, X: x, Y: y, Color: f.color})
			}
			return &render.Chart{
				X:      render.Axis{Label: "Q (nm^-1)", Min: 0.1, Max: 10, Fixed: true, Log: true},
				Y:      render.Axis{Label: "Intensity (a.u.)", Min: 1e-1, Max: 1e7, Fixed: true, Log: true},
				Layers: layers,
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// saxsMcsasProfile compares the measured profile against the McSAS Monte
// Carlo fit, both with uncertainties, over the fitted Q window.
func saxsMcsasProfile() figure.Spec {
	return figure.Spec{
		Name:   "saxs_mcsas_profile",
		Output: "saxs_mcsas_profile.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			tbl, err := dataset.ReadColumns(env.FS,
				env.DataPath("saxs_TEC10V30E_As_FE_00001__sum_Connected 2023-02-09_13-41-55_fit.dat"),
				dataset.TextOptions{
					SkipLines: 1,
					Columns: []dataset.Column{
						{Name: "q", Index: 0},
						{Name: "measured", Index: 1},
						{Name: "measuredErr", Index: 2},
						{Name: "fitted", Index: 3},
						{Name: "fittedErr", Index: 4},
					},
					DropNonNumeric: true,
				})
			if err != nil {
				return nil, err
			}
			q, err := tbl.Column("q")
			if err != nil {
				return nil, err
			}
			meas, err := tbl.Column("measured")
			if err != nil {
				return nil, err
			}
			measErr, err := tbl.Column("measuredErr")
			if err != nil {
				return nil, err
			}
			fit, err := tbl.Column("fitted")
			if err != nil {
				return nil, err
			}
			fitErr, err := tbl.Column("fittedErr")
			if err != nil {
				return nil, err
			}

			// The instrument writes Q in 1/m; the plot uses 1/nm.
			qnm := transform.Scale(q, 1e-9)

			return &render.Chart{
				X: render.Axis{Label: "Q (nm^-1)", Min: 0.3, Max: 4, Fixed: true, Log: true},
				Y: render.Axis{Label: "I ((m sr)^-1)", Log: true},
				Layers: []render.Layer{
					render.YErrorBars{Label: "Measured", X: qnm, Y: meas, YErr: measErr, Color: render.Black},
					render.YErrorBars{Label: "Fitted", X: qnm, Y: fit, YErr: fitErr, Color: render.Red},
					render.Labels{
						X:    []float64{0.35},
						Y:    []float64{minPositive(fit) * 1.5},
						Text: []string{"0.3 ≤ Q (nm^-1) ≤ 4"},
					},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// CDF values live on a 0-1.3 scale in the source data; the histogram axis
// runs 0-10, so the CDF is rescaled onto it to keep a single y axis.
const cdfRescale = 10.0 / 1.3

// saxsMcsasRadius shows the McSAS volume-weighted radius histogram with
// its uncertainties, the minimum visibility limit, and the rescaled
// cumulative distribution.
func saxsMcsasRadius() figure.Spec {
	return figure.Spec{
		Name:   "saxs_mcsas_radius",
		Output: "saxs_mcsas_radius.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			tbl, err := dataset.ReadColumns(env.FS,
				env.DataPath("saxs_TEC10V30E_As_FE_00001__sum_Connected 2023-02-09_13-41-55_hist-radius-True-0(nm)-10(nm)-50-lin-vol.dat"),
				dataset.TextOptions{
					SkipLines: 1,
					Columns: []dataset.Column{
						{Name: "radius", Index: 0},
						{Name: "volFrac", Index: 2},
						{Name: "volFracErr", Index: 3},
						{Name: "visibility", Index: 4},
						{Name: "cdf", Index: 5},
						{Name: "cdfErr", Index: 6},
					},
					DropNonNumeric: true,
				})
			if err != nil {
				return nil, err
			}
			radius, err := tbl.Column("radius")
			if err != nil {
				return nil, err
			}
			volFrac, err := tbl.Column("volFrac")
			if err != nil {
				return nil, err
			}
			volFracErr, err := tbl.Column("volFracErr")
			if err != nil {
				return nil, err
			}
			visibility, err := tbl.Column("visibility")
			if err != nil {
				return nil, err
			}
			cdf, err := tbl.Column("cdf")
			if err != nil {
				return nil, err
			}
			cdfErr, err := tbl.Column("cdfErr")
			if err != nil {
				return nil, err
			}

			// Radii arrive in meters.
			rnm := transform.Scale(radius, 1e9)

			return &render.Chart{
				X: render.Axis{Label: "radius (nm)", Min: 0, Max: 10, Fixed: true},
				Y: render.Axis{Label: "[Rel.] Volume Fraction", Min: 0, Max: 10, Fixed: true},
				Layers: []render.Layer{
					render.Bars{Label: "MC size histogram", X: rnm, Height: volFrac, Width: 0.2,
						Color: render.WithAlpha(render.DarkKhaki, 153)},
					render.YErrorBars{X: rnm, Y: volFrac, YErr: volFracErr, Color: render.DarkKhaki},
					render.Line{Label: "Minimum visibility limit", X: rnm, Y: visibility, Color: render.Red},
					render.Scatter{X: rnm, Y: visibility, Color: render.Red},
					render.YErrorBars{Label: "CDF (rescaled to left axis)",
						X: rnm, Y: transform.Scale(cdf, cdfRescale),
						YErr: transform.Scale(cdfErr, cdfRescale), Color: render.Green},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

func minPositive(v []float64) float64 {
	best := 0.0
	for _, x := range v {
		if x > 0 && (best == 0 || x < best) {
			best = x
		}
	}
	if best == 0 {
		best = 1
	}
	return best
}
