package figures

import (
	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
)

// The XAFS exports for TEC10E50E come from the Athena/Artemis toolchain:
// .nor carries normalized μ(E), .chik and .chir the k- and R-space spectra
// with the quantity of interest in the fourth column, and the .k2/.rmag
// pair the fit results with experiment and model side by side.

func xafsNorm() figure.Spec {
	return figure.Spec{
		Name:   "xafs_norm",
		Output: "xafs_norm.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			x, y, err := textXY(env.FS, env.DataPath("xafs_TEC10E50E_20231031_H.nor"), 0, 1, 0)
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Energy (eV)", Min: 11530, Max: 11615, Fixed: true},
				Y: render.Axis{Label: "Normalized μ(E) (a.u.)"},
				Layers: []render.Layer{
					render.Line{Label: "TEC10E50E", X: x, Y: y, Color: render.Black},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

func xafsChiK() figure.Spec {
	return figure.Spec{
		Name:   "xafs_chik",
		Output: "xafs_chik.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			x, y, err := textXY(env.FS, env.DataPath("xafs_TEC10E50E_20231031_H.chik"), 0, 3, 0)
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Wavenumber (Å^-1)", Min: 0, Max: 17, Fixed: true},
				Y: render.Axis{Label: "k^2 χ(k) (Å^-2)", Min: -0.8, Max: 1.0, Fixed: true},
				Layers: []render.Layer{
					render.Line{X: x, Y: y, Color: render.Black},
				},
			}, nil
		},
	}
}

func xafsChiR() figure.Spec {
	return figure.Spec{
		Name:   "xafs_chir",
		Output: "xafs_chir.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			x, y, err := textXY(env.FS, env.DataPath("xafs_TEC10E50E_20231031_H.chir"), 0, 3, 0)
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Radial distance (Å)", Min: 0, Max: 6, Fixed: true},
				Y: render.Axis{Label: "|χ(R)| (Å^-3)"},
				Layers: []render.Layer{
					render.Line{X: x, Y: y, Color: render.Black},
				},
			}, nil
		},
	}
}

func xafsChiKFit() figure.Spec {
	return figure.Spec{
		Name:   "xafs_chik_fit",
		Output: "xafs_chik_fit.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			exp, fit, err := expFitColumns(env, "xafs_TEC10E50E_H_03.k2")
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Wavenumber (Å^-1)", Min: 0, Max: 17, Fixed: true},
				Y: render.Axis{Label: "k^2 χ(k) (Å^-2)", Min: -0.8, Max: 1.0, Fixed: true},
				Layers: []render.Layer{
					render.Line{Label: "Exp.", X: exp.x, Y: exp.y, Color: render.Black, Width: 1.5},
					render.Line{Label: "Fit", X: fit.x, Y: fit.y, Color: render.Red, Width: 1.5, Dashed: true},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

func xafsChiRFit() figure.Spec {
	return figure.Spec{
		Name:   "xafs_chir_fit",
		Output: "xafs_chir_fit.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			exp, fit, err := expFitColumns(env, "xafs_TEC10E50E_H_03.rmag")
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Radial distance (Å)", Min: 0, Max: 6, Fixed: true},
				Y: render.Axis{Label: "|χ(R)| (Å^-3)"},
				Layers: []render.Layer{
					render.Line{Label: "Exp.", X: exp.x, Y: exp.y, Color: render.Black, Width: 1.5},
					render.Line{Label: "Fit", X: fit.x, Y: fit.y, Color: render.Red, Width: 1.5, Dashed: true},
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

type series struct {
	x, y []float64
}

// expFitColumns reads the shared grid plus experiment and fit columns of an
// XAFS fit export.
func expFitColumns(env figure.Env, name string) (exp, fit series, err error) {
	tbl, err := dataset.ReadColumns(env.FS, env.DataPath(name), dataset.TextOptions{
		Columns: []dataset.Column{
			{Name: "grid", Index: 0},
			{Name: "exp", Index: 1},
			{Name: "fit", Index: 2},
		},
		DropNonNumeric: true,
	})
	if err != nil {
		return exp, fit, err
	}
	grid, err := tbl.Column("grid")
	if err != nil {
		return exp, fit, err
	}
	expY, err := tbl.Column("exp")
	if err != nil {
		return exp, fit, err
	}
	fitY, err := tbl.Column("fit")
	if err != nil {
		return exp, fit, err
	}
	return series{x: grid, y: expY}, series{x: grid, y: fitY}, nil
}
