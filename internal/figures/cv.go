package figures

import (
	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
)

// cvCurve plots the cyclic voltammogram of TEC10V30E straight from the
// potentiostat export.
func cvCurve() figure.Spec {
	return figure.Spec{
		Name:   "cv_curve",
		Output: "cv_curve.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			tbl, err := dataset.ReadSheet(env.FS, env.DataPath("cv_TEC10V30E-CVdata.xlsx"), "TEC10V30E",
				[]string{"Ewe/V", "<I>/mA"})
			if err != nil {
				return nil, err
			}
			ewe, current, err := tbl.ColumnNoNaN("Ewe/V", "<I>/mA")
			if err != nil {
				return nil, err
			}
			return &render.Chart{
				X: render.Axis{Label: "Ewe vs. RHE (V)"},
				Y: render.Axis{Label: "<I> (mA)"},
				Layers: []render.Layer{
					render.Line{X: ewe, Y: current, Color: render.Black, Width: 1.5},
				},
			}, nil
		},
	}
}
