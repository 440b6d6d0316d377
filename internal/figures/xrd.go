package figures

import (
	"fmt"
	"strconv"

	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/render"
	"github.com/fcbenten/figures/internal/transform"
)

const (
	xrdEnergyKeV   = 24.0  // incident X-ray energy at the beamline
	latticePt      = 3.918 // Pt fcc lattice constant (Å)
	latticeCeO2    = 5.411 // CeO2 reference lattice constant (Å)
	tecOffset      = 120000
	bkgOffset      = 90000
	xrdSpreadsheet = "xrd_data.xlsx"
)

// reflection carries a cubic (hkl) index with the label placement used in
// the published pattern: dx shifts the text off the peak, y sets its height.
type reflection struct {
	h, k, l int
	dx, y   float64
}

var ptReflections = []reflection{
	{1, 1, 1, -0.5, 260000},
	{2, 0, 0, -0.5, 185000},
	{2, 2, 0, -0.5, 170000},
	{3, 1, 1, -0.5, 180000},
	{2, 2, 2, -0.3, 150000},
	{4, 0, 0, -0.5, 140000},
	{3, 3, 1, -0.8, 155000},
	{4, 2, 0, -0.2, 155000},
	{4, 2, 2, -0.5, 145000},
	{5, 1, 1, -0.5, 145000},
	{5, 3, 1, -0.5, 145000},
}

var ceo2Reflections = []reflection{
	{1, 1, 1, -0.5, 75000},
	{2, 0, 0, -0.5, 25000},
	{2, 2, 0, -0.5, 50000},
	{3, 1, 1, -0.5, 45000},
	{2, 2, 2, -0.5, 15000},
	{4, 0, 0, -0.5, 15000},
	{3, 3, 1, -0.8, 20000},
	{4, 2, 0, -0.2, 15000},
	{4, 2, 2, -0.5, 20000},
	{5, 1, 1, -0.5, 20000},
	{4, 4, 0, -0.5, 10000},
	{5, 3, 1, -0.5, 15000},
	{6, 2, 0, -0.5, 15000},
}

// reflectionLabels computes each (hkl) 2θ from Bragg's law and returns the
// annotation layer for the pattern.
func reflectionLabels(a float64, refs []reflection) (render.Labels, error) {
	var lbl render.Labels
	for _, r := range refs {
		tt, err := transform.BraggTwoTheta(a, r.h, r.k, r.l, xrdEnergyKeV)
		if err != nil {
			return lbl, fmt.Errorf("reflection (%d%d%d): %w", r.h, r.k, r.l, err)
		}
		lbl.X = append(lbl.X, tt+r.dx)
		lbl.Y = append(lbl.Y, r.y)
		lbl.Text = append(lbl.Text, fmt.Sprintf("(%d%d%d)", r.h, r.k, r.l))
	}
	return lbl, nil
}

// xrdData1 overlays the capillary XRD pattern of TEC10V50E with its empty
// capillary background and the CeO2 angle standard, with every fcc
// reflection annotated at its Bragg angle.
func xrdData1() figure.Spec {
	return figure.Spec{
		Name:   "xrd_data1",
		Output: "xrd_data1.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			tbl, err := dataset.ReadSheet(env.FS, env.DataPath(xrdSpreadsheet), "data1", []string{
				"twotheta", "TEC10V50E", "Background - Lindemann glass capillary",
				"twotheta CeO2", "CeO2",
			})
			if err != nil {
				return nil, err
			}
			tt, sample, err := tbl.ColumnNoNaN("twotheta", "TEC10V50E")
			if err != nil {
				return nil, err
			}
			ttBkg, bkg, err := tbl.ColumnNoNaN("twotheta", "Background - Lindemann glass capillary")
			if err != nil {
				return nil, err
			}
			ttCeO2, ceo2, err := tbl.ColumnNoNaN("twotheta CeO2", "CeO2")
			if err != nil {
				return nil, err
			}

			ptLabels, err := reflectionLabels(latticePt, ptReflections)
			if err != nil {
				return nil, err
			}
			ceo2Labels, err := reflectionLabels(latticeCeO2, ceo2Reflections)
			if err != nil {
				return nil, err
			}

			return &render.Chart{
				Width: 10, Height: 6,
				X: render.Axis{Label: "2θ (degree)", Min: 2, Max: 60, Fixed: true},
				Y: render.Axis{Label: "Intensity (a.u.)", Min: 0, Max: 300000, Fixed: true},
				Layers: []render.Layer{
					render.Line{Label: "TEC10V50E", X: tt, Y: transform.Offset(sample, tecOffset), Color: render.Red},
					render.Line{Label: "Background - Lindemann glass capillary", X: ttBkg, Y: transform.Offset(bkg, bkgOffset), Color: render.Green},
					render.Line{Label: "CeO2", X: ttCeO2, Y: ceo2, Color: render.Black},
					ptLabels,
					ceo2Labels,
				},
				Legend: render.Legend{Show: true, Top: true},
			}, nil
		},
	}
}

// Annotation heights for the Rietveld plot; the 2θ values are the refined
// peak positions from the published analysis.
var rietveldAnnotations = render.Labels{
	X:    []float64{13.1645 - 0.5, 15.212 - 0.5, 21.5761 - 0.5, 25.3568 - 0.5, 26.5043 - 0.3, 30.6977 - 0.5, 33.5294 - 0.8, 34.4271 - 0.2, 37.8314 - 0.5},
	Y:    []float64{55000, 30000, 25000, 25000, 15000, 10000, 15000, 15000, 10000},
	Text: []string{"(111)", "(200)", "(220)", "(311)", "(222)", "(400)", "(331)", "(420)", "(422)"},
}

// xrdData2 shows the Rietveld refinement of TEC10V50E with a
// Williamson-Hall analysis inset fitted from the refined peak widths.
func xrdData2() figure.Spec {
	return figure.Spec{
		Name:   "xrd_data2",
		Output: "xrd_data2.png",
		Build: func(env figure.Env) (*render.Chart, error) {
			tbl, err := dataset.ReadSheet(env.FS, env.DataPath(xrdSpreadsheet), "data2", []string{
				"twotheta", "Observed", "Calculated", "Background",
				"Difference profiles", "bragg peaks_twotheta", "bragg peaks",
			})
			if err != nil {
				return nil, err
			}
			tt, obs, err := tbl.ColumnNoNaN("twotheta", "Observed")
			if err != nil {
				return nil, err
			}
			_, calc, err := tbl.ColumnNoNaN("twotheta", "Calculated")
			if err != nil {
				return nil, err
			}
			_, bkg, err := tbl.ColumnNoNaN("twotheta", "Background")
			if err != nil {
				return nil, err
			}
			_, diff, err := tbl.ColumnNoNaN("twotheta", "Difference profiles")
			if err != nil {
				return nil, err
			}
			braggTT, braggY, err := tbl.ColumnNoNaN("bragg peaks_twotheta", "bragg peaks")
			if err != nil {
				return nil, err
			}

			inset, err := williamsonHallInset(env)
			if err != nil {
				return nil, err
			}

			return &render.Chart{
				Width: 12, Height: 8,
				X: render.Axis{Label: "2θ (degree)", Min: 2, Max: 60, Fixed: true},
				Y: render.Axis{Label: "Intensity (a.u.)", Min: 0, Max: 60000, Fixed: true},
				Layers: []render.Layer{
					render.Line{Label: "Observed", X: tt, Y: obs, Color: render.Cyan, Width: 2},
					render.Line{Label: "Calculated", X: tt, Y: calc, Color: render.Brown, Width: 2},
					render.Line{Label: "Background", X: tt, Y: bkg, Color: render.Black},
					render.Line{Label: "Difference profiles", X: tt, Y: diff, Color: render.Blue},
					render.Bars{Label: "Bragg peaks (Pt fcc structure)", X: braggTT, Height: braggY, Width: 0.08, Color: render.Green},
					rietveldAnnotations,
				},
				Legend: render.Legend{Show: true, Top: true, Left: true},
				Insets: []render.Inset{{X: 0.58, Y: 0.55, Width: 0.31, Height: 0.31, Chart: inset}},
			}, nil
		},
	}
}

// williamsonHallInset fits β·cosθ/λ against sinθ/λ and renders the strain
// line with its 3σ confidence band.
func williamsonHallInset(env figure.Env) (*render.Chart, error) {
	x, y, err := williamsonHallRows(env)
	if err != nil {
		return nil, err
	}

	wh, err := transform.WilliamsonHallFit(x, y)
	if err != nil {
		return nil, err
	}

	xFit := linspace(2.0, 7.0, 100)
	yFit := make([]float64, len(xFit))
	yHi := make([]float64, len(xFit))
	yLo := make([]float64, len(xFit))
	for i, v := range xFit {
		yFit[i] = wh.Predict(v)
		yHi[i] = yFit[i] + 3*wh.StdErr
		yLo[i] = yFit[i] - 3*wh.StdErr
	}

	return &render.Chart{
		X: render.Axis{Label: "sin θ/λ (nm^-1)", Min: 2, Max: 7, Fixed: true},
		Y: render.Axis{Label: "β cos θ/λ (nm^-1)", Min: 0.3, Max: 0.5, Fixed: true},
		Layers: []render.Layer{
			render.FillBetween{X: xFit, Y1: yLo, Y2: yHi, Color: render.WithAlpha(render.PeachPuff, 153)},
			render.Scatter{X: x, Y: y, Color: render.Blue},
			render.Line{X: xFit, Y: yFit, Color: render.Blue, Dashed: true},
			render.Labels{
				X: []float64{4.3, 2.2, 6.2, 3.8, 3.8},
				Y: []float64{0.480, 0.345, 0.420, 0.350, 0.325},
				Text: []string{
					fmt.Sprintf("y = %.4f x + %.4f", wh.Slope, wh.Intercept),
					"(111)",
					"(422)",
					fmt.Sprintf("Crystallite size: %.1f Å", wh.CrystalliteSize),
					fmt.Sprintf("Lattice strain: %.3f", wh.LatticeStrain),
				},
			},
		},
	}, nil
}

// williamsonHallRows pulls the two data rows of the data2_williamson_hall
// sheet: sinθ/λ in the first row and β·cosθ/λ in the second, values
// starting at the third cell.
func williamsonHallRows(env figure.Env) (x, y []float64, err error) {
	rows, err := dataset.ReadSheetRaw(env.FS, env.DataPath(xrdSpreadsheet), "data2_williamson_hall")
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 3 {
		return nil, nil, &dataset.FormatError{Path: xrdSpreadsheet, Detail: "data2_williamson_hall sheet has fewer than 3 rows"}
	}
	x, err = parseRowTail(rows[1], 2)
	if err != nil {
		return nil, nil, err
	}
	y, err = parseRowTail(rows[2], 2)
	if err != nil {
		return nil, nil, err
	}
	if len(x) != len(y) || len(x) == 0 {
		return nil, nil, &dataset.FormatError{Path: xrdSpreadsheet, Detail: "williamson-hall rows differ in length"}
	}
	return x, y, nil
}

func parseRowTail(row []string, from int) ([]float64, error) {
	var out []float64
	for i := from; i < len(row); i++ {
		if row[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, &dataset.FormatError{Path: xrdSpreadsheet, Detail: "non-numeric williamson-hall cell " + strconv.Quote(row[i])}
		}
		out = append(out, v)
	}
	return out, nil
}
