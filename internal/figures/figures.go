// Package figures holds the catalogue of reproducible figures for the
// fuel-cell benchmark data sets (fc-benten): each entry reads one or more
// instrument files from the data directory and rebuilds the published chart.
package figures

import (
	"fmt"
	"sort"

	"github.com/fcbenten/figures/internal/dataset"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/fsutil"
)

// All returns the full catalogue in publication order.
func All() []figure.Spec {
	return []figure.Spec{
		xafsNorm(),
		xafsChiK(),
		xafsChiR(),
		xafsChiKFit(),
		xafsChiRFit(),
		xrdData1(),
		xrdData2(),
		pdfSQ(),
		pdfGr(),
		pdfData(),
		pdfTrFit(),
		saxsProfile(),
		saxsMcsasProfile(),
		saxsMcsasRadius(),
		haxpesEnergyCalibration(),
		haxpesPt4f(),
		haxpesVB(),
		cvCurve(),
		bentenLatticeStrain(),
		bentenParticleSize(),
	}
}

// Names returns the sorted figure names.
func Names() []string {
	specs := All()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}

// Lookup resolves figure names to specs, preserving catalogue order. An
// unknown name is an error.
func Lookup(names []string) ([]figure.Spec, error) {
	if len(names) == 0 {
		return All(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []figure.Spec
	for _, s := range All() {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("unknown figure %q", n)
	}
	return out, nil
}

// textXY reads two whitespace-delimited columns from an instrument text
// file, the common shape of the XAFS, PDF and SAXS exports.
func textXY(fsys fsutil.FileSystem, path string, xIdx, yIdx, skip int) (xs, ys []float64, err error) {
	tbl, err := dataset.ReadColumns(fsys, path, dataset.TextOptions{
		SkipLines: skip,
		Columns: []dataset.Column{
			{Name: "x", Index: xIdx},
			{Name: "y", Index: yIdx},
		},
		DropNonNumeric: true,
	})
	if err != nil {
		return nil, nil, err
	}
	xs, err = tbl.Column("x")
	if err != nil {
		return nil, nil, err
	}
	ys, err = tbl.Column("y")
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// linspace returns n evenly spaced values across [lo, hi].
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
