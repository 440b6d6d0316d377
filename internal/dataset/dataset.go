// Package dataset loads instrument data files into immutable numeric tables.
//
// Each reader understands one vendor format: whitespace-delimited text with
// '#' comment conventions (XAFS .nor/.chik/.chir/.k2/.rmag, SAXS/PDF
// profiles), CSV exports with metadata lines, xlsx workbook sheets, and
// HAXPES exports with a key=value preamble. A reader either produces every
// declared column or fails with a FormatError; it never fabricates NaN or
// zero series for a column that is not in the file.
package dataset

import (
	"fmt"
	"math"
)

// Table is one loaded instrument file: ordered named float64 columns of
// equal length. Tables are not modified after load; transforms copy what
// they need.
type Table struct {
	source string
	names  []string
	cols   map[string][]float64
}

// NewTable builds a table from named columns. Column order follows names.
func NewTable(source string, names []string, cols map[string][]float64) *Table {
	return &Table{source: source, names: names, cols: cols}
}

// Source returns the path the table was loaded from.
func (t *Table) Source() string { return t.source }

// Names returns the column names in file order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return len(t.cols[t.names[0]])
}

// Column returns a copy of the named column, or a FormatError if the file
// did not contain it.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, &FormatError{Path: t.source, Detail: fmt.Sprintf("missing column %q", name)}
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// ColumnNoNaN returns the named column with NaN rows removed, paired with a
// second column filtered by the same mask. Used for xlsx sheets where series
// have different lengths and trailing blanks read as NaN.
func (t *Table) ColumnNoNaN(xname, yname string) (xs, ys []float64, err error) {
	x, err := t.Column(xname)
	if err != nil {
		return nil, nil, err
	}
	y, err := t.Column(yname)
	if err != nil {
		return nil, nil, err
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys, nil
}

// FormatError reports a missing, malformed, or schema-mismatched input file.
type FormatError struct {
	Path   string
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

func (e *FormatError) Unwrap() error { return e.Err }
