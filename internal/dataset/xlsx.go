package dataset

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fcbenten/figures/internal/fsutil"
)

// ReadSheet loads one sheet of an xlsx workbook into a Table. The first row
// is the header; every header cell becomes a column named by its text. Blank
// or non-numeric cells read as NaN so series of different lengths can share
// a sheet (the workbook exports pad with blanks). Each name in required must
// appear in the header or the sheet does not match the expected layout.
//
// Text columns (e.g. sample names) are not representable in a float64 table;
// use ReadSheetStrings for those.
func ReadSheet(fsys fsutil.FileSystem, path, sheet string, required []string) (*Table, error) {
	rows, err := sheetRows(fsys, path, sheet)
	if err != nil {
		return nil, err
	}
	header := rows[0]

	names := make([]string, 0, len(header))
	cols := make(map[string][]float64, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		names = append(names, h)
		cols[h] = nil
	}
	for _, req := range required {
		if _, ok := cols[req]; !ok {
			return nil, &FormatError{Path: path, Detail: "sheet " + strconv.Quote(sheet) + " missing column " + strconv.Quote(req)}
		}
	}

	for _, row := range rows[1:] {
		for i, name := range names {
			v := math.NaN()
			if i < len(row) {
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64); err == nil {
					v = parsed
				}
			}
			cols[name] = append(cols[name], v)
		}
	}
	if len(rows) == 1 {
		return nil, &FormatError{Path: path, Detail: "sheet " + strconv.Quote(sheet) + " has no data rows"}
	}
	return NewTable(path, names, cols), nil
}

// ReadSheetStrings returns one column of a sheet as raw cell text, aligned
// with the rows ReadSheet produces. Used for label columns like Sample and
// pretreatment.
func ReadSheetStrings(fsys fsutil.FileSystem, path, sheet, column string) ([]string, error) {
	rows, err := sheetRows(fsys, path, sheet)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, h := range rows[0] {
		if strings.TrimSpace(h) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &FormatError{Path: path, Detail: "sheet " + strconv.Quote(sheet) + " missing column " + strconv.Quote(column)}
	}
	out := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if idx < len(row) {
			out = append(out, strings.TrimSpace(row[idx]))
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// ReadSheetRaw returns the full cell grid of a sheet. The Williamson-Hall
// sheet stores series in rows rather than columns, so the figure addresses
// cells positionally.
func ReadSheetRaw(fsys fsutil.FileSystem, path, sheet string) ([][]string, error) {
	return sheetRows(fsys, path, sheet)
}

func sheetRows(fsys fsutil.FileSystem, path, sheet string) ([][]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open", Err: err}
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "not a valid xlsx workbook", Err: err}
	}
	defer wb.Close()

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "missing sheet " + strconv.Quote(sheet), Err: err}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Detail: "sheet " + strconv.Quote(sheet) + " is empty"}
	}
	return rows, nil
}
