package dataset

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/fcbenten/figures/internal/fsutil"
)

// Column declares one column to extract from a delimited text file: the
// zero-based field index in the file and the name it gets in the Table.
type Column struct {
	Name  string
	Index int
}

// TextOptions controls parsing of whitespace-delimited instrument text.
type TextOptions struct {
	// SkipLines drops this many lines from the top regardless of content
	// (SAXS and PDF profile headers are not comment-prefixed).
	SkipLines int
	// Comment marks lines to ignore; defaults to "#".
	Comment string
	// Columns declares which fields become table columns. Required.
	Columns []Column
	// DropNonNumeric skips rows whose declared fields do not parse as
	// numbers instead of failing. Vendor files mix units lines into the
	// data block, so the XAFS and SAXS formats need this on.
	DropNonNumeric bool
}

// ReadColumns parses a whitespace-delimited text file into a Table.
// Rows with fewer fields than the highest declared index are skipped.
// If any declared column ends up empty the file does not match the expected
// layout and a FormatError is returned.
func ReadColumns(fsys fsutil.FileSystem, path string, opts TextOptions) (*Table, error) {
	if len(opts.Columns) == 0 {
		return nil, &FormatError{Path: path, Detail: "no columns declared"}
	}
	comment := opts.Comment
	if comment == "" {
		comment = "#"
	}
	maxIdx := 0
	for _, c := range opts.Columns {
		if c.Index > maxIdx {
			maxIdx = c.Index
		}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open", Err: err}
	}
	defer f.Close()

	names := make([]string, len(opts.Columns))
	cols := make(map[string][]float64, len(opts.Columns))
	for i, c := range opts.Columns {
		names[i] = c.Name
		cols[c.Name] = nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo <= opts.SkipLines {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, comment) {
			continue
		}
		if strings.Contains(trimmed, "NAN") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) <= maxIdx {
			continue
		}
		row := make([]float64, len(opts.Columns))
		ok := true
		for i, c := range opts.Columns {
			v, err := strconv.ParseFloat(fields[c.Index], 64)
			if err != nil {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			if opts.DropNonNumeric {
				continue
			}
			return nil, &FormatError{Path: path, Detail: "non-numeric data at line " + strconv.Itoa(lineNo)}
		}
		for i, c := range opts.Columns {
			cols[c.Name] = append(cols[c.Name], row[i])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Path: path, Detail: "read failed", Err: err}
	}

	for _, c := range opts.Columns {
		if len(cols[c.Name]) == 0 {
			return nil, &FormatError{Path: path, Detail: "no data rows for column " + strconv.Quote(c.Name)}
		}
	}
	return NewTable(path, names, cols), nil
}
