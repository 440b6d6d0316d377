package dataset

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/fcbenten/figures/internal/fsutil"
)

// ReadCSV parses a comma-separated instrument export into a Table. Lines
// starting with '#' are vendor metadata and are skipped. Every data row must
// carry one value per declared name; short or non-numeric rows make the file
// malformed. The HAXPES core-level and valence-band exports use this shape
// (two columns: binding energy, intensity).
func ReadCSV(fsys fsutil.FileSystem, path string, names []string) (*Table, error) {
	if len(names) == 0 {
		return nil, &FormatError{Path: path, Detail: "no columns declared"}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open", Err: err}
	}
	defer f.Close()

	cols := make(map[string][]float64, len(names))
	for _, n := range names {
		cols[n] = nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < len(names) {
			return nil, &FormatError{Path: path, Detail: "short row at line " + strconv.Itoa(lineNo)}
		}
		for i, n := range names {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, &FormatError{Path: path, Detail: "non-numeric value at line " + strconv.Itoa(lineNo), Err: err}
			}
			cols[n] = append(cols[n], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Path: path, Detail: "read failed", Err: err}
	}
	if len(cols[names[0]]) == 0 {
		return nil, &FormatError{Path: path, Detail: "no data rows"}
	}
	return NewTable(path, names, cols), nil
}
