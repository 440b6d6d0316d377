package dataset

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fcbenten/figures/internal/fsutil"
)

// writeWorkbook builds a small xlsx file in the memory filesystem.
func writeWorkbook(t *testing.T, m *fsutil.MemoryFileSystem, path, sheet string, rows [][]any) {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	require.NoError(t, wb.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	require.NoError(t, m.WriteFile(path, buf.Bytes(), 0644))
}

func TestReadSheet(t *testing.T) {
	t.Parallel()

	t.Run("reads header-keyed numeric columns", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		writeWorkbook(t, m, "cv.xlsx", "TEC10V30E", [][]any{
			{"Ewe/V", "<I>/mA"},
			{0.05, -0.12},
			{0.10, -0.08},
			{0.15, 0.02},
		})

		tbl, err := ReadSheet(m, "cv.xlsx", "TEC10V30E", []string{"Ewe/V", "<I>/mA"})
		require.NoError(t, err)
		assert.Equal(t, 3, tbl.Len())

		i, err := tbl.Column("<I>/mA")
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{-0.12, -0.08, 0.02}, i, 1e-12)
	})

	t.Run("blank cells become NaN", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		writeWorkbook(t, m, "d.xlsx", "data1", [][]any{
			{"twotheta", "CeO2"},
			{10.0, 100.0},
			{11.0, nil},
		})

		tbl, err := ReadSheet(m, "d.xlsx", "data1", nil)
		require.NoError(t, err)
		ceo2, err := tbl.Column("CeO2")
		require.NoError(t, err)
		require.Len(t, ceo2, 2)
		assert.True(t, math.IsNaN(ceo2[1]))

		xs, ys, err := tbl.ColumnNoNaN("twotheta", "CeO2")
		require.NoError(t, err)
		assert.Equal(t, []float64{10.0}, xs)
		assert.Equal(t, []float64{100.0}, ys)
	})

	t.Run("missing required column is a FormatError", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		writeWorkbook(t, m, "d.xlsx", "data", [][]any{
			{"Sample", "SAXS_d"},
			{"TEC10V30E", 2.4},
		})

		_, err := ReadSheet(m, "d.xlsx", "data", []string{"SAXS_d", "XRD_sd"})
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Contains(t, ferr.Detail, "XRD_sd")
	})

	t.Run("missing sheet is a FormatError", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		writeWorkbook(t, m, "d.xlsx", "data", [][]any{{"x"}, {1.0}})

		_, err := ReadSheet(m, "d.xlsx", "other", nil)
		assert.Error(t, err)
	})

	t.Run("not an xlsx file", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("fake.xlsx", []byte("plain text"), 0644))

		_, err := ReadSheet(m, "fake.xlsx", "data", nil)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
	})
}

func TestReadSheetStrings(t *testing.T) {
	t.Parallel()

	m := fsutil.NewMemoryFileSystem()
	writeWorkbook(t, m, "samples.xlsx", "data", [][]any{
		{"Sample", "pretreatment", "SAXS_d"},
		{"TEC10V30E", "AsMade", 2.4},
		{"TEC10V30E", "H", 2.6},
	})

	samples, err := ReadSheetStrings(m, "samples.xlsx", "data", "Sample")
	require.NoError(t, err)
	assert.Equal(t, []string{"TEC10V30E", "TEC10V30E"}, samples)

	_, err = ReadSheetStrings(m, "samples.xlsx", "data", "missing")
	assert.Error(t, err)
}
