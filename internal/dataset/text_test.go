package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcbenten/figures/internal/fsutil"
)

const norSample = `# XDI/1.0 Athena/0.9.26
# Column.1: energy eV
# Column.2: norm
#------------------------
#  energy  norm  nbkg  flat
  11540.0  0.012  0.011  0.012
  11564.0  1.000  0.998  1.000
  11580.0  0.981  0.979  0.981
`

func TestReadColumns(t *testing.T) {
	t.Parallel()

	t.Run("parses nor file skipping comments", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("data/sample.nor", []byte(norSample), 0644))

		tbl, err := ReadColumns(m, "data/sample.nor", TextOptions{
			Columns:        []Column{{Name: "energy", Index: 0}, {Name: "norm", Index: 1}},
			DropNonNumeric: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, tbl.Len())
		energy, err := tbl.Column("energy")
		require.NoError(t, err)
		assert.Equal(t, []float64{11540.0, 11564.0, 11580.0}, energy)
	})

	t.Run("higher column index", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("data/sample.chik", []byte("# hdr\n1.0 2.0 3.0 4.0\n2.0 3.0 4.0 5.0\n"), 0644))

		tbl, err := ReadColumns(m, "data/sample.chik", TextOptions{
			Columns: []Column{{Name: "k", Index: 0}, {Name: "k2chi", Index: 3}},
		})
		require.NoError(t, err)
		k2chi, err := tbl.Column("k2chi")
		require.NoError(t, err)
		assert.Equal(t, []float64{4.0, 5.0}, k2chi)
	})

	t.Run("skip lines drops unprefixed headers", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("data/profile.txt", []byte("Title\nQ I\n0.1 100\n0.2 90\n"), 0644))

		tbl, err := ReadColumns(m, "data/profile.txt", TextOptions{
			SkipLines:      2,
			Columns:        []Column{{Name: "Q", Index: 0}, {Name: "I", Index: 1}},
			DropNonNumeric: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("rows containing NAN are skipped", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("p.txt", []byte("0.1 1.0\n0.2 NAN\n0.3 3.0\n"), 0644))

		tbl, err := ReadColumns(m, "p.txt", TextOptions{
			Columns: []Column{{Name: "q", Index: 0}, {Name: "i", Index: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("missing file is a FormatError", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		_, err := ReadColumns(m, "absent.nor", TextOptions{
			Columns: []Column{{Name: "x", Index: 0}},
		})
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "absent.nor", ferr.Path)
	})

	t.Run("declared column beyond row width fails", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("narrow.txt", []byte("1.0 2.0\n3.0 4.0\n"), 0644))

		_, err := ReadColumns(m, "narrow.txt", TextOptions{
			Columns: []Column{{Name: "x", Index: 0}, {Name: "fit", Index: 5}},
		})
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Contains(t, ferr.Detail, "no data rows")
	})

	t.Run("non-numeric data fails without DropNonNumeric", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("bad.txt", []byte("1.0 2.0\noops 4.0\n"), 0644))

		_, err := ReadColumns(m, "bad.txt", TextOptions{
			Columns: []Column{{Name: "x", Index: 0}, {Name: "y", Index: 1}},
		})
		assert.True(t, errors.As(err, new(*FormatError)))
	})
}

func TestTableColumnMissing(t *testing.T) {
	t.Parallel()

	tbl := NewTable("t.txt", []string{"x"}, map[string][]float64{"x": {1, 2}})
	_, err := tbl.Column("y")
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Detail, `"y"`)
}
