package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcbenten/figures/internal/fsutil"
)

const haxpesExport = `Region Name=VB
Excitation Energy=7939.9
Pass Energy=200
[Data 1]
7925.00 120.5
7925.05 118.2
7925.10 60.0
[Data 2]
7925.00 999.0
`

func TestReadHAXPES(t *testing.T) {
	t.Parallel()

	t.Run("metadata and first data block", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("vb.txt", []byte(haxpesExport), 0644))

		h, err := ReadHAXPES(m, "vb.txt")
		require.NoError(t, err)
		assert.Equal(t, "VB", h.Meta["Region Name"])
		assert.Equal(t, []float64{7925.00, 7925.05, 7925.10}, h.Energy)
		assert.Equal(t, []float64{120.5, 118.2, 60.0}, h.Intensity)

		hv, err := h.PhotonEnergy()
		require.NoError(t, err)
		assert.InDelta(t, 7939.9, hv, 1e-9)
	})

	t.Run("binding energy conversion", func(t *testing.T) {
		t.Parallel()
		h := &HAXPESFile{Energy: []float64{7930.0, 7939.9}}
		be := h.BindingEnergy(7939.9)
		assert.InDeltaSlice(t, []float64{9.9, 0.0}, be, 1e-9)
	})

	t.Run("missing data block is a FormatError", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("meta.txt", []byte("Excitation Energy=100\n"), 0644))

		_, err := ReadHAXPES(m, "meta.txt")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Contains(t, ferr.Detail, "[Data]")
	})

	t.Run("missing excitation energy", func(t *testing.T) {
		t.Parallel()
		h := &HAXPESFile{Meta: map[string]string{}}
		_, err := h.PhotonEnergy()
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := ReadHAXPES(fsutil.NewMemoryFileSystem(), "absent.txt")
		assert.Error(t, err)
	})
}
