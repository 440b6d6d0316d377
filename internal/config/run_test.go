package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcbenten/figures/internal/fsutil"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("partial config keeps defaults", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("run.json", []byte(`{"out_dir": "/tmp/figs"}`), 0644))

		cfg, err := Load(m, "run.json")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/figs", cfg.GetOutDir())
		assert.Equal(t, DefaultDataDir, cfg.GetDataDir())
		assert.False(t, cfg.GetHTML())
		assert.Empty(t, cfg.Figures)
	})

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("run.json", []byte(
			`{"data_dir": "d", "out_dir": "o", "html": true, "figures": ["cv_curve", "xafs_norm"]}`), 0644))

		cfg, err := Load(m, "run.json")
		require.NoError(t, err)
		assert.Equal(t, "d", cfg.GetDataDir())
		assert.Equal(t, "o", cfg.GetOutDir())
		assert.True(t, cfg.GetHTML())
		assert.Equal(t, []string{"cv_curve", "xafs_norm"}, cfg.Figures)
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("run.yaml", []byte(`{}`), 0644))

		_, err := Load(m, "run.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(fsutil.NewMemoryFileSystem(), "absent.json")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("run.json", []byte(`{"out_dir": `), 0644))

		_, err := Load(m, "run.json")
		assert.Error(t, err)
	})

	t.Run("empty out_dir is invalid", func(t *testing.T) {
		t.Parallel()
		m := fsutil.NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("run.json", []byte(`{"out_dir": ""}`), 0644))

		_, err := Load(m, "run.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out_dir")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Empty().Validate())

	bad := Empty()
	bad.Figures = []string{"cv_curve", ""}
	assert.Error(t, bad.Validate())
}
