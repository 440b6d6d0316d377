// Package figure runs figure pipelines: each Spec loads its instrument
// files, derives the plotted quantities, and renders a chart. Specs are
// independent of each other; a batch keeps going when one of them fails.
package figure

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fcbenten/figures/internal/fsutil"
	"github.com/fcbenten/figures/internal/render"
)

// Env carries the inputs a figure pipeline needs: the filesystem to read
// and write through, and the directory holding the instrument data files.
type Env struct {
	FS      fsutil.FileSystem
	DataDir string
}

// DataPath resolves a data file name inside the data directory.
func (e Env) DataPath(name string) string {
	return filepath.Join(e.DataDir, name)
}

// Spec is one reproducible figure: a name, the output file it produces, and
// the pipeline that builds its chart from the data directory.
type Spec struct {
	Name   string
	Output string // file name written under the output directory
	Build  func(env Env) (*render.Chart, error)
}

// Result records one figure run within a batch.
type Result struct {
	Name string
	Path string
	Err  error
}

// Options controls a run.
type Options struct {
	OutDir string
	HTML   bool // also write an interactive HTML preview next to each PNG
}

// Run executes a single figure pipeline and writes its output files.
func Run(env Env, spec Spec, opts Options) (Result, error) {
	res := Result{Name: spec.Name}
	chart, err := spec.Build(env)
	if err != nil {
		res.Err = fmt.Errorf("figure %s: %w", spec.Name, err)
		return res, res.Err
	}

	if err := env.FS.MkdirAll(opts.OutDir, 0o755); err != nil {
		res.Err = fmt.Errorf("figure %s: %w", spec.Name, err)
		return res, res.Err
	}

	res.Path = filepath.Join(opts.OutDir, spec.Output)
	if err := render.WritePNG(env.FS, chart, res.Path); err != nil {
		res.Err = fmt.Errorf("figure %s: %w", spec.Name, err)
		return res, res.Err
	}
	if opts.HTML {
		htmlPath := strings.TrimSuffix(res.Path, filepath.Ext(res.Path)) + ".html"
		if err := render.WriteHTML(env.FS, chart, htmlPath); err != nil {
			res.Err = fmt.Errorf("figure %s: %w", spec.Name, err)
			return res, res.Err
		}
	}
	return res, nil
}

// RunAll executes every spec in order. A failing figure is logged and
// recorded but does not stop the batch.
func RunAll(env Env, specs []Spec, opts Options) []Result {
	runID := uuid.New().String()[:8]
	Logf("run %s: %d figures -> %s", runID, len(specs), opts.OutDir)

	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		res, err := Run(env, spec, opts)
		if err != nil {
			Logf("run %s: %s FAILED: %v", runID, spec.Name, err)
		} else {
			Logf("run %s: %s -> %s", runID, spec.Name, res.Path)
		}
		results = append(results, res)
	}

	if n := FailureCount(results); n > 0 {
		Logf("run %s: done, %d of %d figures failed", runID, n, len(specs))
	} else {
		Logf("run %s: done", runID)
	}
	return results
}

// FailureCount reports how many results carry an error.
func FailureCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
