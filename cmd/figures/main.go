// Command figures rebuilds the published charts from the raw instrument
// data. With no arguments it runs the whole catalogue; figure names on the
// command line select a subset. Settings can also come from a JSON config
// file, with explicit flags taking precedence.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fcbenten/figures/internal/config"
	"github.com/fcbenten/figures/internal/figure"
	"github.com/fcbenten/figures/internal/figures"
	"github.com/fcbenten/figures/internal/fsutil"
	"github.com/fcbenten/figures/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Optional JSON run configuration file")
	dataDir := flag.String("data", config.DefaultDataDir, "Directory holding the instrument data files")
	outDir := flag.String("out", config.DefaultOutDir, "Output directory for rendered figures")
	html := flag.Bool("html", false, "Also write an interactive HTML preview per figure")
	list := flag.Bool("list", false, "List the available figure names and exit")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("figures %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if *list {
		for _, name := range figures.Names() {
			fmt.Println(name)
		}
		return
	}

	fs := fsutil.OSFileSystem{}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(fs, *configPath)
		if err != nil {
			log.Fatalf("figures: %v", err)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["data"] {
		*dataDir = cfg.GetDataDir()
	}
	if !set["out"] {
		*outDir = cfg.GetOutDir()
	}
	if !set["html"] {
		*html = cfg.GetHTML()
	}
	names := flag.Args()
	if len(names) == 0 {
		names = cfg.Figures
	}

	specs, err := figures.Lookup(names)
	if err != nil {
		log.Fatalf("figures: %v", err)
	}

	env := figure.Env{FS: fs, DataDir: *dataDir}
	results := figure.RunAll(env, specs, figure.Options{OutDir: *outDir, HTML: *html})
	if n := figure.FailureCount(results); n > 0 {
		os.Exit(1)
	}
}
