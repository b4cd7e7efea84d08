package cmd

import (
	"os"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/discover"
	"github.com/seuros/dictator/internal/host"
	"github.com/seuros/dictator/internal/processor"
	"github.com/seuros/dictator/internal/regime"
)

// loadRegime loads .dictate.toml (or defaults) from dir and builds the
// "watch mode" regime from it (every built-in decree, unconditionally).
// Per-decree load failures are non-fatal and returned alongside the
// regime, matching §4.2. The returned config is reused by callers that
// need to rebuild a narrower, file-type-scoped regime (see lintPaths).
func loadRegime(dir, explicitConfig string) (*config.DictateConfig, *regime.Regime, []error, error) {
	cfg, err := config.Load(dir, explicitConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, buildErrs := host.BuildRegime(cfg)
	return cfg, reg, buildErrs, nil
}

// lintPaths expands paths through discover.Files (using discoveryReg, the
// watch-mode regime, to decide which extensions to walk), then rebuilds a
// "lint mode" regime scoped to the file types actually discovered before
// enforcing. Returns the processed findings, the raw file contents (for
// text-reporter source snippets), the file count, and any decree build
// errors from the scoped rebuild.
func lintPaths(paths []string, cfg *config.DictateConfig, discoveryReg *regime.Regime) ([]processor.Finding, map[string][]byte, int, []error, error) {
	files, err := discover.Files(paths, discover.Options{Regime: discoveryReg})
	if err != nil {
		return nil, nil, 0, nil, err
	}

	reg, buildErrs := host.BuildRegimeForFiles(cfg, files)

	chain := processor.Default()
	sources := make(map[string][]byte, len(files))
	var all []processor.Finding

	for _, f := range files {
		data, readErr := os.ReadFile(f)
		if readErr != nil {
			continue
		}
		sources[f] = data
		diags := reg.EnforceOne(regime.Source{Path: f, Text: string(data)})
		all = append(all, processor.FromDiagnostics(f, diags)...)
	}

	ctx := processor.NewContext(sources)
	all = chain.Process(all, ctx)
	return all, sources, len(files), buildErrs, nil
}
