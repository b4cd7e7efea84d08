// Package host wires a loaded DictateConfig into a ready-to-use regime.Regime:
// constructing built-in decrees with their merged hygiene settings, and
// delegating to the decree loader for any decree configured with a path.
package host

import (
	"path/filepath"
	"strings"

	"github.com/seuros/dictator/internal/builtin/frontmatter"
	"github.com/seuros/dictator/internal/builtin/golang"
	"github.com/seuros/dictator/internal/builtin/python"
	"github.com/seuros/dictator/internal/builtin/rust"
	"github.com/seuros/dictator/internal/builtin/ruby"
	"github.com/seuros/dictator/internal/builtin/supreme"
	"github.com/seuros/dictator/internal/builtin/typescript"
	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
	decreeloader "github.com/seuros/dictator/internal/decree/loader"
	"github.com/seuros/dictator/internal/regime"
)

// languageNames lists the decree names the supreme-shadowing rule and the
// config merge rule treat specially, in the add-order the original
// implementation's init_regime_for_watch/init_regime_for_files use.
var languageNames = []string{"ruby", "typescript", "golang", "rust", "python"}

// frontmatterConfigKey is the [decree.<name>] table name a user writes to
// configure decree.frontmatter. It is distinct from the decree's own
// name (Name == "decree.frontmatter", the prefix its rule ids carry),
// matching the original implementation's config.decree.get("frontmatter").
const frontmatterConfigKey = "frontmatter"

// FileTypes summarizes which language/frontmatter categories appear among
// a set of file paths, by extension. Mirrors original_source's
// crates/dictator/src/files.rs FileTypes.
type FileTypes struct {
	Ruby, TypeScript, Golang, Rust, Python, Configs bool
}

// DetectFileTypes inspects each path's extension, matching
// original_source's detect_file_types: .md/.mdx count as "configs"
// (decree.frontmatter's domain), everything else maps to its language.
func DetectFileTypes(files []string) FileTypes {
	var t FileTypes
	for _, f := range files {
		switch strings.ToLower(strings.TrimPrefix(filepath.Ext(f), ".")) {
		case "rb", "rake":
			t.Ruby = true
		case "ts", "tsx", "js", "jsx":
			t.TypeScript = true
		case "go":
			t.Golang = true
		case "rs":
			t.Rust = true
		case "py":
			t.Python = true
		case "md", "mdx":
			t.Configs = true
		}
	}
	return t
}

// BuildRegime constructs the "watch mode" regime, per original_source's
// init_regime_for_watch: decree.supreme always runs, and every language
// decree plus decree.frontmatter is loaded unconditionally, since future
// file changes under a long-running watch are unknown and any of them
// could match. Settings come from cfg.Decree[name] when an explicit
// [decree.<name>] table exists, else hard-coded defaults — config only
// ever supplies settings, never membership. A decree is skipped only when
// its table sets `enabled = false` explicitly. Any additional
// [decree.<name>] table naming a decree outside this fixed set is loaded
// too, as a native library or WASM component per decree.loader; load
// failures for a single decree are collected and returned alongside the
// partially built regime (§4.2: fatal for that decree, not the regime).
func BuildRegime(cfg *config.DictateConfig) (*regime.Regime, []error) {
	return buildRegime(cfg, nil)
}

// BuildRegimeForFiles constructs the "lint mode" regime, per
// original_source's init_regime_for_files: decree.supreme always runs,
// but each language decree (and decree.frontmatter) is instantiated only
// when a file extension belonging to it is actually present among files.
// One-shot CLI invocations (lint, dictate) scope the regime to files they
// were actually asked to process, rather than paying for (and risking
// double-counting diagnostics from) decrees that can't match anything in
// this run.
func BuildRegimeForFiles(cfg *config.DictateConfig, files []string) (*regime.Regime, []error) {
	types := DetectFileTypes(files)
	return buildRegime(cfg, &types)
}

// buildRegime is shared by BuildRegime (types == nil: unconditional) and
// BuildRegimeForFiles (types != nil: scoped to detected file types).
func buildRegime(cfg *config.DictateConfig, types *FileTypes) (*regime.Regime, []error) {
	r := regime.New()
	var errs []error

	supremeSettings := cfg.Decree["supreme"]
	supremeBase := config.ResolveHygiene(supremeSettings)
	overrides := config.LanguageOverrides(cfg, supremeBase)

	if enabled(cfg, "supreme") {
		r.AddDecree(supreme.New(supremeBase, overrides))
	}

	want := map[string]bool{
		"ruby":       types == nil || types.Ruby,
		"typescript": types == nil || types.TypeScript,
		"golang":     types == nil || types.Golang,
		"rust":       types == nil || types.Rust,
		"python":     types == nil || types.Python,
	}
	wantFrontmatter := types == nil || types.Configs

	for _, name := range languageNames {
		if !want[name] || !enabled(cfg, name) {
			continue
		}
		d, err := buildLanguageDecree(name, cfg.Decree[name], supremeBase)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.AddDecree(d)
	}

	if wantFrontmatter && enabled(cfg, frontmatterConfigKey) {
		settings := cfg.Decree[frontmatterConfigKey]
		r.AddDecree(frontmatter.New(settings.Order, settings.Required))
	}

	knownKeys := map[string]bool{
		"supreme": true, "ruby": true, "typescript": true, "golang": true,
		"rust": true, "python": true, frontmatterConfigKey: true,
	}
	for name, settings := range cfg.Decree {
		if knownKeys[name] || !enabled(cfg, name) {
			continue
		}
		path := stringOf(settings.Path)
		d, err := decreeloader.Load(name, path, decree.ABIVersion)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.AddDecree(d)
	}

	return r, errs
}

// enabled reports whether the named decree's config table (if any) opts
// out via `enabled = false`. Absent table, or a table without the field
// set, means enabled.
func enabled(cfg *config.DictateConfig, name string) bool {
	settings, ok := cfg.Decree[name]
	if !ok {
		return true
	}
	return settings.Enabled == nil || *settings.Enabled
}

// buildLanguageDecree constructs one of the five fixed language decrees,
// or loads it from a configured path if the decree's table supplies one.
func buildLanguageDecree(name string, settings config.DecreeSettings, supremeBase config.HygieneSettings) (decree.Decree, error) {
	if path := stringOf(settings.Path); path != "" {
		return decreeloader.Load(name, path, decree.ABIVersion)
	}

	merged := config.MergeLanguageHygiene(supremeBase, settings)
	switch name {
	case "ruby":
		return ruby.New(merged, maxLinesOf(settings)), nil
	case "typescript":
		return typescript.New(merged, maxLinesOf(settings)), nil
	case "python":
		return python.New(merged, maxLinesOf(settings)), nil
	case "golang":
		return golang.New(merged, maxLinesOf(settings)), nil
	case "rust":
		return rust.New(
			merged,
			maxLinesOf(settings),
			stringOf(settings.MinEdition),
			stringOf(settings.MinRustVersion),
			settings.VisibilityOrder,
		), nil
	default:
		return decreeloader.Load(name, "", decree.ABIVersion)
	}
}

func maxLinesOf(s config.DecreeSettings) int {
	if s.MaxLines == nil {
		return 0
	}
	return *s.MaxLines
}

func stringOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RegisterBuiltins registers every built-in decree's zero-configuration
// constructor with decree.DefaultRegistry, so name-only (no-path) lookups
// in contexts other than BuildRegime (e.g. census reporting) can discover
// what a bare name resolves to.
func RegisterBuiltins() {
	decree.Register("supreme", func() decree.Decree { return supreme.New(config.HygieneSettings{}, nil) })
	decree.Register("ruby", func() decree.Decree { return ruby.New(config.HygieneSettings{}, 0) })
	decree.Register("typescript", func() decree.Decree { return typescript.New(config.HygieneSettings{}, 0) })
	decree.Register("python", func() decree.Decree { return python.New(config.HygieneSettings{}, 0) })
	decree.Register("golang", func() decree.Decree { return golang.New(config.HygieneSettings{}, 0) })
	decree.Register("rust", func() decree.Decree { return rust.New(config.HygieneSettings{}, 0, "", "", nil) })
	decree.Register(frontmatterConfigKey, func() decree.Decree { return frontmatter.New(nil, nil) })
}
