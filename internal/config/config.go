// Package config loads and validates .dictate.toml, the per-decree
// configuration file for dictator.
//
// Configuration is loaded from a single file, in priority order:
//  1. An explicit path (CLI --config flag or an MCP-supplied path)
//  2. .dictate.toml in the working directory
//  3. Built-in defaults
//
// Unlike a Ruff-style cascading discovery, dictator does not walk up the
// directory tree looking for a config file: a single working-directory (or
// explicit-path) lookup.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// FileName is the config file name dictator looks for in the working directory.
const FileName = ".dictate.toml"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "DICTATOR_"

// LinterConfig names an external linter binary for a decree's
// supremecourt-mode integration. The host, not the config, controls the
// actual argv appended (auto-fix and JSON-output flags); Command only
// supplies the base invocation, e.g. "bundle exec rubocop".
type LinterConfig struct {
	Command string `koanf:"command"`
}

// DecreeSettings groups every option a `[decree.<name>]` table may set.
// A nil pointer/slice means "unset"; Merge falls back to the supreme base
// value and then to hard-coded defaults, per field.
type DecreeSettings struct {
	// Loader options.
	Enabled *bool   `koanf:"enabled"`
	Path    *string `koanf:"path"`

	// Universal hygiene (the supreme decree's own settings; language
	// decrees may override any of these for their own file types).
	TrailingWhitespace  *string `koanf:"trailing-whitespace"`
	TabsVsSpaces        *string `koanf:"tabs-vs-spaces"`
	TabWidth            *int    `koanf:"tab-width"`
	FinalNewline        *string `koanf:"final-newline"`
	LineEndings         *string `koanf:"line-endings"`
	MaxLineLength       *int    `koanf:"max-line-length"`
	BlankLineWhitespace *string `koanf:"blank-line-whitespace"`

	// Language-specific.
	MaxLines              *int     `koanf:"max-lines"`
	IgnoreComments        *bool    `koanf:"ignore-comments"`
	IgnoreBlankLines      *bool    `koanf:"ignore-blank-lines"`
	MethodVisibilityOrder []string `koanf:"method-visibility-order"`
	ImportOrder           []string `koanf:"import-order"`
	VisibilityOrder       []string `koanf:"visibility-order"`
	MinEdition            *string  `koanf:"min-edition"`
	MinRustVersion        *string  `koanf:"min-rust-version"`

	// decree.frontmatter.
	Order    []string `koanf:"order"`
	Required []string `koanf:"required"`

	// External linter integration.
	Linter *LinterConfig `koanf:"linter"`
}

// DictateConfig is the root .dictate.toml document: a map from decree name
// to its settings, keyed by the `[decree.<name>]` table name.
type DictateConfig struct {
	Decree map[string]DecreeSettings `koanf:"decree"`

	// ConfigFile records which file (if any) was loaded. Metadata only,
	// never read from the file itself.
	ConfigFile string `koanf:"-"`
}

// Default returns the built-in default configuration: a single
// `[decree.supreme]` table with the hygiene defaults that `occupy` writes
// into a fresh .dictate.toml.
func Default() *DictateConfig {
	trailingDeny := "deny"
	spaces := "spaces"
	tabWidth := 2
	requireNewline := "require"
	lf := "lf"
	maxLineLength := 120

	return &DictateConfig{
		Decree: map[string]DecreeSettings{
			"supreme": {
				TrailingWhitespace:  &trailingDeny,
				TabsVsSpaces:        &spaces,
				TabWidth:            &tabWidth,
				FinalNewline:        &requireNewline,
				LineEndings:         &lf,
				MaxLineLength:       &maxLineLength,
				BlankLineWhitespace: &trailingDeny,
			},
		},
	}
}

// Load loads configuration for the working directory dir: an explicit path
// if given, else .dictate.toml in dir if present, else built-in defaults.
func Load(dir string, explicitPath string) (*DictateConfig, error) {
	path := explicitPath
	if path == "" {
		candidate := filepath.Join(dir, FileName)
		if fileExists(candidate) {
			path = candidate
		}
	}
	return LoadFromFile(path)
}

// LoadFromFile loads configuration from path. An empty path yields the
// built-in defaults with no file read.
func LoadFromFile(path string) (*DictateConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	cfg := &DictateConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	cfg.ConfigFile = path

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKeyTransform converts DICTATOR_DECREE_SUPREME_TAB_WIDTH into
// decree.supreme.tab-width. Multi-word option names (tab-width,
// max-line-length, ...) are hyphenated, not underscored, in TOML; the
// naive underscore-to-dot pass below over-splits them, so known option
// names are re-joined via a lookup table.
var knownHyphenatedKeys = map[string]string{
	"trailing.whitespace":     "trailing-whitespace",
	"tabs.vs.spaces":          "tabs-vs-spaces",
	"tab.width":               "tab-width",
	"final.newline":           "final-newline",
	"line.endings":            "line-endings",
	"max.line.length":         "max-line-length",
	"blank.line.whitespace":   "blank-line-whitespace",
	"max.lines":               "max-lines",
	"ignore.comments":         "ignore-comments",
	"ignore.blank.lines":      "ignore-blank-lines",
	"method.visibility.order": "method-visibility-order",
	"import.order":            "import-order",
	"visibility.order":        "visibility-order",
	"min.edition":             "min-edition",
	"min.rust.version":        "min-rust-version",
}

func envKeyTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}
	return s
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
