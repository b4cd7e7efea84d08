// Package regime implements the composition layer that turns a set of
// decrees into a single enforcement pipeline: file-to-decree matching,
// supreme-shadowing, and diagnostic aggregation.
package regime

import (
	"path/filepath"
	"strings"

	"github.com/seuros/dictator/internal/decree"
)

// shadowingLanguages is the set of decree names that suppress the supreme
// decree for any file they themselves claim.
var shadowingLanguages = map[string]bool{
	"ruby":       true,
	"typescript": true,
	"golang":     true,
	"rust":       true,
	"python":     true,
}

// Source is a single in-memory file under enforcement.
type Source struct {
	Path string
	Text string
}

// Regime owns an ordered set of decrees and knows how to run them over a
// batch of sources, applying the supreme-shadowing rule.
type Regime struct {
	decrees     []decree.Decree
	ruleIgnores map[string]bool
}

// New creates an empty regime.
func New() *Regime {
	return &Regime{ruleIgnores: make(map[string]bool)}
}

// WithDecree adds d and returns the regime, for chained construction.
func (r *Regime) WithDecree(d decree.Decree) *Regime {
	r.AddDecree(d)
	return r
}

// AddDecree appends d to the regime. Decrees are matched and run in the
// order they were added; that order is preserved in emission.
func (r *Regime) AddDecree(d decree.Decree) {
	r.decrees = append(r.decrees, d)
}

// Decrees returns the decrees in insertion order. The returned slice must
// not be modified.
func (r *Regime) Decrees() []decree.Decree {
	return r.decrees
}

// IgnoreRule marks rule as globally suppressed: enforceOne drops any
// diagnostic with this exact rule id before returning.
func (r *Regime) IgnoreRule(rule string) {
	r.ruleIgnores[rule] = true
}

// WatchedExtensions returns the lowercased union of supported_extensions
// across all non-universal decrees, or (nil, false) if every loaded decree
// is universal — meaning the watcher should watch everything.
func (r *Regime) WatchedExtensions() (exts map[string]bool, ok bool) {
	exts = make(map[string]bool)
	anyNonUniversal := false
	for _, d := range r.decrees {
		meta := d.Metadata()
		if meta.IsUniversal() {
			continue
		}
		anyNonUniversal = true
		for _, ext := range meta.Extensions {
			exts[strings.ToLower(ext)] = true
		}
	}
	if !anyNonUniversal {
		return nil, false
	}
	return exts, true
}

// matchKind describes why a decree does or does not run on a file.
type matchKind int

const (
	matchNone matchKind = iota
	matchSkip
	matchFilename
	matchExtension
	matchUniversal
)

// matchFile applies the §4.3 priority rules for a single decree against a
// single file's basename and extension.
func matchFile(meta decree.Metadata, basename, ext string) matchKind {
	for _, skip := range meta.SkipFilenames {
		if basename == skip {
			return matchSkip
		}
	}
	for _, name := range meta.Filenames {
		if basename == name {
			return matchFilename
		}
	}
	for _, e := range meta.Extensions {
		if strings.ToLower(e) == ext {
			return matchExtension
		}
	}
	if meta.IsUniversal() {
		return matchUniversal
	}
	return matchNone
}

// Enforce runs every matching decree over every source and returns the
// aggregated diagnostics in source order, and in decree-insertion order
// within each source.
func (r *Regime) Enforce(sources []Source) decree.Diagnostics {
	var out decree.Diagnostics
	for _, src := range sources {
		out = append(out, r.enforceOne(src)...)
	}
	return out
}

// EnforceOne runs every matching decree over a single source.
func (r *Regime) EnforceOne(src Source) decree.Diagnostics {
	return r.enforceOne(src)
}

func (r *Regime) enforceOne(src Source) decree.Diagnostics {
	basename := filepath.Base(src.Path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(src.Path), "."))

	// First pass: determine which decrees match, and whether supreme should
	// be shadowed because a language decree claimed this file under rules 1-3.
	type matched struct {
		d    decree.Decree
		kind matchKind
	}
	var matches []matched
	shadowSupreme := false

	for _, d := range r.decrees {
		kind := matchFile(d.Metadata(), basename, ext)
		if kind == matchNone {
			continue
		}
		matches = append(matches, matched{d, kind})
		if shadowingLanguages[d.Name()] && kind != matchUniversal {
			shadowSupreme = true
		}
	}

	var out decree.Diagnostics
	for _, m := range matches {
		if m.kind == matchSkip {
			// This decree owns the file but emits nothing.
			continue
		}
		if m.d.Name() == "supreme" && shadowSupreme {
			continue
		}
		diags := m.d.Lint(src.Path, src.Text)
		for _, diag := range diags {
			if r.ruleIgnores[diag.Rule] {
				continue
			}
			out = append(out, diag)
		}
	}
	return out
}
