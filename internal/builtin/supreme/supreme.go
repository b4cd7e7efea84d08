// Package supreme implements the built-in universal hygiene decree:
// whitespace, indentation, line-length, and newline checks that apply to
// every file unless a language decree shadows it.
package supreme

import (
	"path/filepath"
	"strings"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/hygiene"
)

// Name is the decree's registry name.
const Name = "supreme"

// Decree is the universal hygiene decree. Base is the resolved supreme
// settings for files outside the Overrides table; Overrides maps a
// language name (see config.LanguageForExtension) to that language's
// merged hygiene settings, so that a file claimed by a language decree
// still gets hygiene-checked under that language's prefix when the
// language decree chooses to delegate to supreme instead of re-running the
// checks itself.
type Decree struct {
	Base      config.HygieneSettings
	Overrides map[string]config.HygieneSettings
}

// New builds a supreme decree from the resolved base settings and the
// per-language overrides table built by config.LanguageOverrides.
func New(base config.HygieneSettings, overrides map[string]config.HygieneSettings) *Decree {
	return &Decree{Base: base, Overrides: overrides}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "universal whitespace, indentation, and newline hygiene",
		Capabilities:  []decree.Capability{decree.CapabilityLint, decree.CapabilityRuntimeConfig},
		// Extensions and Filenames are intentionally empty: supreme is
		// universal (see decree.Metadata.IsUniversal).
	}
}

func (d *Decree) Lint(path string, source string) decree.Diagnostics {
	ext := extensionOf(path)
	lang := config.LanguageForExtension(ext)
	if lang == "" {
		return hygiene.Check(Name, source, d.Base)
	}
	if settings, ok := d.Overrides[lang]; ok {
		return hygiene.Check(lang, source, settings)
	}
	return hygiene.Check(Name, source, d.Base)
}

func extensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
