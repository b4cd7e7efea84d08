package config

// HygieneSettings is the fully resolved set of universal hygiene checks:
// every field populated, no pointers, no "unset" states. It is what gets
// carried into the supreme decree and into each language decree's merged
// config.
type HygieneSettings struct {
	TrailingWhitespace string
	TabsVsSpaces       string
	TabWidth           int
	FinalNewline       string
	LineEndings        string
	MaxLineLength      int
	BlankLineWhitespace string
}

// hardDefaults are the last-resort values when neither a language override
// nor the supreme base config sets a field.
var hardDefaults = HygieneSettings{
	TrailingWhitespace:  "deny",
	TabsVsSpaces:        "spaces",
	TabWidth:            2,
	FinalNewline:        "require",
	LineEndings:         "lf",
	MaxLineLength:       120,
	BlankLineWhitespace: "deny",
}

// ResolveHygiene computes the supreme base hygiene settings: base.<field>
// wins if set, else the hard-coded default.
func ResolveHygiene(base DecreeSettings) HygieneSettings {
	return mergeHygiene(hardDefaults, base)
}

// MergeLanguageHygiene implements the §4.4 merge rule: for each setting,
// language's value wins if set, else the supreme base wins, else the
// hard-coded default.
func MergeLanguageHygiene(supremeBase HygieneSettings, language DecreeSettings) HygieneSettings {
	return mergeHygiene(supremeBase, language)
}

func mergeHygiene(fallback HygieneSettings, override DecreeSettings) HygieneSettings {
	out := fallback
	if override.TrailingWhitespace != nil {
		out.TrailingWhitespace = *override.TrailingWhitespace
	}
	if override.TabsVsSpaces != nil {
		out.TabsVsSpaces = *override.TabsVsSpaces
	}
	if override.TabWidth != nil {
		out.TabWidth = *override.TabWidth
	}
	if override.FinalNewline != nil {
		out.FinalNewline = *override.FinalNewline
	}
	if override.LineEndings != nil {
		out.LineEndings = *override.LineEndings
	}
	if override.MaxLineLength != nil {
		out.MaxLineLength = *override.MaxLineLength
	}
	if override.BlankLineWhitespace != nil {
		out.BlankLineWhitespace = *override.BlankLineWhitespace
	}
	return out
}

// languageExtensions maps a source extension (no leading dot, lowercase) to
// the language name used by supreme's language-overrides table and by the
// supreme-shadowing rule in the regime layer.
var languageExtensions = map[string]string{
	"rb": "ruby", "rake": "ruby", "gemspec": "ruby", "ru": "ruby",
	"ts": "typescript", "tsx": "typescript", "js": "typescript",
	"jsx": "typescript", "mjs": "typescript", "cjs": "typescript",
	"py": "python", "pyi": "python",
	"go": "golang",
	"rs": "rust",
}

// LanguageForExtension resolves ext (no leading dot) to the language name
// supreme uses to pick a language override, or "" if ext isn't one of the
// recognized language extensions.
func LanguageForExtension(ext string) string {
	return languageExtensions[ext]
}

// LanguageOverrides builds the {language -> merged hygiene settings} table
// supreme uses at lint time, from the supreme base settings and the
// per-language decree settings present in cfg.
func LanguageOverrides(cfg *DictateConfig, supremeBase HygieneSettings) map[string]HygieneSettings {
	out := make(map[string]HygieneSettings)
	for _, lang := range []string{"ruby", "typescript", "python", "golang", "rust"} {
		settings, ok := cfg.Decree[lang]
		if !ok {
			continue
		}
		out[lang] = MergeLanguageHygiene(supremeBase, settings)
	}
	return out
}
