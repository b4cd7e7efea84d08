// Package ruby implements the built-in Ruby-language decree: universal
// hygiene (rebranded under the ruby/ prefix) plus Ruby-specific checks.
package ruby

import (
	"strings"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/hygiene"
)

// Name is the decree's registry name.
const Name = "ruby"

// Decree implements Ruby-source hygiene plus language-specific checks.
type Decree struct {
	Hygiene  config.HygieneSettings
	MaxLines int
}

// New builds a ruby decree from its merged hygiene settings and
// language-specific options.
func New(hygieneSettings config.HygieneSettings, maxLines int) *Decree {
	return &Decree{Hygiene: hygieneSettings, MaxLines: maxLines}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "Ruby source hygiene and structural checks",
		Extensions:    []string{"rb", "rake", "gemspec", "ru"},
		Filenames:     []string{"Gemfile", "Rakefile"},
		SkipFilenames: []string{"Gemfile.lock"},
		Capabilities:  []decree.Capability{decree.CapabilityLint, decree.CapabilityRuntimeConfig},
	}
}

func (d *Decree) Lint(path string, source string) decree.Diagnostics {
	out := hygiene.Check(Name, source, d.Hygiene)
	out = append(out, checkCommentSpace(source)...)
	out = append(out, checkFileTooLong(source, d.MaxLines)...)
	return out
}

// checkCommentSpace flags a '#' not followed by a space (other than a
// shebang line). Carries forward a verbatim special case: the first line is
// never flagged if the text after the '#' run starts with " language".
func checkCommentSpace(source string) decree.Diagnostics {
	var out decree.Diagnostics
	offset := 0
	for lineIdx, line := range strings.Split(source, "\n") {
		start := offset
		offset += len(line) + 1

		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		if lineIdx == 0 && strings.HasPrefix(trimmed, "#!") {
			continue
		}

		rest := strings.TrimLeft(trimmed, "#")
		if lineIdx == 0 && strings.HasPrefix(rest, " language") {
			continue
		}
		if rest != "" && !strings.HasPrefix(rest, " ") {
			hashStart := start + (len(line) - len(trimmed))
			out = append(out, decree.Diagnostic{
				Rule:     Name + "/comment-space",
				Message:  "comment marker '#' should be followed by a space",
				Span:     decree.NewSpan(hashStart, hashStart+1),
				Enforced: false,
			})
		}
	}
	return out
}

func checkFileTooLong(source string, maxLines int) decree.Diagnostics {
	if maxLines <= 0 {
		return nil
	}
	count := 0
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++
	}
	if count <= maxLines {
		return nil
	}
	return decree.Diagnostics{{
		Rule:     Name + "/file-too-long",
		Message:  "file has too many lines",
		Span:     decree.NewSpan(0, len(source)),
		Enforced: false,
	}}
}
