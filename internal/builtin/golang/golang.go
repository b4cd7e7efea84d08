// Package golang implements the built-in Go-language decree: universal
// hygiene (rebranded under the golang/ prefix) plus Go-specific checks.
package golang

import (
	"strings"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/hygiene"
)

// Name is the decree's registry name.
const Name = "golang"

// Decree implements Go-source hygiene plus language-specific checks.
type Decree struct {
	Hygiene  config.HygieneSettings
	MaxLines int // 0 disables the file-too-long check.
}

// New builds a golang decree from its merged hygiene settings and
// language-specific options.
func New(hygieneSettings config.HygieneSettings, maxLines int) *Decree {
	return &Decree{Hygiene: hygieneSettings, MaxLines: maxLines}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "Go source hygiene and structural checks",
		Extensions:    []string{"go"},
		Filenames:     []string{"go.mod", "go.work"},
		SkipFilenames: []string{"go.sum", "go.work.sum"},
		Capabilities:  []decree.Capability{decree.CapabilityLint, decree.CapabilityRuntimeConfig},
	}
}

func (d *Decree) Lint(path string, source string) decree.Diagnostics {
	out := hygiene.Check(Name, source, d.Hygiene)
	out = append(out, checkSpacesInsteadOfTabs(source)...)
	out = append(out, checkFileTooLong(source, d.MaxLines)...)
	return out
}

// checkSpacesInsteadOfTabs flags leading spaces used for indentation,
// skipping any line currently inside a backtick-delimited raw string.
// Raw-string state toggles on every odd backtick count encountered on a
// line, approximating (not fully parsing) Go's raw string literals.
func checkSpacesInsteadOfTabs(source string) decree.Diagnostics {
	var out decree.Diagnostics
	inRawString := false
	offset := 0
	for _, line := range strings.Split(source, "\n") {
		start := offset
		offset += len(line) + 1

		if !inRawString && strings.HasPrefix(line, " ") {
			out = append(out, decree.Diagnostic{
				Rule:    Name + "/spaces-instead-of-tabs",
				Message: "line is indented with spaces, expected tabs",
				Span:    decree.NewSpan(start, start+leadingSpaces(line)),
				Enforced: true,
			})
		}

		if strings.Count(line, "`")%2 == 1 {
			inRawString = !inRawString
		}
	}
	return out
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// checkFileTooLong counts non-blank, non-comment lines and reports
// golang/file-too-long if it exceeds maxLines. maxLines <= 0 disables the
// check.
func checkFileTooLong(source string, maxLines int) decree.Diagnostics {
	if maxLines <= 0 {
		return nil
	}
	count := 0
	inBlockComment := false
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case inBlockComment:
			if strings.Contains(trimmed, "*/") {
				inBlockComment = false
			}
			continue
		case strings.HasPrefix(trimmed, "//"):
			continue
		case strings.HasPrefix(trimmed, "/*"):
			if !strings.Contains(trimmed, "*/") {
				inBlockComment = true
			}
			continue
		default:
			count++
		}
	}
	if count <= maxLines {
		return nil
	}
	return decree.Diagnostics{{
		Rule:    Name + "/file-too-long",
		Message: "file has too many lines",
		Span:    decree.NewSpan(0, len(source)),
	}}
}
