// Package typescript implements the built-in TypeScript/JavaScript decree:
// universal hygiene (rebranded under the typescript/ prefix) plus
// language-specific structural checks.
package typescript

import (
	"regexp"
	"strings"

	"github.com/seuros/dictator/internal/builtin/importorder"
	"github.com/seuros/dictator/internal/builtin/indentcheck"
	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/hygiene"
)

// Name is the decree's registry name.
const Name = "typescript"

// stdlibModules is the hard-coded allow-list of Node.js built-in modules
// used to classify import-order.
var stdlibModules = map[string]bool{
	"fs": true, "path": true, "os": true, "util": true, "events": true,
	"http": true, "https": true, "net": true, "stream": true, "crypto": true,
	"child_process": true, "url": true, "querystring": true, "assert": true,
	"buffer": true, "process": true, "node:fs": true, "node:path": true,
}

var importPattern = regexp.MustCompile(`(?m)^\s*import\s+(?:[\w*{}\s,]+\s+from\s+)?['"]([^'"]+)['"]`)

// Decree implements TypeScript/JavaScript hygiene plus language-specific
// checks.
type Decree struct {
	Hygiene  config.HygieneSettings
	MaxLines int
}

// New builds a typescript decree from its merged hygiene settings and
// language-specific options.
func New(hygieneSettings config.HygieneSettings, maxLines int) *Decree {
	return &Decree{Hygiene: hygieneSettings, MaxLines: maxLines}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "TypeScript/JavaScript source hygiene and structural checks",
		Extensions:    []string{"ts", "tsx", "js", "jsx", "mjs", "cjs"},
		SkipFilenames: []string{"package-lock.json"},
		Capabilities:  []decree.Capability{decree.CapabilityLint, decree.CapabilityRuntimeConfig},
	}
}

func (d *Decree) Lint(path string, source string) decree.Diagnostics {
	out := hygiene.Check(Name, source, d.Hygiene)
	out = append(out, indentcheck.Check(Name, source)...)
	out = append(out, importorder.Check(Name, extractImports(source), stdlibModules)...)
	out = append(out, checkFileTooLong(source, d.MaxLines)...)
	return out
}

func extractImports(source string) []importorder.Import {
	var out []importorder.Import
	for _, m := range importPattern.FindAllStringSubmatchIndex(source, -1) {
		out = append(out, importorder.Import{
			Module: source[m[2]:m[3]],
			Start:  m[0],
			End:    m[1],
		})
	}
	return out
}

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
