// Package python implements the built-in Python decree: universal hygiene
// (rebranded under the python/ prefix) plus language-specific structural
// checks.
package python

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
const Name = "python"

// stdlibModules is the hard-coded allow-list of Python standard library
// top-level modules used to classify import-order.
var stdlibModules = map[string]bool{
	"os": true, "sys": true, "re": true, "json": true, "io": true,
	"typing": true, "collections": true, "itertools": true, "functools": true,
	"pathlib": true, "subprocess": true, "dataclasses": true, "enum": true,
	"abc": true, "asyncio": true, "logging": true, "datetime": true,
	"math": true, "random": true, "unittest": true, "argparse": true,
}

var importPattern = regexp.MustCompile(`(?m)^\s*(?:import\s+(\S+)|from\s+(\.*\S+)\s+import\s)`)

// Decree implements Python hygiene plus language-specific checks.
type Decree struct {
	Hygiene  config.HygieneSettings
	MaxLines int
}

// New builds a python decree from its merged hygiene settings and
// language-specific options.
func New(hygieneSettings config.HygieneSettings, maxLines int) *Decree {
	return &Decree{Hygiene: hygieneSettings, MaxLines: maxLines}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "Python source hygiene and structural checks",
		Extensions:    []string{"py", "pyi"},
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
		module := ""
		switch {
		case m[2] != -1:
			module = source[m[2]:m[3]]
		case m[4] != -1:
			module = source[m[4]:m[5]]
		}
		if module == "" {
			continue
		}
		out = append(out, importorder.Import{Module: module, Start: m[0], End: m[1]})
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
		Rule:    Name + "/file-too-long",
		Message: "file has too many lines",
		Span:    decree.NewSpan(0, len(source)),
	}}
}
