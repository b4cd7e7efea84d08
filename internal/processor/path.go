package processor

import "strings"

// PathNormalization converts file paths to forward slashes for
// cross-platform consistency, so output is identical regardless of OS.
type PathNormalization struct{}

// NewPathNormalization creates a new path normalization processor.
func NewPathNormalization() *PathNormalization {
	return &PathNormalization{}
}

func (p *PathNormalization) Name() string { return "path-normalization" }

func (p *PathNormalization) Process(findings []Finding, _ *Context) []Finding {
	return transformFindings(findings, func(f Finding) Finding {
		f.Path = strings.ReplaceAll(f.Path, "\\", "/")
		return f
	})
}
