// Package processor provides a composable finding-processing pipeline.
//
// The processor chain pattern mirrors golangci-lint's approach: findings
// flow through a sequence of processors, each transforming the slice
// (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - cross-platform path consistency
//  2. Deduplication - remove duplicate findings
//  3. Sorting - stable output ordering
//  4. SnippetAttachment - populate the Snippet field
package processor

import (
	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/sourcemap"
)

// Finding is a decree.Diagnostic attributed to a file, with a line/column
// position and optional source snippet resolved for reporting.
type Finding struct {
	Path     string
	Rule     string
	Message  string
	Span     decree.Span
	Line     int
	Col      int
	Enforced bool
	Snippet  string
}

// FromDiagnostics converts one file's diagnostics into Findings, attaching
// the file path that produced them.
func FromDiagnostics(path string, diags decree.Diagnostics) []Finding {
	findings := make([]Finding, 0, len(diags))
	for _, d := range diags {
		findings = append(findings, Finding{
			Path:     path,
			Rule:     d.Rule,
			Message:  d.Message,
			Span:     d.Span,
			Enforced: d.Enforced,
		})
	}
	return findings
}

// Processor transforms a slice of findings.
// Implementations should be stateless where possible, using Context for
// shared state. Process must not modify the input slice; return a new
// slice if filtering.
type Processor interface {
	Name() string
	Process(findings []Finding, ctx *Context) []Finding
}

// Context provides shared state for processors.
type Context struct {
	// FileSources maps file paths to their raw source content, used by
	// SnippetAttachment for line/column resolution and source snippets.
	FileSources map[string][]byte

	sourceMaps map[string]*sourcemap.SourceMap
}

// NewContext creates a new processor context.
func NewContext(fileSources map[string][]byte) *Context {
	return &Context{
		FileSources: fileSources,
		sourceMaps:  make(map[string]*sourcemap.SourceMap),
	}
}

// GetSourceMap returns or creates a SourceMap for the given file. Returns
// nil if the file is not in FileSources.
func (ctx *Context) GetSourceMap(file string) *sourcemap.SourceMap {
	if sm, ok := ctx.sourceMaps[file]; ok {
		return sm
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		return nil
	}
	sm := sourcemap.New(source)
	ctx.sourceMaps[file] = sm
	return sm
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Default returns the standard pipeline: path normalization, dedup, sort,
// then snippet attachment.
func Default() *Chain {
	return NewChain(
		NewPathNormalization(),
		NewDeduplication(),
		NewSorting(),
		NewSnippetAttachment(),
	)
}

// Process runs all processors in sequence.
func (c *Chain) Process(findings []Finding, ctx *Context) []Finding {
	for _, p := range c.processors {
		findings = p.Process(findings, ctx)
	}
	return findings
}

// filterFindings is a helper for processors that filter findings.
func filterFindings(findings []Finding, keep func(f Finding) bool) []Finding {
	result := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if keep(f) {
			result = append(result, f)
		}
	}
	return result
}

// transformFindings is a helper for processors that modify findings.
func transformFindings(findings []Finding, transform func(f Finding) Finding) []Finding {
	result := make([]Finding, len(findings))
	for i, f := range findings {
		result[i] = transform(f)
	}
	return result
}
