package processor

import (
	"fmt"
	"path/filepath"
)

// Deduplication removes duplicate findings. Two findings are duplicates if
// they share the same (path, span, rule, message, enforced) tuple. This
// handles the case where a language decree rebrands a supreme hygiene
// diagnostic and an external linter covering the same rule reports it
// again.
type Deduplication struct{}

// NewDeduplication creates a new deduplication processor.
func NewDeduplication() *Deduplication {
	return &Deduplication{}
}

func (p *Deduplication) Name() string { return "deduplication" }

// Process keeps the first occurrence of each unique key.
func (p *Deduplication) Process(findings []Finding, _ *Context) []Finding {
	seen := make(map[string]bool, len(findings))
	return filterFindings(findings, func(f Finding) bool {
		key := fmt.Sprintf("%s\x00%d\x00%d\x00%s\x00%s\x00%t",
			filepath.ToSlash(f.Path), f.Span.Start, f.Span.End, f.Rule, f.Message, f.Enforced)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}
