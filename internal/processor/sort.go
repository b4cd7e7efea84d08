package processor

import "sort"

// Sorting ensures stable, deterministic output ordering.
// Order: file path, then span start, then rule. This ensures identical
// output across runs and platforms.
type Sorting struct{}

// NewSorting creates a new sorting processor.
func NewSorting() *Sorting {
	return &Sorting{}
}

func (p *Sorting) Name() string { return "sorting" }

// Process sorts findings in a stable order.
func (p *Sorting) Process(findings []Finding, _ *Context) []Finding {
	out := make([]Finding, len(findings))
	copy(out, findings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		if out[i].Span.Start != out[j].Span.Start {
			return out[i].Span.Start < out[j].Span.Start
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}
