package processor

import "github.com/seuros/dictator/internal/sourcemap"

// SnippetAttachment resolves each finding's byte span into a 1-based
// line/column position and its containing source line, enabling
// reporters to display context without re-parsing files.
type SnippetAttachment struct{}

// NewSnippetAttachment creates a new snippet attachment processor.
func NewSnippetAttachment() *SnippetAttachment {
	return &SnippetAttachment{}
}

func (p *SnippetAttachment) Name() string { return "snippet-attachment" }

// Process populates Line, Col, and Snippet for any finding whose file is
// present in the context's FileSources. Findings for unknown files pass
// through unchanged.
func (p *SnippetAttachment) Process(findings []Finding, ctx *Context) []Finding {
	return transformFindings(findings, func(f Finding) Finding {
		if f.Snippet != "" {
			return f
		}
		source, ok := ctx.FileSources[f.Path]
		if !ok {
			return f
		}

		line, col := sourcemap.ByteToLineCol(source, f.Span.Start)
		f.Line, f.Col = line, col

		sm := ctx.GetSourceMap(f.Path)
		if sm != nil {
			f.Snippet = sm.Line(line - 1)
		}
		return f
	})
}
