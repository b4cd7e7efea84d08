package processor

import (
	"testing"

	"github.com/seuros/dictator/internal/decree"
)

func TestDeduplication_DropsExactDuplicateTuple(t *testing.T) {
	findings := []Finding{
		{Path: "a.rb", Rule: "ruby/comment-space", Message: "m", Span: decree.NewSpan(0, 1), Enforced: false},
		{Path: "a.rb", Rule: "ruby/comment-space", Message: "m", Span: decree.NewSpan(0, 1), Enforced: false},
		{Path: "a.rb", Rule: "ruby/comment-space", Message: "m", Span: decree.NewSpan(5, 6), Enforced: false},
	}
	out := (&Deduplication{}).Process(findings, NewContext(nil))
	if len(out) != 2 {
		t.Fatalf("expected 2 findings after dedup, got %d", len(out))
	}
}

func TestSorting_OrdersByPathThenSpanThenRule(t *testing.T) {
	findings := []Finding{
		{Path: "b.rb", Rule: "ruby/x", Span: decree.NewSpan(0, 1)},
		{Path: "a.rb", Rule: "ruby/z", Span: decree.NewSpan(5, 6)},
		{Path: "a.rb", Rule: "ruby/a", Span: decree.NewSpan(0, 1)},
	}
	out := (&Sorting{}).Process(findings, NewContext(nil))
	if out[0].Path != "a.rb" || out[0].Rule != "ruby/a" {
		t.Errorf("unexpected first finding: %+v", out[0])
	}
	if out[1].Path != "a.rb" || out[1].Rule != "ruby/z" {
		t.Errorf("unexpected second finding: %+v", out[1])
	}
	if out[2].Path != "b.rb" {
		t.Errorf("unexpected third finding: %+v", out[2])
	}
}

func TestPathNormalization_ConvertsBackslashes(t *testing.T) {
	findings := []Finding{{Path: `sub\dir\app.rb`}}
	out := (&PathNormalization{}).Process(findings, NewContext(nil))
	if out[0].Path != "sub/dir/app.rb" {
		t.Errorf("Path = %q", out[0].Path)
	}
}

func TestSnippetAttachment_ResolvesLineColAndText(t *testing.T) {
	source := []byte("line one\nline two\nline three\n")
	findings := []Finding{{Path: "f.rb", Span: decree.NewSpan(9, 13)}}
	ctx := NewContext(map[string][]byte{"f.rb": source})
	out := (&SnippetAttachment{}).Process(findings, ctx)
	if out[0].Line != 2 || out[0].Col != 1 {
		t.Errorf("Line/Col = %d/%d, want 2/1", out[0].Line, out[0].Col)
	}
	if out[0].Snippet != "line two" {
		t.Errorf("Snippet = %q", out[0].Snippet)
	}
}

func TestSnippetAttachment_UnknownFilePassesThrough(t *testing.T) {
	findings := []Finding{{Path: "missing.rb", Span: decree.NewSpan(0, 1)}}
	out := (&SnippetAttachment{}).Process(findings, NewContext(nil))
	if out[0].Snippet != "" {
		t.Errorf("expected empty snippet for unknown file")
	}
}

func TestFromDiagnostics_AttachesPath(t *testing.T) {
	diags := decree.Diagnostics{{Rule: "ruby/x", Message: "m", Span: decree.NewSpan(0, 1)}}
	findings := FromDiagnostics("a.rb", diags)
	if len(findings) != 1 || findings[0].Path != "a.rb" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestDefault_RunsFullPipeline(t *testing.T) {
	source := []byte("puts 1\n")
	diags := decree.Diagnostics{
		{Rule: "ruby/x", Message: "m", Span: decree.NewSpan(0, 1)},
		{Rule: "ruby/x", Message: "m", Span: decree.NewSpan(0, 1)},
	}
	findings := FromDiagnostics("a.rb", diags)
	ctx := NewContext(map[string][]byte{"a.rb": source})
	out := Default().Process(findings, ctx)
	if len(out) != 1 {
		t.Fatalf("expected dedup to collapse to 1 finding, got %d", len(out))
	}
	if out[0].Line != 1 {
		t.Errorf("expected snippet attachment to run, got Line=%d", out[0].Line)
	}
}
