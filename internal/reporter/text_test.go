package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/processor"
)

func plainOptions() TextOptions {
	no := false
	return TextOptions{Color: &no, SyntaxHighlight: false, ShowSource: true}
}

func TestPrint_EmitsRuleAndMessage(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions())
	findings := []processor.Finding{{Path: "a.rb", Rule: "ruby/comment-space", Message: "missing space", Span: decree.NewSpan(0, 1)}}
	if err := r.Print(&buf, findings, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "ruby/comment-space") || !strings.Contains(out, "missing space") {
		t.Errorf("output missing rule/message: %q", out)
	}
}

func TestPrint_EnforcedFindingsMarkedFixed(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions())
	findings := []processor.Finding{{Path: "a.rb", Rule: "supreme/trailing-whitespace", Message: "m", Span: decree.NewSpan(0, 1), Enforced: true}}
	if err := r.Print(&buf, findings, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "FIXED:") {
		t.Errorf("expected FIXED marker for enforced finding, got %q", buf.String())
	}
}

func TestPrint_UnenforcedFindingsMarkedWarn(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions())
	findings := []processor.Finding{{Path: "a.rb", Rule: "ruby/file-too-long", Message: "m", Span: decree.NewSpan(0, 1), Enforced: false}}
	if err := r.Print(&buf, findings, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "WARN:") {
		t.Errorf("expected WARN marker, got %q", buf.String())
	}
}

func TestPrint_SortsByPathThenLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions())
	source := []byte("a\nb\nc\n")
	findings := []processor.Finding{
		{Path: "b.rb", Rule: "x/1", Message: "m1", Span: decree.NewSpan(0, 1), Line: 1},
		{Path: "a.rb", Rule: "x/2", Message: "m2", Span: decree.NewSpan(0, 1), Line: 1},
	}
	if err := r.Print(&buf, findings, map[string][]byte{"a.rb": source, "b.rb": source}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "m2") > strings.Index(out, "m1") {
		t.Errorf("expected a.rb's finding before b.rb's: %q", out)
	}
}

func TestPrintSource_ShowsContextAroundLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions())
	source := []byte("one\ntwo\nthree\nfour\nfive\n")
	findings := []processor.Finding{{Path: "a.rb", Rule: "x/1", Message: "m", Span: decree.NewSpan(0, 1), Line: 3}}
	if err := r.Print(&buf, findings, map[string][]byte{"a.rb": source}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "three") {
		t.Errorf("expected the flagged line in output: %q", out)
	}
	if !strings.Contains(out, ">>>") {
		t.Errorf("expected a marker on the flagged line: %q", out)
	}
}
