package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/processor"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatText, "text": FormatText, "json": FormatJSON}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestNew_TextProducesOutput(t *testing.T) {
	var buf bytes.Buffer
	noColor := false
	r, err := New(Options{Format: FormatText, Writer: &buf, Color: &noColor})
	if err != nil {
		t.Fatal(err)
	}
	findings := []processor.Finding{{Path: "a.rb", Rule: "ruby/x", Message: "m", Span: decree.NewSpan(0, 1)}}
	if err := r.Report(findings, nil, 1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ruby/x") {
		t.Errorf("expected rule in output, got %q", buf.String())
	}
}

func TestNew_JSONProducesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(Options{Format: FormatJSON, Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	findings := []processor.Finding{{Path: "a.rb", Rule: "ruby/x", Message: "m", Span: decree.NewSpan(0, 1)}}
	if err := r.Report(findings, nil, 1); err != nil {
		t.Fatal(err)
	}
	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if out.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1", out.Summary.Total)
	}
}
