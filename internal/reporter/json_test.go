package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/processor"
)

func TestJSONReporter_GroupsByFileAndSortsWithinFile(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	findings := []processor.Finding{
		{Path: "b.rb", Rule: "ruby/x", Span: decree.NewSpan(0, 1)},
		{Path: "a.rb", Rule: "ruby/z", Span: decree.NewSpan(5, 6)},
		{Path: "a.rb", Rule: "ruby/a", Span: decree.NewSpan(0, 1)},
	}
	if err := r.Report(findings, 2); err != nil {
		t.Fatal(err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(out.Files))
	}
	if out.Files[0].File != "a.rb" {
		t.Errorf("expected a.rb first, got %q", out.Files[0].File)
	}
	if len(out.Files[0].Findings) != 2 {
		t.Fatalf("expected 2 findings for a.rb, got %d", len(out.Files[0].Findings))
	}
	if out.Files[0].Findings[0].Rule != "ruby/a" {
		t.Errorf("expected ruby/a first within a.rb, got %q", out.Files[0].Findings[0].Rule)
	}
	if out.Summary.Total != 3 || out.Summary.Files != 2 {
		t.Errorf("unexpected summary: %+v", out.Summary)
	}
}

func TestJSONReporter_NormalizesBackslashPaths(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	findings := []processor.Finding{{Path: `sub\dir\app.rb`, Rule: "ruby/x", Span: decree.NewSpan(0, 1)}}
	if err := r.Report(findings, 1); err != nil {
		t.Fatal(err)
	}
	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Files[0].File != "sub/dir/app.rb" {
		t.Errorf("File = %q", out.Files[0].File)
	}
}

func TestJSONReporter_EnforcedVsPendingSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	findings := []processor.Finding{
		{Path: "a.rb", Rule: "ruby/x", Span: decree.NewSpan(0, 1), Enforced: true},
		{Path: "a.rb", Rule: "ruby/y", Span: decree.NewSpan(1, 2), Enforced: false},
	}
	if err := r.Report(findings, 1); err != nil {
		t.Fatal(err)
	}
	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Summary.Enforced != 1 || out.Summary.Pending != 1 {
		t.Errorf("unexpected summary: %+v", out.Summary)
	}
}
