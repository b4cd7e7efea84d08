package testutil

import (
	"testing"

	"github.com/seuros/dictator/internal/decree"
)

type fakeDecree struct {
	diags decree.Diagnostics
}

func (f fakeDecree) Name() string { return "fake" }

func (f fakeDecree) Metadata() decree.Metadata {
	return decree.Metadata{ABIVersion: decree.ABIVersion}
}

func (f fakeDecree) Lint(path string, source string) decree.Diagnostics {
	return f.diags
}

func TestRunDecreeTests_ChecksCountRulesAndMessages(t *testing.T) {
	d := fakeDecree{diags: decree.Diagnostics{
		{Rule: "fake/one", Message: "first issue", Span: decree.NewSpan(0, 1)},
		{Rule: "fake/two", Message: "second issue", Span: decree.NewSpan(2, 3)},
	}}

	RunDecreeTests(t, d, []DecreeTestCase{
		{
			Name:         "two diagnostics",
			Source:       "irrelevant",
			WantCount:    2,
			WantRules:    []string{"fake/one", "fake/two"},
			WantMessages: []string{"first", "second"},
		},
	})
}

func TestAssertNoDiagnostics(t *testing.T) {
	AssertNoDiagnostics(t, nil)
	AssertNoDiagnostics(t, decree.Diagnostics{})
}

func TestAssertDiagnosticCount(t *testing.T) {
	diags := decree.Diagnostics{{Rule: "fake/one", Message: "m", Span: decree.NewSpan(0, 1)}}
	AssertDiagnosticCount(t, diags, 1)
	AssertDiagnosticCount(t, nil, 0)
}

func TestAssertDiagnosticAt(t *testing.T) {
	diags := decree.Diagnostics{{Rule: "fake/one", Message: "m", Span: decree.NewSpan(5, 6)}}
	AssertDiagnosticAt(t, diags, 5, "fake/one")
}

func TestCountLinesAndBlankLines(t *testing.T) {
	content := "a\n\nb\n  \nc"
	if got := CountLines(content); got != 5 {
		t.Errorf("CountLines = %d, want 5", got)
	}
	if got := CountBlankLines(content); got != 2 {
		t.Errorf("CountBlankLines = %d, want 2", got)
	}
}
