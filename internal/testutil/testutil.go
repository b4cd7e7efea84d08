// Package testutil provides shared test helpers for decree packages.
package testutil

import (
	"strings"
	"testing"

	"github.com/seuros/dictator/internal/decree"
)

// DecreeTestCase defines a table-driven test case for a single decree.
type DecreeTestCase struct {
	// Name is the test case name.
	Name string

	// Path is the file path passed to Lint (controls extension-dependent behavior).
	Path string

	// Source is the file content to lint.
	Source string

	// WantCount is the expected number of diagnostics. Use -1 to skip the count check.
	WantCount int

	// WantRules is the expected rule codes in emission order (for detailed checks).
	WantRules []string

	// WantMessages are substrings expected in diagnostic messages, by index.
	WantMessages []string
}

// RunDecreeTests runs a table of test cases against a decree.
func RunDecreeTests(t *testing.T, d decree.Decree, cases []DecreeTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			path := tc.Path
			if path == "" {
				path = "testfile"
			}
			diags := d.Lint(path, tc.Source)

			if tc.WantCount >= 0 && len(diags) != tc.WantCount {
				t.Errorf("got %d diagnostics, want %d", len(diags), tc.WantCount)
				for i, diag := range diags {
					t.Logf("  [%d] %s: %s", i, diag.Rule, diag.Message)
				}
			}

			if len(tc.WantRules) > 0 {
				if len(diags) != len(tc.WantRules) {
					t.Errorf("got %d diagnostics, want %d", len(diags), len(tc.WantRules))
				} else {
					for i, rule := range tc.WantRules {
						if diags[i].Rule != rule {
							t.Errorf("diagnostics[%d].Rule = %q, want %q", i, diags[i].Rule, rule)
						}
					}
				}
			}

			for i, msg := range tc.WantMessages {
				if i >= len(diags) {
					t.Errorf("expected diagnostics[%d] with message containing %q, but only got %d diagnostics", i, msg, len(diags))
					continue
				}
				if !strings.Contains(diags[i].Message, msg) {
					t.Errorf("diagnostics[%d].Message = %q, want substring %q", i, diags[i].Message, msg)
				}
			}
		})
	}
}

// AssertNoDiagnostics fails the test if there are any diagnostics.
func AssertNoDiagnostics(tb testing.TB, diags decree.Diagnostics) {
	tb.Helper()
	if len(diags) > 0 {
		tb.Errorf("expected no diagnostics, got %d:", len(diags))
		for _, d := range diags {
			tb.Logf("  - %s at [%d,%d): %s", d.Rule, d.Span.Start, d.Span.End, d.Message)
		}
	}
}

// AssertDiagnosticCount fails if the diagnostic count doesn't match.
func AssertDiagnosticCount(tb testing.TB, diags decree.Diagnostics, want int) {
	tb.Helper()
	if len(diags) != want {
		tb.Errorf("got %d diagnostics, want %d", len(diags), want)
		for _, d := range diags {
			tb.Logf("  - %s at [%d,%d): %s", d.Rule, d.Span.Start, d.Span.End, d.Message)
		}
	}
}

// AssertDiagnosticAt fails if there's no diagnostic with the given rule
// whose span starts at the given byte offset.
func AssertDiagnosticAt(tb testing.TB, diags decree.Diagnostics, start int, rule string) {
	tb.Helper()
	for _, d := range diags {
		if d.Span.Start == start && d.Rule == rule {
			return
		}
	}
	tb.Errorf("expected diagnostic %q starting at byte %d, not found", rule, start)
	tb.Logf("diagnostics:")
	for _, d := range diags {
		tb.Logf("  - %s at [%d,%d): %s", d.Rule, d.Span.Start, d.Span.End, d.Message)
	}
}

// CountLines counts total lines in the content.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}

// CountBlankLines counts blank/whitespace-only lines.
func CountBlankLines(content string) int {
	count := 0
	for line := range strings.SplitSeq(content, "\n") {
		if strings.TrimSpace(line) == "" {
			count++
		}
	}
	return count
}
