package golang

import (
	"strings"
	"testing"

	"github.com/seuros/dictator/internal/config"
)

func TestMetadata_MatchesSpec(t *testing.T) {
	d := New(config.HygieneSettings{}, 0)
	meta := d.Metadata()
	if meta.IsUniversal() {
		t.Fatal("golang decree must not be universal")
	}
	if len(meta.Extensions) != 1 || meta.Extensions[0] != "go" {
		t.Errorf("Extensions = %v, want [go]", meta.Extensions)
	}
	if len(meta.SkipFilenames) == 0 {
		t.Error("expected go.sum in SkipFilenames")
	}
}

func TestLint_RebrandsHygieneUnderGolangPrefix(t *testing.T) {
	d := New(config.HygieneSettings{FinalNewline: "require"}, 0)
	diags := d.Lint("main.go", "package main")
	for _, diag := range diags {
		if !strings.HasPrefix(diag.Rule, "golang/") {
			t.Errorf("rule %q does not have golang/ prefix", diag.Rule)
		}
	}
}

func TestCheckSpacesInsteadOfTabs_SkipsBacktickRawString(t *testing.T) {
	source := "x := `\n    indented inside raw string\n`\n    real violation\n"
	diags := checkSpacesInsteadOfTabs(source)
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 violation (outside raw string), got %d: %+v", len(diags), diags)
	}
}

func TestCheckFileTooLong_ExcludesBlankAndCommentLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("// a comment\n\ncode_line\n")
	}
	diags := checkFileTooLong(b.String(), 15)
	if len(diags) != 0 {
		t.Fatalf("expected no violation (10 counted code lines <= 15 limit), got %+v", diags)
	}
}

func TestCheckFileTooLong_ReportsWhenExceeded(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("code_line\n")
	}
	diags := checkFileTooLong(b.String(), 5)
	if len(diags) != 1 {
		t.Fatalf("expected one file-too-long diagnostic, got %+v", diags)
	}
}
