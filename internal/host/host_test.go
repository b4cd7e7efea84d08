package host

import (
	"sort"
	"testing"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/regime"
)

func decreeNames(r *regime.Regime) []string {
	var names []string
	for _, d := range r.Decrees() {
		names = append(names, d.Name())
	}
	sort.Strings(names)
	return names
}

func TestBuildRegime_DefaultConfigLoadsAllBuiltins(t *testing.T) {
	r, errs := BuildRegime(config.Default())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []string{"decree.frontmatter", "golang", "python", "ruby", "rust", "supreme", "typescript"}
	got := decreeNames(r)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBuildRegime_ShadowingWiresCorrectly(t *testing.T) {
	maxLines := 100
	cfg := &config.DictateConfig{Decree: map[string]config.DecreeSettings{
		"supreme": {},
		"ruby":    {MaxLines: &maxLines},
	}}
	r, errs := BuildRegime(cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	diags := r.EnforceOne(regime.Source{Path: "app.rb", Text: "puts 1"})
	for _, d := range diags {
		if len(d.Rule) >= 8 && d.Rule[:8] == "supreme/" {
			t.Fatalf("expected supreme to be shadowed for .rb files, got %q", d.Rule)
		}
	}
}

func TestBuildRegime_DisabledDecreeIsSkipped(t *testing.T) {
	disabled := false
	cfg := &config.DictateConfig{Decree: map[string]config.DecreeSettings{
		"supreme": {Enabled: &disabled},
	}}
	r, errs := BuildRegime(cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, name := range decreeNames(r) {
		if name == "supreme" {
			t.Fatalf("expected supreme to be skipped, got %v", decreeNames(r))
		}
	}
}

func TestBuildRegime_PathConfiguredButMissingIsNonFatal(t *testing.T) {
	path := "/nonexistent/decree.so"
	cfg := &config.DictateConfig{Decree: map[string]config.DecreeSettings{
		"ruby":   {Path: &path},
		"custom": {Path: &path},
	}}
	r, errs := BuildRegime(cfg)
	if len(errs) != 2 {
		t.Fatalf("expected exactly 2 load errors (ruby, custom), got %v", errs)
	}
	for _, name := range decreeNames(r) {
		if name == "ruby" || name == "custom" {
			t.Fatalf("expected ruby and custom to be absent after load failure, got %v", decreeNames(r))
		}
	}
}

func TestBuildRegimeForFiles_ScopesToDetectedLanguages(t *testing.T) {
	r, errs := BuildRegimeForFiles(config.Default(), []string{"main.go", "README.md"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []string{"decree.frontmatter", "golang", "supreme"}
	got := decreeNames(r)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBuildRegimeForFiles_NoMatchingLanguageLeavesOnlySupreme(t *testing.T) {
	r, errs := BuildRegimeForFiles(config.Default(), []string{"notes.txt"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got := decreeNames(r)
	if len(got) != 1 || got[0] != "supreme" {
		t.Fatalf("expected only supreme, got %v", got)
	}
}

func TestDetectFileTypes(t *testing.T) {
	types := DetectFileTypes([]string{"a.rb", "b.ts", "c.go", "d.rs", "e.py", "f.mdx", "g.txt"})
	if !types.Ruby || !types.TypeScript || !types.Golang || !types.Rust || !types.Python || !types.Configs {
		t.Fatalf("expected all types detected, got %+v", types)
	}
}
