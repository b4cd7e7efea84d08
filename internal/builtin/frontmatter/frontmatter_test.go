package frontmatter

import "testing"

func TestLint_NoFrontmatter(t *testing.T) {
	d := New(nil, nil)
	diags := d.Lint("a.md", "# Title\n\nbody\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics without a frontmatter block, got %+v", diags)
	}
}

func TestLint_InvalidYAML(t *testing.T) {
	d := New(nil, nil)
	source := "---\nkey: [unterminated\n---\nbody\n"
	diags := d.Lint("a.md", source)
	found := false
	for _, diag := range diags {
		if diag.Rule == "decree.frontmatter/invalid-yaml" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected decree.frontmatter/invalid-yaml, got %+v", diags)
	}
}

func TestLint_MissingRequiredField(t *testing.T) {
	d := New(nil, []string{"title", "date"})
	source := "---\ntitle: Hello\n---\nbody\n"
	diags := d.Lint("a.md", source)
	found := false
	for _, diag := range diags {
		if diag.Rule == "decree.frontmatter/missing-required-field" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing-required-field for date, got %+v", diags)
	}
}

func TestLint_FieldOrderViolation(t *testing.T) {
	d := New([]string{"title", "date", "tags"}, nil)
	source := "---\ndate: 2026-01-01\ntitle: Hello\n---\nbody\n"
	diags := d.Lint("a.md", source)
	found := false
	for _, diag := range diags {
		if diag.Rule == "decree.frontmatter/field-order" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected field-order violation, got %+v", diags)
	}
}

func TestLint_ValidFrontmatter(t *testing.T) {
	d := New([]string{"title", "date"}, []string{"title"})
	source := "---\ntitle: Hello\ndate: 2026-01-01\n---\nbody\n"
	diags := d.Lint("a.md", source)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}
