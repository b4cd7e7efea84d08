package indentcheck

import "testing"

func TestCheck_MixedIndentationOnOneLine(t *testing.T) {
	diags := Check("python", "if x:\n \tcode()\n")
	found := false
	for _, d := range diags {
		if d.Rule == "python/mixed-indentation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected python/mixed-indentation, got %+v", diags)
	}
}

func TestCheck_InconsistentAcrossFile(t *testing.T) {
	diags := Check("python", "if a:\n\tx = 1\nif b:\n    y = 2\n")
	found := false
	for _, d := range diags {
		if d.Rule == "python/inconsistent-indentation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected python/inconsistent-indentation, got %+v", diags)
	}
}

func TestCheck_ConsistentSpacesOnly(t *testing.T) {
	diags := Check("python", "if a:\n    x = 1\nif b:\n    y = 2\n")
	if len(diags) != 0 {
		t.Fatalf("expected no violations, got %+v", diags)
	}
}
