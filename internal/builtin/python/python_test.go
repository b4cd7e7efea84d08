package python

import (
	"testing"

	"github.com/seuros/dictator/internal/config"
)

func TestLint_ImportOrderViolation(t *testing.T) {
	d := New(config.HygieneSettings{}, 0)
	source := "from . import helpers\nimport os\n"
	diags := d.Lint("a.py", source)

	found := false
	for _, diag := range diags {
		if diag.Rule == "python/import-order" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected python/import-order, got %+v", diags)
	}
}

func TestLint_ImportOrderCorrect(t *testing.T) {
	d := New(config.HygieneSettings{}, 0)
	source := "import os\nimport requests\nfrom . import helpers\n"
	diags := d.Lint("a.py", source)

	for _, diag := range diags {
		if diag.Rule == "python/import-order" {
			t.Fatalf("did not expect import-order violation, got %+v", diags)
		}
	}
}

func TestCheckFileTooLong_ExcludesCommentsAndBlanks(t *testing.T) {
	diags := checkFileTooLong("# comment\n\ncode\ncode\n", 1)
	if len(diags) != 1 {
		t.Fatalf("expected 1 violation, got %+v", diags)
	}
}
