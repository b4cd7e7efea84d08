package typescript

import (
	"testing"

	"github.com/seuros/dictator/internal/config"
)

func TestLint_ImportOrderViolation(t *testing.T) {
	d := New(config.HygieneSettings{}, 0)
	source := "import { x } from './local'\nimport fs from 'fs'\n"
	diags := d.Lint("a.ts", source)

	found := false
	for _, diag := range diags {
		if diag.Rule == "typescript/import-order" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected typescript/import-order, got %+v", diags)
	}
}

func TestLint_ImportOrderCorrect(t *testing.T) {
	d := New(config.HygieneSettings{}, 0)
	source := "import fs from 'fs'\nimport _ from 'lodash'\nimport { x } from './local'\n"
	diags := d.Lint("a.ts", source)

	for _, diag := range diags {
		if diag.Rule == "typescript/import-order" {
			t.Fatalf("did not expect import-order violation, got %+v", diags)
		}
	}
}

func TestMetadata_ExtensionsCoverCommonVariants(t *testing.T) {
	d := New(config.HygieneSettings{}, 0)
	exts := d.Metadata().Extensions
	want := map[string]bool{"ts": true, "tsx": true, "js": true, "jsx": true, "mjs": true, "cjs": true}
	for _, e := range exts {
		if !want[e] {
			t.Errorf("unexpected extension %q", e)
		}
		delete(want, e)
	}
	if len(want) != 0 {
		t.Errorf("missing extensions: %v", want)
	}
}
