package schemas_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/seuros/dictator/internal/schemas"
)

func TestAllSchemaIDsAreReadable(t *testing.T) {
	t.Parallel()

	ids := schemas.AllSchemaIDs()
	if len(ids) == 0 {
		t.Fatal("AllSchemaIDs() returned no schema IDs")
	}

	for _, schemaID := range ids {
		data, err := schemas.ReadSchemaByID(schemaID)
		if err != nil {
			t.Fatalf("ReadSchemaByID(%q) error = %v", schemaID, err)
		}
		if len(data) == 0 {
			t.Fatalf("ReadSchemaByID(%q) returned empty data", schemaID)
		}
	}
}

func TestRuleSchemaIDsAreAllResolvable(t *testing.T) {
	t.Parallel()

	for ruleCode, schemaID := range schemas.RuleSchemaIDs() {
		if _, ok := schemas.SchemaFileByID(schemaID); !ok {
			t.Errorf("rule %q maps to schema ID %q with no embedded file", ruleCode, schemaID)
		}
	}
}

func TestRuleNamespacesMatchesRuleSchemaIDs(t *testing.T) {
	t.Parallel()

	namespaces := schemas.RuleNamespaces()
	if len(namespaces) == 0 {
		t.Fatal("RuleNamespaces() returned no namespaces")
	}

	for ruleCode := range schemas.RuleSchemaIDs() {
		ns, _, _ := strings.Cut(ruleCode, "/")
		if !slices.Contains(namespaces, ns) {
			t.Errorf("namespace %q (from rule %q) not in RuleNamespaces()", ns, ruleCode)
		}
	}

	if !slices.IsSorted(namespaces) {
		t.Errorf("RuleNamespaces() not sorted: %v", namespaces)
	}
}
