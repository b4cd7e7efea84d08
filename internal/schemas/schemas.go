// Package schemas embeds the JSON Schema documents dictator uses to validate
// .dictate.toml and per-decree rule options, and to describe MCP tool
// input shapes.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
)

// RootConfigSchemaID identifies the schema for the whole .dictate.toml document.
const RootConfigSchemaID = "https://schemas.dictator.dev/root/dictate-config.schema.json"

var ruleSchemaIDs = map[string]string{
	"supreme/hygiene":        "https://schemas.dictator.dev/rules/supreme/hygiene.schema.json",
	"golang/import-order":    "https://schemas.dictator.dev/rules/golang/import_order.schema.json",
	"rust/min-edition":       "https://schemas.dictator.dev/rules/rust/min_edition.schema.json",
	"ruby/visibility-order":  "https://schemas.dictator.dev/rules/ruby/visibility_order.schema.json",
	"typescript/import-order": "https://schemas.dictator.dev/rules/typescript/import_order.schema.json",
	"python/max-lines":       "https://schemas.dictator.dev/rules/python/max_lines.schema.json",
	"frontmatter/required":   "https://schemas.dictator.dev/rules/frontmatter/required.schema.json",
}

var schemaFilesByID = map[string]string{
	RootConfigSchemaID: "root/dictate-config.schema.json",

	"https://schemas.dictator.dev/rules/supreme/hygiene.schema.json":          "rules/supreme/hygiene.schema.json",
	"https://schemas.dictator.dev/rules/golang/import_order.schema.json":      "rules/golang/import_order.schema.json",
	"https://schemas.dictator.dev/rules/rust/min_edition.schema.json":         "rules/rust/min_edition.schema.json",
	"https://schemas.dictator.dev/rules/ruby/visibility_order.schema.json":    "rules/ruby/visibility_order.schema.json",
	"https://schemas.dictator.dev/rules/typescript/import_order.schema.json":  "rules/typescript/import_order.schema.json",
	"https://schemas.dictator.dev/rules/python/max_lines.schema.json":         "rules/python/max_lines.schema.json",
	"https://schemas.dictator.dev/rules/frontmatter/required.schema.json":     "rules/frontmatter/required.schema.json",

	"https://schemas.dictator.dev/mcp/occupy.schema.json":          "mcp/occupy.schema.json",
	"https://schemas.dictator.dev/mcp/stalint.schema.json":         "mcp/stalint.schema.json",
	"https://schemas.dictator.dev/mcp/dictator.schema.json":        "mcp/dictator.schema.json",
	"https://schemas.dictator.dev/mcp/stalint_watch.schema.json":   "mcp/stalint_watch.schema.json",
	"https://schemas.dictator.dev/mcp/stalint_unwatch.schema.json": "mcp/stalint_unwatch.schema.json",
}

// toolSchemaIDs maps an MCP tool name to the schema ID describing its
// input shape.
var toolSchemaIDs = map[string]string{
	"occupy":           "https://schemas.dictator.dev/mcp/occupy.schema.json",
	"stalint":          "https://schemas.dictator.dev/mcp/stalint.schema.json",
	"dictator":         "https://schemas.dictator.dev/mcp/dictator.schema.json",
	"stalint_watch":    "https://schemas.dictator.dev/mcp/stalint_watch.schema.json",
	"stalint_unwatch":  "https://schemas.dictator.dev/mcp/stalint_unwatch.schema.json",
}

//go:embed root/*.json rules/*/*.json mcp/*.json
var schemasFS embed.FS

// ToolSchemaID returns the schema ID registered for an MCP tool name, if any.
func ToolSchemaID(toolName string) (string, bool) {
	schemaID, ok := toolSchemaIDs[toolName]
	return schemaID, ok
}

// ToolSchemaIDs returns a copy of the full tool-name to schema-ID mapping.
func ToolSchemaIDs() map[string]string {
	out := make(map[string]string, len(toolSchemaIDs))
	maps.Copy(out, toolSchemaIDs)
	return out
}

// RuleSchemaID returns the schema ID registered for a decree rule code
// (e.g. "golang/import-order"), if the rule is configurable.
func RuleSchemaID(ruleCode string) (string, bool) {
	schemaID, ok := ruleSchemaIDs[ruleCode]
	return schemaID, ok
}

// RuleSchemaIDs returns a copy of the full rule-code to schema-ID mapping.
func RuleSchemaIDs() map[string]string {
	out := make(map[string]string, len(ruleSchemaIDs))
	maps.Copy(out, ruleSchemaIDs)
	return out
}

// RuleNamespaces returns the sorted, deduplicated set of decree namespaces
// (the part of a rule code before the "/") that have at least one schema.
func RuleNamespaces() []string {
	seen := make(map[string]struct{})
	for ruleCode := range ruleSchemaIDs {
		ns, _, _ := strings.Cut(ruleCode, "/")
		seen[ns] = struct{}{}
	}
	namespaces := make([]string, 0, len(seen))
	for ns := range seen {
		namespaces = append(namespaces, ns)
	}
	slices.Sort(namespaces)
	return namespaces
}

// SchemaFileByID maps a schema ID to its embedded file path.
func SchemaFileByID(schemaID string) (string, bool) {
	path, ok := schemaFilesByID[schemaID]
	return path, ok
}

// AllSchemaIDs returns every known schema ID, root config included.
func AllSchemaIDs() []string {
	ids := make([]string, 0, len(schemaFilesByID))
	for schemaID := range schemaFilesByID {
		ids = append(ids, schemaID)
	}
	return ids
}

// ReadSchemaByID reads the raw JSON Schema document for a schema ID.
func ReadSchemaByID(schemaID string) ([]byte, error) {
	path, ok := SchemaFileByID(schemaID)
	if !ok {
		return nil, fmt.Errorf("unknown schema ID %q", schemaID)
	}
	return fs.ReadFile(schemasFS, path)
}
