// Package frontmatter implements the decree.frontmatter decree: YAML
// frontmatter validation for Markdown-like documents (`--- ... ---` header
// block). Unlike the language decrees, it is additive: it never shadows,
// and is never shadowed by, supreme.
package frontmatter

import (
	"strings"

	"github.com/seuros/dictator/internal/decree"
	"gopkg.in/yaml.v3"
)

// Name is the decree's registry name.
const Name = "decree.frontmatter"

// Decree validates the YAML frontmatter block of Markdown documents.
type Decree struct {
	Order    []string
	Required []string
}

// New builds a frontmatter decree. Order, if non-empty, is the required
// field ordering; Required lists fields that must be present.
func New(order, required []string) *Decree {
	return &Decree{Order: order, Required: required}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "YAML frontmatter validation",
		Extensions:    []string{"md", "mdx"},
		Capabilities:  []decree.Capability{decree.CapabilityLint, decree.CapabilityRuntimeConfig},
	}
}

func (d *Decree) Lint(path string, source string) decree.Diagnostics {
	body, start, end, ok := extractBlock(source)
	if !ok {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(body), &node); err != nil {
		return decree.Diagnostics{{
			Rule:    Name + "/invalid-yaml",
			Message: "frontmatter is not valid YAML: " + err.Error(),
			Span:    decree.NewSpan(start, end),
		}}
	}
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return decree.Diagnostics{{
			Rule:    Name + "/invalid-yaml",
			Message: "frontmatter must be a YAML mapping",
			Span:    decree.NewSpan(start, end),
		}}
	}

	mapping := node.Content[0]
	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}

	var out decree.Diagnostics
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	for _, req := range d.Required {
		if !present[req] {
			out = append(out, decree.Diagnostic{
				Rule:    Name + "/missing-required-field",
				Message: "missing required frontmatter field: " + req,
				Span:    decree.NewSpan(start, end),
			})
		}
	}

	if len(d.Order) > 0 {
		out = append(out, checkFieldOrder(keys, d.Order, start, end)...)
	}

	return out
}

func checkFieldOrder(keys, order []string, start, end int) decree.Diagnostics {
	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	maxSeen := -1
	for _, k := range keys {
		r, ok := rank[k]
		if !ok {
			continue
		}
		if r < maxSeen {
			return decree.Diagnostics{{
				Rule:    Name + "/field-order",
				Message: "frontmatter field " + k + " is out of the configured order",
				Span:    decree.NewSpan(start, end),
			}}
		}
		if r > maxSeen {
			maxSeen = r
		}
	}
	return nil
}

// extractBlock finds a leading "---\n...\n---" frontmatter block and
// returns its YAML body and byte span (of the whole block, delimiters
// included).
func extractBlock(source string) (body string, start, end int, ok bool) {
	if !strings.HasPrefix(source, "---\n") && !strings.HasPrefix(source, "---\r\n") {
		return "", 0, 0, false
	}
	firstNL := strings.IndexByte(source, '\n')
	rest := source[firstNL+1:]
	closeIdx := strings.Index(rest, "\n---")
	if closeIdx == -1 {
		return "", 0, 0, false
	}
	body = rest[:closeIdx]
	end = firstNL + 1 + closeIdx + len("\n---")
	return body, 0, end, true
}
