// Package econfig overlays .editorconfig conventions onto dictator's
// hygiene settings, for bootstrapping a fresh .dictate.toml from a
// repository's existing editor conventions (`occupy --from-editorconfig`).
package econfig

import (
	"strconv"

	editorconfig "github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/seuros/dictator/internal/config"
)

// Overlay resolves the .editorconfig definition that would apply to a file
// named probeFile in dir, and fills in any of base's hygiene fields that
// are still nil/empty from the matching raw properties. Fields base
// already sets are left untouched; a missing or unreadable .editorconfig
// is a no-op.
func Overlay(base config.DecreeSettings, dir, probeFile string) config.DecreeSettings {
	def, err := editorconfig.GetDefinitionForFilename(dir + "/" + probeFile)
	if err != nil || def == nil {
		return base
	}
	out := base

	if out.TrailingWhitespace == nil {
		if v, ok := def.Raw["trim_trailing_whitespace"]; ok {
			out.TrailingWhitespace = boolToEnum(v, "deny", "allow")
		}
	}
	if out.TabsVsSpaces == nil {
		if v, ok := def.Raw["indent_style"]; ok {
			if mapped, ok := map[string]string{"space": "spaces", "tab": "tabs"}[v]; ok {
				out.TabsVsSpaces = &mapped
			}
		}
	}
	if out.TabWidth == nil {
		if v, ok := def.Raw["indent_size"]; ok {
			if n, convErr := strconv.Atoi(v); convErr == nil {
				out.TabWidth = &n
			}
		}
	}
	if out.FinalNewline == nil {
		if v, ok := def.Raw["insert_final_newline"]; ok {
			out.FinalNewline = boolToEnum(v, "require", "allow")
		}
	}
	if out.LineEndings == nil {
		if v, ok := def.Raw["end_of_line"]; ok {
			if mapped, ok := map[string]string{"lf": "lf", "crlf": "crlf", "cr": "cr"}[v]; ok {
				out.LineEndings = &mapped
			}
		}
	}
	if out.MaxLineLength == nil {
		if v, ok := def.Raw["max_line_length"]; ok {
			if n, convErr := strconv.Atoi(v); convErr == nil {
				out.MaxLineLength = &n
			}
		}
	}
	return out
}

func boolToEnum(v, whenTrue, whenFalse string) *string {
	var out string
	if v == "true" {
		out = whenTrue
	} else {
		out = whenFalse
	}
	return &out
}
