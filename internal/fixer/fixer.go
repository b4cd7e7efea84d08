// Package fixer implements dictator's idempotent whitespace auto-fixer
// (§4.7): CRLF normalization, trailing-whitespace stripping, and
// single-trailing-newline enforcement.
package fixer

import "strings"

// Fix applies the three-step transform to source and returns the result.
// Fix(Fix(x)) == Fix(x) for any UTF-8 input.
func Fix(source []byte) []byte {
	text := strings.ReplaceAll(string(source), "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	text = strings.TrimRight(text, "\n")
	if text != "" {
		text += "\n"
	}

	return []byte(text)
}
