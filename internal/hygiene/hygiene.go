// Package hygiene implements the universal whitespace/newline checks shared
// by the supreme decree and every language decree. A language decree calls
// Check with its own rule-id prefix so that, when it shadows supreme for a
// file, the resulting diagnostics are already attributed to the language
// instead of to "supreme/...".
package hygiene

import (
	"strings"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
)

// Check runs every universal hygiene rule over source and returns the
// diagnostics, each rule id prefixed with prefix (e.g. "supreme" or "ruby").
func Check(prefix string, source string, s config.HygieneSettings) decree.Diagnostics {
	var out decree.Diagnostics

	hasCR := strings.Contains(source, "\r\n")
	hasBareLF := false
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	if strings.Contains(source, "\n") && hasCR {
		// A mix of CRLF and bare LF in the same file.
		hasBareLF = strings.Contains(strings.ReplaceAll(source, "\r\n", ""), "\n")
	}
	if hasCR && hasBareLF {
		out = append(out, decree.Diagnostic{
			Rule:    prefix + "/mixed-line-endings",
			Message: "file mixes CRLF and LF line endings",
			Span:    decree.NewSpan(0, len(source)),
		})
	} else if hasCR && s.LineEndings == "lf" {
		out = append(out, decree.Diagnostic{
			Rule:    prefix + "/wrong-line-ending",
			Message: "file uses CRLF, expected LF",
			Span:    decree.NewSpan(0, len(source)),
		})
	} else if !hasCR && s.LineEndings == "crlf" && strings.Contains(source, "\n") {
		out = append(out, decree.Diagnostic{
			Rule:    prefix + "/wrong-line-ending",
			Message: "file uses LF, expected CRLF",
			Span:    decree.NewSpan(0, len(source)),
		})
	}

	offset := 0
	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		start := offset
		end := offset + len(line)
		offset = end + 1 // account for the '\n' consumed by Split

		trimmed := strings.TrimRight(line, " \t")
		if trimmed != line && s.TrailingWhitespace == "deny" {
			rule := prefix + "/trailing-whitespace"
			if strings.TrimSpace(line) == "" {
				rule = prefix + "/blank-line-whitespace"
			}
			if rule == prefix+"/blank-line-whitespace" && s.BlankLineWhitespace != "deny" {
				// blank-line-whitespace has its own toggle; skip if allowed.
			} else {
				out = append(out, decree.Diagnostic{
					Rule:    rule,
					Message: "line has trailing whitespace",
					Span:    decree.NewSpan(start+len(trimmed), end),
				})
			}
		}

		if s.TabsVsSpaces == "spaces" && strings.HasPrefix(line, "\t") {
			out = append(out, decree.Diagnostic{
				Rule:    prefix + "/tab-character",
				Message: "line is indented with a tab, expected spaces",
				Span:    decree.NewSpan(start, start+leadingWhitespaceLen(line)),
			})
		} else if s.TabsVsSpaces == "tabs" && leadingSpaceRun(line) >= s.TabWidth {
			out = append(out, decree.Diagnostic{
				Rule:    prefix + "/space-indentation",
				Message: "line is indented with spaces, expected tabs",
				Span:    decree.NewSpan(start, start+leadingWhitespaceLen(line)),
			})
		}

		if s.MaxLineLength > 0 && len(line) > s.MaxLineLength {
			out = append(out, decree.Diagnostic{
				Rule:    prefix + "/line-too-long",
				Message: "line exceeds the maximum length",
				Span:    decree.NewSpan(start, end),
			})
		}

		_ = i
	}

	if s.FinalNewline == "require" && len(source) > 0 && !strings.HasSuffix(source, "\n") {
		out = append(out, decree.Diagnostic{
			Rule:    prefix + "/missing-final-newline",
			Message: "file is missing a trailing newline",
			Span:    decree.NewSpan(len(source), len(source)),
		})
	}

	// Hygiene diagnostics are reported as enforced.
	for i := range out {
		out[i].Enforced = true
	}

	return out
}

func leadingWhitespaceLen(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

func leadingSpaceRun(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
