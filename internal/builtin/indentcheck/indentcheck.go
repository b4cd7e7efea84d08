// Package indentcheck implements the mixed/inconsistent indentation checks
// shared by the typescript and python decrees.
package indentcheck

import (
	"strings"

	"github.com/seuros/dictator/internal/decree"
)

// Check scans source for two indentation problems:
//   - mixed-indentation: a single line's leading whitespace mixes tabs and
//     spaces (a space before a tab, or a tab after spaces have started).
//   - inconsistent-indentation: the file as a whole uses tab-only
//     indentation on some lines and space-only indentation on others.
func Check(prefix string, source string) decree.Diagnostics {
	var out decree.Diagnostics
	sawTabIndent := false
	sawSpaceIndent := false

	offset := 0
	for _, line := range strings.Split(source, "\n") {
		start := offset
		offset += len(line) + 1

		lead := leadingWhitespace(line)
		if lead == "" {
			continue
		}

		sawSpace, sawTab, mixed := classify(lead)
		if mixed {
			out = append(out, decree.Diagnostic{
				Rule:    prefix + "/mixed-indentation",
				Message: "line mixes tabs and spaces in its indentation",
				Span:    decree.NewSpan(start, start+len(lead)),
			})
		}
		if sawTab && !sawSpace {
			sawTabIndent = true
		}
		if sawSpace && !sawTab {
			sawSpaceIndent = true
		}
	}

	if sawTabIndent && sawSpaceIndent {
		out = append(out, decree.Diagnostic{
			Rule:    prefix + "/inconsistent-indentation",
			Message: "file mixes tab-indented and space-indented lines",
			Span:    decree.NewSpan(0, len(source)),
		})
	}

	return out
}

func leadingWhitespace(line string) string {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return line[:n]
}

// classify reports whether lead contains any space, any tab, and whether a
// tab follows a space (the "mixed" case).
func classify(lead string) (sawSpace, sawTab, mixed bool) {
	spaceSeen := false
	for i := 0; i < len(lead); i++ {
		switch lead[i] {
		case ' ':
			sawSpace = true
			spaceSeen = true
		case '\t':
			sawTab = true
			if spaceSeen {
				mixed = true
			}
		}
	}
	return sawSpace, sawTab, mixed
}
