// Package importorder implements the shared stdlib < third-party < local
// import-ordering check used by the typescript and python decrees.
package importorder

import (
	"strings"

	"github.com/seuros/dictator/internal/decree"
)

// Import is a single import statement extracted by a language-specific
// scanner.
type Import struct {
	Module string
	Start  int
	End    int
}

// Rank classifies a module path into stdlib (0), third-party (1), or local
// (2). A '.'-prefixed path is always local; otherwise stdlib membership is
// looked up in the allow-list.
func Rank(module string, stdlib map[string]bool) int {
	if strings.HasPrefix(module, ".") {
		return 2
	}
	root := module
	if idx := strings.IndexByte(module, '/'); idx >= 0 {
		root = module[:idx]
	}
	if stdlib[root] {
		return 0
	}
	return 1
}

// Check flags any import whose rank is lower than a previously seen import's
// rank within the same file (stdlib after third-party/local, third-party
// after local).
func Check(prefix string, imports []Import, stdlib map[string]bool) decree.Diagnostics {
	var out decree.Diagnostics
	maxSeen := -1
	for _, imp := range imports {
		rank := Rank(imp.Module, stdlib)
		if rank < maxSeen {
			out = append(out, decree.Diagnostic{
				Rule:    prefix + "/import-order",
				Message: "import " + imp.Module + " appears after a lower-precedence import",
				Span:    decree.NewSpan(imp.Start, imp.End),
			})
		}
		if rank > maxSeen {
			maxSeen = rank
		}
	}
	return out
}
