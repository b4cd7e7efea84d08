// Package rust implements the built-in Rust-language decree: universal
// hygiene (rebranded under the rust/ prefix), structural checks over .rs
// sources, and edition/rust-version policy checks over Cargo.toml.
package rust

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/decree"
	"github.com/seuros/dictator/internal/hygiene"
)

// Name is the decree's registry name.
const Name = "rust"

// editionOrder assigns an ordinal to each known edition so editions can be
// compared "is this older than the configured minimum".
var editionOrder = map[string]int{"2015": 0, "2018": 1, "2021": 2, "2024": 3}

var editionPattern = regexp.MustCompile(`(?m)^\s*edition\s*=\s*"([^"]+)"`)
var rustVersionPattern = regexp.MustCompile(`(?m)^\s*rust-version\s*=\s*"([^"]+)"`)

// defaultVisibilityOrder orders Rust visibility modifiers for the
// visibility-order check ("" is a private item): public items are expected
// before private ones, the default ordering; VisibilityOrder in config
// overrides it.
var defaultVisibilityOrder = []string{"pub", "pub(crate)", "pub(super)", ""}

// Decree implements Rust-source hygiene plus language-specific checks.
type Decree struct {
	Hygiene         config.HygieneSettings
	MaxLines        int
	MinEdition      string
	MinRustVersion  string
	VisibilityOrder []string
}

// New builds a rust decree from its merged hygiene settings and
// language-specific options.
func New(hygieneSettings config.HygieneSettings, maxLines int, minEdition, minRustVersion string, visibilityOrder []string) *Decree {
	if len(visibilityOrder) == 0 {
		visibilityOrder = defaultVisibilityOrder
	}
	return &Decree{
		Hygiene:         hygieneSettings,
		MaxLines:        maxLines,
		MinEdition:      minEdition,
		MinRustVersion:  minRustVersion,
		VisibilityOrder: visibilityOrder,
	}
}

func (d *Decree) Name() string { return Name }

func (d *Decree) Metadata() decree.Metadata {
	return decree.Metadata{
		ABIVersion:    decree.ABIVersion,
		DecreeVersion: "1.0.0",
		Description:   "Rust source hygiene, visibility ordering, and edition/version policy",
		Extensions:    []string{"rs"},
		Filenames:     []string{"Cargo.toml"},
		SkipFilenames: []string{"Cargo.lock"},
		Capabilities:  []decree.Capability{decree.CapabilityLint, decree.CapabilityRuntimeConfig},
	}
}

func (d *Decree) Lint(path string, source string) decree.Diagnostics {
	if filepath.Base(path) == "Cargo.toml" {
		return d.lintCargoToml(source)
	}
	out := hygiene.Check(Name, source, d.Hygiene)
	out = append(out, d.checkFileTooLong(source)...)
	out = append(out, d.checkVisibilityOrder(source)...)
	return out
}

func (d *Decree) lintCargoToml(source string) decree.Diagnostics {
	var out decree.Diagnostics

	if m := editionPattern.FindStringSubmatchIndex(source); m != nil {
		edition := source[m[2]:m[3]]
		if d.MinEdition != "" && editionLess(edition, d.MinEdition) {
			out = append(out, decree.Diagnostic{
				Rule:    Name + "/fossil-edition",
				Message: "edition " + edition + " is older than the configured minimum " + d.MinEdition,
				Span:    decree.NewSpan(m[2], m[3]),
			})
		}
	} else if d.MinEdition != "" {
		out = append(out, decree.Diagnostic{
			Rule:    Name + "/missing-edition",
			Message: "Cargo.toml does not declare an edition",
			Span:    decree.NewSpan(0, len(source)),
		})
	}

	if m := rustVersionPattern.FindStringSubmatchIndex(source); m != nil {
		version := source[m[2]:m[3]]
		if d.MinRustVersion != "" && versionLess(version, d.MinRustVersion) {
			out = append(out, decree.Diagnostic{
				Rule:    Name + "/fossil-rust-version",
				Message: "rust-version " + version + " is older than the configured minimum " + d.MinRustVersion,
				Span:    decree.NewSpan(m[2], m[3]),
			})
		}
	} else if d.MinRustVersion != "" {
		out = append(out, decree.Diagnostic{
			Rule:    Name + "/missing-rust-version",
			Message: "Cargo.toml does not declare a rust-version",
			Span:    decree.NewSpan(0, len(source)),
		})
	}

	return out
}

func editionLess(a, b string) bool {
	ra, oka := editionOrder[a]
	rb, okb := editionOrder[b]
	if !oka || !okb {
		return false
	}
	return ra < rb
}

// versionLess compares two lexicographic '.'-separated numeric versions,
// treating missing components as 0.
func versionLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			return av < bv
		}
	}
	return false
}

func (d *Decree) checkFileTooLong(source string) decree.Diagnostics {
	if d.MaxLines <= 0 {
		return nil
	}
	count := 0
	inBlockComment := false
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case inBlockComment:
			if strings.Contains(trimmed, "*/") {
				inBlockComment = false
			}
			continue
		case strings.HasPrefix(trimmed, "//"):
			continue
		case strings.HasPrefix(trimmed, "/*"):
			if !strings.Contains(trimmed, "*/") {
				inBlockComment = true
			}
			continue
		default:
			count++
		}
	}
	if count <= d.MaxLines {
		return nil
	}
	return decree.Diagnostics{{
		Rule:    Name + "/file-too-long",
		Message: "file has too many lines",
		Span:    decree.NewSpan(0, len(source)),
	}}
}

// rawStringOpen matches the opening of a raw string literal (r"..." or
// r#"..."#, any number of hashes); visibility scanning skips lines whose
// visibility keyword appears inside one.
var rawStringOpen = regexp.MustCompile(`r(#*)"`)

func (d *Decree) checkVisibilityOrder(source string) decree.Diagnostics {
	var out decree.Diagnostics
	inRawString := false

	offset := 0
	var seen []string
	for _, line := range strings.Split(source, "\n") {
		start := offset
		offset += len(line) + 1

		if inRawString {
			if strings.Contains(line, `"`) {
				inRawString = false
			}
			continue
		}
		if rawStringOpen.MatchString(line) && !strings.Contains(line[rawStringOpen.FindStringIndex(line)[1]:], `"`) {
			inRawString = true
			continue
		}

		vis, ok := visibilityOf(line)
		if !ok {
			continue
		}
		rank := rankOf(d.VisibilityOrder, vis)
		for _, prevRank := range seenRanks(seen, d.VisibilityOrder) {
			if rank < prevRank {
				out = append(out, decree.Diagnostic{
					Rule:    Name + "/visibility-order",
					Message: "item with visibility " + vis + " appears after a narrower-visibility item",
					Span:    decree.NewSpan(start, start+len(line)),
				})
				break
			}
		}
		seen = append(seen, vis)
	}
	return out
}

var visibilityPattern = regexp.MustCompile(`^\s*(?:(pub\(crate\)|pub\(super\)|pub)\s+)?(fn|struct|enum|const|static|mod|trait|type)\b`)

// visibilityOf reports the visibility modifier of an item declaration on
// line ("" for a private item) and whether line declares an item at all.
func visibilityOf(line string) (string, bool) {
	m := visibilityPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func rankOf(order []string, vis string) int {
	for i, v := range order {
		if v == vis {
			return i
		}
	}
	return len(order)
}

func seenRanks(seen []string, order []string) []int {
	ranks := make([]int, len(seen))
	for i, v := range seen {
		ranks[i] = rankOf(order, v)
	}
	return ranks
}
