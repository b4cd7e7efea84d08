// Package discover expands CLI path arguments (files, directories, and
// glob patterns) into a concrete, deduplicated, sorted list of files for
// lint/dictate/watch to operate on.
package discover

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/moby/patternmatcher"

	"github.com/seuros/dictator/internal/regime"
)

// defaultIgnoreDirs are always skipped during directory walks, regardless
// of .dictatorignore contents.
var defaultIgnoreDirs = []string{".git", ".dictator", "node_modules", "vendor"}

// IgnoreFileName is the .gitignore-style file consulted during directory
// walks, in addition to defaultIgnoreDirs.
const IgnoreFileName = ".dictatorignore"

// Options configures Files.
type Options struct {
	// Regime, if non-nil, restricts directory-walk results to files its
	// decrees actually watch (extension-matched or universal).
	Regime *regime.Regime

	// ExtraIgnorePatterns are additional patternmatcher-style patterns,
	// e.g. from a CLI --exclude flag.
	ExtraIgnorePatterns []string
}

// Files expands inputs (explicit files, directories, doublestar globs)
// into a deduplicated, sorted file list. Paths keep the form they were
// given in; duplicates are detected by absolute path.
func Files(inputs []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, input := range inputs {
		paths, err := expand(input, opts, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, paths...)
	}

	slices.SortFunc(out, func(a, b string) int { return cmp.Compare(a, b) })
	return out, nil
}

func expand(input string, opts Options, seen map[string]bool) ([]string, error) {
	if containsGlobChars(input) {
		return expandGlob(input, opts, seen)
	}

	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return expandGlob(input, opts, seen)
		}
		return nil, err
	}
	if info.IsDir() {
		return walkDir(input, opts, seen)
	}
	return addFile(input, seen), nil
}

func containsGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[]")
}

func expandGlob(pattern string, opts Options, seen map[string]bool) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range matches {
		out = append(out, addFile(m, seen)...)
	}
	return out, nil
}

func addFile(path string, seen map[string]bool) []string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		return nil
	}
	seen[abs] = true
	return []string{path}
}

// walkDir recursively walks dir, applying defaultIgnoreDirs, any
// .dictatorignore found at its root, and opts.ExtraIgnorePatterns, then
// filters surviving files through opts.Regime's watched extensions (if
// set).
func walkDir(dir string, opts Options, seen map[string]bool) ([]string, error) {
	patterns := append([]string(nil), opts.ExtraIgnorePatterns...)
	if data, err := os.ReadFile(filepath.Join(dir, IgnoreFileName)); err == nil {
		patterns = append(patterns, strings.Split(string(data), "\n")...)
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		pm = nil
	}

	var exts map[string]bool
	var restrictExts bool
	if opts.Regime != nil {
		exts, restrictExts = opts.Regime.WatchedExtensions()
	}

	var out []string
	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && slices.Contains(defaultIgnoreDirs, d.Name()) {
				return filepath.SkipDir
			}
			if pm != nil {
				rel, relErr := filepath.Rel(dir, path)
				if relErr == nil {
					if matched, _ := pm.MatchesOrParentMatches(filepath.ToSlash(rel)); matched {
						return filepath.SkipDir
					}
				}
			}
			return nil
		}

		if pm != nil {
			rel, relErr := filepath.Rel(dir, path)
			if relErr == nil {
				if matched, _ := pm.MatchesOrParentMatches(filepath.ToSlash(rel)); matched {
					return nil
				}
			}
		}

		if restrictExts {
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
			if !exts[ext] {
				return nil
			}
		}

		out = append(out, addFile(path, seen)...)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}
