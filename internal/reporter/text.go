// Package reporter provides output formatters for lint results.
//
// The text formatter is adapted from BuildKit's linter output format
// with enhancements using Lip Gloss for styling and Chroma for syntax highlighting.
package reporter

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/seuros/dictator/internal/processor"
)

// Styles for different parts of the output
var (
	// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	// Warning header style
	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")) // Orange/Yellow

	// Rule code style
	ruleCodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	// URL style
	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Underline(true)

	// Message style
	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")) // White

	// File location style
	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	// Line number style
	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	// Separator style
	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")) // Darker gray

	// Marker style for affected lines
	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	// enforcedStyle marks diagnostics the auto-fixer already corrected.
	enforcedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")) // Gray
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// SyntaxHighlight enables syntax highlighting in snippets, with the
	// lexer chosen from the file name.
	SyntaxHighlight bool

	// ShowSource shows source code snippets. Default: true.
	ShowSource bool

	// ChromaStyle is the Chroma style name for syntax highlighting.
	// Default: "monokai" for dark terminals, "github" for light.
	ChromaStyle string
}

// DefaultTextOptions returns sensible defaults for text output.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Color:           nil, // auto-detect
		SyntaxHighlight: true,
		ShowSource:      true,
		ChromaStyle:     "", // auto-detect
	}
}

// TextReporter formats findings as styled text output.
type TextReporter struct {
	opts      TextOptions
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(opts TextOptions) *TextReporter {
	r := &TextReporter{opts: opts}

	colorEnabled := useColors
	if opts.Color != nil {
		colorEnabled = *opts.Color
	}

	if colorEnabled && opts.SyntaxHighlight {
		styleName := opts.ChromaStyle
		if styleName == "" {
			if lipgloss.HasDarkBackground() {
				styleName = "monokai"
			} else {
				styleName = "github"
			}
		}
		r.style = styles.Get(styleName)
		if r.style == nil {
			r.style = styles.Fallback
		}

		r.formatter = formatters.Get("terminal256")
		if r.formatter == nil {
			r.formatter = formatters.Fallback
		}
	}

	return r
}

// Print writes findings to the writer, sorted by path then line.
func (r *TextReporter) Print(w io.Writer, findings []processor.Finding, sources map[string][]byte) error {
	sorted := make([]processor.Finding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Line < sorted[j].Line
	})

	for _, f := range sorted {
		if err := r.printFinding(w, f, sources[f.Path]); err != nil {
			return err
		}
	}
	return nil
}

// printFinding formats a single finding.
func (r *TextReporter) printFinding(w io.Writer, f processor.Finding, source []byte) error {
	colorEnabled := useColors
	if r.opts.Color != nil {
		colorEnabled = *r.opts.Color
	}

	status := "WARN"
	sevStyle := warningStyle
	if f.Enforced {
		status = "FIXED"
		sevStyle = enforcedStyle
	}

	var header string
	if colorEnabled {
		header = fmt.Sprintf("\n%s %s",
			sevStyle.Render(status+":"),
			ruleCodeStyle.Render(f.Rule))
	} else {
		header = fmt.Sprintf("\n%s: %s", status, f.Rule)
	}
	fmt.Fprintln(w, header)

	if colorEnabled {
		fmt.Fprintln(w, messageStyle.Render(f.Message))
	} else {
		fmt.Fprintln(w, f.Message)
	}

	if r.opts.ShowSource && f.Line > 0 && len(source) > 0 {
		r.printSource(w, f, source, colorEnabled)
	}

	return nil
}

// printSource renders the source line the finding applies to, with a few
// lines of context and optional syntax highlighting keyed off the file's
// extension.
func (r *TextReporter) printSource(w io.Writer, f processor.Finding, source []byte, colorEnabled bool) {
	lines := strings.Split(string(source), "\n")

	if f.Line < 1 || f.Line > len(lines) {
		return
	}

	start, end := f.Line, f.Line
	pad := 4
	for p := 0; p < pad; p++ {
		expanded := false
		if start > 1 {
			start--
			expanded = true
		}
		if end < len(lines) {
			end++
			expanded = true
		}
		if !expanded {
			break
		}
	}

	fmt.Fprintln(w)
	if colorEnabled {
		fmt.Fprintln(w, fileLocStyle.Render(fmt.Sprintf("%s:%d", f.Path, f.Line)))
		fmt.Fprintln(w, separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintf(w, "%s:%d\n", f.Path, f.Line)
		fmt.Fprintln(w, "--------------------")
	}

	lexer := lexers.Match(f.Path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	for i := start; i <= end; i++ {
		lineContent := strings.TrimSuffix(lines[i-1], "\r")

		var lineNum string
		if colorEnabled {
			lineNum = lineNumStyle.Render(fmt.Sprintf(" %3d │", i))
		} else {
			lineNum = fmt.Sprintf(" %3d |", i)
		}

		var marker string
		if i == f.Line {
			if colorEnabled {
				marker = markerStyle.Render(">>>")
			} else {
				marker = ">>>"
			}
		} else {
			marker = "   "
		}

		content := lineContent
		if colorEnabled && r.style != nil && r.formatter != nil {
			content = r.highlightLine(lexer, lineContent)
		}

		fmt.Fprintf(w, "%s %s %s\n", lineNum, marker, content)
	}

	if colorEnabled {
		fmt.Fprintln(w, separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintln(w, "--------------------")
	}
}

// highlightLine applies syntax highlighting to a single line.
func (r *TextReporter) highlightLine(lexer chroma.Lexer, line string) string {
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// PrintText is a convenience function that uses default options.
func PrintText(w io.Writer, findings []processor.Finding, sources map[string][]byte) error {
	r := NewTextReporter(DefaultTextOptions())
	return r.Print(w, findings, sources)
}

// PrintTextPlain writes findings without any styling (for non-TTY output).
func PrintTextPlain(w io.Writer, findings []processor.Finding, sources map[string][]byte) error {
	noColor := false
	opts := TextOptions{
		Color:           &noColor,
		SyntaxHighlight: false,
		ShowSource:      true,
	}
	r := NewTextReporter(opts)
	return r.Print(w, findings, sources)
}
