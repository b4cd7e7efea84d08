// Package reporter provides output formatters for dictator's lint results:
// human-readable styled text (with syntax-highlighted snippets) and
// machine-readable JSON.
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/seuros/dictator/internal/processor"
)

// Format represents an output format type.
type Format string

const (
	// FormatText is human-readable terminal output.
	FormatText Format = "text"
	// FormatJSON is machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format type.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: text, json)", s)
	}
}

// Options configures reporter creation.
type Options struct {
	// Format specifies the output format.
	Format Format

	// Writer is the output destination.
	Writer io.Writer

	// Color enables/disables colored output (text format only).
	// nil means auto-detect.
	Color *bool

	// ShowSource enables source code snippets (text format only).
	ShowSource bool
}

// DefaultOptions returns sensible defaults for reporter options.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		Writer:     os.Stdout,
		Color:      nil, // auto-detect
		ShowSource: true,
	}
}

// Reporter formats and outputs findings. FilesScanned is carried through
// for the run summary; JSONReporter uses it, TextReporter ignores it.
type Reporter interface {
	Report(findings []processor.Finding, sources map[string][]byte, filesScanned int) error
}

// New creates a reporter based on the format specified in options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch opts.Format {
	case FormatText, "":
		textOpts := TextOptions{
			Color:           opts.Color,
			SyntaxHighlight: opts.Color == nil || *opts.Color,
			ShowSource:      opts.ShowSource,
		}
		return &textReporterAdapter{
			reporter: NewTextReporter(textOpts),
			writer:   opts.Writer,
		}, nil

	case FormatJSON:
		return &jsonReporterAdapter{inner: NewJSONReporter(opts.Writer)}, nil

	default:
		return nil, fmt.Errorf("unknown format: %q", opts.Format)
	}
}

// textReporterAdapter adapts TextReporter to the Reporter interface.
type textReporterAdapter struct {
	reporter *TextReporter
	writer   io.Writer
}

func (a *textReporterAdapter) Report(findings []processor.Finding, sources map[string][]byte, _ int) error {
	return a.reporter.Print(a.writer, findings, sources)
}

// jsonReporterAdapter adapts JSONReporter to the Reporter interface.
type jsonReporterAdapter struct {
	inner *JSONReporter
}

func (a *jsonReporterAdapter) Report(findings []processor.Finding, _ map[string][]byte, filesScanned int) error {
	return a.inner.Report(findings, filesScanned)
}

// GetWriter returns an io.Writer for the given output path.
// Supports "stdout", "stderr", or file paths.
func GetWriter(path string) (io.Writer, func() error, error) {
	switch path {
	case "stdout", "":
		return os.Stdout, func() error { return nil }, nil
	case "stderr":
		return os.Stderr, func() error { return nil }, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, f.Close, nil
	}
}
