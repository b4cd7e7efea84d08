package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"

	"github.com/seuros/dictator/internal/processor"
)

// JSONOutput is the top-level structure for `lint --json` output.
type JSONOutput struct {
	Files        []FileResult `json:"files"`
	Summary      Summary      `json:"summary"`
	FilesScanned int          `json:"files_scanned"`
}

// FileResult contains the findings for a single file.
type FileResult struct {
	File     string              `json:"file"`
	Findings []processor.Finding `json:"findings"`
}

// Summary contains aggregate statistics about findings.
type Summary struct {
	Total    int `json:"total"`
	Enforced int `json:"enforced"`
	Pending  int `json:"pending"`
	Files    int `json:"files"`
}

// JSONReporter formats findings as JSON output.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report writes findings grouped by file, in deterministic order.
func (r *JSONReporter) Report(findings []processor.Finding, filesScanned int) error {
	byFile := make(map[string][]processor.Finding)
	filesOrder := make([]string, 0)

	sorted := make([]processor.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Span.Start < sorted[j].Span.Start
	})
	for _, f := range sorted {
		f.Path = filepath.ToSlash(f.Path)
		if _, exists := byFile[f.Path]; !exists {
			filesOrder = append(filesOrder, f.Path)
		}
		byFile[f.Path] = append(byFile[f.Path], f)
	}

	output := JSONOutput{
		Files:        make([]FileResult, 0, len(filesOrder)),
		Summary:      calculateSummary(findings, len(filesOrder)),
		FilesScanned: filesScanned,
	}

	for _, file := range filesOrder {
		output.Files = append(output.Files, FileResult{
			File:     file,
			Findings: byFile[file],
		})
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// calculateSummary computes aggregate statistics from findings.
func calculateSummary(findings []processor.Finding, fileCount int) Summary {
	summary := Summary{
		Total: len(findings),
		Files: fileCount,
	}
	for _, f := range findings {
		if f.Enforced {
			summary.Enforced++
		} else {
			summary.Pending++
		}
	}
	return summary
}
