// Package sourcemap provides line/column lookups and snippet extraction over
// raw source bytes, shared by decrees, the CLI reporter, and the MCP server's
// violation snippets.
package sourcemap

import (
	"bytes"
	"strings"
)

// SourceMap gives efficient line-indexed access to source content.
// All line numbers are 0-based.
type SourceMap struct {
	source      []byte
	lines       []string
	lineOffsets []int
}

// New builds a SourceMap from source content. Lines are split on '\n';
// a trailing '\r' (CRLF) is trimmed from each line.
func New(source []byte) *SourceMap {
	rawLines := bytes.Split(source, []byte{'\n'})
	lines := make([]string, len(rawLines))
	lineOffsets := make([]int, len(rawLines))

	offset := 0
	for i, line := range rawLines {
		lineOffsets[i] = offset
		lines[i] = strings.TrimSuffix(string(line), "\r")
		offset += len(line) + 1
	}

	return &SourceMap{source: source, lines: lines, lineOffsets: lineOffsets}
}

// Lines returns all lines, without line endings. Do not modify.
func (sm *SourceMap) Lines() []string { return sm.lines }

// LineCount returns the total number of lines.
func (sm *SourceMap) LineCount() int { return len(sm.lines) }

// Line returns the text of line n (0-based), or "" if out of range.
func (sm *SourceMap) Line(n int) string {
	if n < 0 || n >= len(sm.lines) {
		return ""
	}
	return sm.lines[n]
}

// LineOffset returns the byte offset where line n starts, or -1 if out of range.
func (sm *SourceMap) LineOffset(n int) int {
	if n < 0 || n >= len(sm.lineOffsets) {
		return -1
	}
	return sm.lineOffsets[n]
}

// Snippet returns lines [startLine, endLine] joined by '\n' (0-based, inclusive).
func (sm *SourceMap) Snippet(startLine, endLine int) string {
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sm.lines) {
		endLine = len(sm.lines) - 1
	}
	if startLine > endLine || startLine >= len(sm.lines) {
		return ""
	}
	return strings.Join(sm.lines[startLine:endLine+1], "\n")
}

// Source returns the raw source content. Do not modify.
func (sm *SourceMap) Source() []byte { return sm.source }

// ByteToLineCol converts a byte offset into a 1-based (line, column) pair,
// matching the convention used by the CLI text reporter and MCP violation
// output. Columns count UTF-8 bytes within the line, not runes.
func ByteToLineCol(source []byte, byteOffset int) (line, col int) {
	line, col = 1, 1
	for i, b := range source {
		if i == byteOffset {
			return line, col
		}
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// LineForOffset returns the 0-based line index containing byteOffset.
func (sm *SourceMap) LineForOffset(byteOffset int) int {
	// lineOffsets is sorted ascending; find the last offset <= byteOffset.
	lo, hi := 0, len(sm.lineOffsets)-1
	result := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if sm.lineOffsets[mid] <= byteOffset {
			result = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return result
}
