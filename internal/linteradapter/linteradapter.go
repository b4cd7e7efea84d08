// Package linteradapter runs external linters (rubocop, ruff, eslint,
// clippy, and the formatter-only gofmt/goimports/rustfmt/prettier) and
// normalizes their JSON output into dictator's diagnostic model (§4.6).
//
// The host, not the configured command string, controls the flags that
// force a parseable JSON form; the user only supplies the binary name (or
// a full command line for anything PATH can't find directly).
package linteradapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/armon/circbuf"
	backoff "github.com/cenkalti/backoff/v5"
)

// Diagnostic is a single finding surfaced by an external linter. Unlike
// decree.Diagnostic, external linters report line/column, not byte spans.
type Diagnostic struct {
	Path     string
	Line     int
	Col      int
	Rule     string
	Message  string
	Enforced bool
}

// hostArgs lists the flags dictator appends after the configured command
// and before the target paths, chosen to force parseable JSON (or, for
// formatters, an in-place fix with no JSON to parse).
var hostArgs = map[string][]string{
	"rubocop":   {"-A", "--format", "json"},
	"ruff":      {"check", "--fix", "--output-format", "json"},
	"eslint":    {"--fix", "--format", "json"},
	"clippy":    {"--fix", "--allow-dirty", "--message-format", "json"},
	"gofmt":     {"-w"},
	"goimports": {"-w"},
	"rustfmt":   {"--edition", "2021"},
	"prettier":  {"--write"},
}

// stderrTailLimit bounds how much stderr text is retained for surfacing
// alongside parse failures; linters can be extremely chatty on failure.
const stderrTailLimit = 64 * 1024

// Run invokes tool (the first element of command, which may itself be a
// multi-token command line) against paths, retrying transient process
// start failures, and returns the parsed diagnostics. The tool's exit code
// is never consulted; only its stdout is parsed. Malformed JSON yields no
// diagnostics rather than an error, matching §4.6's "swallowed" contract.
func Run(ctx context.Context, command []string, paths []string) ([]Diagnostic, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("linteradapter: empty command")
	}
	tool := toolName(command[0])
	if _, known := hostArgs[tool]; !known {
		for _, tok := range command[1:] {
			if _, ok := hostArgs[toolName(tok)]; ok {
				tool = toolName(tok)
				break
			}
		}
	}

	args := append([]string{}, command[1:]...)
	if extra, ok := hostArgs[tool]; ok {
		args = append(args, extra...)
	}
	args = append(args, paths...)

	stdout, _, err := runWithRetry(ctx, command[0], args)
	if err != nil {
		return nil, err
	}

	switch tool {
	case "rubocop":
		return parseRubocop(stdout), nil
	case "ruff":
		return parseRuff(stdout), nil
	case "eslint":
		return parseESLint(stdout), nil
	case "clippy":
		return parseClippy(stdout), nil
	default:
		// gofmt/goimports/rustfmt/prettier and any other tool produce no
		// diagnostics: they fix in place and emit no structured report.
		return nil, nil
	}
}

// runWithRetry executes name with args, retrying process-start failures
// (binary momentarily unavailable, e.g. a package manager mid-install)
// with exponential backoff. A process that starts and exits non-zero is
// not retried: its stdout is still the thing we want to parse.
func runWithRetry(ctx context.Context, name string, args []string) (stdout []byte, stderrTail string, err error) {
	result, rerr := backoff.Retry(ctx, func() ([]byte, error) {
		var outBuf bytes.Buffer
		tail := newTailBuffer(stderrTailLimit)

		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdout = &outBuf
		cmd.Stderr = tail

		runErr := cmd.Run()
		stderrTail = tail.String()

		if runErr != nil {
			if _, ok := runErr.(*exec.ExitError); ok {
				// The process ran; a non-zero exit is how every one of
				// these linters reports "issues found". Not retryable,
				// and not an error: the exit code is never consulted.
				return outBuf.Bytes(), nil
			}
			return nil, runErr
		}
		return outBuf.Bytes(), nil
	},
		backoff.WithBackOff(newAdapterBackoff()),
		backoff.WithMaxTries(3),
	)
	if rerr != nil {
		return nil, stderrTail, rerr
	}
	return result, stderrTail, nil
}

func newAdapterBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2.0
	return b
}

// tailBuffer retains only the last limit bytes written, for bounding
// stderr capture from chatty external processes.
type tailBuffer struct {
	buf *circbuf.Buffer
}

func newTailBuffer(limit int) *tailBuffer {
	b, err := circbuf.NewBuffer(int64(limit))
	if err != nil {
		return &tailBuffer{}
	}
	return &tailBuffer{buf: b}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	if t.buf == nil {
		return len(p), nil
	}
	return t.buf.Write(p)
}

func (t *tailBuffer) String() string {
	if t.buf == nil {
		return ""
	}
	return t.buf.String()
}

// toolName strips any directory prefix from one token of a configured
// command. Run applies it to command[0] and, when that is not a known tool
// (a wrapper such as "bundle exec rubocop"), to the first later token that
// is one.
func toolName(bin string) string {
	if idx := strings.LastIndexAny(bin, "/\\"); idx >= 0 {
		return bin[idx+1:]
	}
	return bin
}

func diagMessage(path string, line, col int, native string) string {
	return fmt.Sprintf("[%s:%d:%d] %s", path, line, col, native)
}

// --- rubocop -----------------------------------------------------------

type rubocopReport struct {
	Files []struct {
		Path     string `json:"path"`
		Offenses []struct {
			CopName     string `json:"cop_name"`
			Message     string `json:"message"`
			Correctable bool   `json:"correctable"`
			Location    struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"location"`
		} `json:"offenses"`
	} `json:"files"`
}

func parseRubocop(stdout []byte) []Diagnostic {
	var report rubocopReport
	if err := json.Unmarshal(stdout, &report); err != nil {
		return nil
	}
	var out []Diagnostic
	for _, f := range report.Files {
		for _, o := range f.Offenses {
			out = append(out, Diagnostic{
				Path:     f.Path,
				Line:     o.Location.Line,
				Col:      o.Location.Column,
				Rule:     "rubocop/" + o.CopName,
				Message:  diagMessage(f.Path, o.Location.Line, o.Location.Column, o.Message),
				Enforced: o.Correctable,
			})
		}
	}
	return out
}

// --- ruff ----------------------------------------------------------------

type ruffEntry struct {
	Filename string `json:"filename"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
	Fix *struct {
		Applicability string `json:"applicability"`
	} `json:"fix"`
}

func parseRuff(stdout []byte) []Diagnostic {
	var entries []ruffEntry
	if err := json.Unmarshal(stdout, &entries); err != nil {
		return nil
	}
	var out []Diagnostic
	for _, e := range entries {
		enforced := e.Fix != nil && e.Fix.Applicability == "safe"
		out = append(out, Diagnostic{
			Path:     e.Filename,
			Line:     e.Location.Row,
			Col:      e.Location.Column,
			Rule:     "ruff/" + e.Code,
			Message:  diagMessage(e.Filename, e.Location.Row, e.Location.Column, e.Message),
			Enforced: enforced,
		})
	}
	return out
}

// --- eslint --------------------------------------------------------------

type eslintFile struct {
	FilePath string `json:"filePath"`
	Messages []struct {
		RuleID  string      `json:"ruleId"`
		Message string      `json:"message"`
		Line    int         `json:"line"`
		Column  int         `json:"column"`
		Fix     interface{} `json:"fix"`
	} `json:"messages"`
}

func parseESLint(stdout []byte) []Diagnostic {
	var files []eslintFile
	if err := json.Unmarshal(stdout, &files); err != nil {
		return nil
	}
	var out []Diagnostic
	for _, f := range files {
		for _, m := range f.Messages {
			rule := m.RuleID
			if rule == "" {
				rule = "syntax"
			}
			out = append(out, Diagnostic{
				Path:     f.FilePath,
				Line:     m.Line,
				Col:      m.Column,
				Rule:     "eslint/" + rule,
				Message:  diagMessage(f.FilePath, m.Line, m.Column, m.Message),
				Enforced: m.Fix != nil,
			})
		}
	}
	return out
}

// --- clippy (NDJSON) ------------------------------------------------------

type clippyMessage struct {
	Reason  string `json:"reason"`
	Message *struct {
		Code *struct {
			Code string `json:"code"`
		} `json:"code"`
		Message string `json:"message"`
		Spans   []struct {
			FileName              string `json:"file_name"`
			LineStart             int    `json:"line_start"`
			ColumnStart           int    `json:"column_start"`
			SuggestionApplicability string `json:"suggestion_applicability"`
		} `json:"spans"`
	} `json:"message"`
}

func parseClippy(stdout []byte) []Diagnostic {
	var out []Diagnostic
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var m clippyMessage
		if err := json.Unmarshal(line, &m); err != nil {
			continue
		}
		if m.Reason != "compiler-message" || m.Message == nil || m.Message.Code == nil {
			continue
		}
		var span struct {
			FileName                string
			LineStart, ColumnStart  int
			SuggestionApplicability string
		}
		if len(m.Message.Spans) > 0 {
			s := m.Message.Spans[0]
			span.FileName = s.FileName
			span.LineStart = s.LineStart
			span.ColumnStart = s.ColumnStart
			span.SuggestionApplicability = s.SuggestionApplicability
		}
		out = append(out, Diagnostic{
			Path:     span.FileName,
			Line:     span.LineStart,
			Col:      span.ColumnStart,
			Rule:     "clippy/" + m.Message.Code.Code,
			Message:  diagMessage(span.FileName, span.LineStart, span.ColumnStart, m.Message.Message),
			Enforced: span.SuggestionApplicability == "MachineApplicable",
		})
	}
	return out
}
