package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/jsonrpc2"

	"github.com/seuros/dictator/internal/bootstrap"
	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/fixer"
	"github.com/seuros/dictator/internal/linteradapter"
	"github.com/seuros/dictator/internal/processor"
	"github.com/seuros/dictator/internal/regime"
)

type tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type toolsListParams struct{}

type toolsListResult struct {
	Tools []tool `json:"tools"`
}

// availableTools computes the dynamic tool list per §4.9's rules: occupy
// alone when unconfigured-and-writable; otherwise stalint plus the
// watch/unwatch pair, plus dictator when writable in a Git repo.
func (s *Server) availableTools() []tool {
	s.sess.mu.Lock()
	defer s.sess.mu.Unlock()

	if !s.sess.hasConfig() && s.sess.canWrite {
		return []tool{occupyTool()}
	}

	tools := []tool{stalintTool()}
	if s.sess.watching {
		tools = append(tools, stalintUnwatchTool())
	} else {
		tools = append(tools, stalintWatchTool())
	}

	if s.sess.canWrite && s.sess.isGitRepo() {
		tools = append(tools, dictatorTool(s.anyExternalLinterConfigured()))
	}

	return tools
}

func (s *Server) anyExternalLinterConfigured() bool {
	if s.sess.cfg == nil {
		return false
	}
	for _, d := range s.sess.cfg.Decree {
		if d.Linter != nil && d.Linter.Command != "" {
			if _, err := exec.LookPath(firstWord(d.Linter.Command)); err == nil {
				return true
			}
		}
	}
	return false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

func occupyTool() tool {
	return tool{
		Name:        "occupy",
		Description: "Write the default .dictate.toml into the current directory.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}
}

func stalintTool() tool {
	return tool{
		Name:        "stalint",
		Description: "Lint files and return structured diagnostics, paginated.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"paths":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"limit":  map[string]any{"type": "integer"},
				"cursor": map[string]any{"type": "string"},
			},
		},
	}
}

func dictatorTool(supremeCourtAvailable bool) tool {
	modes := []string{"kimjongrails"}
	if supremeCourtAvailable {
		modes = append(modes, "supremecourt")
	}
	return tool{
		Name:        "dictator",
		Description: "Auto-fix files in place, summarized by rule. kimjongrails applies dictator's own hygiene fixer; supremecourt defers to each file's configured external linter instead.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"paths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"mode":  map[string]any{"type": "string", "enum": modes},
			},
			"required": []string{"paths"},
		},
	}
}

func stalintWatchTool() tool {
	return tool{
		Name:        "stalint_watch",
		Description: "Begin watching paths for changes and report violations asynchronously.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"paths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}}},
			"required":   []string{"paths"},
		},
	}
}

func stalintUnwatchTool() tool {
	return tool{
		Name:        "stalint_unwatch",
		Description: "Stop watching previously-watched paths.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}
}

func (s *Server) handleToolsList(_ *toolsListParams) (any, error) {
	return &toolsListResult{Tools: s.availableTools()}, nil
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolsCallResult struct {
	Content           []toolContent  `json:"content"`
	StructuredContent map[string]any `json:"structuredContent,omitempty"`
	IsError           bool           `json:"isError,omitempty"`
}

func textResult(msg string) *toolsCallResult {
	return &toolsCallResult{Content: []toolContent{{Type: "text", Text: msg}}}
}

func (s *Server) handleToolsCall(p *toolsCallParams) (any, error) {
	switch p.Name {
	case "occupy":
		return s.callOccupy()
	case "stalint":
		return s.callStalint(p.Arguments)
	case "dictator":
		return s.callDictator(p.Arguments)
	case "stalint_watch":
		return s.callStalintWatch(p.Arguments)
	case "stalint_unwatch":
		return s.callStalintUnwatch()
	default:
		return nil, jsonrpc2.NewError(int64(errMethodNotFound), "unknown tool: "+p.Name)
	}
}

func (s *Server) callOccupy() (any, error) {
	s.sess.mu.Lock()
	defer s.sess.mu.Unlock()

	if s.sess.hasConfig() {
		return textResult("a .dictate.toml already exists here; nothing to do."), nil
	}

	if _, err := os.Stat(s.sess.cwd); err != nil {
		return nil, jsonrpc2.NewError(-32603, "cwd inaccessible: "+err.Error())
	}

	if err := writeOccupyFiles(s.sess.cwd, false); err != nil {
		return nil, jsonrpc2.NewError(-32603, err.Error())
	}

	s.sess.loadConfig()
	s.notify(context.Background(), "notifications/tools/list_changed", map[string]any{})

	return textResult(".dictate.toml created. Configure [decree.*] tables, then call stalint to lint."), nil
}

// resolveAgainstCWD implements §4.9's path-security check: canonicalize
// and require a cwd prefix. Returns the rejected paths (empty = all ok).
func resolveAgainstCWD(cwd string, paths []string) (resolved []string, rejected []string) {
	absCWD, err := filepath.Abs(cwd)
	if err != nil {
		return nil, paths
	}
	for _, p := range paths {
		joined := p
		if !filepath.IsAbs(joined) {
			joined = filepath.Join(cwd, joined)
		}
		clean := filepath.Clean(joined)
		if clean != absCWD && !strings.HasPrefix(clean, absCWD+string(filepath.Separator)) {
			rejected = append(rejected, p)
			continue
		}
		resolved = append(resolved, clean)
	}
	return resolved, rejected
}

type stalintViolation struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Col      int    `json:"col,omitempty"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Enforced bool   `json:"enforced"`
	Snippet  string `json:"snippet,omitempty"`
}

func (s *Server) callStalint(args map[string]any) (any, error) {
	s.sess.mu.Lock()
	defer s.sess.mu.Unlock()

	limit := 10
	if v, ok := args["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	var offset int
	var results []stalintViolation

	if cursor, ok := args["cursor"].(string); ok && cursor != "" {
		if len(s.sess.pagedResults) == 0 && len(s.sess.pagedPaths) == 0 {
			return nil, jsonrpc2.NewError(int64(errInvalidParams), "cursor given with no stored paths")
		}
		decoded, err := base64.StdEncoding.DecodeString(cursor)
		if err != nil {
			return nil, jsonrpc2.NewError(int64(errInvalidParams), "malformed cursor")
		}
		n, err := strconv.Atoi(string(decoded))
		if err != nil {
			return nil, jsonrpc2.NewError(int64(errInvalidParams), "malformed cursor")
		}
		offset = n
		results = s.sess.pagedResults
	} else {
		rawPaths := toStringSlice(args["paths"])
		if len(rawPaths) == 0 {
			return nil, jsonrpc2.NewError(int64(errInvalidParams), "paths is required on first call")
		}
		results = s.lintToStalintViolations(rawPaths, len(rawPaths) == 1)
		s.sess.pagedPaths = rawPaths
		s.sess.pagedResults = results
	}

	total := len(results)
	end := offset + limit
	if end > total {
		end = total
	}
	page := results[min(offset, total):end]

	out := map[string]any{
		"total":      total,
		"returned":   len(page),
		"violations": page,
	}
	if end < total {
		out["nextCursor"] = base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(end)))
	}

	return &toolsCallResult{
		Content:           []toolContent{{Type: "text", Text: fmt.Sprintf("%d of %d diagnostics", len(page), total)}},
		StructuredContent: out,
	}, nil
}

func (s *Server) lintToStalintViolations(paths []string, singleFile bool) []stalintViolation {
	if s.sess.reg == nil {
		return nil
	}
	var diags []stalintViolation
	chain := processor.Default()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		findings := processor.FromDiagnostics(path, s.sess.reg.EnforceOne(regime.Source{Path: path, Text: string(data)}))
		ctx := processor.NewContext(map[string][]byte{path: data})
		findings = chain.Process(findings, ctx)
		for _, f := range findings {
			v := stalintViolation{
				Line:     f.Line,
				Col:      f.Col,
				Rule:     f.Rule,
				Message:  f.Message,
				Enforced: f.Enforced,
				Snippet:  f.Snippet,
			}
			if !singleFile {
				v.File = f.Path
			}
			diags = append(diags, v)
		}
	}
	return diags
}

func (s *Server) callDictator(args map[string]any) (any, error) {
	s.sess.mu.Lock()
	paths := toStringSlice(args["paths"])
	cwd := s.sess.cwd
	cfg := s.sess.cfg
	reg := s.sess.reg
	s.sess.mu.Unlock()

	mode, _ := args["mode"].(string)
	if mode == "" {
		mode = "kimjongrails"
	}
	if mode != "kimjongrails" && mode != "supremecourt" {
		return nil, jsonrpc2.NewError(int64(errInvalidParams), "unknown mode: "+mode)
	}

	resolved, rejected := resolveAgainstCWD(cwd, paths)
	if len(rejected) > 0 {
		return nil, jsonrpc2.NewError(int64(errInvalidParams), "paths outside cwd: "+strings.Join(rejected, ", "))
	}

	token := s.progress.newToken("dictator")
	var changed int
	var byRule map[string]int
	var logLines []string

	if mode == "supremecourt" {
		changed, byRule, logLines = s.runSupremeCourt(context.Background(), token, resolved, cfg, reg)
	} else {
		changed, byRule, logLines = s.runKimJongRails(token, resolved)
	}
	s.progress.finish(s, token, len(resolved))

	logPath := s.cache.writeFixLog(logLines)

	var b strings.Builder
	fmt.Fprintf(&b, "dictator (%s): %d file(s) changed\n", mode, changed)
	for rule, n := range byRule {
		fmt.Fprintf(&b, "  %s: %d\n", rule, n)
	}
	if logPath != "" {
		fmt.Fprintf(&b, "detail log: %s\n", logPath)
	}

	return textResult(b.String()), nil
}

// runKimJongRails applies dictator's own deterministic whitespace fixer
// (§4.7) to each path, writing back only what actually changed.
func (s *Server) runKimJongRails(token string, paths []string) (changed int, byRule map[string]int, logLines []string) {
	byRule = map[string]int{}
	for i, path := range paths {
		s.progress.emit(s, token, i, len(paths))
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fixed := fixer.Fix(data)
		if string(fixed) != string(data) {
			if err := os.WriteFile(path, fixed, 0o644); err == nil { //nolint:gosec // rewriting files the tool was asked to fix
				changed++
				byRule["supreme/hygiene"]++
				logLines = append(logLines, path+": hygiene normalized")
			}
		}
	}
	return changed, byRule, logLines
}

// runSupremeCourt delegates to each file's configured external linter
// (§4.6/GLOSSARY "supremecourt") via internal/linteradapter instead of
// dictator's own hygiene fixer: paths are grouped by their decree's
// configured [decree.<name>].linter.command and handed to the external
// tool in one invocation per command, letting that tool's own --fix/-A
// flags (applied by linteradapter's hostArgs) do the rewriting.
func (s *Server) runSupremeCourt(ctx context.Context, token string, paths []string, cfg *config.DictateConfig, reg *regime.Regime) (changed int, byRule map[string]int, logLines []string) {
	byRule = map[string]int{}
	if cfg == nil || reg == nil {
		return 0, byRule, nil
	}

	groups := groupByLinterCommand(paths, cfg, reg)
	done := 0
	for command, group := range groups {
		before := map[string][]byte{}
		for _, p := range group {
			if data, err := os.ReadFile(p); err == nil {
				before[p] = data
			}
		}

		diags, err := linteradapter.Run(ctx, strings.Fields(command), group)
		if err != nil {
			logLines = append(logLines, fmt.Sprintf("%s: %v", command, err))
		}
		for _, d := range diags {
			byRule[d.Rule]++
			logLines = append(logLines, d.Message)
		}

		for _, p := range group {
			after, readErr := os.ReadFile(p)
			if readErr != nil {
				continue
			}
			if prior, ok := before[p]; ok && string(prior) != string(after) {
				changed++
			}
		}

		done += len(group)
		s.progress.emit(s, token, done, len(paths))
	}
	return changed, byRule, logLines
}

// groupByLinterCommand buckets paths by the linter.command configured for
// the decree that owns each path's extension, skipping any path whose
// decree has no external linter configured.
func groupByLinterCommand(paths []string, cfg *config.DictateConfig, reg *regime.Regime) map[string][]string {
	groups := map[string][]string{}
	for _, p := range paths {
		name := decreeForPath(p, reg)
		if name == "" {
			continue
		}
		settings, ok := cfg.Decree[name]
		if !ok || settings.Linter == nil || settings.Linter.Command == "" {
			continue
		}
		groups[settings.Linter.Command] = append(groups[settings.Linter.Command], p)
	}
	return groups
}

// decreeForPath returns the name of the non-universal decree whose
// extensions include path's, or "" if none matches.
func decreeForPath(path string, reg *regime.Regime) string {
	if reg == nil {
		return ""
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, d := range reg.Decrees() {
		meta := d.Metadata()
		if meta.IsUniversal() {
			continue
		}
		for _, e := range meta.Extensions {
			if strings.ToLower(e) == ext {
				return d.Name()
			}
		}
	}
	return ""
}

func (s *Server) callStalintWatch(args map[string]any) (any, error) {
	s.sess.mu.Lock()
	defer s.sess.mu.Unlock()

	paths := toStringSlice(args["paths"])
	resolved, rejected := resolveAgainstCWD(s.sess.cwd, paths)
	if len(rejected) > 0 {
		return nil, jsonrpc2.NewError(int64(errInvalidParams), "paths outside cwd: "+strings.Join(rejected, ", "))
	}

	s.sess.watching = true
	s.sess.watchedPaths = resolved
	s.sess.dirty = true
	s.sess.lastCheck = time.Now()
	s.sess.startFSWatcher(resolved, s.markDirty)

	s.notify(context.Background(), "notifications/tools/list_changed", map[string]any{})

	return textResult("watching: " + strings.Join(resolved, ", ")), nil
}

func (s *Server) callStalintUnwatch() (any, error) {
	s.sess.mu.Lock()
	s.sess.watching = false
	s.sess.watchedPaths = nil
	s.sess.stopFSWatcher()
	s.sess.mu.Unlock()

	s.notify(context.Background(), "notifications/tools/list_changed", map[string]any{})

	return textResult("watch stopped."), nil
}

func toStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// writeOccupyFiles delegates to the shared bootstrap package so the CLI's
// occupy command and this tool can never drift.
func writeOccupyFiles(dir string, force bool) error {
	return bootstrap.WriteOccupyFiles(dir, force)
}
