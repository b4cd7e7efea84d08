package mcpserver

import (
	"context"
	"os"
	"time"

	"github.com/seuros/dictator/internal/processor"
	"github.com/seuros/dictator/internal/regime"
)

// startWatchLoop runs the MCP-internal watch background task (§4.9): wakes
// every 10 seconds, and if dirty with at least 60 seconds since the last
// check, re-lints the stored paths and reports violations at level warning.
func (s *Server) startWatchLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.watchTick()
			}
		}
	}()
}

func (s *Server) watchTick() {
	s.sess.mu.Lock()
	if !s.sess.watching || !s.sess.dirty || time.Since(s.sess.lastCheck) < 60*time.Second {
		s.sess.mu.Unlock()
		return
	}
	s.sess.dirty = false
	s.sess.lastCheck = time.Now()
	paths := append([]string(nil), s.sess.watchedPaths...)
	reg := s.sess.reg
	s.sess.mu.Unlock()

	if reg == nil {
		return
	}

	chain := processor.Default()
	var all []processor.Finding
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		findings := processor.FromDiagnostics(path, reg.EnforceOne(regime.Source{Path: path, Text: string(data)}))
		ctx := processor.NewContext(map[string][]byte{path: data})
		all = append(all, chain.Process(findings, ctx)...)
	}

	if len(all) == 0 {
		return
	}

	violations := make([]map[string]any, 0, len(all))
	for _, f := range all {
		violations = append(violations, map[string]any{
			"file": f.Path, "line": f.Line, "col": f.Col,
			"rule": f.Rule, "message": f.Message, "enforced": f.Enforced,
		})
	}
	s.logMessage(levelWarning, "watch", map[string]any{
		"message":    "violations found in watched files",
		"violations": violations,
	})
}

// markDirty is the notify callback a filesystem watcher invokes on any
// change under a watched path.
func (s *Server) markDirty() {
	s.sess.mu.Lock()
	s.sess.dirty = true
	s.sess.mu.Unlock()
}
