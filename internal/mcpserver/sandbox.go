package mcpserver

import "context"

type sandboxStateUpdateParams struct {
	SandboxPolicy string `json:"sandbox_policy"`
}

// handleSandboxStateUpdate applies the Codex sandbox extension: read-only
// clears write-capable tools and triggers a tools/list_changed notification.
func (s *Server) handleSandboxStateUpdate(p *sandboxStateUpdateParams) {
	changed := s.sess.applySandboxPolicy(sandboxPolicy(p.SandboxPolicy))
	if changed {
		s.notify(context.Background(), "notifications/tools/list_changed", map[string]any{})
	}
}
