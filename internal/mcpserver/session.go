package mcpserver

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/host"
	"github.com/seuros/dictator/internal/regime"
	"github.com/seuros/dictator/internal/watcher"
)

// watchDebounceMs is the debounce window passed to watcher.New for the
// MCP-internal watch loop; it only needs to mark state dirty, not lint
// immediately, so a short window is enough to collapse event bursts.
const watchDebounceMs = 500

// sandboxPolicy mirrors the Codex sandbox_policy enum carried by
// codex/sandbox-state/update notifications.
type sandboxPolicy string

const (
	sandboxReadOnly         sandboxPolicy = "read-only"
	sandboxWorkspaceWrite   sandboxPolicy = "workspace-write"
	sandboxDangerFullAccess sandboxPolicy = "danger-full-access"
)

// session holds all server-side state for one MCP connection: the working
// directory, loaded config/regime, watch state, and stalint pagination.
type session struct {
	mu sync.Mutex

	cwd string

	clientName    string
	clientVersion string

	cfg    *config.DictateConfig
	reg    *regime.Regime
	cfgErr error

	canWrite bool
	policy   sandboxPolicy

	watching     bool
	watchedPaths []string
	dirty        bool
	lastCheck    time.Time
	fsWatcher    *watcher.Watcher

	// stalint pagination: the paths of the most recent call, and the
	// full, already-computed violation list to page through.
	pagedPaths   []string
	pagedResults []stalintViolation

	logLevel rfc5424Level

	progressCounter int

	toolsAnnounced []string
}

func newSession(cwd string) *session {
	return &session{
		cwd:      cwd,
		canWrite: true,
		policy:   sandboxWorkspaceWrite,
		logLevel: levelWarning,
	}
}

// loadConfig (re)loads .dictate.toml from cwd and rebuilds the regime. It is
// lazy: called once on initialize success, and again whenever occupy writes
// a fresh config.
func (s *session) loadConfig() {
	cfg, err := config.Load(s.cwd, "")
	s.cfg = cfg
	s.cfgErr = err
	if err != nil {
		s.reg = regime.New()
		return
	}
	reg, buildErrs := host.BuildRegime(cfg)
	s.reg = reg
	_ = buildErrs // non-fatal per-decree load failures; discarded, and the failed decree is absent from the regime
}

// hasConfig reports whether .dictate.toml exists in cwd.
func (s *session) hasConfig() bool {
	_, err := os.Stat(filepath.Join(s.cwd, config.FileName))
	return err == nil
}

// isGitRepo reports whether cwd looks like a Git worktree.
func (s *session) isGitRepo() bool {
	_, err := os.Stat(filepath.Join(s.cwd, ".git"))
	return err == nil
}

// startFSWatcher subscribes to paths and calls markDirty on every settled
// event, so the 10-second watch loop (watchloop.go) finds dirty=true without
// having to poll the filesystem itself. Any previous watcher is stopped
// first. Failures are non-fatal: the watch tool still reports as watching,
// it simply relies on the next manual stalint call to catch changes.
func (s *session) startFSWatcher(paths []string, markDirty func()) {
	s.stopFSWatcher()

	w, err := watcher.New(s.reg, watchDebounceMs, func(string, string) { markDirty() })
	if err != nil {
		return
	}
	for _, p := range paths {
		root := p
		if info, statErr := os.Stat(p); statErr == nil && !info.IsDir() {
			root = filepath.Dir(p)
		}
		_ = w.Watch(root)
	}
	s.fsWatcher = w
	go w.Run(nil)
}

// stopFSWatcher stops any running filesystem watcher. Safe to call when
// none is running.
func (s *session) stopFSWatcher() {
	if s.fsWatcher != nil {
		s.fsWatcher.Stop()
		s.fsWatcher = nil
	}
}

// applySandboxPolicy updates canWrite per the Codex sandbox extension.
// Returns true if the writable state actually changed (the caller should
// then emit notifications/tools/list_changed).
func (s *session) applySandboxPolicy(p sandboxPolicy) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.canWrite
	s.policy = p
	s.canWrite = p != sandboxReadOnly
	return was != s.canWrite
}
