package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/armon/circbuf"
)

// mcpLogCapacity bounds the in-memory ring buffer that keeps the most recent
// mcp.log lines, the same bounded-writer pattern as the external linter
// adapter's stderr tail buffer (C6). The mcp.log file itself has no size
// limit.
const mcpLogCapacity = 1 << 20 // 1 MiB

// cacheWriter owns dictator's on-disk MCP cache directory: mcp.log
// (append-only, not size-limited), client.txt, and per-dictate-call fix logs.
type cacheWriter struct {
	mu   sync.Mutex
	dir  string
	buf  *circbuf.Buffer
	file *os.File
}

func newCacheWriter(cwd string) (*cacheWriter, error) {
	dir := filepath.Join(cwd, ".dictator", "cache")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	buf, err := circbuf.NewBuffer(mcpLogCapacity)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "mcp.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &cacheWriter{dir: dir, buf: buf, file: f}, nil
}

func (c *cacheWriter) writeLogLine(line string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.buf.Write([]byte(line + "\n"))
	if c.file != nil {
		_, _ = c.file.WriteString(line + "\n")
	}
}

// writeClientInfo records the connecting client's identity to client.txt,
// overwriting any previous session's record.
func (c *cacheWriter) writeClientInfo(name, version string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = os.WriteFile(filepath.Join(c.dir, "client.txt"), []byte(name+" "+version+"\n"), 0o600)
}

// writeFixLog writes a detail log for one dictate invocation and returns
// its path, or "" if there was nothing to log or the write failed.
func (c *cacheWriter) writeFixLog(lines []string) string {
	if c == nil || len(lines) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	path := filepath.Join(c.dir, fmt.Sprintf("dictator-fixes-%d.log", time.Now().Unix()))
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		return ""
	}
	return path
}
