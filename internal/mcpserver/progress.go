package mcpserver

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// progressTracker issues and tracks progress tokens per §4.9: format
// "{op}-{unix_ts}-{counter}", monotonically non-decreasing progress per
// token, clamped at total, evicted after 10 minutes of inactivity.
type progressTracker struct {
	mu      sync.Mutex
	counter int
	seen    map[string]time.Time
}

func newProgressTracker() *progressTracker {
	return &progressTracker{seen: make(map[string]time.Time)}
}

func (p *progressTracker) newToken(op string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter++
	token := fmt.Sprintf("%s-%d-%d", op, time.Now().Unix(), p.counter)
	p.seen[token] = time.Now()
	return token
}

func (p *progressTracker) touch(token string) {
	p.mu.Lock()
	p.seen[token] = time.Now()
	p.mu.Unlock()
}

func (p *progressTracker) sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()
	cutoff := time.Now().Add(-10 * time.Minute)
	for token, last := range p.seen {
		if last.Before(cutoff) {
			delete(p.seen, token)
		}
	}
}

func (p *progressTracker) startSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.sweep()
			}
		}
	}()
}

// emit sends a notifications/progress update, clamping progress at total.
func (p *progressTracker) emit(s *Server, token string, progress, total int) {
	p.touch(token)
	if progress > total {
		progress = total
	}
	s.notify(context.Background(), "notifications/progress", map[string]any{
		"progressToken": token,
		"progress":      progress,
		"total":         total,
	})
}

// finish sends the final progress==total notification.
func (p *progressTracker) finish(s *Server, token string, total int) {
	p.emit(s, token, total, total)
}
