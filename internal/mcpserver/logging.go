package mcpserver

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// rfc5424Level is one of the 8 RFC 5424 syslog severities, client-settable
// via logging/setLevel. Lower numeric value is more severe.
type rfc5424Level int

const (
	levelEmergency rfc5424Level = iota
	levelAlert
	levelCritical
	levelError
	levelWarning
	levelNotice
	levelInfo
	levelDebug
)

var levelNames = map[string]rfc5424Level{
	"emergency": levelEmergency,
	"alert":     levelAlert,
	"critical":  levelCritical,
	"error":     levelError,
	"warning":   levelWarning,
	"notice":    levelNotice,
	"info":      levelInfo,
	"debug":     levelDebug,
}

var levelStrings = map[rfc5424Level]string{
	levelEmergency: "emergency",
	levelAlert:     "alert",
	levelCritical:  "critical",
	levelError:     "error",
	levelWarning:   "warning",
	levelNotice:    "notice",
	levelInfo:      "info",
	levelDebug:     "debug",
}

// logrusToRFC5424 maps logrus's 7 levels onto the RFC 5424 scale. logrus
// has no "notice" equivalent: on the logrus side notice is folded into
// info, but the MCP wire format preserves notice verbatim when a caller
// asks for it directly via notify at that level.
func logrusToRFC5424(l logrus.Level) rfc5424Level {
	switch l {
	case logrus.PanicLevel:
		return levelEmergency
	case logrus.FatalLevel:
		return levelAlert
	case logrus.ErrorLevel:
		return levelError
	case logrus.WarnLevel:
		return levelWarning
	case logrus.InfoLevel:
		return levelInfo
	case logrus.DebugLevel, logrus.TraceLevel:
		return levelDebug
	default:
		return levelInfo
	}
}

type setLevelParams struct {
	Level string `json:"level"`
}

func (s *Server) handleSetLevel(p *setLevelParams) (any, error) {
	lvl, ok := levelNames[p.Level]
	if !ok {
		return nil, nil //nolint:nilnil // unknown level: ignore per spec silence on invalid input
	}
	s.sess.mu.Lock()
	s.sess.logLevel = lvl
	s.sess.mu.Unlock()
	return map[string]any{}, nil
}

// logRateLimiter is a token bucket: capacity 100, refilled continuously
// over a 10 second window.
type logRateLimiter struct {
	mu        sync.Mutex
	tokens    float64
	capacity  float64
	rate      float64 // tokens per second
	lastCheck time.Time
}

func newLogRateLimiter() *logRateLimiter {
	return &logRateLimiter{
		tokens:    100,
		capacity:  100,
		rate:      100.0 / 10.0,
		lastCheck: time.Now(),
	}
}

func (l *logRateLimiter) allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	elapsed := now.Sub(l.lastCheck).Seconds()
	l.lastCheck = now
	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// logMessage sends notifications/message if lvl is at or above the
// client-set threshold (lower numeric value = more severe, so "at or
// above" means lvl's value <= the configured threshold) and the rate
// limiter allows it.
func (s *Server) logMessage(lvl rfc5424Level, logger string, data map[string]any) {
	s.sess.mu.Lock()
	threshold := s.sess.logLevel
	s.sess.mu.Unlock()

	if lvl > threshold {
		return
	}
	if !s.logs.allow() {
		return
	}

	s.notify(context.Background(), "notifications/message", map[string]any{
		"level":  levelStrings[lvl],
		"logger": logger,
		"data":   data,
	})
}

// cacheHook mirrors every logrus entry into .dictator/cache/mcp.log.
type cacheHook struct {
	cache *cacheWriter
}

func (h cacheHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h cacheHook) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return nil
	}
	h.cache.writeLogLine(line)
	return nil
}
