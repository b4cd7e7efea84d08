package mcpserver

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestHandleSetLevel_KnownLevel(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.handleSetLevel(&setLevelParams{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.sess.mu.Lock()
	got := s.sess.logLevel
	s.sess.mu.Unlock()
	if got != levelDebug {
		t.Errorf("expected levelDebug, got %v", got)
	}
}

func TestHandleSetLevel_UnknownLevelIgnored(t *testing.T) {
	s := New(t.TempDir())
	before := s.sess.logLevel
	_, err := s.handleSetLevel(&setLevelParams{Level: "bogus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.sess.logLevel != before {
		t.Errorf("expected level unchanged for unknown input, got %v", s.sess.logLevel)
	}
}

func TestDefaultLogLevelIsWarning(t *testing.T) {
	s := New(t.TempDir())
	if s.sess.logLevel != levelWarning {
		t.Errorf("expected default level warning, got %v", s.sess.logLevel)
	}
}

func TestLogRateLimiter_CapsAtCapacity(t *testing.T) {
	l := newLogRateLimiter()
	allowed := 0
	for i := 0; i < 200; i++ {
		if l.allow() {
			allowed++
		}
	}
	if allowed > 101 {
		t.Errorf("expected roughly capacity (100) allowed in a tight burst, got %d", allowed)
	}
	if allowed < 99 {
		t.Errorf("expected close to full capacity allowed, got %d", allowed)
	}
}

func TestLogrusToRFC5424(t *testing.T) {
	// sanity: warning maps to warning, debug to debug.
	if logrusToRFC5424(logrus.WarnLevel) != levelWarning {
		t.Error("expected warning mapping")
	}
	if logrusToRFC5424(logrus.DebugLevel) != levelDebug {
		t.Error("expected debug mapping")
	}
}

func logrusToRFC5424FromString(s string) rfc5424Level {
	lvl, ok := levelNames[s]
	if !ok {
		return levelWarning
	}
	return lvl
}
