package mcpserver

import (
	"context"
	"testing"

	"golang.org/x/exp/jsonrpc2"
)

func TestHandle_UnknownMethodReturnsMethodNotFound(t *testing.T) {
	s := New(t.TempDir())
	s.log.Out = discardWriter{}
	_, err := s.handle(context.Background(), &jsonrpc2.Request{Method: "bogus/method"})
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestHandle_DelegatesToDispatchForKnownMethod(t *testing.T) {
	s := New(t.TempDir())
	s.log.Out = discardWriter{}
	res, err := s.handle(context.Background(), &jsonrpc2.Request{Method: "shutdown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected non-nil result for shutdown")
	}
}

func TestHandle_NotificationsYieldNilResultAndError(t *testing.T) {
	s := New(t.TempDir())
	s.log.Out = discardWriter{}
	for _, method := range []string{"initialized", "exit"} {
		res, err := s.handle(context.Background(), &jsonrpc2.Request{Method: method})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", method, err)
		}
		if res != nil {
			t.Errorf("%s: expected nil result, got %v", method, res)
		}
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
