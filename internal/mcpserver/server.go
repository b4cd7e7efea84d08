// Package mcpserver implements dictator's MCP (Model Context Protocol)
// server: newline-delimited JSON-RPC 2.0 over stdio, exposing tools and
// resources for structural linting from an editor/agent client.
//
// Transport and dispatch shape are adapted from the teacher's LSP server
// (golang.org/x/exp/jsonrpc2 over an io.Pipe-backed stdio connection, a
// generic unmarshalAndCall[T] request helper built on encoding/json/v2),
// generalized from LSP methods to MCP methods.
package mcpserver

import (
	stdjson "encoding/json"
	"fmt"
	"os"

	"context"

	jsonv2 "encoding/json/v2"

	"golang.org/x/exp/jsonrpc2"

	"github.com/sirupsen/logrus"
)

const (
	protocolVersion = "2025-06-18"
	serverName      = "dictator"
)

var jsonNull = stdjson.RawMessage("null")

// Server is dictator's MCP server.
type Server struct {
	conn *jsonrpc2.Connection
	sess *session
	log  *logrus.Logger

	cache *cacheWriter

	progress *progressTracker
	logs     *logRateLimiter
}

// New creates a server rooted at cwd.
func New(cwd string) *Server {
	cache, err := newCacheWriter(cwd)
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if err == nil {
		logger.AddHook(cacheHook{cache: cache})
	}

	s := &Server{
		sess:     newSession(cwd),
		log:      logger,
		cache:    cache,
		progress: newProgressTracker(),
		logs:     newLogRateLimiter(),
	}
	return s
}

// RunStdio starts the server on stdin/stdout. Blocks until the connection
// closes or ctx is cancelled.
func (s *Server) RunStdio(ctx context.Context) error {
	conn, err := jsonrpc2.Dial(ctx, stdioDialer{}, &serverBinder{server: s})
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	s.progress.startSweeper(ctx)
	s.startWatchLoop(ctx)

	return conn.Wait()
}

type serverBinder struct {
	server *Server
}

func (b *serverBinder) Bind(_ context.Context, conn *jsonrpc2.Connection) (jsonrpc2.ConnectionOptions, error) {
	b.server.conn = conn
	return jsonrpc2.ConnectionOptions{
		Framer:  jsonrpc2.HeaderFramer(),
		Handler: jsonrpc2.HandlerFunc(b.server.handle),
	}, nil
}

// handle dispatches incoming JSON-RPC messages. A panicking handler must
// not crash the process: it is caught here and reported as an internal
// error on that one request.
func (s *Server) handle(ctx context.Context, req *jsonrpc2.Request) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("method", req.Method).WithField("panic", r).Error("mcp: handler panic recovered")
			result = nil
			err = jsonrpc2.NewError(-32603, fmt.Sprintf("internal error handling %s", req.Method))
		}
	}()
	return s.dispatch(ctx, req)
}

// dispatch performs the actual method routing; split from handle so the
// panic-recovery defer above wraps every case uniformly.
func (s *Server) dispatch(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "initialize":
		return unmarshalAndCall(req, s.handleInitialize)
	case "initialized":
		return nil, nil //nolint:nilnil // MCP: notification, no result
	case "shutdown":
		return jsonNull, nil
	case "exit":
		return nil, nil //nolint:nilnil // MCP: notification, no result

	case "tools/list":
		return unmarshalAndCall(req, s.handleToolsList)
	case "tools/call":
		return unmarshalAndCall(req, s.handleToolsCall)

	case "resources/list":
		return unmarshalAndCall(req, s.handleResourcesList)
	case "resources/read":
		return unmarshalAndCall(req, s.handleResourcesRead)

	case "logging/setLevel":
		return unmarshalAndCall(req, s.handleSetLevel)

	case "notifications/cancelled":
		return nil, unmarshalAndNotify(req, func(p *cancelledParams) {
			s.log.WithField("requestId", p.RequestID).Debug("mcp: cancellation received (best-effort, not preempting)")
		})

	case "codex/sandbox-state/update":
		return nil, unmarshalAndNotify(req, s.handleSandboxStateUpdate)

	default:
		return nil, jsonrpc2.NewError(int64(errMethodNotFound), "method not supported: "+req.Method)
	}
}

type cancelledParams struct {
	RequestID any `json:"requestId"`
}

// errMethodNotFound mirrors the JSON-RPC 2.0 reserved error code.
const errMethodNotFound = -32601

// unmarshalAndCall unmarshals request params into T and calls fn, marshaling
// the result with encoding/json/v2 for consistent wire encoding.
func unmarshalAndCall[T any](req *jsonrpc2.Request, fn func(*T) (any, error)) (any, error) {
	var params T
	if len(req.Params) > 0 {
		if err := jsonv2.Unmarshal(req.Params, &params); err != nil {
			return nil, jsonrpc2.NewError(int64(errInvalidParams), err.Error())
		}
	}
	result, err := fn(&params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return jsonNull, nil
	}
	raw, merr := jsonv2.Marshal(result)
	if merr != nil {
		return nil, merr
	}
	return stdjson.RawMessage(raw), nil
}

// unmarshalAndNotify unmarshals request params into T and calls fn with no
// return value, for fire-and-forget notifications.
func unmarshalAndNotify[T any](req *jsonrpc2.Request, fn func(*T)) error {
	var params T
	if len(req.Params) > 0 {
		if err := jsonv2.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc2.NewError(int64(errInvalidParams), err.Error())
		}
	}
	fn(&params)
	return nil
}

// errInvalidParams mirrors the JSON-RPC 2.0 reserved error code.
const errInvalidParams = -32602

// errResourceNotFound is dictator's convention for an unknown resource URI.
const errResourceNotFound = -32002

// notify pre-marshals params with json/v2 and sends a notification.
func (s *Server) notify(ctx context.Context, method string, params any) {
	if s.conn == nil {
		return
	}
	raw, err := jsonv2.Marshal(params)
	if err != nil {
		return
	}
	_ = s.conn.Notify(ctx, method, stdjson.RawMessage(raw))
}
