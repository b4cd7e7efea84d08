package mcpserver

import (
	"strconv"
	"strings"

	"golang.org/x/exp/jsonrpc2"

	"github.com/seuros/dictator/internal/version"
)

func versionString() string {
	return version.RawVersion()
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ClientInfo      clientInfo `json:"clientInfo"`
	Capabilities    any        `json:"capabilities"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Title   string `json:"title"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

// minClientVersions enumerates clients dictator refuses below a minimum
// version. Unknown clients are always allowed.
var minClientVersions = map[string][3]int{
	"claude-code":      {2, 0, 56},
	"codex-mcp-client": {0, 63, 0},
}

func (s *Server) handleInitialize(params *initializeParams) (any, error) {
	if min, known := minClientVersions[params.ClientInfo.Name]; known {
		got := parseVersionTriple(params.ClientInfo.Version)
		if versionLess(got, min) {
			return nil, jsonrpc2.NewError(-32600, "client "+params.ClientInfo.Name+" version "+params.ClientInfo.Version+" is too old, minimum supported version is "+minVersionString(min))
		}
	}

	s.sess.mu.Lock()
	s.sess.clientName = params.ClientInfo.Name
	s.sess.clientVersion = params.ClientInfo.Version
	s.sess.mu.Unlock()

	s.cache.writeClientInfo(params.ClientInfo.Name, params.ClientInfo.Version)
	s.sess.loadConfig()

	return &initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: map[string]any{
			"tools": map[string]any{"listChanged": true},
			"resources": map[string]any{},
			"logging":   map[string]any{},
			"experimental": map[string]any{
				"codex/sandbox-state": "1.0.0",
			},
		},
		ServerInfo: serverInfo{
			Name:    serverName,
			Version: versionString(),
			Title:   "dictator",
		},
	}, nil
}

// parseVersionTriple parses a dotted numeric version string into a 3-tuple,
// defaulting missing or unparseable components to 0.
func parseVersionTriple(v string) [3]int {
	var out [3]int
	parts := strings.SplitN(v, ".", 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimFunc(parts[i], func(r rune) bool {
			return r < '0' || r > '9'
		}))
		if err == nil {
			out[i] = n
		}
	}
	return out
}

func minVersionString(v [3]int) string {
	return strconv.Itoa(v[0]) + "." + strconv.Itoa(v[1]) + "." + strconv.Itoa(v[2])
}

func versionLess(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
