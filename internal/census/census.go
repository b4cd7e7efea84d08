// Package census builds the loaded-decree and external-linter snapshot
// shared by the `census` CLI command and the MCP server's
// dictator://census resource, so both surfaces report identical state.
package census

import (
	"os/exec"
	"strings"

	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/regime"
)

// Decree is one loaded decree's census entry.
type Decree struct {
	Name       string   `json:"name"`
	Enabled    bool     `json:"enabled"`
	Extensions []string `json:"extensions"`
	Filenames  []string `json:"filenames"`
}

// LinterStatus is the tri-state presentation recovered from
// original_source's census.rs: a decree's external linter integration is
// either explicitly wired, available on PATH but not wired, or absent
// entirely.
type LinterStatus string

const (
	// StatusConfigured means a [decree.<name>].linter.command is set and
	// its binary resolves on PATH.
	StatusConfigured LinterStatus = "configured"
	// StatusAvailable means no linter.command is set, but the decree's
	// conventional external linter binary resolves on PATH anyway.
	StatusAvailable LinterStatus = "available"
	// StatusNotFound means neither a configured command nor the
	// conventional binary resolves.
	StatusNotFound LinterStatus = "not-found"
)

// Linter is one decree's external-linter census entry.
type Linter struct {
	Name    string       `json:"name"`
	Command string       `json:"command"`
	Status  LinterStatus `json:"status"`
}

// Snapshot is the full census: every loaded decree split by native/WASM
// origin, plus external linter status per decree.
type Snapshot struct {
	ConfigPresent   bool     `json:"configPresent"`
	NativeDecrees   []Decree `json:"nativeDecrees"`
	WasmDecrees     []Decree `json:"wasmDecrees"`
	ExternalLinters []Linter `json:"externalLinters"`
}

// conventionalLinters names the external linter binary a decree falls
// back to probing for when it has no explicit linter.command.
var conventionalLinters = map[string]string{
	"ruby":       "rubocop",
	"typescript": "eslint",
	"python":     "ruff",
	"golang":     "golangci-lint",
	"rust":       "clippy-driver",
}

// Build inspects cfg and reg and produces a full census snapshot.
// configPresent indicates whether a .dictate.toml was actually loaded
// (vs. built-in defaults).
func Build(cfg *config.DictateConfig, reg *regime.Regime, configPresent bool) Snapshot {
	snap := Snapshot{ConfigPresent: configPresent}
	if reg == nil {
		return snap
	}

	for _, d := range reg.Decrees() {
		meta := d.Metadata()
		entry := Decree{Name: d.Name(), Enabled: true, Extensions: meta.Extensions, Filenames: meta.Filenames}
		isWasm := false
		if cfg != nil {
			if settings, ok := cfg.Decree[d.Name()]; ok && settings.Path != nil {
				isWasm = strings.HasSuffix(*settings.Path, ".wasm")
			}
		}
		if isWasm {
			snap.WasmDecrees = append(snap.WasmDecrees, entry)
		} else {
			snap.NativeDecrees = append(snap.NativeDecrees, entry)
		}

		snap.ExternalLinters = append(snap.ExternalLinters, linterStatus(d.Name(), cfg))
	}
	return snap
}

func linterStatus(name string, cfg *config.DictateConfig) Linter {
	var command string
	if cfg != nil {
		if settings, ok := cfg.Decree[name]; ok && settings.Linter != nil {
			command = settings.Linter.Command
		}
	}

	if command != "" {
		if binaryAvailable(command) {
			return Linter{Name: name, Command: command, Status: StatusConfigured}
		}
		return Linter{Name: name, Command: command, Status: StatusNotFound}
	}

	if fallback, ok := conventionalLinters[name]; ok && binaryAvailable(fallback) {
		return Linter{Name: name, Command: fallback, Status: StatusAvailable}
	}
	return Linter{Name: name, Status: StatusNotFound}
}

func binaryAvailable(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, err := exec.LookPath(fields[0])
	return err == nil
}
