// Package version exposes build and runtime version information for the
// CLI's "version" output and the MCP server's handshake.
package version

import (
	"runtime"
	"runtime/debug"
	"slices"

	"github.com/seuros/dictator/internal/decree"
)

var version = "dev"

// Version returns the current version string with the decree ABI suffix.
func Version() string {
	return version + " (decree-abi " + decree.ABIVersion + ")"
}

// RawVersion returns the semantic version string without any suffix.
func RawVersion() string {
	return version
}

// GoVersion returns the Go toolchain version used for the build.
func GoVersion() string {
	return runtime.Version()
}

// readBuildInfo reads debug.ReadBuildInfo once and extracts the wazero
// runtime version (informational, since WASM decree support depends on it)
// and the VCS revision.
func readBuildInfo() (wazeroVersion, commit string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	if idx := slices.IndexFunc(info.Deps, func(dep *debug.Module) bool {
		return dep.Path == "github.com/tetratelabs/wazero"
	}); idx >= 0 {
		wazeroVersion = info.Deps[idx].Version
	}
	if idx := slices.IndexFunc(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); idx >= 0 {
		val := info.Settings[idx].Value
		if len(val) > 12 {
			commit = val[:12]
		} else {
			commit = val
		}
	}
	return wazeroVersion, commit
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version       string   `json:"version"`
	ABIVersion    string   `json:"abiVersion"`
	WazeroVersion string   `json:"wazeroVersion,omitempty"`
	Platform      Platform `json:"platform"`
	GoVersion     string   `json:"goVersion"`
	GitCommit     string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	wazeroVersion, commit := readBuildInfo()
	return Info{
		Version:       RawVersion(),
		ABIVersion:    decree.ABIVersion,
		WazeroVersion: wazeroVersion,
		Platform: Platform{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		GoVersion: GoVersion(),
		GitCommit: commit,
	}
}
