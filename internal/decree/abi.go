// Package decree defines the contract every dictator rule module implements:
// the Decree interface, its metadata, capability flags, and the diagnostic
// types it produces. Decrees may be built in, loaded from a native dynamic
// library, or instantiated from a WASM component; all three present the same
// interface to the host.
package decree

import (
	"fmt"
	"strconv"
	"strings"
)

// ABIVersion is the ABI version this build of the host implements.
//
// Bumped when the Decree interface or core types change.
// Pre-1.0: exact major.minor match required (0.1.x <-> 0.1.y ok, 0.1.x <-> 0.2.y not).
// Post-1.0: major must match, decree minor <= host minor.
const ABIVersion = "0.1.0"

// FactoryExportName is the well-known symbol name a native dynamic library
// decree exports to construct an instance of itself.
const FactoryExportName = "dictator_create_decree"

// Capability is a flag describing what a decree can do beyond basic linting.
type Capability int

const (
	CapabilityLint Capability = iota
	CapabilityAutoFix
	CapabilityStreaming
	CapabilityRuntimeConfig
	CapabilityRichDiagnostics
)

func (c Capability) String() string {
	switch c {
	case CapabilityLint:
		return "Lint"
	case CapabilityAutoFix:
		return "AutoFix"
	case CapabilityStreaming:
		return "Streaming"
	case CapabilityRuntimeConfig:
		return "RuntimeConfig"
	case CapabilityRichDiagnostics:
		return "RichDiagnostics"
	default:
		return "Unknown"
	}
}

// Metadata describes a decree's identity, version, and what files it handles.
//
// Extensions are compared case-insensitively; callers should keep them
// lowercase. A decree whose Extensions and Filenames are both empty is a
// universal decree: it runs on every file unless shadowed (see the regime
// package).
type Metadata struct {
	ABIVersion     string
	DecreeVersion  string
	Description    string
	Authors        string
	Extensions     []string
	Filenames      []string
	SkipFilenames  []string
	Capabilities   []Capability
}

// IsUniversal reports whether this decree matches every file (subject to
// regime-level shadowing), i.e. it declares no extensions or filenames.
func (m Metadata) IsUniversal() bool {
	return len(m.Extensions) == 0 && len(m.Filenames) == 0
}

// HasCapability reports whether the decree advertises the given capability.
func (m Metadata) HasCapability(cap Capability) bool {
	for _, c := range m.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// ParseVersion parses a "major.minor.patch" string.
func ParseVersion(version string) (major, minor, patch uint64, err error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid version format: %s", version)
	}
	major, err = strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid major: %s", parts[0])
	}
	minor, err = strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid minor: %s", parts[1])
	}
	patch, err = strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid patch: %s", parts[2])
	}
	return major, minor, patch, nil
}

// ValidateABI checks that this decree's ABI version is compatible with the
// host's ABI version, per the pre/post-1.0 policy described on ABIVersion.
func (m Metadata) ValidateABI(hostABIVersion string) error {
	hostMaj, hostMin, _, err := ParseVersion(hostABIVersion)
	if err != nil {
		return err
	}
	decreeMaj, decreeMin, _, err := ParseVersion(m.ABIVersion)
	if err != nil {
		return err
	}

	if hostMaj == 0 {
		if hostMaj == decreeMaj && hostMin == decreeMin {
			return nil
		}
		return fmt.Errorf("ABI version mismatch: host %s, decree %s", hostABIVersion, m.ABIVersion)
	}

	if hostMaj == decreeMaj && decreeMin <= hostMin {
		return nil
	}
	return fmt.Errorf("ABI version incompatible: host %s, decree %s", hostABIVersion, m.ABIVersion)
}

// Decree is the interface every rule module implements, whether built in,
// loaded from a native dynamic library, or backed by a WASM component.
//
// Implementations must be safe to call concurrently from multiple host
// goroutines. Lint must treat path and source as read-only and must not
// retain references to source past the call; any internal mutability
// required by a backing instance (e.g. a WASM store) is the implementer's
// responsibility to guard.
type Decree interface {
	// Name is the stable identifier, also the first component of every
	// rule ID this decree emits ("{name}/{rule}").
	Name() string

	// Metadata returns cheap, internally consistent metadata. May be
	// called repeatedly.
	Metadata() Metadata

	// Lint checks a single file and returns diagnostics whose spans refer
	// to byte offsets within source.
	Lint(path string, source string) Diagnostics
}

// Rule builds a rule identifier "{decree}/{rule}" for the given decree.
func Rule(d Decree, ruleName string) string {
	return d.Name() + "/" + ruleName
}
