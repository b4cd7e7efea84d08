//go:build windows

package loader

import (
	"fmt"

	"github.com/seuros/dictator/internal/decree"
)

// loadNative is unsupported on Windows: Go's plugin package only targets
// linux and darwin. Use a WASM component decree instead.
func loadNative(name, path, hostABIVersion string) (decree.Decree, error) {
	return nil, fmt.Errorf("decree %q: native dynamic library loading is not supported on windows: %s", name, path)
}
