// Package loader resolves a decree path (§4.2) into a loaded decree.Decree:
// a `.wasm` file is instantiated as a WebAssembly component; anything else
// is treated as a native dynamic library exporting the factory symbol; a
// bare name with no path is a built-in, resolved through decree.Get.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/seuros/dictator/internal/decree"
)

// Load resolves name/path into a Decree. hostABIVersion gates native and
// WASM decrees via Metadata.ValidateABI; built-ins are trusted unconditionally
// since they are linked against the same ABI as the host.
func Load(name, path, hostABIVersion string) (decree.Decree, error) {
	if path == "" {
		d, ok := decree.Get(name)
		if !ok {
			return nil, fmt.Errorf("decree %q: no path configured and no built-in with that name", name)
		}
		return d, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".wasm") {
		return loadWASM(name, path, hostABIVersion)
	}
	return loadNative(name, path, hostABIVersion)
}
