//go:build !windows

package loader

import (
	"fmt"
	"plugin"

	"github.com/seuros/dictator/internal/decree"
)

// loadNative opens a native dynamic library, resolves the factory export,
// calls it, and validates the resulting decree's ABI version against the
// host's. A constructor panic is recovered and reported as a load failure,
// non-fatal to the rest of the regime.
func loadNative(name, path, hostABIVersion string) (d decree.Decree, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decree %q: constructor at %s panicked: %v", name, path, r)
		}
	}()

	lib, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decree %q: open %s: %w", name, path, err)
	}

	sym, err := lib.Lookup(decree.FactoryExportName)
	if err != nil {
		return nil, fmt.Errorf("decree %q: %s missing export %s: %w", name, path, decree.FactoryExportName, err)
	}

	factory, ok := sym.(func() decree.Decree)
	if !ok {
		return nil, fmt.Errorf("decree %q: %s export %s has wrong type %T", name, path, decree.FactoryExportName, sym)
	}

	instance := factory()
	if err := instance.Metadata().ValidateABI(hostABIVersion); err != nil {
		return nil, fmt.Errorf("decree %q: %w", name, err)
	}

	return instance, nil
}
