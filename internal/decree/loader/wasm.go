package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/seuros/dictator/internal/decree"
)

// wasmGuestABI documents the exports a WASM component must provide:
//
//	alloc(size uint32) uint32              -- allocate size bytes in guest memory, return pointer
//	dictator_metadata() (ptr, len uint32)  -- JSON-encoded decree.Metadata
//	dictator_lint(pathPtr, pathLen, sourcePtr, sourceLen uint32) (ptr, len uint32)
//	                                        -- JSON-encoded decree.Diagnostics
//
// Guest memory is never freed by the host; a WASM decree is expected to be
// short-lived per process (one regime's lifetime).
type wasmDecree struct {
	name    string
	mu      sync.Mutex
	runtime wazero.Runtime
	module  api.Module
	meta    decree.Metadata
}

func loadWASM(name, path, hostABIVersion string) (decree.Decree, error) {
	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decree %q: read %s: %w", name, path, err)
	}

	runtime := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("decree %q: instantiate WASI: %w", name, err)
	}

	cfg := wazero.NewModuleConfig().WithStdin(os.Stdin).WithStdout(os.Stdout).WithStderr(os.Stderr)
	mod, err := runtime.InstantiateWithConfig(ctx, data, cfg)
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("decree %q: instantiate module %s: %w", name, path, err)
	}

	wd := &wasmDecree{name: name, runtime: runtime, module: mod}
	meta, err := wd.fetchMetadata(ctx)
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("decree %q: metadata call: %w", name, err)
	}
	if err := meta.ValidateABI(hostABIVersion); err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("decree %q: %w", name, err)
	}
	wd.meta = meta

	return wd, nil
}

func (w *wasmDecree) Name() string             { return w.name }
func (w *wasmDecree) Metadata() decree.Metadata { return w.meta }

func (w *wasmDecree) fetchMetadata(ctx context.Context) (decree.Metadata, error) {
	fn := w.module.ExportedFunction("dictator_metadata")
	if fn == nil {
		return decree.Metadata{}, fmt.Errorf("missing export dictator_metadata")
	}
	res, err := fn.Call(ctx)
	if err != nil {
		return decree.Metadata{}, err
	}
	raw, err := w.readResult(res)
	if err != nil {
		return decree.Metadata{}, err
	}
	var meta decree.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return decree.Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

// Lint serializes guest calls through mu: WASM component instances are not
// thread-safe.
func (w *wasmDecree) Lint(path string, source string) decree.Diagnostics {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx := context.Background()
	pathPtr, pathLen, err := w.writeString(ctx, path)
	if err != nil {
		return nil
	}
	sourcePtr, sourceLen, err := w.writeString(ctx, source)
	if err != nil {
		return nil
	}

	fn := w.module.ExportedFunction("dictator_lint")
	if fn == nil {
		return nil
	}
	res, err := fn.Call(ctx, uint64(pathPtr), uint64(pathLen), uint64(sourcePtr), uint64(sourceLen))
	if err != nil {
		return nil
	}
	raw, err := w.readResult(res)
	if err != nil {
		return nil
	}

	var diags decree.Diagnostics
	if err := json.Unmarshal(raw, &diags); err != nil {
		return nil
	}
	return diags
}

func (w *wasmDecree) writeString(ctx context.Context, s string) (ptr, length uint32, err error) {
	alloc := w.module.ExportedFunction("alloc")
	if alloc == nil {
		return 0, 0, fmt.Errorf("missing export alloc")
	}
	res, err := alloc.Call(ctx, uint64(len(s)))
	if err != nil {
		return 0, 0, err
	}
	ptr = uint32(res[0])
	if !w.module.Memory().Write(ptr, []byte(s)) {
		return 0, 0, fmt.Errorf("write out of bounds")
	}
	return ptr, uint32(len(s)), nil
}

// readResult unpacks a (ptr, len) pair packed into wazero's two-value
// return convention and reads the bytes out of guest memory.
func (w *wasmDecree) readResult(res []uint64) ([]byte, error) {
	if len(res) < 2 {
		return nil, fmt.Errorf("expected (ptr, len) result, got %d values", len(res))
	}
	ptr, length := uint32(res[0]), uint32(res[1])
	data, ok := w.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds")
	}
	return data, nil
}
