package backend

import (
	"errors"
	"sync"

	"github.com/GriffinCanCode/NavFS/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Registry is the owned backend table. It is written once at startup
// (Bind or Fallback) and read-only afterwards; the lock exists so a
// multi-session host can call concurrently without serializing itself.
//
// The dynamic implementation sits behind a circuit breaker: repeated
// failures trip calls over to the native implementation until the
// cooldown expires.
type Registry struct {
	mu      sync.RWMutex
	native  Backend
	dynamic Backend
	path    string
	loadErr error

	breaker *resilience.Breaker
}

// NewRegistry creates a registry that starts on the native backend.
func NewRegistry(native Backend) *Registry {
	if native == nil {
		native = NewNative(nil)
	}
	return &Registry{
		native: native,
		breaker: resilience.New("backend", resilience.Settings{
			FailureThreshold: 3,
		}),
	}
}

// Bind installs a loaded dynamic backend. Called once at startup.
func (r *Registry) Bind(dynamic Backend, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic = dynamic
	r.path = path
	r.loadErr = nil
}

// Fallback records why no dynamic backend is bound. The registry keeps
// serving through the native implementation.
func (r *Registry) Fallback(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic = nil
	r.loadErr = err
}

// Loaded reports whether a dynamic backend is bound. Pure observer.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dynamic != nil
}

// Err returns the load failure, if any. Pure observer.
func (r *Registry) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadErr
}

// Path returns the bound library path, empty when native.
func (r *Registry) Path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.path
}

// Active names the implementation calls currently route to.
func (r *Registry) Active() string {
	return r.route().Name()
}

// Status summarizes the registry for the wire surface.
func (r *Registry) Status() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := map[string]interface{}{
		"loaded":  r.dynamic != nil,
		"backend": r.native.Name(),
		"breaker": r.breaker.State().String(),
	}
	if r.dynamic != nil {
		status["backend"] = r.dynamic.Name()
		status["path"] = r.path
	}
	if r.loadErr != nil {
		status["error"] = r.loadErr.Error()
	}
	return status
}

// Close releases the dynamic backend's handle when it holds one.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if closer, ok := r.dynamic.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// route picks the implementation for the next call: the dynamic backend
// when bound and its breaker admits traffic, otherwise native.
func (r *Registry) route() Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.dynamic != nil && r.breaker.State() != resilience.StateOpen {
		return r.dynamic
	}
	return r.native
}

func (r *Registry) Name() string { return "registry" }

func (r *Registry) ListFiles(path string, opts types.ListOptions) ([]types.FileEntry, error) {
	b := r.route()
	if b.Name() == "native" {
		return b.ListFiles(path, opts)
	}

	var entries []types.FileEntry
	err := r.breaker.Do(func() error {
		var callErr error
		entries, callErr = b.ListFiles(path, opts)
		return callErr
	})
	if err != nil {
		if errors.Is(err, resilience.ErrOpen) || errors.Is(err, resilience.ErrProbes) {
			return r.nativeBackend().ListFiles(path, opts)
		}
		return nil, err
	}
	return entries, nil
}

func (r *Registry) CopyFile(src, dst string, opts types.CopyOptions) error {
	b := r.route()
	if b.Name() == "native" {
		return b.CopyFile(src, dst, opts)
	}

	err := r.breaker.Do(func() error {
		return b.CopyFile(src, dst, opts)
	})
	if errors.Is(err, resilience.ErrOpen) || errors.Is(err, resilience.ErrProbes) {
		return r.nativeBackend().CopyFile(src, dst, opts)
	}
	return err
}

func (r *Registry) FileExists(path string) bool {
	return r.route().FileExists(path)
}

func (r *Registry) IsDirectory(path string) bool {
	return r.route().IsDirectory(path)
}

func (r *Registry) nativeBackend() Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.native
}
