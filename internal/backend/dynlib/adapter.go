//go:build linux || darwin || freebsd

package dynlib

import (
	"fmt"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Adapter exposes a bound Library through the backend capability
// contract. Option structs cross the ABI as JSON strings.
type Adapter struct {
	lib *Library
}

// NewAdapter wraps a loaded library.
func NewAdapter(lib *Library) *Adapter {
	return &Adapter{lib: lib}
}

// Open loads the first discoverable library and wraps it. This is the
// single entry point hosts use; load failure is theirs to report.
func Open(explicit string) (*Adapter, error) {
	lib, err := Load(explicit)
	if err != nil {
		return nil, err
	}
	return NewAdapter(lib), nil
}

func (a *Adapter) Name() string { return "dynlib" }

// listError is the shape the library returns instead of an array when the
// enumeration itself failed.
type listError struct {
	Error string `json:"error"`
}

func (a *Adapter) ListFiles(path string, opts types.ListOptions) ([]types.FileEntry, error) {
	optJSON, err := sonic.MarshalString(opts)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	raw := a.lib.listFiles(path, optJSON)
	if raw == "" {
		return nil, fmt.Errorf("backend returned no data for %s", path)
	}

	var entries []types.FileEntry
	if err := sonic.UnmarshalString(raw, &entries); err == nil {
		return entries, nil
	}

	var le listError
	if err := sonic.UnmarshalString(raw, &le); err == nil && le.Error != "" {
		return nil, fmt.Errorf("backend list %s: %s", path, le.Error)
	}
	return nil, fmt.Errorf("backend returned malformed listing for %s", path)
}

func (a *Adapter) CopyFile(src, dst string, opts types.CopyOptions) error {
	optJSON, err := sonic.MarshalString(opts)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	rc := a.lib.copyFile(src, dst, optJSON)
	if rc == 0 {
		return nil
	}
	// Negative returns carry the errno.
	return fmt.Errorf("backend copy %s: %w", src, syscall.Errno(-rc))
}

func (a *Adapter) FileExists(path string) bool {
	return a.lib.fileExists(path) != 0
}

func (a *Adapter) IsDirectory(path string) bool {
	return a.lib.isDirectory(path) != 0
}

// Path returns the bound library location.
func (a *Adapter) Path() string { return a.lib.Path() }

// Close releases the underlying handle.
func (a *Adapter) Close() error { return a.lib.Close() }
