//go:build !(linux || darwin || freebsd)

package dynlib

import (
	"errors"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// EnvPath is the environment override for the library location.
const EnvPath = "NAVFS_BACKEND_PATH"

// Library is unavailable on platforms without a dynamic loader; hosts
// fall back to the native implementation.
type Library struct{}

var errUnsupported = errors.New("dynamic backend loading not supported on this platform")

func Load(explicit string) (*Library, error) { return nil, errUnsupported }

func (l *Library) Path() string { return "" }
func (l *Library) Close() error { return nil }

// Adapter never binds on this platform; it exists so hosts compile.
type Adapter struct{}

func Open(explicit string) (*Adapter, error) { return nil, errUnsupported }

func (a *Adapter) Name() string { return "dynlib" }
func (a *Adapter) ListFiles(string, types.ListOptions) ([]types.FileEntry, error) {
	return nil, errUnsupported
}
func (a *Adapter) CopyFile(string, string, types.CopyOptions) error { return errUnsupported }
func (a *Adapter) FileExists(string) bool                           { return false }
func (a *Adapter) IsDirectory(string) bool                          { return false }
func (a *Adapter) Path() string                                     { return "" }
func (a *Adapter) Close() error                                     { return nil }
