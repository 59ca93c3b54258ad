// Package backend defines the interchangeable implementation of the
// navigator's core primitives.
//
// Two implementations satisfy the Backend contract: the built-in Go one
// and an adapter bound to a dynamically discovered shared library. The
// dispatcher holds an owned Registry instance and depends only on the
// contract; a failed or missing dynamic library is reported, never fatal.
package backend

import "github.com/GriffinCanCode/NavFS/internal/shared/types"

// Backend is the capability contract the loadable implementation must
// satisfy. It covers the primitives the original dynamic table exported.
type Backend interface {
	// Name identifies the implementation ("native" or "dynlib").
	Name() string
	// ListFiles enumerates a directory under the given options.
	ListFiles(path string, opts types.ListOptions) ([]types.FileEntry, error)
	// CopyFile copies one node, honoring the copy options.
	CopyFile(src, dst string, opts types.CopyOptions) error
	// FileExists reports whether a node exists (any kind).
	FileExists(path string) bool
	// IsDirectory reports whether the node is a directory, following a
	// final symlink the way opening it would.
	IsDirectory(path string) bool
}
