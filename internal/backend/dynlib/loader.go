//go:build linux || darwin || freebsd

// Package dynlib discovers and binds an alternate native implementation
// of the navigator primitives from a shared library.
//
// Candidate paths are tried in a fixed order: explicit argument,
// NAVFS_BACKEND_PATH, the well-known install path, the working directory,
// and finally the system library search via a bare soname. Each required
// entry point binds by its plain symbol name first and the "navfs_"
// namespaced alias second; one unresolved symbol fails the whole load.
// A failed load is reported to the caller, never fatal to the host.
//
// The C ABI is strings and integers only: file_exists and is_directory
// return nonzero for true, copy_file returns 0 on success or a negative
// errno, and list_files returns a JSON array (or an object carrying an
// "error" key) in a buffer owned by the library, valid until the next
// call. The core is single-threaded per instance, which is what makes
// that buffer contract workable.
package dynlib

import (
	"fmt"
	"os"

	"github.com/ebitengine/purego"
)

// EnvPath is the environment override for the library location.
const EnvPath = "NAVFS_BACKEND_PATH"

// InstallPath is the well-known install location tried after the override.
const InstallPath = "/usr/local/lib/libnavfs.so"

// soname is the bare name handed to the system library search.
const soname = "libnavfs.so"

// aliasPrefix namespaces symbols when the plain name is taken.
const aliasPrefix = "navfs_"

var requiredSymbols = []string{"list_files", "copy_file", "file_exists", "is_directory"}

// Library is a bound dynamic implementation. The handle and function
// table live for the whole process; Close releases them at shutdown.
type Library struct {
	handle uintptr
	path   string

	listFiles   func(path string, optionsJSON string) string
	copyFile    func(src string, dst string, optionsJSON string) int32
	fileExists  func(path string) int32
	isDirectory func(path string) int32
}

// Load opens the first candidate library and binds the required entry
// points. The explicit path, when non-empty, is tried first.
func Load(explicit string) (*Library, error) {
	var lastErr error
	for _, candidate := range candidates(explicit) {
		handle, err := purego.Dlopen(candidate, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", candidate, err)
			continue
		}

		lib := &Library{handle: handle, path: candidate}
		if err := lib.bind(); err != nil {
			purego.Dlclose(handle)
			return nil, fmt.Errorf("bind %s: %w", candidate, err)
		}
		return lib, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no backend library candidate")
	}
	return nil, lastErr
}

// candidates produces the search order. Empty entries are skipped.
func candidates(explicit string) []string {
	out := make([]string, 0, 5)
	for _, c := range []string{
		explicit,
		os.Getenv(EnvPath),
		InstallPath,
		"./" + soname,
		soname,
	} {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// bind resolves every required symbol, all or nothing.
func (l *Library) bind() error {
	names := make(map[string]string, len(requiredSymbols))
	for _, sym := range requiredSymbols {
		resolved, err := l.resolve(sym)
		if err != nil {
			return err
		}
		names[sym] = resolved
	}

	purego.RegisterLibFunc(&l.listFiles, l.handle, names["list_files"])
	purego.RegisterLibFunc(&l.copyFile, l.handle, names["copy_file"])
	purego.RegisterLibFunc(&l.fileExists, l.handle, names["file_exists"])
	purego.RegisterLibFunc(&l.isDirectory, l.handle, names["is_directory"])
	return nil
}

// resolve finds a symbol under its plain name or the namespaced alias.
func (l *Library) resolve(name string) (string, error) {
	if _, err := purego.Dlsym(l.handle, name); err == nil {
		return name, nil
	}
	alias := aliasPrefix + name
	if _, err := purego.Dlsym(l.handle, alias); err == nil {
		return alias, nil
	}
	return "", fmt.Errorf("symbol %s (or %s) not found", name, alias)
}

// Path returns the library location the handle was opened from.
func (l *Library) Path() string { return l.path }

// Close releases the library handle.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	return err
}
