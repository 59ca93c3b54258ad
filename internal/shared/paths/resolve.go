package paths

import "path/filepath"

// Resolve composes an input path with a base directory. Empty input means
// the base itself, a bare ".." pops one segment, absolute input is returned
// unchanged, and anything else is joined onto the base.
func Resolve(base, input string) string {
	switch {
	case input == "":
		return base
	case input == "..":
		return Parent(base)
	case filepath.IsAbs(input):
		return input
	default:
		return filepath.Join(base, input)
	}
}

// Normalize collapses "." segments, structurally resolves ".." segments and
// duplicate separators, and maps the empty path to ".". It never consults
// the filesystem, so symlinks are not expanded. Idempotent.
func Normalize(path string) string {
	return filepath.Clean(path)
}

// Parent returns the directory containing path, with the root as its own
// parent.
func Parent(path string) string {
	return filepath.Dir(Normalize(path))
}
