// Package batch performs the navigator's mutating filesystem operations:
// directory creation, deletion, copies with attribute preservation, moves,
// and independent multi-item copy batches. Failures never roll back work
// already completed; callers get per-item outcomes instead.
package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// DefaultBufferSize is the stream chunk size for file copies.
const DefaultBufferSize = 8192

// Engine executes mutating operations. One engine is safe for sequential
// use; it keeps no per-call state beyond the configured buffer size.
type Engine struct {
	bufSize int
}

// New creates an engine with the given copy buffer size, falling back to
// DefaultBufferSize for non-positive values.
func New(bufSize int) *Engine {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Engine{bufSize: bufSize}
}

// Mkdir creates one directory, or the whole chain when parents is set. An
// already-existing directory is not an error; an existing non-directory at
// the target is.
func (e *Engine) Mkdir(path string, parents bool) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil
		}
		return &fs.PathError{Op: "mkdir", Path: path, Err: syscall.EEXIST}
	} else if !os.IsNotExist(err) {
		return err
	}

	if parents {
		return os.MkdirAll(path, 0o755)
	}
	return os.Mkdir(path, 0o755)
}

// Delete removes one node. Files and symlinks are unlinked; a directory
// is removed only when empty unless recursive is set, in which case the
// subtree goes children-first. A refused non-recursive delete leaves the
// tree untouched.
func (e *Engine) Delete(path string, recursive bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() || !recursive {
		return os.Remove(path)
	}
	return e.deleteTree(path)
}

// deleteTree removes a directory subtree children-first over an explicit
// stack, so tree depth never translates into call-stack depth. A directory
// is first expanded, then revisited for removal once its children are gone.
func (e *Engine) deleteTree(root string) error {
	type item struct {
		path     string
		expanded bool
	}

	stack := []item{{path: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			stack = stack[:len(stack)-1]
			if err := os.Remove(top.path); err != nil {
				return err
			}
			continue
		}
		top.expanded = true

		info, err := os.Lstat(top.path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			stack = stack[:len(stack)-1]
			if err := os.Remove(top.path); err != nil {
				return err
			}
			continue
		}

		dirents, err := os.ReadDir(top.path)
		if err != nil {
			return err
		}
		dir := top.path
		for _, de := range dirents {
			stack = append(stack, item{path: filepath.Join(dir, de.Name())})
		}
	}
	return nil
}

// Move renames src to dst with single-syscall semantics. Cross-filesystem
// failures surface as-is; there is no copy+delete fallback.
func (e *Engine) Move(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return err
	}
	return os.Rename(src, dst)
}

// Pair is one source/destination copy assignment.
type Pair struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// ItemOutcome reports one batch item's result.
type ItemOutcome struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	Code        types.ErrorCode `json:"code,omitempty"`
}

// Outcome aggregates a batch run.
type Outcome struct {
	Items     []ItemOutcome `json:"items"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}
