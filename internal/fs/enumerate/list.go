package enumerate

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/NavFS/internal/fs/meta"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// List enumerates one directory, or its whole subtree when
// opts.Recursive is set. Entries the process cannot stat are skipped;
// unreadable subdirectories end their branch without failing the call.
func List(root string, opts types.ListOptions) ([]types.FileEntry, error) {
	if err := ensureDir(root); err != nil {
		return nil, err
	}

	out := []types.FileEntry{}

	// Explicit emit stack instead of self-recursion: each frame holds one
	// directory's sorted entries, and a directory's subtree is emitted
	// right after the directory entry itself.
	type frame struct {
		entries []types.FileEntry
		next    int
	}

	top, err := readSorted(root, 0, opts)
	if err != nil {
		return nil, err
	}
	stack := []*frame{{entries: top}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := f.entries[f.next]
		f.next++
		out = append(out, entry)

		if opts.Recursive && descendInto(&entry, opts) {
			children, err := readSorted(entry.Path, entry.Depth+1, opts)
			if err != nil {
				continue
			}
			stack = append(stack, &frame{entries: children})
		}
	}

	return out, nil
}

// readSorted returns one directory's filtered entries in the contract
// order: directories, then symlinks, then files, alphabetic within class.
func readSorted(dir string, depth int, opts types.ListOptions) ([]types.FileEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]types.FileEntry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		// Hidden filter runs before the name pattern.
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if opts.NamePattern != "" && !strings.Contains(name, opts.NamePattern) {
			continue
		}
		entry, err := meta.CollectAt(filepath.Join(dir, name), depth)
		if err != nil {
			continue
		}
		entries = append(entries, *entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.Kind != b.Kind {
			return kindRank(a.Kind) < kindRank(b.Kind)
		}
		return a.Name < b.Name
	})
	return entries, nil
}

func kindRank(k types.EntryKind) int {
	switch k {
	case types.KindDirectory:
		return 0
	case types.KindSymlink:
		return 1
	default:
		return 2
	}
}

// descendInto reports whether recursion should enter this entry. Symlinked
// directories are followed only on request, which also breaks link cycles.
func descendInto(entry *types.FileEntry, opts types.ListOptions) bool {
	if opts.MaxDepth > 0 && entry.Depth+1 >= opts.MaxDepth {
		return false
	}
	switch entry.Kind {
	case types.KindDirectory:
		return true
	case types.KindSymlink:
		if !opts.FollowSymlinks {
			return false
		}
		info, err := os.Stat(entry.Path)
		return err == nil && info.IsDir()
	default:
		return false
	}
}

// ensureDir verifies the enumeration root, following a symlinked root the
// way opening it would.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "list", Path: path, Err: syscall.ENOTDIR}
	}
	return nil
}
