package enumerate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/NavFS/internal/fs/meta"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Search walks the tree breadth-first and returns entries whose name
// contains the pattern. Matching is case-sensitive substring containment,
// not glob syntax. Each directory is fully enumerated before its
// subdirectories are visited; without opts.Recursive only the root is
// examined.
func Search(root, pattern string, opts types.ListOptions) ([]types.FileEntry, error) {
	if err := ensureDir(root); err != nil {
		return nil, err
	}

	type dirItem struct {
		path  string
		depth int
	}

	results := []types.FileEntry{}
	queue := []dirItem{{root, 0}}

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		dirents, err := os.ReadDir(d.path)
		if err != nil {
			if d.depth == 0 {
				return nil, err
			}
			continue
		}

		for _, de := range dirents {
			name := de.Name()
			if !opts.ShowHidden && strings.HasPrefix(name, ".") {
				continue
			}
			full := filepath.Join(d.path, name)

			if strings.Contains(name, pattern) {
				if entry, err := meta.CollectAt(full, d.depth); err == nil {
					results = append(results, *entry)
				}
			}

			if !opts.Recursive {
				continue
			}
			if opts.MaxDepth > 0 && d.depth+1 >= opts.MaxDepth {
				continue
			}
			if enqueueable(de, full, opts.FollowSymlinks) {
				queue = append(queue, dirItem{full, d.depth + 1})
			}
		}
	}

	return results, nil
}

// enqueueable reports whether a child should join the BFS queue. Symlinked
// directories count only when follow is set; that is the cycle guard.
func enqueueable(de os.DirEntry, full string, follow bool) bool {
	if de.IsDir() {
		return true
	}
	if de.Type()&os.ModeSymlink != 0 && follow {
		info, err := os.Stat(full)
		return err == nil && info.IsDir()
	}
	return false
}
