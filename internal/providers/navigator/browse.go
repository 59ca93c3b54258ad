package navigator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/NavFS/internal/fs/enumerate"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// BrowseOps handles enumeration commands.
type BrowseOps struct {
	*NavigatorOps
}

// GetTools returns enumeration tool definitions
func (b *BrowseOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "list",
			Name:        "List Directory",
			Description: "List directory contents with full metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path (defaults to cwd)", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Descend into subdirectories", Required: false},
				{Name: "show_hidden", Type: "boolean", Description: "Include dotfiles", Required: false},
				{Name: "pattern", Type: "string", Description: "Case-sensitive substring name filter", Required: false},
				{Name: "max_depth", Type: "number", Description: "Depth limit (0 = unlimited)", Required: false},
				{Name: "follow_symlinks", Type: "boolean", Description: "Descend through symlinked directories", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "search",
			Name:        "Search Files",
			Description: "Breadth-first name search under a directory",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Description: "Case-sensitive substring to match in names (not a glob)", Required: true},
				{Name: "path", Type: "string", Description: "Root directory (defaults to cwd)", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Search subdirectories", Required: false},
				{Name: "show_hidden", Type: "boolean", Description: "Include dotfiles", Required: false},
				{Name: "max_depth", Type: "number", Description: "Depth limit (0 = unlimited)", Required: false},
				{Name: "follow_symlinks", Type: "boolean", Description: "Descend through symlinked directories", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "glob",
			Name:        "Glob Match",
			Description: "Match files with doublestar patterns (e.g. '**/*.json')",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Description: "Glob pattern", Required: true},
				{Name: "path", Type: "string", Description: "Root directory (defaults to cwd)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "tree",
			Name:        "Directory Tree",
			Description: "Render a directory tree",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory (defaults to cwd)", Required: false},
				{Name: "max_depth", Type: "number", Description: "Depth limit (0 = unlimited)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "dirsize",
			Name:        "Directory Size",
			Description: "Total size and counts of a directory tree",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path (defaults to cwd)", Required: false},
			},
			Returns: "object",
		},
	}
}

// List enumerates a directory through the active backend.
func (b *BrowseOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := b.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := b.ResolvePath(sess, getString(params, "path"))

	entries, err := b.Backends.ListFiles(path, listOptions(params))
	if err != nil {
		return FailErr(err)
	}

	return Success(map[string]interface{}{
		"path":    path,
		"entries": entriesPayload(entries),
		"count":   len(entries),
	})
}

// Search collects entries whose name contains the pattern. Only the root
// directory is scanned unless recursive is set.
func (b *BrowseOps) Search(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	pattern := getString(params, "pattern")
	if pattern == "" {
		return Failure("pattern parameter required")
	}
	sess, err := b.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := b.ResolvePath(sess, getString(params, "path"))

	results, err := enumerate.Search(path, pattern, listOptions(params))
	if err != nil {
		return FailErr(err)
	}

	return Success(map[string]interface{}{
		"pattern": pattern,
		"path":    path,
		"results": entriesPayload(results),
		"count":   len(results),
	})
}

// Glob matches paths with doublestar patterns relative to a root.
func (b *BrowseOps) Glob(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	pattern := getString(params, "pattern")
	if pattern == "" {
		return Failure("pattern parameter required")
	}
	sess, err := b.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	root := b.ResolvePath(sess, getString(params, "path"))

	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
	if err != nil {
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}
	sort.Strings(matches)

	rel := make([]string, 0, len(matches))
	for _, m := range matches {
		if r, err := filepath.Rel(root, m); err == nil {
			rel = append(rel, r)
		}
	}

	return Success(map[string]interface{}{
		"path":    root,
		"matches": rel,
		"count":   len(rel),
	})
}

// Tree renders an indented tree of the directory.
func (b *BrowseOps) Tree(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := b.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	root := b.ResolvePath(sess, getString(params, "path"))
	maxDepth := getInt(params, "max_depth")

	info, err := os.Stat(root)
	if err != nil {
		return FailErr(err)
	}
	if !info.IsDir() {
		return FailCode(types.CodeNotADirectory, "not a directory: "+root)
	}

	var lines []string
	files, dirs := 0, 0

	// Indented output depends on walk order; one worker keeps it stable.
	conf := fastwalk.Config{Follow: false, NumWorkers: 1, Sort: fastwalk.SortDirsFirst}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || p == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator))
		if maxDepth > 0 && depth >= maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			dirs++
			lines = append(lines, strings.Repeat("  ", depth)+name+"/")
		} else {
			files++
			lines = append(lines, strings.Repeat("  ", depth)+name)
		}
		return nil
	})
	if err != nil {
		return FailErr(err)
	}

	return Success(map[string]interface{}{
		"path":  root,
		"tree":  filepath.Base(root) + "/\n" + strings.Join(lines, "\n"),
		"files": files,
		"dirs":  dirs,
	})
}

// DirSize totals a directory tree without building entry snapshots.
func (b *BrowseOps) DirSize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := b.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	root := b.ResolvePath(sess, getString(params, "path"))

	var mu sync.Mutex
	var total int64
	files, dirs := 0, 0

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			mu.Lock()
			dirs++
			mu.Unlock()
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		mu.Lock()
		files++
		total += info.Size()
		mu.Unlock()
		return nil
	})
	if err != nil {
		return FailErr(err)
	}

	// Walk counts the root itself.
	if dirs > 0 {
		dirs--
	}

	return Success(map[string]interface{}{
		"path":            root,
		"total_bytes":     total,
		"total_formatted": formatSize(total),
		"files":           files,
		"dirs":            dirs,
	})
}
