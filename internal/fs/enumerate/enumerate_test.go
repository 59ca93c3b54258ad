package enumerate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// demoTree reproduces the canonical fixture: a.txt (10 bytes), .hidden
// (5 bytes) and an empty subdirectory.
func demoTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "0123456789")
	writeFile(t, filepath.Join(dir, ".hidden"), "12345")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	return dir
}

func names(entries []types.FileEntry) []string {
	out := make([]string, len(entries))
	for i := range entries {
		out[i] = entries[i].Name
	}
	return out
}

func TestListVisibleOnly(t *testing.T) {
	dir := demoTree(t)

	entries, err := List(dir, types.ListOptions{})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "sub", entries[0].Name)
	assert.Equal(t, types.KindDirectory, entries[0].Kind)
	assert.Equal(t, "a.txt", entries[1].Name)
	assert.Equal(t, types.KindFile, entries[1].Kind)
	assert.Equal(t, int64(10), entries[1].Size)
}

func TestListShowHidden(t *testing.T) {
	dir := demoTree(t)

	entries, err := List(dir, types.ListOptions{ShowHidden: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub", ".hidden", "a.txt"}, names(entries))
}

func TestListClassOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zz.txt"), "z")
	writeFile(t, filepath.Join(dir, "aa.txt"), "a")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zdir"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "adir"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "aa.txt"), filepath.Join(dir, "zlink")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "zz.txt"), filepath.Join(dir, "alink")))

	entries, err := List(dir, types.ListOptions{})
	require.NoError(t, err)

	// Directories, then symlinks, then files; alphabetic within class.
	assert.Equal(t, []string{"adir", "zdir", "alink", "zlink", "aa.txt", "zz.txt"}, names(entries))
}

func TestListHiddenFilterBeforePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.txt"), "k")
	writeFile(t, filepath.Join(dir, ".skip.txt"), "s")

	entries, err := List(dir, types.ListOptions{NamePattern: ".txt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt"}, names(entries))
}

func TestListPatternCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Report.md"), "r")
	writeFile(t, filepath.Join(dir, "report.md"), "r")

	entries, err := List(dir, types.ListOptions{NamePattern: "Rep"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Report.md"}, names(entries))
}

func TestListRecursiveTreeOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b", "inner"), 0o755))
	writeFile(t, filepath.Join(dir, "b", "inner", "deep.txt"), "d")
	writeFile(t, filepath.Join(dir, "b", "mid.txt"), "m")
	writeFile(t, filepath.Join(dir, "top.txt"), "t")

	entries, err := List(dir, types.ListOptions{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "inner", "deep.txt", "mid.txt", "top.txt"}, names(entries))
	depths := []int{}
	for _, e := range entries {
		depths = append(depths, e.Depth)
	}
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
}

func TestListMaxDepth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "one", "two"), 0o755))
	writeFile(t, filepath.Join(dir, "one", "two", "deep.txt"), "d")
	writeFile(t, filepath.Join(dir, "one", "shallow.txt"), "s")

	entries, err := List(dir, types.ListOptions{Recursive: true, MaxDepth: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "shallow.txt"}, names(entries))

	entries, err = List(dir, types.ListOptions{Recursive: true, MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, names(entries), "max depth 1 behaves like non-recursive")
}

func TestListSymlinkedDirIsLeafByDefault(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	writeFile(t, filepath.Join(real, "inside.txt"), "i")
	require.NoError(t, os.Symlink(real, filepath.Join(dir, "alias")))

	entries, err := List(dir, types.ListOptions{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"real", "inside.txt", "alias"}, names(entries))

	entries, err = List(dir, types.ListOptions{Recursive: true, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"real", "inside.txt", "alias", "inside.txt"}, names(entries))
}

func TestListErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "plain.txt"), "p")

	_, err := List(filepath.Join(dir, "missing"), types.ListOptions{})
	assert.Equal(t, types.CodeNotFound, types.CodeFromErr(err))

	_, err = List(filepath.Join(dir, "plain.txt"), types.ListOptions{})
	assert.Equal(t, types.CodeNotADirectory, types.CodeFromErr(err))
}

func TestSearchBreadthFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "aa", "bb"), 0o755))
	writeFile(t, filepath.Join(dir, "aa", "bb", "deep_match.txt"), "d")
	writeFile(t, filepath.Join(dir, "aa", "mid_match.txt"), "m")
	writeFile(t, filepath.Join(dir, "top_match.txt"), "t")

	results, err := Search(dir, "match", types.ListOptions{Recursive: true})
	require.NoError(t, err)

	// Shallower matches always precede deeper ones.
	assert.Equal(t, []string{"top_match.txt", "mid_match.txt", "deep_match.txt"}, names(results))
}

func TestSearchNonRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub", "inner_hit.txt"), "i")
	writeFile(t, filepath.Join(dir, "root_hit.txt"), "r")

	results, err := Search(dir, "hit", types.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"root_hit.txt"}, names(results))
}

func TestSearchSubstringNotGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "n")

	results, err := Search(dir, "*.txt", types.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, results, "glob metacharacters are literal")

	results, err = Search(dir, "otes", types.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, names(results))
}

func TestSearchMatchesDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "match_dir"), 0o755))

	results, err := Search(dir, "match", types.ListOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.KindDirectory, results[0].Kind)
}

func TestSearchSkipsHiddenSubtrees(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".cache"), 0o755))
	writeFile(t, filepath.Join(dir, ".cache", "hidden_hit.txt"), "h")
	writeFile(t, filepath.Join(dir, "hit.txt"), "v")

	results, err := Search(dir, "hit", types.ListOptions{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"hit.txt"}, names(results))

	results, err = Search(dir, "hit", types.ListOptions{Recursive: true, ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"hit.txt", "hidden_hit.txt"}, names(results))
}

func TestSearchMaxDepth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "l1", "l2"), 0o755))
	writeFile(t, filepath.Join(dir, "l1", "l2", "deep_hit.txt"), "d")
	writeFile(t, filepath.Join(dir, "l1", "hit.txt"), "s")

	results, err := Search(dir, "hit", types.ListOptions{Recursive: true, MaxDepth: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"hit.txt"}, names(results))
}
