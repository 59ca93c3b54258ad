package meta

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	entry, err := Collect(path)
	require.NoError(t, err)

	assert.Equal(t, "report.txt", entry.Name)
	assert.Equal(t, path, entry.Path)
	assert.Equal(t, types.KindFile, entry.Kind)
	assert.Equal(t, int64(10), entry.Size)
	assert.Equal(t, "txt", entry.Extension)
	assert.False(t, entry.Hidden)
	assert.False(t, entry.ReadOnly)
	assert.NotEmpty(t, entry.Owner)
	assert.NotEmpty(t, entry.Group)
	assert.NotZero(t, entry.Inode)
	assert.Equal(t, uint64(1), entry.Links)
	assert.Equal(t, byte('-'), entry.Permissions[0])
	assert.Equal(t, "rw-r--r--", entry.Permissions[1:])
}

func TestCollectDirectory(t *testing.T) {
	dir := t.TempDir()

	entry, err := Collect(dir)
	require.NoError(t, err)

	assert.Equal(t, types.KindDirectory, entry.Kind)
	assert.Zero(t, entry.Size, "directories report size 0")
	assert.Empty(t, entry.Extension)
	assert.Equal(t, byte('d'), entry.Permissions[0])
}

func TestCollectSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("data"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	entry, err := Collect(link)
	require.NoError(t, err)

	assert.Equal(t, types.KindSymlink, entry.Kind)
	assert.Zero(t, entry.Size, "symlinks report size 0")
	assert.Equal(t, target, entry.LinkTarget)
	assert.Equal(t, byte('l'), entry.Permissions[0])
}

func TestCollectBrokenSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

	entry, err := Collect(link)
	require.NoError(t, err, "broken links must still be collectable")
	assert.Equal(t, types.KindSymlink, entry.Kind)
}

func TestCollectHidden(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".config")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	entry, err := Collect(path)
	require.NoError(t, err)
	assert.True(t, entry.Hidden)
}

func TestCollectReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frozen.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o444))

	entry, err := Collect(path)
	require.NoError(t, err)
	assert.True(t, entry.ReadOnly)
}

func TestCollectMissing(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	assert.Equal(t, types.CodeNotFound, types.CodeFromErr(err))
}

func TestCollectDepth(t *testing.T) {
	dir := t.TempDir()
	entry, err := CollectAt(dir, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Depth)
}

func TestPermissionString(t *testing.T) {
	tests := []struct {
		mode uint32
		want string
	}{
		{syscall.S_IFREG | 0o644, "-rw-r--r--"},
		{syscall.S_IFDIR | 0o755, "drwxr-xr-x"},
		{syscall.S_IFLNK | 0o777, "lrwxrwxrwx"},
		{syscall.S_IFIFO | 0o600, "prw-------"},
		{syscall.S_IFREG | 0o4755, "-rwsr-xr-x"},
		{syscall.S_IFREG | 0o4644, "-rwSr--r--"},
		{syscall.S_IFREG | 0o2755, "-rwxr-sr-x"},
		{syscall.S_IFREG | 0o2644, "-rw-r-Sr--"},
		{syscall.S_IFDIR | 0o1777, "drwxrwxrwt"},
		{syscall.S_IFDIR | 0o1776, "drwxrwxrwT"},
		{0, "----------"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PermissionString(tt.mode), "mode %o", tt.mode)
	}
}

func TestOwnerFallbackNeverEmpty(t *testing.T) {
	// Absurd ids will not resolve; the numeric fallback must kick in.
	assert.Equal(t, "4294967294", ownerName(4294967294))
	assert.Equal(t, "4294967294", groupName(4294967294))
}
