package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// flaky is a dynamic-backend stand-in that fails every call.
type flaky struct{}

func (f *flaky) Name() string { return "dynlib" }
func (f *flaky) ListFiles(string, types.ListOptions) ([]types.FileEntry, error) {
	return nil, errors.New("backend crashed")
}
func (f *flaky) CopyFile(string, string, types.CopyOptions) error {
	return errors.New("backend crashed")
}
func (f *flaky) FileExists(string) bool  { return false }
func (f *flaky) IsDirectory(string) bool { return false }

func TestNativeBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	n := NewNative(nil)
	assert.Equal(t, "native", n.Name())
	assert.True(t, n.FileExists(filepath.Join(dir, "a.txt")))
	assert.False(t, n.FileExists(filepath.Join(dir, "absent")))
	assert.True(t, n.IsDirectory(dir))
	assert.False(t, n.IsDirectory(filepath.Join(dir, "a.txt")))

	entries, err := n.ListFiles(dir, types.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegistryDefaultsToNative(t *testing.T) {
	r := NewRegistry(nil)
	assert.False(t, r.Loaded())
	assert.NoError(t, r.Err())
	assert.Equal(t, "native", r.Active())

	status := r.Status()
	assert.Equal(t, false, status["loaded"])
	assert.Equal(t, "native", status["backend"])
}

func TestRegistryFallbackKeepsServing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	r := NewRegistry(nil)
	r.Fallback(errors.New("library not found"))

	assert.False(t, r.Loaded())
	require.Error(t, r.Err())
	assert.Equal(t, "library not found", r.Status()["error"])

	entries, err := r.ListFiles(dir, types.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegistryBreakerTripsToNative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	r := NewRegistry(nil)
	r.Bind(&flaky{}, "/tmp/libflaky.so")
	assert.True(t, r.Loaded())
	assert.Equal(t, "dynlib", r.Active())

	// Consecutive dynamic failures surface first, then trip the breaker.
	for i := 0; i < 3; i++ {
		_, err := r.ListFiles(dir, types.ListOptions{})
		assert.Error(t, err)
	}

	// Tripped: calls route to the native implementation and succeed.
	assert.Equal(t, "native", r.Active())
	entries, err := r.ListFiles(dir, types.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
