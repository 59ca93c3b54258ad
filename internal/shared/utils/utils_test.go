package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAlgorithms(t *testing.T) {
	sha, err := NewHasher(SHA256)
	require.NoError(t, err)
	blake, err := NewHasher(BLAKE2B)
	require.NoError(t, err)

	// Known SHA-256 of "abc".
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		sha.HashString("abc"))

	// BLAKE2b-256 digests differ from SHA-256 and are stable.
	b1 := blake.HashString("abc")
	b2 := blake.HashString("abc")
	assert.Equal(t, b1, b2)
	assert.NotEqual(t, sha.HashString("abc"), b1)
	assert.Len(t, b1, 64)
}

func TestNewHasherRejectsUnknown(t *testing.T) {
	_, err := NewHasher("md5")
	assert.Error(t, err)
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	digest, err := DefaultHasher().HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultHasher().HashString("abc"), digest)

	_, err = DefaultHasher().HashFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "ba7816bf", ShortHash("ba7816bf8f01cfea"))
	assert.Equal(t, "abc", ShortHash("abc"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("notes.txt", "name"))
	assert.Error(t, ValidateName("", "name"))
	assert.Error(t, ValidateName("a/b", "name"))
	assert.Error(t, ValidateName(".", "name"))
	assert.Error(t, ValidateName("..", "name"))
	assert.Error(t, ValidateName("nul\x00byte", "name"))
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath("/tmp/demo", "path", true))
	assert.Error(t, ValidatePath("", "path", true))
	assert.NoError(t, ValidatePath("", "path", false))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1099511627776, "1.00 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}
