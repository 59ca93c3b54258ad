package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// HashAlgorithm represents the hashing algorithm to use
type HashAlgorithm string

const (
	SHA256  HashAlgorithm = "sha256"
	BLAKE2B HashAlgorithm = "blake2b"
)

// Hasher provides extensible content hashing
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a new hasher with the specified algorithm
func NewHasher(algorithm HashAlgorithm) (*Hasher, error) {
	switch algorithm {
	case SHA256, BLAKE2B:
		return &Hasher{algorithm: algorithm}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}

// DefaultHasher returns a hasher with the default algorithm
func DefaultHasher() *Hasher {
	h, _ := NewHasher(SHA256)
	return h
}

// Algorithm returns the configured algorithm name
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

func (h *Hasher) newDigest() hash.Hash {
	switch h.algorithm {
	case BLAKE2B:
		d, _ := blake2b.New256(nil)
		return d
	default:
		return sha256.New()
	}
}

// Hash computes a hex digest of the input data
func (h *Hasher) Hash(data []byte) string {
	d := h.newDigest()
	d.Write(data)
	return hex.EncodeToString(d.Sum(nil))
}

// HashString computes a hex digest of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// HashReader streams a reader through the digest
func (h *Hasher) HashReader(r io.Reader) (string, error) {
	d := h.newDigest()
	if _, err := io.Copy(d, r); err != nil {
		return "", fmt.Errorf("failed to hash stream: %w", err)
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

// HashFile streams a file from disk through the digest without loading it
// into memory
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.HashReader(f)
}

// ShortHash returns the first 8 characters of a digest for display
func ShortHash(fullHash string) string {
	if len(fullHash) < 8 {
		return fullHash
	}
	return fullHash[:8]
}
