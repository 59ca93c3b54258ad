package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := gen.GenerateString()
		assert.False(t, seen[s], "duplicate ULID generated")
		seen[s] = true
	}
}

func TestTypedPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewSessionID().String(), "sess_"))
	assert.True(t, strings.HasPrefix(NewWatchID().String(), "watch_"))
	assert.True(t, strings.HasPrefix(NewRequestID().String(), "req_"))
	assert.True(t, strings.HasPrefix(NewOperationID().String(), "op_"))
}

func TestIsValid(t *testing.T) {
	raw := Default().GenerateString()
	assert.True(t, IsValid(raw))
	assert.False(t, IsValid("not-a-ulid"))
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	raw := Default().GenerateString()
	after := time.Now().Add(time.Second)

	ts, err := Timestamp(raw)
	assert.NoError(t, err)
	assert.True(t, ts.After(before) && ts.Before(after))
}

func TestSortable(t *testing.T) {
	first := Default().GenerateString()
	time.Sleep(2 * time.Millisecond)
	second := Default().GenerateString()
	assert.Less(t, first, second, "ULIDs should sort by generation time")
}
