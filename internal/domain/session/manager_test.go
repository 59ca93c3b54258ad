package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndResolve(t *testing.T) {
	m := NewManager("/root-dir")

	s := m.Create()
	assert.True(t, strings.HasPrefix(s.ID.String(), "sess_"))
	assert.Equal(t, "/root-dir", s.Cwd())

	sid := s.ID.String()
	got, err := m.Resolve(&sid)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	missing := "sess_nope"
	_, err = m.Resolve(&missing)
	assert.Error(t, err)
}

func TestResolveDefaultIsShared(t *testing.T) {
	m := NewManager("/base")

	a, err := m.Resolve(nil)
	require.NoError(t, err)
	b, err := m.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "/base", a.Cwd())
}

func TestBackForward(t *testing.T) {
	m := NewManager("/a")
	s := m.Create()

	s.Visit("/a/b")
	s.Visit("/a/b/c")
	assert.Equal(t, "/a/b/c", s.Cwd())

	path, ok := s.Back()
	assert.True(t, ok)
	assert.Equal(t, "/a/b", path)

	path, ok = s.Back()
	assert.True(t, ok)
	assert.Equal(t, "/a", path)

	_, ok = s.Back()
	assert.False(t, ok)

	path, ok = s.Forward()
	assert.True(t, ok)
	assert.Equal(t, "/a/b", path)

	// Visiting somewhere new truncates the forward trail.
	s.Visit("/elsewhere")
	_, ok = s.Forward()
	assert.False(t, ok)

	entries, pos := s.History()
	assert.Equal(t, len(entries)-1, pos)
	assert.Equal(t, "/elsewhere", entries[pos].Path)
	assert.True(t, entries[pos].Current)
}

func TestVisitSameDirIsNoop(t *testing.T) {
	m := NewManager("/a")
	s := m.Create()
	s.Visit("/a")

	entries, _ := s.History()
	assert.Len(t, entries, 1)
}

func TestListAndCount(t *testing.T) {
	m := NewManager("/a")
	m.Create()
	s := m.Create()
	assert.Equal(t, 2, m.Count())

	m.Remove(s.ID)
	assert.Equal(t, 1, m.Count())
	assert.Len(t, m.List(), 1)
}
