package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []struct {
		name   string
		action Action
	}
}

func (r *recorder) record(name string, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, struct {
		name   string
		action Action
	}{name, action})
}

func (r *recorder) find(name string, action Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.name == name && e.action == action {
			return true
		}
	}
	return false
}

// waitFor polls until the recorder holds the event or the deadline hits.
func waitFor(t *testing.T, r *recorder, name string, action Action) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if r.find(name, action) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestActionLabels(t *testing.T) {
	assert.Equal(t, "create", ActionCreate.String())
	assert.Equal(t, "delete", ActionDelete.String())
	assert.Equal(t, "modify", ActionModify.String())
	assert.Equal(t, "moved_from", ActionMovedFrom.String())
	assert.Equal(t, "moved_to", ActionMovedTo.String())
	assert.Equal(t, "attribute_change", ActionAttrib.String())
	assert.Equal(t, 1, int(ActionCreate))
	assert.Equal(t, 6, int(ActionAttrib))
}

func runWatcher(t *testing.T, w Watcher) chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- w.Run() }()
	return done
}

func stopWatcher(t *testing.T, w Watcher, done chan error) {
	t.Helper()
	w.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not observe Stop")
	}
}

func TestPollerCreateModifyDelete(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	p, err := NewPoller(dir, rec.record, Options{PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)
	done := runWatcher(t, p)
	defer stopWatcher(t, p, done)

	file := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o644))
	assert.True(t, waitFor(t, rec, "note.txt", ActionCreate))

	// Force a size change so timestamp granularity cannot hide the edit.
	require.NoError(t, os.WriteFile(file, []byte("one two three"), 0o644))
	assert.True(t, waitFor(t, rec, "note.txt", ActionModify))

	require.NoError(t, os.Remove(file))
	assert.True(t, waitFor(t, rec, "note.txt", ActionDelete))
}

func TestPollerIgnoresPreexisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.txt"), []byte("x"), 0o644))

	rec := &recorder{}
	p, err := NewPoller(dir, rec.record, Options{PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)
	done := runWatcher(t, p)

	time.Sleep(100 * time.Millisecond)
	stopWatcher(t, p, done)
	assert.False(t, rec.find("old.txt", ActionCreate))
}

func TestNewPicksAnImplementation(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	w, err := New(dir, rec.record, Options{Backoff: 20 * time.Millisecond, PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)
	done := runWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen.txt"), []byte("x"), 0o644))
	assert.True(t, waitFor(t, rec, "seen.txt", ActionCreate))

	stopWatcher(t, w, done)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), func(string, Action) {}, Options{})
	assert.Error(t, err)
}
