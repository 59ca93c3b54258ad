package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fswatch "github.com/GriffinCanCode/NavFS/internal/fs/watch"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

func newTestManager() *Manager {
	opts := fswatch.Options{Backoff: 20 * time.Millisecond, PollInterval: 20 * time.Millisecond}
	return NewManager(opts, 8, nil, nil)
}

func TestStartStopLifecycle(t *testing.T) {
	m := newTestManager()
	dir := t.TempDir()

	wid, err := m.Start(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wid.String(), "watch_"))
	assert.Equal(t, 1, m.Count())
	assert.Len(t, m.List(), 1)

	assert.True(t, m.Stop(wid))
	assert.Equal(t, 0, m.Count())
	assert.False(t, m.Stop(wid))
}

func TestStartMissingDirectory(t *testing.T) {
	m := newTestManager()
	_, err := m.Start(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestEventsRecordedAndFannedOut(t *testing.T) {
	m := newTestManager()
	dir := t.TempDir()

	var mu sync.Mutex
	var streamed []types.WatchEvent
	cancel := m.Subscribe("test", func(e types.WatchEvent) {
		mu.Lock()
		streamed = append(streamed, e)
		mu.Unlock()
	})
	defer cancel()

	wid, err := m.Start(dir)
	require.NoError(t, err)
	defer m.Stop(wid)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		events, ok := m.Events(wid)
		require.True(t, ok)
		if len(events) > 0 {
			assert.Equal(t, "new.txt", events[0].Name)
			assert.Equal(t, "create", events[0].Event)
			assert.Equal(t, 1, events[0].Action)
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	events, _ := m.Events(wid)
	require.NotEmpty(t, events, "no event observed before deadline")

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, streamed)
	assert.Equal(t, wid.String(), streamed[0].WatchID)
}

func TestEventsUnknownWatch(t *testing.T) {
	m := newTestManager()
	_, ok := m.Events("watch_missing")
	assert.False(t, ok)
}

func TestStopAll(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 3; i++ {
		_, err := m.Start(t.TempDir())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, m.Count())

	m.StopAll()
	assert.Equal(t, 0, m.Count())
}
