// Package watch owns directory-watch lifecycles: starting and stopping
// watchers by ID, recording recent events per watch, and fanning events
// out to stream subscribers.
package watch

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	fswatch "github.com/GriffinCanCode/NavFS/internal/fs/watch"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NavFS/internal/shared/id"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Subscriber receives every event from every watch. Delivery happens on
// the watch goroutine; subscribers must not block.
type Subscriber func(types.WatchEvent)

// active is one running watch: its watcher goroutine plus a bounded ring
// of the most recent events.
type active struct {
	id        id.WatchID
	dir       string
	watcher   fswatch.Watcher
	startedAt time.Time
	done      chan struct{}

	mu     sync.Mutex
	events []types.WatchEvent
	total  uint64
}

// Manager owns all watches for one service instance.
type Manager struct {
	opts    fswatch.Options
	ringCap int
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu      sync.RWMutex
	watches map[id.WatchID]*active
	subs    map[string]Subscriber
}

// NewManager creates a watch manager. Metrics may be nil in tests.
func NewManager(opts fswatch.Options, ringCap int, logger *logging.Logger, metrics *monitoring.Metrics) *Manager {
	if ringCap <= 0 {
		ringCap = 256
	}
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Manager{
		opts:    opts,
		ringCap: ringCap,
		logger:  logger,
		metrics: metrics,
		watches: make(map[id.WatchID]*active),
		subs:    make(map[string]Subscriber),
	}
}

// Start begins watching one directory, non-recursively, and returns the
// watch ID. The watcher runs on its own goroutine, isolated from the
// command path.
func (m *Manager) Start(dir string) (id.WatchID, error) {
	wid := id.NewWatchID()
	a := &active{
		id:        wid,
		dir:       dir,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	w, err := fswatch.New(dir, func(name string, action fswatch.Action) {
		m.deliver(a, name, action)
	}, m.opts)
	if err != nil {
		return "", fmt.Errorf("watch %s: %w", dir, err)
	}
	a.watcher = w

	m.mu.Lock()
	m.watches[wid] = a
	count := len(m.watches)
	m.mu.Unlock()
	if m.metrics != nil {
		m.metrics.SetWatchesActive(count)
	}

	go func() {
		defer close(a.done)
		if err := w.Run(); err != nil {
			m.logger.Error("watch loop failed",
				zap.String("watch_id", wid.String()),
				zap.String("dir", dir),
				zap.Error(err),
			)
		}
	}()

	m.logger.Info("watch started", zap.String("watch_id", wid.String()), zap.String("dir", dir))
	return wid, nil
}

// deliver records one event and fans it out.
func (m *Manager) deliver(a *active, name string, action fswatch.Action) {
	event := types.WatchEvent{
		WatchID: a.id.String(),
		Dir:     a.dir,
		Name:    name,
		Action:  int(action),
		Event:   action.String(),
		At:      time.Now(),
	}

	a.mu.Lock()
	a.events = append(a.events, event)
	if len(a.events) > m.ringCap {
		a.events = a.events[len(a.events)-m.ringCap:]
	}
	a.total++
	a.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordWatchEvent(event.Event)
	}

	m.mu.RLock()
	for _, sub := range m.subs {
		sub(event)
	}
	m.mu.RUnlock()
}

// Stop ends one watch and waits for its loop to exit, bounded by the
// backoff interval the Watcher contract promises.
func (m *Manager) Stop(wid id.WatchID) bool {
	m.mu.Lock()
	a, ok := m.watches[wid]
	if ok {
		delete(m.watches, wid)
	}
	count := len(m.watches)
	m.mu.Unlock()
	if !ok {
		return false
	}

	a.watcher.Stop()
	<-a.done
	if m.metrics != nil {
		m.metrics.SetWatchesActive(count)
	}
	m.logger.Info("watch stopped", zap.String("watch_id", wid.String()), zap.String("dir", a.dir))
	return true
}

// StopAll ends every watch; called at shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	all := make([]*active, 0, len(m.watches))
	for _, a := range m.watches {
		all = append(all, a)
	}
	m.watches = make(map[id.WatchID]*active)
	m.mu.Unlock()

	for _, a := range all {
		a.watcher.Stop()
		<-a.done
	}
	if m.metrics != nil {
		m.metrics.SetWatchesActive(0)
	}
}

// List summarizes all running watches.
func (m *Manager) List() []map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]map[string]interface{}, 0, len(m.watches))
	for _, a := range m.watches {
		a.mu.Lock()
		out = append(out, map[string]interface{}{
			"watch_id":   a.id.String(),
			"dir":        a.dir,
			"started_at": a.startedAt,
			"events":     a.total,
		})
		a.mu.Unlock()
	}
	return out
}

// Events returns a watch's recent events, oldest first. The ring holds at
// most the configured capacity; older events are gone.
func (m *Manager) Events(wid id.WatchID) ([]types.WatchEvent, bool) {
	m.mu.RLock()
	a, ok := m.watches[wid]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]types.WatchEvent, len(a.events))
	copy(out, a.events)
	return out, true
}

// Count returns the number of running watches.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.watches)
}

// Subscribe registers a fan-out subscriber keyed by token; the returned
// cancel removes it.
func (m *Manager) Subscribe(token string, sub Subscriber) func() {
	m.mu.Lock()
	m.subs[token] = sub
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, token)
		m.mu.Unlock()
	}
}
