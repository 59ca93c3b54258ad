package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/GriffinCanCode/NavFS/internal/shared/id"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// maxHistory bounds each session's visited-directory trail.
const maxHistory = 100

// Session is one caller's navigation state: a current directory plus a
// back/forward trail through the directories it has visited.
type Session struct {
	ID        id.SessionID `json:"id"`
	CreatedAt time.Time    `json:"created_at"`

	mu       sync.Mutex
	cwd      string
	history  []entry
	position int // index of cwd within history
	lastUsed time.Time
}

type entry struct {
	path      string
	visitedAt time.Time
}

// Manager owns navigation sessions. Callers that never create a session
// explicitly share the default one, which starts at the configured root.
type Manager struct {
	sessions sync.Map
	root     string

	mu        sync.Mutex
	defaultID id.SessionID
}

// NewManager creates a session manager whose sessions start at root.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Create starts a new session at the manager's root.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        id.NewSessionID(),
		CreatedAt: now,
		cwd:       m.root,
		history:   []entry{{path: m.root, visitedAt: now}},
		lastUsed:  now,
	}
	m.sessions.Store(s.ID, s)
	return s
}

// Get returns the session by ID.
func (m *Manager) Get(sid id.SessionID) (*Session, bool) {
	val, ok := m.sessions.Load(sid)
	if !ok {
		return nil, false
	}
	return val.(*Session), true
}

// Resolve returns the session a request refers to: the named one when an
// ID is given, else the shared default, created on first use.
func (m *Manager) Resolve(sid *string) (*Session, error) {
	if sid != nil && *sid != "" {
		s, ok := m.Get(id.SessionID(*sid))
		if !ok {
			return nil, fmt.Errorf("session not found: %s", *sid)
		}
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.Get(m.defaultID); ok {
		return s, nil
	}
	s := m.Create()
	m.defaultID = s.ID
	return s, nil
}

// Remove deletes a session.
func (m *Manager) Remove(sid id.SessionID) {
	m.sessions.Delete(sid)
}

// List summarizes all live sessions.
func (m *Manager) List() []map[string]interface{} {
	var out []map[string]interface{}
	m.sessions.Range(func(_, value interface{}) bool {
		s := value.(*Session)
		s.mu.Lock()
		out = append(out, map[string]interface{}{
			"session_id": s.ID.String(),
			"path":       s.cwd,
			"created_at": s.CreatedAt,
			"last_used":  humanize.Time(s.lastUsed),
		})
		s.mu.Unlock()
		return true
	})
	return out
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	n := 0
	m.sessions.Range(func(_, _ interface{}) bool { n++; return true })
	return n
}

// Cwd returns the session's current directory.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.cwd
}

// Visit moves the session to dir. Any forward trail is discarded, the way
// a browser history behaves; the caller has already validated the path.
func (s *Session) Visit(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir == s.cwd {
		return
	}

	s.history = s.history[:s.position+1]
	s.history = append(s.history, entry{path: dir, visitedAt: time.Now()})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	s.position = len(s.history) - 1
	s.cwd = dir
	s.lastUsed = time.Now()
}

// Back steps to the previous directory in the trail. It reports whether a
// step was possible; at the trail's start the session stays put.
func (s *Session) Back() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position == 0 {
		return s.cwd, false
	}
	s.position--
	s.cwd = s.history[s.position].path
	s.lastUsed = time.Now()
	return s.cwd, true
}

// Forward steps ahead after a Back.
func (s *Session) Forward() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position >= len(s.history)-1 {
		return s.cwd, false
	}
	s.position++
	s.cwd = s.history[s.position].path
	s.lastUsed = time.Now()
	return s.cwd, true
}

// History returns the visited trail oldest-first, with humanized ages and
// the current position marked.
func (s *Session) History() ([]types.HistoryEntry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.HistoryEntry, len(s.history))
	for i, e := range s.history {
		out[i] = types.HistoryEntry{
			Path:      e.path,
			VisitedAt: e.visitedAt,
			Age:       humanize.Time(e.visitedAt),
			Current:   i == s.position,
		}
	}
	return out, s.position
}
