// Package session provides navigation session management for NavFS.
//
// A session is one caller's position in the filesystem: a current
// directory plus a back/forward trail of visited directories. Relative
// paths in commands resolve against the session's current directory.
//
// Components:
//   - Manager: session lifecycle and lookup by prefixed ULID
//   - Session: current directory, bounded history, back/forward stepping
//
// Callers that never create a session explicitly share a lazily created
// default session rooted at the configured navigation root.
//
// Example Usage:
//
//	manager := session.NewManager("/storage")
//	s := manager.Create()
//	s.Visit("/storage/projects")
//	prev, ok := s.Back()
package session
