// Package paths provides path resolution and safety validation for the
// navigator core.
//
// Resolution composes a caller-supplied path with the session's current
// directory; normalization is purely structural and never touches the
// filesystem. Safety validation combines traversal detection with a
// configurable denylist of system directories, and every mutating command
// must pass it before any syscall is issued.
package paths
