// Package navigator implements the filesystem navigation vocabulary.
//
// This package is organized into specialized modules:
//   - browse: Enumeration (list, search, glob, tree, dirsize)
//   - nav: Session navigation (cd, pwd, back, forward, history, sessions)
//   - info: Inspection (info, diskinfo, mime, hash, backend status)
//   - mutate: Filesystem changes (mkdir, delete, copy, move, rename, touch,
//     symlink, chmod)
//   - watchops: Change monitoring (watch start/stop/list/events)
//   - archive: Tar archives with gzip/zstd compression
//   - formats: Structured formats (JSON, YAML, TOML)
//
// All commands:
//   - Resolve relative paths against the session's current directory
//   - Validate mutating targets against the safety policy
//   - Return a complete result envelope, success or failure
package navigator
