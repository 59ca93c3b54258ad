// Package meta converts filesystem nodes into structured metadata records.
//
// Collection is built on link-preserving stat: a symlink is always reported
// as a symlink, broken or not, and its target is recorded without being
// followed. Owner and group names resolve through the platform identity
// database with a mandatory numeric fallback, so the fields are never empty.
package meta
