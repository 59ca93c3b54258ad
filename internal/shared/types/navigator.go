package types

import "time"

// EntryKind identifies what a filesystem node is. The kind is always
// decided by a link-preserving stat, so a symlink reports KindSymlink even
// when its target is missing.
type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
	KindSymlink   EntryKind = "symlink"
)

// FileEntry is one filesystem node's metadata snapshot. Entries are built
// fresh per call and carry no identity beyond path+inode at snapshot time.
type FileEntry struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Kind        EntryKind `json:"kind"`
	Size        int64     `json:"size"`
	Modified    time.Time `json:"modified"`
	Created     time.Time `json:"created"`
	Extension   string    `json:"extension,omitempty"`
	Hidden      bool      `json:"hidden"`
	ReadOnly    bool      `json:"read_only"`
	Mode        uint32    `json:"mode"`
	Permissions string    `json:"permissions"`
	Owner       string    `json:"owner"`
	Group       string    `json:"group"`
	LinkTarget  string    `json:"link_target,omitempty"`
	Inode       uint64    `json:"inode"`
	Links       uint64    `json:"links"`
	Depth       int       `json:"depth"`
}

// IsDir reports whether the entry is a directory (never true for a symlink
// to a directory).
func (e *FileEntry) IsDir() bool { return e.Kind == KindDirectory }

// DiskUsage is a live snapshot of the filesystem containing a path. Values
// are read fresh on every call and never cached.
type DiskUsage struct {
	Path               string  `json:"path"`
	Filesystem         string  `json:"filesystem"`
	TotalBytes         uint64  `json:"total_bytes"`
	FreeBytes          uint64  `json:"free_bytes"`
	AvailableBytes     uint64  `json:"available_bytes"`
	UsedBytes          uint64  `json:"used_bytes"`
	UsagePercent       float64 `json:"usage_percent"`
	TotalFormatted     string  `json:"total_formatted"`
	FreeFormatted      string  `json:"free_formatted"`
	AvailableFormatted string  `json:"available_formatted"`
	UsedFormatted      string  `json:"used_formatted"`
}

// ListOptions controls enumeration behavior.
//
// MaxDepth counts levels below the listed root: immediate children sit at
// depth 0, so MaxDepth=1 is equivalent to a non-recursive listing and
// MaxDepth=0 means unlimited.
type ListOptions struct {
	Recursive      bool   `json:"recursive"`
	ShowHidden     bool   `json:"show_hidden"`
	NamePattern    string `json:"pattern,omitempty"`
	MaxDepth       int    `json:"max_depth,omitempty"`
	FollowSymlinks bool   `json:"follow_symlinks"`
}

// CopyOptions controls copy behavior and attribute propagation. A
// directory source is refused unless Recursive is set.
type CopyOptions struct {
	Recursive           bool `json:"recursive"`
	Overwrite           bool `json:"overwrite"`
	PreserveTimestamps  bool `json:"preserve_timestamps"`
	PreservePermissions bool `json:"preserve_permissions"`
	PreserveOwner       bool `json:"preserve_owner"`
	CreateDestDirs      bool `json:"create_dest_dirs"`
}

// WatchEvent is one classified change observed in a watched directory.
// Action carries the numeric code (1=create, 2=delete, 3=modify,
// 4=moved_from, 5=moved_to, 6=attribute_change); Event is its wire label.
type WatchEvent struct {
	WatchID string    `json:"watch_id"`
	Dir     string    `json:"dir"`
	Name    string    `json:"name"`
	Action  int       `json:"action"`
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
}

// HistoryEntry is one visited directory in a navigation session.
type HistoryEntry struct {
	Path      string    `json:"path"`
	VisitedAt time.Time `json:"visited_at"`
	Age       string    `json:"age,omitempty"`
	Current   bool      `json:"current,omitempty"`
}
