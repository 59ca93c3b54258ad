package meta

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Collect builds a FileEntry for one filesystem node at depth 0.
func Collect(path string) (*types.FileEntry, error) {
	return CollectAt(path, 0)
}

// CollectAt builds a FileEntry recording the given enumeration depth. The
// node is examined with lstat so the final symlink is never dereferenced.
func CollectAt(path string, depth int) (*types.FileEntry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	st, _ := info.Sys().(*syscall.Stat_t)
	name := filepath.Base(path)

	entry := &types.FileEntry{
		Name:     name,
		Path:     path,
		Kind:     kindOf(info.Mode()),
		Modified: info.ModTime(),
		Hidden:   strings.HasPrefix(name, "."),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
		Depth:    depth,
	}

	// Directories and symlinks report size 0; only regular files carry
	// their byte count.
	if entry.Kind == types.KindFile {
		entry.Size = info.Size()
		if ext := filepath.Ext(name); ext != "" {
			entry.Extension = strings.TrimPrefix(ext, ".")
		}
	}

	if entry.Kind == types.KindSymlink {
		if target, err := os.Readlink(path); err == nil {
			entry.LinkTarget = target
		}
	}

	if st != nil {
		entry.Mode = uint32(st.Mode) & 0o7777
		entry.Permissions = PermissionString(uint32(st.Mode))
		entry.Owner = ownerName(st.Uid)
		entry.Group = groupName(st.Gid)
		entry.Inode = st.Ino
		entry.Links = uint64(st.Nlink)
		entry.Created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}

	return entry, nil
}

func kindOf(mode os.FileMode) types.EntryKind {
	switch {
	case mode&os.ModeSymlink != 0:
		return types.KindSymlink
	case mode.IsDir():
		return types.KindDirectory
	default:
		return types.KindFile
	}
}
