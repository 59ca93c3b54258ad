// Package disk reports filesystem capacity. Every call issues a fresh
// statfs; nothing is cached, so a snapshot is live by construction.
package disk

import (
	"golang.org/x/sys/unix"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/GriffinCanCode/NavFS/internal/shared/utils"
)

// fsNames maps statfs magic numbers to filesystem labels. Unlisted magics
// report as "unknown"; the byte figures are still valid.
var fsNames = map[int64]string{
	0xef53:     "ext4",
	0x9123683e: "btrfs",
	0x58465342: "xfs",
	0x2fc12fc1: "zfs",
	0x01021994: "tmpfs",
	0x6969:     "nfs",
	0x65735546: "fuse",
	0x4d44:     "vfat",
	0x5346544e: "ntfs",
	0x794c7630: "overlayfs",
	0x137d:     "ext",
	0x9fa0:     "proc",
	0x62656572: "sysfs",
	0x73717368: "squashfs",
	0x24051905: "ubifs",
	0xf15f:     "ecryptfs",
	0x5346414f: "afs",
	0x47504653: "gpfs",
}

// Usage returns a live capacity snapshot for the filesystem containing
// path. Used bytes are total minus free; the percentage is used over total
// and 0 on an empty filesystem.
func Usage(path string) (*types.DiskUsage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, err
	}

	bs := uint64(st.Bsize)
	total := st.Blocks * bs
	free := st.Bfree * bs
	avail := st.Bavail * bs
	used, percent := usedSpace(total, free)

	return &types.DiskUsage{
		Path:               path,
		Filesystem:         fsName(int64(st.Type)),
		TotalBytes:         total,
		FreeBytes:          free,
		AvailableBytes:     avail,
		UsedBytes:          used,
		UsagePercent:       percent,
		TotalFormatted:     utils.FormatBytes(total),
		FreeFormatted:      utils.FormatBytes(free),
		AvailableFormatted: utils.FormatBytes(avail),
		UsedFormatted:      utils.FormatBytes(used),
	}, nil
}

// usedSpace derives used bytes and the usage percentage from a total/free
// pair. An empty filesystem reports 0%.
func usedSpace(total, free uint64) (uint64, float64) {
	used := total - free
	if total == 0 {
		return used, 0
	}
	return used, float64(used) / float64(total) * 100
}

func fsName(magic int64) string {
	if name, ok := fsNames[magic]; ok {
		return name
	}
	return "unknown"
}
