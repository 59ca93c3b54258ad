package meta

import "syscall"

// PermissionString renders a raw stat mode as the 10-character shell form:
// type character plus three rwx triplets, with setuid/setgid/sticky shown
// as s/S and t/T overlays on the execute positions.
func PermissionString(mode uint32) string {
	b := [10]byte{}
	b[0] = typeChar(mode)

	b[1] = rw(mode&0o400 != 0, 'r')
	b[2] = rw(mode&0o200 != 0, 'w')
	b[3] = overlay(mode&0o100 != 0, mode&0o4000 != 0, 's', 'S')

	b[4] = rw(mode&0o040 != 0, 'r')
	b[5] = rw(mode&0o020 != 0, 'w')
	b[6] = overlay(mode&0o010 != 0, mode&0o2000 != 0, 's', 'S')

	b[7] = rw(mode&0o004 != 0, 'r')
	b[8] = rw(mode&0o002 != 0, 'w')
	b[9] = overlay(mode&0o001 != 0, mode&0o1000 != 0, 't', 'T')

	return string(b[:])
}

func typeChar(mode uint32) byte {
	switch mode & syscall.S_IFMT {
	case syscall.S_IFDIR:
		return 'd'
	case syscall.S_IFLNK:
		return 'l'
	case syscall.S_IFIFO:
		return 'p'
	case syscall.S_IFSOCK:
		return 's'
	case syscall.S_IFCHR:
		return 'c'
	case syscall.S_IFBLK:
		return 'b'
	default:
		return '-'
	}
}

func rw(set bool, c byte) byte {
	if set {
		return c
	}
	return '-'
}

// overlay picks the execute-position character: plain x when only the
// execute bit is set, lower special when both bits are set, upper special
// when the special bit is set without execute.
func overlay(exec, special bool, lower, upper byte) byte {
	switch {
	case exec && special:
		return lower
	case special:
		return upper
	case exec:
		return 'x'
	default:
		return '-'
	}
}
