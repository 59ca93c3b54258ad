//go:build linux

package watch

import (
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const watchMask = unix.IN_CREATE | unix.IN_DELETE | unix.IN_MODIFY |
	unix.IN_MOVED_FROM | unix.IN_MOVED_TO | unix.IN_ATTRIB

// notify decodes inotify records for one directory. The descriptor is
// non-blocking; Run polls it and sleeps the backoff between empty reads,
// which is also what bounds Stop latency.
type notify struct {
	dir     string
	cb      Callback
	backoff time.Duration

	fd      int
	wd      int
	stopped atomic.Bool
}

func newNotify(dir string, cb Callback, opts Options) (Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify init: %w", err)
	}
	wd, err := unix.InotifyAddWatch(fd, dir, watchMask)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("inotify watch %s: %w", dir, err)
	}
	return &notify{
		dir:     dir,
		cb:      cb,
		backoff: opts.Backoff,
		fd:      fd,
		wd:      wd,
	}, nil
}

// Run reads and decodes event records until Stop. Each wake may carry
// zero or more variable-length records; short and empty reads are
// transient and retried after the backoff, never escalated.
func (n *notify) Run() error {
	defer func() {
		unix.InotifyRmWatch(n.fd, uint32(n.wd))
		unix.Close(n.fd)
	}()

	// Room for a full batch of records with maximum-length names.
	buf := make([]byte, 64*(unix.SizeofInotifyEvent+unix.NAME_MAX+1))

	for {
		if n.stopped.Load() {
			return nil
		}

		read, err := unix.Read(n.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				time.Sleep(n.backoff)
				continue
			}
			return fmt.Errorf("inotify read: %w", err)
		}
		if read < unix.SizeofInotifyEvent {
			time.Sleep(n.backoff)
			continue
		}

		n.decode(buf[:read])
	}
}

// decode walks one read's worth of variable-length records, invoking the
// callback once per record that maps to a known action.
func (n *notify) decode(buf []byte) {
	var offset int
	for offset+unix.SizeofInotifyEvent <= len(buf) {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		nameLen := int(raw.Len)

		var name string
		if nameLen > 0 {
			bytes := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+nameLen]
			// The name field is NUL-padded to its declared length.
			for i, b := range bytes {
				if b == 0 {
					bytes = bytes[:i]
					break
				}
			}
			name = string(bytes)
		}

		if action, ok := classify(raw.Mask); ok && name != "" {
			n.cb(name, action)
		}

		offset += unix.SizeofInotifyEvent + nameLen
	}
}

func classify(mask uint32) (Action, bool) {
	switch {
	case mask&unix.IN_CREATE != 0:
		return ActionCreate, true
	case mask&unix.IN_DELETE != 0:
		return ActionDelete, true
	case mask&unix.IN_MODIFY != 0:
		return ActionModify, true
	case mask&unix.IN_MOVED_FROM != 0:
		return ActionMovedFrom, true
	case mask&unix.IN_MOVED_TO != 0:
		return ActionMovedTo, true
	case mask&unix.IN_ATTRIB != 0:
		return ActionAttrib, true
	default:
		return 0, false
	}
}

// Stop is safe from any goroutine; Run observes it at the top of its next
// iteration, within one backoff interval.
func (n *notify) Stop() {
	n.stopped.Store(true)
}
