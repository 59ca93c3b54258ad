// Package watch observes one directory for changes.
//
// Two implementations satisfy the same Watcher contract: an inotify
// decoder that reads the kernel's variable-length event records, and a
// snapshot-diffing poller for platforms or mounts where inotify is not
// available. Watching is non-recursive; the kernel queue (or the poll
// interval) is the only buffer, so a slow callback stalls delivery and
// long work belongs on the callback owner's side.
package watch

import "time"

// Action classifies one directory change. The numeric codes are part of
// the wire contract.
type Action int

const (
	ActionCreate Action = iota + 1
	ActionDelete
	ActionModify
	ActionMovedFrom
	ActionMovedTo
	ActionAttrib
)

// String returns the wire label for the action.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionDelete:
		return "delete"
	case ActionModify:
		return "modify"
	case ActionMovedFrom:
		return "moved_from"
	case ActionMovedTo:
		return "moved_to"
	case ActionAttrib:
		return "attribute_change"
	default:
		return "unknown"
	}
}

// Callback receives one decoded event. It runs on the watch goroutine;
// implementations that need to do real work must offload it themselves.
type Callback func(name string, action Action)

// Watcher is the directory-watch contract. Run blocks until Stop is
// called or the watch fails to start; Stop is safe from any goroutine and
// is observed within one backoff interval. Every exit path releases the
// watcher's descriptors.
type Watcher interface {
	Run() error
	Stop()
}

// Options tunes watcher timing.
type Options struct {
	// Backoff is the retry delay after an empty or transient read and
	// the bound on Stop latency.
	Backoff time.Duration
	// PollInterval is the rescan period for the polling implementation.
	PollInterval time.Duration
}

// DefaultBackoff matches the original monitor's retry delay.
const DefaultBackoff = 100 * time.Millisecond

// DefaultPollInterval is the polling watcher's rescan period.
const DefaultPollInterval = time.Second

func (o Options) withDefaults() Options {
	if o.Backoff <= 0 {
		o.Backoff = DefaultBackoff
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// New builds the best watcher available for the platform: the notification
// facility when it can be initialized, otherwise the poller. The directory
// must exist at creation time.
func New(dir string, cb Callback, opts Options) (Watcher, error) {
	opts = opts.withDefaults()
	if w, err := newNotify(dir, cb, opts); err == nil {
		return w, nil
	}
	return NewPoller(dir, cb, opts)
}
