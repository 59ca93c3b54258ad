package watch

import (
	"io/fs"
	"os"
	"sync/atomic"
	"time"
)

// fingerprint is the per-entry state the poller diffs between scans.
type fingerprint struct {
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

// Poller implements the Watcher contract by snapshot diffing. A rename
// inside the directory degrades to a delete plus a create: without kernel
// cookies the two halves of a move cannot be correlated.
type Poller struct {
	dir      string
	cb       Callback
	interval time.Duration

	seen    map[string]fingerprint
	stopped atomic.Bool
}

// NewPoller builds a polling watcher and takes the initial snapshot, so
// entries existing at creation are not reported as created.
func NewPoller(dir string, cb Callback, opts Options) (*Poller, error) {
	opts = opts.withDefaults()
	p := &Poller{
		dir:      dir,
		cb:       cb,
		interval: opts.PollInterval,
	}
	snap, err := p.scan()
	if err != nil {
		return nil, err
	}
	p.seen = snap
	return p, nil
}

// Run rescans the directory each interval and emits the diff until Stop.
// A transiently unreadable directory keeps the previous snapshot and
// retries; the error is not escalated.
func (p *Poller) Run() error {
	for {
		if p.stopped.Load() {
			return nil
		}
		time.Sleep(p.interval)
		if p.stopped.Load() {
			return nil
		}

		current, err := p.scan()
		if err != nil {
			continue
		}
		p.diff(current)
		p.seen = current
	}
}

func (p *Poller) scan() (map[string]fingerprint, error) {
	dirents, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, err
	}
	snap := make(map[string]fingerprint, len(dirents))
	for _, de := range dirents {
		info, err := de.Info()
		if err != nil {
			continue
		}
		snap[de.Name()] = fingerprint{
			size:    info.Size(),
			modTime: info.ModTime(),
			mode:    info.Mode(),
		}
	}
	return snap, nil
}

func (p *Poller) diff(current map[string]fingerprint) {
	for name, now := range current {
		before, existed := p.seen[name]
		switch {
		case !existed:
			p.cb(name, ActionCreate)
		case now.size != before.size || !now.modTime.Equal(before.modTime):
			p.cb(name, ActionModify)
		case now.mode != before.mode:
			p.cb(name, ActionAttrib)
		}
	}
	for name := range p.seen {
		if _, ok := current[name]; !ok {
			p.cb(name, ActionDelete)
		}
	}
}

// Stop is safe from any goroutine and observed within one interval.
func (p *Poller) Stop() {
	p.stopped.Store(true)
}
