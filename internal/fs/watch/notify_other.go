//go:build !linux

package watch

import "errors"

// The notification facility is Linux-only; other platforms always fall
// through to the poller.
func newNotify(dir string, cb Callback, opts Options) (Watcher, error) {
	return nil, errors.New("change notification not supported on this platform")
}
