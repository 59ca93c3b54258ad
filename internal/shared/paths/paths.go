package paths

import "strings"

// MaxPathLength bounds accepted path lengths. Longer inputs are rejected as
// unsafe before any syscall sees them.
const MaxPathLength = 4096

// DefaultDenylist holds the system directory prefixes no mutating command
// may target. Entries keep their trailing slash; the directory itself is
// covered as well.
var DefaultDenylist = []string{
	"/bin/",
	"/sbin/",
	"/usr/bin/",
	"/usr/sbin/",
	"/etc/",
	"/boot/",
	"/lib/",
	"/lib64/",
	"/root/",
	"/var/log/",
	"/proc/",
	"/sys/",
}

// Policy is an owned safety configuration. Each dispatcher instance holds
// its own value; there is no package-global mutable state.
type Policy struct {
	// Root confines absolute paths when set to anything narrower than "/".
	Root string
	// Denied lists directory prefixes (trailing slash) that are off limits.
	Denied []string
}

// NewPolicy builds a policy from a logical root and extra denylist entries
// appended to the defaults.
func NewPolicy(root string, extra []string) Policy {
	denied := make([]string, 0, len(DefaultDenylist)+len(extra))
	denied = append(denied, DefaultDenylist...)
	for _, e := range extra {
		if e == "" {
			continue
		}
		if !strings.HasSuffix(e, "/") {
			e += "/"
		}
		denied = append(denied, e)
	}
	if root == "" {
		root = "/"
	}
	return Policy{Root: Normalize(root), Denied: denied}
}

// DefaultPolicy returns a policy with the stock denylist and an
// unconfined root.
func DefaultPolicy() Policy {
	return NewPolicy("/", nil)
}

// IsSafe reports whether a path may be the target of a mutating command.
// It is false when the normalized path escapes above the logical root via
// "..", lies under a denied prefix, embeds a NUL byte, or exceeds
// MaxPathLength. It never panics; callers must check it before mutating.
func (p Policy) IsSafe(path string) bool {
	if path == "" || len(path) > MaxPathLength {
		return false
	}
	if strings.IndexByte(path, 0) >= 0 {
		return false
	}

	n := Normalize(path)
	if n == ".." || strings.HasPrefix(n, "../") {
		return false
	}
	for _, prefix := range p.Denied {
		if strings.HasPrefix(n, prefix) || n == strings.TrimSuffix(prefix, "/") {
			return false
		}
	}
	if p.Root != "" && p.Root != "/" && strings.HasPrefix(n, "/") {
		if n != p.Root && !strings.HasPrefix(n, p.Root+"/") {
			return false
		}
	}
	return true
}

// IsSafe validates a path against the default policy.
func IsSafe(path string) bool {
	return DefaultPolicy().IsSafe(path)
}
