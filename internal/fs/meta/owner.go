package meta

import (
	"os/user"
	"strconv"
	"sync"
)

// Identity lookups hit the user/group database once per id and are cached
// for the life of the process. Enumerating a large directory owned by one
// user costs a single lookup.
var identities = struct {
	sync.RWMutex
	users  map[uint32]string
	groups map[uint32]string
}{
	users:  make(map[uint32]string),
	groups: make(map[uint32]string),
}

func ownerName(uid uint32) string {
	identities.RLock()
	name, ok := identities.users[uid]
	identities.RUnlock()
	if ok {
		return name
	}

	name = strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(name); err == nil && u.Username != "" {
		name = u.Username
	}

	identities.Lock()
	identities.users[uid] = name
	identities.Unlock()
	return name
}

func groupName(gid uint32) string {
	identities.RLock()
	name, ok := identities.groups[gid]
	identities.RUnlock()
	if ok {
		return name
	}

	name = strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(name); err == nil && g.Name != "" {
		name = g.Name
	}

	identities.Lock()
	identities.groups[gid] = name
	identities.Unlock()
	return name
}
