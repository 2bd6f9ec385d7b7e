package feed

import "sync"

// dedupCache is a bounded LRU set of recently seen event keys, used to
// absorb duplicate floods from the push feed. Dedup is in-memory only and
// does not survive restarts.
type dedupCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*dedupEntry
	head       *dedupEntry // most recently seen
	tail       *dedupEntry // least recently seen
}

type dedupEntry struct {
	key  string
	prev *dedupEntry
	next *dedupEntry
}

func newDedupCache(maxEntries int) *dedupCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &dedupCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*dedupEntry),
	}
}

// Seen reports whether the key was already present and records it either
// way, refreshing its recency.
func (c *dedupCache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.moveToFront(e)
		return true
	}

	e := &dedupEntry{key: key}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
	return false
}

func (c *dedupCache) moveToFront(e *dedupEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *dedupCache) addToFront(e *dedupEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *dedupCache) remove(e *dedupEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *dedupCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
