package compile

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// evictFraction is the share of maxSize dropped when a full cache takes a new entry.
const evictFraction = 0.2

type entry struct {
	value     string
	createdAt time.Time
	seq       uint64 // insertion order, breaks createdAt ties
}

// Cache memoizes compiled output with a strict TTL and a size cap.
//
// Expiry is lazy: an expired entry is only dropped when it is looked up or
// when capacity eviction reaches it. Reads never extend an entry's lifetime.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	seq     uint64

	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// NewCache returns a cache holding at most maxSize entries for ttl each.
//
// ttl <= 0 keeps entries until evicted for capacity. maxSize <= 0 disables
// caching: Get always misses and Put is a no-op.
func NewCache(ttl time.Duration, maxSize int) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the output stored under key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.ttl > 0 && c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Put stores value under key.
//
// When the cache is full, the oldest ceil(maxSize*0.2) entries are evicted
// first. Replacing an existing key does not grow the cache and evicts nothing.
func (c *Cache) Put(key, value string) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		c.evictOldest(evictCount(c.maxSize))
	}
	c.seq++
	c.entries[key] = entry{value: value, createdAt: c.now(), seq: c.seq}
}

// Len returns the number of entries, expired ones included. A nil Cache is
// empty.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest drops the n entries with the smallest createdAt. c.mu must be held.
func (c *Cache) evictOldest(n int) {
	type aged struct {
		key       string
		createdAt time.Time
		seq       uint64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.createdAt, e.seq})
	}
	slices.SortFunc(all, func(a, b aged) int {
		return cmp.Or(a.createdAt.Compare(b.createdAt), cmp.Compare(a.seq, b.seq))
	})
	for _, a := range all[:min(n, len(all))] {
		delete(c.entries, a.key)
	}
}

func evictCount(maxSize int) int {
	n := (maxSize*int(evictFraction*100) + 99) / 100
	return max(n, 1)
}
