package riffle

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes resolutions by change-set fingerprint. Change-sets for
// large reviews are resolved repeatedly by watch loops and editor
// integrations, and resolution is pure, so identical inputs can share one
// computation. The cache stores private copies and returns fresh copies,
// so callers may mutate what they get back.
type Cache struct {
	entries *lru.Cache[string, *Resolution]
}

// NewCache creates a cache that retains up to size resolutions, evicting
// the least recently used.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, *Resolution](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Resolve returns the resolution for the change-set, computing it on a
// miss. Errors are not cached; a failing change-set is re-validated on
// every call.
func (c *Cache) Resolve(cs *ChangeSet) (*Resolution, error) {
	key := cs.Fingerprint()
	if res, ok := c.entries.Get(key); ok {
		return res.Clone(), nil
	}
	res, err := Resolve(cs)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, res.Clone())
	return res, nil
}

// Len returns the number of cached resolutions.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached resolution.
func (c *Cache) Purge() {
	c.entries.Purge()
}
