// Package cache records which stylesheets were already linted in this
// process, so that a file passing through several pipeline stages is only
// reported once.
package cache

import "sync"

// Cache is an append-only list of processed resource paths
type Cache struct {
	mu    sync.Mutex
	paths []string
}

// New creates an empty cache
func New() *Cache {
	return &Cache{}
}

var defaultCache = New()

// Default returns the process-wide cache
func Default() *Cache {
	return defaultCache
}

// Contains reports whether path was recorded
func (c *Cache) Contains(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(path) != -1
}

// MarkIfNew records path and returns true, or returns false if path was
// already recorded. The check and the append happen under one lock.
func (c *Cache) MarkIfNew(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(path) != -1 {
		return false
	}
	c.paths = append(c.paths, path)
	return true
}

// Len returns the number of recorded paths
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}

// Reset forgets every path
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = nil
}

func (c *Cache) indexOf(path string) int {
	for i, p := range c.paths {
		if p == path {
			return i
		}
	}
	return -1
}
