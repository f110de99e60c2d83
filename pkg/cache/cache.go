package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded key/value store. Storing an existing key replaces its value.
// Implementations are safe for concurrent use.
type Cache[K comparable, V any] interface {
	Put(key K, value V)
	Get(key K) (V, bool)
	Len() int
	Cap() int
}

var _ Cache[string, int] = (*LRU[string, int])(nil)

// LRU is a Cache that evicts the least recently used entry once full.
type LRU[K comparable, V any] struct {
	size  int
	cache *lru.Cache[K, V]
}

// NewLRU returns an LRU holding at most size entries. onEvict, when not nil, is
// invoked for every entry pushed out by capacity.
func NewLRU[K comparable, V any](size int, onEvict func(K, V)) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	c, err := lru.NewWithEvict[K, V](size, onEvict)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &LRU[K, V]{size: size, cache: c}, nil
}

// Put stores value under key, marking it most recently used.
func (c *LRU[K, V]) Put(key K, value V) {
	c.cache.Add(key, value)
}

// Get returns the value stored under key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

// Contains reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.cache.Contains(key)
}

// Keys returns the cached keys, oldest first.
func (c *LRU[K, V]) Keys() []K {
	return c.cache.Keys()
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.cache.Len()
}

// Cap returns the capacity.
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// Purge drops every entry. The eviction callback is invoked for each of them.
func (c *LRU[K, V]) Purge() {
	c.cache.Purge()
}
