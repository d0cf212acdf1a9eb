package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a thread-safe in-memory cache with LRU eviction and a uniform
// time-to-live. A non-positive ttl disables expiration and a non-positive
// size disables eviction by count.
type Cache struct {
	lru *expirable.LRU[string, interface{}]
}

// New creates a new cache.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, interface{}](size, nil, ttl),
	}
}

// Set adds an item to the cache with a specified key and value.
func (c *Cache) Set(key string, value interface{}) {
	c.lru.Add(key, value)
}

// Get retrieves the value associated with a key from the cache. Returns false
// if the key does not exist or has expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.lru.Get(key)
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Len returns the number of items currently cached.
func (c *Cache) Len() int {
	return c.lru.Len()
}
