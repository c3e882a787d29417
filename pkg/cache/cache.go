// Package cache is a TTL'd key-value cache used to memoize read paths.
// Mutating operations call Purge to invalidate all entries.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Cache struct {
	lru *expirable.LRU[string, any]
}

func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *Cache) Set(key string, v any) {
	c.lru.Add(key, v)
}

func (c *Cache) Purge() {
	c.lru.Purge()
}

// Key composes a cache key from its parts.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
