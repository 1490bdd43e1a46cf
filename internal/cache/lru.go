// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package cache provides the bounded, concurrency-safe caches the engine
// keeps around a single process lifetime: bytecode-analysis results,
// compiled jump tables, and similar data that is expensive to recompute but
// cheap to keep in memory for a while.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a thread-safe, fixed-capacity LRU cache. It wraps
// hashicorp/golang-lru/v2's Cache with the narrower Get/Set/Peek vocabulary
// the rest of this package and its callers use.
type LRU[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// NewLRU creates a new LRU cache with the given capacity. Capacity below 1
// is clamped to 1; golang-lru/v2 rejects zero and negative sizes outright.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	c, err := lru.New[K, V](capacity)
	if err != nil {
		// Only reachable if capacity <= 0, which the clamp above rules out.
		panic(err)
	}
	return &LRU[K, V]{inner: c}
}

// Get retrieves a value from the cache, marking it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Peek retrieves a value without updating recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	return c.inner.Peek(key)
}

// Set adds or updates a value in the cache.
func (c *LRU[K, V]) Set(key K, value V) {
	c.inner.Add(key, value)
}

// Delete removes a key from the cache.
func (c *LRU[K, V]) Delete(key K) bool {
	return c.inner.Remove(key)
}

// Contains checks if a key exists in the cache without updating recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.inner.Contains(key)
}

// Len returns the current number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return c.inner.Len()
}

// Clear removes all items from the cache.
func (c *LRU[K, V]) Clear() {
	c.inner.Purge()
}

// Keys returns all keys in the cache, from least to most recently used
// (golang-lru/v2's own ordering).
func (c *LRU[K, V]) Keys() []K {
	return c.inner.Keys()
}

// ARC is a simplified Adaptive Replacement Cache built from four LRU
// segments: T1/T2 hold live values (recently- vs frequently-used), B1/B2
// hold only ghost keys marking recent evictions so Set can tell whether a
// key cycling back in was a one-off or genuinely hot.
type ARC[K comparable, V any] struct {
	capacity int
	p        int // target size for T1

	t1 *LRU[K, V]
	t2 *LRU[K, V]
	b1 *LRU[K, struct{}]
	b2 *LRU[K, struct{}]

	mu sync.Mutex
}

// NewARC creates a new ARC cache with the given capacity.
func NewARC[K comparable, V any](capacity int) *ARC[K, V] {
	return &ARC[K, V]{
		capacity: capacity,
		t1:       NewLRU[K, V](capacity),
		t2:       NewLRU[K, V](capacity),
		b1:       NewLRU[K, struct{}](capacity),
		b2:       NewLRU[K, struct{}](capacity),
	}
}

// Get retrieves a value from the cache.
func (c *ARC[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if val, ok := c.t2.Get(key); ok {
		return val, true
	}

	if val, ok := c.t1.Peek(key); ok {
		c.t1.Delete(key)
		c.t2.Set(key, val)
		return val, true
	}

	var zero V
	return zero, false
}

// Set adds or updates a value in the cache.
func (c *ARC[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.t2.Contains(key) {
		c.t2.Set(key, value)
		return
	}

	if c.t1.Contains(key) {
		c.t1.Delete(key)
		c.t2.Set(key, value)
		return
	}

	if c.b1.Contains(key) {
		delta := 1
		if c.b2.Len() > c.b1.Len() {
			delta = c.b2.Len() / c.b1.Len()
		}
		c.p = min(c.p+delta, c.capacity)
		c.b1.Delete(key)
		c.replace(key)
		c.t2.Set(key, value)
		return
	}

	if c.b2.Contains(key) {
		delta := 1
		if c.b1.Len() > c.b2.Len() {
			delta = c.b1.Len() / c.b2.Len()
		}
		c.p = max(c.p-delta, 0)
		c.b2.Delete(key)
		c.replace(key)
		c.t2.Set(key, value)
		return
	}

	if c.t1.Len()+c.b1.Len() >= c.capacity {
		if c.t1.Len() < c.capacity {
			c.evictOldest(c.b1)
			c.replace(key)
		} else {
			c.evictOldest(c.t1)
		}
	} else if c.t1.Len()+c.t2.Len()+c.b1.Len()+c.b2.Len() >= c.capacity {
		if c.t1.Len()+c.t2.Len()+c.b1.Len()+c.b2.Len() >= 2*c.capacity {
			c.evictOldest(c.b2)
		}
		c.replace(key)
	}
	c.t1.Set(key, value)
}

func (c *ARC[K, V]) replace(key K) {
	if c.t1.Len() > 0 && (c.t1.Len() > c.p || (c.b2.Contains(key) && c.t1.Len() == c.p)) {
		if keys := c.t1.Keys(); len(keys) > 0 {
			oldKey := keys[0]
			c.t1.Delete(oldKey)
			c.b1.Set(oldKey, struct{}{})
		}
	} else if c.t2.Len() > 0 {
		if keys := c.t2.Keys(); len(keys) > 0 {
			oldKey := keys[0]
			c.t2.Delete(oldKey)
			c.b2.Set(oldKey, struct{}{})
		}
	}
}

// evictOldest drops the least recently used entry of a ghost list; ghost
// lists hold only keys, so nothing downstream needs the evicted value.
func (c *ARC[K, V]) evictOldest(l *LRU[K, struct{}]) {
	if keys := l.Keys(); len(keys) > 0 {
		l.Delete(keys[0])
	}
}

// Len returns the total number of live items in the cache (T1 + T2; ghost
// entries in B1/B2 don't count).
func (c *ARC[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t1.Len() + c.t2.Len()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
