// Package memo provides time-bounded memoization for idempotent outbound
// calls (backend reads, LLM decisions). Entries expire lazily and the cache
// is bounded with least-recently-used eviction.
package memo

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry struct {
	key     uint64
	value   any
	expires time.Time
}

// Cache memoizes call results by fingerprint key.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	items   map[uint64]*list.Element
	order   *list.List // front = most recently used
}

func New(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Cache{
		ttl:     ttl,
		maxSize: maxSize,
		items:   make(map[uint64]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached value for key if present and not expired.
// Expired entries are evicted on access.
func (c *Cache) Get(key uint64) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if time.Now().After(e.expires) {
		c.order.Remove(el)
		delete(c.items, key)
		return nil, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Set stores a value under key, evicting the least-recently-used entry
// when the cache is full.
func (c *Cache) Set(key uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expires = time.Now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}

	el := c.order.PushFront(&entry{key: key, value: value, expires: time.Now().Add(c.ttl)})
	c.items[key] = el
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Do returns the cached value for key, or runs fn and caches its result.
// Errors propagate uncached. Concurrent callers that miss on the same key
// may each run fn; the underlying calls are idempotent reads so the
// duplicate work is accepted instead of guarding in-flight calls.
func (c *Cache) Do(ctx context.Context, key uint64, fn func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(key, v)
	return v, nil
}
