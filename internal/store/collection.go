package store

import "sync"

// Collection is an insertion-ordered, mutex-guarded list of entities keyed by
// id. Readers always receive copies.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
	clone func(T) T
}

// NewCollection creates an empty collection. clone may be nil when T holds no
// reference types.
func NewCollection[T any](id func(T) string, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{id: id, clone: clone, items: []T{}}
}

// Replace swaps the whole collection.
func (c *Collection[T]) Replace(items []T) {
	next := make([]T, len(items))
	for i, v := range items {
		next[i] = c.clone(v)
	}
	c.mu.Lock()
	c.items = next
	c.mu.Unlock()
}

// Append adds v at the tail.
func (c *Collection[T]) Append(v T) {
	v = c.clone(v)
	c.mu.Lock()
	c.items = append(c.items, v)
	c.mu.Unlock()
}

// Find returns the entity with id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.items {
		if c.id(v) == id {
			return c.clone(v), true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether an entity with id exists.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.Find(id)
	return ok
}

// Set replaces the entity with id in place. It reports false when absent.
func (c *Collection[T]) Set(id string, v T) bool {
	v = c.clone(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = v
			return true
		}
	}
	return false
}

// Modify applies fn to the entity with id under the write lock and returns the
// result. It reports false when absent.
func (c *Collection[T]) Modify(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = fn(c.clone(c.items[i]))
			return c.clone(c.items[i]), true
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the entity with id. It reports false when absent.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the collection in insertion order.
func (c *Collection[T]) All() []T {
	return c.Filter(nil)
}

// Filter returns copies of the entities matching keep, in insertion order. A
// nil keep matches everything.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		if keep == nil || keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// GroupBy buckets the collection by key. Every value in keys gets a bucket,
// possibly empty; entities whose key is not listed are dropped.
func GroupBy[T any, K comparable](items []T, keys []K, key func(T) K) map[K][]T {
	out := make(map[K][]T, len(keys))
	for _, k := range keys {
		out[k] = []T{}
	}
	for _, v := range items {
		k := key(v)
		if bucket, ok := out[k]; ok {
			out[k] = append(bucket, v)
		}
	}
	return out
}
