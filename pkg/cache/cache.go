package cache

import (
	"sync"
)

// Entity is anything the cache can hold: posts, comments, messages,
// notifications. An entity is identified by a single id string, which may
// be a server id or a client-generated temporary id awaiting confirmation.
type Entity interface {
	EntityID() string
}

// Cache is an ordered key-value store of entities scoped to one view or
// session. Insertion order is preserved for list rendering. There is no
// eviction: the cache lives as long as the view that owns it.
//
// Every mutation runs under the cache lock as one synchronous block, so a
// read-modify-write can never interleave with another mutation.
type Cache[E Entity] struct {
	mu    sync.RWMutex
	order []string
	items map[string]E
}

// New creates an empty cache
func New[E Entity]() *Cache[E] {
	return &Cache[E]{
		items: make(map[string]E),
	}
}

// Get returns the entity stored under id
func (c *Cache[E]) Get(id string) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[id]
	return e, ok
}

// Len returns the number of entities in the cache
func (c *Cache[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// List returns all entities in insertion order
func (c *Cache[E]) List() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]E, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Snapshot is an alias of List used when callers capture pre-mutation
// state for comparison
func (c *Cache[E]) Snapshot() []E {
	return c.List()
}

// IndexOf returns the ordinal position of id, or -1 when absent
func (c *Cache[E]) IndexOf(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOfLocked(id)
}

func (c *Cache[E]) indexOfLocked(id string) int {
	for i, existing := range c.order {
		if existing == id {
			return i
		}
	}
	return -1
}

// Upsert replaces the entity in place when its id is already present,
// otherwise appends it at the end
func (c *Cache[E]) Upsert(e E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := e.EntityID()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = e
}

// InsertAt inserts the entity at the given ordinal position. An index at
// or beyond the end appends. If the id is already present the existing
// entry is updated in place and its position kept.
func (c *Cache[E]) InsertAt(index int, e E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := e.EntityID()
	if _, ok := c.items[id]; ok {
		c.items[id] = e
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c.order) {
		c.order = append(c.order, id)
	} else {
		c.order = append(c.order, "")
		copy(c.order[index+1:], c.order[index:])
		c.order[index] = id
	}
	c.items[id] = e
}

// Update applies fn to the entity under id as one atomic read-modify-write.
// Returns false when the id is not present.
func (c *Cache[E]) Update(id string, fn func(E) E) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[id]
	if !ok {
		return false
	}
	c.items[id] = fn(e)
	return true
}

// Remove deletes the entity under id and returns it along with the ordinal
// position it occupied, so a failed optimistic delete can restore it.
func (c *Cache[E]) Remove(id string) (E, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[id]
	if !ok {
		var zero E
		return zero, -1, false
	}
	idx := c.indexOfLocked(id)
	c.order = append(c.order[:idx], c.order[idx+1:]...)
	delete(c.items, id)
	return e, idx, true
}

// ReplaceKey swaps the entry stored under oldID for entity e stored under
// newID, keeping the original ordinal position. This is how a pending
// entity is promoted once the server assigns a real id.
//
// The cache never holds two representations of one logical entity: if
// newID is already present (a realtime echo won the race) the oldID entry
// is dropped and the confirmed entry updated in place. Returns true when
// oldID was found.
func (c *Cache[E]) ReplaceKey(oldID, newID string, e E) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, hadOld := c.items[oldID]
	_, hadNew := c.items[newID]

	switch {
	case hadOld && !hadNew:
		idx := c.indexOfLocked(oldID)
		c.order[idx] = newID
		delete(c.items, oldID)
		c.items[newID] = e
		return true
	case hadOld && hadNew:
		// Duplicate: the confirmed entity already arrived. Keep its
		// slot and drop the stale pending entry.
		idx := c.indexOfLocked(oldID)
		c.order = append(c.order[:idx], c.order[idx+1:]...)
		delete(c.items, oldID)
		c.items[newID] = e
		return true
	case hadNew:
		// Already promoted; refresh the value idempotently.
		c.items[newID] = e
		return false
	default:
		return false
	}
}

// Clear empties the cache
func (c *Cache[E]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.items = make(map[string]E)
}
