package lru

import (
	"errors"
	"hash/maphash"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrInvalidCapacity is returned when a cache is constructed with a capacity
// below one.
var ErrInvalidCapacity = errors.New("capacity must be greater than zero")

// preallocLimit caps the storage reserved up front; larger caches grow on demand.
const preallocLimit = 1024

// OnEvictFunc is a function that is called when an entry is evicted from the cache.
type OnEvictFunc[K comparable, V any] func(key K, value V)

// Cache represents a thread-safe, fixed-size LRU cache.
// A Cache must be created with [New] or [MustNew]; the zero value is not ready for use.
//
// Entries live in an arena and are linked by integer handles; the index maps
// each key to its handle. Both structures are guarded by a single lock.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]handle
	list     arena[K, V]
	mu       sync.RWMutex
	onEvict  OnEvictFunc[K, V]
	sfGroup  singleflight.Group
	sfSeed   maphash.Seed
}

// flight is the shared result of a singleflight call. Flight names are
// hashes, so key identifies which caller's key the value belongs to.
type flight[K comparable, V any] struct {
	key K
	val V
}

// New creates a new LRU cache with the given capacity.
// The capacity must be greater than zero; otherwise [ErrInvalidCapacity] is returned.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	hint := min(capacity, preallocLimit)
	return &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]handle, hint),
		list:     newArena[K, V](hint),
		sfSeed:   maphash.MakeSeed(),
	}, nil
}

// MustNew creates a new LRU cache with the given capacity.
// It panics if the capacity is less than or equal to zero.
func MustNew[K comparable, V any](capacity int) *Cache[K, V] {
	cache, err := New[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return cache
}

// Get retrieves a value from the cache by key.
// It returns the value and a boolean indicating whether the key was found.
// A hit makes the entry the most recently used one; a miss changes nothing.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, found := c.items[key]
	if !found {
		var zero V
		return zero, false
	}

	c.list.moveToFront(h)
	return c.list.at(h).val, true
}

// Peek retrieves a value from the cache by key without updating its position
// in the LRU list.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h, found := c.items[key]
	if !found {
		var zero V
		return zero, false
	}
	return c.list.at(h).val, true
}

// Put adds or updates an item in the cache.
// Updating an existing key never evicts. Inserting a new key into a full
// cache evicts exactly one entry, the least recently used.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	evictedKey, evictedVal, hasEvicted := c.putLocked(key, value)
	onEvict := c.onEvict
	c.mu.Unlock()

	if hasEvicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
}

// putLocked adds or updates an item. c.mu must be held for writing.
func (c *Cache[K, V]) putLocked(key K, value V) (evictedKey K, evictedVal V, evicted bool) {
	if h, found := c.items[key]; found {
		c.list.at(h).val = value
		c.list.moveToFront(h)
		return
	}

	// the tail is the victim whether it goes before or after the insert,
	// so free its slot first and let the new entry reuse it
	if len(c.items) >= c.capacity {
		evictedKey, evictedVal, evicted = c.evictLocked()
	}

	h := c.list.alloc(key, value)
	c.list.pushFront(h)
	c.items[key] = h
	return
}

// evictLocked drops the least recently used entry.
func (c *Cache[K, V]) evictLocked() (K, V, bool) {
	h := c.list.tail
	if h == nilHandle {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}

	n := c.list.at(h)
	key, val := n.key, n.val
	c.deleteLocked(key, h)
	return key, val, true
}

// deleteLocked removes h from both the index and the list.
func (c *Cache[K, V]) deleteLocked(key K, h handle) {
	delete(c.items, key)
	c.list.unlink(h)
	c.list.release(h)
}

// Remove deletes an item from the cache by key.
// It returns whether the key was found and removed. Removing an absent key
// is a no-op.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	h, found := c.items[key]
	if !found {
		c.mu.Unlock()
		return false
	}

	val := c.list.at(h).val
	c.deleteLocked(key, h)
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		onEvict(key, val)
	}
	return true
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// GetOrSet retrieves a value from the cache by key, or computes and sets it if not present.
// The compute function is only called if the key is not present in the cache.
// Note: if multiple goroutines call GetOrSet concurrently for the same missing key,
// compute may be called multiple times but only one result will be cached.
func (c *Cache[K, V]) GetOrSet(key K, compute func() (V, error)) (V, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}

	// compute outside the lock so it may call back into the cache
	val, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	return c.storeComputed(key, val), nil
}

// GetOrSetSingleflight is like [Cache.GetOrSet], but concurrent callers
// missing on the same key share a single call to compute and all receive its result.
func (c *Cache[K, V]) GetOrSetSingleflight(key K, compute func() (V, error)) (V, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}

	name := strconv.FormatUint(hashKey(c.sfSeed, key), 16)
	result, err, _ := c.sfGroup.Do(name, func() (any, error) {
		if val, found := c.Get(key); found {
			return flight[K, V]{key: key, val: val}, nil
		}

		val, err := compute()
		if err != nil {
			return flight[K, V]{key: key}, err
		}
		return flight[K, V]{key: key, val: c.storeComputed(key, val)}, nil
	})

	// a different key with the same flight name ran the compute; its
	// result and error are not ours
	f, ok := result.(flight[K, V])
	if !ok || f.key != key {
		return c.GetOrSet(key, compute)
	}
	if err != nil {
		var zero V
		return zero, err
	}
	return f.val, nil
}

// storeComputed inserts a computed value unless another caller stored one
// for key in the meantime, in which case the cached value wins.
func (c *Cache[K, V]) storeComputed(key K, val V) V {
	c.mu.Lock()
	if h, found := c.items[key]; found {
		c.list.moveToFront(h)
		existing := c.list.at(h).val
		c.mu.Unlock()
		return existing
	}

	evictedKey, evictedVal, hasEvicted := c.putLocked(key, val)
	onEvict := c.onEvict
	c.mu.Unlock()

	if hasEvicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
	return val
}

// Clear removes all items from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	onEvict := c.onEvict

	var evicted []node[K, V]
	if onEvict != nil {
		evicted = make([]node[K, V], 0, len(c.items))
		for h := c.list.head; h != nilHandle; h = c.list.at(h).next {
			evicted = append(evicted, *c.list.at(h))
		}
	}

	clear(c.items)
	c.list.reset()
	c.mu.Unlock()

	for _, n := range evicted {
		onEvict(n.key, n.val)
	}
}

// Contains checks if a key exists in the cache without updating its position.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, found := c.items[key]
	return found
}

// Keys returns a slice of all keys in the cache.
// The order is from most recently used to least recently used.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.items))
	for h := c.list.head; h != nilHandle; h = c.list.at(h).next {
		keys = append(keys, c.list.at(h).key)
	}
	return keys
}

// Oldest returns the least recently used entry without touching it.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.list.tail == nilHandle {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	n := c.list.at(c.list.tail)
	return n.key, n.val, true
}

// Capacity returns the maximum capacity of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// OnEvict sets a callback function that will be called when an entry is evicted from the cache.
// The callback will receive the key and value of the evicted entry.
//
// The callback is invoked after the cache's internal lock is released and may be called
// concurrently from multiple goroutines. It must be safe for concurrent use.
func (c *Cache[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onEvict = f
}
