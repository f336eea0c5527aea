// Package lru provides generic, thread-safe, fixed-capacity LRU caches.
//
// Two cache types are provided:
//
//   - [Cache]: a single LRU cache guarded by one lock
//   - [Sharded]: a set of independent [Cache] shards selected by key hash
//
// # Basic Usage
//
// Create a cache and store values:
//
//	cache := lru.MustNew[string, int](100)
//	cache.Put("key", 42)
//	value, found := cache.Get("key")
//
// Get and Put mark an entry as most recently used. When Put inserts a new key
// into a full cache, exactly one entry is evicted: the least recently used.
// Updating an existing key never evicts. Remove of an absent key is a no-op.
//
// A capacity below one is rejected: [New] returns [ErrInvalidCapacity] and
// [MustNew] panics with it.
//
// # Memoization with GetOrSet
//
// Compute values on cache miss:
//
//	result, err := cache.GetOrSet("key", func() (int, error) {
//	    return expensiveComputation()
//	})
//
// [Cache.GetOrSetSingleflight] additionally collapses concurrent computes for
// the same key into one call.
//
// # Eviction Callbacks
//
// Register a callback to be notified when entries leave the cache:
//
//	cache.OnEvict(func(key string, value int) {
//	    fmt.Printf("evicted: %s=%d\n", key, value)
//	})
//
// Callbacks are invoked for capacity evictions, explicit removals via
// [Cache.Remove], and [Cache.Clear]. They run after the cache lock is released.
package lru
