package lru

import (
	"errors"
	"hash/maphash"
)

// DefaultShardCount is the default number of shards for a Sharded cache.
const DefaultShardCount = 16

// ErrInvalidShardCount is returned when a sharded cache is constructed with
// fewer than one shard.
var ErrInvalidShardCount = errors.New("shard count must be greater than zero")

// Sharded is a thread-safe LRU cache split into independent [Cache] shards,
// each with its own lock. Keys are assigned to shards by hash, so recency
// and eviction are tracked per shard rather than globally.
//
// The shard count never exceeds the capacity and the shard capacities add
// up to exactly the requested capacity.
type Sharded[K comparable, V any] struct {
	shards   []*Cache[K, V]
	seed     maphash.Seed
	capacity int
}

// NewSharded creates a sharded LRU cache with the given total capacity
// spread over [DefaultShardCount] shards.
func NewSharded[K comparable, V any](capacity int) (*Sharded[K, V], error) {
	return NewShardedWithCount[K, V](capacity, DefaultShardCount)
}

// MustNewSharded is like [NewSharded] but panics on error.
func MustNewSharded[K comparable, V any](capacity int) *Sharded[K, V] {
	cache, err := NewSharded[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return cache
}

// NewShardedWithCount creates a sharded LRU cache with the given total
// capacity and number of shards. If shardCount exceeds capacity it is
// reduced to capacity so that every shard holds at least one entry.
func NewShardedWithCount[K comparable, V any](capacity, shardCount int) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if shardCount <= 0 {
		return nil, ErrInvalidShardCount
	}
	shardCount = min(shardCount, capacity)

	perShard := capacity / shardCount
	remainder := capacity % shardCount

	shards := make([]*Cache[K, V], shardCount)
	for i := range shards {
		shardCap := perShard
		if i < remainder {
			shardCap++
		}
		shard, err := New[K, V](shardCap)
		if err != nil {
			return nil, err
		}
		shards[i] = shard
	}

	return &Sharded[K, V]{
		shards:   shards,
		seed:     maphash.MakeSeed(),
		capacity: capacity,
	}, nil
}

// MustNewShardedWithCount is like [NewShardedWithCount] but panics on error.
func MustNewShardedWithCount[K comparable, V any](capacity, shardCount int) *Sharded[K, V] {
	cache, err := NewShardedWithCount[K, V](capacity, shardCount)
	if err != nil {
		panic(err)
	}
	return cache
}

func (s *Sharded[K, V]) shardFor(key K) *Cache[K, V] {
	return s.shards[s.shardIndex(key)]
}

func (s *Sharded[K, V]) shardIndex(key K) int {
	if len(s.shards) == 1 {
		return 0
	}
	return int(hashKey(s.seed, key) % uint64(len(s.shards)))
}

// Get retrieves a value and marks it most recently used within its shard.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shardFor(key).Get(key)
}

// Peek retrieves a value without updating recency.
func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shardFor(key).Peek(key)
}

// Put adds or updates an item. Inserting into a full shard evicts that
// shard's least recently used entry.
func (s *Sharded[K, V]) Put(key K, value V) {
	s.shardFor(key).Put(key, value)
}

// Remove deletes an item and reports whether it was present.
func (s *Sharded[K, V]) Remove(key K) bool {
	return s.shardFor(key).Remove(key)
}

// GetOrSet is the sharded form of [Cache.GetOrSet].
func (s *Sharded[K, V]) GetOrSet(key K, compute func() (V, error)) (V, error) {
	return s.shardFor(key).GetOrSet(key, compute)
}

// GetOrSetSingleflight is the sharded form of [Cache.GetOrSetSingleflight].
func (s *Sharded[K, V]) GetOrSetSingleflight(key K, compute func() (V, error)) (V, error) {
	return s.shardFor(key).GetOrSetSingleflight(key, compute)
}

// Len returns the number of items across all shards. Shards are locked one
// at a time, so under concurrent writes the total is not a single snapshot.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// Clear removes all items from all shards.
func (s *Sharded[K, V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// Contains checks if a key exists in the cache.
func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shardFor(key).Contains(key)
}

// Keys returns all keys, shard by shard, each shard ordered from most to
// least recently used.
func (s *Sharded[K, V]) Keys() []K {
	keys := make([]K, 0, s.Len())
	for _, shard := range s.shards {
		keys = append(keys, shard.Keys()...)
	}
	return keys
}

// Capacity returns the maximum total capacity of the cache.
func (s *Sharded[K, V]) Capacity() int {
	return s.capacity
}

// ShardCount returns the number of shards in the cache.
func (s *Sharded[K, V]) ShardCount() int {
	return len(s.shards)
}

// OnEvict sets the eviction callback on every shard.
func (s *Sharded[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	for _, shard := range s.shards {
		shard.OnEvict(f)
	}
}
