package lru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_OnEvict(t *testing.T) {
	r := require.New(t)
	cache := MustNew[string, int](3)

	evicted := make(map[string]int)
	cache.OnEvict(func(key string, value int) {
		evicted[key] = value
	})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)
	r.Empty(evicted)

	// "a" is the least recently used
	cache.Put("d", 4)
	r.Equal(map[string]int{"a": 1}, evicted)

	cache.Remove("b")
	r.Equal(map[string]int{"a": 1, "b": 2}, evicted)

	// absent keys do not trigger the callback
	cache.Remove("b")
	r.Equal(map[string]int{"a": 1, "b": 2}, evicted)

	// updates never evict
	cache.Put("c", 30)
	r.Equal(map[string]int{"a": 1, "b": 2}, evicted)

	cache.Clear()
	r.Equal(map[string]int{"a": 1, "b": 2, "c": 30, "d": 4}, evicted)
}

func TestCache_OnEvictSingleEvictionPerPut(t *testing.T) {
	r := require.New(t)
	cache := MustNew[int, int](4)

	var evicted []int
	cache.OnEvict(func(key int, _ int) {
		evicted = append(evicted, key)
	})

	for i := 0; i < 10; i++ {
		before := len(evicted)
		cache.Put(i, i)
		r.LessOrEqual(len(evicted)-before, 1)
	}
	r.Equal([]int{0, 1, 2, 3, 4, 5}, evicted)
}

func TestCache_OnEvictReplacement(t *testing.T) {
	r := require.New(t)
	cache := MustNew[string, int](3)

	evicted1 := make(map[string]int)
	cache.OnEvict(func(key string, value int) {
		evicted1[key] = value
	})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)
	cache.Put("d", 4) // evicts "a"
	r.Equal(map[string]int{"a": 1}, evicted1)

	evicted2 := make(map[string]int)
	cache.OnEvict(func(key string, value int) {
		evicted2[key] = value
	})

	cache.Put("e", 5) // evicts "b"
	r.Equal(map[string]int{"a": 1}, evicted1)
	r.Equal(map[string]int{"b": 2}, evicted2)

	cache.OnEvict(nil)
	cache.Put("f", 6) // evicts "c"
	r.Equal(map[string]int{"a": 1}, evicted1)
	r.Equal(map[string]int{"b": 2}, evicted2)
}

func TestCache_OnEvictCalledOutsideLock(t *testing.T) {
	r := require.New(t)
	cache := MustNew[int, int](1)

	var seen []int
	cache.OnEvict(func(key int, _ int) {
		// would deadlock if the callback ran under the cache lock
		r.False(cache.Contains(key))
		seen = append(seen, cache.Len())
	})

	cache.Put(1, 1)
	cache.Put(2, 2)
	r.Equal([]int{1}, seen)
}
