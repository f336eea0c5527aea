package lru_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mshivasai/lru"
)

// This example demonstrates basic usage of the LRU cache.
func Example_basic() {
	cache := lru.MustNew[string, int](3)

	cache.Put("one", 1)
	cache.Put("two", 2)
	cache.Put("three", 3)

	if value, found := cache.Get("two"); found {
		fmt.Printf("Value for 'two': %d\n", value)
	}

	// a fourth key evicts the least recently used one, "one"
	cache.Put("four", 4)

	_, found := cache.Get("one")
	fmt.Printf("Is 'one' in the cache? %t\n", found)
	fmt.Printf("Cache keys: %v\n", cache.Keys())
	fmt.Printf("Size: %d\n", cache.Len())

	// Output:
	// Value for 'two': 2
	// Is 'one' in the cache? false
	// Cache keys: [four two three]
	// Size: 3
}

// This example shows that reading an entry protects it from eviction.
func Example_eviction() {
	cache := lru.MustNew[string, string](2)

	cache.Put("A", "Item A")
	cache.Put("B", "Item B")
	fmt.Printf("After adding A, B: %v\n", cache.Keys())

	cache.Get("A")
	fmt.Printf("After accessing A: %v\n", cache.Keys())

	cache.Put("C", "Item C")
	fmt.Printf("After adding C: %v\n", cache.Keys())

	// updating an existing key does not evict
	cache.Put("A", "Item A2")
	fmt.Printf("After updating A: %v (size %d)\n", cache.Keys(), cache.Len())

	// Output:
	// After adding A, B: [B A]
	// After accessing A: [A B]
	// After adding C: [C A]
	// After updating A: [A C] (size 2)
}

// This example demonstrates that invalid capacities are rejected.
func Example_invalidCapacity() {
	_, err := lru.New[string, int](0)
	fmt.Println(errors.Is(err, lru.ErrInvalidCapacity))

	// Output:
	// true
}

// This example uses GetOrSet to memoize a computation.
func Example_getOrSet() {
	cache := lru.MustNew[string, string](10)
	calls := 0
	upper := func(s string) func() (string, error) {
		return func() (string, error) {
			calls++
			return strings.ToUpper(s), nil
		}
	}

	v, _ := cache.GetOrSet("go", upper("go"))
	fmt.Println(v, calls)
	v, _ = cache.GetOrSet("go", upper("go"))
	fmt.Println(v, calls)

	// Output:
	// GO 1
	// GO 1
}

// This example registers an eviction callback.
func Example_onEvict() {
	cache := lru.MustNew[int, string](2)
	cache.OnEvict(func(key int, value string) {
		fmt.Printf("evicted %d=%s\n", key, value)
	})

	cache.Put(1, "a")
	cache.Put(2, "b")
	cache.Put(3, "c")
	cache.Remove(2)
	cache.Remove(2)

	// Output:
	// evicted 1=a
	// evicted 2=b
}
