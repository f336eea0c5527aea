package lru

// handle addresses a node inside an arena. Handles stay valid while nodes
// are relinked; only freeing a node invalidates its handle.
type handle int

// nilHandle marks the absence of a node (end of list, empty free list).
const nilHandle handle = -1

// node is a recency list entry. prev points towards the head (more recent),
// next towards the tail (less recent). Free nodes are chained through next.
type node[K comparable, V any] struct {
	key  K
	val  V
	prev handle
	next handle
}

// arena owns every entry of a cache and realizes the recency list as
// prev/next handle links over a slice. Freed slots are reused, so the slice
// never grows past the largest number of live entries.
//
// arena is not safe for concurrent use; the owning Cache serializes access.
type arena[K comparable, V any] struct {
	nodes []node[K, V]
	head  handle // most recently used
	tail  handle // least recently used
	free  handle // head of the free slot chain
	len   int
}

// newArena reserves room for size nodes; the arena grows past it on demand.
func newArena[K comparable, V any](size int) arena[K, V] {
	return arena[K, V]{
		nodes: make([]node[K, V], 0, size),
		head:  nilHandle,
		tail:  nilHandle,
		free:  nilHandle,
	}
}

// at returns the node behind h. h must be live.
func (a *arena[K, V]) at(h handle) *node[K, V] {
	return &a.nodes[h]
}

// alloc stores key and val in a free slot and returns its handle.
// The node is not linked into the list.
func (a *arena[K, V]) alloc(key K, val V) handle {
	var h handle
	if a.free != nilHandle {
		h = a.free
		a.free = a.nodes[h].next
	} else {
		h = handle(len(a.nodes))
		a.nodes = append(a.nodes, node[K, V]{})
	}

	a.nodes[h] = node[K, V]{key: key, val: val, prev: nilHandle, next: nilHandle}
	a.len++
	return h
}

// release returns an unlinked node to the free chain. Key and value are
// zeroed so the arena does not pin them for the garbage collector.
func (a *arena[K, V]) release(h handle) {
	a.nodes[h] = node[K, V]{prev: nilHandle, next: a.free}
	a.free = h
	a.len--
}

// pushFront links h at the head of the list.
func (a *arena[K, V]) pushFront(h handle) {
	n := a.at(h)
	n.prev = nilHandle
	n.next = a.head
	if a.head != nilHandle {
		a.nodes[a.head].prev = h
	}
	a.head = h
	if a.tail == nilHandle {
		a.tail = h
	}
}

// unlink detaches h from the list without freeing it.
func (a *arena[K, V]) unlink(h handle) {
	n := a.at(h)
	if n.prev != nilHandle {
		a.nodes[n.prev].next = n.next
	} else {
		a.head = n.next
	}
	if n.next != nilHandle {
		a.nodes[n.next].prev = n.prev
	} else {
		a.tail = n.prev
	}
	n.prev = nilHandle
	n.next = nilHandle
}

// moveToFront relinks h at the head of the list.
func (a *arena[K, V]) moveToFront(h handle) {
	if a.head == h {
		return
	}
	a.unlink(h)
	a.pushFront(h)
}

// reset drops every node but keeps the backing storage.
func (a *arena[K, V]) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
	a.head = nilHandle
	a.tail = nilHandle
	a.free = nilHandle
	a.len = 0
}
