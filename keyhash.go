package lru

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
)

// hashKey hashes a comparable key under seed. Equal keys always hash
// equally; distinct keys may collide, so callers must not treat equal
// hashes as equal keys.
func hashKey[K comparable](seed maphash.Seed, key K) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)

	var buf [8]byte
	putInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	switch k := any(key).(type) {
	case string:
		h.WriteString(k)
	case int:
		putInt(uint64(k))
	case int64:
		putInt(uint64(k))
	case int32:
		putInt(uint64(k))
	case uint:
		putInt(uint64(k))
	case uint64:
		putInt(k)
	case uint32:
		putInt(uint64(k))
	case fmt.Stringer:
		h.WriteString(k.String())
	default:
		h.WriteString(fmt.Sprint(key))
	}
	return h.Sum64()
}
