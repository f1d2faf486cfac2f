// Package offsetmap implements the open-addressing hash table that
// backs the persistent inverted index (spec.md §4.5, C5): hash ->
// (offset, length) into a flat postings array, with linear probing,
// a dense keys/values pair of arrays, and a separate occupancy bitset.
package offsetmap

// Value is the (offset, length) a hash resolves to: offset is the
// cursor into the postings array, length is the run size.
type Value struct {
	Offset uint64
	Length uint64
}

// Map is the in-memory, mutable form of the offset map, built during
// indexing. Once built it is serialised (io.go) and thereafter only
// ever opened read-only via mmap.
type Map struct {
	buckets   []uint32
	occupancy bitset
	keys      []uint64
	values    []Value
	size      uint64
	capacity  uint64
	wideKeys  bool // true selects u64 keys, for FoldDiscoDefault (64-bit hashes)
}

// New allocates an empty map with room for capacity buckets. wideKeys
// selects whether keys are stored as u64 (needed for FoldDiscoDefault's
// 64-bit hash domain) or u32 (every other variant).
func New(capacity uint64, wideKeys bool) *Map {
	return &Map{
		buckets:   make([]uint32, capacity),
		occupancy: newBitset(capacity),
		capacity:  capacity,
		wideKeys:  wideKeys,
	}
}

func (m *Map) slot(hash uint64) uint64 {
	return hash % m.capacity
}

// Insert records value against hash, probing linearly from hash %
// capacity. An existing key is overwritten; a new key is appended to
// the dense keys/values arrays and its position recorded in buckets.
func (m *Map) Insert(hash uint64, value Value) {
	idx := m.slot(hash)
	for {
		if !m.occupancy.get(idx) {
			keyIndex := uint32(len(m.keys))
			m.keys = append(m.keys, hash)
			m.values = append(m.values, value)
			m.buckets[idx] = keyIndex
			m.occupancy.set(idx, true)
			m.size++
			return
		}
		if m.keys[m.buckets[idx]] == hash {
			m.values[m.buckets[idx]] = value
			return
		}
		idx = (idx + 1) % m.capacity
	}
}

// Get probes for hash, terminating after an empty bucket or capacity
// probes, whichever comes first (spec.md §4.5 Probe).
func (m *Map) Get(hash uint64) (Value, bool) {
	if m.capacity == 0 {
		return Value{}, false
	}
	idx := m.slot(hash)
	for count := uint64(0); count < m.capacity; count++ {
		if !m.occupancy.get(idx) {
			return Value{}, false
		}
		if m.keys[m.buckets[idx]] == hash {
			return m.values[m.buckets[idx]], true
		}
		idx = (idx + 1) % m.capacity
	}
	return Value{}, false
}

// Size returns the number of distinct keys inserted so far.
func (m *Map) Size() uint64 { return m.size }

// Capacity returns the bucket count the map was allocated with.
func (m *Map) Capacity() uint64 { return m.capacity }

// HashPosting pairs a hash with the raw posting value it was emitted
// for, the shape BuildFromSorted consumes.
type HashPosting struct {
	Hash    uint64
	Posting uint64
}

// BuildFromSorted implements the C5 build step: given a stream of
// (hash, posting) pairs already sorted by hash, it run-length-encodes
// consecutive equal hashes into (offset, length) entries, appends the
// raw postings to a flat array in order, and inserts each
// (hash, (offset, length)) into a freshly allocated map sized at
// 3 x the distinct-hash count (spec.md §4.5 Build).
func BuildFromSorted(sorted []HashPosting, wideKeys bool) (*Map, []uint64) {
	postings := make([]uint64, 0, len(sorted))
	if len(sorted) == 0 {
		return New(1, wideKeys), postings
	}

	distinctHashes := uint64(0)
	for i, hp := range sorted {
		if i == 0 || hp.Hash != sorted[i-1].Hash {
			distinctHashes++
		}
	}

	m := New(distinctHashes*3, wideKeys)

	currentHash := sorted[0].Hash
	currentOffset := uint64(0)
	currentCount := uint64(0)
	for i, hp := range sorted {
		if hp.Hash != currentHash {
			m.Insert(currentHash, Value{Offset: currentOffset, Length: currentCount})
			currentHash = hp.Hash
			currentOffset = uint64(i)
			currentCount = 0
		}
		currentCount++
		postings = append(postings, hp.Posting)
	}
	m.Insert(currentHash, Value{Offset: currentOffset, Length: currentCount})

	return m, postings
}

// bitset is a flat occupancy bitmap where bit 0 of byte 0 means "bucket
// 0 empty" until set (spec.md §4.5: "a separate occupancy bitset").
type bitset struct {
	bits []byte
}

func newBitset(size uint64) bitset {
	return bitset{bits: make([]byte, (size+7)/8)}
}

func (b bitset) get(i uint64) bool {
	return b.bits[i/8]&(1<<(i%8)) != 0
}

func (b bitset) set(i uint64, v bool) {
	if v {
		b.bits[i/8] |= 1 << (i % 8)
	} else {
		b.bits[i/8] &^= 1 << (i % 8)
	}
}
