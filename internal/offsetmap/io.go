package offsetmap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	metaFieldSize = 8 // bytes per u64 size/capacity field
	valueSize     = 16 // bytes per (u64, u64) value pair
	bucketSize    = 4  // bytes per u32 bucket
)

func (m *Map) keyWidth() uint64 {
	if m.wideKeys {
		return 8
	}
	return 4
}

// fileSize returns the exact byte length Dump writes, matching
// spec.md §4.5's on-disk layout precisely (no padding between
// sections).
func (m *Map) fileSize() uint64 {
	size := uint64(2*metaFieldSize) +
		m.size*valueSize +
		m.size*m.keyWidth() +
		m.capacity*bucketSize +
		uint64(len(m.occupancy.bits))
	return size
}

// Dump writes the map to path in the layout spec.md §4.5 describes:
// little-endian size, capacity, the dense values array, the dense keys
// array, the buckets array, then the occupancy bitset. The file is
// truncated to its exact computed size before writing.
func (m *Map) Dump(path string) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.Truncate(int64(m.fileSize())); err != nil {
		return err
	}

	w := bufio.NewWriter(file)

	var meta [16]byte
	binary.LittleEndian.PutUint64(meta[0:8], m.size)
	binary.LittleEndian.PutUint64(meta[8:16], m.capacity)
	if _, err := w.Write(meta[:]); err != nil {
		return err
	}

	var valueBuf [valueSize]byte
	for _, v := range m.values {
		binary.LittleEndian.PutUint64(valueBuf[0:8], v.Offset)
		binary.LittleEndian.PutUint64(valueBuf[8:16], v.Length)
		if _, err := w.Write(valueBuf[:]); err != nil {
			return err
		}
	}

	if m.wideKeys {
		var keyBuf [8]byte
		for _, k := range m.keys {
			binary.LittleEndian.PutUint64(keyBuf[:], k)
			if _, err := w.Write(keyBuf[:]); err != nil {
				return err
			}
		}
	} else {
		var keyBuf [4]byte
		for _, k := range m.keys {
			binary.LittleEndian.PutUint32(keyBuf[:], uint32(k))
			if _, err := w.Write(keyBuf[:]); err != nil {
				return err
			}
		}
	}

	var bucketBuf [4]byte
	for _, b := range m.buckets {
		binary.LittleEndian.PutUint32(bucketBuf[:], b)
		if _, err := w.Write(bucketBuf[:]); err != nil {
			return err
		}
	}

	if _, err := w.Write(m.occupancy.bits); err != nil {
		return err
	}

	return w.Flush()
}

// DumpPostings writes a flat postings array (spec.md §6, "<prefix>.value")
// as little-endian u64 entries.
func DumpPostings(path string, postings []uint64) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	var buf [8]byte
	for _, p := range postings {
		binary.LittleEndian.PutUint64(buf[:], p)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Loaded is a memory-mapped, read-only view over an offset-map file.
// Its key/bucket/value arrays are borrowed directly from the mapping
// (spec.md §4.5 Mapping): Close unmaps the file, after which the
// borrowed slices must not be accessed again. Loaded itself never
// copies the mapped bytes.
type Loaded struct {
	data     []byte
	size     uint64
	capacity uint64
	wideKeys bool

	values    []Value
	keys32    []uint32
	keys64    []uint64
	buckets   []uint32
	occupancy bitset
}

// Load memory-maps path read-only and constructs borrowed views over
// each section, per the layout Dump wrote. wideKeys must match what
// the builder used (FoldDiscoDefault uses u64 keys; every other
// variant uses u32).
func Load(path string, wideKeys bool) (*Loaded, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("offsetmap: mmap %s: %w", path, err)
	}

	if len(data) < 2*metaFieldSize {
		unix.Munmap(data)
		return nil, fmt.Errorf("offsetmap: %s too small for header", path)
	}

	size := binary.LittleEndian.Uint64(data[0:8])
	capacity := binary.LittleEndian.Uint64(data[8:16])

	keyWidth := uint64(4)
	if wideKeys {
		keyWidth = 8
	}
	expected := uint64(2*metaFieldSize) + size*valueSize + size*keyWidth + capacity*bucketSize + (capacity+7)/8
	if expected != uint64(len(data)) {
		unix.Munmap(data)
		return nil, fmt.Errorf("offsetmap: %s size mismatch: header implies %d bytes, file is %d", path, expected, len(data))
	}

	l := &Loaded{data: data, size: size, capacity: capacity, wideKeys: wideKeys}

	offset := uint64(2 * metaFieldSize)
	if size > 0 {
		l.values = unsafe.Slice((*Value)(unsafe.Pointer(&data[offset])), size)
	}
	offset += size * valueSize

	if size > 0 {
		if wideKeys {
			l.keys64 = unsafe.Slice((*uint64)(unsafe.Pointer(&data[offset])), size)
		} else {
			l.keys32 = unsafe.Slice((*uint32)(unsafe.Pointer(&data[offset])), size)
		}
	}
	offset += size * keyWidth

	if capacity > 0 {
		l.buckets = unsafe.Slice((*uint32)(unsafe.Pointer(&data[offset])), capacity)
	}
	offset += capacity * bucketSize

	occBytes := (capacity + 7) / 8
	l.occupancy = bitset{bits: data[offset : offset+occBytes]}

	return l, nil
}

// Size returns the number of distinct keys the mapped file holds.
func (l *Loaded) Size() uint64 { return l.size }

// Capacity returns the mapped file's bucket count.
func (l *Loaded) Capacity() uint64 { return l.capacity }

// Close unmaps the underlying file. The Loaded's arrays must not be
// used again afterwards.
func (l *Loaded) Close() error {
	if l.data == nil {
		return nil
	}
	err := unix.Munmap(l.data)
	l.data = nil
	return err
}

func (l *Loaded) key(i uint32) uint64 {
	if l.wideKeys {
		return l.keys64[i]
	}
	return uint64(l.keys32[i])
}

// Get probes the mapped table for hash (spec.md §4.5 Probe).
func (l *Loaded) Get(hash uint64) (Value, bool) {
	if l.capacity == 0 {
		return Value{}, false
	}
	idx := hash % l.capacity
	for count := uint64(0); count < l.capacity; count++ {
		if !l.occupancy.get(idx) {
			return Value{}, false
		}
		bucket := l.buckets[idx]
		if l.key(bucket) == hash {
			return l.values[bucket], true
		}
		idx = (idx + 1) % l.capacity
	}
	return Value{}, false
}

// LoadPostings memory-maps a flat postings array file read-only and
// returns it as a borrowed []uint64; the caller must call Munmap with
// the same slice's backing data once done (via UnmapPostings).
func LoadPostings(path string) ([]uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("offsetmap: mmap %s: %w", path, err)
	}
	count := len(data) / 8
	return unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), count), nil
}

// UnmapPostings releases a slice previously returned by LoadPostings.
func UnmapPostings(postings []uint64) error {
	if len(postings) == 0 {
		return nil
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&postings[0])), len(postings)*8)
	return unix.Munmap(data)
}

// ChunkPrefixes probes for <prefix>_0.offset, <prefix>_1.offset, ...
// and returns the chunk prefixes found, or just prefix itself if no
// chunked files exist (spec.md §4.5 Chunking).
func ChunkPrefixes(prefix string) []string {
	firstChunk := fmt.Sprintf("%s_0.offset", prefix)
	if _, err := os.Stat(firstChunk); err != nil {
		return []string{prefix}
	}

	var prefixes []string
	for i := 0; ; i++ {
		chunkPrefix := fmt.Sprintf("%s_%d", prefix, i)
		if _, err := os.Stat(chunkPrefix + ".offset"); err != nil {
			break
		}
		prefixes = append(prefixes, chunkPrefix)
	}
	return prefixes
}
