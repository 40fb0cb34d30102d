// arena.go
//
// Append-only page list for the string interner. Every Push copies a
// length-prefixed, nul-terminated record into the tail page and hands
// back the stable address of its data region. Pages are never moved,
// resized, or freed once appended — the address returned by Push stays
// valid for the remaining lifetime of the process, which is exactly
// what lets the interner hand out bare pointers as handles.
//
// The arena carries no internal synchronization: spec §4.1 calls for
// Push to be invoked only while the writer holds the interner's mutex,
// and readers never dereference anything here directly — they only
// ever read through a handle's own pointer, independent of arena
// bookkeeping. A []byte page's backing array does not move once
// allocated (Go's GC does not relocate live heap objects), so holding a
// page reachable forever is sufficient for address stability.

package arena

import (
	"errors"
	"math"
	"unsafe"
)

// ErrTooLong is returned when a byte sequence exceeds the maximum
// record size the length prefix can encode.
var ErrTooLong = errors.New("arena: byte length exceeds uint32 range")

// minPageCapacity is the smallest page the arena will ever allocate,
// sized comfortably above typical short-identifier strings.
const minPageCapacity = 4096

// lenPrefixSize is the width of the length field preceding every
// record's data, per the StringRecord layout: len(u32) | data | 0x00.
const lenPrefixSize = 4

// page is one contiguous, append-only byte buffer plus its write
// cursor. Once full, the arena leaves it alone forever and appends a
// new page to the tail.
type page struct {
	mem  []byte
	used uint32
	next *page
}

// Arena is an ordered, singly-linked list of pages. All mutation must
// happen under an external writer lock; reads of previously-returned
// pointers require no synchronization with the Arena at all.
type Arena struct {
	head *page
	tail *page
}

// New returns an empty Arena. The first page is allocated lazily on
// the first Push, matching the teacher's lazy-page-zero convention.
func New() *Arena {
	return &Arena{}
}

// Push copies len(b)|b|0x00 into the tail page, growing the arena if
// necessary, and returns the stable address of the data region (the
// byte immediately after the length prefix). Must be called only while
// the caller holds the interner's writer mutex.
func (a *Arena) Push(b []byte) (unsafe.Pointer, error) {
	if uint64(len(b)) > math.MaxUint32 {
		return nil, ErrTooLong
	}
	recordSize := lenPrefixSize + len(b) + 1

	if a.tail == nil || int(a.tail.used)+recordSize > len(a.tail.mem) {
		a.grow(recordSize)
	}

	p := a.tail
	lenOff := p.used
	dataOff := lenOff + lenPrefixSize

	*(*uint32)(unsafe.Pointer(&p.mem[lenOff])) = uint32(len(b))
	copy(p.mem[dataOff:], b)
	p.mem[int(dataOff)+len(b)] = 0

	p.used = uint32(int(dataOff) + len(b) + 1)

	return unsafe.Pointer(&p.mem[dataOff]), nil
}

// grow appends a new tail page sized to hold at least minCapacity
// bytes, with geometric growth: at least double the previous page's
// capacity, or the requested size if that's larger.
func (a *Arena) grow(minCapacity int) {
	capacity := minPageCapacity
	if a.tail != nil {
		capacity = len(a.tail.mem) * 2
	}
	if minCapacity > capacity {
		capacity = minCapacity
	}

	np := &page{mem: make([]byte, capacity)}
	if a.tail == nil {
		a.head = np
	} else {
		a.tail.next = np
	}
	a.tail = np
}

// Stats reports the page count and byte usage/capacity of the arena,
// for diagnostics only — never consulted on the read or write hot
// path.
func (a *Arena) Stats() (pages int, bytesUsed, bytesCapacity uint64) {
	for p := a.head; p != nil; p = p.next {
		pages++
		bytesUsed += uint64(p.used)
		bytesCapacity += uint64(len(p.mem))
	}
	return pages, bytesUsed, bytesCapacity
}

// RecordLen reads the length prefix stored immediately before ptr,
// which must be an address previously returned by Push.
//
//go:nosplit
func RecordLen(ptr unsafe.Pointer) uint32 {
	return *(*uint32)(unsafe.Add(ptr, -lenPrefixSize))
}
