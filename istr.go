// istr.go
//
// IStr is the handle type: a single machine word pointing at a
// StringRecord's data field inside an Arena. Equality is pointer
// comparison; the record's length prefix and trailing nul give O(1),
// zero-allocation views without re-deriving anything from a table.
//
// Grounded on original_source/src/istr.rs: Deref->&str becomes
// String/Bytes, as_c_str becomes CBytes, PartialEq (pointer identity)
// becomes Equal, and the content-hash convenience method becomes Hash.

package sinter

import (
	"unsafe"

	"github.com/coldharbor/sinter/arena"
	"github.com/coldharbor/sinter/lookuptable"
)

// IStr is an interned byte sequence. The zero value is not a valid
// handle; every IStr in circulation was returned by Intern, TryLookup, or
// one of the FromX constructors.
type IStr struct {
	ptr unsafe.Pointer
}

// Len returns the byte length of the interned sequence.
//
//go:nosplit
func (h IStr) Len() uint32 {
	return arena.RecordLen(h.ptr)
}

// Bytes returns the interned sequence as a byte slice. The slice aliases
// immortal arena storage; callers must not mutate it.
func (h IStr) Bytes() []byte {
	return unsafe.Slice((*byte)(h.ptr), h.Len())
}

// String returns the interned sequence as a string, sharing the same
// immortal backing storage (no copy).
func (h IStr) String() string {
	return unsafe.String((*byte)(h.ptr), h.Len())
}

// CBytes returns a pointer to the nul-terminated view of the interned
// sequence. The Arena guarantees a trailing zero byte immediately after
// the data, so this pointer is safe to hand to any API expecting a
// nul-terminated byte string, as long as the interned content itself has
// no interior nul.
func (h IStr) CBytes() unsafe.Pointer {
	return h.ptr
}

// Equal reports whether h and other are the same handle: the
// canonicalization invariant guarantees this is equivalent to byte-for-
// byte content equality.
//
//go:nosplit
func (h IStr) Equal(other IStr) bool {
	return h.ptr == other.ptr
}

// EqualBytes reports whether h's content equals b, without requiring b to
// have been interned.
func (h IStr) EqualBytes(b []byte) bool {
	return recordEqualsBytes(h.ptr, b)
}

// IsValid reports whether h holds a handle returned by this package. The
// zero value of IStr is the only invalid value.
func (h IStr) IsValid() bool {
	return h.ptr != nil
}

// Hash returns the content hash of h's bytes, computed with the same
// fast, non-cryptographic mix lookuptable.FastHasher.Sum64 would produce
// for a borrowed view of the same bytes — so an IStr and its own content
// agree as keys in an external hash container, independent of which
// Hasher the owning Interner uses internally for its own table.
func (h IStr) Hash() uint64 {
	return lookuptable.FastHasher.Sum64(h.Bytes())
}

// recordEqualsBytes compares the record at ptr to b, fast-rejecting on
// length before touching any bytes.
//
//go:nosplit
func recordEqualsBytes(ptr unsafe.Pointer, b []byte) bool {
	n := arena.RecordLen(ptr)
	if int(n) != len(b) {
		return false
	}
	if n == 0 {
		return true
	}
	recorded := unsafe.Slice((*byte)(ptr), n)
	for i := range recorded {
		if recorded[i] != b[i] {
			return false
		}
	}
	return true
}
