// convert.go
//
// Ergonomic conversion constructors. Spec §1 lists these among the "thin
// adapters" explicitly out of scope for the core protocol; they exist
// here only to give callers the same surface original_source/src/istr.rs
// exposes (From<&str>, From<String>, TryFrom<&CStr>), expressed as plain
// functions since Go has no trait-conversion machinery.

package sinter

import "bytes"

// FromString interns s against the process-wide Interner.
func FromString(s string) (IStr, error) {
	return Intern([]byte(s))
}

// FromBytes interns a length-prefixed byte sequence, which may contain
// interior nul bytes: the nul-terminated view (IStr.CBytes) will simply
// be truncated at the first one, per spec §6.
func FromBytes(b []byte) (IStr, error) {
	return Intern(b)
}

// FromCString interns b, which is expected to represent a nul-terminated
// byte string (an optional trailing nul is stripped before interning).
// Any nul byte found before the end is rejected as ambiguous, since the
// resulting handle's nul-terminated view could not round-trip it.
func FromCString(b []byte) (IStr, error) {
	data := b
	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return IStr{}, ErrInteriorNul
	}
	return Intern(data)
}

// FromString is the per-Interner equivalent of the package-level
// FromString, for callers using an isolated pool.
func (in *Interner) FromString(s string) (IStr, error) {
	return in.Intern([]byte(s))
}

// FromBytes is the per-Interner equivalent of the package-level
// FromBytes.
func (in *Interner) FromBytes(b []byte) (IStr, error) {
	return in.Intern(b)
}

// FromCString is the per-Interner equivalent of the package-level
// FromCString.
func (in *Interner) FromCString(b []byte) (IStr, error) {
	data := b
	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return IStr{}, ErrInteriorNul
	}
	return in.Intern(data)
}
