// sinter.go
//
// Package-level functions drive a single, lazily-constructed,
// process-wide Interner, matching spec §6's "Singleton access: a single
// process-wide Interner, lazily initialized on first use." Callers who
// need more than one pool, or isolation between tests, should use New
// directly instead.

package sinter

import "sync"

var theInterner = sync.OnceValue(func() *Interner {
	return New()
})

// Intern inserts-or-looks-up b against the process-wide Interner.
func Intern(b []byte) (IStr, error) {
	return theInterner().Intern(b)
}

// TryLookup locklessly searches the process-wide Interner for b.
func TryLookup(b []byte) (IStr, bool) {
	return theInterner().TryLookup(b)
}

// CollectInterned returns every handle currently published by the
// process-wide Interner.
func CollectInterned() []IStr {
	return theInterner().CollectInterned()
}
