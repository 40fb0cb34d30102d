// epoch.go
//
// Per-reader epoch counters and the registry the writer drains before
// retiring a published lookup table. Mirrors the epoch vector in
// original_source/src/internal.rs: even values mean "idle", odd values
// mean "inside a critical section", and zero is a tombstone left by a
// reader that will never read again.
//
// Go has no OS-thread-exit hook exposed to user code, so this package
// does not try to reproduce the Rust thread_local-plus-Drop mechanism
// literally. A Counter's death is signaled one of two ways: explicitly,
// via Deregister, or implicitly, by the registry holding only a weak
// reference to it — once nothing else keeps a Counter reachable (the
// sinter package's sync.Pool-backed reader cache evicts it and no
// goroutine is mid-call), the garbage collector reclaims it and the
// registry's weak.Pointer resolves to nil, which prune/Drain treat the
// same as an explicit tombstone. This is the Go-native analogue of the
// owning thread dying: the registry never holds a strong reference that
// would keep a dead reader's counter artificially alive.

package epoch

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

const (
	// tombstone marks a Counter whose owner will never call Enter/Exit
	// again; the registry is free to drop it.
	tombstone = 0
	// initValue is the starting, idle value for a freshly registered
	// counter (even and non-zero, per spec §3).
	initValue = 2
)

// Counter is a single reader's epoch. The trailing padding keeps
// independent readers' counters off the same cache line without moving
// the type out of the normal heap — it is allocated per-call by Acquire
// and referenced weakly by the registry, so (unlike a package-level
// singleton such as aggregator/aggregator.go's AggregatorState) it must
// remain a normal, GC-managed, finalizable heap object.
type Counter struct {
	v uint64
	_ [56]byte
}

// Enter opens a critical section: the counter transitions even->odd.
// Release ordering (via atomic add) ensures the load of the published
// table that follows cannot be reordered ahead of this bump.
//
//go:nosplit
func (c *Counter) Enter() {
	atomic.AddUint64(&c.v, 1)
}

// Exit closes a critical section: odd->even.
//
//go:nosplit
func (c *Counter) Exit() {
	atomic.AddUint64(&c.v, 1)
}

// Tombstone marks the counter dead. Idempotent.
//
//go:nosplit
func (c *Counter) Tombstone() {
	atomic.StoreUint64(&c.v, tombstone)
}

// IsTombstoned reports whether the counter has been marked dead.
func (c *Counter) IsTombstoned() bool {
	return atomic.LoadUint64(&c.v) == tombstone
}

func (c *Counter) snapshot() uint64 {
	return atomic.LoadUint64(&c.v)
}

// Registry is the mutex-protected list of live counters. Its own mutex
// makes it independently testable and usable outside an Interner. Inside
// an Interner, Drain runs under the Interner's writer mutex, while Acquire
// runs on a reader's path whenever a fresh counter is minted and takes
// only this registry mutex, so such a reader waits for any Drain in
// progress.
//
// Entries are held as weak.Pointer, not *Counter: a registry that kept a
// strong reference to every counter it ever acquired would keep every one
// of them reachable forever, which would make automatic reclamation via
// unreachability impossible by construction. Weakly referencing them lets
// a counter whose owner has gone away (evicted from its cache, never
// touched again) actually become collectible.
type Registry struct {
	mu       sync.Mutex
	counters []weak.Pointer[Counter]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Acquire allocates and registers a new, idle Counter, returning the only
// strong reference to it. The caller owns keeping that reference alive
// for as long as it intends to use the counter; once dropped, the
// registry's own reference cannot resurrect it.
func (r *Registry) Acquire() *Counter {
	c := &Counter{}
	atomic.StoreUint64(&c.v, initValue)

	r.mu.Lock()
	r.counters = append(r.counters, weak.Make(c))
	r.mu.Unlock()

	return c
}

// Deregister immediately tombstones c and prunes it (and any other dead
// or tombstoned counters) from the registry. This is the explicit
// deregistration entry point spec §9 calls for on platforms — Go among
// them — without a reliable thread-exit hook; it reclaims eagerly instead
// of waiting on the garbage collector to notice c is unreachable.
func (r *Registry) Deregister(c *Counter) {
	c.Tombstone()
	r.mu.Lock()
	r.prune()
	r.mu.Unlock()
}

// Len reports the number of currently-registered (non-pruned) counters.
// Diagnostics only.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.counters)
}

// Drain blocks until every counter that was mid-read at the moment Drain
// was called has advanced at least once, then prunes any dead or
// tombstoned entries it observed along the way. Call after publishing a
// replacement table and before treating the retired table as safe to
// stop consulting.
//
// The spin condition is "the counter's value has changed", not "the
// counter is now even" — a reader observed re-entering a fresh critical
// section before the writer gets a chance to look again still proves it
// left the old one. This matches the exact rule
// original_source/src/internal.rs documents and spec §4.3 codifies. A
// counter whose weak reference has already gone nil needs no waiting at
// all: its owner is gone and it can never re-enter anything.
func (r *Registry) Drain() {
	r.mu.Lock()
	defer r.mu.Unlock()

	type watch struct {
		c    *Counter
		last uint64
	}

	var pending []watch
	for _, wp := range r.counters {
		c := wp.Value()
		if c == nil {
			continue
		}
		v := c.snapshot()
		if v == tombstone {
			continue
		}
		if v%2 == 1 {
			pending = append(pending, watch{c, v})
		}
	}

	spins := 0
	for len(pending) > 0 {
		out := pending[:0]
		for _, w := range pending {
			if w.c.snapshot() == w.last {
				out = append(out, w)
			}
		}
		pending = out
		if len(pending) == 0 {
			break
		}
		spins++
		if spins > 64 {
			runtime.Gosched()
		}
	}

	r.prune()
}

// prune drops registry entries that are either tombstoned or have
// already been collected (their weak reference resolves to nil). Caller
// must hold mu.
func (r *Registry) prune() {
	kept := r.counters[:0]
	for _, wp := range r.counters {
		c := wp.Value()
		if c == nil {
			continue
		}
		if !c.IsTombstoned() {
			kept = append(kept, wp)
		}
	}
	r.counters = kept
}
