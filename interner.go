// interner.go
//
// Interner owns the Arena, the epoch registry, the writer mutex, and the
// published-table pointer, and implements the lookup/insert protocol of
// spec §4.4: lookup never takes the writer mutex (first-use counter
// registration takes only the epoch registry's mutex); intern re-probes under the mutex before writing, so a
// race between two writers interning the same string still canonicalizes
// to one record.
//
// Grounded on original_source/src/internal.rs's intern /
// get_interned_and_map_len two-phase control flow, adapted from a single
// process-wide static to an instantiable type so tests can build isolated
// pools (spec §9's "Global state" note explicitly allows this).

package sinter

import (
	"math"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/coldharbor/sinter/arena"
	"github.com/coldharbor/sinter/diag"
	"github.com/coldharbor/sinter/epoch"
	"github.com/coldharbor/sinter/lookuptable"
)

// Interner is a string interning pool. The zero value is not usable; use
// New or NewWithHasher.
type Interner struct {
	hasher lookuptable.Hasher

	mu    sync.Mutex
	arena *arena.Arena

	published atomic.Pointer[lookuptable.Table]

	registry *epoch.Registry
	counters sync.Pool
}

// New returns an isolated Interner using the default fast, non-
// cryptographic hasher.
func New() *Interner {
	return NewWithHasher(lookuptable.FastHasher)
}

// NewWithHasher returns an isolated Interner using h as its content
// hasher. Use lookuptable.SecureHasher instead of the default when
// interning attacker-influenced byte sequences.
func NewWithHasher(h lookuptable.Hasher) *Interner {
	in := &Interner{
		hasher:   h,
		arena:    arena.New(),
		registry: epoch.NewRegistry(),
	}
	in.counters.New = func() any {
		return in.registry.Acquire()
	}
	return in
}

// getCounter borrows a counter from the pool, registering a fresh one on
// first use. Analogous to the thread-local lookup in
// original_source/src/internal.rs's local_epoch_or_init, but backed by
// sync.Pool's per-P caching rather than true OS thread-local storage.
//
// When sync.Pool drops a counter during its periodic GC-driven eviction
// and nothing else holds a reference to it, the counter becomes
// unreachable; the registry only holds a weak.Pointer to it (see
// epoch.Registry), so the garbage collector is free to reclaim it and
// the next Drain/prune pass drops the now-nil entry. That is the
// Go-native stand-in for the Rust Drop impl on LocalEpoch firing at
// thread exit — reclamation driven by actual unreachability rather than
// a registry-held strong pointer that would prevent it from ever
// occurring.
func (in *Interner) getCounter() *epoch.Counter {
	return in.counters.Get().(*epoch.Counter)
}

func (in *Interner) putCounter(c *epoch.Counter) {
	in.counters.Put(c)
}

// Deregister explicitly tombstones and prunes a counter this Interner
// handed out via getCounter, ahead of whenever the garbage collector
// would otherwise notice it. This is the explicit deregistration entry
// point spec §9 invites for embedders that want eager reclamation instead
// of waiting on the counter becoming unreachable. Most callers never need
// it: package-level and per-call usage reclaims automatically once the
// pool drops a counter and the registry's weak reference to it resolves
// to nil.
func (in *Interner) Deregister(c *epoch.Counter) {
	in.registry.Deregister(c)
}

// TryLookup locklessly searches for an already-interned match for b. It
// never blocks beyond the registry-mutex contention of a brand new
// counter's registration.
func (in *Interner) TryLookup(b []byte) (IStr, bool) {
	return in.tryLookupWithHash(b, in.hasher.Sum64(b))
}

// tryLookupWithHash brackets a single probe of the published table with
// an epoch bump, per spec §4.3's "Acquiring a guard" / "Releasing a
// guard" protocol.
func (in *Interner) tryLookupWithHash(b []byte, hash uint64) (IStr, bool) {
	c := in.getCounter()
	defer in.putCounter(c)

	c.Enter()
	tbl := in.published.Load()
	ptr, ok := tbl.Probe(hash, func(p unsafe.Pointer) bool {
		return recordEqualsBytes(p, b)
	})
	c.Exit()

	if !ok {
		return IStr{}, false
	}
	return IStr{ptr: ptr}, true
}

// Intern returns the canonical handle for b, inserting a new record if no
// match is currently published. Implements spec §4.4's intern: fast
// lockless probe, then (on miss) writer-mutex-guarded re-probe, arena
// push, table rebuild, atomic publish, and drain of the retired table.
func (in *Interner) Intern(b []byte) (IStr, error) {
	if uint64(len(b)) > math.MaxUint32 {
		return IStr{}, ErrTooLong
	}

	hash := in.hasher.Sum64(b)

	if h, ok := in.tryLookupWithHash(b, hash); ok {
		return h, nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	// Another writer may have inserted the same string between the
	// lockless probe above and acquiring the mutex.
	tbl := in.published.Load()
	if ptr, ok := tbl.Probe(hash, func(p unsafe.Pointer) bool {
		return recordEqualsBytes(p, b)
	}); ok {
		return IStr{ptr: ptr}, nil
	}

	ptr, err := in.arena.Push(b)
	if err != nil {
		return IStr{}, err
	}

	next := tbl.WithInsert(hash, ptr)
	in.published.Store(next)

	// Drain proves no reader is still inside tbl's probe before it
	// becomes unreachable; opportunistically prunes any tombstoned
	// counters discovered along the way (spec §4.4 step 6).
	in.registry.Drain()

	if tbl != nil && next.Capacity() != tbl.Capacity() {
		diag.DropMessage("sinter", "lookup table rebuilt at doubled capacity")
	}

	return IStr{ptr: ptr}, nil
}

// CollectInterned returns every currently-published handle. Order is not
// stable across calls or across table rebuilds.
func (in *Interner) CollectInterned() []IStr {
	c := in.getCounter()
	defer in.putCounter(c)

	c.Enter()
	tbl := in.published.Load()
	out := make([]IStr, 0, tbl.Len())
	tbl.Each(func(hash uint64, ptr unsafe.Pointer) {
		out = append(out, IStr{ptr: ptr})
	})
	c.Exit()

	return out
}
