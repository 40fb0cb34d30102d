// stats.go
//
// Bridges an Interner's internal bookkeeping to diag.Snapshot. Lives here
// rather than in diag so the ambient diagnostics package never needs to
// import the core interning types (diag.Snapshot is a plain struct diag
// knows how to serialize, not something it knows how to compute).

package sinter

import "github.com/coldharbor/sinter/diag"

// Snapshot reports a point-in-time view of arena, table, and registry
// bookkeeping. Diagnostics only; never consulted by Intern or TryLookup.
func (in *Interner) Snapshot() diag.Snapshot {
	pages, used, capacity := in.arena.Stats()
	tbl := in.published.Load()

	var loadFactor float64
	if tbl.Capacity() > 0 {
		loadFactor = float64(tbl.Len()) / float64(tbl.Capacity())
	}

	return diag.Snapshot{
		ArenaPages:     pages,
		ArenaBytesUsed: used,
		ArenaBytesCap:  capacity,
		TableLen:       tbl.Len(),
		TableCapacity:  tbl.Capacity(),
		LoadFactor:     loadFactor,
		RegistrySize:   in.registry.Len(),
	}
}

// Snapshot reports bookkeeping for the process-wide Interner.
func Snapshot() diag.Snapshot {
	return theInterner().Snapshot()
}
