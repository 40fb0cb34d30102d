// stats.go
//
// Snapshot is a point-in-time view of an Interner's internal bookkeeping,
// assembled by the sinter package (which has visibility into the arena,
// lookup table, and epoch registry) and handed to this package purely for
// serialization. diag never imports sinter, so the dependency runs one
// way: sinter -> diag.

package diag

import "github.com/sugawarayuuta/sonnet"

// Snapshot captures arena, table, and registry bookkeeping at one instant.
// Every field is diagnostics-only; nothing here is consulted on the
// Intern/TryLookup hot path.
type Snapshot struct {
	ArenaPages     int    `json:"arena_pages"`
	ArenaBytesUsed uint64 `json:"arena_bytes_used"`
	ArenaBytesCap  uint64 `json:"arena_bytes_capacity"`

	TableLen      int     `json:"table_len"`
	TableCapacity int     `json:"table_capacity"`
	LoadFactor    float64 `json:"load_factor"`

	RegistrySize int `json:"registry_size"`
}

// JSON marshals the snapshot with the same encoder the teacher's own
// harvester uses for its RPC traffic, rather than the standard library's
// encoding/json.
func (s Snapshot) JSON() ([]byte, error) {
	return sonnet.Marshal(s)
}
