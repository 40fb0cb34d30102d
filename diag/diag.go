// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: diag.go — zero-allocation cold-path logging for the interner
//
// Purpose:
//   - Logs infrequent events without introducing heap pressure on the hot
//     lookup/intern path. The interner's one call site logs lookup-table
//     rebuilds; page growth and registry pruning are not logged.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - Writes straight to stderr; never invoked from Intern's fast path.
// ─────────────────────────────────────────────────────────────────────────────

package diag

import "os"

// DropError logs prefix and err.Error() with a single concatenation and a
// direct write to stderr, avoiding the allocations fmt.Fprintf would incur.
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err == nil {
		DropMessage(prefix, "")
		return
	}
	msg := prefix + ": " + err.Error() + "\n"
	os.Stderr.WriteString(msg)
}

// DropMessage logs prefix and message with zero allocation beyond the one
// string concatenation. Used for cold-path diagnostics; the interner calls
// it when a lookup-table rebuild doubles capacity.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	msg := prefix + ": " + message + "\n"
	os.Stderr.WriteString(msg)
}
