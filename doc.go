// Package sinter implements a process-wide string interning pool: every
// distinct byte sequence is canonicalized to exactly one immortal,
// pointer-comparable IStr handle.
//
// Readers never take a lock: TryLookup hashes its input, brackets a probe
// of the currently-published lookup table with an epoch bump, and returns.
// Writers serialize through a single mutex, rebuild the lookup table
// copy-on-write, publish the replacement with an atomic pointer swap, and
// drain outstanding readers of the retired table before moving on.
//
// A package-level Interner is lazily constructed on first use for callers
// who want process-wide canonicalization; New returns an isolated instance
// for tests or embedders that need more than one pool.
package sinter
