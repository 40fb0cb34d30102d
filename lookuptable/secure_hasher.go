// secure_hasher.go
//
// Opt-in hash-flood-resistant hasher for callers interning
// attacker-influenced byte sequences. Spec §1 explicitly leaves the
// hash function out of scope for the core protocol ("any fast,
// non-cryptographic 64-bit hash... suffices"); FastHasher is that
// default. SecureHasher trades throughput for collision resistance and
// is never selected automatically.

package lookuptable

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

type secureHasher struct{}

// Sum64 folds a SHA3-256 digest down to 64 bits. Slower than
// FastHasher by roughly an order of magnitude; intended for untrusted
// input where an attacker who can predict the fast hash's collisions
// could otherwise force pathological probe chains.
func (secureHasher) Sum64(b []byte) uint64 {
	sum := sha3.Sum256(b)
	return binary.LittleEndian.Uint64(sum[:8])
}

// SecureHasher is the opt-in cryptographically-mixed Hasher, selected
// via sinter.NewWithHasher(lookuptable.SecureHasher).
var SecureHasher Hasher = secureHasher{}
