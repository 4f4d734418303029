// Package hash provides a fast, non-cryptographic digest used only for
// diagnostics (log correlation), never for on-disk framing.
package hash

import "github.com/cespare/xxhash/v2"

// Digest computes the xxHash64 of a byte payload, for log correlation when
// a migrated or corrupt blob needs to be matched across log lines.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
