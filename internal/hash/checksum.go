// Package hash provides the checksum primitive guarding container integrity.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum returns the 64-bit xxHash64 digest of data.
//
// The digest is appended to every container file and verified on open;
// xxHash64 is not cryptographic, it only detects corruption and truncation.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
