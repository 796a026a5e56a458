// Package checksum derives stable identifiers from canonical text.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// IDLength is the number of hex characters kept in an ID.
const IDLength = 16

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ID joins parts with newlines and returns a truncated digest. Equal parts
// in equal order always give the same ID.
func ID(parts ...string) string {
	return Sum([]byte(strings.Join(parts, "\n")))[:IDLength]
}
