package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashInput returns the hex sha256 of s. Analyses use it to key cached
// results and to store inputs without keeping the full text.
func HashInput(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
