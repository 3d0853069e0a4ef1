// Package compile turns markdown documents into HTML and memoizes the result.
//
// The cache is keyed by a digest of the raw source bytes, not of the document
// path, so identical content compiled from two documents shares one entry.
package compile

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Key returns the cache key of src: the hex encoded BLAKE2b-256 digest.
func Key(src []byte) string {
	h := blake2b.Sum256(src)
	return hex.EncodeToString(h[:])
}
