// Package docid issues the opaque 24-hex-character keys used as storage
// primary keys. Keys are random, not sequential, and always travel as
// strings on the wire.
package docid

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

const rawLen = 12

var hexPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// New returns a fresh 24-character lowercase hex key.
func New() string {
	buf := make([]byte, rawLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// IsValid reports whether s has the shape of a document key.
func IsValid(s string) bool {
	return hexPattern.MatchString(s)
}
