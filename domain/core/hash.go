package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a content fingerprint. Landing-page URLs and offer text
// are compared by hash so the engine never stores raw page content.
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashURL fingerprints a landing-page URL after trimming whitespace and
// lowercasing the scheme/host-insensitive parts callers care about.
func HashURL(url string) Hash {
	return NewHash([]byte(strings.TrimSpace(strings.ToLower(url))))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}
