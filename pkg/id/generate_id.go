package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Used for approve secrets and access tokens.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewSubmissionID returns a random (v4) uuid string.
func NewSubmissionID() string { return uuid.NewString() }

// NewSuffix returns n random bytes hex-encoded, for object key suffixes.
func NewSuffix(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
