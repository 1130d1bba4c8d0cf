// Package conversion normalises and hashes buyer identity for ad-platform matching.
// Hashes are unsalted SHA-256 hex digests, which is what the matching API expects.
package conversion

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// MinPhoneDigits is the shortest digit string still sent as a phone match key.
const MinPhoneDigits = 9

var reNonDigit = regexp.MustCompile(`\D`)

func Hash(v string) string {
	s := sha256.Sum256([]byte(v))
	return hex.EncodeToString(s[:])
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps digits only and swaps a leading 0 for countryCode.
// ok is false when fewer than MinPhoneDigits digits remain.
func NormalizePhone(phone, countryCode string) (string, bool) {
	digits := reNonDigit.ReplaceAllString(phone, "")
	if len(digits) < MinPhoneDigits {
		return "", false
	}
	if strings.HasPrefix(digits, "0") {
		digits = countryCode + digits[1:]
	}
	return digits, true
}

func HashEmail(email string) string {
	n := NormalizeEmail(email)
	if n == "" {
		return ""
	}
	return Hash(n)
}

func HashPhone(phone, countryCode string) (string, bool) {
	n, ok := NormalizePhone(phone, countryCode)
	if !ok {
		return "", false
	}
	return Hash(n), true
}
