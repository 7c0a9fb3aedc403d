package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))

	return hex.EncodeToString(h.Sum(nil))
}

// HashEmail hashes a normalised email so log lines can be correlated
// without recording the address itself
func HashEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return ""
	}
	return HashString(strings.ToLower(strings.TrimSpace(email)))
}
