package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashContactKey returns a stable, filesystem-safe identifier for an email
// address. Case and surrounding whitespace do not change the result.
func HashContactKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
