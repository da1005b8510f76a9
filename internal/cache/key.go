package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenerateKey derives a stable key from a resource name, an entity hash and
// the encoded query string. Hashes are compared case-insensitively.
func GenerateKey(resource, hash, encodedQuery string) string {
	h := sha256.New()
	h.Write([]byte(resource))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(hash)))
	h.Write([]byte{0})
	h.Write([]byte(encodedQuery))
	return hex.EncodeToString(h.Sum(nil))
}
