package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// GenerateAPIKey creates a new key and its hash.
// Returns: (realKey, hash)
// The real key is shown to the user exactly once; only the hash is kept.
func GenerateAPIKey() (string, string, error) {
	// 1. Generate 32 random bytes
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}

	// 2. Convert to Hex string
	randomString := hex.EncodeToString(bytes)

	// 3. Add Prefix (Like Stripe)
	realKey := fmt.Sprintf("mp_live_%s", randomString)

	// 4. Hash it (SHA256) - This is what we keep
	hash := sha256.Sum256([]byte(realKey))
	hashedKey := hex.EncodeToString(hash[:])

	return realKey, hashedKey, nil
}

// HashKey returns the SHA256 hex of a raw key, for store lookups.
func HashKey(providedKey string) string {
	hash := sha256.Sum256([]byte(providedKey))
	return hex.EncodeToString(hash[:])
}

// ValidateKey checks if the user provided key matches the hash.
func ValidateKey(providedKey, storedHash string) bool {
	computedHash := HashKey(providedKey)
	return subtle.ConstantTimeCompare([]byte(computedHash), []byte(storedHash)) == 1
}
