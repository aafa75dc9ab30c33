package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex SHA256 of a bearer secret such as a session ID,
// so stores never hold the raw value a cookie carries.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
