package directory

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// HashPassword digests a password to lowercase hex, zero-padded to a fixed
// 64-character width. Only the digest is stored or compared.
func HashPassword(password string) string {
	sum := sha3.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
