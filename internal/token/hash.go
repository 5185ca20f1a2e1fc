package token

import (
	"crypto/sha256"
	"crypto/subtle"
)

// HashRefresh returns the digest stored in place of a refresh token.
func HashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

// MatchesHash compares the digest of a presented token with a stored digest
// in constant time.
func MatchesHash(presented string, stored []byte) bool {
	return subtle.ConstantTimeCompare(HashRefresh(presented), stored) == 1
}
