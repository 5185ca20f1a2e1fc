package model

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, ErrIntegrityViolation) for a malformed stored hash.
	Verify(password, hash string) (bool, error)
	// VerifyAbsent spends the work of one Verify without a stored hash.
	VerifyAbsent(password string)
}
