package ports

// PasswordHasher hashes and verifies passwords (Argon2id) against a
// per-account salt stored alongside the hash.
type PasswordHasher interface {
	NewSalt() (string, error)
	Hash(password, salt string) (string, error)
	// Compare is constant time over the hash bytes.
	Compare(encodedHash, password, salt string) bool
}
