package driven

// PasswordHasher hashes and verifies local-account passwords.
// Only LOCAL-provider users ever hold a password; callers hash explicitly at
// construction/change time, never implicitly on persistence.
type PasswordHasher interface {
	// Hash produces a salted one-way hash of the plaintext.
	Hash(password string) (string, error)

	// Verify reports whether the plaintext matches the hash. Cost is paid on
	// both outcomes; timing does not reveal the answer.
	Verify(password, hash string) bool
}
