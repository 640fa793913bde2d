package driven

// PasswordHasher handles adaptive one-way hashing of credentials.
// This does NOT handle storage - use CredentialStore for account persistence.
type PasswordHasher interface {
	// Hash generates an adaptive one-way hash of a plaintext password.
	// An error here is a library fault, not a recoverable condition.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. Returns false for any
	// mismatch, including malformed hashes; it never errors.
	Verify(password, hash string) bool
}
