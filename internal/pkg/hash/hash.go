package hash

// Hash produces and verifies one-way hashes of secret values.
type Hash interface {
	// Hash returns the hashed form of plaintext.
	Hash(plaintext string) ([]byte, error)

	// Verify reports whether plaintext matches the stored hashed value.
	Verify(hashed, plaintext string) bool
}

var (
	_ Hash = (*Bcrypt)(nil)
	_ Hash = (*HMACSHA256)(nil)
)
