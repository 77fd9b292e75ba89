// Package uid provides ID generators used across the application: UUIDs for
// correlation and token IDs, snowflakes for numeric entity IDs.
package uid

// StringID generates string identifiers.
type StringID interface {
	// Generate returns a new string identifier.
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	// Generate returns a new int64 identifier.
	Generate() int64
}
