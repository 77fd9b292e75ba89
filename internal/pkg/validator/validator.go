package validator

// Validator validates request and domain structs.
type Validator interface {
	// Validate returns nil when data passes all rules. On failure it returns
	// an implementation-specific error describing the failing fields.
	Validate(data any) error
}

var _ Validator = (*V10Validator)(nil)
