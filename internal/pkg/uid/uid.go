package uid

// StringID generates string-based unique identifiers.
type StringID interface {
	// Generate returns a new unique identifier.
	Generate() string
}
