package validator

// Validator validates a struct and reports field-level failures as an error.
type Validator interface {
	Validate(data any) error
}
