package validator

// Validator validates annotated structs and returns a descriptive error when
// one or more fields violate their rules.
type Validator interface {
	Validate(data any) error
}
