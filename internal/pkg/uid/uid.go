// Package uid provides identifier generators used across the application.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	// Generate returns a new identifier.
	Generate() string
}
