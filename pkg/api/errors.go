package api

import "fmt"

// Reason is a stable machine-readable validation failure code.
type Reason string

const (
	ReasonEmpty        Reason = "empty"
	ReasonTooLong      Reason = "too_long"
	ReasonUnknownModel Reason = "unknown_model"
	ReasonOutOfRange   Reason = "out_of_range"
)

// ValidationError describes the first validation failure encountered for
// a chat request. Message is the human-readable text surfaced to the
// caller in the response detail.
type ValidationError struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string, reason Reason, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  reason,
		Message: message,
	}
}
