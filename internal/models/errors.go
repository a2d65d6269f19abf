package models

import "fmt"

// ValidationError rejects an input before any network activity. Recoverable
// by correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TransportError is any failed round trip to the scoring service: network
// failure, non-2xx status or an unreadable body. Recoverable by resubmitting.
type TransportError struct {
	StatusCode int
	Message    string
}

func NewTransportError(statusCode int, message string) *TransportError {
	return &TransportError{StatusCode: statusCode, Message: message}
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("scoring service returned %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}
