package errs

import (
	"fmt"
	"maps"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ConfigError carries the field-keyed messages of a widget configuration
// that failed validation.
type ConfigError struct {
	ErrorMessage
	Fields map[string]string
}

// UnknownTypeError is returned for a visualization type outside the
// registry.
type UnknownTypeError struct {
	ErrorMessage
	Type string
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError wraps a failed call to a collaborating service.
// Transient failures (timeouts, 5xx) may succeed on retry.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConfigError(fields map[string]string) *ConfigError {
	return &ConfigError{
		ErrorMessage: ErrorMessage{Message: "widget configuration is invalid"},
		Fields:       maps.Clone(fields),
	}
}

func NewUnknownTypeError(t string) *UnknownTypeError {
	return &UnknownTypeError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("unknown visualization type %q", t)},
		Type:         t,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}
