// Package errors classifies the failures of a graph exploration request.
//
// Every error surfaced by the request model, the query compiler, the result
// normalizer and the store gateway is either a RequestError (the caller sent a
// value that cannot be served), an IntegrityError (the store returned data
// outside the known schema) or a GatewayError (the store call itself failed).
// Transport layers map the class onto a response status without inspecting
// error strings.
package errors

import (
	"errors"
	"fmt"
)

// Class represents the classification of errors for handling purposes
type Class int

const (
	// ClassRequest marks malformed or unsupported request values
	ClassRequest Class = iota
	// ClassIntegrity marks store data that violates the graph schema
	ClassIntegrity
	// ClassGateway marks a failed or timed out store call
	ClassGateway
)

// String returns the string representation of Class
func (c Class) String() string {
	switch c {
	case ClassRequest:
		return "request"
	case ClassIntegrity:
		return "integrity"
	case ClassGateway:
		return "gateway"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Request errors
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrInvalidValue     = errors.New("invalid value")
	ErrMissingValue     = errors.New("missing value")

	// Integrity errors
	ErrUnknownKind        = errors.New("unknown element kind")
	ErrMissingProperty    = errors.New("missing identity property")
	ErrUnresolvedEndpoint = errors.New("unresolved edge endpoint")
	ErrMalformedProperty  = errors.New("malformed property")

	// Lookup errors
	ErrNotFound = errors.New("record not found")
)

// ClassifiedError wraps an error with its classification and the context
// needed to diagnose it.
type ClassifiedError struct {
	Class     Class
	Err       error
	Message   string
	Component string
	Operation string
	// Field names the offending request parameter or record property.
	Field string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	if ce.Err != nil {
		return ce.Err.Error()
	}
	return ce.Class.String() + " error"
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Request creates a RequestError for the named parameter.
func Request(field string, err error, format string, args ...any) *ClassifiedError {
	return &ClassifiedError{
		Class:   ClassRequest,
		Err:     err,
		Field:   field,
		Message: fmt.Sprintf("invalid %s: %s", field, fmt.Sprintf(format, args...)),
	}
}

// Integrity creates an IntegrityError raised by component.operation.
func Integrity(component, operation string, err error, format string, args ...any) *ClassifiedError {
	return &ClassifiedError{
		Class:     ClassIntegrity,
		Err:       err,
		Component: component,
		Operation: operation,
		Message:   fmt.Sprintf("%s.%s: %s", component, operation, fmt.Sprintf(format, args...)),
	}
}

// WrapGateway wraps a failed store call as a GatewayError.
// Returns nil when err is nil so it can wrap call results directly.
func WrapGateway(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{
		Class:     ClassGateway,
		Err:       err,
		Component: component,
		Operation: method,
		Message:   fmt.Sprintf("%s.%s: %s failed: %v", component, method, action, err),
	}
}

// Wrap adds component and method context to an error while keeping its
// classification reachable through errors.As.
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// ClassOf reports the class of err, if any classified error is in its chain.
func ClassOf(err error) (Class, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class, true
	}
	return 0, false
}

// IsRequest checks if an error was caused by caller input
func IsRequest(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == ClassRequest
}

// IsIntegrity checks if an error was caused by inconsistent store data
func IsIntegrity(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == ClassIntegrity
}

// IsGateway checks if an error was caused by the store call
func IsGateway(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == ClassGateway
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
