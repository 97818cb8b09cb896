// Package apperrors defines the application error types of bigcalc, keeping
// configuration, arithmetic, validation and server failures apart while
// carrying their underlying cause.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w, and every type here implements
// Unwrap() where it has a cause, so errors.Is() and errors.As() see through
// them down to the bigint sentinel errors.
package apperrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
)

// Application exit codes reported to the OS.
const (
	ExitSuccess         = 0   // Successful execution.
	ExitErrorGeneric    = 1   // Generic error.
	ExitErrorTimeout    = 2   // The operation timed out.
	ExitErrorMismatch   = 3   // Engines disagreed on a result.
	ExitErrorConfig     = 4   // Invalid flags, environment or expression syntax.
	ExitErrorArithmetic = 5   // An arithmetic precondition failed (e.g. division by zero).
	ExitErrorCanceled   = 130 // Canceled by SIGINT.
)

// ConfigError reports invalid user configuration: flags, environment
// variables or a malformed expression on the command line.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure of an arithmetic operation together with
// the expression that triggered it.
type CalculationError struct {
	// Expression is the operation as the user wrote it, if known.
	Expression string
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause message, prefixed by the expression when set.
func (e CalculationError) Error() string {
	if e.Expression != "" {
		return fmt.Sprintf("%s: %v", e.Expression, e.Cause)
	}
	return e.Cause.Error()
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps err with a formatted context message, or returns nil when
// err is nil.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsArithmeticError reports whether err is one of the deterministic
// precondition failures of the arithmetic core: division by zero, factorial
// of a negative value or a negative exponent.
func IsArithmeticError(err error) bool {
	return errors.Is(err, bigint.ErrDivisionByZero) ||
		errors.Is(err, bigint.ErrNegativeFactorial) ||
		errors.Is(err, bigint.ErrNegativeExponent)
}

// IsInputError reports whether err comes from unusable user input: a bad
// operand, an unknown operator, an expression in none of the accepted forms
// or an operand too large for the selected engine.
func IsInputError(err error) bool {
	var ve ValidationError
	return errors.Is(err, bigint.ErrInvalidNumberFormat) ||
		errors.Is(err, engine.ErrInvalidExpression) ||
		errors.Is(err, engine.ErrUnknownOp) ||
		errors.Is(err, engine.ErrOperandTooLarge) ||
		errors.As(err, &ve)
}

// ValidationError reports an invalid request or operand.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
