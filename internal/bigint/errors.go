package bigint

import (
	"errors"
	"strconv"
)

// Precondition failures reported by the arithmetic operations. They are
// deterministic: retrying the same call yields the same error.
var (
	// ErrInvalidNumberFormat is returned when text is not an optional '-'
	// followed by one or more ASCII decimal digits.
	ErrInvalidNumberFormat = errors.New("invalid number format")
	// ErrInvalidDigit is returned by FromDigits for an element outside [0, 9].
	ErrInvalidDigit = errors.New("digit out of range")
	// ErrDivisionByZero is returned when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeFactorial is returned when the factorial of a negative value
	// is requested.
	ErrNegativeFactorial = errors.New("factorial is not defined for negative numbers")
	// ErrNegativeExponent is returned when Power receives a negative exponent.
	ErrNegativeExponent = errors.New("negative exponents are not supported")
)

// NumError records a failed conversion, in the manner of strconv.NumError.
type NumError struct {
	Func  string // the failing function (Parse, FromDigits, UnmarshalText)
	Input string // the input
	Err   error  // the reason the conversion failed
}

func (e *NumError) Error() string {
	return "bigint." + e.Func + ": parsing " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *NumError) Unwrap() error { return e.Err }

func syntaxError(fn, input string) *NumError {
	return &NumError{Func: fn, Input: input, Err: ErrInvalidNumberFormat}
}
