package calculator

import "errors"

var (
	// ErrInvalidInput is returned for empty, undersized or non-finite input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDivisionByZero is returned when a return is requested against a zero previous price.
	ErrDivisionByZero = errors.New("division by zero")
)
