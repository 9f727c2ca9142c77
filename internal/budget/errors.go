package budget

import "errors"

var (
	// ErrInvalidInput marks a non-numeric or out-of-range value, such as a
	// negative amount or a loan term of zero.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateIdentifier marks an expense list holding the same id twice.
	ErrDuplicateIdentifier = errors.New("duplicate expense identifier")
)
