package classifier

import "errors"

var (
	// ErrValidation is returned when inputs fail shape, value, or class
	// checks before any native call is made.
	ErrValidation = errors.New("invalid input")

	// ErrNotFitted is returned when prediction is attempted on an unbound
	// classifier.
	ErrNotFitted = errors.New("classifier is not fitted")
)
