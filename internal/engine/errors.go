package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned when an optional primitive is invoked on a
	// library build that does not export it.
	ErrUnsupported = errors.New("not supported by the loaded engine library")

	// ErrCreateFailed is returned when the engine hands back a null machine.
	ErrCreateFailed = errors.New("engine returned no machine")

	// ErrNoHandle is returned when an operation is invoked on a zero handle.
	ErrNoHandle = errors.New("no machine handle")
)

// LinkError reports a failure to locate, open, or bind the native library.
type LinkError struct {
	Path string
	Err  error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s: %v", e.Path, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}
