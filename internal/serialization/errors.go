package serialization

import "errors"

// Codec errors.
var (
	ErrTruncated     = errors.New("file truncated or corrupt")
	ErrShapeMismatch = errors.New("tensor shape disagrees with buffer length")
	ErrMissingTable  = errors.New("container is missing a required table")
)
