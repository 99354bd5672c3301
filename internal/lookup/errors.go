package lookup

import "errors"

// Sentinel errors for lookup failures.
var (
	ErrEmptyFilename = errors.New("empty filename")
	ErrStatus        = errors.New("unexpected status from lookup service")
	ErrMalformed     = errors.New("malformed lookup response")
	ErrEmptyHash     = errors.New("lookup service returned no file hash")
	ErrInvalidConfig = errors.New("invalid lookup configuration")
)
