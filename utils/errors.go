package utils

import "errors"

// Error classes returned by grid construction and interpolation. Callers
// test for them with errors.Is; the wrapped message carries the detail.
var (
	ErrConfig    = errors.New("invalid configuration")
	ErrValueSize = errors.New("data size inconsistent with grid")
	ErrDomain    = errors.New("point outside grid domain")
	ErrIndex     = errors.New("element index out of bounds")
)
