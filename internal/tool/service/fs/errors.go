package fs

import "errors"

// -- Sentinels --

var (
	ErrInvalidOffset = errors.New("invalid offset")
)
