package errutil

import "errors"

// Sentinel errors for consistent error handling across tools
var (
	// Registry errors
	ErrToolNotFound       = errors.New("tool not found")
	ErrDuplicateTool      = errors.New("tool already registered")
	ErrArgumentValidation = errors.New("invalid tool arguments")

	// Environment errors
	ErrConfiguration = errors.New("tool is not configured")
	ErrUpstream      = errors.New("upstream service failed")

	// File operation errors
	ErrOutsideWorkspace = errors.New("path is outside project root")
	ErrBinaryFile       = errors.New("binary files are not supported")
	ErrTooLarge         = errors.New("file or content exceeds size limit")
	ErrFileMissing      = errors.New("file does not exist")

	// Process errors
	ErrProcessTimeout  = errors.New("process timed out")
	ErrCommandRejected = errors.New("command rejected by policy")
)
