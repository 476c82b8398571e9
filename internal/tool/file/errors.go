package file

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
)

// -- Sentinels --

var (
	ErrPathRequired = errors.New("filePath or path is required")
)

// -- Error Types --

// FileMissingError is returned when the file does not exist.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}
func (e *FileMissingError) Unwrap() error { return errutil.ErrFileMissing }

// IsDirectoryError is returned when the path names a directory.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return fmt.Sprintf("%s is a directory, not a file", e.Path)
}

// TooLargeError is returned when the file exceeds the size limit.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file %s is %d bytes, limit is %d", e.Path, e.Size, e.Limit)
}
func (e *TooLargeError) Unwrap() error { return errutil.ErrTooLarge }

// BinaryFileError is returned when the file content is binary.
type BinaryFileError struct {
	Path string
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("file %s is binary", e.Path)
}
func (e *BinaryFileError) Unwrap() error { return errutil.ErrBinaryFile }

// ReadError wraps I/O failures.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }
