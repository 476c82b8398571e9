package file

import "os"

// pathResolver confines paths to the project root.
type pathResolver interface {
	Resolve(path string) (string, error)
	Rel(path string) (string, error)
}

// fileReader defines the minimal filesystem operations needed for reading files.
type fileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFileRange(path string, offset, limit int64) ([]byte, error)
}
