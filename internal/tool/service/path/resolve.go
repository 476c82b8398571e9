package path

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolver confines paths to the project root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for an already canonical root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the canonical project root.
func (r *Resolver) Root() string {
	return r.root
}

// CanonicaliseRoot canonicalises a root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &RootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &RootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &RootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves path against the root and rejects anything that lexically
// escapes it. Absolute paths are accepted only inside the root.
func (r *Resolver) Abs(path string) (string, error) {
	if r.root == "" {
		return "", ErrRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.root, path))
	}

	if !r.contains(abs) {
		return "", &OutsideRootError{Path: path}
	}
	return abs, nil
}

// Resolve is Abs plus symlink resolution: a link inside the root that points
// outside it is rejected. Paths that do not exist yet are checked lexically.
func (r *Resolver) Resolve(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return abs, nil
		}
		return "", err
	}
	if !r.contains(real) {
		return "", &OutsideRootError{Path: path}
	}
	return real, nil
}

// Rel resolves path relative to the root, using forward slashes.
// The root itself is returned as "".
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", &OutsideRootError{Path: path}
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

func (r *Resolver) contains(abs string) bool {
	if abs == r.root {
		return true
	}
	prefix := r.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}
