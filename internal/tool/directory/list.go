package directory

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Cyclone1070/agentgate/internal/config"
)

// ListProjectFilesTool lists every file under the project root.
type ListProjectFilesTool struct {
	fs         dirLister
	loadIgnore func() (ignoreMatcher, error)
	config     *config.Config
	root       string
}

// NewListProjectFilesTool creates a new ListProjectFilesTool with injected dependencies.
// loadIgnore is called on every run so edits to .gitignore are picked up.
func NewListProjectFilesTool(
	fs dirLister,
	loadIgnore func() (ignoreMatcher, error),
	cfg *config.Config,
	root string,
) *ListProjectFilesTool {
	if fs == nil {
		panic("fs is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if root == "" {
		panic("root is required")
	}
	return &ListProjectFilesTool{
		fs:         fs,
		loadIgnore: loadIgnore,
		config:     cfg,
		root:       root,
	}
}

// Run walks the project root depth-first in name order, skipping excluded
// directories and gitignored paths. Symlinks are listed but never followed.
func (t *ListProjectFilesTool) Run(ctx context.Context, _ *ListProjectFilesRequest) (*ListProjectFilesResponse, error) {
	info, err := t.fs.Stat(t.root)
	if err != nil {
		return nil, &ListError{Path: t.root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &ListError{Path: t.root, Cause: ErrNotADirectory}
	}

	var matcher ignoreMatcher
	if t.loadIgnore != nil {
		if matcher, err = t.loadIgnore(); err != nil {
			return nil, err
		}
	}

	w := &walker{
		tool:    t,
		matcher: matcher,
		max:     t.config.Tools.MaxListEntries,
	}
	if err := w.walk(ctx, t.root, ""); err != nil {
		return nil, err
	}

	return &ListProjectFilesResponse{
		Structure: strings.Join(w.entries, "\n"),
		Count:     len(w.entries),
		Truncated: w.truncated,
	}, nil
}

type walker struct {
	tool      *ListProjectFilesTool
	matcher   ignoreMatcher
	max       int
	entries   []string
	truncated bool
}

func (w *walker) walk(ctx context.Context, abs, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	children, err := w.tool.fs.ListDir(abs)
	if err != nil {
		return &ListError{Path: rel, Cause: err}
	}

	for _, child := range children {
		if w.truncated {
			return nil
		}

		name := child.Name()
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}
		isDir := child.IsDir()

		if isDir && slices.Contains(w.tool.config.Tools.ExcludedDirs, name) {
			continue
		}
		if w.matcher != nil && w.matcher.ShouldIgnore(childRel, isDir) {
			continue
		}

		if w.max > 0 && len(w.entries) >= w.max {
			w.truncated = true
			return nil
		}

		if isDir {
			w.entries = append(w.entries, childRel+"/")
			if err := w.walk(ctx, filepath.Join(abs, name), childRel); err != nil {
				return err
			}
			continue
		}
		w.entries = append(w.entries, childRel)
	}
	return nil
}
