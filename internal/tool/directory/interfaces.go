package directory

import (
	"os"

	"github.com/Cyclone1070/agentgate/internal/tool/service/git"
)

// dirLister defines the filesystem operations needed for listing.
type dirLister interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.DirEntry, error)
}

// ignoreMatcher reports whether a root-relative path is gitignored.
type ignoreMatcher = git.Matcher
