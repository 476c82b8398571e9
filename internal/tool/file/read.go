package file

import (
	"context"
	"errors"
	"io/fs"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/helper/content"
)

// ReadFileTool reads text files inside the project root.
type ReadFileTool struct {
	fileOps      fileReader
	pathResolver pathResolver
	config       *config.Config
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader, pathResolver pathResolver, cfg *config.Config) *ReadFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ReadFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run reads the whole file named by the request.
// Paths outside the project root, directories, binary files and files over
// the size limit are refused.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (*ReadFileResponse, error) {
	target := req.Target()

	abs, err := t.pathResolver.Resolve(target)
	if err != nil {
		return nil, err
	}
	rel, err := t.pathResolver.Rel(abs)
	if err != nil {
		return nil, err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileMissingError{Path: target}
		}
		return nil, &ReadError{Path: target, Cause: err}
	}
	if info.IsDir() {
		return nil, &IsDirectoryError{Path: target}
	}

	limit := t.config.Tools.MaxFileSize
	if info.Size() > limit {
		return nil, &TooLargeError{Path: target, Size: info.Size(), Limit: limit}
	}

	data, err := t.fileOps.ReadFileRange(abs, 0, 0)
	if err != nil {
		return nil, &ReadError{Path: target, Cause: err}
	}
	if content.IsBinaryContent(data) {
		return nil, &BinaryFileError{Path: target}
	}

	return &ReadFileResponse{
		FilePath:     target,
		ResolvedPath: rel,
		Size:         info.Size(),
		Content:      string(data),
	}, nil
}
