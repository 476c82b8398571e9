package file

// ReadFileRequest accepts the path under either name the model tends to use.
type ReadFileRequest struct {
	FilePath string `json:"filePath,omitempty" jsonschema_description:"Path of the file relative to the project root"`
	Path     string `json:"path,omitempty" jsonschema_description:"Alias for filePath"`
}

func (r *ReadFileRequest) Validate() error {
	if r.Target() == "" {
		return ErrPathRequired
	}
	return nil
}

// Target returns filePath, falling back to path.
func (r *ReadFileRequest) Target() string {
	if r.FilePath != "" {
		return r.FilePath
	}
	return r.Path
}

// ReadFileResponse holds the file content and where it was read from.
type ReadFileResponse struct {
	FilePath     string `json:"filePath"`
	ResolvedPath string `json:"resolved_path"`
	Size         int64  `json:"size"`
	Content      string `json:"content"`
}
