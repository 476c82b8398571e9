package directory

// ListProjectFilesRequest takes no arguments.
type ListProjectFilesRequest struct{}

// ListProjectFilesResponse is the project tree as newline-delimited paths
// relative to the root. Directories end in "/".
type ListProjectFilesResponse struct {
	Structure string `json:"structure"`
	Count     int    `json:"count"`
	Truncated bool   `json:"truncated"`
}
