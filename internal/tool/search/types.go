package search

import "strings"

// SearchTextRequest is the text to look for.
type SearchTextRequest struct {
	Text string `json:"text" jsonschema:"minLength=1" jsonschema_description:"Literal text to search for in the project files"`
}

func (r *SearchTextRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrTextRequired
	}
	// grep -F treats each line of the pattern as a separate pattern.
	if strings.ContainsAny(r.Text, "\r\n") {
		return ErrMultilineText
	}
	return nil
}

// Match is one matching line.
type Match struct {
	FilePath string `json:"file_path"`
	Line     *int   `json:"line"` // nil when grep output could not be split
	Text     string `json:"text"`
}

// SearchTextResponse lists matches in file then line order.
type SearchTextResponse struct {
	Matches   []Match `json:"matches"`
	Truncated bool    `json:"truncated"`
	Stderr    string  `json:"stderr,omitempty"`
}
