package shell

import "errors"

// ShellRequest is a command to run through sh from the project root.
type ShellRequest struct {
	Command string `json:"command" jsonschema:"minLength=1" jsonschema_description:"Shell command to execute from the project root"`
	Timeout int    `json:"timeout,omitempty" jsonschema:"default=10000" jsonschema_description:"Timeout in milliseconds"`
}

func (r *ShellRequest) Validate() error {
	if r.Command == "" {
		return errors.New("command cannot be empty")
	}
	return nil
}

// ShellResponse represents the result of a command execution.
// A non-zero exit code is a normal result, not a failure.
type ShellResponse struct {
	Command    string `json:"command"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ExitCode   int    `json:"exit_code"`
	Truncated  bool   `json:"truncated,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}
