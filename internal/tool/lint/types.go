package lint

// LintRequest takes no arguments.
type LintRequest struct{}

// Problem is one ESLint message flattened with its file.
type Problem struct {
	FilePath string `json:"file_path"`
	Rule     string `json:"rule,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// LintResponse carries either the problems found or, when the linter could
// not run or its output could not be read, an error description.
type LintResponse struct {
	Errors  []Problem `json:"errors"`
	Count   int       `json:"count"`
	Stderr  string    `json:"stderr,omitempty"`
	Error   string    `json:"error,omitempty"`
	Details string    `json:"details,omitempty"`
	Raw     string    `json:"raw,omitempty"`
}

// eslintFile mirrors one entry of `eslint --format json`.
type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID   *string `json:"ruleId"`
	Severity int     `json:"severity"`
	Message  string  `json:"message"`
	Line     int     `json:"line"`
	Column   int     `json:"column"`
}
