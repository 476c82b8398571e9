// Package adapter binds each tool executor to the name and description the
// model sees.
package adapter

import (
	"github.com/Cyclone1070/agentgate/internal/tool"
	"github.com/Cyclone1070/agentgate/internal/tool/clock"
	"github.com/Cyclone1070/agentgate/internal/tool/directory"
	"github.com/Cyclone1070/agentgate/internal/tool/file"
	"github.com/Cyclone1070/agentgate/internal/tool/lint"
	"github.com/Cyclone1070/agentgate/internal/tool/search"
	"github.com/Cyclone1070/agentgate/internal/tool/shell"
	"github.com/Cyclone1070/agentgate/internal/tool/weather"
	"github.com/Cyclone1070/agentgate/internal/workflow/toolmanager"
)

// Model-facing tool names.
const (
	ClockName     = "get_current_datetime"
	WeatherName   = "get_current_weather"
	ShellName     = "run_terminal_command"
	ListFilesName = "list_project_files"
	ReadFileName  = "read_file"
	LintName      = "find_lint_errors"
	SearchName    = "search_text"
)

// NewClock creates the get_current_datetime adapter.
func NewClock(t *clock.ClockTool) (toolmanager.Tool, error) {
	return bind(tool.New(ClockName,
		"Returns the current local time and date. Use this tool when the user asks for the current time or date. "+
			"Optionally pass 'format' as a BCP 47 language tag (e.g. 'en-US', 'fr-FR') to localise the output; 'en-US' is used by default.",
		t.Run))
}

// NewWeather creates the get_current_weather adapter.
func NewWeather(t *weather.WeatherTool) (toolmanager.Tool, error) {
	return bind(tool.New(WeatherName,
		"Returns the current weather for a location: temperature, condition, humidity and wind. "+
			"Always pass 'location' as a city name, postcode or 'lat,lon' (e.g. 'London', '90210', '48.8566,2.3522'). "+
			"If the user does not name a location, ask them for one.",
		t.Run))
}

// NewShell creates the run_terminal_command adapter.
func NewShell(t *shell.ShellTool) (toolmanager.Tool, error) {
	return bind(tool.New(ShellName,
		"Runs a shell command from the project root and returns its stdout, stderr and exit code. Use with caution. "+
			"Optionally pass 'timeout' in milliseconds (default 10000).",
		t.Run))
}

// NewListProjectFiles creates the list_project_files adapter.
func NewListProjectFiles(t *directory.ListProjectFilesTool) (toolmanager.Tool, error) {
	return bind(tool.New(ListFilesName,
		"Recursively lists every file and directory in the project, skipping node_modules and gitignored paths. "+
			"Use it to find the full path of a file when the user gives only a name or partial path, then pass that path to read_file.",
		t.Run))
}

// NewReadFile creates the read_file adapter.
func NewReadFile(t *file.ReadFileTool) (toolmanager.Tool, error) {
	return bind(tool.New(ReadFileName,
		"Reads and returns the content of a file in the project. Accepts either 'filePath' or 'path', relative to the project root.",
		t.Run))
}

// NewLint creates the find_lint_errors adapter.
func NewLint(t *lint.LintTool) (toolmanager.Tool, error) {
	return bind(tool.New(LintName,
		"Runs ESLint over the project and returns the reported errors and warnings with file, line and rule.",
		t.Run))
}

// NewSearch creates the search_text adapter.
func NewSearch(t *search.SearchTextTool) (toolmanager.Tool, error) {
	return bind(tool.New(SearchName,
		"Searches every project file (skipping node_modules and gitignored paths) for an exact text string "+
			"and returns the matching file paths, line numbers and lines.",
		t.Run))
}

// bind keeps a failed tool.New from becoming a non-nil Tool holding a nil pointer.
func bind[Req, Resp any](t *tool.Typed[Req, Resp], err error) (toolmanager.Tool, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
