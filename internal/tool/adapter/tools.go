package adapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/clock"
	"github.com/Cyclone1070/agentgate/internal/tool/directory"
	"github.com/Cyclone1070/agentgate/internal/tool/file"
	"github.com/Cyclone1070/agentgate/internal/tool/lint"
	"github.com/Cyclone1070/agentgate/internal/tool/search"
	"github.com/Cyclone1070/agentgate/internal/tool/service/executor"
	"github.com/Cyclone1070/agentgate/internal/tool/service/fs"
	"github.com/Cyclone1070/agentgate/internal/tool/service/git"
	"github.com/Cyclone1070/agentgate/internal/tool/service/path"
	"github.com/Cyclone1070/agentgate/internal/tool/shell"
	"github.com/Cyclone1070/agentgate/internal/tool/weather"
	"github.com/Cyclone1070/agentgate/internal/workflow/toolmanager"
)

// Dependencies are the external inputs the tool set needs.
type Dependencies struct {
	Config *config.Config

	// WeatherAPIKey may be empty; the weather tool then reports a
	// configuration error on every call.
	WeatherAPIKey string

	// Optional overrides, mostly for tests.
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewAll canonicalises the project root and builds every tool scoped to it.
func NewAll(deps Dependencies) ([]toolmanager.Tool, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	root, err := path.CanonicaliseRoot(cfg.Tools.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalise project root: %w", err)
	}

	osFS := fs.NewOSFileSystem()
	resolver := path.NewResolver(root)
	commandExecutor := executor.NewOSCommandExecutor(cfg)
	loadIgnore := git.Loader(root, osFS)

	var httpClient *http.Client
	if deps.HTTPClient != nil {
		httpClient = deps.HTTPClient
	} else {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Tools.WeatherTimeoutMs) * time.Millisecond}
	}

	builders := []func() (toolmanager.Tool, error){
		func() (toolmanager.Tool, error) { return NewClock(clock.NewClockTool(deps.Now)) },
		func() (toolmanager.Tool, error) {
			return NewWeather(weather.NewWeatherTool(httpClient, cfg, deps.WeatherAPIKey))
		},
		func() (toolmanager.Tool, error) { return NewShell(shell.NewShellTool(commandExecutor, cfg, root)) },
		func() (toolmanager.Tool, error) {
			return NewListProjectFiles(directory.NewListProjectFilesTool(osFS, loadIgnore, cfg, root))
		},
		func() (toolmanager.Tool, error) { return NewReadFile(file.NewReadFileTool(osFS, resolver, cfg)) },
		func() (toolmanager.Tool, error) { return NewLint(lint.NewLintTool(commandExecutor, cfg, root)) },
		func() (toolmanager.Tool, error) {
			return NewSearch(search.NewSearchTextTool(commandExecutor, loadIgnore, cfg, root))
		},
	}

	tools := make([]toolmanager.Tool, 0, len(builders))
	for _, build := range builders {
		t, err := build()
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}
