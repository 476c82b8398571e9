package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via a JSON or YAML file.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Model    ModelConfig    `json:"model" yaml:"model"`
	Workflow WorkflowConfig `json:"workflow" yaml:"workflow"`
	Tools    ToolsConfig    `json:"tools" yaml:"tools"`
	Log      LogConfig      `json:"log" yaml:"log"`
	UI       UIConfig       `json:"ui" yaml:"ui"`
}

type ServerConfig struct {
	Addr                string `json:"addr" yaml:"addr"`                                     // Default: ":3000"
	MaxBodyBytes        int64  `json:"max_body_bytes" yaml:"max_body_bytes"`                 // Default: 1MB
	ReadHeaderTimeoutMs int    `json:"read_header_timeout_ms" yaml:"read_header_timeout_ms"` // Default: 10000
	ShutdownTimeoutMs   int    `json:"shutdown_timeout_ms" yaml:"shutdown_timeout_ms"`       // Default: 10000
}

type ModelConfig struct {
	Name              string   `json:"name" yaml:"name"` // Default: "gemini-2.5-flash"
	SystemInstruction string   `json:"system_instruction" yaml:"system_instruction"`
	Temperature       *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

type WorkflowConfig struct {
	MaxSteps         int `json:"max_steps" yaml:"max_steps"`                   // Default: 5
	EventBuffer      int `json:"event_buffer" yaml:"event_buffer"`             // Default: 32
	MaxParallelTools int `json:"max_parallel_tools" yaml:"max_parallel_tools"` // Default: 4
}

type ToolsConfig struct {
	// Filesystem scope
	ProjectRoot  string   `json:"project_root" yaml:"project_root"`   // Default: "."
	ExcludedDirs []string `json:"excluded_dirs" yaml:"excluded_dirs"` // Default: node_modules, .git

	// File Operations
	MaxFileSize               int64 `json:"max_file_size" yaml:"max_file_size"`                               // Default: 5MB
	BinaryDetectionSampleSize int   `json:"binary_detection_sample_size" yaml:"binary_detection_sample_size"` // Default: 4096

	// Command Execution
	DefaultCommandTimeoutMs int      `json:"default_command_timeout_ms" yaml:"default_command_timeout_ms"` // Default: 10000
	MaxCommandTimeoutMs     int      `json:"max_command_timeout_ms" yaml:"max_command_timeout_ms"`         // Default: 120000
	GracefulShutdownMs      int      `json:"graceful_shutdown_ms" yaml:"graceful_shutdown_ms"`             // Default: 2000
	MaxCommandOutputSize    int64    `json:"max_command_output_size" yaml:"max_command_output_size"`       // Default: 10MB
	CommandAllowlist        []string `json:"command_allowlist" yaml:"command_allowlist"`                   // Empty: everything not denied
	CommandDenylist         []string `json:"command_denylist" yaml:"command_denylist"`

	// Listing & Search
	MaxListEntries   int `json:"max_list_entries" yaml:"max_list_entries"`     // Default: 5000
	MaxSearchResults int `json:"max_search_results" yaml:"max_search_results"` // Default: 500
	MaxLineLength    int `json:"max_line_length" yaml:"max_line_length"`       // Default: 1000

	// Lint
	LintCommand   []string `json:"lint_command" yaml:"lint_command"`       // Default: npx eslint . --format json
	LintTimeoutMs int      `json:"lint_timeout_ms" yaml:"lint_timeout_ms"` // Default: 60000

	// Weather
	WeatherBaseURL   string `json:"weather_base_url" yaml:"weather_base_url"`     // Default: http://api.weatherapi.com/v1
	WeatherTimeoutMs int    `json:"weather_timeout_ms" yaml:"weather_timeout_ms"` // Default: 10000
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text, json
}

type UIConfig struct {
	ServerURL    string `json:"server_url" yaml:"server_url"` // Default: http://localhost:3000
	ColorPrimary string `json:"color_primary" yaml:"color_primary"`
	ColorMuted   string `json:"color_muted" yaml:"color_muted"`
	ColorError   string `json:"color_error" yaml:"color_error"`
	GlamourStyle string `json:"glamour_style" yaml:"glamour_style"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":3000",
			MaxBodyBytes:        1 << 20,
			ReadHeaderTimeoutMs: 10000,
			ShutdownTimeoutMs:   10000,
		},
		Model: ModelConfig{
			Name: "gemini-2.5-flash",
		},
		Workflow: WorkflowConfig{
			MaxSteps:         5,
			EventBuffer:      32,
			MaxParallelTools: 4,
		},
		Tools: ToolsConfig{
			ProjectRoot:               ".",
			ExcludedDirs:              []string{"node_modules", ".git"},
			MaxFileSize:               5 * 1024 * 1024,
			BinaryDetectionSampleSize: 4096,
			DefaultCommandTimeoutMs:   10000,
			MaxCommandTimeoutMs:       120000,
			GracefulShutdownMs:        2000,
			MaxCommandOutputSize:      10 * 1024 * 1024,
			CommandAllowlist:          []string{},
			CommandDenylist:           []string{"sudo", "su", "shutdown", "reboot", "mkfs", "dd"},
			MaxListEntries:            5000,
			MaxSearchResults:          500,
			MaxLineLength:             1000,
			LintCommand:               []string{"npx", "eslint", ".", "--format", "json"},
			LintTimeoutMs:             60000,
			WeatherBaseURL:            "http://api.weatherapi.com/v1",
			WeatherTimeoutMs:          10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			ServerURL:    "http://localhost:3000",
			ColorPrimary: "63",
			ColorMuted:   "241",
			ColorError:   "196",
			GlamourStyle: "dark",
		},
	}
}
