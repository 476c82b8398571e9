package config

import (
	"fmt"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks config values for life correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Server
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes < 1 {
		errs = append(errs, "server.max_body_bytes must be >= 1")
	}
	if c.Server.ReadHeaderTimeoutMs < 1 {
		errs = append(errs, "server.read_header_timeout_ms must be >= 1")
	}
	if c.Server.ShutdownTimeoutMs < 1 {
		errs = append(errs, "server.shutdown_timeout_ms must be >= 1")
	}

	// Model
	if c.Model.Name == "" {
		errs = append(errs, "model.name must not be empty")
	}
	if c.Model.Temperature != nil && (*c.Model.Temperature < 0 || *c.Model.Temperature > 2) {
		errs = append(errs, "model.temperature must be between 0 and 2")
	}

	// Workflow
	if c.Workflow.MaxSteps < 1 {
		errs = append(errs, "workflow.max_steps must be >= 1")
	}
	if c.Workflow.EventBuffer < 1 {
		errs = append(errs, "workflow.event_buffer must be >= 1")
	}
	if c.Workflow.MaxParallelTools < 1 {
		errs = append(errs, "workflow.max_parallel_tools must be >= 1")
	}

	// Tools
	if c.Tools.ProjectRoot == "" {
		errs = append(errs, "tools.project_root must not be empty")
	}
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.BinaryDetectionSampleSize < 1 {
		errs = append(errs, "tools.binary_detection_sample_size must be >= 1")
	}
	if c.Tools.DefaultCommandTimeoutMs < 1 {
		errs = append(errs, "tools.default_command_timeout_ms must be >= 1")
	}
	if c.Tools.MaxCommandTimeoutMs < 1 {
		errs = append(errs, "tools.max_command_timeout_ms must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.MaxListEntries < 1 {
		errs = append(errs, "tools.max_list_entries must be >= 1")
	}
	if c.Tools.MaxSearchResults < 1 {
		errs = append(errs, "tools.max_search_results must be >= 1")
	}
	if c.Tools.MaxLineLength < 1 {
		errs = append(errs, "tools.max_line_length must be >= 1")
	}
	if len(c.Tools.LintCommand) == 0 || c.Tools.LintCommand[0] == "" {
		errs = append(errs, "tools.lint_command must name a binary")
	}
	if c.Tools.LintTimeoutMs < 1 {
		errs = append(errs, "tools.lint_timeout_ms must be >= 1")
	}
	if c.Tools.WeatherBaseURL == "" {
		errs = append(errs, "tools.weather_base_url must not be empty")
	}
	if c.Tools.WeatherTimeoutMs < 1 {
		errs = append(errs, "tools.weather_timeout_ms must be >= 1")
	}

	// Semantic validation: Default <= Max constraints
	if c.Tools.DefaultCommandTimeoutMs > c.Tools.MaxCommandTimeoutMs {
		errs = append(errs, "tools.default_command_timeout_ms must be <= tools.max_command_timeout_ms")
	}

	// Log
	if !contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Sprintf("log.level must be one of %v", validLogLevels))
	}
	if !contains(validLogFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Sprintf("log.format must be one of %v", validLogFormats))
	}

	// UI
	if c.UI.ServerURL == "" {
		errs = append(errs, "ui.server_url must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
