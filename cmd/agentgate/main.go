// Package main runs the agentgate HTTP gateway: prompts come in over HTTP,
// Gemini answers with help from the project tools, and the reply streams back.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/gateway"
	"github.com/Cyclone1070/agentgate/internal/logging"
	"github.com/Cyclone1070/agentgate/internal/provider/gemini"
	"github.com/Cyclone1070/agentgate/internal/tool/adapter"
	"github.com/Cyclone1070/agentgate/internal/tool/weather"
	"github.com/Cyclone1070/agentgate/internal/workflow/loop"
	"github.com/Cyclone1070/agentgate/internal/workflow/toolmanager"
	"github.com/spf13/cobra"
)

// version is set at build time:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/agentgate
var version = "dev"

// options are the command-line overrides applied on top of the config file.
type options struct {
	configPath string
	addr       string
	root       string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "agentgate",
		Short:         "Agentic inference gateway",
		Long:          "agentgate serves POST /generate: the prompt goes to Gemini, which may call project tools before its answer is streamed back.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (JSON or YAML); default ~/.config/agentgate/config.json")
	root.PersistentFlags().StringVar(&opts.root, "root", "", "project root the file tools are confined to")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text, json")
	root.Flags().StringVar(&opts.addr, "addr", "", "listen address, e.g. :3000")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	serveCmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, e.g. :3000")

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations sent to the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTools(cmd, opts)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and build metadata",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agentgate %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}

	root.AddCommand(serveCmd, toolsCmd, versionCmd)
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.root != "" {
		cfg.Tools.ProjectRoot = opts.root
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, opts *options) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newToolManager(cfg *config.Config, logger *slog.Logger) (*toolmanager.ToolManager, error) {
	weatherKey := os.Getenv(weather.APIKeyEnv)
	if weatherKey == "" {
		logger.Warn("weather tool disabled", "missing_env", weather.APIKeyEnv)
	}
	tools, err := adapter.NewAll(adapter.Dependencies{
		Config:        cfg,
		WeatherAPIKey: weatherKey,
	})
	if err != nil {
		return nil, err
	}
	return toolmanager.NewToolManager(logger, tools, toolmanager.WithParallelism(cfg.Workflow.MaxParallelTools))
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	apiKey, err := gemini.APIKeyFromEnv()
	if err != nil {
		return fmt.Errorf("%w: set one of %v", err, gemini.APIKeyEnvVars)
	}
	client, err := gemini.NewClient(ctx, apiKey, nil)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := gemini.New(client, cfg.Model)

	manager, err := newToolManager(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise tools: %w", err)
	}

	orchestrator := loop.NewLoop(model, manager, cfg, loop.WithLogger(logger))
	server := gateway.NewServer(cfg, orchestrator, logger)

	logger.Info("starting agentgate",
		"version", version,
		"model", model.Model(),
		"project_root", cfg.Tools.ProjectRoot,
		"tools", manager.Names())
	return server.Run(ctx)
}

func runTools(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	manager, err := newToolManager(cfg, logger)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), manager.Declarations())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runApp executes the command tree and returns the process exit code.
func runApp(ctx context.Context, args []string, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runApp(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
