// Package main is a terminal chat client for a running agentgate server.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/ui"
	"github.com/Cyclone1070/agentgate/internal/ui/client"
	"github.com/Cyclone1070/agentgate/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	serverURL  string
	style      string
}

// starter runs a UI until the user quits.
type starter interface {
	Start() error
}

// newUI is replaced in tests.
var newUI = func(cfg *config.Config) starter {
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(
		cfg,
		client.New(cfg.UI.ServerURL, nil),
		services.NewGlamourRenderer(cfg.UI.GlamourStyle),
		spinnerFactory,
	)
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "agentgate-chat",
		Short:         "Chat with an agentgate server from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return newUI(cfg).Start()
		},
	}
	root.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (JSON or YAML); default ~/.config/agentgate/config.json")
	root.Flags().StringVarP(&opts.serverURL, "server", "s", "", "gateway URL, e.g. http://localhost:3000")
	root.Flags().StringVar(&opts.style, "style", "", "glamour style: dark, light, notty")
	return root
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.serverURL != "" {
		cfg.UI.ServerURL = opts.serverURL
	}
	if opts.style != "" {
		cfg.UI.GlamourStyle = opts.style
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runApp(args []string, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(runApp(os.Args[1:], os.Stderr))
}
