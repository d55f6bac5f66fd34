// Package commands provides the CLI commands for the stepsight tool.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stepsight/stepsight/internal/config"
	"github.com/stepsight/stepsight/internal/log"
	"github.com/stepsight/stepsight/pkg/graphviz"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "stepsight",
	Short: "stepsight - Execution snapshot rendering for step debuggers",
	Long: `stepsight renders a debugger execution snapshot into two correlated
views: an annotated control-flow graph and the source text with the
currently-executing span highlighted.

Commands:
  render      Render a snapshot file to an HTML page
  serve       Serve rendered snapshots over HTTP
  doctor      Run health checks on configuration and the layout engine
  init        Initialize stepsight configuration interactively

Use "stepsight [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig resolves configuration for a command: an explicit --config
// path wins, otherwise the usual project/env/global chain applies.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// buildEngine constructs the layout engine the config selects.
func buildEngine(cfg *config.Config) (graphviz.Engine, error) {
	switch cfg.Engine {
	case config.EngineBuiltin:
		return graphviz.BuiltinEngine{}, nil
	case config.EngineDot:
		return graphviz.ExecEngine{Path: cfg.DotPath}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

// newLogger builds the command logger, honoring the verbose setting.
func newLogger(cfg *config.Config) log.Logger {
	logger := log.New(log.LoggerConfig{Level: log.InfoLevel, Stderr: os.Stderr})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
