package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stepsight/stepsight/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve <snapshot>",
	Short: "Serve rendered snapshots over HTTP",
	Long: `Starts an HTTP server rendering the snapshot file on every request.
A debugger runtime can overwrite the file between steps; refreshing the
browser shows the new execution state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		snapshotPath := cfg.SnapshotPath
		if len(args) == 1 {
			snapshotPath = args[0]
		}
		if snapshotPath == "" {
			return fmt.Errorf("no snapshot given: pass one as an argument or set snapshot_path in config")
		}

		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}

		engine, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		srv := server.New(cfg, logger, engine, snapshotPath)
		return srv.ListenAndServe(cfg.Listen)
	},
}

func init() {
	serveCmd.Flags().StringP("listen", "l", "", "Listen address (overrides config)")
	serveCmd.Flags().String("config", "", "Config file path")
	RootCmd.AddCommand(serveCmd)
}
