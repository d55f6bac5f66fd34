package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stepsight/stepsight/internal/server"
	"github.com/stepsight/stepsight/pkg/graphviz"
	"github.com/stepsight/stepsight/pkg/highlight"
	"github.com/stepsight/stepsight/pkg/mir"
	"github.com/stepsight/stepsight/pkg/source"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <snapshot>",
	Short: "Render a snapshot file to an HTML page",
	Long: `Loads a msgpack execution snapshot, renders the control-flow graph
pane and the highlighted source pane, and writes the composed HTML
document to stdout or to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath := args[0]

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger := newLogger(cfg)

		engine, err := buildEngine(cfg)
		if err != nil {
			return err
		}

		snap, err := mir.LoadFile(snapshotPath)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}

		frame := snap.Frame()
		if frame == nil {
			return fmt.Errorf("snapshot %s carries no frame to render", snapshotPath)
		}

		graph, err := graphviz.RenderHTML(frame, snap.BreakpointSet(), engine)
		if err != nil {
			return err
		}

		var aliases []source.PathAlias
		for prefix, alias := range cfg.PathAliases {
			aliases = append(aliases, source.PathAlias{Prefix: prefix, Alias: alias})
		}
		theme := cfg.ResolvedTheme()
		cache := highlight.NewCache()
		sources, err := source.Render(frame, source.NewSnapshotResolver(snap, aliases), cache, theme.Style())
		if err != nil {
			return err
		}
		logger.Debug("panes rendered", "chain", len(sources), "highlighted_files", cache.Computes())

		page, err := server.ComposePage(frame.Body.Name, graph, sources, theme)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			fmt.Println(page)
			return nil
		}
		if err := os.WriteFile(outPath, []byte(page), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		logger.Info("page written", "path", outPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().String("config", "", "Config file path")
	RootCmd.AddCommand(renderCmd)
}
