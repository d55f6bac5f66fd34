package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/logrusorgru/aurora/v4"
	"github.com/spf13/cobra"

	"github.com/stepsight/stepsight/internal/config"
	"github.com/stepsight/stepsight/pkg/mir"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on configuration and the layout engine",
	Long: `Checks that the configuration is valid, the selected layout engine is
usable, and the configured snapshot (if any) can be decoded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfigWithPath()
		if err != nil {
			fmt.Printf("%s configuration: %v\n", aurora.Red("✗"), err)
			return fmt.Errorf("health check failed")
		}
		fmt.Printf("%s configuration: %s\n", aurora.Green("✓"), path)

		failed := false

		fmt.Printf("%s theme: %s\n", aurora.Green("✓"), cfg.ResolvedTheme())

		switch cfg.Engine {
		case config.EngineDot:
			if resolved, err := exec.LookPath(cfg.DotPath); err != nil {
				fmt.Printf("%s layout engine: %s not found in PATH\n", aurora.Red("✗"), cfg.DotPath)
				failed = true
			} else {
				fmt.Printf("%s layout engine: %s\n", aurora.Green("✓"), resolved)
			}
		default:
			fmt.Printf("%s layout engine: builtin\n", aurora.Green("✓"))
		}

		if cfg.SnapshotPath == "" {
			fmt.Printf("%s snapshot: none configured\n", aurora.Yellow("-"))
		} else if _, err := mir.LoadFile(cfg.SnapshotPath); err != nil {
			fmt.Printf("%s snapshot: %v\n", aurora.Red("✗"), err)
			failed = true
		} else {
			fmt.Printf("%s snapshot: %s\n", aurora.Green("✓"), cfg.SnapshotPath)
		}

		if failed {
			return fmt.Errorf("health check failed")
		}
		return nil
	},
}

// loadConfigWithPath loads config the way Load does, reporting which
// file was effective.
func loadConfigWithPath() (*config.Config, string, error) {
	projectPath := config.ProjectPath()
	globalPath := config.GlobalPath()

	effective := "defaults"
	if fileExists(globalPath) {
		effective = globalPath
	}
	if fileExists(projectPath) {
		effective = projectPath
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, effective, err
	}
	return cfg, effective, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
