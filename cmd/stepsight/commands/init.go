package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/stepsight/stepsight/internal/config"
	"github.com/stepsight/stepsight/pkg/highlight"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize stepsight configuration interactively",
	Long: `Guides you through setting up stepsight configuration step by step.
Creates a config file with theme, layout engine and server settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	// === SECTION 1: Theme ===
	theme := highlight.ThemeSolarizedDark.String()
	themeOptions := make([]huh.Option[string], 0, len(highlight.ThemeNames()))
	for _, name := range highlight.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Description("Select the syntax highlighting theme for the source pane").
				Options(themeOptions...).
				Value(&theme),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 2: Layout engine ===
	engine := string(config.EngineBuiltin)
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Graph layout engine").
				Description("The builtin engine needs no external tools; dot uses native graphviz").
				Options(
					huh.NewOption("Builtin (in-process graphviz)", string(config.EngineBuiltin)),
					huh.NewOption("Native dot binary", string(config.EngineDot)),
				).
				Value(&engine),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	dotPath := "dot"
	if engine == string(config.EngineDot) {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Path to the dot binary").
					Placeholder("dot").
					Value(&dotPath),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	// === SECTION 3: Server ===
	listen := "127.0.0.1:54321"
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("HTTP listen address for the serve command").
				Placeholder("127.0.0.1:54321").
				Value(&listen),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 4: Config location ===
	var saveLocationChoice string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Save Configuration").
				Description("Where to save the configuration file?").
				Options(
					huh.NewOption(fmt.Sprintf("Global (%s)", config.GlobalPath()), "global"),
					huh.NewOption(fmt.Sprintf("Project (%s)", config.ProjectPath()), "project"),
				).
				Value(&saveLocationChoice),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	configPath := config.ProjectPath()
	if saveLocationChoice == "global" {
		configPath = config.GlobalPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", configPath)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// === Build config struct ===
	cfg := config.DefaultConfig()
	cfg.Theme = theme
	cfg.Engine = config.EngineType(engine)
	cfg.DotPath = dotPath
	cfg.Listen = listen

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fmt.Println("\n=== Configuration Preview ===")
	fmt.Printf("Config path: %s\n", configPath)
	fmt.Printf("Theme: %s\n", cfg.Theme)
	fmt.Printf("Engine: %s\n", cfg.Engine)
	if cfg.Engine == config.EngineDot {
		fmt.Printf("Dot path: %s\n", cfg.DotPath)
	}
	fmt.Printf("Listen: %s\n", cfg.Listen)
	fmt.Println("================================")

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration saved to: %s\n", configPath)
	fmt.Println("Run 'stepsight doctor' to verify the setup.")
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
