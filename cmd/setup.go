package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finplan/internal/advice"
	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.LoadFrom(flagConfig)

	apiKey := ""
	model := cfg.Advice.Model
	if model == "" {
		model = advice.DefaultModel
	}
	addr := cfg.Gateway.Addr
	backend := cfg.General.Backend
	dsn := cfg.General.PostgresDSN
	themeName := cfg.Appearance.Theme

	keyDesc := "Used by the advice gateway. Leave blank to keep the current value."
	if existing := config.GetAPIKey(cfg); existing != "" {
		keyDesc = fmt.Sprintf("Current: %s. Leave blank to keep it.", maskAPIKey(existing))
	}

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Completion API key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Model").
				Value(&model),
			huh.NewInput().
				Title("Gateway listen address").
				Value(&addr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Draft storage").
				Options(
					huh.NewOption("SQLite file", config.BackendSQLite),
					huh.NewOption("PostgreSQL", config.BackendPostgres),
					huh.NewOption("Memory (nothing saved)", config.BackendMemory),
				).
				Value(&backend),
			huh.NewInput().
				Title("PostgreSQL DSN").
				Description("Only used with the PostgreSQL backend.").
				Value(&dsn),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&themeName),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	if k := strings.TrimSpace(apiKey); k != "" {
		cfg.Advice.APIKey = k
	}
	cfg.Advice.Model = strings.TrimSpace(model)
	cfg.Gateway.Addr = strings.TrimSpace(addr)
	cfg.General.Backend = backend
	cfg.General.PostgresDSN = strings.TrimSpace(dsn)
	cfg.Appearance.Theme = themeName

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTo(flagConfig, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", flagConfig)
	fmt.Println("  Run `finplan setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
