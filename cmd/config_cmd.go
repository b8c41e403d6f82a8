package cmd

import (
	"fmt"

	"github.com/theirongolddev/finplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", flagConfig)
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Backend:  %s\n", cfg.General.Backend)
	switch cfg.General.Backend {
	case config.BackendSQLite:
		fmt.Printf("    Database: %s\n", cfg.DBPath())
	case config.BackendPostgres:
		fmt.Println("    DSN:      configured")
	}
	fmt.Println()

	fmt.Println("  [Advice]")
	if key := config.GetAPIKey(cfg); key != "" {
		fmt.Printf("    API key:  %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key:  not configured")
	}
	fmt.Printf("    Base URL: %s\n", orDefault(cfg.Advice.BaseURL, "(default)"))
	fmt.Printf("    Model:    %s\n", orDefault(cfg.Advice.Model, "(default)"))
	switch {
	case cfg.Advice.Rules != "":
		fmt.Println("    Rules:    inline")
	case cfg.Advice.RulesFile != "":
		fmt.Printf("    Rules:    %s\n", cfg.Advice.RulesFile)
	default:
		fmt.Println("    Rules:    not set")
	}
	if t := cfg.Timeout(); t > 0 {
		fmt.Printf("    Timeout:  %s\n", t)
	} else {
		fmt.Println("    Timeout:  none")
	}
	fmt.Println()

	fmt.Println("  [Gateway]")
	fmt.Printf("    Listen:   %s%s\n", cfg.Gateway.Addr, cfg.Gateway.Path)
	fmt.Printf("    Client:   %s\n", cfg.GatewayURL())
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:    %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `finplan setup` to reconfigure.")
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
