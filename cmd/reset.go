package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finplan/internal/draft"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved draft",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !flagResetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset form & clear saved data?").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	kv, err := openKV(cfg)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	if err := draft.New(kv).Clear(context.Background()); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	fmt.Println("  Saved draft cleared.")
	return nil
}
