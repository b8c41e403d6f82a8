package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/draft"
	"github.com/theirongolddev/finplan/internal/profile"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the saved profile with loan and SIP projections",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kv, err := openKV(cfg)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	ctx := context.Background()
	p, found, err := loadDraft(ctx, kv)
	if err != nil {
		return fmt.Errorf("loading draft: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("Financial Profile"))
	fmt.Println()
	if !found {
		fmt.Println("  No saved draft. Run `finplan` to fill in the form.")
		fmt.Println()
		return nil
	}

	if at, ok, err := draft.New(kv).SavedAt(ctx); err == nil && ok {
		fmt.Printf("  Last saved %s\n\n", at.Local().Format("2 Jan 2006 15:04"))
	}
	fmt.Print(cli.RenderProfile(p, profile.SummarizeSIPs(p.SIPs, time.Now())))
	return nil
}
