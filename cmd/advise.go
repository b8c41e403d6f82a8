package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/gateway"
	"github.com/theirongolddev/finplan/internal/logging"
	"github.com/theirongolddev/finplan/internal/report"

	"github.com/spf13/cobra"
)

var flagAdviseOut string

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Submit the saved profile and print the advice",
	RunE:  runAdvise,
}

func init() {
	adviseCmd.Flags().StringVarP(&flagAdviseOut, "out", "o", "", "Also write the advice report to this file (.pdf for PDF, otherwise Markdown)")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log, cmd.ErrOrStderr())

	kv, err := openKV(cfg)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, found, err := loadDraft(ctx, kv)
	if err != nil {
		log.WithError(err).Warn("could not load saved draft, submitting the blank form")
	}
	if !found {
		fmt.Println("  No saved draft; submitting the blank form.")
	}

	req, err := newRequester(cfg, log)
	if err != nil {
		return err
	}

	fmt.Println("  Fetching advice...")
	advice, err := gateway.NewSubmitter(req).Submit(ctx, p)
	switch {
	case errors.Is(err, gateway.ErrNoAdvice):
		return errors.New("no advice returned from API")
	case err != nil:
		log.WithError(err).Error("advice request failed")
		return errors.New("error fetching advice")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(report.Title))
	fmt.Println(advice)
	fmt.Println()
	fmt.Printf("  Note: %s\n", report.Note)

	if flagAdviseOut != "" {
		if err := report.Save(flagAdviseOut, advice, time.Now()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("  Report written to %s\n", flagAdviseOut)
	}
	return nil
}
