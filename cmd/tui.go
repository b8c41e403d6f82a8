package cmd

import (
	"fmt"

	"github.com/theirongolddev/finplan/internal/draft"
	"github.com/theirongolddev/finplan/internal/form"
	"github.com/theirongolddev/finplan/internal/gateway"
	"github.com/theirongolddev/finplan/internal/logging"
	"github.com/theirongolddev/finplan/internal/tui"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagReportDir string

var formCmd = &cobra.Command{
	Use:     "form",
	Aliases: []string{"tui"},
	Short:   "Open the interactive planner form",
	RunE:    runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, formCmd} {
		c.Flags().StringVar(&flagReportDir, "report-dir", ".", "Directory advice reports are written to")
	}
	rootCmd.AddCommand(formCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	log, closer, err := logging.NewFile(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	kv, err := openKV(cfg)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	req, err := newRequester(cfg, log)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Store:     form.New(draft.New(kv), form.WithLogger(log)),
		Submitter: gateway.NewSubmitter(req),
		Log:       log,
		ReportDir: flagReportDir,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
