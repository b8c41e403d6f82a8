// Package cmd implements the finplan CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/advice"
	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/draft"
	"github.com/theirongolddev/finplan/internal/gateway"
	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/store"
)

var (
	flagConfig   string
	flagBackend  string
	flagDBPath   string
	flagLogLevel string
	flagDirect   bool
)

var rootCmd = &cobra.Command{
	Use:   "finplan",
	Short: "Personal finance planner with AI advice",
	Long:  "Fill in your financial profile, track SIP projections and get AI-assisted advice.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		_ = godotenv.Load()
	},
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.ConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Draft store backend: sqlite, postgres or memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite draft database path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagDirect, "direct", false, "Call the completion API directly instead of the gateway")
}

// loadConfig reads the config file, applies environment and flag overrides,
// and validates the result.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFrom(flagConfig)
	if err != nil {
		return cfg, err
	}
	cfg = config.WithEnv(cfg)

	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if flagDBPath != "" {
		cfg.General.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openKV opens the configured draft backend.
func openKV(cfg config.Config) (store.KV, error) {
	switch cfg.General.Backend {
	case config.BackendPostgres:
		return store.OpenPostgres(cfg.General.PostgresDSN)
	case config.BackendMemory:
		return store.NewMemory(), nil
	default:
		return store.Open(cfg.DBPath())
	}
}

// loadDraft returns the saved profile, or the blank template when none is
// stored.
func loadDraft(ctx context.Context, kv store.KV) (profile.Profile, bool, error) {
	p, ok, err := draft.New(kv).Load(ctx)
	if err != nil {
		return profile.Blank(), false, err
	}
	if !ok {
		return profile.Blank(), false, nil
	}
	return p, true, nil
}

// newAdviceClient builds the completion API client from cfg.
func newAdviceClient(cfg config.Config) (*advice.Client, error) {
	rules, err := config.Rules(cfg)
	if err != nil {
		return nil, err
	}
	return advice.NewClient(advice.Options{
		BaseURL:  cfg.Advice.BaseURL,
		APIKey:   cfg.Advice.APIKey,
		Model:    cfg.Advice.Model,
		Rules:    rules,
		Fallback: cfg.Advice.Fallback,
		Timeout:  cfg.Timeout(),
	}), nil
}

// directRequester asks the completion API in-process, skipping the gateway.
type directRequester struct {
	client *advice.Client
}

func (d directRequester) RequestAdvice(ctx context.Context, p profile.Profile) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding profile: %w", err)
	}
	return d.client.Advise(ctx, body)
}

// newRequester returns the advice source selected by --direct.
func newRequester(cfg config.Config, log logrus.FieldLogger) (gateway.Requester, error) {
	if !flagDirect {
		log.WithField("url", cfg.GatewayURL()).Debug("submitting through gateway")
		return gateway.NewClient(cfg.GatewayURL(), nil), nil
	}
	client, err := newAdviceClient(cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("model", client.Model()).Debug("submitting directly to completion API")
	return directRequester{client: client}, nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
