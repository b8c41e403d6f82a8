// Package config loads and saves the finplan TOML configuration and applies
// deployment environment overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Store backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Environment variables that override the file.
const (
	EnvAPIKey     = "OPENAI_API_KEY"
	EnvRules      = "FINANCIAL_ADVISOR_RULES"
	EnvModel      = "ADVICE_MODEL"
	EnvBaseURL    = "ADVICE_BASE_URL"
	EnvGatewayURL = "FINPLAN_GATEWAY_URL"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config holds all finplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Advice     AdviceConfig     `toml:"advice"`
	Gateway    GatewayConfig    `toml:"gateway"`
	Log        LogConfig        `toml:"log"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig selects where drafts are stored.
type GeneralConfig struct {
	Backend     string `toml:"backend"`
	DBPath      string `toml:"db_path,omitempty"`
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// AdviceConfig holds the completion API settings used by the gateway.
type AdviceConfig struct {
	BaseURL    string `toml:"base_url,omitempty"`
	Model      string `toml:"model,omitempty"`
	APIKey     string `toml:"api_key,omitempty"`
	Rules      string `toml:"rules,omitempty"`
	RulesFile  string `toml:"rules_file,omitempty"`
	Fallback   string `toml:"fallback,omitempty"`
	TimeoutSec int    `toml:"timeout_sec,omitempty"`
}

// GatewayConfig holds the gateway listen settings and the URL clients post to.
type GatewayConfig struct {
	Addr string `toml:"addr"`
	Path string `toml:"path"`
	URL  string `toml:"url,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file,omitempty"`
	Format string `toml:"format"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Backend: BackendSQLite},
		Gateway: GatewayConfig{
			Addr: "127.0.0.1:8787",
			Path: "/.netlify/functions/getAdvice",
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory, home of the draft
// database and the TUI log.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "finplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "finplan")
}

// DBPath returns the SQLite draft database path.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(CacheDir(), "drafts.db")
}

// GatewayURL returns the endpoint clients submit profiles to.
func (c Config) GatewayURL() string {
	if c.Gateway.URL != "" {
		return c.Gateway.URL
	}
	return "http://" + c.Gateway.Addr + c.Gateway.Path
}

// Timeout returns the completion request timeout; zero means none.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Advice.TimeoutSec) * time.Second
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// WithEnv returns cfg with environment overrides applied. The result is
// meant for use, not for saving.
func WithEnv(cfg Config) Config {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.Advice.APIKey, EnvAPIKey)
	override(&cfg.Advice.Rules, EnvRules)
	override(&cfg.Advice.Model, EnvModel)
	override(&cfg.Advice.BaseURL, EnvBaseURL)
	override(&cfg.Gateway.URL, EnvGatewayURL)
	override(&cfg.Log.Level, EnvLogLevel)
	return cfg
}

// GetAPIKey returns the API key from env var or config, in that order.
func GetAPIKey(cfg Config) string {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	return cfg.Advice.APIKey
}

// Rules returns the advisor system instruction: inline rules win over the
// rules file.
func Rules(cfg Config) (string, error) {
	if cfg.Advice.Rules != "" {
		return cfg.Advice.Rules, nil
	}
	if cfg.Advice.RulesFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(cfg.Advice.RulesFile)
	if err != nil {
		return "", fmt.Errorf("reading rules file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var problems []string

	backends := []string{BackendSQLite, BackendPostgres, BackendMemory}
	if !slices.Contains(backends, c.General.Backend) {
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of %v", c.General.Backend, backends))
	}
	if c.General.Backend == BackendPostgres && c.General.PostgresDSN == "" {
		problems = append(problems, "postgres_dsn is required when using the postgres backend")
	}

	if c.Advice.BaseURL != "" {
		if err := checkHTTPURL(c.Advice.BaseURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid advice base_url: %v", err))
		}
	}
	if c.Advice.TimeoutSec < 0 {
		problems = append(problems, fmt.Sprintf("invalid advice timeout_sec %d: must not be negative", c.Advice.TimeoutSec))
	}
	if c.Advice.RulesFile != "" {
		if _, err := os.Stat(c.Advice.RulesFile); err != nil {
			problems = append(problems, fmt.Sprintf("rules file %q: %v", c.Advice.RulesFile, err))
		}
	}

	if c.Gateway.Path != "" && !strings.HasPrefix(c.Gateway.Path, "/") {
		problems = append(problems, fmt.Sprintf("invalid gateway path %q: must start with /", c.Gateway.Path))
	}
	if c.Gateway.URL != "" {
		if err := checkHTTPURL(c.Gateway.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid gateway url: %v", err))
		}
	}

	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
		}
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q must be http or https", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// Exists reports whether a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
