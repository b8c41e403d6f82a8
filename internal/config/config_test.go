package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Backend != BackendSQLite {
		t.Fatalf("backend = %q, want sqlite", cfg.General.Backend)
	}
	if cfg.GatewayURL() != "http://127.0.0.1:8787/.netlify/functions/getAdvice" {
		t.Fatalf("GatewayURL() = %q", cfg.GatewayURL())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Advice.Model = "some/model"
	cfg.Advice.TimeoutSec = 30
	cfg.General.Backend = BackendMemory
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
	if got.Timeout() != 30*time.Second {
		t.Fatalf("Timeout() = %v", got.Timeout())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[advice]\nmodel = \"x\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Advice.Model != "x" || cfg.Gateway.Addr != "127.0.0.1:8787" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[advice\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvRules, "env rules")
	t.Setenv(EnvGatewayURL, "http://example.test/advice")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	cfg.Advice.APIKey = "file-key"
	got := WithEnv(cfg)

	if got.Advice.APIKey != "env-key" || got.Advice.Rules != "env rules" {
		t.Fatalf("advice overrides not applied: %+v", got.Advice)
	}
	if got.GatewayURL() != "http://example.test/advice" {
		t.Fatalf("GatewayURL() = %q", got.GatewayURL())
	}
	if got.Log.Level != "debug" {
		t.Fatalf("log level = %q", got.Log.Level)
	}
	if cfg.Advice.APIKey != "file-key" {
		t.Fatal("WithEnv must not modify its argument")
	}
	if GetAPIKey(cfg) != "env-key" {
		t.Fatalf("GetAPIKey = %q", GetAPIKey(cfg))
	}
}

func TestRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.md")
	if err := os.WriteFile(path, []byte("  from file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Advice.RulesFile = path
	if got, err := Rules(cfg); err != nil || got != "from file" {
		t.Fatalf("Rules() = %q, %v", got, err)
	}

	cfg.Advice.Rules = "inline"
	if got, _ := Rules(cfg); got != "inline" {
		t.Fatalf("Rules() = %q, want inline", got)
	}

	cfg = DefaultConfig()
	cfg.Advice.RulesFile = filepath.Join(t.TempDir(), "missing")
	if _, err := Rules(cfg); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Backend = BackendPostgres
	cfg.Advice.BaseURL = "ftp://nowhere"
	cfg.Advice.TimeoutSec = -1
	cfg.Gateway.Path = "advice"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"postgres_dsn", "base_url", "timeout_sec", "gateway path", "log level", "log format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	cfg = DefaultConfig()
	cfg.General.Backend = "redis"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "store backend") {
		t.Fatalf("Validate() = %v, want backend error", err)
	}
}

func TestDBPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	cfg := DefaultConfig()
	if got := cfg.DBPath(); got != filepath.Join("/tmp/xdg-cache", "finplan", "drafts.db") {
		t.Fatalf("DBPath() = %q", got)
	}
	cfg.General.DBPath = "/data/d.db"
	if cfg.DBPath() != "/data/d.db" {
		t.Fatalf("DBPath() = %q", cfg.DBPath())
	}
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if Exists(path) {
		t.Fatal("Exists reported a missing file")
	}
	if err := SaveTo(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if !Exists(path) {
		t.Fatal("Exists missed a saved config")
	}
}
