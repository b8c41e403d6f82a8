package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/gateway"
	"github.com/theirongolddev/finplan/internal/logging"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr      string
	flagServeDetach    bool
	flagServeStateFile string
	flagServeLogFile   string
	flagServeChild     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the advice gateway HTTP service",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show gateway process and health status",
	RunE:  runServeStatus,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running gateway",
	RunE:  runServeStop,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServeStateFile, "state-file",
		filepath.Join(config.CacheDir(), "finplan-gateway.json"), "Gateway state file (pid, address, endpoint)")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file",
		filepath.Join(config.CacheDir(), "finplan-gateway.log"), "Log file path for detached mode")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run the gateway as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd, serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

// gatewayState is written by a running gateway so status and stop can find
// it without repeating its flags.
type gatewayState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	Path      string    `json:"path"`
	StartedAt time.Time `json:"started_at"`
}

func (st gatewayState) endpoint() string { return "http://" + st.Addr + st.Path }

func (st gatewayState) healthURL() string { return "http://" + st.Addr + "/healthz" }

// alive reports whether the recorded process still exists.
func (st gatewayState) alive() bool {
	if st.PID <= 0 {
		return false
	}
	proc, err := os.FindProcess(st.PID)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func readGatewayState(path string) (gatewayState, error) {
	var st gatewayState
	data, err := os.ReadFile(path) //nolint:gosec // state path is configured by the local user
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parsing gateway state %s: %w", path, err)
	}
	if st.PID <= 0 {
		return st, fmt.Errorf("gateway state %s has no pid", path)
	}
	return st, nil
}

func writeGatewayState(path string, st gatewayState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create gateway state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// claimStateFile fails when a live gateway owns path and clears a stale one.
func claimStateFile(path string) error {
	st, err := readGatewayState(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err == nil && st.alive():
		return fmt.Errorf("gateway already running (pid %d) at %s", st.PID, st.endpoint())
	}
	_ = os.Remove(path)
	return nil
}

// checkHealth reports whether the gateway answers /healthz with 200.
func checkHealth(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// waitFor polls cond every interval until it returns true or timeout passes.
func waitFor(timeout, interval time.Duration, cond func() bool) bool {
	deadline := time.After(timeout)
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		if cond() {
			return true
		}
		select {
		case <-deadline:
			return cond()
		case <-tick.C:
		}
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeDetach && flagServeChild {
		return errors.New("invalid gateway launch mode")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagServeAddr != "" {
		cfg.Gateway.Addr = flagServeAddr
	}
	if err := claimStateFile(flagServeStateFile); err != nil {
		return err
	}

	if flagServeDetach {
		return startServeDetached(cfg)
	}
	return runServeForeground(cfg)
}

// childArgs rebuilds the command line for the detached gateway from the
// resolved settings rather than the parent's raw arguments.
func childArgs(cfg config.Config) []string {
	args := []string{
		"serve", "--child",
		"--config", flagConfig,
		"--addr", cfg.Gateway.Addr,
		"--state-file", flagServeStateFile,
	}
	if flagBackend != "" {
		args = append(args, "--backend", flagBackend)
	}
	if flagLogLevel != "" {
		args = append(args, "--log-level", flagLogLevel)
	}
	return args
}

func startServeDetached(cfg config.Config) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagServeLogFile), 0o750); err != nil {
		return fmt.Errorf("create gateway log directory: %w", err)
	}
	logf, err := os.OpenFile(flagServeLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // log path is configured by the local user
	if err != nil {
		return fmt.Errorf("open gateway log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, childArgs(cfg)...) //nolint:gosec // re-executes this binary
	child.Stdout, child.Stderr = logf, logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached gateway: %w", err)
	}

	want := gatewayState{PID: child.Process.Pid, Addr: cfg.Gateway.Addr, Path: cfg.Gateway.Path}
	exited := make(chan struct{})
	go func() {
		_ = child.Wait()
		close(exited)
	}()

	healthy := waitFor(5*time.Second, 100*time.Millisecond, func() bool {
		select {
		case <-exited:
			return false
		default:
		}
		return checkHealth(context.Background(), want.healthURL()) == nil
	})
	if !healthy {
		return fmt.Errorf("gateway (pid %d) did not become healthy; see %s", want.PID, flagServeLogFile)
	}

	fmt.Printf("  Started gateway (pid %d)\n", want.PID)
	fmt.Printf("  Endpoint: %s\n", want.endpoint())
	fmt.Printf("  Log: %s\n", flagServeLogFile)
	return nil
}

func runServeForeground(cfg config.Config) error {
	log := logging.New(cfg.Log, os.Stderr)

	advisor, err := newAdviceClient(cfg)
	if err != nil {
		return err
	}
	if cfg.Advice.APIKey == "" {
		log.Warnf("no API key configured; set %s or run `finplan setup`", config.EnvAPIKey)
	}

	srv := gateway.NewServer(gateway.Config{Addr: cfg.Gateway.Addr, Path: cfg.Gateway.Path}, advisor, log)

	st := gatewayState{PID: os.Getpid(), Addr: srv.Addr(), Path: srv.Path(), StartedAt: time.Now()}
	if err := writeGatewayState(flagServeStateFile, st); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagServeStateFile) }()

	log.WithFields(map[string]any{
		"endpoint":   st.endpoint(),
		"model":      advisor.Model(),
		"state_file": flagServeStateFile,
	}).Info("advice gateway listening")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("advice gateway stopped")
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	st, err := readGatewayState(flagServeStateFile)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Println("  Gateway: not running")
		return nil
	}
	if err != nil {
		return err
	}
	if !st.alive() {
		fmt.Printf("  Gateway: stale state file (pid %d not alive)\n", st.PID)
		return nil
	}

	fmt.Printf("  Gateway PID: %d\n", st.PID)
	fmt.Printf("  Endpoint:    %s\n", st.endpoint())
	fmt.Printf("  Up since:    %s\n", st.StartedAt.Local().Format(time.RFC3339))
	if err := checkHealth(cmd.Context(), st.healthURL()); err != nil {
		fmt.Printf("  Health:      unreachable (%v)\n", err)
		return nil
	}
	fmt.Println("  Health:      ok")
	return nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	st, err := readGatewayState(flagServeStateFile)
	if err != nil || !st.alive() {
		_ = os.Remove(flagServeStateFile)
		return errors.New("gateway is not running")
	}

	proc, err := os.FindProcess(st.PID)
	if err != nil {
		return fmt.Errorf("find gateway process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal gateway process: %w", err)
	}

	if !waitFor(8*time.Second, 150*time.Millisecond, func() bool { return !st.alive() }) {
		return fmt.Errorf("gateway (pid %d) did not exit in time", st.PID)
	}
	_ = os.Remove(flagServeStateFile)
	fmt.Printf("  Stopped gateway (pid %d) at %s\n", st.PID, st.endpoint())
	return nil
}
