package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/config"
	"github.com/vovakirdan/papuso/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the terminal over SSH",
	Long: `Start an SSH server. Every connection boots its own terminal; sound is
off for remote sessions. All sessions share one history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from the config, generated on first start

Examples:
  papuso serve                           # Listen on the configured address
  papuso serve --ssh :2222               # Listen on port 2222
  papuso serve --host-key ./my_host_key  # Use specific host key
  papuso serve --max-sessions 4

Users can connect with:
  ssh localhost -p 2222`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Concurrent session limit (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = firstNonEmpty(flagSSHAddr, e.cfg.Server.SSHAddr, cfg.Address)
	cfg.HostKeyPath = config.ExpandHome(firstNonEmpty(flagHostKey, e.cfg.Server.HostKeyPath))
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.MaxSessions = e.cfg.Server.MaxSessions
	if flagMaxSessions > 0 {
		cfg.MaxSessions = flagMaxSessions
	}
	cfg.App = app.FromConfig(e.cfg)
	cfg.HoldWindow = e.holdWindow()
	cfg.Prevent = e.cfg.Controls.Prevent
	cfg.Games = e.games
	cfg.Source = e.source
	cfg.Recorder = e.recorder()
	cfg.Logger = e.serverLogger("papuso-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting papuso SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.Serve(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
