package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the terminal to browsers",
	Long: `Start an HTTP server with the terminal page. Each browser tab boots
its own terminal over a WebSocket; the on-screen pad works on touch screens.

Examples:
  papuso web
  papuso web --addr :9000`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from config)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	addr := firstNonEmpty(flagWebAddr, e.cfg.Server.WebAddr, ":8080")
	server := web.New(web.Config{
		Address:     addr,
		MaxSessions: e.cfg.Server.MaxSessions,
		App:         app.FromConfig(e.cfg),
		Prevent:     e.cfg.Controls.Prevent,
		Games:       e.games,
		Source:      e.source,
		Recorder:    e.recorder(),
		Logger:      e.serverLogger("papuso-web"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, port, err := net.SplitHostPort(addr); err == nil {
		fmt.Printf("Open http://localhost:%s in a browser\n", port)
	}
	return server.ListenAndServe(ctx)
}
