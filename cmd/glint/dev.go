package main

import (
	"context"
	"fmt"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glint-dev/glint/internal/config"
	"github.com/glint-dev/glint/internal/dev"
)

func devCmd(verbose *bool) *cobra.Command {
	var (
		port        int
		host        string
		openBrowser bool
		noReload    bool
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server with live reload.

The dev server serves the project's static directory with an SPA
fallback, watches for file changes, and automatically refreshes
connected browsers. CSS changes are swapped in place without a
full reload.

Examples:
  glint dev
  glint dev --port=8080
  glint dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(*verbose, port, host, openBrowser, !noReload)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from glint.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from glint.json)")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable live reload")

	return cmd
}

func runDev(verbose bool, port int, host string, openBrowser, liveReload bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	server := dev.NewServer(cfg, newLogger(verbose), dev.WithLiveReload(liveReload && cfg.Dev.Reload))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info("Serving %s", cfg.Static.Dir)
	success("Listening on %s", cfg.DevURL())
	fmt.Println()

	if openBrowser {
		go openURL(cfg.DevURL())
	}

	return server.Start(ctx)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
