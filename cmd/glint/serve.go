package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glint-dev/glint/internal/config"
	"github.com/glint-dev/glint/internal/dev"
	"github.com/glint-dev/glint/internal/errors"
)

func serveCmd(verbose *bool) *cobra.Command {
	var (
		port int
		host string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the production build",
		Long: `Serve the build output directory without live reload.

This is a local preview of what a static host would serve: the
build output with an SPA fallback to index.html and no injected
reload client.

Examples:
  glint serve
  glint serve --port=8080
  glint serve --dir=dist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*verbose, port, host, dir)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from glint.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from glint.json)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to serve (default is the build output)")

	return cmd
}

func runServe(verbose bool, port int, host, dir string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if dir == "" {
		dir = cfg.Build.Output
	}
	cfg.Static.Dir = dir

	if _, err := os.Stat(cfg.StaticDir()); err != nil {
		return errors.New("E602").
			WithDetail(fmt.Sprintf("Directory %q does not exist", cfg.StaticDir())).
			WithSuggestion("Run 'glint build' first, or pass --dir")
	}

	server := dev.NewServer(cfg, newLogger(verbose), dev.WithLiveReload(false))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info("Serving %s", dir)
	success("Listening on %s", cfg.DevURL())
	fmt.Println()

	return server.Start(ctx)
}
