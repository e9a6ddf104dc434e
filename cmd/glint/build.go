package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glint-dev/glint/internal/config"
	"github.com/glint-dev/glint/pkg/build"
)

func buildCmd() *cobra.Command {
	var (
		output string
		minify bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build for production",
		Long: `Build the application's static assets for deployment.

This command:
  • Copies the static directory to the output directory
  • Minifies HTML, CSS, JavaScript, and SVG assets
  • Generates an asset manifest with content hashes

Examples:
  glint build
  glint build --output=dist
  glint build --minify=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, minify)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from glint.json)")
	cmd.Flags().BoolVar(&minify, "minify", true, "Minify output")

	return cmd
}

func runBuild(output string, minify bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if output != "" {
		cfg.Build.Output = output
	}

	fmt.Println("  Building for production...")
	fmt.Println()

	builder := build.New(cfg, build.Options{
		Minify: minify,
		OnProgress: func(step string) {
			info(step)
		},
	})

	result, err := builder.Build()
	if err != nil {
		return err
	}

	fmt.Println()
	success("Built %d files (%.1f KB) in %s", result.Files, float64(result.Bytes)/1024, result.Duration.Round(1000000))
	info("Output: %s", result.Output)
	fmt.Println()

	return nil
}
