package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glint-dev/glint/internal/errors"
	"github.com/glint-dev/glint/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template    string
		description string
		skipPrompts bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new Glint project",
		Long: `Create a new Glint project with the specified name.

Templates:
  minimal   Just the essentials for a Glint app
  full      Complete starter with routes, hooks, and store bindings (default)

Examples:
  glint create my-app
  glint create my-app --template=minimal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], template, description, skipPrompts)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "full", "Project template (minimal, full)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().BoolVarP(&skipPrompts, "yes", "y", false, "Skip prompts and use defaults")

	return cmd
}

func runCreate(name, templateName, description string, skipPrompts bool) error {
	printBanner()
	fmt.Println("  Creating a new Glint project...")
	fmt.Println()

	if !isValidProjectName(name) {
		return errors.New("E701").
			WithDetail(fmt.Sprintf("Project name %q is not a valid module name", name)).
			WithSuggestion("Use lowercase letters, numbers, and hyphens, starting with a letter")
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("E702").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	if !skipPrompts {
		description, err = promptForDescription(description)
		if err != nil {
			return err
		}
	}
	if description == "" {
		description = "A Glint web application"
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	cfg := templates.Config{
		ProjectName: name,
		ModulePath:  name, // Simple module path for local projects
		Description: description,
	}

	info("Creating project from '%s' template...", templateName)
	if err := tmpl.Create(projectDir, cfg); err != nil {
		// Clean up on error
		os.RemoveAll(projectDir)
		return err
	}

	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    go mod tidy")
	fmt.Println("    glint dev")
	fmt.Println()
	fmt.Println("  Your app will be running at http://localhost:3000")
	fmt.Println()

	return nil
}

func promptForDescription(description string) (string, error) {
	if description != "" {
		return description, nil
	}
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("? Description: ")
	desc, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}

func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case r == '-':
			if i == 0 || i == len(name)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
