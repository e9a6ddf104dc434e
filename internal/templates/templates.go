// Package templates holds the project scaffolds used by "glint create".
package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/glint-dev/glint/internal/errors"
)

// Config contains scaffold configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// ModulePath is the Go module path.
	ModulePath string

	// Description is a short project description.
	Description string
}

// Template represents a project scaffold.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E703").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, full")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create generates a project from the template.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Just the essentials for a Glint app",
		Files: map[string]string{
			"main.go": `package main

import (
	"fmt"
	"log"

	"github.com/glint-dev/glint"
	"github.com/glint-dev/glint/pkg/template"
)

var home = template.MustCompile(` + "`" + `<h1>{{"{{"}}title}}</h1><p>{{"{{"}}tagline}}</p>` + "`" + `)

func main() {
	app := glint.New(glint.Options{})

	app.Store().Set("title", "{{.ProjectName}}")
	app.Store().Set("tagline", "{{.Description}}")

	app.Route("/", func(glint.Params) (string, error) {
		return home.Render(app.Store().Snapshot())
	})

	if err := app.Navigate("/"); err != nil {
		log.Fatal(err)
	}
	fmt.Println(app.Container().InnerHTML())
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/glint-dev/glint v0.1.0
`,
			"glint.json": `{
  "name": "{{.ProjectName}}",
  "dev": {
    "port": 3000,
    "reload": true
  },
  "build": {
    "output": "dist",
    "minify": true
  }
}
`,
			"public/index.html": `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.ProjectName}}</title>
  <link rel="stylesheet" href="/css/site.css">
</head>
<body>
  <div id="app"></div>
</body>
</html>
`,
			"public/css/site.css": `body {
  font-family: system-ui, sans-serif;
  max-width: 800px;
  margin: 0 auto;
  padding: 2rem;
}

h1 {
  color: #2563eb;
}
`,
		},
	}
}

func fullTemplate() *Template {
	t := minimalTemplate()

	return &Template{
		Name:        "full",
		Description: "Complete starter with routing, store bindings, and lifecycle hooks",
		Files: map[string]string{
			"go.mod":              t.Files["go.mod"],
			"glint.json":          t.Files["glint.json"],
			"public/index.html":   t.Files["public/index.html"],
			"public/css/site.css": t.Files["public/css/site.css"],
			"main.go": `package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/glint-dev/glint"
	"github.com/glint-dev/glint/pkg/hooks"
	"github.com/glint-dev/glint/pkg/template"
)

var (
	home = template.MustCompile(` + "`" + `<h1>{{"{{"}}title}}</h1><p>Visits: {{"{{"}}visits}}</p><nav><a href="/users/42">A user</a></nav>` + "`" + `)
	user = template.MustCompile(` + "`" + `<h1>User {{"{{"}}id}}</h1><p><a href="/">Back home</a></p>` + "`" + `)
)

func main() {
	app := glint.New(glint.Options{Logger: slog.Default()})
	defer app.Close()

	app.Store().Set("title", "{{.ProjectName}}")
	app.Store().Set("visits", "0")

	app.Hooks().On(hooks.AfterRoute, func(ctx *hooks.Context) {
		slog.Info("navigated", "path", ctx.Path)
	})

	app.Route("/", func(glint.Params) (string, error) {
		return home.Render(app.Store().Snapshot())
	})
	app.Route("/users/:id", func(p glint.Params) (string, error) {
		return user.Render(map[string]any{"id": p.Get("id")})
	})
	app.NotFound(func(glint.Params) (string, error) {
		return "<h1>Not found</h1>", nil
	})

	// Re-render the current route whenever the visit counter changes.
	app.Bind("visits")

	if err := app.Navigate("/"); err != nil {
		log.Fatal(err)
	}
	app.Store().Set("visits", "1")

	fmt.Println(app.Container().InnerHTML())
}
`,
		},
	}
}
