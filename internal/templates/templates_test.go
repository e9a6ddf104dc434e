package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glint-dev/glint/internal/errors"
)

func TestGetKnownTemplates(t *testing.T) {
	for _, name := range []string{"minimal", "full"} {
		tmpl, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if tmpl.Name != name {
			t.Errorf("Name = %q, want %q", tmpl.Name, name)
		}
		if len(tmpl.Files) == 0 {
			t.Errorf("template %q has no files", name)
		}
	}
}

func TestGetUnknownTemplate(t *testing.T) {
	_, err := Get("fancy")
	if !errors.Is(err, "E703") {
		t.Fatalf("err = %v, want E703", err)
	}
}

func TestList(t *testing.T) {
	names := List()
	if len(names) != 2 || names[0] != "full" || names[1] != "minimal" {
		t.Fatalf("List() = %v", names)
	}
}

func TestCreateSubstitutesConfig(t *testing.T) {
	dir := t.TempDir()

	tmpl, err := Get("minimal")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Create(dir, Config{
		ProjectName: "my-site",
		ModulePath:  "example.com/my-site",
		Description: "A test site",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mainGo), `"my-site"`) {
		t.Error("project name not substituted in main.go")
	}
	if strings.Contains(string(mainGo), "{{.ProjectName}}") {
		t.Error("template action left in main.go")
	}

	goMod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(goMod), "module example.com/my-site") {
		t.Errorf("go.mod = %q", goMod)
	}

	// Nested directories are created.
	if _, err := os.Stat(filepath.Join(dir, "public", "css", "site.css")); err != nil {
		t.Errorf("nested file missing: %v", err)
	}
}

func TestCreateFullTemplate(t *testing.T) {
	dir := t.TempDir()

	tmpl, err := Get("full")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Create(dir, Config{ProjectName: "demo", ModulePath: "example.com/demo"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"app.Route(", "app.Bind(", "hooks.AfterRoute"} {
		if !strings.Contains(string(mainGo), want) {
			t.Errorf("full main.go missing %s", want)
		}
	}
}
