package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glint-dev/glint/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewHasDefaults(t *testing.T) {
	cfg := New()

	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Static.Dir != "public" {
		t.Errorf("Static.Dir = %q, want public", cfg.Static.Dir)
	}
	if cfg.Static.Index != "index.html" {
		t.Errorf("Static.Index = %q", cfg.Static.Index)
	}
	if cfg.Build.Output != DefaultOutput {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, DefaultOutput)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{
		"name": "demo",
		"dev": {"port": 4000, "https": true},
		"static": {"dir": "assets"}
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Dev.Port != 4000 {
		t.Errorf("Dev.Port = %d, want 4000", cfg.Dev.Port)
	}
	if cfg.DevURL() != "https://localhost:4000" {
		t.Errorf("DevURL = %q", cfg.DevURL())
	}
	if got := cfg.StaticDir(); got != filepath.Join(dir, "assets") {
		t.Errorf("StaticDir = %q", got)
	}
	// Unset fields still pick up defaults.
	if cfg.Build.Output != DefaultOutput {
		t.Errorf("Build.Output = %q", cfg.Build.Output)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFileName, "name: demo\ndev:\n  port: 5000\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" || cfg.Dev.Port != 5000 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestJSONWinsOverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{"name": "from-json"}`)
	writeFile(t, dir, YAMLFileName, "name: from-yaml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-json" {
		t.Fatalf("Name = %q, want from-json", cfg.Name)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, "E501") {
		t.Fatalf("err = %v, want E501", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{"name": }`)

	_, err := Load(dir)
	if !errors.Is(err, "E502") {
		t.Fatalf("err = %v, want E502", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{"dev": {"port": 70000}}`)

	_, err := Load(dir)
	if !errors.Is(err, "E503") {
		t.Fatalf("err = %v, want E503", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := New()
	cfg.Name = "saved"
	cfg.Dev.Port = 8080
	if err := cfg.SaveTo(filepath.Join(dir, JSONFileName)); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "saved" || loaded.Dev.Port != 8080 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestSaveYAML(t *testing.T) {
	dir := t.TempDir()

	cfg := New()
	cfg.Name = "yammy"
	path := filepath.Join(dir, YAMLFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Name != "yammy" {
		t.Fatalf("Name = %q", loaded.Name)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, JSONFileName, `{}`)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	// Resolve symlinks so the comparison survives /tmp being a link.
	want, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != want {
		t.Fatalf("root = %q, want %q", gotResolved, want)
	}
}

func TestFindProjectRootMissing(t *testing.T) {
	_, err := FindProjectRoot(t.TempDir())
	if !errors.Is(err, "E501") {
		t.Fatalf("err = %v, want E501", err)
	}
}
