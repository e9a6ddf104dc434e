// Package config loads and validates Glint project configuration.
//
// A project is configured by glint.json, with glint.yaml accepted as an
// alternative. JSON wins when both exist. Defaults are applied after
// load, so a minimal file (or none at all, via New) is always usable.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/glint-dev/glint/internal/errors"
)

const (
	// JSONFileName is the primary configuration file name.
	JSONFileName = "glint.json"

	// YAMLFileName is the alternative configuration file name.
	YAMLFileName = "glint.yaml"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"
)

// Config represents the complete project configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty" yaml:"static,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Build contains production build configuration.
	Build BuildConfig `json:"build,omitempty" yaml:"build,omitempty"`

	// Deploy contains deployment configuration.
	Deploy DeployConfig `json:"deploy,omitempty" yaml:"deploy,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Index is the file served for paths that do not name a file.
	Index string `json:"index,omitempty" yaml:"index,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// HTTPS reports the dev URL with an https scheme.
	HTTPS bool `json:"https,omitempty" yaml:"https,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`

	// Ignore contains directory names skipped during watch.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Reload enables live reload over websocket.
	Reload bool `json:"reload,omitempty" yaml:"reload,omitempty"`
}

// BuildConfig contains production build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Minify enables HTML/CSS/JS/SVG minification.
	Minify bool `json:"minify,omitempty" yaml:"minify,omitempty"`
}

// DeployConfig contains deployment settings.
type DeployConfig struct {
	// Bucket is the S3 bucket to upload the build output to.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Region is the bucket's region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Prefix is prepended to every uploaded object key.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{Version: "0.1.0"}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory. glint.json is
// preferred; glint.yaml is the fallback.
func Load(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, JSONFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return LoadFile(jsonPath)
	}
	yamlPath := filepath.Join(dir, YAMLFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return LoadFile(yamlPath)
	}
	return nil, errors.New("E501").
		WithDetail("No " + JSONFileName + " or " + YAMLFileName + " found in " + dir).
		WithSuggestion("Run 'glint create' to scaffold a new project")
}

// LoadFile reads configuration from the specified file. The format is
// chosen by extension; anything that is not .yaml/.yml parses as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E501").
				WithDetail("No config file at " + path).
				WithSuggestion("Run 'glint create' to scaffold a new project")
		}
		return nil, errors.New("E502").Wrap(err)
	}

	cfg := &Config{}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E502").
			Wrap(err).
			WithDetail("Failed to parse " + filepath.Base(path)).
			WithSuggestion("Check the file's syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in the format
// implied by its extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E502").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E502").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{"public"}
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Static.Index == "" {
		c.Static.Index = "index.html"
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
}

var validate = validator.New()

// Validate checks the configuration's values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return errors.New("E503").
				Wrap(err).
				WithDetail("Field '" + errs[0].Namespace() + "' failed rule '" + errs[0].Tag() + "'")
		}
		return errors.New("E503").Wrap(err)
	}
	return nil
}

// StaticDir returns the absolute path to the static files directory.
func (c *Config) StaticDir() string {
	if filepath.IsAbs(c.Static.Dir) {
		return c.Static.Dir
	}
	return filepath.Join(c.Dir(), c.Static.Dir)
}

// OutputDir returns the absolute path to the build output directory.
func (c *Config) OutputDir() string {
	if filepath.IsAbs(c.Build.Output) {
		return c.Build.Output
	}
	return filepath.Join(c.Dir(), c.Build.Output)
}

// DevAddress returns the listen address for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL of the dev server.
func (c *Config) DevURL() string {
	scheme := "http"
	if c.Dev.HTTPS {
		scheme = "https"
	}
	return scheme + "://" + c.DevAddress()
}

// Exists reports whether a config file exists in the directory.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from startDir to the directory containing a
// config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E501").
				WithDetail("No " + JSONFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'glint create' to scaffold a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root
// above the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
