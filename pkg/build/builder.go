// Package build produces a deployable copy of a Glint project's static
// files: assets are copied into the output directory, optionally
// minified, and a manifest records the content hash of every file.
package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/glint-dev/glint/internal/config"
	"github.com/glint-dev/glint/internal/errors"
)

// ManifestName is the manifest file written next to the built assets.
const ManifestName = "manifest.json"

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Output is the output directory.
	Output string

	// Manifest maps each relative file path to its content hash.
	Manifest map[string]string

	// Files is the number of files written.
	Files int

	// Bytes is the total size written, after minification.
	Bytes int64
}

// Options configures the builder.
type Options struct {
	// Minify enables HTML/CSS/JS/SVG minification.
	Minify bool

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder performs production builds.
type Builder struct {
	config  *config.Config
	options Options
	min     *minify.M
}

// New creates a builder. Options left zero fall back to the config.
func New(cfg *config.Config, options Options) *Builder {
	if !options.Minify && cfg.Build.Minify {
		options.Minify = true
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	return &Builder{config: cfg, options: options, min: m}
}

// Build cleans the output directory and rebuilds it from the static
// directory.
func (b *Builder) Build() (*Result, error) {
	start := time.Now()

	staticDir := b.config.StaticDir()
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		return nil, errors.New("E602").WithDetail("Looked in " + staticDir)
	}

	outputDir := b.config.OutputDir()

	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, errors.New("E601").Wrap(err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.New("E601").Wrap(err)
	}

	result := &Result{
		Output:   outputDir,
		Manifest: make(map[string]string),
	}

	b.progress("Copying static assets...")
	err := filepath.Walk(staticDir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if b.options.Minify {
			data = b.minifyAsset(rel, data)
		}

		dst := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return err
		}

		sum := sha256.Sum256(data)
		result.Manifest[rel] = hex.EncodeToString(sum[:])
		result.Files++
		result.Bytes += int64(len(data))
		return nil
	})
	if err != nil {
		return nil, errors.New("E601").Wrap(err)
	}

	b.progress("Writing manifest...")
	if err := b.writeManifest(outputDir, result.Manifest); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// minifyAsset minifies by extension. Unknown types and minifier errors
// pass the data through unchanged.
func (b *Builder) minifyAsset(rel string, data []byte) []byte {
	var mediatype string
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".html", ".htm":
		mediatype = "text/html"
	case ".css":
		mediatype = "text/css"
	case ".js", ".mjs":
		mediatype = "application/javascript"
	case ".svg":
		mediatype = "image/svg+xml"
	default:
		return data
	}

	out, err := b.min.Bytes(mediatype, data)
	if err != nil {
		return data
	}
	return out
}

func (b *Builder) writeManifest(outputDir string, manifest map[string]string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.New("E601").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(outputDir, ManifestName), data, 0644); err != nil {
		return errors.New("E601").Wrap(err)
	}
	return nil
}

func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// HashFile returns the hex sha256 of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
