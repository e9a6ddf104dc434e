package dev

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Static serves files from a directory with a single-page-app fallback:
// any path that does not name an existing file gets the index file, so
// client-side routes survive a hard refresh.
type Static struct {
	dir   string
	index string

	// inject is appended to the index file's body when non-empty,
	// used for the live-reload client.
	inject string
}

// NewStatic creates a handler rooted at dir. index defaults to
// "index.html".
func NewStatic(dir, index string) *Static {
	if index == "" {
		index = "index.html"
	}
	return &Static{dir: dir, index: index}
}

// Inject sets an HTML snippet appended to the index file when served.
func (s *Static) Inject(snippet string) {
	s.inject = snippet
}

// relPath returns a sanitized relative path for a request. It rejects
// traversal and absolute-path tricks so serving cannot escape the
// static directory.
func (s *Static) relPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return "", false
	}

	// Reject NUL early (can appear via %00).
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}
	if strings.Contains(rel, "\\") {
		return "", false
	}

	// After prefix stripping, a leading "/" indicates an absolute-path
	// attempt (e.g. "//etc/passwd" => "/etc/passwd").
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	// Reject dot-segments before cleaning to avoid "cleaning away"
	// traversal attempts and changing the meaning of the request path.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}

	return clean, true
}

// ServeHTTP implements http.Handler.
func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if rel, ok := s.relPath(r.URL.Path); ok {
		full := filepath.Join(s.dir, filepath.FromSlash(rel))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		}
	}

	s.serveIndex(w, r)
}

// serveIndex serves the SPA entry point with the reload snippet
// appended.
func (s *Static) serveIndex(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(s.dir, s.index))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if s.inject != "" {
		html := string(data)
		if i := strings.LastIndex(html, "</body>"); i != -1 {
			html = html[:i] + s.inject + html[i:]
		} else {
			html += s.inject
		}
		data = []byte(html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
}
