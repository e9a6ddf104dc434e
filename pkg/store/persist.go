package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Persister is the storage backend behind a Store, the localStorage
// analog. Load runs once at construction; Save runs on Flush.
type Persister interface {
	Load() (map[string]any, error)
	Save(map[string]any) error
}

// FilePersister stores the snapshot as JSON in a single file.
type FilePersister struct {
	path string
}

// NewFilePersister creates a persister writing to path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load implements Persister. A missing file is an empty snapshot, not an
// error.
func (f *FilePersister) Load() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot map[string]any
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save implements Persister. The write goes through a temp file and a
// rename so a crash never leaves a torn snapshot.
func (f *FilePersister) Save(snapshot map[string]any) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
