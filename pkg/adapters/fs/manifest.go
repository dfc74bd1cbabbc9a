// Package fs applies reconcile plans to the mirror directory and manages the
// persisted state that lives alongside it.
package fs

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mvrcunha/mx2md/pkg/core"
)

const (
	// SystemDir is the hidden directory inside the mirror root holding the
	// manifest and the run lock.
	SystemDir = ".mx2md"

	manifestFile = "manifest.json"
)

// Store persists the manifest inside the mirror root, so the mirror is
// self-describing and can be moved or deleted as a unit.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore returns a Store rooted at the mirror directory.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{root: root, logger: logger}
}

// Path returns the manifest file location.
func (s *Store) Path() string {
	return filepath.Join(s.root, SystemDir, manifestFile)
}

// Load reads the manifest. A missing file yields an empty manifest. An
// unreadable file also yields an empty manifest (the mirror self-heals by
// re-mirroring everything), but the event is logged. A manifest written by a
// newer format version is an error: silently re-mirroring over it could
// orphan files this version does not know how to place.
func (s *Store) Load() (core.Manifest, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return core.NewManifest(), nil
	}
	if err != nil {
		return core.Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m core.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Warn("manifest is unreadable, starting fresh", "path", s.Path(), "error", err)
		return core.NewManifest(), nil
	}
	if m.Version > core.ManifestVersion {
		return core.Manifest{}, fmt.Errorf("manifest version %d is newer than supported version %d", m.Version, core.ManifestVersion)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]core.ManifestEntry)
	}
	return m, nil
}

// Save persists the manifest atomically.
func (s *Store) Save(m core.Manifest) error {
	if err := os.MkdirAll(filepath.Join(s.root, SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", SystemDir, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
