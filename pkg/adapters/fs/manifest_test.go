package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvrcunha/mx2md/pkg/core"
)

func TestStore(t *testing.T) {
	t.Run("Load Missing Returns Empty", func(t *testing.T) {
		s := NewStore(t.TempDir(), nil)

		m, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(m.Entries) != 0 {
			t.Errorf("expected empty manifest, got %d entries", len(m.Entries))
		}
		if m.Version != core.ManifestVersion {
			t.Errorf("Version = %d, want %d", m.Version, core.ManifestVersion)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		s := NewStore(t.TempDir(), nil)

		m := core.NewManifest()
		m.Entries["a"] = core.ManifestEntry{
			ID:          "a",
			ModifiedAt:  time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC),
			NotePath:    "Work/2024-03-10 Plan.md",
			Attachments: []string{"Work/diagram.png"},
		}
		if err := s.Save(m); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		entry := got.Entries["a"]
		if entry.NotePath != "Work/2024-03-10 Plan.md" {
			t.Errorf("NotePath = %q", entry.NotePath)
		}
		if !entry.ModifiedAt.Equal(m.Entries["a"].ModifiedAt) {
			t.Errorf("ModifiedAt = %v", entry.ModifiedAt)
		}
		if len(entry.Attachments) != 1 {
			t.Errorf("Attachments = %v", entry.Attachments)
		}
	})

	t.Run("Corrupt Manifest Starts Fresh", func(t *testing.T) {
		root := t.TempDir()
		s := NewStore(root, nil)
		if err := os.MkdirAll(filepath.Join(root, SystemDir), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(s.Path(), []byte("{{{"), 0644); err != nil {
			t.Fatal(err)
		}

		m, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(m.Entries) != 0 {
			t.Errorf("expected self-healed empty manifest, got %d entries", len(m.Entries))
		}
	})

	t.Run("Newer Version Refused", func(t *testing.T) {
		root := t.TempDir()
		s := NewStore(root, nil)
		if err := os.MkdirAll(filepath.Join(root, SystemDir), 0755); err != nil {
			t.Fatal(err)
		}
		data := []byte(`{"version": 99, "entries": {}}`)
		if err := os.WriteFile(s.Path(), data, 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := s.Load(); err == nil {
			t.Error("expected an error for a newer manifest version")
		}
	})
}

func TestLock(t *testing.T) {
	root := t.TempDir()

	unlock, err := Lock(root)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	if _, err := Lock(root); !errors.Is(err, core.ErrLocked) {
		t.Errorf("second Lock should fail with ErrLocked, got %v", err)
	}

	unlock()

	unlock2, err := Lock(root)
	if err != nil {
		t.Fatalf("Lock after unlock failed: %v", err)
	}
	unlock2()
}
