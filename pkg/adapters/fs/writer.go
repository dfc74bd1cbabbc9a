package fs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mvrcunha/mx2md/pkg/core"
)

// Writer applies a reconcile plan to the mirror root. Deletions run first,
// then writes; the caller persists the manifest only after Apply returns nil,
// which is what makes a killed or failed run safe to retry.
type Writer struct {
	Root   string
	Logger *slog.Logger
}

// NewWriter returns a Writer for the given mirror root.
func NewWriter(root string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{Root: root, Logger: logger}
}

// Apply executes the plan. Every operation is attempted even after a
// failure, so the returned PartialSyncError can report the full picture of
// what succeeded and what did not.
func (w *Writer) Apply(plan core.Plan) error {
	partial := &core.PartialSyncError{Failed: make(map[string]error)}

	for _, rel := range plan.Skipped {
		w.Logger.Info("safe mode: keeping file scheduled for deletion", "path", rel)
	}

	for _, rel := range plan.Deletes {
		abs := w.abs(rel)
		err := os.Remove(abs)
		switch {
		case err == nil:
			w.Logger.Debug("deleted", "path", rel)
			partial.Deleted = append(partial.Deleted, rel)
			w.pruneEmptyDirs(abs)
		case os.IsNotExist(err):
			// Already gone, e.g. removed by hand. The manifest entry is
			// dropped either way.
			w.Logger.Debug("already absent", "path", rel)
		default:
			w.Logger.Error("delete failed", "path", rel, "error", err)
			partial.Failed[rel] = err
		}
	}

	for _, wr := range plan.Writes {
		abs := w.abs(wr.Path)
		if err := w.writeOne(abs, wr); err != nil {
			w.Logger.Error("write failed", "path", wr.Path, "error", err)
			partial.Failed[wr.Path] = err
			continue
		}
		w.Logger.Debug("wrote", "path", wr.Path, "bytes", len(wr.Data))
		partial.Written = append(partial.Written, wr.Path)
	}

	if len(partial.Failed) > 0 {
		return partial
	}
	return nil
}

func (w *Writer) writeOne(abs string, wr core.Write) error {
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	if err := writeFileAtomic(abs, wr.Data, 0644); err != nil {
		return err
	}
	if !wr.ModTime.IsZero() {
		// Mirror the note's own modification time, as the source app shows it.
		if err := os.Chtimes(abs, wr.ModTime, wr.ModTime); err != nil {
			w.Logger.Warn("failed to set file time", "path", abs, "error", err)
		}
	}
	return nil
}

// pruneEmptyDirs removes directories emptied by a deletion, walking up to
// (but never including) the mirror root.
func (w *Writer) pruneEmptyDirs(deleted string) {
	dir := filepath.Dir(deleted)
	root := filepath.Clean(w.Root)

	for filepath.Clean(dir) != root {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		w.Logger.Debug("removed empty directory", "path", dir)
		dir = filepath.Dir(dir)
	}
}

func (w *Writer) abs(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}
