// Package platform wires the loader, reconciler and writer into one run.
package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvrcunha/mx2md/pkg/adapters/fs"
	"github.com/mvrcunha/mx2md/pkg/core"
	"github.com/mvrcunha/mx2md/pkg/memorix"
)

// MirrorDir is the subfolder of the output path that holds the mirror tree.
const MirrorDir = "Memorix"

// Report summarizes one completed run.
type Report struct {
	Backup         string // backup file that was mirrored
	Notes          int    // notes surviving the ignore filters
	Written        int    // files written (notes + attachments)
	Deleted        int    // files deleted
	Unchanged      int    // notes needing no work
	SkippedDeletes int    // deletions suppressed by safe mode
}

// Run executes one sync: locate and parse the backup, reconcile against the
// manifest, apply the plan, persist the manifest. Data flows strictly
// forward; the manifest is only written after every mutation succeeded.
func Run(input, output string, opts ...Option) (*Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	backupPath, err := memorix.Resolve(input, o.pattern)
	if err != nil {
		return nil, err
	}
	o.logger.Info("using backup", "file", backupPath)

	var backup memorix.Container
	backup, err = memorix.Open(backupPath)
	if err != nil {
		return nil, err
	}
	notes := backup.Notes()
	o.logger.Debug("parsed backup", "notes", len(notes))

	root := filepath.Join(output, MirrorDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create mirror root: %w", err)
	}

	unlock, err := fs.Lock(root)
	if err != nil {
		return nil, err
	}
	defer unlock()

	store := fs.NewStore(root, o.logger)
	manifest, err := store.Load()
	if err != nil {
		return nil, err
	}

	plan, err := core.Reconcile(notes, manifest, o.sync, o.renderer)
	if err != nil {
		return nil, err
	}

	// Resolve attachment payloads up front: the backup is fully read before
	// the first byte of the mirror changes.
	for i := range plan.Writes {
		if plan.Writes[i].Attachment == "" {
			continue
		}
		data, err := backup.ReadAttachment(plan.Writes[i].Attachment)
		if err != nil {
			return nil, err
		}
		plan.Writes[i].Data = data
	}

	writer := fs.NewWriter(root, o.logger)
	if err := writer.Apply(plan); err != nil {
		return nil, err
	}

	if err := store.Save(plan.Manifest); err != nil {
		return nil, err
	}

	report := &Report{
		Backup:         backupPath,
		Notes:          len(plan.Manifest.Entries),
		Written:        len(plan.Writes),
		Deleted:        len(plan.Deletes),
		Unchanged:      plan.Unchanged,
		SkippedDeletes: len(plan.Skipped),
	}
	o.logger.Info("sync complete",
		"written", report.Written,
		"deleted", report.Deleted,
		"unchanged", report.Unchanged,
		"skippedDeletes", report.SkippedDeletes,
	)
	return report, nil
}

// Watch runs one sync, then blocks re-running it whenever backup files
// change under the input path. Input may be a directory or a single backup
// file (its parent directory is watched for that name).
func Watch(ctx context.Context, input, output string, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	dir := input
	pattern := o.pattern
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		dir = filepath.Dir(input)
		pattern = filepath.Base(input)
	}

	if _, err := Run(input, output, opts...); err != nil {
		return err
	}

	return fs.WatchBackups(ctx, dir, pattern, o.logger, func() error {
		_, err := Run(input, output, opts...)
		return err
	})
}
