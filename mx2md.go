package mx2md

import (
	"context"
	"log/slog"

	"github.com/mvrcunha/mx2md/internal/platform"
	"github.com/mvrcunha/mx2md/pkg/core"
)

// --- Types ---

// Report summarizes one completed sync run.
type Report = platform.Report

// Renderer turns a note into its on-disk text representation.
type Renderer = core.Renderer

// --- Configuration ---

// Option defines a functional option for configuring a sync run.
type Option = platform.Option

// WithSafeMode suppresses deletions; they are logged instead of executed.
func WithSafeMode(on bool) Option {
	return platform.WithSafeMode(on)
}

// WithIgnoreTrash drops trashed notes before diffing.
func WithIgnoreTrash(on bool) Option {
	return platform.WithIgnoreTrash(on)
}

// WithIgnoreArchive drops archived notes before diffing.
func WithIgnoreArchive(on bool) Option {
	return platform.WithIgnoreArchive(on)
}

// WithIgnoreAttachments skips attachment extraction entirely.
func WithIgnoreAttachments(on bool) Option {
	return platform.WithIgnoreAttachments(on)
}

// WithSeparateTrash routes trashed notes into a Trash/ subfolder.
func WithSeparateTrash(on bool) Option {
	return platform.WithSeparateTrash(on)
}

// WithSeparateArchive routes archived notes into an Archive/ subfolder.
func WithSeparateArchive(on bool) Option {
	return platform.WithSeparateArchive(on)
}

// WithSeparateAttachments routes attachments into an Attachments/ subfolder.
func WithSeparateAttachments(on bool) Option {
	return platform.WithSeparateAttachments(on)
}

// WithPattern overrides the glob used to pick backups out of a directory.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRenderer allows injecting a custom note renderer.
func WithRenderer(r Renderer) Option {
	return platform.WithRenderer(r)
}

// --- Operations ---

// Sync mirrors the backup at input (a .mxbk file, or a directory holding
// them) into <output>/Memorix and returns a summary of what changed.
func Sync(input, output string, opts ...Option) (*Report, error) {
	return platform.Run(input, output, opts...)
}

// Watch performs an initial Sync, then blocks re-syncing whenever backup
// files change under input, until ctx is cancelled.
func Watch(ctx context.Context, input, output string, opts ...Option) error {
	return platform.Watch(ctx, input, output, opts...)
}
