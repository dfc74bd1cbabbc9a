package platform

import (
	"io"
	"log/slog"

	"github.com/mvrcunha/mx2md/pkg/core"
	"github.com/mvrcunha/mx2md/pkg/markdown"
	"github.com/mvrcunha/mx2md/pkg/memorix"
)

// options holds the internal configuration for one run.
type options struct {
	sync     core.Options
	pattern  string
	logger   *slog.Logger
	renderer core.Renderer
}

// Option defines a functional option for configuring a sync run.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		pattern:  memorix.DefaultPattern,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		renderer: markdown.NewRenderer(),
	}
}

// WithSafeMode suppresses deletions; they are logged instead of executed.
func WithSafeMode(on bool) Option {
	return func(o *options) { o.sync.SafeMode = on }
}

// WithIgnoreTrash drops trashed notes before diffing.
func WithIgnoreTrash(on bool) Option {
	return func(o *options) { o.sync.IgnoreTrash = on }
}

// WithIgnoreArchive drops archived notes before diffing.
func WithIgnoreArchive(on bool) Option {
	return func(o *options) { o.sync.IgnoreArchive = on }
}

// WithIgnoreAttachments skips attachment extraction entirely.
func WithIgnoreAttachments(on bool) Option {
	return func(o *options) { o.sync.IgnoreAttachments = on }
}

// WithSeparateTrash routes trashed notes into a Trash/ subfolder.
func WithSeparateTrash(on bool) Option {
	return func(o *options) { o.sync.SeparateTrash = on }
}

// WithSeparateArchive routes archived notes into an Archive/ subfolder.
func WithSeparateArchive(on bool) Option {
	return func(o *options) { o.sync.SeparateArchive = on }
}

// WithSeparateAttachments routes attachments into an Attachments/ subfolder
// instead of placing them alongside their note.
func WithSeparateAttachments(on bool) Option {
	return func(o *options) { o.sync.SeparateAttachments = on }
}

// WithPattern overrides the glob used to pick backup files out of an input
// directory. Defaults to "*.mxbk".
func WithPattern(pattern string) Option {
	return func(o *options) {
		if pattern != "" {
			o.pattern = pattern
		}
	}
}

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRenderer allows injecting a custom note renderer.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.renderer = r
		}
	}
}
