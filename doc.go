// Package mx2md mirrors Memorix backup files (*.mxbk) as a folder tree of
// Markdown files, with incremental re-sync driven by a persisted manifest.
//
// A run has three stages: the loader parses the newest eligible backup into
// notes, the reconciler diffs them against the manifest of the previous run,
// and the writer applies the resulting plan to the mirror directory. The
// manifest is persisted only after every write succeeded, so an interrupted
// run is always safe to retry.
package mx2md
