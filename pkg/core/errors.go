package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors.
var (
	// ErrNoBackupFound indicates that no backup file matched the input path.
	ErrNoBackupFound = errors.New("no backup file found")

	// ErrCorruptBackup indicates that a backup container could not be parsed
	// or is missing a required structural section.
	ErrCorruptBackup = errors.New("corrupt backup container")

	// ErrLocked indicates that a run lock from another (possibly crashed)
	// invocation is still present.
	ErrLocked = errors.New("mirror is locked by another run")
)

// AmbiguousPathError reports two distinct notes (or files of one note)
// resolving to the same destination path. It is raised before any disk
// mutation, so the run aborts with the mirror untouched.
type AmbiguousPathError struct {
	Path string
	IDs  []string // note ids claiming the path
}

func (e *AmbiguousPathError) Error() string {
	return fmt.Sprintf("ambiguous destination path %q claimed by notes %s", e.Path, strings.Join(e.IDs, ", "))
}

// PartialSyncError reports a run that mutated the mirror but did not finish.
// The manifest is left at its pre-run state so the next run retries the same
// work; at worst files are written twice, never lost.
type PartialSyncError struct {
	Written []string         // paths written successfully
	Deleted []string         // paths deleted successfully
	Failed  map[string]error // path -> failure
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("sync incomplete: %d path(s) failed, %d written, %d deleted",
		len(e.Failed), len(e.Written), len(e.Deleted))
}

// FailedPaths returns the failed paths in stable order.
func (e *PartialSyncError) FailedPaths() []string {
	paths := make([]string, 0, len(e.Failed))
	for p := range e.Failed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
