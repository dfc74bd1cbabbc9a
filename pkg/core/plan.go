package core

import "time"

// Write is one pending file write in a plan. Note writes carry their rendered
// content in Data. Attachment writes carry the container entry name instead;
// the caller resolves Data from the container before applying the plan, so
// the backup is fully read before the mirror is touched.
type Write struct {
	Path       string // mirror-relative, slash-separated
	Data       []byte
	Attachment string    // container entry name, set only for attachment writes
	ModTime    time.Time // applied to the written file; zero leaves it alone
}

// Plan is the output of Reconcile: the minimal set of mutations that brings
// the mirror in sync with the current note set, plus the manifest to persist
// once those mutations succeed.
type Plan struct {
	Writes  []Write
	Deletes []string

	// Skipped holds deletions suppressed by safe mode. They are logged by
	// the writer but never executed; the manifest forgets them either way.
	Skipped []string

	// Unchanged counts surviving notes that needed no work.
	Unchanged int

	// Manifest is the updated manifest, persisted only after a full apply.
	Manifest Manifest
}

// Empty reports whether the plan contains no mutations.
func (p Plan) Empty() bool {
	return len(p.Writes) == 0 && len(p.Deletes) == 0
}
