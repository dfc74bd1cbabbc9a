package core

import (
	"fmt"
	"slices"
	"sort"
)

// Renderer turns a note into its on-disk text representation.
type Renderer interface {
	Render(n Note) ([]byte, error)
}

// Reconcile compares the current note set against the manifest of the
// previous run and computes the minimal plan of writes and deletes that
// brings the mirror in sync.
//
// It is a pure function of (notes, manifest, opts): it never looks at the
// filesystem, so rerunning it on its own output yields an empty plan.
//
// Workflow:
//  1. Drop ignored notes (trash/archive filters) before diffing, so a
//     previously synced note that is now ignored counts as removed.
//  2. Compute destination paths and fail with AmbiguousPathError on any
//     clash, before a single write is planned.
//  3. Classify each surviving note against the manifest by id:
//     new -> write; changed (mtime or path drift) -> delete stale paths and
//     write; unchanged -> no-op.
//  4. Manifest entries with no surviving note -> delete their recorded paths.
func Reconcile(notes []Note, manifest Manifest, opts Options, r Renderer) (Plan, error) {
	next := manifest.Clone()
	plan := Plan{}

	claimed := make(map[string]string, len(notes)) // path -> claiming note id
	survivors := make(map[string]bool, len(notes))

	for _, n := range notes {
		if n.Trashed && opts.IgnoreTrash {
			continue
		}
		if n.Archived && opts.IgnoreArchive {
			continue
		}
		survivors[n.ID] = true

		notePath := NotePath(n, opts)
		var attachments []string
		if !opts.IgnoreAttachments {
			attachments = make([]string, 0, len(n.Attachments))
			for _, a := range n.Attachments {
				attachments = append(attachments, AttachmentPath(n, a, opts))
			}
		}

		for _, p := range append([]string{notePath}, attachments...) {
			if owner, taken := claimed[p]; taken {
				return Plan{}, &AmbiguousPathError{Path: p, IDs: []string{owner, n.ID}}
			}
			claimed[p] = n.ID
		}

		entry := ManifestEntry{
			ID:          n.ID,
			ModifiedAt:  n.ModifiedAt,
			NotePath:    notePath,
			Attachments: attachments,
		}

		prev, known := next.Entries[n.ID]
		if known && prev.ModifiedAt.Equal(n.ModifiedAt) &&
			prev.NotePath == notePath && slices.Equal(prev.Attachments, attachments) {
			plan.Unchanged++
			continue
		}

		if known {
			// A category or state change moved the note: the old paths are
			// stale unless the new layout still produces them.
			current := make(map[string]bool, 1+len(attachments))
			current[notePath] = true
			for _, p := range attachments {
				current[p] = true
			}
			for _, old := range prev.Paths() {
				if !current[old] {
					plan.Deletes = append(plan.Deletes, old)
				}
			}
		}

		data, err := r.Render(n)
		if err != nil {
			return Plan{}, fmt.Errorf("failed to render note %s: %w", n.ID, err)
		}
		plan.Writes = append(plan.Writes, Write{Path: notePath, Data: data, ModTime: n.ModifiedAt})
		if !opts.IgnoreAttachments {
			for i, a := range n.Attachments {
				plan.Writes = append(plan.Writes, Write{Path: attachments[i], Attachment: a.Name})
			}
		}
		next.Entries[n.ID] = entry
	}

	// Removal detection. Sorted ids keep plans deterministic; map order is not.
	removed := make([]string, 0)
	for id := range next.Entries {
		if !survivors[id] {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	for _, id := range removed {
		plan.Deletes = append(plan.Deletes, next.Entries[id].Paths()...)
		delete(next.Entries, id)
	}

	sort.Strings(plan.Deletes)
	plan.Deletes = slices.Compact(plan.Deletes)

	// Safe mode: the mirror keeps the files, the manifest forgets them.
	// Suppressed deletions are surfaced separately so they can be logged.
	if opts.SafeMode {
		plan.Skipped = plan.Deletes
		plan.Deletes = nil
	}

	plan.Manifest = next
	return plan, nil
}
