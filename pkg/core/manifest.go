package core

import "time"

// ManifestVersion is the current manifest format version. Bumped when the
// path layout changes in a way that requires a full re-mirror.
const ManifestVersion = 1

// ManifestEntry records what was written for one note on a previous run.
// Paths are mirror-relative, slash-separated, so the manifest stays valid
// when the mirror directory is moved between machines.
type ManifestEntry struct {
	ID          string    `json:"id"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	NotePath    string    `json:"notePath"`
	Attachments []string  `json:"attachments,omitempty"`
}

// Paths returns every path recorded for the entry (note file first).
func (e ManifestEntry) Paths() []string {
	paths := make([]string, 0, 1+len(e.Attachments))
	paths = append(paths, e.NotePath)
	paths = append(paths, e.Attachments...)
	return paths
}

// Manifest is the sole persisted state: a mapping from note id to the last
// synced state of that note. Its lifecycle is caller-driven: load, pass into
// Reconcile as a value, persist the updated copy returned in the Plan.
type Manifest struct {
	Version int                      `json:"version"`
	Entries map[string]ManifestEntry `json:"entries"`
}

// NewManifest returns an empty manifest at the current format version.
func NewManifest() Manifest {
	return Manifest{
		Version: ManifestVersion,
		Entries: make(map[string]ManifestEntry),
	}
}

// Clone returns a deep copy. Reconcile mutates the copy, never its input.
func (m Manifest) Clone() Manifest {
	out := Manifest{Version: m.Version, Entries: make(map[string]ManifestEntry, len(m.Entries))}
	if out.Version == 0 {
		out.Version = ManifestVersion
	}
	for id, e := range m.Entries {
		attachments := make([]string, len(e.Attachments))
		copy(attachments, e.Attachments)
		e.Attachments = attachments
		out.Entries[id] = e
	}
	return out
}
