package core

// Options is the fixed set of sync toggles. Ignore flags drop notes before
// diffing (a previously synced note that is now ignored gets scheduled for
// deletion); separate flags reroute notes or attachments into dedicated
// subfolders; SafeMode suppresses deletions at apply time.
type Options struct {
	IgnoreTrash       bool
	IgnoreArchive     bool
	IgnoreAttachments bool

	SeparateTrash       bool
	SeparateArchive     bool
	SeparateAttachments bool

	SafeMode bool
}
