package core

import "time"

// FontSize is the display size Memorix assigned to a note.
type FontSize string

const (
	FontNormal FontSize = "Normal"
	FontSmall  FontSize = "Small"
	FontLarge  FontSize = "Large"
	FontHuge   FontSize = "Huge"
	FontTiny   FontSize = "Tiny"
)

// Attachment references a binary payload stored inside the backup container.
// Name is the container entry name, which is unique within one backup.
type Attachment struct {
	Name string
}

// ListItem is one line of a checklist note.
type ListItem struct {
	Text    string
	Checked bool
}

// Note is the central entity of the domain: one note extracted from a backup.
// It is agnostic to the container format and to the output representation.
//
// Exactly one of Body/Items carries the content: plain notes use Body,
// checklist notes use Items.
type Note struct {
	ID       string
	Title    string
	Order    int
	Category string // empty means uncategorized

	Body  string
	Items []ListItem

	Trashed        bool
	Archived       bool
	Pinned         bool
	ChecksToBottom bool
	FontSize       FontSize

	Attachments []Attachment

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// IsList reports whether the note is a checklist.
func (n Note) IsList() bool {
	return n.Items != nil
}
