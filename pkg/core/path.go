package core

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Fixed subfolder names of the mirror tree.
const (
	TrashDir         = "Trash"
	ArchiveDir       = "Archive"
	AttachmentsDir   = "Attachments"
	UncategorizedDir = "Uncategorized"
)

// maxTitleLen caps the title portion of a filename, keeping paths friendly
// to Windows and synced drives.
const maxTitleLen = 50

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_. -]`)

// SanitizeName strips characters that are unsafe in filenames on common
// filesystems and trims surrounding whitespace. May return "".
func SanitizeName(s string) string {
	return strings.TrimSpace(unsafeChars.ReplaceAllString(s, ""))
}

// NotePath computes the mirror-relative destination of a note's text file.
// Layout: [Trash|Archive/]<category>/<YYYY-MM-DD title>.md. Trash wins over
// Archive when a note carries both states. Pure function of (note, options).
func NotePath(n Note, opts Options) string {
	return path.Join(noteDir(n, opts), noteFileName(n))
}

// AttachmentPath computes the mirror-relative destination of one attachment.
// Attachments keep their container entry name: it is unique within a backup
// and renaming would break the ![[...]] embeds in rendered bodies. Cross-note
// clashes are still caught by the pre-flight collision check in Reconcile.
func AttachmentPath(n Note, a Attachment, opts Options) string {
	name := path.Base(a.Name)
	if opts.SeparateAttachments {
		return path.Join(AttachmentsDir, name)
	}
	return path.Join(noteDir(n, opts), name)
}

func noteDir(n Note, opts Options) string {
	category := SanitizeName(n.Category)
	if category == "" {
		category = UncategorizedDir
	}

	switch {
	case n.Trashed && opts.SeparateTrash:
		return path.Join(TrashDir, category)
	case n.Archived && opts.SeparateArchive:
		return path.Join(ArchiveDir, category)
	}
	return category
}

func noteFileName(n Note) string {
	title := SanitizeName(n.Title)
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = strings.TrimSpace(string(runes[:maxTitleLen]))
	}
	if title == "" {
		title = fmt.Sprintf("Note %d", n.Order)
	}
	return fmt.Sprintf("%s %s.md", n.CreatedAt.UTC().Format("2006-01-02"), title)
}
