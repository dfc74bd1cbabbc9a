// Package memorix reads Memorix backup containers (.mxbk files).
//
// A container is a zip archive holding exactly one JSON database entry plus
// the attachment blobs under their own entry names. The rest of the tool
// only sees the Container interface, never the archive layout.
package memorix

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mvrcunha/mx2md/pkg/core"
)

// BackupExt is the file extension of Memorix backup exports.
const BackupExt = ".mxbk"

// Container provides read access to the parsed contents of one backup.
type Container interface {
	// Notes returns the notes in source order.
	Notes() []core.Note
	// ReadAttachment returns the payload of an attachment entry.
	ReadAttachment(name string) ([]byte, error)
}

// Backup is a parsed backup container. It implements Container.
type Backup struct {
	path    string
	notes   []core.Note
	entries map[string]bool // attachment entry names present in the archive
}

// raw wire types, matching the JSON database inside the container.

type database struct {
	Entries []entry `json:"entries"`
	Prefs   prefs   `json:"prefs"`
}

type prefs struct {
	// Categories is itself a JSON-encoded string: [{"num":..,"title":..}].
	Categories string `json:"pref_categories"`
}

type entry struct {
	Title              string    `json:"title"`
	Order              int       `json:"order"`
	Flags              int       `json:"flags"`
	ColorNum           int       `json:"colorNum"`
	CreatedMillis      int64     `json:"createdMillis"`
	LastModifiedMillis int64     `json:"lastModifiedMillis"`
	Attachments        []string  `json:"attachments"`
	Sections           []section `json:"sections"`
}

type section struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Checkable bool   `json:"checkable"`
	Checked   bool   `json:"checked"`
}

type category struct {
	Num   int    `json:"num"`
	Title string `json:"title"`
}

// Open parses the backup at path. The whole database is decoded up front;
// attachment payloads are read on demand via ReadAttachment.
func Open(path string) (*Backup, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrCorruptBackup, path, err)
	}
	defer zr.Close()

	b := &Backup{path: path, entries: make(map[string]bool)}

	var dbFile *zip.File
	for _, f := range zr.File {
		if dbFile == nil && strings.HasSuffix(f.Name, ".json") {
			dbFile = f
			continue
		}
		b.entries[f.Name] = true
	}
	if dbFile == nil {
		return nil, fmt.Errorf("%w: %s: no database entry in archive", core.ErrCorruptBackup, path)
	}

	db, err := decodeDatabase(dbFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrCorruptBackup, path, err)
	}

	categories, err := decodeCategories(db.Prefs.Categories)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrCorruptBackup, path, err)
	}

	b.notes = make([]core.Note, 0, len(db.Entries))
	for _, e := range db.Entries {
		n, err := buildNote(e, categories)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", core.ErrCorruptBackup, path, err)
		}
		b.notes = append(b.notes, n)
	}

	return b, nil
}

// Path returns the location of the backup file.
func (b *Backup) Path() string {
	return b.path
}

// Notes returns the notes in source order.
func (b *Backup) Notes() []core.Note {
	return b.notes
}

// ReadAttachment returns the payload of one attachment entry. The archive is
// reopened per read; backups are small and this keeps Backup free of open
// file handles.
func (b *Backup) ReadAttachment(name string) ([]byte, error) {
	if !b.entries[name] {
		return nil, fmt.Errorf("attachment %q not present in %s", name, b.path)
	}

	zr, err := zip.OpenReader(b.path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen backup: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment %q: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("attachment %q not present in %s", name, b.path)
}

func decodeDatabase(f *zip.File) (*database, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var db database
	if err := json.NewDecoder(rc).Decode(&db); err != nil {
		return nil, fmt.Errorf("invalid database json: %w", err)
	}
	if db.Entries == nil {
		return nil, fmt.Errorf("database has no entries section")
	}
	return &db, nil
}

func decodeCategories(raw string) ([]category, error) {
	if raw == "" {
		return nil, nil
	}
	var categories []category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, fmt.Errorf("invalid category preferences: %w", err)
	}
	return categories, nil
}

func buildNote(e entry, categories []category) (core.Note, error) {
	if len(e.Sections) == 0 {
		return core.Note{}, fmt.Errorf("note %q has no sections", e.Title)
	}

	n := core.Note{
		ID:             e.Sections[0].ID,
		Title:          strings.TrimSpace(e.Title),
		Order:          e.Order,
		Trashed:        hasFlag(e.Flags, flagTrashed),
		Archived:       hasFlag(e.Flags, flagArchived),
		Pinned:         hasFlag(e.Flags, flagPinned),
		ChecksToBottom: hasFlag(e.Flags, flagChecksToBottom),
		FontSize:       fontSize(e.Flags),
		CreatedAt:      time.UnixMilli(e.CreatedMillis).UTC(),
		ModifiedAt:     time.UnixMilli(e.LastModifiedMillis).UTC(),
	}
	if n.ID == "" {
		return core.Note{}, fmt.Errorf("note %q has no section id", e.Title)
	}
	if n.Title == "" {
		n.Title = fmt.Sprintf("Note %d", e.Order)
	}

	for _, c := range categories {
		if c.Num == e.ColorNum {
			n.Category = c.Title
			break
		}
	}

	// Plain notes carry one non-checkable section; checklist notes carry one
	// section per line.
	if e.Sections[0].Checkable {
		n.Items = make([]core.ListItem, 0, len(e.Sections))
		for _, s := range e.Sections {
			n.Items = append(n.Items, core.ListItem{Text: s.Text, Checked: s.Checked})
		}
	} else {
		n.Body = e.Sections[0].Text
	}

	for _, name := range e.Attachments {
		n.Attachments = append(n.Attachments, core.Attachment{Name: name})
	}

	return n, nil
}
