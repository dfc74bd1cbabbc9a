package memorix

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvrcunha/mx2md/pkg/core"
)

// writeBackup assembles a .mxbk fixture: a zip with one JSON database entry
// plus attachment blobs.
func writeBackup(t *testing.T, path string, db map[string]any, attachments map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("memorix.json")
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(w).Encode(db))

	for name, data := range attachments {
		aw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = aw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func testDB() map[string]any {
	return map[string]any{
		"entries": []map[string]any{
			{
				"title":              "Groceries  ",
				"order":              1,
				"flags":              0,
				"colorNum":           2,
				"createdMillis":      1700000000000,
				"lastModifiedMillis": 1700100000000,
				"attachments":        []string{"receipt.jpg"},
				"sections": []map[string]any{
					{"id": "note-a", "text": "milk and eggs", "checkable": false, "checked": false},
				},
			},
			{
				"title":              "",
				"order":              2,
				"flags":              (1 << 1) | (1 << 2) | (1 << 10),
				"colorNum":           99,
				"createdMillis":      1700000001000,
				"lastModifiedMillis": 1700000002000,
				"sections": []map[string]any{
					{"id": "note-b", "text": "first", "checkable": true, "checked": true},
					{"id": "ignored", "text": "second", "checkable": true, "checked": false},
				},
			},
		},
		"prefs": map[string]any{
			"pref_categories": `[{"num":2,"title":"Personal"},{"num":3,"title":"Work"}]`,
		},
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.mxbk")
	writeBackup(t, path, testDB(), map[string][]byte{"receipt.jpg": []byte("jpegdata")})

	b, err := Open(path)
	require.NoError(t, err)

	notes := b.Notes()
	require.Len(t, notes, 2)

	plain := notes[0]
	assert.Equal(t, "note-a", plain.ID)
	assert.Equal(t, "Groceries", plain.Title, "title should be trimmed")
	assert.Equal(t, "Personal", plain.Category)
	assert.Equal(t, "milk and eggs", plain.Body)
	assert.False(t, plain.IsList())
	assert.Equal(t, time.UnixMilli(1700100000000).UTC(), plain.ModifiedAt)
	require.Len(t, plain.Attachments, 1)
	assert.Equal(t, "receipt.jpg", plain.Attachments[0].Name)

	list := notes[1]
	assert.Equal(t, "note-b", list.ID)
	assert.Equal(t, "Note 2", list.Title, "blank title falls back to order")
	assert.Empty(t, list.Category, "unknown colorNum maps to no category")
	assert.True(t, list.Trashed)
	assert.True(t, list.Pinned)
	assert.False(t, list.Archived)
	require.True(t, list.IsList())
	require.Len(t, list.Items, 2)
	assert.Equal(t, core.ListItem{Text: "first", Checked: true}, list.Items[0])
}

func TestOpen_FontSizes(t *testing.T) {
	cases := []struct {
		flags int
		want  core.FontSize
	}{
		{0, core.FontNormal},
		{1 << 5, core.FontLarge},
		{1 << 6, core.FontHuge},
		{(1 << 5) | (1 << 6), core.FontSmall},
		{1 << 7, core.FontTiny},
	}
	for _, c := range cases {
		if got := fontSize(c.flags); got != c.want {
			t.Errorf("fontSize(%#x) = %s, want %s", c.flags, got, c.want)
		}
	}
}

func TestOpen_Corrupt(t *testing.T) {
	dir := t.TempDir()

	t.Run("Not A Zip", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.mxbk")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

		_, err := Open(path)
		assert.ErrorIs(t, err, core.ErrCorruptBackup)
	})

	t.Run("No Database Entry", func(t *testing.T) {
		path := filepath.Join(dir, "nodb.mxbk")
		f, err := os.Create(path)
		require.NoError(t, err)
		zw := zip.NewWriter(f)
		w, err := zw.Create("image.png")
		require.NoError(t, err)
		_, _ = w.Write([]byte("png"))
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())

		_, err = Open(path)
		assert.ErrorIs(t, err, core.ErrCorruptBackup)
	})

	t.Run("Missing Entries Section", func(t *testing.T) {
		path := filepath.Join(dir, "noentries.mxbk")
		writeBackup(t, path, map[string]any{"prefs": map[string]any{}}, nil)

		_, err := Open(path)
		assert.ErrorIs(t, err, core.ErrCorruptBackup)
	})

	t.Run("Invalid Category Prefs", func(t *testing.T) {
		path := filepath.Join(dir, "badcats.mxbk")
		db := testDB()
		db["prefs"] = map[string]any{"pref_categories": "{invalid"}
		writeBackup(t, path, db, nil)

		_, err := Open(path)
		assert.ErrorIs(t, err, core.ErrCorruptBackup)
	})
}

func TestReadAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.mxbk")
	writeBackup(t, path, testDB(), map[string][]byte{"receipt.jpg": []byte("jpegdata")})

	b, err := Open(path)
	require.NoError(t, err)

	data, err := b.ReadAttachment("receipt.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)

	_, err = b.ReadAttachment("missing.png")
	assert.Error(t, err)
}
