package memorix

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvrcunha/mx2md/pkg/core"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch(t, filepath.Join(dir, "old.mxbk"), now.Add(-2*time.Hour))
	touch(t, filepath.Join(dir, "new.mxbk"), now.Add(-time.Minute))
	touch(t, filepath.Join(dir, "newest.txt"), now) // wrong extension
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mxbk"), 0755))

	got, err := Discover(dir, DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.mxbk"), got)
}

func TestDiscover_NoMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.txt"), time.Now())

	_, err := Discover(dir, DefaultPattern)
	assert.ErrorIs(t, err, core.ErrNoBackupFound)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "export.mxbk")
	touch(t, backup, time.Now())

	t.Run("File Used As Is", func(t *testing.T) {
		got, err := Resolve(backup, DefaultPattern)
		require.NoError(t, err)
		assert.Equal(t, backup, got)
	})

	t.Run("Directory Discovers Newest", func(t *testing.T) {
		got, err := Resolve(dir, DefaultPattern)
		require.NoError(t, err)
		assert.Equal(t, backup, got)
	})

	t.Run("Missing Path", func(t *testing.T) {
		_, err := Resolve(filepath.Join(dir, "nope"), DefaultPattern)
		assert.ErrorIs(t, err, core.ErrNoBackupFound)
	})
}
