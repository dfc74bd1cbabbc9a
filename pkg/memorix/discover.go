package memorix

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mvrcunha/mx2md/pkg/core"
)

// DefaultPattern matches Memorix backup exports.
const DefaultPattern = "*" + BackupExt

// Resolve turns the user-supplied input path into a concrete backup file.
// A file is used as-is; a directory is searched for the newest match.
func Resolve(input, pattern string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrNoBackupFound, input)
	}
	if info.IsDir() {
		return Discover(input, pattern)
	}
	return input, nil
}

// Discover returns the backup file in dir with the most recent modification
// time among files matching pattern (a doublestar glob applied to the base
// name). Returns ErrNoBackupFound when nothing matches.
func Discover(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, e.Name())
		if err != nil {
			return "", fmt.Errorf("invalid backup pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = e.Name()
			newestTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("%w: no files matching %q in %s", core.ErrNoBackupFound, pattern, dir)
	}
	return filepath.Join(dir, newest), nil
}
