package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mvrcunha/mx2md/pkg/core"
)

const lockFile = "sync.lock"

// Lock takes the advisory run lock inside the mirror root and returns the
// release function. An existing lock file refuses the run with ErrLocked
// wrapped in the returned error; a lock left by a crashed run must be
// removed by hand (the manifest-last invariant makes the retry safe).
func Lock(root string) (func(), error) {
	dir := filepath.Join(root, SystemDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", SystemDir, err)
	}

	path := filepath.Join(dir, lockFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s exists, remove it if no other run is active", core.ErrLocked, path)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	_ = f.Close()

	return func() { _ = os.Remove(path) }, nil
}
