package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created inside an output directory while a
// run is writing to it.
const LockFileName = ".autosub.lock"

// ErrLocked reports that another run holds the output directory lock.
var ErrLocked = errors.New("output directory is locked by another run")

// Stem returns the final path element without its extension. It accepts
// filesystem paths and URL-like strings alike. Names made only of an
// extension (".mp4") keep the full base name.
func Stem(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "." || base == string(filepath.Separator) {
		return "video"
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(stem) == "" {
		return base
	}
	return stem
}

// WriteFileAtomic writes data to a temporary sibling of path and renames it
// into place, replacing any existing file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// DirLock is an exclusive advisory lock on a directory.
type DirLock struct {
	lock *flock.Flock
}

// LockDir takes a non-blocking exclusive lock on dir. It returns ErrLocked
// when another process already holds it.
func LockDir(dir string) (*DirLock, error) {
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &DirLock{lock: lock}, nil
}

// Path returns the lock file location.
func (l *DirLock) Path() string {
	if l == nil || l.lock == nil {
		return ""
	}
	return l.lock.Path()
}

// Unlock releases the lock and removes the lock file.
func (l *DirLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	path := l.lock.Path()
	if err := l.lock.Unlock(); err != nil {
		return err
	}
	_ = os.Remove(path)
	return nil
}
