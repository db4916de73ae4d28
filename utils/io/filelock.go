package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFileName is the lock taken by a run. Two runs with the same operator
// would race on nonces, so the second one must not start.
const lockFileName = "asistencia-deploy.lock"

// FileLock is an exclusive, non-blocking lock on a file inside a directory.
type FileLock struct {
	lockFile *flock.Flock
	path     string
}

// NewFileLock returns a lock on the run lock file inside dir. The directory
// is created on Lock if it does not exist.
func NewFileLock(dir string) *FileLock {
	lockPath := filepath.Join(dir, lockFileName)
	return &FileLock{
		lockFile: flock.New(lockPath),
		path:     lockPath,
	}
}

// Lock acquires the lock without waiting. It returns an error if another
// process holds it.
func (fl *FileLock) Lock() error {
	dir := filepath.Dir(fl.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for lock file %s: %w", fl.path, err)
	}

	locked, err := fl.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire file lock at %s: %w", fl.path, err)
	}
	if !locked {
		return fmt.Errorf("cannot acquire lock on %s: another deployment is running", fl.path)
	}
	return nil
}

// Unlock releases the lock and removes the lock file.
func (fl *FileLock) Unlock() error {
	if err := fl.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to release file lock at %s: %w", fl.path, err)
	}
	if err := os.Remove(fl.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file %s: %w", fl.path, err)
	}
	return nil
}

func (fl *FileLock) Path() string {
	return fl.path
}

// IsLocked returns true if another process holds the lock.
func (fl *FileLock) IsLocked() bool {
	locked, err := fl.lockFile.TryLock()
	if err != nil {
		return true
	}
	if locked {
		_ = fl.lockFile.Unlock()
		return false
	}
	return true
}
