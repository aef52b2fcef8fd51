// Package filelock serialises read-modify-write cycles on the tracker
// database between the TUI and concurrent CLI invocations.
package filelock

import (
	"os"
	"path/filepath"
)

const lockFileMode = 0o600

// Lock takes an exclusive advisory lock on path, creating the file and its
// directory if needed. It blocks until the lock is free. The returned
// function releases it.
func Lock(path string) (unlock func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path from config
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// Noop returns an unlock function for callers running without a lock file.
func Noop() (func() error, error) {
	return func() error { return nil }, nil
}
