package testkit

import (
	"fmt"
	"os"
	"path/filepath"
)

// TestDirectory returns the default test directory under os.TempDir().
func TestDirectory() string {
	return filepath.Join(os.TempDir(), DefaultDirectoryName)
}

// ResetDirectory removes everything inside dir and makes sure dir exists.
// A missing dir is created.
func ResetDirectory(dir string) error {
	if err := checkDirectory(dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to list test directory: %w", err)
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create test directory: %w", err)
	}

	return nil
}
