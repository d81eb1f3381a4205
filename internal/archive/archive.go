// Package archive rotates the history database out of the way so a fresh
// one is started on the next run.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rename is swapped in tests
var rename = os.Rename

// ArchiveHistory moves the database at dbPath into an "archive" directory
// next to it, named with a timestamp, and returns the new path. SQLite side
// files are moved along; if one of them cannot be moved the archive path is
// still returned together with the error.
func ArchiveHistory(dbPath string) (string, error) {
	// Check if the database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("history database does not exist: %s", dbPath)
	}

	archiveDir := filepath.Join(filepath.Dir(dbPath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(dbPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, time.Now().Format("20060102-150405"), ext))
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, time.Now().Format("20060102-150405.000000"), ext))
	}

	if err := rename(dbPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive history database: %w", err)
	}

	var errs []error
	for _, suffix := range []string{"-journal", "-wal", "-shm"} {
		if _, err := os.Stat(dbPath + suffix); err != nil {
			continue
		}
		if err := rename(dbPath+suffix, archivePath+suffix); err != nil {
			errs = append(errs, fmt.Errorf("failed to archive %s: %w", filepath.Base(dbPath+suffix), err))
		}
	}

	return archivePath, errors.Join(errs...)
}
