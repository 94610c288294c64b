package notefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// SaveOptions controls how a note is written back.
type SaveOptions struct {
	// Backup keeps a sidecar copy of the first on-disk version.
	Backup bool

	// BackupSuffix is appended to the note path; empty uses DefaultBackupSuffix.
	BackupSuffix string

	// Force skips the concurrent modification check.
	Force bool
}

// SaveResult describes what Save did.
type SaveResult struct {
	// Written is false when the content was unchanged.
	Written bool

	// BackupPath is set when a backup was created by this save.
	BackupPath string
}

// Save writes content back to the note's file atomically and refreshes the
// note's recorded state. It fails with ErrModified when the file changed
// since the note was loaded, unless opts.Force is set.
func Save(ctx context.Context, note *Note, content string, opts SaveOptions) (SaveResult, error) {
	var result SaveResult

	if note.Path == "" {
		return result, ErrNoPath
	}

	if !opts.Force {
		modified, err := note.Modified(ctx)
		if err != nil {
			return result, err
		}
		if modified {
			return result, fmt.Errorf("%w: %s", ErrModified, note.Path)
		}
	}

	if content == note.Content {
		return result, nil
	}

	if opts.Backup {
		backupPath := BackupPath(note.Path, opts.BackupSuffix)
		created, err := CreateBackup(ctx, note.Path, backupPath)
		if err != nil {
			return result, err
		}
		if created {
			result.BackupPath = backupPath
		}
	}

	if err := WriteAtomic(ctx, note.Path, []byte(content), note.Mode.Perm()); err != nil {
		return result, err
	}
	result.Written = true

	refreshed, err := Load(ctx, note.Path)
	if err != nil {
		return result, err
	}
	*note = *refreshed

	return result, nil
}

// WriteAtomic writes content to path atomically using a temp file and rename.
// If mode is 0, DefaultFileMode (0644) is used.
//
// On error, the temp file is cleaned up and the original file remains untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
