// Package notefile loads and saves Markdown notes safely. It tracks the
// content hash seen at load time so that a save never clobbers a note that
// changed on disk in the meantime.
package notefile

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the note changed on disk after it was loaded.
	ErrModified = errors.New("note modified on disk since it was loaded")

	// ErrNoPath indicates a note without a backing file was saved.
	ErrNoPath = errors.New("note has no path")
)

// Note is a Markdown note and the state of its file when it was read.
type Note struct {
	// Path is the file path, empty for notes read from a stream.
	Path string

	// Content is the note source.
	Content string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the content at load time.
	Hash [32]byte
}

// Load reads the note at path.
func Load(ctx context.Context, path string) (*Note, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load note: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Note{
		Path:    path,
		Content: string(content),
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Read reads a note from r. The note has no path and cannot be saved.
func Read(r io.Reader) (*Note, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}

	return &Note{
		Content: string(content),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Modified reports whether the file changed since the note was loaded.
//
// The check uses a two-tier approach:
//  1. Quick check: compare mod time and size
//  2. Hash check: re-read and hash content
func (n *Note) Modified(ctx context.Context) (bool, error) {
	if n.Path == "" {
		return false, ErrNoPath
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(n.Path)
	if err != nil {
		if os.IsNotExist(err) {
			// A deleted file counts as modified.
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", n.Path, err)
	}

	if !stat.ModTime().Equal(n.ModTime) || stat.Size() != n.Size {
		return true, nil
	}

	content, err := os.ReadFile(n.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", n.Path, err)
	}

	return sha256.Sum256(content) != n.Hash, nil
}
