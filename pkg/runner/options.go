// Package runner discovers the notes of a vault and processes them
// concurrently.
package runner

// Options selects the notes of a run and bounds its concurrency.
type Options struct {
	// Paths are notes or folders to scan, resolved against WorkingDir.
	// Empty scans WorkingDir itself.
	Paths []string

	// WorkingDir is usually the vault root; empty means the process
	// working directory. Globs match paths relative to it.
	WorkingDir string

	// Extensions lists the note extensions, lowercase with a leading dot.
	// Empty means DefaultExtensions.
	Extensions []string

	// Include limits the run to notes matching one of these globs.
	Include []string

	// Ignore skips notes and whole folders matching one of these globs.
	// "*" stays within a path segment, "**" crosses segments, and a
	// pattern without a slash also matches base names.
	Ignore []string

	// FollowSymlinks descends into symlinked folders.
	FollowSymlinks bool

	// Jobs bounds the number of notes processed at once; 0 uses one
	// worker per CPU.
	Jobs int
}

// DefaultExtensions returns the extensions of Markdown notes.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
