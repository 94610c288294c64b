package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts tags by occurrences and notes by backlinks.
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeTags includes the per-tag analysis.
	IncludeTags bool

	// IncludeNotes includes the per-note analysis.
	IncludeNotes bool

	// IncludeUnresolved includes the list of unresolved links.
	IncludeUnresolved bool

	// SortBy specifies how to sort Tags and Notes.
	SortBy SortField

	// SortDesc sorts counts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the vault root. Note paths are made relative to it and
	// path-qualified links resolve against it.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeTags:       true,
		IncludeNotes:      true,
		IncludeUnresolved: true,
		SortBy:            SortByCount,
		SortDesc:          true,
	}
}
