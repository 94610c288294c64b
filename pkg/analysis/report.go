package analysis

import "time"

// Report contains pre-computed views of a vault.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Tags groups hashtags across notes.
	Tags []TagAnalysis `json:"tags,omitempty"`

	// Notes holds per-note link statistics.
	Notes []NoteAnalysis `json:"notes,omitempty"`

	// Unresolved lists links whose target could not be found.
	Unresolved []UnresolvedLink `json:"unresolved,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Reason explains why a link is unresolved.
type Reason string

const (
	ReasonMissingNote    Reason = "missing-note"
	ReasonMissingHeading Reason = "missing-heading"
	ReasonMissingBlock   Reason = "missing-block"
)

// UnresolvedLink is a link whose target note, heading or block is missing.
type UnresolvedLink struct {
	Path   string `json:"path"`
	Target string `json:"target"`
	Line   int    `json:"line"`
	Embed  bool   `json:"embed,omitempty"`
	Reason Reason `json:"reason"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Notes      int `json:"notes"`
	Links      int `json:"links"`
	Embeds     int `json:"embeds"`
	Assets     int `json:"assets"`
	Tags       int `json:"distinctTags"`
	Unresolved int `json:"unresolved"`
}

// HasUnresolved returns true if any link is unresolved.
func (t Totals) HasUnresolved() bool {
	return t.Unresolved > 0
}

// TagAnalysis contains aggregated data for a single tag.
type TagAnalysis struct {
	Tag   string   `json:"tag"`
	Count int      `json:"count"`
	Notes []string `json:"notes,omitempty"`
}

// NoteAnalysis contains aggregated data for a single note.
type NoteAnalysis struct {
	Path       string `json:"path"`
	Headings   int    `json:"headings"`
	Links      int    `json:"links"`
	Embeds     int    `json:"embeds"`
	Backlinks  int    `json:"backlinks"`
	Unresolved int    `json:"unresolved"`
}
