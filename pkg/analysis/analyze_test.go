package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vault() []NoteFacts {
	return []NoteFacts{
		{
			Path:     "/vault/Home.md",
			Headings: []string{"Welcome", "Getting Started"},
			Tags:     []string{"index", "Work"},
			Links: []Link{
				{Target: "Plan", Line: 3},
				{Target: "projects/Plan#Goals", Line: 4},
				{Target: "#Getting Started", Line: 5},
				{Target: "Missing", Line: 6},
				{Target: "logo.png", Embed: true, Line: 7},
			},
		},
		{
			Path:     "/vault/projects/Plan.md",
			Headings: []string{"Goals"},
			BlockIDs: []string{"step1"},
			Tags:     []string{"work"},
			Links: []Link{
				{Target: "Home#Nope", Line: 2},
				{Target: "Home", Line: 3},
				{Target: "Plan#^step1", Embed: true, Line: 4},
				{Target: "#^gone", Line: 5},
			},
		},
		{
			Path: "/vault/archive/Plan.md",
			Tags: []string{"old"},
		},
	}
}

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, Totals{}, report.Totals)
	assert.Empty(t, report.Tags)
	assert.Empty(t, report.Notes)
	assert.Empty(t, report.Unresolved)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/vault"
	report := Analyze(vault(), opts)

	assert.Equal(t, Totals{
		Notes:      3,
		Links:      7,
		Embeds:     2,
		Assets:     1,
		Tags:       3,
		Unresolved: 3,
	}, report.Totals)
	assert.True(t, report.Totals.HasUnresolved())
}

func TestAnalyze_Unresolved(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/vault"
	report := Analyze(vault(), opts)

	assert.Equal(t, []UnresolvedLink{
		{Path: "Home.md", Target: "Missing", Line: 6, Reason: ReasonMissingNote},
		{Path: "projects/Plan.md", Target: "Home#Nope", Line: 2, Reason: ReasonMissingHeading},
		{Path: "projects/Plan.md", Target: "#^gone", Line: 5, Reason: ReasonMissingBlock},
	}, report.Unresolved)
}

func TestAnalyze_Tags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sort SortField
		want []TagAnalysis
	}{
		{
			name: "by count",
			sort: SortByCount,
			want: []TagAnalysis{
				{Tag: "work", Count: 2, Notes: []string{"Home.md", "projects/Plan.md"}},
				{Tag: "index", Count: 1, Notes: []string{"Home.md"}},
				{Tag: "old", Count: 1, Notes: []string{"archive/Plan.md"}},
			},
		},
		{
			name: "alphabetical",
			sort: SortByAlpha,
			want: []TagAnalysis{
				{Tag: "index", Count: 1, Notes: []string{"Home.md"}},
				{Tag: "old", Count: 1, Notes: []string{"archive/Plan.md"}},
				{Tag: "work", Count: 2, Notes: []string{"Home.md", "projects/Plan.md"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.WorkingDir = "/vault"
			opts.SortBy = tt.sort
			report := Analyze(vault(), opts)

			assert.Equal(t, tt.want, report.Tags)
		})
	}
}

func TestAnalyze_Notes(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/vault"
	report := Analyze(vault(), opts)

	// A bare "Plan" from Home resolves to the shortest path, while Plan's
	// own "Plan#^step1" resolves to itself.
	assert.Equal(t, []NoteAnalysis{
		{Path: "Home.md", Headings: 2, Links: 4, Embeds: 1, Backlinks: 2, Unresolved: 1},
		{Path: "archive/Plan.md", Backlinks: 1},
		{Path: "projects/Plan.md", Headings: 1, Links: 3, Embeds: 1, Backlinks: 1, Unresolved: 2},
	}, report.Notes)
}

func TestAnalyze_NotesAlpha(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/vault"
	opts.SortBy = SortByAlpha
	report := Analyze(vault(), opts)

	require.Len(t, report.Notes, 3)
	assert.Equal(t, "Home.md", report.Notes[0].Path)
	assert.Equal(t, "archive/Plan.md", report.Notes[1].Path)
	assert.Equal(t, "projects/Plan.md", report.Notes[2].Path)
}

func TestAnalyze_OptionsExclude(t *testing.T) {
	t.Parallel()

	report := Analyze(vault(), Options{SortBy: SortByCount})

	assert.Empty(t, report.Tags)
	assert.Empty(t, report.Notes)
	assert.Empty(t, report.Unresolved)
	assert.Equal(t, 3, report.Totals.Unresolved)
}

func TestNoteKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Home", "home"},
		{"Home.md", "home"},
		{" projects/Plan.markdown ", "projects/plan"},
		{"a.b", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, noteKey(tt.in))
		})
	}
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.False(t, SortField("severity").IsValid())
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	assert.True(t, opts.IncludeTags)
	assert.True(t, opts.IncludeNotes)
	assert.True(t, opts.IncludeUnresolved)
	assert.Equal(t, SortByCount, opts.SortBy)
	assert.True(t, opts.SortDesc)
}
