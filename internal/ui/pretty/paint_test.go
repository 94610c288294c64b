package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/internal/ui/pretty"
	"github.com/yaklabco/livemd/pkg/parser/obsidian"
	"github.com/yaklabco/livemd/pkg/visual"
)

func transform(t *testing.T, source string, cursor visual.Cursor) *visual.Result {
	t.Helper()

	result, err := visual.Transform(obsidian.Parse(source), cursor, visual.DefaultOptions())
	require.NoError(t, err)
	return result
}

func TestPaint_NoColor(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		source string
		cursor visual.Cursor
		want   string
	}{
		{name: "plain", source: "hello", cursor: visual.NoCursor, want: "hello"},
		{name: "hidden markers", source: "**a** and ==b==", cursor: visual.NoCursor, want: "a and b"},
		{name: "multi-line", source: "# T\n\n*x*", cursor: visual.NoCursor, want: "T\n\nx"},
		{name: "caret in text", source: "ab", cursor: visual.Caret(1), want: "a" + pretty.CaretGlyph + "b"},
		{name: "caret at end", source: "ab", cursor: visual.Caret(2), want: "ab" + pretty.CaretGlyph},
		{name: "caret reveals", source: "**a**", cursor: visual.Caret(3), want: "**a" + pretty.CaretGlyph + "**"},
		{name: "selection", source: "abc", cursor: visual.Cursor{Start: 0, End: 2}, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := styles.PaintCursor(transform(t, tt.source, tt.cursor), tt.cursor)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaint_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewStyles(false).Paint(nil))
}

func TestPaint_ColorKeepsText(t *testing.T) {
	t.Parallel()

	source := "# Title\n\n**bold** [[link|alias]] #tag\n\n```go\nfunc main() {}\n```"
	result := transform(t, source, visual.NoCursor)

	painted := pretty.NewStyles(true).Paint(result)
	for _, want := range []string{"Title", "bold", "alias", "tag", "main"} {
		assert.Contains(t, painted, want)
	}
	assert.NotContains(t, painted, "[[")
	assert.Equal(t, strings.Count(result.Text, "\n"), strings.Count(painted, "\n"),
		"painting must not add or drop lines")
}

func TestPaintDiff(t *testing.T) {
	t.Parallel()

	diff := "--- a/n.md\n+++ b/n.md\n@@ -1 +1 @@\n-a\n+**a**\n"
	assert.Equal(t, diff, pretty.NewStyles(false).PaintDiff(diff))
	assert.Empty(t, pretty.NewStyles(false).PaintDiff(""))
}

func TestTableFormatter(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 40)
	out := table.Format(
		[]string{"KIND", "RANGE", "TEXT"},
		[][]string{
			{"Star", "0-2", `"**"`},
			{"Text", "2-3", `"a"`},
			{"Text", "3-60", strings.Repeat("x", 60)},
		},
	)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], " KIND  "))
	assert.True(t, strings.HasPrefix(lines[1], "====="))
	assert.Contains(t, lines[2], `"**"`)
	assert.True(t, strings.HasSuffix(lines[4], "..."), "long cells are truncated")
	for _, line := range lines[2:] {
		assert.LessOrEqual(t, len(line), 40)
	}
}
