package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/pkg/parser/obsidian"
	"github.com/yaklabco/livemd/pkg/reporter"
	"github.com/yaklabco/livemd/pkg/visual"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "styled", input: "styled", want: reporter.FormatStyled},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatStyled.IsValid())
	assert.False(t, reporter.Format("table").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func renderReport(t *testing.T, source string, cursor visual.Cursor) *reporter.RenderReport {
	t.Helper()

	result, err := visual.Transform(obsidian.Parse(source), cursor, visual.DefaultOptions())
	require.NoError(t, err)
	return &reporter.RenderReport{Path: "note.md", Mode: visual.ModeLive, Cursor: cursor, Result: result}
}

func newReporter(t *testing.T, format reporter.Format, opts reporter.Options) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	opts.Format = format
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &out, &errOut
}

func TestTextReporter_Render(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatText, reporter.Options{})
	require.NoError(t, rep.Render(context.Background(), renderReport(t, "**bold** [[a|b]]", visual.NoCursor)))
	assert.Equal(t, "bold b\n", out.String())
}

func TestTextReporter_RenderCursor(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatStyled, reporter.Options{ShowCursor: true})
	require.NoError(t, rep.Render(context.Background(), renderReport(t, "*a* b", visual.Caret(5))))
	assert.Equal(t, "a b│\n", out.String())
}

func TestTextReporter_Edit(t *testing.T) {
	t.Parallel()

	edit := &reporter.EditReport{Path: "note.md", Action: "apply", Tag: visual.TagBold, Before: "a", After: "**a**"}

	rep, out, _ := newReporter(t, reporter.FormatText, reporter.Options{})
	require.NoError(t, rep.Edit(context.Background(), edit))
	assert.Equal(t, "**a**", out.String())

	rep, out, _ = newReporter(t, reporter.FormatStyled, reporter.Options{})
	require.NoError(t, rep.Edit(context.Background(), edit))
	assert.Contains(t, out.String(), "+**a**")
}

func TestTextReporter_EditWritten(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.FormatText, reporter.Options{})
	require.NoError(t, rep.Edit(context.Background(), &reporter.EditReport{
		Path: "note.md", Before: "a", After: "b", Written: true, BackupPath: "note.md.bak",
	}))
	assert.Empty(t, out.String())
	assert.Equal(t, "wrote note.md\nbackup note.md.bak\n", errOut.String())
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatDiff, reporter.Options{})
	require.NoError(t, rep.Edit(context.Background(), &reporter.EditReport{
		Path: "note.md", Before: "a\n", After: "==a==\n",
	}))
	assert.Contains(t, out.String(), "--- a/note.md")
	assert.Contains(t, out.String(), "-a")
	assert.Contains(t, out.String(), "+==a==")

	out.Reset()
	require.NoError(t, rep.Render(context.Background(), renderReport(t, "# T\n", visual.NoCursor)))
	assert.Contains(t, out.String(), "-# T")
	assert.Contains(t, out.String(), "+T")
}

func TestDiffReporter_NoChanges(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatDiff, reporter.Options{})
	require.NoError(t, rep.Edit(context.Background(), &reporter.EditReport{Before: "a", After: "a"}))
	assert.Empty(t, out.String())
}

func TestJSONReporter_Render(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatJSON, reporter.Options{Compact: true})
	require.NoError(t, rep.Render(context.Background(), renderReport(t, "**a** b", visual.Caret(7))))

	var got reporter.JSONRender
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "note.md", got.Path)
	assert.Equal(t, visual.ModeLive, got.Mode)
	assert.Equal(t, "a b", got.Text)
	require.NotNil(t, got.Cursor)
	assert.Equal(t, reporter.JSONRange{Start: 3, End: 3}, *got.Cursor)
	require.NotEmpty(t, got.Styles)
	assert.Equal(t, visual.Style{Start: 0, End: 1, Tag: visual.TagBold}, got.Styles[0])
	assert.Equal(t, 1, strings.Count(out.String(), "\n"), "compact output is one line")
}

func TestJSONReporter_Edit(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatJSON, reporter.Options{})
	require.NoError(t, rep.Edit(context.Background(), &reporter.EditReport{
		Action: "toggle", Tag: visual.TagItalic, Before: "a", After: "*a*",
		Selection: visual.Cursor{Start: 1, End: 2},
	}))

	var got reporter.JSONEdit
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "toggle", got.Action)
	assert.Equal(t, visual.TagItalic, got.Tag)
	assert.Equal(t, "*a*", got.Text)
	assert.Equal(t, reporter.JSONRange{Start: 1, End: 2}, got.Selection)
	assert.True(t, got.Changed)
	assert.False(t, got.Written)
}
