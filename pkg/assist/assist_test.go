package assist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/pkg/assist"
	"github.com/yaklabco/livemd/pkg/visual"
)

func sel(start, end int) visual.Cursor {
	return visual.Cursor{Start: start, End: end}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		sel     visual.Cursor
		tag     visual.Tag
		want    string
		wantSel visual.Cursor
	}{
		{"bold", "a bold b", sel(2, 6), visual.TagBold, "a **bold** b", sel(4, 8)},
		{"italic at caret", "ab", visual.Caret(1), visual.TagItalic, "a**b", visual.Caret(2)},
		{"highlight", "x", sel(0, 1), visual.TagHighlight, "==x==", sel(2, 3)},
		{"wikilink", "Note", sel(0, 4), visual.TagInternalLink, "[[Note]]", sel(2, 6)},
		{"hashtag has no closer", "x", sel(0, 1), visual.TagHashtag, "#x", sel(1, 2)},
		{"unordered list per line", "one\ntwo", sel(0, 7), visual.TagUnorderedList, "- one\n- two", sel(2, 11)},
		{"ordered list numbered", "a\nb\nc", sel(0, 5), visual.TagOrderedList, "1. a\n2. b\n3. c", sel(3, 14)},
		{"ordered list continues", "1. a\nb", visual.Caret(5), visual.TagOrderedList, "1. a\n2. b", visual.Caret(8)},
		{"heading level replaced", "# T", visual.Caret(2), visual.HeadingTag(2), "## T", visual.Caret(3)},
		{"list type replaced", "1. a", visual.Caret(3), visual.TagUnorderedList, "- a", visual.Caret(2)},
		{"quote keeps indent", "  x", sel(2, 3), visual.TagBlockQuote, "  > x", sel(4, 5)},
		{"selection ending at line start", "a\nb", sel(0, 2), visual.TagBlockQuote, "> a\nb", sel(2, 4)},
		{"callout", "body", visual.Caret(0), visual.TagCallout, "> [!note]\n> body", visual.Caret(12)},
		{"code block", "a\ncode\nb", sel(2, 6), visual.TagCodeBlock, "a\n```\ncode\n```\nb", sel(6, 10)},
		{"code block on empty buffer", "", visual.Caret(0), visual.TagCodeBlock, "```\n\n```", visual.Caret(4)},
		{"comment block", "x", sel(0, 1), visual.TagCommentBlock, "%%\nx\n%%", sel(3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, gotSel, err := assist.Apply(tt.text, tt.sel, tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSel, gotSel)
		})
	}
}

func TestApply_CodeLanguage(t *testing.T) {
	t.Parallel()

	a := assist.New(assist.Options{CodeLanguage: "go", CalloutType: "tip"}, nil)

	got, _, err := a.Apply("x := 1", sel(0, 6), visual.TagCodeBlock)
	require.NoError(t, err)
	assert.Equal(t, "```go\nx := 1\n```", got)

	got, _, err = a.Apply("t", visual.Caret(0), visual.TagCallout)
	require.NoError(t, err)
	assert.Equal(t, "> [!tip]\n> t", got)
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := assist.Apply("x", visual.Caret(0), "sparkles")
	require.ErrorIs(t, err, assist.ErrUnsupportedStyle)

	got, gotSel, err := assist.Apply("x", sel(0, 5), visual.TagBold)
	require.ErrorIs(t, err, assist.ErrSelection)
	assert.Equal(t, "x", got)
	assert.Equal(t, sel(0, 5), gotSel)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		sel     visual.Cursor
		tag     visual.Tag
		want    string
		wantSel visual.Cursor
	}{
		{"bold selection", "**bold**", sel(2, 6), visual.TagBold, "bold", sel(0, 4)},
		{"bold caret", "a **b** c", visual.Caret(4), visual.TagBold, "a b c", visual.Caret(2)},
		{"innermost match", "**a *b* c**", visual.Caret(5), visual.TagItalic, "**a b c**", visual.Caret(4)},
		{"heading any level", "## Title", visual.Caret(5), visual.HeadingTag(1), "Title", visual.Caret(2)},
		{"list items", "- a\n- b", sel(0, 7), visual.TagUnorderedList, "a\nb", sel(0, 3)},
		{"ordered item", "1. a", visual.Caret(3), visual.TagOrderedList, "a", visual.Caret(0)},
		{"ordered items", "1. a\n2. b\n3. c", sel(0, 14), visual.TagOrderedList, "a\nb\nc", sel(0, 5)},
		{"block quote", "> a\n> b", sel(2, 7), visual.TagBlockQuote, "a\nb", sel(0, 3)},
		{"code block", "```go\nx\n```", visual.Caret(6), visual.TagCodeBlock, "x", visual.Caret(0)},
		{"wikilink keeps alias", "[[Page|Alias]]", visual.Caret(8), visual.TagInternalLink, "Alias", visual.Caret(1)},
		{"hashtag", "a #tag", visual.Caret(4), visual.TagHashtag, "a tag", visual.Caret(3)},
		{"inline link", "[site](http://x.y)", visual.Caret(2), visual.TagInlineLink, "site", visual.Caret(1)},
		{"unflanked delimiters by pattern", "** a **", sel(2, 5), visual.TagBold, " a ", sel(0, 3)},
		{"selected delimiters by pattern", "** a **", sel(0, 7), visual.TagBold, " a ", sel(0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, gotSel, err := assist.Remove(tt.text, tt.sel, tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSel, gotSel)
		})
	}
}

func TestRemove_NoStyledRange(t *testing.T) {
	t.Parallel()

	got, gotSel, err := assist.Remove("plain", sel(0, 5), visual.TagBold)
	require.ErrorIs(t, err, assist.ErrNoStyledRange)
	assert.Equal(t, "plain", got)
	assert.Equal(t, sel(0, 5), gotSel)
}

func TestApplyRemove_RoundTrip(t *testing.T) {
	t.Parallel()

	tags := []visual.Tag{
		visual.TagBold, visual.TagItalic, visual.TagStrikethrough,
		visual.TagHighlight, visual.TagCodeSpan, visual.TagInternalLink,
	}
	for _, tag := range tags {
		text, s, err := assist.Apply("one word two", sel(4, 8), tag)
		require.NoError(t, err, tag)

		back, backSel, err := assist.Remove(text, s, tag)
		require.NoError(t, err, tag)
		assert.Equal(t, "one word two", back, tag)
		assert.Equal(t, sel(4, 8), backSel, tag)
	}

	lists := []visual.Tag{visual.TagOrderedList, visual.TagUnorderedList}
	for _, tag := range lists {
		text, s, err := assist.Apply("a\nb\nc", sel(0, 5), tag)
		require.NoError(t, err, tag)

		back, backSel, err := assist.Remove(text, s, tag)
		require.NoError(t, err, tag)
		assert.Equal(t, "a\nb\nc", back, tag)
		assert.Equal(t, sel(0, 5), backSel, tag)
	}
}

func TestToggle(t *testing.T) {
	t.Parallel()

	got, gotSel, err := assist.Toggle("**b**", visual.Caret(2), visual.TagBold)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Equal(t, visual.Caret(0), gotSel)

	got, gotSel, err = assist.Toggle("b", sel(0, 1), visual.TagItalic)
	require.NoError(t, err)
	assert.Equal(t, "*b*", got)
	assert.Equal(t, sel(1, 2), gotSel)

	got, _, err = assist.Toggle("# T", visual.Caret(2), visual.HeadingTag(3))
	require.NoError(t, err)
	assert.Equal(t, "### T", got)
}

func TestProcess(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]visual.Tag{visual.TagCallout, visual.TagBold},
		assist.Process("> [!note] **x**", visual.Caret(12)))
	assert.Equal(t,
		[]visual.Tag{visual.HeadingTag(1), visual.TagItalic},
		assist.Process("# a *b*", visual.Caret(5)))
	assert.Empty(t, assist.Process("plain", visual.Caret(2)))
	assert.Nil(t, assist.Process("x", sel(3, 4)))
}

func TestActiveStyles(t *testing.T) {
	t.Parallel()

	engine := visual.NewEngine(nil, visual.DefaultOptions(), nil)
	result := engine.Render("**bold** x", visual.NoCursor)

	assert.Equal(t, []visual.Tag{visual.TagBold}, assist.ActiveStyles(result, visual.Caret(3)))
	assert.Equal(t, []visual.Tag{visual.TagBold}, assist.ActiveStyles(result, sel(2, 6)))
	assert.Empty(t, assist.ActiveStyles(result, visual.Caret(9)))
	assert.Nil(t, assist.ActiveStyles(nil, visual.Caret(0)))
	assert.Nil(t, assist.ActiveStyles(result, visual.NoCursor))
}

func TestIndentOutdent(t *testing.T) {
	t.Parallel()

	got, gotSel, err := assist.Indent("a\nb", sel(0, 3))
	require.NoError(t, err)
	assert.Equal(t, "\ta\n\tb", got)
	assert.Equal(t, sel(1, 5), gotSel)

	got, gotSel, err = assist.Outdent("\ta\n    b", sel(0, 8))
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
	assert.Equal(t, sel(0, 3), gotSel)

	got, gotSel, err = assist.Outdent("a", visual.Caret(0))
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, visual.Caret(0), gotSel)
}

func TestStyles(t *testing.T) {
	t.Parallel()

	a := assist.New(assist.Options{CalloutType: "tip", CodeLanguage: "go"}, nil)
	styles := a.Styles()

	byTag := make(map[visual.Tag]assist.StyleInfo, len(styles))
	for _, info := range styles {
		byTag[info.Tag] = info
	}

	assert.Equal(t, assist.StyleInfo{Tag: visual.TagBold, Kind: assist.KindInline, Open: "**", Close: "**"}, byTag[visual.TagBold])
	assert.Equal(t, "### ", byTag[visual.HeadingTag(3)].Open)
	assert.Equal(t, "> [!tip]\n> ", byTag[visual.TagCallout].Open)
	assert.Equal(t, "```go", byTag[visual.TagCodeBlock].Open)
	assert.Equal(t, assist.KindFence, byTag[visual.TagCommentBlock].Kind)

	for _, info := range styles {
		_, _, err := a.Apply("x", visual.Cursor{Start: 0, End: 1}, info.Tag)
		require.NoError(t, err, "tag %s", info.Tag)
	}
}
