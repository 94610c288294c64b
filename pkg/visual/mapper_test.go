package visual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/livemd/pkg/visual"
)

func TestOffsetMapper_Bold(t *testing.T) {
	t.Parallel()

	// "**bold**" with both delimiter runs hidden.
	mapper := visual.NewOffsetMapper(8, []visual.Marker{{Start: 0, End: 2}, {Start: 6, End: 8}})
	assert.Equal(t, 8, mapper.SourceLen())
	assert.Equal(t, 4, mapper.TextLen())

	toText := []struct{ original, transformed int }{
		{-3, 0}, {0, 0}, {1, 0}, {2, 0}, {3, 1}, {6, 4}, {7, 4}, {8, 4}, {20, 4},
	}
	for _, tc := range toText {
		assert.Equal(t, tc.transformed, mapper.OriginalToTransformed(tc.original), "original %d", tc.original)
	}

	toSource := []struct{ transformed, original int }{
		{-1, 2}, {0, 2}, {1, 3}, {3, 5}, {4, 8}, {9, 8},
	}
	for _, tc := range toSource {
		assert.Equal(t, tc.original, mapper.TransformedToOriginal(tc.transformed), "transformed %d", tc.transformed)
	}
}

func TestOffsetMapper_Replacements(t *testing.T) {
	t.Parallel()

	// "a #tag b" rendered as "a  tag  b".
	mapper := visual.NewOffsetMapper(8, []visual.Marker{
		{Start: 2, End: 3, Replacement: " "},
		{Start: 6, End: 6, Replacement: " "},
	})
	assert.Equal(t, 9, mapper.TextLen())

	assert.Equal(t, 2, mapper.OriginalToTransformed(2))
	assert.Equal(t, 3, mapper.OriginalToTransformed(3))
	assert.Equal(t, 7, mapper.OriginalToTransformed(6))
	assert.Equal(t, 8, mapper.OriginalToTransformed(7))

	assert.Equal(t, 2, mapper.TransformedToOriginal(2))
	assert.Equal(t, 6, mapper.TransformedToOriginal(6))
	assert.Equal(t, 6, mapper.TransformedToOriginal(7))
	assert.Equal(t, 8, mapper.TransformedToOriginal(9))
}

func TestOffsetMapper_Cursor(t *testing.T) {
	t.Parallel()

	mapper := visual.NewOffsetMapper(8, []visual.Marker{{Start: 0, End: 2}, {Start: 6, End: 8}})

	assert.Equal(t, visual.Cursor{Start: 1, End: 3}, mapper.CursorToTransformed(visual.Cursor{Start: 3, End: 5}))
	assert.Equal(t, visual.Cursor{Start: 3, End: 5}, mapper.CursorToOriginal(visual.Cursor{Start: 1, End: 3}))
	assert.Equal(t, visual.NoCursor, mapper.CursorToTransformed(visual.NoCursor))
	assert.Equal(t, visual.NoCursor, mapper.CursorToOriginal(visual.NoCursor))
}

func TestOffsetMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	sources := []string{
		"**bold** and *it*",
		"# Heading with ==mark==\n\n- one\n- two #tag\n",
		"> [!note]\n> body ^block-1\n",
		"[[Page|Alias]] ![[img.png]] [x](y) [^1] ^[inline]",
		"```go\ncode\n```\n%%hidden%%\n",
	}

	for _, source := range sources {
		result := transform(t, source, visual.NoCursor, visual.DefaultOptions())

		prev := -1
		for o := 0; o <= len(source); o++ {
			got := result.Mapper.OriginalToTransformed(o)
			assert.GreaterOrEqual(t, got, prev, "mapping must be monotonic in %q at %d", source, o)
			prev = got
		}
		assert.Equal(t, len(result.Text), result.Mapper.OriginalToTransformed(len(source)))

		for offset := 0; offset <= len(result.Text); offset++ {
			back := result.Mapper.TransformedToOriginal(offset)
			assert.True(t, back >= 0 && back <= len(source))
		}

		markers := result.Mapper.Markers()
		assert.NotEmpty(t, markers, source)
		for o := 0; o <= len(source); o++ {
			if insideMarker(markers, o) {
				continue
			}
			back := result.Mapper.TransformedToOriginal(result.Mapper.OriginalToTransformed(o))
			assert.Equal(t, o, back, "offset %d in %q", o, source)
		}
	}
}

// insideMarker reports whether o falls in the span of a non-empty marker.
// An elided marker's start maps past it, so it counts as inside.
func insideMarker(markers []visual.Marker, o int) bool {
	for _, m := range markers {
		if m.Start < m.End && m.Start <= o && o < m.End {
			return true
		}
	}
	return false
}

func TestOffsetMapper_TextRoundTrip(t *testing.T) {
	t.Parallel()

	// Every transformed offset outside a replacement survives a round trip.
	result := transform(t, "**a** ==b== [[c|d]] *e*", visual.NoCursor, visual.DefaultOptions())
	assert.Equal(t, "a b d e", result.Text)

	for offset := 0; offset <= len(result.Text); offset++ {
		back := result.Mapper.OriginalToTransformed(result.Mapper.TransformedToOriginal(offset))
		assert.Equal(t, offset, back, "transformed offset %d", offset)
	}
}
