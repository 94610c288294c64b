package pretty

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/livemd/pkg/visual"
)

// CaretGlyph marks a collapsed cursor in painted output.
const CaretGlyph = "│"

// tagSelection is a pseudo tag for the painted selection.
const tagSelection visual.Tag = "selection"

// Paint renders the transformed text of result with its styles.
func (s *Styles) Paint(result *visual.Result) string {
	return s.PaintCursor(result, visual.NoCursor)
}

// PaintCursor renders result and marks cursor, given in source offsets.
// A caret is drawn as CaretGlyph and a selection is shown reversed.
func (s *Styles) PaintCursor(result *visual.Result, cursor visual.Cursor) string {
	if result == nil {
		return ""
	}

	text := result.Text
	styles := slices.Clone(result.Styles)
	caret := -1

	if cursor.Valid() && result.Mapper != nil {
		mapped := result.Mapper.CursorToTransformed(cursor)
		if mapped.Collapsed() {
			caret = min(mapped.Start, len(text))
		} else {
			styles = append(styles, visual.Style{Start: mapped.Start, End: mapped.End, Tag: tagSelection})
		}
	}

	var sb strings.Builder
	pos := 0
	for _, block := range s.codeRegions(text, styles) {
		s.paintRange(&sb, text, styles, pos, block.start, caret)
		if caret >= block.start && caret < block.end {
			// The caret splits the block; paint it without highlighting.
			s.paintRange(&sb, text, styles, block.start, block.end, caret)
		} else {
			sb.WriteString(block.painted)
		}
		pos = block.end
	}
	s.paintRange(&sb, text, styles, pos, len(text), caret)

	if caret == len(text) {
		sb.WriteString(s.Caret.Render(CaretGlyph))
	}
	return sb.String()
}

// paintRange writes text[lo:hi] split at every style boundary, each
// segment rendered with the composition of the styles covering it.
func (s *Styles) paintRange(sb *strings.Builder, text string, styles []visual.Style, lo, hi, caret int) {
	if lo >= hi {
		return
	}

	bounds := []int{lo, hi}
	for _, st := range styles {
		if st.Start > lo && st.Start < hi {
			bounds = append(bounds, st.Start)
		}
		if st.End > lo && st.End < hi {
			bounds = append(bounds, st.End)
		}
	}
	if caret > lo && caret < hi {
		bounds = append(bounds, caret)
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		if start == caret {
			sb.WriteString(s.Caret.Render(CaretGlyph))
		}
		s.writeSegment(sb, text[start:end], s.compose(styles, start, end))
	}
}

// compose merges the styles covering [start, end). Later styles are nested
// deeper and win over the ones enclosing them.
func (s *Styles) compose(styles []visual.Style, start, end int) *lipgloss.Style {
	var composed *lipgloss.Style
	for i := len(styles) - 1; i >= 0; i-- {
		st := styles[i]
		if st.Start > start || st.End < end {
			continue
		}
		decoration := s.styleFor(st.Tag)
		if composed == nil {
			composed = &decoration
			continue
		}
		merged := composed.Inherit(decoration)
		composed = &merged
	}
	return composed
}

func (s *Styles) styleFor(tag visual.Tag) lipgloss.Style {
	if tag == tagSelection {
		return s.Selection
	}
	return s.ForTag(tag)
}

// writeSegment renders line by line since lipgloss pads multi-line blocks.
func (s *Styles) writeSegment(sb *strings.Builder, segment string, style *lipgloss.Style) {
	if style == nil || !s.colorEnabled {
		sb.WriteString(segment)
		return
	}

	for i, line := range strings.Split(segment, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line != "" {
			sb.WriteString(style.Render(line))
		}
	}
}
