package assist

import (
	"slices"

	"github.com/yaklabco/livemd/pkg/visual"
)

// Process reports the styles of every construct enclosing sel, outermost
// first. A caret at the edge of a construct counts as inside it.
func (a *Assistant) Process(text string, sel visual.Cursor) []visual.Tag {
	if checkSelection(text, sel) != nil {
		return nil
	}

	tree := a.parser.Parse(text)
	var tags []visual.Tag
	for _, id := range tree.Enclosing(sel.Start, sel.End) {
		if tag, ok := visual.TagOf(tree, id); ok && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ActiveStyles reports the styles of a rendered result that cover sel,
// given in source offsets. A caret is covered by a style starting at or
// before it and ending after it. Revealed markup is not a style.
func ActiveStyles(result *visual.Result, sel visual.Cursor) []visual.Tag {
	if result == nil || !sel.Valid() {
		return nil
	}

	mapped := result.Mapper.CursorToTransformed(sel)

	var tags []visual.Tag
	for _, style := range result.Styles {
		if style.Tag == visual.TagMarkup || slices.Contains(tags, style.Tag) {
			continue
		}
		covered := style.Start <= mapped.Start && mapped.End <= style.End
		if mapped.Collapsed() {
			covered = style.Start <= mapped.Start && mapped.Start < style.End
		}
		if covered {
			tags = append(tags, style.Tag)
		}
	}
	return tags
}
