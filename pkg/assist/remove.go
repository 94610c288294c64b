package assist

import (
	"regexp"
	"strings"

	"github.com/yaklabco/livemd/pkg/fix"
	"github.com/yaklabco/livemd/pkg/mdast"
	"github.com/yaklabco/livemd/pkg/visual"
)

// removeFromTree adds edits deleting the syntax of tag. Inline styles are
// removed from the innermost matching construct enclosing sel; block
// styles from every matching block that sel touches.
func removeFromTree(builder *fix.EditBuilder, tree *mdast.Tree, sel visual.Cursor, tag visual.Tag) {
	if isPrefixStyle(tag) || isFenceStyle(tag) {
		blocks := tree.FindAll(func(n *mdast.Node) bool {
			return n.Kind.IsBlock() && n.Kind != mdast.ElementDocument &&
				n.Start <= sel.End && sel.Start <= n.End
		})
		for _, id := range blocks {
			if nodeTag, ok := visual.TagOf(tree, id); ok && sameStyle(nodeTag, tag) {
				deleteSyntax(builder, tree, id)
			}
		}
		return
	}

	path := tree.Enclosing(sel.Start, sel.End)
	for i := len(path) - 1; i >= 0; i-- {
		if nodeTag, ok := visual.TagOf(tree, path[i]); ok && nodeTag == tag {
			deleteSyntax(builder, tree, path[i])
			return
		}
	}
}

// deleteSyntax deletes the markup of a node: the spans its processor would
// hide, plus the space after a list bullet and the number of an ordered
// item.
func deleteSyntax(builder *fix.EditBuilder, tree *mdast.Tree, id mdast.NodeID) {
	node := tree.Node(id)

	if node.Kind == mdast.ElementListItem {
		for _, child := range tree.Children(id) {
			c := tree.Node(child)
			if c.Kind != mdast.ElementSyntax {
				continue
			}
			end := c.End
			for end < node.End && (tree.Source[end] == ' ' || tree.Source[end] == '\t') {
				end++
			}
			builder.Delete(c.Start, end)
			return
		}
		return
	}

	opts := visual.DefaultOptions()
	opts.HashtagPadding = false
	markers, err := visual.ProcessorFor(node.Kind).Markers(tree, id, opts)
	if err != nil {
		return
	}
	for _, marker := range markers {
		if marker.End > marker.Start {
			builder.Delete(marker.Start, marker.End)
		}
	}
}

// removeByPattern is used when the parser found no construct: delimiters
// directly around or at the edges of the selection, or line prefixes.
func removeByPattern(builder *fix.EditBuilder, text string, sel visual.Cursor, tag visual.Tag) {
	if pattern := linePattern(tag); pattern != nil {
		lines := mdast.BuildLines(text)
		first, last := lineRange(lines, sel)
		for i := first; i <= last; i++ {
			content := lines.Content(text, i)
			indent := indentWidth(content)
			if n := len(pattern.FindString(content[indent:])); n > 0 {
				at := lines[i].StartOffset + indent
				builder.Delete(at, at+n)
			}
		}
		return
	}

	syntax, ok := inlineSyntaxes[tag]
	if !ok || syntax.close == "" {
		return
	}
	open, closing := len(syntax.open), len(syntax.close)

	if sel.Start >= open && sel.End+closing <= len(text) &&
		text[sel.Start-open:sel.Start] == syntax.open && text[sel.End:sel.End+closing] == syntax.close {
		builder.Delete(sel.Start-open, sel.Start)
		builder.Delete(sel.End, sel.End+closing)
		return
	}

	selected := text[sel.Start:sel.End]
	if len(selected) >= open+closing &&
		strings.HasPrefix(selected, syntax.open) && strings.HasSuffix(selected, syntax.close) {
		builder.Delete(sel.Start, sel.Start+open)
		builder.Delete(sel.End-closing, sel.End)
	}
}

func linePattern(tag visual.Tag) *regexp.Regexp {
	switch {
	case tag.HeadingLevel() > 0:
		return headingPrefix
	case tag == visual.TagUnorderedList || tag == visual.TagOrderedList:
		return listPrefix
	case tag == visual.TagBlockQuote || tag == visual.TagCallout:
		return quotePrefix
	default:
		return nil
	}
}
