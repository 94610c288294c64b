package mdast

import "strconv"

// ElementKind identifies the type of a parse tree node.
type ElementKind uint8

// Block-level kinds.
const (
	ElementDocument ElementKind = iota
	ElementParagraph
	ElementHeading
	ElementBlockQuote
	ElementCallout
	ElementCommentBlock
	ElementCodeBlock
	ElementFootnoteDefinition
	ElementListItem
	ElementHorizontalRule

	// Inline kinds.
	ElementBold
	ElementItalic
	ElementStrikethrough
	ElementHighlight
	ElementComment
	ElementCodeSpan
	ElementInternalLink
	ElementEmbed
	ElementInlineLink
	ElementFootnoteLink
	ElementInlineFootnote
	ElementHashtag
	ElementBlockID

	// Leaf kinds. Every byte of the source belongs to exactly one leaf.
	ElementText
	ElementSyntax
	ElementLinkTarget

	elementKindCount
)

//nolint:gochecknoglobals // Lookup table for String.
var elementKindNames = [elementKindCount]string{
	ElementDocument:           "Document",
	ElementParagraph:          "Paragraph",
	ElementHeading:            "Heading",
	ElementBlockQuote:         "BlockQuote",
	ElementCallout:            "Callout",
	ElementCommentBlock:       "CommentBlock",
	ElementCodeBlock:          "CodeBlock",
	ElementFootnoteDefinition: "FootnoteDefinition",
	ElementListItem:           "ListItem",
	ElementHorizontalRule:     "HorizontalRule",
	ElementBold:               "Bold",
	ElementItalic:             "Italic",
	ElementStrikethrough:      "Strikethrough",
	ElementHighlight:          "Highlight",
	ElementComment:            "Comment",
	ElementCodeSpan:           "CodeSpan",
	ElementInternalLink:       "InternalLink",
	ElementEmbed:              "Embed",
	ElementInlineLink:         "InlineLink",
	ElementFootnoteLink:       "FootnoteLink",
	ElementInlineFootnote:     "InlineFootnote",
	ElementHashtag:            "Hashtag",
	ElementBlockID:            "BlockID",
	ElementText:               "Text",
	ElementSyntax:             "Syntax",
	ElementLinkTarget:         "LinkTarget",
}

func (k ElementKind) String() string {
	if k < elementKindCount {
		return elementKindNames[k]
	}
	return "ElementKind(" + strconv.Itoa(int(k)) + ")"
}

// ElementKindCount is the number of defined element kinds. Tables indexed
// by ElementKind use it as their length.
const ElementKindCount = int(elementKindCount)

// IsBlock returns true for block-level kinds, including the document.
func (k ElementKind) IsBlock() bool {
	return k <= ElementHorizontalRule
}

// IsInline returns true for inline container kinds.
func (k ElementKind) IsInline() bool {
	return k >= ElementBold && k <= ElementBlockID
}

// IsLeaf returns true for kinds that never have children.
func (k ElementKind) IsLeaf() bool {
	return k >= ElementText && k < elementKindCount
}
