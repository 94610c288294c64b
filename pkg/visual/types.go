// Package visual turns a parse tree into the reduced text shown while
// editing, plus style annotations and an offset mapping between the two.
//
// Decorative syntax (emphasis delimiters, heading hashes, link brackets)
// is hidden unless the cursor is inside the construct that owns it, so the
// user only sees raw Markdown where they are typing.
package visual

import (
	"strconv"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// Marker is a source span that may be hidden. An empty Replacement elides
// the span; a zero-width marker with a Replacement inserts text.
type Marker struct {
	Start       int
	End         int
	Replacement string
}

// Tag names a visual decoration understood by the rendering surface.
type Tag string

// Style tags.
const (
	TagBold               Tag = "bold"
	TagItalic             Tag = "italic"
	TagStrikethrough      Tag = "strikethrough"
	TagHighlight          Tag = "highlight"
	TagComment            Tag = "comment"
	TagCommentBlock       Tag = "comment-block"
	TagCodeSpan           Tag = "code-span"
	TagCodeBlock          Tag = "code-block"
	TagBlockQuote         Tag = "block-quote"
	TagCallout            Tag = "callout"
	TagInternalLink       Tag = "internal-link"
	TagEmbed              Tag = "embed"
	TagInlineLink         Tag = "inline-link"
	TagFootnoteLink       Tag = "footnote-link"
	TagFootnoteDefinition Tag = "footnote-definition"
	TagInlineFootnote     Tag = "inline-footnote"
	TagHashtag            Tag = "hashtag"
	TagBlockID            Tag = "block-id"
	TagHorizontalRule     Tag = "horizontal-rule"
	TagUnorderedList      Tag = "unordered-list"
	TagOrderedList        Tag = "ordered-list"

	// TagMarkup marks syntax that is shown because the cursor is near it.
	TagMarkup Tag = "markup"
)

const maxHeadingLevel = 6

// HeadingTag returns the tag for a heading level, clamped to 1..6.
func HeadingTag(level int) Tag {
	level = min(max(level, 1), maxHeadingLevel)
	return Tag("heading-" + strconv.Itoa(level))
}

// HeadingLevel returns the level of a heading tag, or 0 for other tags.
func (t Tag) HeadingLevel() int {
	const prefix = "heading-"
	if len(t) != len(prefix)+1 || string(t[:len(prefix)]) != prefix {
		return 0
	}
	level := int(t[len(prefix)] - '0')
	if level < 1 || level > maxHeadingLevel {
		return 0
	}
	return level
}

// Style is a decoration over a range. Offsets are source offsets when
// produced by a processor and transformed offsets in a Result.
type Style struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Tag     Tag    `json:"tag"`
	Payload string `json:"payload,omitempty"`
}

// Cursor is a caret (Start == End) or a selection in source offsets.
type Cursor struct {
	Start int
	End   int
}

// NoCursor is a cursor that lies outside every construct.
//
//nolint:gochecknoglobals // Sentinel value.
var NoCursor = Cursor{Start: -1, End: -1}

// Caret returns a collapsed cursor at offset.
func Caret(offset int) Cursor {
	return Cursor{Start: offset, End: offset}
}

// Collapsed reports whether the cursor is a caret.
func (c Cursor) Collapsed() bool {
	return c.Start == c.End
}

// Valid reports whether the cursor points into the buffer.
func (c Cursor) Valid() bool {
	return c.Start >= 0 && c.End >= c.Start
}

// Mode selects how markers are hidden.
type Mode string

// Render modes.
const (
	// ModeLive hides markers except around the cursor.
	ModeLive Mode = "live"
	// ModeSource never hides markers.
	ModeSource Mode = "source"
	// ModeReading always hides markers.
	ModeReading Mode = "reading"
)

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool {
	switch m {
	case ModeLive, ModeSource, ModeReading:
		return true
	default:
		return false
	}
}

// Options configures processors and the engine.
type Options struct {
	Mode Mode

	// BulletGlyph replaces unordered list bullets.
	BulletGlyph string

	// HashtagPadding replaces the '#' of a hashtag with a space and adds a
	// space after it, instead of eliding the '#'.
	HashtagPadding bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Mode:           ModeLive,
		BulletGlyph:    "•",
		HashtagPadding: true,
	}
}

// tagFor maps inline and block kinds with a fixed tag.
//
//nolint:gochecknoglobals // Lookup table.
var tagFor = map[mdast.ElementKind]Tag{
	mdast.ElementBold:               TagBold,
	mdast.ElementItalic:             TagItalic,
	mdast.ElementStrikethrough:      TagStrikethrough,
	mdast.ElementHighlight:          TagHighlight,
	mdast.ElementComment:            TagComment,
	mdast.ElementCodeSpan:           TagCodeSpan,
	mdast.ElementCommentBlock:       TagCommentBlock,
	mdast.ElementCodeBlock:          TagCodeBlock,
	mdast.ElementCallout:            TagCallout,
	mdast.ElementInternalLink:       TagInternalLink,
	mdast.ElementEmbed:              TagEmbed,
	mdast.ElementInlineLink:         TagInlineLink,
	mdast.ElementFootnoteLink:       TagFootnoteLink,
	mdast.ElementFootnoteDefinition: TagFootnoteDefinition,
	mdast.ElementInlineFootnote:     TagInlineFootnote,
	mdast.ElementHashtag:            TagHashtag,
	mdast.ElementBlockID:            TagBlockID,
	mdast.ElementHorizontalRule:     TagHorizontalRule,
}
