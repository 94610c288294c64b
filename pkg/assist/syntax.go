package assist

import (
	"regexp"
	"strings"

	"github.com/yaklabco/livemd/pkg/visual"
)

// delimiters is the syntax wrapped around an inline selection.
type delimiters struct {
	open  string
	close string
}

//nolint:gochecknoglobals // Style syntax table.
var inlineSyntaxes = map[visual.Tag]delimiters{
	visual.TagBold:           {"**", "**"},
	visual.TagItalic:         {"*", "*"},
	visual.TagStrikethrough:  {"~~", "~~"},
	visual.TagHighlight:      {"==", "=="},
	visual.TagCodeSpan:       {"`", "`"},
	visual.TagComment:        {"%%", "%%"},
	visual.TagInternalLink:   {"[[", "]]"},
	visual.TagEmbed:          {"![[", "]]"},
	visual.TagInlineFootnote: {"^[", "]"},
	visual.TagHashtag:        {"#", ""},
}

// Line prefix patterns, anchored at the start of a line.
//
//nolint:gochecknoglobals // Compiled once.
var (
	headingPrefix = regexp.MustCompile(`^#{1,6}(?:[ \t]+|$)`)
	listPrefix    = regexp.MustCompile(`^(?:[-*+]|[0-9]{1,9}[.)])[ \t]+`)
	quotePrefix   = regexp.MustCompile(`^>[ \t]?`)
	orderedPrefix = regexp.MustCompile(`^[ \t]*([0-9]{1,9})[.)][ \t]`)
	indentPrefix  = regexp.MustCompile(`^(?:\t| {1,4})`)
)

func isPrefixStyle(tag visual.Tag) bool {
	switch tag {
	case visual.TagUnorderedList, visual.TagOrderedList, visual.TagBlockQuote, visual.TagCallout:
		return true
	default:
		return tag.HeadingLevel() > 0
	}
}

func isFenceStyle(tag visual.Tag) bool {
	return tag == visual.TagCodeBlock || tag == visual.TagCommentBlock
}

// replacedPrefix returns the pattern of an existing prefix that applying
// tag replaces instead of nesting inside.
func replacedPrefix(tag visual.Tag) *regexp.Regexp {
	switch {
	case tag.HeadingLevel() > 0:
		return headingPrefix
	case tag == visual.TagUnorderedList || tag == visual.TagOrderedList:
		return listPrefix
	default:
		return nil
	}
}

// Style kinds reported by Styles.
const (
	KindInline = "inline"
	KindLine   = "line"
	KindFence  = "fence"
)

// StyleInfo describes a style the assistant can apply.
type StyleInfo struct {
	Tag   visual.Tag `json:"tag"`
	Kind  string     `json:"kind"`
	Open  string     `json:"open"`
	Close string     `json:"close,omitempty"`
}

// Styles lists every style Apply accepts, inline styles first.
func (a *Assistant) Styles() []StyleInfo {
	inline := []visual.Tag{
		visual.TagBold, visual.TagItalic, visual.TagStrikethrough, visual.TagHighlight,
		visual.TagCodeSpan, visual.TagComment, visual.TagInternalLink, visual.TagEmbed,
		visual.TagInlineFootnote, visual.TagHashtag,
	}

	out := make([]StyleInfo, 0, len(inline)+maxHeadingLevels+6)
	for _, tag := range inline {
		d := inlineSyntaxes[tag]
		out = append(out, StyleInfo{Tag: tag, Kind: KindInline, Open: d.open, Close: d.close})
	}

	for level := 1; level <= maxHeadingLevels; level++ {
		out = append(out, StyleInfo{Tag: visual.HeadingTag(level), Kind: KindLine, Open: strings.Repeat("#", level) + " "})
	}
	out = append(out,
		StyleInfo{Tag: visual.TagUnorderedList, Kind: KindLine, Open: "- "},
		StyleInfo{Tag: visual.TagOrderedList, Kind: KindLine, Open: "1. "},
		StyleInfo{Tag: visual.TagBlockQuote, Kind: KindLine, Open: "> "},
		StyleInfo{Tag: visual.TagCallout, Kind: KindLine, Open: "> [!" + a.opts.CalloutType + "]\n> "},
		StyleInfo{Tag: visual.TagCodeBlock, Kind: KindFence, Open: "```" + a.opts.CodeLanguage, Close: "```"},
		StyleInfo{Tag: visual.TagCommentBlock, Kind: KindFence, Open: "%%", Close: "%%"},
	)
	return out
}

const maxHeadingLevels = 6
