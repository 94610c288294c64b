// Package assist implements the editing actions behind a formatting
// toolbar: applying and removing a style's Markdown syntax around a
// selection, and reporting which styles are active at the cursor.
//
// Every action takes and returns a selection in buffer offsets. After an
// edit the selection is re-anchored by the length of the syntax that was
// inserted or removed, so it keeps covering the same content.
package assist

import (
	"errors"
	"fmt"

	"github.com/yaklabco/livemd/pkg/fix"
	"github.com/yaklabco/livemd/pkg/parser/obsidian"
	"github.com/yaklabco/livemd/pkg/visual"
)

// Errors returned by editing actions.
var (
	ErrUnsupportedStyle = errors.New("unsupported style")
	ErrNoStyledRange    = errors.New("no styled range at selection")
	ErrSelection        = errors.New("selection out of range")
)

// Options configures an Assistant.
type Options struct {
	// CalloutType is the type written when applying a callout.
	CalloutType string

	// CodeLanguage is the info string written when fencing a code block.
	CodeLanguage string

	// Indent is the text added per level by Indent.
	Indent string
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{
		CalloutType: "note",
		Indent:      "\t",
	}
}

// Assistant applies and removes styles. It holds no per-buffer state.
type Assistant struct {
	opts   Options
	parser *obsidian.Parser
}

// New creates an Assistant. A nil parser uses default parser options.
func New(opts Options, parser *obsidian.Parser) *Assistant {
	if parser == nil {
		parser = obsidian.New(obsidian.Options{})
	}
	if opts.CalloutType == "" {
		opts.CalloutType = DefaultOptions().CalloutType
	}
	if opts.Indent == "" {
		opts.Indent = DefaultOptions().Indent
	}
	return &Assistant{opts: opts, parser: parser}
}

//nolint:gochecknoglobals // Shared stateless default.
var defaultAssistant = New(DefaultOptions(), nil)

// Apply inserts the syntax of tag around sel using default options.
func Apply(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	return defaultAssistant.Apply(text, sel, tag)
}

// Remove strips the syntax of tag at sel using default options.
func Remove(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	return defaultAssistant.Remove(text, sel, tag)
}

// Toggle removes tag when it is active at sel and applies it otherwise.
func Toggle(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	return defaultAssistant.Toggle(text, sel, tag)
}

// Process reports the styles enclosing sel using default options.
func Process(text string, sel visual.Cursor) []visual.Tag {
	return defaultAssistant.Process(text, sel)
}

// Apply inserts the syntax of tag around sel. Block styles prefix every
// line touched by the selection, code and comment blocks are fenced, and
// inline styles wrap the selection in delimiters.
func (a *Assistant) Apply(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	if err := checkSelection(text, sel); err != nil {
		return text, sel, err
	}

	switch {
	case isPrefixStyle(tag):
		return a.applyPrefix(text, sel, tag)
	case isFenceStyle(tag):
		return a.applyFence(text, sel, tag)
	}

	syntax, ok := inlineSyntaxes[tag]
	if !ok {
		return text, sel, fmt.Errorf("%w: %q", ErrUnsupportedStyle, tag)
	}
	return applyInline(text, sel, syntax)
}

// Remove strips the syntax of tag from the construct enclosing sel, or
// from every block of that style touched by sel.
func (a *Assistant) Remove(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	if err := checkSelection(text, sel); err != nil {
		return text, sel, err
	}
	if !isPrefixStyle(tag) && !isFenceStyle(tag) {
		if _, ok := inlineSyntaxes[tag]; !ok && tag != visual.TagInlineLink && tag != visual.TagFootnoteLink {
			return text, sel, fmt.Errorf("%w: %q", ErrUnsupportedStyle, tag)
		}
	}

	tree := a.parser.Parse(text)
	builder := fix.NewEditBuilder()
	removeFromTree(builder, tree, sel, tag)
	if builder.Len() == 0 {
		removeByPattern(builder, text, sel, tag)
	}
	if builder.Len() == 0 {
		return text, sel, fmt.Errorf("%w: %q", ErrNoStyledRange, tag)
	}

	return commit(text, sel, builder)
}

// Toggle removes tag when it is active at sel and applies it otherwise.
// Toggling a heading level on a heading of another level changes the level.
func (a *Assistant) Toggle(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	for _, active := range a.Process(text, sel) {
		if active == tag {
			return a.Remove(text, sel, tag)
		}
	}
	return a.Apply(text, sel, tag)
}

func checkSelection(text string, sel visual.Cursor) error {
	if sel.Start < 0 || sel.End < sel.Start || sel.End > len(text) {
		return fmt.Errorf("%w: [%d,%d) in %d bytes", ErrSelection, sel.Start, sel.End, len(text))
	}
	return nil
}

// commit applies the builder's edits and re-anchors sel.
func commit(text string, sel visual.Cursor, builder *fix.EditBuilder) (string, visual.Cursor, error) {
	out, edits, err := builder.Apply(text)
	if err != nil {
		return text, sel, fmt.Errorf("apply edits: %w", err)
	}
	start, end := fix.ShiftRange(sel.Start, sel.End, edits)
	return out, visual.Cursor{Start: start, End: end}, nil
}

// sameStyle compares tags, treating all heading levels as one style.
func sameStyle(a, b visual.Tag) bool {
	if a.HeadingLevel() > 0 && b.HeadingLevel() > 0 {
		return true
	}
	return a == b
}
