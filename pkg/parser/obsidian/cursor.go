package obsidian

import "github.com/yaklabco/livemd/pkg/mdast"

// cursor is an immutable position in a token stream. Every movement
// returns a new cursor; block providers thread cursors through their
// matchers and simply drop the ones they do not use.
type cursor struct {
	source string
	tokens []mdast.Token
	index  int
}

func (c cursor) eof() bool {
	return c.index >= len(c.tokens)
}

// kind returns the kind of the current token, or TokNewline at EOF so that
// EOF behaves like an end of line.
func (c cursor) kind() mdast.TokenKind {
	if c.eof() {
		return mdast.TokNewline
	}
	return c.tokens[c.index].Kind
}

func (c cursor) peekKind(n int) mdast.TokenKind {
	if c.index+n >= len(c.tokens) {
		return mdast.TokNewline
	}
	return c.tokens[c.index+n].Kind
}

func (c cursor) text() string {
	if c.eof() {
		return ""
	}
	return c.tokens[c.index].Text(c.source)
}

// offset returns the byte offset of the current token.
func (c cursor) offset() int {
	if c.eof() {
		return len(c.source)
	}
	return c.tokens[c.index].StartOffset
}

func (c cursor) advance(n int) cursor {
	c.index += n
	if c.index > len(c.tokens) {
		c.index = len(c.tokens)
	}
	return c
}

// at returns a cursor at an absolute token index.
func (c cursor) at(index int) cursor {
	c.index = index
	return c
}

// count returns the number of consecutive tokens of kind from here.
func (c cursor) count(kind mdast.TokenKind) int {
	n := 0
	for c.index+n < len(c.tokens) && c.tokens[c.index+n].Kind == kind {
		n++
	}
	return n
}

// indent skips a whitespace token of at most maxSpaces columns. It returns
// the cursor after the indent and its width.
func (c cursor) indent(maxSpaces int) (cursor, int, bool) {
	if c.kind() != mdast.TokWhitespace {
		return c, 0, true
	}
	width := columns(c.text())
	if width > maxSpaces {
		return c, width, false
	}
	return c.advance(1), width, true
}

// skipSpace skips a whitespace token if present.
func (c cursor) skipSpace() cursor {
	if !c.eof() && c.kind() == mdast.TokWhitespace {
		return c.advance(1)
	}
	return c
}

// lineEnd returns a cursor at the newline token ending the current line,
// or at EOF.
func (c cursor) lineEnd() cursor {
	for !c.eof() && c.tokens[c.index].Kind != mdast.TokNewline {
		c.index++
	}
	return c
}

// nextLine returns a cursor at the first token of the following line.
func (c cursor) nextLine() cursor {
	c = c.lineEnd()
	if !c.eof() {
		c.index++
	}
	return c
}

// blank reports whether the rest of the line holds only whitespace.
func (c cursor) blank() bool {
	return c.skipSpace().kind() == mdast.TokNewline
}

// columns returns the visual width of leading whitespace, tabs advancing to
// the next multiple of four.
func columns(ws string) int {
	const tabStop = 4
	width := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			width += tabStop - width%tabStop
			continue
		}
		width++
	}
	return width
}
