package obsidian

import (
	"strings"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// partKind says how a token range inside a block becomes tree nodes.
type partKind uint8

const (
	partSyntax partKind = iota // decorative markup, one Syntax leaf
	partText                   // literal content, one Text leaf
	partTarget                 // literal destination, one LinkTarget leaf
	partInline                 // content handed to the inline pipeline
)

// part is a token range [lo, hi) of a block.
type part struct {
	kind   partKind
	lo, hi int
}

// block is a recognized block-level construct. Its parts cover the token
// range [lo, hi) in order; the terminating newline is not part of the block.
type block struct {
	kind  mdast.ElementKind
	level int
	label string
	lo    int
	hi    int
	parts []part
}

func (b *block) add(kind partKind, lo, hi int) {
	if lo >= hi {
		return
	}
	b.parts = append(b.parts, part{kind: kind, lo: lo, hi: hi})
	b.hi = hi
}

// blockProvider recognizes one block construct at a line start.
// match returns the block and a cursor at the end of its last line.
type blockProvider interface {
	match(c cursor) (block, cursor, bool)
	interruptsParagraph(c cursor) bool
}

// blockParser carves the token stream into blocks, line by line.
type blockParser struct {
	opts      Options
	providers []blockProvider
}

func newBlockParser(opts Options) *blockParser {
	bp := &blockParser{opts: opts}
	bp.providers = []blockProvider{
		fencedCode{detect: opts.DetectLanguage},
		commentBlock{},
		heading{},
		horizontalRule{},
		blockQuote{bp: bp},
		footnoteDefinition{},
		listItem{bp: bp},
	}
	return bp
}

// interrupts reports whether any provider would start a block at c.
func (bp *blockParser) interrupts(c cursor) bool {
	for _, provider := range bp.providers {
		if provider.interruptsParagraph(c) {
			return true
		}
	}
	return false
}

// blocks returns the blocks of the document in order. Tokens between
// blocks (newlines, blank lines) are not covered by any block.
func (bp *blockParser) blocks(c cursor) []block {
	var result []block

	for !c.eof() {
		if c.blank() {
			c = c.nextLine()
			continue
		}

		matched := false
		for _, provider := range bp.providers {
			if blk, next, ok := provider.match(c); ok {
				result = append(result, blk)
				c = next
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		blk, next := bp.paragraph(c)
		result = append(result, blk)
		c = next
	}

	return result
}

// paragraph collects lines until a blank line, EOF, or a line that starts
// another block.
func (bp *blockParser) paragraph(c cursor) (block, cursor) {
	blk := block{kind: mdast.ElementParagraph, lo: c.index}
	end := c.lineEnd()
	end = bp.lazyLines(end, nil)
	blk.add(partInline, c.index, end.index)
	return blk, end
}

// lazyLines extends a run of text from the line end at c over following
// lines that are non-blank and do not start a block. A non-nil stop ends
// the run at any line it reports. It returns the new line end.
func (bp *blockParser) lazyLines(c cursor, stop func(cursor) bool) cursor {
	for !c.eof() {
		next := c.advance(1)
		if next.eof() || next.blank() || bp.interrupts(next) || (stop != nil && stop(next)) {
			return c
		}
		c = next.lineEnd()
	}
	return c
}

// fencedCode recognizes ``` and ~~~ fences. An unterminated fence runs to EOF.
type fencedCode struct {
	detect bool
}

func (f fencedCode) open(c cursor) (cursor, mdast.TokenKind, int, bool) {
	c, _, ok := c.indent(3)
	if !ok {
		return c, 0, 0, false
	}
	kind := c.kind()
	if kind != mdast.TokBacktick && kind != mdast.TokTilde {
		return c, 0, 0, false
	}
	const minFence = 3
	n := c.count(kind)
	if n < minFence {
		return c, 0, 0, false
	}
	if kind == mdast.TokBacktick {
		for info := c.advance(n); info.kind() != mdast.TokNewline; info = info.advance(1) {
			if info.kind() == mdast.TokBacktick {
				return c, 0, 0, false
			}
		}
	}
	return c.advance(n), kind, n, true
}

func (f fencedCode) match(c cursor) (block, cursor, bool) {
	afterFence, kind, n, ok := f.open(c)
	if !ok {
		return block{}, c, false
	}

	blk := block{kind: mdast.ElementCodeBlock, lo: c.index}
	openEnd := afterFence.lineEnd()
	blk.label = infoLanguage(c.source[afterFence.offset():openEnd.offset()])

	if openEnd.eof() {
		blk.add(partSyntax, c.index, openEnd.index)
		return blk, openEnd, true
	}
	blk.add(partSyntax, c.index, openEnd.index+1)

	contentLo := openEnd.index + 1
	for line := openEnd.advance(1); !line.eof(); line = line.nextLine() {
		if !closesFence(line, kind, n) {
			continue
		}
		closeLo := line.index
		if closeLo > contentLo {
			// The newline before the closing fence belongs to the fence.
			closeLo--
			blk.add(partText, contentLo, closeLo)
		}
		end := line.lineEnd()
		blk.add(partSyntax, closeLo, end.index)
		f.labelContent(&blk, c, contentLo, closeLo)
		return blk, end, true
	}

	end := c.at(len(c.tokens))
	blk.add(partText, contentLo, end.index)
	f.labelContent(&blk, c, contentLo, end.index)
	return blk, end, true
}

func (f fencedCode) labelContent(blk *block, c cursor, lo, hi int) {
	if blk.label != "" || !f.detect || lo >= hi {
		return
	}
	blk.label = detectLanguage(c.source[c.tokens[lo].StartOffset:c.tokens[hi-1].EndOffset])
}

func closesFence(line cursor, kind mdast.TokenKind, n int) bool {
	line, _, ok := line.indent(3)
	if !ok || line.kind() != kind {
		return false
	}
	run := line.count(kind)
	return run >= n && line.advance(run).blank()
}

func (f fencedCode) interruptsParagraph(c cursor) bool {
	_, _, _, ok := f.open(c)
	return ok
}

// commentBlock recognizes %% ... %% spanning lines. The closing %% must end
// its line; otherwise the text is left to the inline comment parser.
type commentBlock struct{}

func (commentBlock) match(c cursor) (block, cursor, bool) {
	start, _, ok := c.indent(3)
	if !ok || start.kind() != mdast.TokPercent || start.peekKind(1) != mdast.TokPercent {
		return block{}, c, false
	}

	for scan := start.advance(2); !scan.eof(); scan = scan.advance(1) {
		if scan.kind() != mdast.TokPercent || scan.peekKind(1) != mdast.TokPercent {
			continue
		}
		after := scan.advance(2)
		if !after.blank() {
			return block{}, c, false
		}
		end := after.lineEnd()

		blk := block{kind: mdast.ElementCommentBlock, lo: c.index}
		blk.add(partSyntax, c.index, start.index+2)
		blk.add(partText, start.index+2, scan.index)
		blk.add(partSyntax, scan.index, scan.index+2)
		blk.add(partText, scan.index+2, end.index)
		return blk, end, true
	}

	return block{}, c, false
}

func (cb commentBlock) interruptsParagraph(c cursor) bool {
	_, _, ok := cb.match(c)
	return ok
}

// heading recognizes ATX headings: one to six '#' followed by whitespace
// or the end of the line.
type heading struct{}

func (heading) marker(c cursor) (cursor, int, bool) {
	c, _, ok := c.indent(3)
	if !ok || c.kind() != mdast.TokHash {
		return c, 0, false
	}
	const maxLevel = 6
	level := c.count(mdast.TokHash)
	if level > maxLevel {
		return c, 0, false
	}
	after := c.advance(level)
	switch after.kind() {
	case mdast.TokWhitespace:
		return after.advance(1), level, true
	case mdast.TokNewline:
		return after, level, true
	default:
		return c, 0, false
	}
}

func (h heading) match(c cursor) (block, cursor, bool) {
	content, level, ok := h.marker(c)
	if !ok {
		return block{}, c, false
	}
	end := content.lineEnd()

	blk := block{kind: mdast.ElementHeading, level: level, lo: c.index}
	blk.add(partSyntax, c.index, content.index)
	blk.add(partInline, content.index, end.index)
	return blk, end, true
}

func (h heading) interruptsParagraph(c cursor) bool {
	_, _, ok := h.marker(c)
	return ok
}

// horizontalRule recognizes three or more '-', '*' or '_' with optional
// spaces between them.
type horizontalRule struct{}

func (horizontalRule) match(c cursor) (block, cursor, bool) {
	start, _, ok := c.indent(3)
	if !ok {
		return block{}, c, false
	}
	kind := start.kind()
	if kind != mdast.TokDash && kind != mdast.TokStar && kind != mdast.TokUnderscore {
		return block{}, c, false
	}

	const minMarks = 3
	marks := 0
	scan := start
	for ; scan.kind() != mdast.TokNewline; scan = scan.advance(1) {
		switch scan.kind() {
		case kind:
			marks++
		case mdast.TokWhitespace:
		default:
			return block{}, c, false
		}
	}
	if marks < minMarks {
		return block{}, c, false
	}

	blk := block{kind: mdast.ElementHorizontalRule, lo: c.index}
	blk.add(partSyntax, c.index, scan.index)
	return blk, scan, true
}

func (hr horizontalRule) interruptsParagraph(c cursor) bool {
	_, _, ok := hr.match(c)
	return ok
}

// blockQuote recognizes '>' quoted lines and callouts. Quoted lines may be
// followed by lazy continuation lines without '>'.
type blockQuote struct {
	bp *blockParser
}

// prefix consumes the quote markers of one line and returns the cursor
// after them and the number of '>' seen.
func (blockQuote) prefix(c cursor) (cursor, int) {
	start, _, ok := c.indent(3)
	if !ok || start.kind() != mdast.TokGT {
		return c, 0
	}
	depth := 0
	for start.kind() == mdast.TokGT {
		depth++
		start = start.advance(1).skipSpace()
	}
	return start, depth
}

func (q blockQuote) match(c cursor) (block, cursor, bool) {
	content, depth := q.prefix(c)
	if depth == 0 {
		return block{}, c, false
	}

	blk := block{kind: mdast.ElementBlockQuote, level: depth, lo: c.index}
	blk.add(partSyntax, c.index, content.index)

	if header, calloutType, ok := calloutHeader(content); ok {
		blk.kind = mdast.ElementCallout
		blk.label = calloutType
		blk.add(partSyntax, content.index, header.index)
		content = header
	}

	end := content.lineEnd()
	blk.add(partInline, content.index, end.index)
	hasText := end.index > content.index

	for !end.eof() {
		line := end.advance(1)
		if line.eof() || line.blank() {
			break
		}

		lineContent, lineDepth := q.prefix(line)
		if lineDepth == 0 {
			if !hasText || q.bp.interrupts(line) {
				break
			}
			lineEnd := line.lineEnd()
			blk.add(partText, end.index, line.index)
			blk.add(partInline, line.index, lineEnd.index)
			end = lineEnd
			continue
		}

		lineEnd := lineContent.lineEnd()
		blk.add(partText, end.index, line.index)
		blk.add(partSyntax, line.index, lineContent.index)
		blk.add(partInline, lineContent.index, lineEnd.index)
		hasText = lineEnd.index > lineContent.index
		end = lineEnd
	}

	return blk, end, true
}

func (q blockQuote) interruptsParagraph(c cursor) bool {
	_, depth := q.prefix(c)
	return depth > 0
}

// calloutHeader matches "[!type]" with an optional fold flag and the
// whitespace after it. It returns the cursor at the title.
func calloutHeader(c cursor) (cursor, string, bool) {
	if c.kind() != mdast.TokLBracket || c.peekKind(1) != mdast.TokBang {
		return c, "", false
	}

	scan := c.advance(2)
	var name strings.Builder
	for ; ; scan = scan.advance(1) {
		switch scan.kind() {
		case mdast.TokText, mdast.TokDash, mdast.TokUnderscore:
			name.WriteString(scan.text())
			continue
		case mdast.TokRBracket:
		default:
			return c, "", false
		}
		break
	}
	if name.Len() == 0 {
		return c, "", false
	}

	scan = scan.advance(1)
	if scan.kind() == mdast.TokPlus || scan.kind() == mdast.TokDash {
		scan = scan.advance(1)
	}
	return scan.skipSpace(), strings.ToLower(name.String()), true
}

// footnoteDefinition recognizes "[^id]:" at a line start. The content is
// the rest of the line plus at most one more non-blank line.
type footnoteDefinition struct{}

func (footnoteDefinition) marker(c cursor) (cursor, cursor, bool) {
	start, _, ok := c.indent(3)
	if !ok || start.kind() != mdast.TokLBracket || start.peekKind(1) != mdast.TokCaret {
		return c, c, false
	}
	id := start.advance(2)
	scan := id
	for ; scan.kind() != mdast.TokRBracket; scan = scan.advance(1) {
		switch scan.kind() {
		case mdast.TokNewline, mdast.TokWhitespace, mdast.TokLBracket:
			return c, c, false
		}
	}
	if scan.index == id.index || scan.peekKind(1) != mdast.TokColon {
		return c, c, false
	}
	return id, scan, true
}

func (f footnoteDefinition) match(c cursor) (block, cursor, bool) {
	id, closing, ok := f.marker(c)
	if !ok {
		return block{}, c, false
	}

	blk := block{kind: mdast.ElementFootnoteDefinition, lo: c.index}
	blk.label = c.source[id.offset():closing.offset()]
	blk.add(partSyntax, c.index, id.index)
	blk.add(partText, id.index, closing.index)
	blk.add(partSyntax, closing.index, closing.index+2)

	end := closing.advance(2).lineEnd()
	blk.add(partInline, closing.index+2, end.index)

	if !end.eof() {
		next := end.advance(1)
		if !next.eof() && !next.blank() && !f.interruptsParagraph(next) {
			nextEnd := next.lineEnd()
			blk.add(partText, end.index, next.index)
			blk.add(partInline, next.index, nextEnd.index)
			end = nextEnd
		}
	}

	return blk, end, true
}

func (f footnoteDefinition) interruptsParagraph(c cursor) bool {
	_, _, ok := f.marker(c)
	return ok
}

// listItem recognizes "-", "*", "+" bullets and "1." / "1)" numbers.
type listItem struct {
	bp *blockParser
}

// marker returns the cursor at the bullet, the cursor after it, and
// whether the item is ordered.
func (listItem) marker(c cursor) (cursor, cursor, bool, bool) {
	bullet, _, _ := c.indent(1 << 30)
	switch bullet.kind() {
	case mdast.TokDash, mdast.TokStar, mdast.TokPlus:
		after := bullet.advance(1)
		return bullet, after, false, after.kind() == mdast.TokWhitespace
	case mdast.TokText:
		text := bullet.text()
		if n := len(text); n > 0 && n <= 10 && text[n-1] == '.' && isDigits(text[:n-1]) {
			after := bullet.advance(1)
			return bullet, after, true, after.kind() == mdast.TokWhitespace
		}
		if isDigits(text) && len(text) <= 9 && bullet.peekKind(1) == mdast.TokRParen {
			after := bullet.advance(2)
			return bullet, after, true, after.kind() == mdast.TokWhitespace
		}
	}
	return c, c, false, false
}

func (l listItem) match(c cursor) (block, cursor, bool) {
	bullet, after, ordered, ok := l.marker(c)
	if !ok {
		return block{}, c, false
	}

	blk := block{kind: mdast.ElementListItem, lo: c.index, label: "unordered"}
	if ordered {
		blk.label = "ordered"
	}
	if bullet.index > c.index {
		blk.level = columns(c.text())
	}

	blk.add(partText, c.index, bullet.index)
	blk.add(partSyntax, bullet.index, after.index)
	blk.add(partText, after.index, after.index+1)

	content := after.advance(1)
	end := l.bp.lazyLines(content.lineEnd(), l.startsItem)
	blk.add(partInline, content.index, end.index)
	return blk, end, true
}

// startsItem reports whether c begins a sibling item of any number.
func (l listItem) startsItem(c cursor) bool {
	_, _, _, ok := l.marker(c)
	return ok
}

func (l listItem) interruptsParagraph(c cursor) bool {
	bullet, _, ordered, ok := l.marker(c)
	if !ok {
		return false
	}
	if ordered {
		return strings.TrimRight(bullet.text(), ".") == "1"
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
