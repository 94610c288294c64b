package obsidian

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// cell is one element of an inline list: either an unclaimed token or a
// node built by an earlier step of the pipeline.
type cell struct {
	tok  int
	node int
}

func (c cell) isNode() bool {
	return c.node >= 0
}

// inlinePart is a child of an inline node: a leaf byte range, or an inner
// list that later steps keep parsing.
type inlinePart struct {
	kind       partKind
	start, end int
	list       int
}

type inlineNode struct {
	kind       mdast.ElementKind
	start, end int
	label      string
	parts      []inlinePart
}

// inlineStep is one parser of the pipeline. It receives a list and returns
// the list with its recognized spans replaced by node cells.
type inlineStep func(p *inlineParser, cells []cell) []cell

// inlinePipeline is ordered: steps that claim few, specific tokens run
// before the bracket-based ones so those cannot swallow them.
//
//nolint:gochecknoglobals // Fixed pipeline order.
var inlinePipeline = []inlineStep{
	(*inlineParser).codeSpans,
	delimiterStep(delimiter{kind: mdast.ElementComment, chars: []mdast.TokenKind{mdast.TokPercent}, width: 2, literal: true}),
	(*inlineParser).blockIDs,
	(*inlineParser).hashtags,
	(*inlineParser).embeds,
	(*inlineParser).wikilinks,
	(*inlineParser).footnoteLinks,
	(*inlineParser).inlineFootnotes,
	(*inlineParser).inlineLinks,
	delimiterStep(delimiter{kind: mdast.ElementBold, chars: []mdast.TokenKind{mdast.TokStar, mdast.TokUnderscore}, width: 2, flanking: true}),
	delimiterStep(delimiter{kind: mdast.ElementItalic, chars: []mdast.TokenKind{mdast.TokStar, mdast.TokUnderscore}, width: 1, flanking: true}),
	delimiterStep(delimiter{kind: mdast.ElementStrikethrough, chars: []mdast.TokenKind{mdast.TokTilde}, width: 2, flanking: true}),
	delimiterStep(delimiter{kind: mdast.ElementHighlight, chars: []mdast.TokenKind{mdast.TokEq}, width: 2, flanking: true}),
}

// inlineParser runs the pipeline over the content of one block part.
type inlineParser struct {
	source  string
	tokens  []mdast.Token
	builder *mdast.Builder
	nodes   []inlineNode
	lists   [][]cell
}

func newInlineParser(source string, tokens []mdast.Token, builder *mdast.Builder) *inlineParser {
	return &inlineParser{source: source, tokens: tokens, builder: builder}
}

// parse builds the nodes for the tokens [lo, hi) and returns the ids of the
// top-level ones.
func (p *inlineParser) parse(lo, hi int) []mdast.NodeID {
	p.nodes = p.nodes[:0]
	p.lists = p.lists[:0]

	top := make([]cell, 0, hi-lo)
	for i := lo; i < hi; i++ {
		top = append(top, cell{tok: i, node: -1})
	}
	p.lists = append(p.lists, top)

	for _, step := range inlinePipeline {
		// Lists created by this step are only seen by later steps.
		n := len(p.lists)
		for i := 0; i < n; i++ {
			p.lists[i] = step(p, p.lists[i])
		}
	}

	return p.emitList(0)
}

// emitList turns a list into tree nodes. Runs of unclaimed tokens become a
// single Text leaf.
func (p *inlineParser) emitList(index int) []mdast.NodeID {
	cells := p.lists[index]
	ids := make([]mdast.NodeID, 0, len(cells))

	for i := 0; i < len(cells); {
		if cells[i].isNode() {
			ids = append(ids, p.emitNode(cells[i].node))
			i++
			continue
		}
		j := i
		for j < len(cells) && !cells[j].isNode() {
			j++
		}
		ids = append(ids, p.builder.Leaf(mdast.ElementText,
			p.tokens[cells[i].tok].StartOffset, p.tokens[cells[j-1].tok].EndOffset))
		i = j
	}

	return ids
}

func (p *inlineParser) emitNode(index int) mdast.NodeID {
	n := p.nodes[index]
	id := p.builder.Add(mdast.Node{Kind: n.kind, Start: n.start, End: n.end, Label: n.label})

	children := make([]mdast.NodeID, 0, len(n.parts))
	for _, part := range n.parts {
		switch part.kind {
		case partInline:
			children = append(children, p.emitList(part.list)...)
		case partSyntax:
			children = append(children, p.builder.Leaf(mdast.ElementSyntax, part.start, part.end))
		case partText:
			children = append(children, p.builder.Leaf(mdast.ElementText, part.start, part.end))
		case partTarget:
			children = append(children, p.builder.Leaf(mdast.ElementLinkTarget, part.start, part.end))
		}
	}
	p.builder.SetChildren(id, children)

	return id
}

// kindAt returns the token kind of cells[i], or TokNewline when i is out of
// range or names a node.
func (p *inlineParser) kindAt(cells []cell, i int) mdast.TokenKind {
	if i < 0 || i >= len(cells) || cells[i].isNode() {
		return mdast.TokNewline
	}
	return p.tokens[cells[i].tok].Kind
}

// span returns the byte range of cells[lo:hi].
func (p *inlineParser) span(cells []cell, lo, hi int) (int, int) {
	return p.cellStart(cells[lo]), p.cellEnd(cells[hi-1])
}

func (p *inlineParser) cellStart(c cell) int {
	if c.isNode() {
		return p.nodes[c.node].start
	}
	return p.tokens[c.tok].StartOffset
}

func (p *inlineParser) cellEnd(c cell) int {
	if c.isNode() {
		return p.nodes[c.node].end
	}
	return p.tokens[c.tok].EndOffset
}

func (p *inlineParser) syntax(cells []cell, lo, hi int) inlinePart {
	start, end := p.span(cells, lo, hi)
	return inlinePart{kind: partSyntax, start: start, end: end}
}

func (p *inlineParser) leaf(kind partKind, cells []cell, lo, hi int) inlinePart {
	start, end := p.span(cells, lo, hi)
	return inlinePart{kind: kind, start: start, end: end}
}

// sublist registers cells[lo:hi] as a new list and returns it as a part.
func (p *inlineParser) sublist(cells []cell, lo, hi int) inlinePart {
	inner := make([]cell, hi-lo)
	copy(inner, cells[lo:hi])
	p.lists = append(p.lists, inner)
	return inlinePart{kind: partInline, list: len(p.lists) - 1}
}

// claim replaces cells[lo:hi] with a node cell for n.
func (p *inlineParser) claim(cells []cell, lo, hi int, n inlineNode) []cell {
	n.start, n.end = p.span(cells, lo, hi)
	p.nodes = append(p.nodes, n)

	out := make([]cell, 0, len(cells)-(hi-lo)+1)
	out = append(out, cells[:lo]...)
	out = append(out, cell{tok: -1, node: len(p.nodes) - 1})
	return append(out, cells[hi:]...)
}

func (p *inlineParser) textOf(cells []cell, lo, hi int) string {
	if lo >= hi {
		return ""
	}
	start, end := p.span(cells, lo, hi)
	return p.source[start:end]
}

func (p *inlineParser) hasNode(cells []cell, lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if cells[i].isNode() {
			return true
		}
	}
	return false
}

// codeSpans pairs backtick runs of equal length. Content is literal.
func (p *inlineParser) codeSpans(cells []cell) []cell {
	for i := 0; i < len(cells); {
		if p.kindAt(cells, i) != mdast.TokBacktick {
			i++
			continue
		}
		n := p.runLength(cells, i, mdast.TokBacktick)

		closing := -1
		for j := i + n; j < len(cells); {
			if p.kindAt(cells, j) != mdast.TokBacktick {
				j++
				continue
			}
			m := p.runLength(cells, j, mdast.TokBacktick)
			if m == n {
				closing = j
				break
			}
			j += m
		}
		if closing < 0 {
			i += n
			continue
		}

		node := inlineNode{kind: mdast.ElementCodeSpan, parts: []inlinePart{
			p.syntax(cells, i, i+n),
			p.leaf(partText, cells, i+n, closing),
			p.syntax(cells, closing, closing+n),
		}}
		cells = p.claim(cells, i, closing+n, node)
		i++
	}
	return cells
}

func (p *inlineParser) runLength(cells []cell, i int, kind mdast.TokenKind) int {
	n := 0
	for p.kindAt(cells, i+n) == kind {
		n++
	}
	return n
}

// blockIDs recognizes "^id" at the end of a line, after whitespace.
func (p *inlineParser) blockIDs(cells []cell) []cell {
	for i := 0; i < len(cells); i++ {
		if p.kindAt(cells, i) != mdast.TokCaret {
			continue
		}
		if i > 0 {
			prev := p.kindAt(cells, i-1)
			if cells[i-1].isNode() || (prev != mdast.TokWhitespace && prev != mdast.TokNewline) {
				continue
			}
		}

		j := i + 1
		for ; j < len(cells); j++ {
			kind := p.kindAt(cells, j)
			if kind == mdast.TokDash || (kind == mdast.TokText && isBlockIDText(p.tokens[cells[j].tok].Text(p.source))) {
				continue
			}
			break
		}
		if j == i+1 {
			continue
		}
		end := j
		if p.kindAt(cells, j) == mdast.TokWhitespace {
			j++
		}
		if j < len(cells) && (cells[j].isNode() || p.kindAt(cells, j) != mdast.TokNewline) {
			continue
		}

		node := inlineNode{
			kind:  mdast.ElementBlockID,
			label: p.textOf(cells, i+1, end),
			parts: []inlinePart{p.syntax(cells, i, i+1), p.leaf(partText, cells, i+1, end)},
		}
		cells = p.claim(cells, i, end, node)
	}
	return cells
}

func isBlockIDText(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return s != ""
}

// hashtags turns tag tokens into hashtag nodes.
func (p *inlineParser) hashtags(cells []cell) []cell {
	for i := range cells {
		if p.kindAt(cells, i) != mdast.TokTag {
			continue
		}
		tok := p.tokens[cells[i].tok]
		node := inlineNode{
			kind:  mdast.ElementHashtag,
			label: p.source[tok.StartOffset+1 : tok.EndOffset],
			parts: []inlinePart{
				{kind: partSyntax, start: tok.StartOffset, end: tok.StartOffset + 1},
				{kind: partText, start: tok.StartOffset + 1, end: tok.EndOffset},
			},
		}
		cells = p.claim(cells, i, i+1, node)
	}
	return cells
}

// scanLink scans a "[[dest|label]]" body starting after the opening
// brackets. It returns the index of the first closing bracket and of the
// first pipe (or -1).
func (p *inlineParser) scanLink(cells []cell, from int) (int, int, bool) {
	pipe := -1
	for j := from; j < len(cells); j++ {
		if cells[j].isNode() {
			return 0, 0, false
		}
		switch p.kindAt(cells, j) {
		case mdast.TokNewline, mdast.TokLBracket:
			return 0, 0, false
		case mdast.TokPipe:
			if pipe < 0 {
				pipe = j
			}
		case mdast.TokRBracket:
			if p.kindAt(cells, j+1) != mdast.TokRBracket {
				return 0, 0, false
			}
			return j, pipe, true
		}
	}
	return 0, 0, false
}

// linkNode builds an internal link or embed node. open is the index of the
// first cell of the opening syntax, body the first cell after it.
func (p *inlineParser) linkNode(cells []cell, kind mdast.ElementKind, open, body int) ([]cell, bool) {
	closing, pipe, ok := p.scanLink(cells, body)
	if !ok {
		return cells, false
	}

	destEnd := closing
	if pipe >= 0 {
		destEnd = pipe
	}
	dest := strings.TrimSpace(p.textOf(cells, body, destEnd))
	if dest == "" {
		return cells, false
	}

	node := inlineNode{kind: kind, label: dest}
	node.parts = append(node.parts, p.syntax(cells, open, body), p.leaf(partTarget, cells, body, destEnd))

	if pipe >= 0 && strings.TrimSpace(p.textOf(cells, pipe+1, closing)) != "" {
		node.parts = append(node.parts,
			p.syntax(cells, pipe, pipe+1),
			p.leaf(partText, cells, pipe+1, closing),
			p.syntax(cells, closing, closing+2))
	} else {
		node.parts = append(node.parts, p.syntax(cells, destEnd, closing+2))
	}

	return p.claim(cells, open, closing+2, node), true
}

// embeds recognizes "![[dest]]" and "![[dest|label]]".
func (p *inlineParser) embeds(cells []cell) []cell {
	for i := 0; i+2 < len(cells); i++ {
		if p.kindAt(cells, i) == mdast.TokBang && p.kindAt(cells, i+1) == mdast.TokLBracket &&
			p.kindAt(cells, i+2) == mdast.TokLBracket {
			cells, _ = p.linkNode(cells, mdast.ElementEmbed, i, i+3)
		}
	}
	return cells
}

// wikilinks recognizes "[[dest]]" and "[[dest|label]]".
func (p *inlineParser) wikilinks(cells []cell) []cell {
	for i := 0; i+1 < len(cells); i++ {
		if p.kindAt(cells, i) == mdast.TokLBracket && p.kindAt(cells, i+1) == mdast.TokLBracket {
			cells, _ = p.linkNode(cells, mdast.ElementInternalLink, i, i+2)
		}
	}
	return cells
}

// footnoteLinks recognizes "[^id]"; the id may not contain whitespace.
func (p *inlineParser) footnoteLinks(cells []cell) []cell {
	for i := 0; i+1 < len(cells); i++ {
		if p.kindAt(cells, i) != mdast.TokLBracket || p.kindAt(cells, i+1) != mdast.TokCaret {
			continue
		}

		closing := -1
	scan:
		for j := i + 2; j < len(cells); j++ {
			if cells[j].isNode() {
				break
			}
			switch p.kindAt(cells, j) {
			case mdast.TokNewline, mdast.TokWhitespace, mdast.TokLBracket:
				break scan
			case mdast.TokRBracket:
				closing = j
				break scan
			}
		}
		if closing <= i+2 {
			continue
		}

		node := inlineNode{
			kind:  mdast.ElementFootnoteLink,
			label: p.textOf(cells, i+2, closing),
			parts: []inlinePart{
				p.syntax(cells, i, i+2),
				p.leaf(partText, cells, i+2, closing),
				p.syntax(cells, closing, closing+1),
			},
		}
		cells = p.claim(cells, i, closing+1, node)
	}
	return cells
}

// scanBracket finds the "]" closing a bracket opened before from. Nodes are
// allowed inside; newlines and nested "[" are not.
func (p *inlineParser) scanBracket(cells []cell, from int) int {
	for j := from; j < len(cells); j++ {
		if cells[j].isNode() {
			continue
		}
		switch p.kindAt(cells, j) {
		case mdast.TokNewline, mdast.TokLBracket:
			return -1
		case mdast.TokRBracket:
			return j
		}
	}
	return -1
}

// inlineFootnotes recognizes "^[content]".
func (p *inlineParser) inlineFootnotes(cells []cell) []cell {
	for i := 0; i+1 < len(cells); i++ {
		if p.kindAt(cells, i) != mdast.TokCaret || p.kindAt(cells, i+1) != mdast.TokLBracket {
			continue
		}
		closing := p.scanBracket(cells, i+2)
		if closing <= i+2 {
			continue
		}

		node := inlineNode{kind: mdast.ElementInlineFootnote}
		node.parts = []inlinePart{
			p.syntax(cells, i, i+2),
			p.sublist(cells, i+2, closing),
			p.syntax(cells, closing, closing+1),
		}
		cells = p.claim(cells, i, closing+1, node)
	}
	return cells
}

// inlineLinks recognizes "[text](destination)". The destination may not
// contain whitespace.
func (p *inlineParser) inlineLinks(cells []cell) []cell {
	for i := 0; i < len(cells); i++ {
		if p.kindAt(cells, i) != mdast.TokLBracket {
			continue
		}
		textEnd := p.scanBracket(cells, i+1)
		if textEnd <= i+1 || p.kindAt(cells, textEnd+1) != mdast.TokLParen {
			continue
		}

		closing := -1
	scan:
		for j := textEnd + 2; j < len(cells); j++ {
			if cells[j].isNode() {
				break
			}
			switch p.kindAt(cells, j) {
			case mdast.TokNewline, mdast.TokWhitespace, mdast.TokLParen:
				break scan
			case mdast.TokRParen:
				closing = j
				break scan
			}
		}
		if closing <= textEnd+2 {
			continue
		}

		node := inlineNode{kind: mdast.ElementInlineLink, label: p.textOf(cells, textEnd+2, closing)}
		node.parts = []inlinePart{
			p.syntax(cells, i, i+1),
			p.sublist(cells, i+1, textEnd),
			p.syntax(cells, textEnd, textEnd+2),
			p.leaf(partTarget, cells, textEnd+2, closing),
			p.syntax(cells, closing, closing+1),
		}
		cells = p.claim(cells, i, closing+1, node)
	}
	return cells
}

// delimiter describes a paired-delimiter construct.
type delimiter struct {
	kind     mdast.ElementKind
	chars    []mdast.TokenKind
	width    int
	flanking bool
	literal  bool
}

// delimRun is a run of delimiter tokens in a list.
type delimRun struct {
	lo, hi   int
	char     mdast.TokenKind
	canOpen  bool
	canClose bool
}

func (r delimRun) len() int {
	return r.hi - r.lo
}

func delimiterStep(d delimiter) inlineStep {
	return func(p *inlineParser, cells []cell) []cell {
		return p.pairDelimiters(cells, d)
	}
}

// pairDelimiters repeatedly takes the first run that can close and pairs it
// with the nearest earlier run that can open, until no pair is left.
func (p *inlineParser) pairDelimiters(cells []cell, d delimiter) []cell {
	for {
		runs := p.delimRuns(cells, d)
		paired := false

		for ci := 0; ci < len(runs) && !paired; ci++ {
			closer := runs[ci]
			if !closer.canClose || closer.len() < d.width {
				continue
			}
			for oi := ci - 1; oi >= 0; oi-- {
				opener := runs[oi]
				if opener.char != closer.char || !opener.canOpen || opener.len() < d.width {
					continue
				}
				cells = p.pair(cells, d, opener, closer)
				paired = true
				break
			}
		}

		if !paired {
			return cells
		}
	}
}

func (p *inlineParser) delimRuns(cells []cell, d delimiter) []delimRun {
	var runs []delimRun
	for i := 0; i < len(cells); {
		kind := p.kindAt(cells, i)
		if cells[i].isNode() || !containsKind(d.chars, kind) {
			i++
			continue
		}
		j := i
		for p.kindAt(cells, j) == kind {
			j++
		}
		run := delimRun{lo: i, hi: j, char: kind, canOpen: true, canClose: true}
		if d.flanking {
			run.canOpen, run.canClose = p.flanks(cells[i].tok, kind)
		}
		runs = append(runs, run)
		i = j
	}
	return runs
}

// pair builds a node from the innermost width delimiters of opener and the
// first width delimiters of closer. A pair wrapping nothing but an
// identical node is merged into that node.
func (p *inlineParser) pair(cells []cell, d delimiter, opener, closer delimRun) []cell {
	openLo := opener.hi - d.width
	closeHi := closer.lo + d.width

	if closer.lo-opener.hi == 1 && cells[opener.hi].isNode() {
		inner := &p.nodes[cells[opener.hi].node]
		if inner.kind == d.kind && p.source[inner.start] == p.source[p.cellStart(cells[openLo])] {
			inner.start -= d.width
			inner.end += d.width
			inner.parts[0].start -= d.width
			inner.parts[len(inner.parts)-1].end += d.width

			out := make([]cell, 0, len(cells))
			out = append(out, cells[:openLo]...)
			out = append(out, cells[opener.hi])
			return append(out, cells[closeHi:]...)
		}
	}

	node := inlineNode{kind: d.kind}
	node.parts = append(node.parts, p.syntax(cells, openLo, opener.hi))
	if d.literal && !p.hasNode(cells, opener.hi, closer.lo) {
		node.parts = append(node.parts, p.leaf(partText, cells, opener.hi, closer.lo))
	} else {
		node.parts = append(node.parts, p.sublist(cells, opener.hi, closer.lo))
	}
	node.parts = append(node.parts, p.syntax(cells, closer.lo, closeHi))

	return p.claim(cells, openLo, closeHi, node)
}

// flanks applies the left/right-flanking rules to the maximal source run
// containing token tok. Underscores may not open or close inside a word.
func (p *inlineParser) flanks(tok int, kind mdast.TokenKind) (bool, bool) {
	first, last := tok, tok
	for first > 0 && p.tokens[first-1].Kind == kind {
		first--
	}
	for last+1 < len(p.tokens) && p.tokens[last+1].Kind == kind {
		last++
	}

	before, after := '\n', '\n'
	if start := p.tokens[first].StartOffset; start > 0 {
		before, _ = utf8.DecodeLastRuneInString(p.source[:start])
	}
	if end := p.tokens[last].EndOffset; end < len(p.source) {
		after, _ = utf8.DecodeRuneInString(p.source[end:])
	}

	spaceBefore, spaceAfter := util.IsSpaceRune(before), util.IsSpaceRune(after)
	punctBefore, punctAfter := util.IsPunctRune(before), util.IsPunctRune(after)

	left := !spaceAfter && (!punctAfter || spaceBefore || punctBefore)
	right := !spaceBefore && (!punctBefore || spaceAfter || punctAfter)

	if kind == mdast.TokUnderscore {
		return left && (!right || punctBefore), right && (!left || punctAfter)
	}
	return left, right
}

func containsKind(kinds []mdast.TokenKind, kind mdast.TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
