// Package obsidian parses Obsidian-flavored Markdown into a lossless
// arena parse tree.
//
// Parsing runs in three stages: the tokenizer turns the source into a flat
// token stream, the block recognizer carves that stream into block
// constructs line by line, and a pipeline of inline parsers claims inline
// constructs inside each block. Parsing never fails; text that does not
// form a construct stays plain text.
package obsidian

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/livemd/pkg/langdetect"
	"github.com/yaklabco/livemd/pkg/mdast"
)

// Options configures a Parser.
type Options struct {
	// DetectLanguage labels fenced code blocks without an info string by
	// classifying their content.
	DetectLanguage bool
}

// Parser parses dialect Markdown. A Parser holds no per-document state and
// may be reused.
type Parser struct {
	opts Options
}

// New creates a parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses source with default options.
func Parse(source string) *mdast.Tree {
	return New(Options{}).Parse(source)
}

// ParseContext parses source, returning early if ctx is already done.
func (p *Parser) ParseContext(ctx context.Context, source string) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return p.Parse(source), nil
}

// Parse tokenizes and parses source. The leaves of the returned tree
// partition [0, len(source)).
func (p *Parser) Parse(source string) *mdast.Tree {
	tokens := Tokenize(source)
	builder := mdast.NewBuilder(source, tokens)
	inline := newInlineParser(source, tokens, builder)

	blocks := newBlockParser(p.opts).blocks(cursor{source: source, tokens: tokens})

	children := make([]mdast.NodeID, 0, 2*len(blocks)+1)
	pos := 0
	for i := range blocks {
		blk := &blocks[i]
		if blk.lo > pos {
			children = append(children, gapLeaf(builder, tokens, pos, blk.lo))
		}
		children = append(children, emitBlock(builder, inline, tokens, blk))
		pos = blk.hi
	}
	if pos < len(tokens) {
		children = append(children, gapLeaf(builder, tokens, pos, len(tokens)))
	}

	tree := builder.Tree()
	builder.SetChildren(tree.Root, children)
	return tree
}

func gapLeaf(builder *mdast.Builder, tokens []mdast.Token, lo, hi int) mdast.NodeID {
	return builder.Leaf(mdast.ElementText, tokens[lo].StartOffset, tokens[hi-1].EndOffset)
}

func emitBlock(builder *mdast.Builder, inline *inlineParser, tokens []mdast.Token, blk *block) mdast.NodeID {
	id := builder.Add(mdast.Node{
		Kind:  blk.kind,
		Start: tokens[blk.lo].StartOffset,
		End:   tokens[blk.hi-1].EndOffset,
		Level: blk.level,
		Label: blk.label,
	})

	children := make([]mdast.NodeID, 0, len(blk.parts))
	for _, part := range blk.parts {
		start, end := tokens[part.lo].StartOffset, tokens[part.hi-1].EndOffset
		switch part.kind {
		case partSyntax:
			children = append(children, builder.Leaf(mdast.ElementSyntax, start, end))
		case partText:
			children = append(children, builder.Leaf(mdast.ElementText, start, end))
		case partTarget:
			children = append(children, builder.Leaf(mdast.ElementLinkTarget, start, end))
		case partInline:
			children = append(children, inline.parse(part.lo, part.hi)...)
		}
	}
	builder.SetChildren(id, children)

	return id
}

// infoLanguage returns the label for a fence info string: its first word,
// normalized.
func infoLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return langdetect.Normalize(fields[0])
}

func detectLanguage(content string) string {
	return langdetect.Detect(content)
}
