package visual

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/mdast"
	"github.com/yaklabco/livemd/pkg/parser/obsidian"
)

// Result is the output of a transformation.
type Result struct {
	// Source is the text that was parsed.
	Source string

	// Text is Source with hidden markers removed or replaced.
	Text string

	// Styles are the decorations of Text, in transformed offsets, ordered
	// by start offset.
	Styles []Style

	// Mapper converts offsets between Source and Text.
	Mapper *OffsetMapper

	// Tree is the parse tree of Source.
	Tree *mdast.Tree
}

// owned is a marker together with the node whose processor produced it.
type owned struct {
	Marker

	owner mdast.NodeID
}

// Transform walks tree and hides every marker whose owning node does not
// contain the cursor. It fails with an *InvariantError when a processor
// finds a node it cannot handle or two hidden markers overlap.
func Transform(tree *mdast.Tree, cursor Cursor, opts Options) (*Result, error) {
	if !opts.Mode.IsValid() {
		opts.Mode = ModeLive
	}

	var (
		hidden []owned
		styles []Style
	)

	enter := func(id mdast.NodeID) error {
		node := tree.Node(id)
		proc := ProcessorFor(node.Kind)

		markers, err := proc.Markers(tree, id, opts)
		if err != nil {
			return err
		}
		nodeStyles, err := proc.Styles(tree, id)
		if err != nil {
			return err
		}
		styles = append(styles, nodeStyles...)

		reveal := revealed(node, cursor, opts.Mode)
		for _, marker := range markers {
			if marker.Start < node.Start || marker.End > node.End || marker.Start > marker.End {
				return invariant(tree, id, fmt.Sprintf("marker [%d,%d) outside node", marker.Start, marker.End))
			}
			if !reveal {
				hidden = append(hidden, owned{Marker: marker, owner: id})
				continue
			}
			if marker.End > marker.Start {
				styles = append(styles, Style{Start: marker.Start, End: marker.End, Tag: TagMarkup})
			}
		}

		if !proc.Descend {
			return mdast.SkipChildren
		}
		return nil
	}

	if err := tree.WalkWithContext(tree.Root, enter, nil); err != nil {
		return nil, err
	}

	slices.SortStableFunc(hidden, func(a, b owned) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	markers := make([]Marker, len(hidden))
	for i := range hidden {
		if i > 0 && hidden[i].Start < hidden[i-1].End {
			return nil, invariant(tree, hidden[i].owner,
				fmt.Sprintf("marker [%d,%d) overlaps [%d,%d)",
					hidden[i].Start, hidden[i].End, hidden[i-1].Start, hidden[i-1].End))
		}
		markers[i] = hidden[i].Marker
	}

	mapper := NewOffsetMapper(len(tree.Source), markers)

	return &Result{
		Source: tree.Source,
		Text:   applyMarkers(tree.Source, markers),
		Styles: remapStyles(styles, mapper),
		Mapper: mapper,
		Tree:   tree,
	}, nil
}

// revealed reports whether the markers of node stay visible. Inline
// constructs reveal only for a caret strictly inside them, so a caret
// placed just before or after a span keeps it rendered. Blocks reveal for
// a caret anywhere on them, including their edges.
func revealed(node *mdast.Node, cursor Cursor, mode Mode) bool {
	switch mode {
	case ModeSource:
		return true
	case ModeReading:
		return false
	}

	if !cursor.Valid() {
		return false
	}
	if !cursor.Collapsed() {
		return true
	}
	if node.Kind.IsBlock() {
		return node.Start <= cursor.Start && cursor.Start <= node.End
	}
	return node.Start < cursor.Start && cursor.Start < node.End
}

func applyMarkers(source string, markers []Marker) string {
	if len(markers) == 0 {
		return source
	}

	var sb strings.Builder
	sb.Grow(len(source))

	pos := 0
	for _, marker := range markers {
		sb.WriteString(source[pos:marker.Start])
		sb.WriteString(marker.Replacement)
		pos = marker.End
	}
	sb.WriteString(source[pos:])

	return sb.String()
}

func remapStyles(styles []Style, mapper *OffsetMapper) []Style {
	out := make([]Style, 0, len(styles))
	for _, style := range styles {
		start := mapper.OriginalToTransformed(style.Start)
		end := mapper.OriginalToTransformed(style.End)
		if end <= start {
			continue
		}
		style.Start, style.End = start, end
		out = append(out, style)
	}

	slices.SortStableFunc(out, func(a, b Style) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}

// Identity returns a result that shows source unchanged, with no styles.
func Identity(tree *mdast.Tree) *Result {
	return &Result{
		Source: tree.Source,
		Text:   tree.Source,
		Styles: []Style{},
		Mapper: NewOffsetMapper(len(tree.Source), nil),
		Tree:   tree,
	}
}

// Engine parses and transforms documents with fixed options.
// An Engine holds no per-document state and may be used concurrently.
type Engine struct {
	parser *obsidian.Parser
	opts   Options
	logger *log.Logger
}

// NewEngine creates an engine. A nil parser uses default parser options;
// a nil logger uses the package default logger.
func NewEngine(parser *obsidian.Parser, opts Options, logger *log.Logger) *Engine {
	if parser == nil {
		parser = obsidian.New(obsidian.Options{})
	}
	if logger == nil {
		logger = logging.Default()
	}
	if opts.BulletGlyph == "" {
		opts.BulletGlyph = DefaultOptions().BulletGlyph
	}
	return &Engine{parser: parser, opts: opts, logger: logger}
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// Render parses source and transforms it for cursor. It never fails: if
// the tree cannot be transformed the error is logged and the source is
// returned unchanged, so the editable buffer is never corrupted.
func (e *Engine) Render(source string, cursor Cursor) *Result {
	tree := e.parser.Parse(source)

	result, err := Transform(tree, cursor, e.opts)
	if err != nil {
		e.logger.Error("visual transform failed, showing source",
			logging.FieldError, err,
			logging.FieldMode, e.opts.Mode,
			logging.FieldBytes, len(source))
		return Identity(tree)
	}

	e.logger.Debug("visual transform",
		logging.FieldMode, e.opts.Mode,
		logging.FieldNodes, len(tree.Nodes),
		logging.FieldStyle, len(result.Styles))
	return result
}

// RenderContext is Render with cancellation. Only cancellation is
// reported as an error.
func (e *Engine) RenderContext(ctx context.Context, source string, cursor Cursor) (*Result, error) {
	tree, err := e.parser.ParseContext(ctx, source)
	if err != nil {
		return nil, err
	}

	result, err := Transform(tree, cursor, e.opts)
	if err != nil {
		var invErr *InvariantError
		if !errors.As(err, &invErr) {
			return nil, fmt.Errorf("transform: %w", err)
		}
		logging.FromContext(ctx).Error("visual transform failed, showing source", logging.FieldError, err)
		return Identity(tree), nil
	}
	return result, nil
}
