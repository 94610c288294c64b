package visual

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// MarkerFunc returns the markers owned by a node, in source offsets.
type MarkerFunc func(t *mdast.Tree, id mdast.NodeID, opts Options) ([]Marker, error)

// StyleFunc returns the styles of a node, in source offsets.
type StyleFunc func(t *mdast.Tree, id mdast.NodeID) ([]Style, error)

// Processor is the strategy for one element kind.
type Processor struct {
	Markers MarkerFunc
	Styles  StyleFunc

	// Descend reports whether the node's children are processed too.
	Descend bool
}

// processors is indexed by mdast.ElementKind.
//
//nolint:gochecknoglobals // Dispatch table.
var processors = buildProcessors()

func buildProcessors() [mdast.ElementKindCount]Processor {
	container := Processor{Markers: noMarkers, Styles: noStyles, Descend: true}
	leaf := Processor{Markers: noMarkers, Styles: noStyles}

	return [mdast.ElementKindCount]Processor{
		mdast.ElementDocument:           container,
		mdast.ElementParagraph:          container,
		mdast.ElementHeading:            {Markers: headingMarkers, Styles: headingStyles, Descend: true},
		mdast.ElementBlockQuote:         {Markers: syntaxMarkers, Styles: quoteStyles, Descend: true},
		mdast.ElementCallout:            {Markers: calloutMarkers, Styles: labelStyle, Descend: true},
		mdast.ElementCommentBlock:       {Markers: syntaxMarkers, Styles: fixedStyle},
		mdast.ElementCodeBlock:          {Markers: fenceMarkers, Styles: labelStyle},
		mdast.ElementFootnoteDefinition: {Markers: footnoteDefinitionMarkers, Styles: labelStyle, Descend: true},
		mdast.ElementListItem:           {Markers: listMarkers, Styles: listStyles, Descend: true},
		mdast.ElementHorizontalRule:     {Markers: ruleMarkers, Styles: fixedStyle},
		mdast.ElementBold:               {Markers: pairedMarkers, Styles: fixedStyle, Descend: true},
		mdast.ElementItalic:             {Markers: pairedMarkers, Styles: fixedStyle, Descend: true},
		mdast.ElementStrikethrough:      {Markers: pairedMarkers, Styles: fixedStyle, Descend: true},
		mdast.ElementHighlight:          {Markers: pairedMarkers, Styles: fixedStyle, Descend: true},
		mdast.ElementComment:            {Markers: pairedMarkers, Styles: fixedStyle},
		mdast.ElementCodeSpan:           {Markers: pairedMarkers, Styles: fixedStyle},
		mdast.ElementInternalLink:       {Markers: wikiMarkers, Styles: labelStyle},
		mdast.ElementEmbed:              {Markers: wikiMarkers, Styles: labelStyle},
		mdast.ElementInlineLink:         {Markers: inlineLinkMarkers, Styles: labelStyle, Descend: true},
		mdast.ElementFootnoteLink:       {Markers: pairedMarkers, Styles: labelStyle},
		mdast.ElementInlineFootnote:     {Markers: pairedMarkers, Styles: fixedStyle, Descend: true},
		mdast.ElementHashtag:            {Markers: hashtagMarkers, Styles: labelStyle},
		mdast.ElementBlockID:            {Markers: blockIDMarkers, Styles: labelStyle},
		mdast.ElementText:               leaf,
		mdast.ElementSyntax:             leaf,
		mdast.ElementLinkTarget:         leaf,
	}
}

// ProcessorFor returns the processor for an element kind. Unknown kinds
// get a processor that produces nothing and does not descend.
func ProcessorFor(kind mdast.ElementKind) Processor {
	if int(kind) >= len(processors) {
		return Processor{Markers: noMarkers, Styles: noStyles}
	}
	return processors[kind]
}

func noMarkers(*mdast.Tree, mdast.NodeID, Options) ([]Marker, error) {
	return nil, nil
}

func noStyles(*mdast.Tree, mdast.NodeID) ([]Style, error) {
	return nil, nil
}

func hide(n *mdast.Node) Marker {
	return Marker{Start: n.Start, End: n.End}
}

// syntaxChildren returns the Syntax leaves directly under id.
func syntaxChildren(t *mdast.Tree, id mdast.NodeID) []*mdast.Node {
	var out []*mdast.Node
	for _, child := range t.Children(id) {
		if c := t.Node(child); c.Kind == mdast.ElementSyntax {
			out = append(out, c)
		}
	}
	return out
}

// edges returns the first and last children of id, which must both be
// Syntax leaves.
func edges(t *mdast.Tree, id mdast.NodeID) (*mdast.Node, *mdast.Node, error) {
	children := t.Children(id)
	if len(children) < 2 {
		return nil, nil, invariant(t, id, "expected opening and closing syntax")
	}
	first, last := t.Node(children[0]), t.Node(children[len(children)-1])
	if first.Kind != mdast.ElementSyntax || last.Kind != mdast.ElementSyntax {
		return nil, nil, invariant(t, id, "expected opening and closing syntax")
	}
	return first, last, nil
}

func syntaxMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	syntax := syntaxChildren(t, id)
	if len(syntax) == 0 {
		return nil, invariant(t, id, "missing syntax")
	}
	markers := make([]Marker, 0, len(syntax))
	for _, s := range syntax {
		markers = append(markers, hide(s))
	}
	return markers, nil
}

func pairedMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	first, last, err := edges(t, id)
	if err != nil {
		return nil, err
	}
	return []Marker{hide(first), hide(last)}, nil
}

func headingMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	children := t.Children(id)
	if len(children) == 0 {
		return nil, invariant(t, id, "missing heading marker")
	}
	first := t.Node(children[0])
	if first.Kind != mdast.ElementSyntax || !strings.Contains(t.Text(children[0]), "#") {
		return nil, invariant(t, id, "missing heading marker")
	}
	return []Marker{hide(first)}, nil
}

// fenceMarkers hides the opening fence line and, when present, the
// closing one.
func fenceMarkers(t *mdast.Tree, id mdast.NodeID, opts Options) ([]Marker, error) {
	children := t.Children(id)
	if len(children) == 0 || t.Kind(children[0]) != mdast.ElementSyntax {
		return nil, invariant(t, id, "missing opening fence")
	}
	return syntaxMarkers(t, id, opts)
}

func calloutMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	children := t.Children(id)
	header := -1
	for i, child := range children {
		if t.Kind(child) == mdast.ElementSyntax && strings.HasPrefix(t.Text(child), "[!") {
			header = i
			break
		}
	}
	if header < 1 {
		return nil, invariant(t, id, "missing callout header")
	}

	var markers []Marker
	for i, child := range children {
		c := t.Node(child)
		if c.Kind != mdast.ElementSyntax {
			continue
		}
		marker := hide(c)
		if i == header && !calloutHasTitle(t, children, header) {
			marker.Replacement = cases.Title(language.English).String(t.Node(id).Label)
		}
		markers = append(markers, marker)
	}
	return markers, nil
}

func calloutHasTitle(t *mdast.Tree, children []mdast.NodeID, header int) bool {
	if header+1 >= len(children) {
		return false
	}
	next := t.Node(children[header+1])
	if next.Kind == mdast.ElementSyntax {
		return false
	}
	c := t.Source[next.Start]
	return c != '\n' && c != '\r'
}

func footnoteDefinitionMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	syntax := syntaxChildren(t, id)
	if len(syntax) != 2 {
		return nil, invariant(t, id, "expected \"[^\" and \"]:\"")
	}
	return []Marker{hide(syntax[0]), hide(syntax[1])}, nil
}

func listMarkers(t *mdast.Tree, id mdast.NodeID, opts Options) ([]Marker, error) {
	syntax := syntaxChildren(t, id)
	if len(syntax) != 1 {
		return nil, invariant(t, id, "missing list marker")
	}
	if t.Node(id).Label == "ordered" {
		return nil, nil
	}
	marker := hide(syntax[0])
	marker.Replacement = opts.BulletGlyph
	return []Marker{marker}, nil
}

func ruleMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	syntax := syntaxChildren(t, id)
	if len(syntax) != 1 {
		return nil, invariant(t, id, "missing rule syntax")
	}
	marker := hide(syntax[0])
	marker.Replacement = " "
	return []Marker{marker}, nil
}

// wikiMarkers hides the brackets of an internal link or embed. With an
// alias the destination and pipe are hidden too, leaving only the alias.
func wikiMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	first, last, err := edges(t, id)
	if err != nil {
		return nil, err
	}

	for _, child := range t.Children(id) {
		if c := t.Node(child); c.Kind == mdast.ElementText {
			return []Marker{{Start: first.Start, End: c.Start}, hide(last)}, nil
		}
	}
	return []Marker{hide(first), hide(last)}, nil
}

// inlineLinkMarkers hides "[" and everything from "](" to the end.
func inlineLinkMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	first, last, err := edges(t, id)
	if err != nil {
		return nil, err
	}

	children := t.Children(id)
	for i := len(children) - 2; i > 0; i-- {
		if c := t.Node(children[i]); c.Kind == mdast.ElementLinkTarget {
			prev := t.Node(children[i-1])
			if prev.Kind != mdast.ElementSyntax {
				break
			}
			return []Marker{hide(first), {Start: prev.Start, End: last.End}}, nil
		}
	}
	return nil, invariant(t, id, "missing link destination")
}

func hashtagMarkers(t *mdast.Tree, id mdast.NodeID, opts Options) ([]Marker, error) {
	children := t.Children(id)
	if len(children) == 0 || t.Kind(children[0]) != mdast.ElementSyntax || t.Text(children[0]) != "#" {
		return nil, invariant(t, id, "missing '#'")
	}
	if !opts.HashtagPadding {
		return []Marker{hide(t.Node(children[0]))}, nil
	}
	n := t.Node(id)
	markers := []Marker{{Start: n.Start, End: n.Start + 1, Replacement: " "}}
	// A space before a following '#' would turn it into a tag on re-parse.
	if n.End < len(t.Source) && t.Source[n.End] == '#' {
		return markers, nil
	}
	return append(markers, Marker{Start: n.End, End: n.End, Replacement: " "}), nil
}

func blockIDMarkers(t *mdast.Tree, id mdast.NodeID, _ Options) ([]Marker, error) {
	children := t.Children(id)
	if len(children) == 0 || t.Kind(children[0]) != mdast.ElementSyntax {
		return nil, invariant(t, id, "missing '^'")
	}
	return []Marker{hide(t.Node(children[0]))}, nil
}

func nodeStyle(t *mdast.Tree, id mdast.NodeID, tag Tag, payload string) []Style {
	n := t.Node(id)
	return []Style{{Start: n.Start, End: n.End, Tag: tag, Payload: payload}}
}

func fixedStyle(t *mdast.Tree, id mdast.NodeID) ([]Style, error) {
	tag, ok := tagFor[t.Kind(id)]
	if !ok {
		return nil, invariant(t, id, "no style tag")
	}
	return nodeStyle(t, id, tag, ""), nil
}

func labelStyle(t *mdast.Tree, id mdast.NodeID) ([]Style, error) {
	tag, ok := tagFor[t.Kind(id)]
	if !ok {
		return nil, invariant(t, id, "no style tag")
	}
	return nodeStyle(t, id, tag, t.Node(id).Label), nil
}

func headingStyles(t *mdast.Tree, id mdast.NodeID) ([]Style, error) {
	return nodeStyle(t, id, HeadingTag(t.Node(id).Level), ""), nil
}

func quoteStyles(t *mdast.Tree, id mdast.NodeID) ([]Style, error) {
	return nodeStyle(t, id, TagBlockQuote, strconv.Itoa(t.Node(id).Level)), nil
}

func listStyles(t *mdast.Tree, id mdast.NodeID) ([]Style, error) {
	n := t.Node(id)
	tag := TagUnorderedList
	if n.Label == "ordered" {
		tag = TagOrderedList
	}
	return nodeStyle(t, id, tag, strconv.Itoa(n.Level)), nil
}

// TagOf returns the style tag of a node, if its kind is styled.
func TagOf(t *mdast.Tree, id mdast.NodeID) (Tag, bool) {
	styles, err := ProcessorFor(t.Kind(id)).Styles(t, id)
	if err != nil || len(styles) == 0 {
		return "", false
	}
	return styles[0].Tag, true
}
