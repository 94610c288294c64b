package export

import (
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/livemd/pkg/fix"
	"github.com/yaklabco/livemd/pkg/mdast"
)

//nolint:gochecknoglobals // Read-only lookup table.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".avif": true,
}

// rewriter turns dialect constructs into CommonMark, GFM and inline HTML.
type rewriter struct {
	tree      *mdast.Tree
	opts      Options
	builder   *fix.EditBuilder
	footnotes []string
	title     string
}

// Rewrite converts dialect Markdown into GitHub Flavored Markdown with
// inline HTML. Wikilinks become links, highlights become <mark>, comments
// are dropped and inline footnotes become numbered footnotes.
func (e *Exporter) Rewrite(source string) (string, error) {
	out, _, err := e.rewrite(source)
	return out, err
}

func (e *Exporter) rewrite(source string) (string, string, error) {
	tree := e.parser.Parse(source)
	rw := &rewriter{tree: tree, opts: e.opts, builder: fix.NewEditBuilder()}

	if err := tree.Walk(tree.Root, rw.visit); err != nil {
		return "", "", err
	}

	out, _, err := rw.builder.Apply(source)
	if err != nil {
		return "", "", fmt.Errorf("rewrite: %w", err)
	}

	if len(rw.footnotes) > 0 {
		out = strings.TrimRight(out, "\n") + "\n\n" + strings.Join(rw.footnotes, "\n") + "\n"
	}
	return out, rw.title, nil
}

func (r *rewriter) visit(id mdast.NodeID) error {
	node := r.tree.Node(id)

	switch node.Kind {
	case mdast.ElementHeading:
		if r.title == "" {
			r.title = strings.TrimSpace(r.plainText(id))
		}
		return nil
	case mdast.ElementInternalLink:
		r.builder.ReplaceRange(node.Start, node.End, r.internalLink(id))
	case mdast.ElementEmbed:
		r.builder.ReplaceRange(node.Start, node.End, r.embed(id))
	case mdast.ElementHighlight:
		r.wrapSyntax(id, "<mark>", "</mark>")
		return nil
	case mdast.ElementComment, mdast.ElementCommentBlock:
		r.builder.Delete(node.Start, node.End)
	case mdast.ElementHashtag:
		r.builder.ReplaceRange(node.Start, node.End, fmt.Sprintf(`<span class="tag">#%s</span>`, html.EscapeString(node.Label)))
	case mdast.ElementBlockID:
		r.builder.ReplaceRange(node.Start, node.End, fmt.Sprintf(`<a id="^%s"></a>`, html.EscapeString(node.Label)))
	case mdast.ElementInlineFootnote:
		r.inlineFootnote(id)
	case mdast.ElementCallout:
		r.callout(id)
		return nil
	default:
		return nil
	}
	return mdast.SkipChildren
}

// syntaxLeaves returns the Syntax children of id.
func (r *rewriter) syntaxLeaves(id mdast.NodeID) []mdast.NodeID {
	var out []mdast.NodeID
	for _, child := range r.tree.Children(id) {
		if r.tree.Kind(child) == mdast.ElementSyntax {
			out = append(out, child)
		}
	}
	return out
}

// childText returns the source of the first child of kind, or "".
func (r *rewriter) childText(id mdast.NodeID, kind mdast.ElementKind) (string, bool) {
	for _, child := range r.tree.Children(id) {
		if r.tree.Kind(child) == kind {
			return r.tree.Text(child), true
		}
	}
	return "", false
}

// plainText concatenates the non-syntax leaves under id.
func (r *rewriter) plainText(id mdast.NodeID) string {
	var sb strings.Builder
	_ = r.tree.Walk(id, func(child mdast.NodeID) error {
		switch r.tree.Kind(child) {
		case mdast.ElementText, mdast.ElementLinkTarget:
			sb.WriteString(r.tree.Text(child))
		case mdast.ElementComment:
			return mdast.SkipChildren
		}
		return nil
	})
	return sb.String()
}

func (r *rewriter) wrapSyntax(id mdast.NodeID, open, closing string) {
	syntax := r.syntaxLeaves(id)
	if len(syntax) < 2 {
		return
	}
	first := r.tree.Node(syntax[0])
	last := r.tree.Node(syntax[len(syntax)-1])
	r.builder.ReplaceRange(first.Start, first.End, open)
	r.builder.ReplaceRange(last.Start, last.End, closing)
}

func (r *rewriter) internalLink(id mdast.NodeID) string {
	node := r.tree.Node(id)
	text, ok := r.childText(id, mdast.ElementText)
	if !ok {
		text = displayTarget(node.Label)
	}
	return fmt.Sprintf("[%s](%s)", escapeLinkText(text), r.href(node.Label))
}

func (r *rewriter) embed(id mdast.NodeID) string {
	node := r.tree.Node(id)
	dest := node.Label
	alt, ok := r.childText(id, mdast.ElementText)
	if !ok {
		alt = path.Base(dest)
	}

	if imageExtensions[strings.ToLower(path.Ext(dest))] {
		return fmt.Sprintf("![%s](<%s>)", escapeLinkText(alt), dest)
	}
	return fmt.Sprintf(`<a class="embed" href="%s">%s</a>`, html.EscapeString(r.href(dest)), html.EscapeString(alt))
}

// href resolves a wikilink destination "note#heading" or "note#^block".
func (r *rewriter) href(dest string) string {
	note, fragment, _ := strings.Cut(dest, "#")

	var sb strings.Builder
	if note = strings.TrimSpace(note); note != "" {
		sb.WriteString(slug.Make(note))
		sb.WriteString(r.opts.LinkSuffix)
	}
	if fragment = strings.TrimSpace(fragment); fragment != "" {
		sb.WriteByte('#')
		if strings.HasPrefix(fragment, "^") {
			sb.WriteString(fragment)
		} else {
			sb.WriteString(slug.Make(fragment))
		}
	}
	return sb.String()
}

func (r *rewriter) inlineFootnote(id mdast.NodeID) {
	node := r.tree.Node(id)
	syntax := r.syntaxLeaves(id)
	if len(syntax) < 2 {
		return
	}

	body := r.tree.Source[r.tree.Node(syntax[0]).End:r.tree.Node(syntax[len(syntax)-1]).Start]
	label := fmt.Sprintf("inline-%d", len(r.footnotes)+1)
	r.footnotes = append(r.footnotes, fmt.Sprintf("[^%s]: %s", label, body))
	r.builder.ReplaceRange(node.Start, node.End, "[^"+label+"]")
}

// callout replaces the "[!type]" header with a marker span. A callout
// without a title shows its type.
func (r *rewriter) callout(id mdast.NodeID) {
	node := r.tree.Node(id)
	syntax := r.syntaxLeaves(id)
	if len(syntax) < 2 {
		return
	}
	header := r.tree.Node(syntax[1])

	marker := fmt.Sprintf(`<span class="callout" data-callout="%s"></span>`, html.EscapeString(strings.ToLower(node.Label)))
	if !r.hasTitle(id, header.End) {
		marker += "**" + cases.Title(language.English).String(node.Label) + "**"
	}
	r.builder.ReplaceRange(header.Start, header.End, marker+" ")
}

// hasTitle reports whether text follows the callout header on its line.
func (r *rewriter) hasTitle(id mdast.NodeID, headerEnd int) bool {
	rest := r.tree.Source[headerEnd:r.tree.Node(id).End]
	line, _, _ := strings.Cut(rest, "\n")
	return strings.TrimSpace(line) != ""
}

func displayTarget(dest string) string {
	note, fragment, found := strings.Cut(dest, "#")
	switch {
	case !found:
		return dest
	case note == "":
		return strings.TrimPrefix(fragment, "^")
	default:
		return note + " > " + strings.TrimPrefix(fragment, "^")
	}
}

func escapeLinkText(s string) string {
	return strings.NewReplacer(`[`, `\[`, `]`, `\]`).Replace(s)
}
