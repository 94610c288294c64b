package analysis

import (
	"strings"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// Link is a wikilink or embed found in a note.
type Link struct {
	// Target is the raw destination, such as "Note#Heading" or "#^block".
	Target string `json:"target"`

	// Embed is true for "![[...]]" links.
	Embed bool `json:"embed,omitempty"`

	// Line is the 1-based line of the link.
	Line int `json:"line"`
}

// NoteFacts are the linkable and linking facts of one note.
type NoteFacts struct {
	Path     string   `json:"path"`
	Headings []string `json:"headings,omitempty"`
	BlockIDs []string `json:"blockIds,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Links    []Link   `json:"links,omitempty"`
}

// Collect extracts the facts of the note at path from its parse tree.
// Commented-out content is ignored.
func Collect(path string, tree *mdast.Tree) NoteFacts {
	facts := NoteFacts{Path: path}
	if tree == nil {
		return facts
	}
	lines := mdast.BuildLines(tree.Source)

	_ = tree.Walk(tree.Root, func(id mdast.NodeID) error {
		node := tree.Node(id)
		switch node.Kind {
		case mdast.ElementComment, mdast.ElementCommentBlock:
			return mdast.SkipChildren
		case mdast.ElementHeading:
			facts.Headings = append(facts.Headings, headingText(tree, id))
		case mdast.ElementBlockID:
			facts.BlockIDs = append(facts.BlockIDs, node.Label)
		case mdast.ElementHashtag:
			facts.Tags = append(facts.Tags, node.Label)
		case mdast.ElementInternalLink, mdast.ElementEmbed:
			line, _ := lines.LineAt(node.Start)
			facts.Links = append(facts.Links, Link{
				Target: node.Label,
				Embed:  node.Kind == mdast.ElementEmbed,
				Line:   line,
			})
			return mdast.SkipChildren
		}
		return nil
	})

	return facts
}

// headingText is the visible text of a heading without markers, block ids
// or tags.
func headingText(tree *mdast.Tree, id mdast.NodeID) string {
	var sb strings.Builder
	_ = tree.Walk(id, func(child mdast.NodeID) error {
		switch tree.Kind(child) {
		case mdast.ElementBlockID, mdast.ElementHashtag, mdast.ElementComment:
			return mdast.SkipChildren
		case mdast.ElementText, mdast.ElementLinkTarget:
			sb.WriteString(tree.Text(child))
		}
		return nil
	})
	return strings.TrimSpace(sb.String())
}
