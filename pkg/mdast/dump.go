package mdast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format renders the subtree at id on one line. Containers print as
// Kind:level<label>(children...); Text leaves print as quoted strings,
// Syntax leaves with an S prefix and LinkTarget leaves with a T prefix.
func (t *Tree) Format(id NodeID) string {
	var sb strings.Builder
	t.format(&sb, id)
	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, id NodeID) {
	n := &t.Nodes[id]
	text := strconv.Quote(t.Source[n.Start:n.End])

	switch n.Kind {
	case ElementText:
		sb.WriteString(text)
		return
	case ElementSyntax:
		sb.WriteString("S" + text)
		return
	case ElementLinkTarget:
		sb.WriteString("T" + text)
		return
	}

	sb.WriteString(n.Kind.String())
	if n.Level > 0 {
		sb.WriteString(":" + strconv.Itoa(n.Level))
	}
	if n.Label != "" {
		sb.WriteString("<" + n.Label + ">")
	}
	sb.WriteByte('(')
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		t.format(sb, child)
	}
	sb.WriteByte(')')
}

// Dump writes an indented, one-node-per-line view of the tree with byte
// ranges, for debugging.
func (t *Tree) Dump(w io.Writer) error {
	depth := 0
	return t.WalkWithContext(t.Root,
		func(id NodeID) error {
			n := &t.Nodes[id]
			line := fmt.Sprintf("%s%s [%d,%d)", strings.Repeat("  ", depth), n.Kind, n.Start, n.End)
			if n.Level > 0 {
				line += fmt.Sprintf(" level=%d", n.Level)
			}
			if n.Label != "" {
				line += fmt.Sprintf(" label=%q", n.Label)
			}
			if n.Kind.IsLeaf() {
				line += " " + strconv.Quote(t.Source[n.Start:n.End])
			}
			depth++
			_, err := fmt.Fprintln(w, line)
			return err
		},
		func(NodeID) error {
			depth--
			return nil
		})
}
