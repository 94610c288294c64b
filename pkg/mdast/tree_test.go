package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// buildBold builds the tree for "a **b**" by hand.
func buildBold(t *testing.T) *mdast.Tree {
	t.Helper()

	source := "a **b**"
	builder := mdast.NewBuilder(source, nil)

	para := builder.Add(mdast.Node{Kind: mdast.ElementParagraph, Start: 0, End: 7})
	text := builder.Leaf(mdast.ElementText, 0, 2)
	bold := builder.Add(mdast.Node{Kind: mdast.ElementBold, Start: 2, End: 7})
	open := builder.Leaf(mdast.ElementSyntax, 2, 4)
	inner := builder.Leaf(mdast.ElementText, 4, 5)
	closing := builder.Leaf(mdast.ElementSyntax, 5, 7)

	builder.SetChildren(bold, []mdast.NodeID{open, inner, closing})
	builder.SetChildren(para, []mdast.NodeID{text, bold})

	tree := builder.Tree()
	builder.SetChildren(tree.Root, []mdast.NodeID{para})

	return tree
}

func TestTree_Accessors(t *testing.T) {
	t.Parallel()

	tree := buildBold(t)

	bolds := tree.FindByKind(mdast.ElementBold)
	require.Len(t, bolds, 1)
	assert.Equal(t, "**b**", tree.Text(bolds[0]))
	assert.Equal(t, 5, tree.Node(bolds[0]).Len())
	assert.True(t, tree.Node(bolds[0]).Contains(2))
	assert.False(t, tree.Node(bolds[0]).Contains(7))
	assert.Len(t, tree.Children(bolds[0]), 3)
}

func TestTree_WalkOrder(t *testing.T) {
	t.Parallel()

	tree := buildBold(t)

	var entered, left []mdast.ElementKind
	err := tree.WalkWithContext(tree.Root,
		func(id mdast.NodeID) error {
			entered = append(entered, tree.Kind(id))
			if tree.Kind(id) == mdast.ElementBold {
				return mdast.SkipChildren
			}
			return nil
		},
		func(id mdast.NodeID) error {
			left = append(left, tree.Kind(id))
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []mdast.ElementKind{
		mdast.ElementDocument, mdast.ElementParagraph, mdast.ElementText, mdast.ElementBold,
	}, entered)
	assert.Equal(t, []mdast.ElementKind{
		mdast.ElementText, mdast.ElementParagraph, mdast.ElementDocument,
	}, left)
}

func TestTree_Enclosing(t *testing.T) {
	t.Parallel()

	tree := buildBold(t)

	path := tree.Enclosing(4, 5)
	kinds := make([]mdast.ElementKind, 0, len(path))
	for _, id := range path {
		kinds = append(kinds, tree.Kind(id))
	}
	assert.Equal(t, []mdast.ElementKind{mdast.ElementDocument, mdast.ElementParagraph, mdast.ElementBold}, kinds)

	path = tree.Enclosing(0, 1)
	assert.Len(t, path, 2)
}

func TestTree_ValidatePartition(t *testing.T) {
	t.Parallel()

	tree := buildBold(t)
	assert.True(t, tree.ValidatePartition())
	assert.Len(t, tree.Leaves(), 4)

	broken := buildBold(t)
	bold := broken.FindByKind(mdast.ElementBold)[0]
	broken.Node(bold).Children = broken.Node(bold).Children[:2]
	assert.False(t, broken.ValidatePartition())
}
