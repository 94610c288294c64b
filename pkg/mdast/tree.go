package mdast

// NodeID addresses a node in a Tree's arena.
type NodeID int32

// NoNode is the zero-value sentinel for "no node".
const NoNode NodeID = -1

// Node is a parse tree node. Offsets are absolute byte offsets into the
// tree's source; End is exclusive. Nodes hold no parent pointers: ancestry
// is recovered by walking down from the root.
type Node struct {
	Kind ElementKind

	// Start is the byte offset where the node begins (inclusive).
	Start int

	// End is the byte offset where the node ends (exclusive).
	End int

	// Level carries the heading level, block quote depth or list indent.
	Level int

	// Label carries kind-specific text: the code block language, the
	// callout type, the link destination, the hashtag or block id name.
	Label string

	// Children are ordered by offset and partition [Start, End).
	Children []NodeID
}

// Len returns the length of the node in bytes.
func (n *Node) Len() int {
	return n.End - n.Start
}

// Contains reports whether offset lies in [Start, End).
func (n *Node) Contains(offset int) bool {
	return offset >= n.Start && offset < n.End
}

// Tree is an arena-allocated parse tree over an immutable source.
// A Tree is built once per parse and never mutated afterwards.
type Tree struct {
	Source string
	Tokens []Token
	Nodes  []Node
	Root   NodeID
}

// Node returns the node with the given id. It panics on an invalid id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// Kind returns the kind of the node with the given id.
func (t *Tree) Kind(id NodeID) ElementKind {
	return t.Nodes[id].Kind
}

// Text returns the source text covered by the node.
func (t *Tree) Text(id NodeID) string {
	n := &t.Nodes[id]
	return t.Source[n.Start:n.End]
}

// Children returns the children of the node.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.Nodes[id].Children
}

// Builder appends nodes to a tree arena.
type Builder struct {
	tree *Tree
}

// NewBuilder creates a builder for a tree over source and tokens.
// The root document node is allocated immediately.
func NewBuilder(source string, tokens []Token) *Builder {
	tree := &Tree{
		Source: source,
		Tokens: tokens,
		Nodes:  make([]Node, 0, len(tokens)+1),
	}
	builder := &Builder{tree: tree}
	tree.Root = builder.Add(Node{Kind: ElementDocument, Start: 0, End: len(source)})
	return builder
}

// Add allocates a node and returns its id.
func (b *Builder) Add(node Node) NodeID {
	b.tree.Nodes = append(b.tree.Nodes, node)
	return NodeID(len(b.tree.Nodes) - 1)
}

// Leaf allocates a leaf node covering [start, end).
func (b *Builder) Leaf(kind ElementKind, start, end int) NodeID {
	return b.Add(Node{Kind: kind, Start: start, End: end})
}

// SetChildren replaces the children of a node.
func (b *Builder) SetChildren(id NodeID, children []NodeID) {
	b.tree.Nodes[id].Children = children
}

// Node returns a pointer to a node under construction.
func (b *Builder) Node(id NodeID) *Node {
	return &b.tree.Nodes[id]
}

// Tree returns the built tree. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	return b.tree
}
