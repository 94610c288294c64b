package mdast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk, or SkipChildren to skip the
// node's subtree.
type WalkFunc func(id NodeID) error

// SkipChildren may be returned by an enter callback to skip a subtree.
//
//nolint:gochecknoglobals // Sentinel error.
var SkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of the tree starting at id.
func (t *Tree) Walk(id NodeID, walkFunc WalkFunc) error {
	return t.WalkWithContext(id, walkFunc, nil)
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil. The leave callback is not called for nodes
// whose enter callback returned SkipChildren.
func (t *Tree) WalkWithContext(id NodeID, enter, leave WalkFunc) error {
	if id == NoNode {
		return nil
	}

	if enter != nil {
		if err := enter(id); err != nil {
			if errors.Is(err, SkipChildren) {
				return nil
			}
			return err
		}
	}

	for _, child := range t.Nodes[id].Children {
		if err := t.WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		return leave(id)
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func (t *Tree) FindAll(predicate func(n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	t.Walk(t.Root, func(id NodeID) error {
		if predicate(&t.Nodes[id]) {
			result = append(result, id)
		}
		return nil
	})

	return result
}

// FindByKind returns all nodes of the specified kind.
func (t *Tree) FindByKind(kind ElementKind) []NodeID {
	return t.FindAll(func(n *Node) bool {
		return n.Kind == kind
	})
}

// Leaves returns the leaf nodes in document order.
func (t *Tree) Leaves() []NodeID {
	return t.FindAll(func(n *Node) bool {
		return len(n.Children) == 0 && n.Kind != ElementDocument
	})
}

// Enclosing returns the path from the root to the deepest node whose range
// contains [start, end]. A node ending exactly at end still encloses it,
// so a caret at the end of a span belongs to that span.
func (t *Tree) Enclosing(start, end int) []NodeID {
	path := []NodeID{t.Root}
	current := t.Root

	for {
		next := NoNode
		for _, child := range t.Nodes[current].Children {
			n := &t.Nodes[child]
			if n.Kind.IsLeaf() {
				continue
			}
			if n.Start <= start && end <= n.End {
				next = child
				break
			}
		}
		if next == NoNode {
			return path
		}
		path = append(path, next)
		current = next
	}
}

// ValidatePartition checks that the leaves of the tree cover
// [0, len(Source)) without gaps or overlaps, and that every node's children
// lie inside it in order.
func (t *Tree) ValidatePartition() bool {
	if len(t.Nodes) == 0 {
		return false
	}

	pos := 0
	valid := true

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	t.Walk(t.Root, func(id NodeID) error {
		n := &t.Nodes[id]
		if n.Start > n.End {
			valid = false
		}

		prev := n.Start
		for _, child := range n.Children {
			c := &t.Nodes[child]
			if c.Start != prev {
				valid = false
			}
			prev = c.End
		}
		if len(n.Children) > 0 && prev != n.End {
			valid = false
		}

		if len(n.Children) == 0 && n.Kind != ElementDocument {
			if n.Start != pos || n.Start == n.End {
				valid = false
			}
			pos = n.End
		}
		return nil
	})

	return valid && pos == len(t.Source)
}
