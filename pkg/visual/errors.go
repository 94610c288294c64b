package visual

import (
	"fmt"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// InvariantError reports a parse tree that a processor cannot handle, such
// as a bold node without two delimiter runs. It indicates a bug in the
// parser or processor, never malformed input.
type InvariantError struct {
	Kind   mdast.ElementKind
	Start  int
	End    int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s node at [%d,%d): %s", e.Kind, e.Start, e.End, e.Reason)
}

func invariant(t *mdast.Tree, id mdast.NodeID, reason string) *InvariantError {
	n := t.Node(id)
	return &InvariantError{Kind: n.Kind, Start: n.Start, End: n.End, Reason: reason}
}
