package export

import (
	"strconv"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark/ast"
)

// headingIDs generates heading anchors with the same slugs wikilinks use.
type headingIDs struct {
	seen map[string]bool
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]bool)}
}

// Generate implements parser.IDs.
func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := slug.Make(string(value))
	if base == "" {
		base = "heading"
	}

	id := base
	for i := 1; h.seen[id]; i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	h.seen[id] = true
	return []byte(id)
}

// Put implements parser.IDs.
func (h *headingIDs) Put(value []byte) {
	h.seen[string(value)] = true
}
