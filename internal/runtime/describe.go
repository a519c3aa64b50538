package runtime

import (
	"fmt"

	"github.com/aretw0/bevtree/pkg/domain"
)

// Describe rebuilds a declarative view of the subtree rooted at id.
// Preconditions and actions are opaque at this level and are not reproduced.
// Metadata carries the runtime handle and leaf lifecycle state.
func (t *Tree) Describe(id NodeID) domain.Node {
	if !t.valid(id) {
		return domain.Node{}
	}
	n := &t.nodes[id]
	def := domain.Node{
		ID:   fmt.Sprintf("n%d", id),
		Name: n.name,
		Type: n.kind,
		Metadata: map[string]string{
			"handle": fmt.Sprint(int(id)),
		},
	}
	if n.precondition != nil {
		def.Metadata["precondition"] = fmt.Sprintf("%T", n.precondition)
	}
	switch impl := n.impl.(type) {
	case *parallel:
		def.Policy = impl.policy
	case *loop:
		def.Count = domain.Int(impl.limit)
	case *terminal:
		def.Metadata["status"] = impl.status.String()
	}
	for _, c := range n.children {
		def.Children = append(def.Children, t.Describe(c))
	}
	return def
}

// Path returns the slash-separated names from the root down to id.
func (t *Tree) Path(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	path := t.nodes[id].name
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		path = t.nodes[p].name + "/" + path
	}
	return path
}
