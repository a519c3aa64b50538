package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/bevtree/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
// Entries are node IDs as produced by NodeID.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// NodeID returns the Mermaid identifier of a node: its ID when set, its path otherwise.
func NodeID(path string, n *domain.Node) string {
	if n.ID != "" {
		return sanitizeMermaidID(n.ID)
	}
	return sanitizeMermaidID(path)
}

// GenerateMermaid produces a Mermaid flowchart of the tree rooted at root.
// It applies semantic styling:
// - Priority selector: {Rhombus}
// - Sticky selector: {{Hexagon}}
// - Sequence: [/Parallelogram/]
// - Parallel: [[Subroutine]]
// - Loop: ((Circle))
// - Action: ([Stadium])
// Edges are numbered in evaluation order and carry the child's precondition.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(root domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*domain.Node]string)
	root.Walk(func(path string, node *domain.Node) bool {
		id := NodeID(path, node)
		ids[node] = id

		opener, closer := shape(node.Type)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escape(label(node)), closer))

		for i := range node.Children {
			child := &node.Children[i]
			edge := fmt.Sprintf("%d", i+1)
			if child.Precondition != nil {
				edge += ": " + child.Precondition.String()
			}
			childID := NodeID(path+"/"+child.DisplayName(), child)
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", id, escape(edge), childID))
		}
		return true
	})

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func shape(nodeType string) (string, string) {
	switch nodeType {
	case domain.NodeTypePriority:
		return "{", "}"
	case domain.NodeTypeSticky:
		return "{{", "}}"
	case domain.NodeTypeSequence:
		return "[/", "/]"
	case domain.NodeTypeParallel:
		return "[[", "]]"
	case domain.NodeTypeLoop:
		return "((", "))"
	case domain.NodeTypeAction:
		return "([", "])"
	default:
		return "[", "]"
	}
}

func label(n *domain.Node) string {
	name := n.DisplayName()
	switch n.Type {
	case domain.NodeTypeParallel:
		return fmt.Sprintf("%s <br/> %s", name, n.ParallelPolicy())
	case domain.NodeTypeLoop:
		if n.LoopCount() == domain.InfiniteLoop {
			return name + " <br/> ∞"
		}
		return fmt.Sprintf("%s <br/> ×%d", name, n.LoopCount())
	case domain.NodeTypeAction:
		if n.Action != "" && n.Action != name {
			return fmt.Sprintf("%s <br/> %s", name, n.Action)
		}
	}
	return name
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
