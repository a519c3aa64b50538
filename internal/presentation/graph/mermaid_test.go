package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/bevtree/internal/presentation/graph"
	"github.com/aretw0/bevtree/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		root     domain.Node
		contains []string
	}{
		{
			name: "Composite Shapes",
			root: domain.Node{Name: "root", Type: domain.NodeTypePriority, Children: []domain.Node{
				{Name: "keep", Type: domain.NodeTypeSticky},
				{Name: "steps", Type: domain.NodeTypeSequence},
				{Name: "both", Type: domain.NodeTypeParallel, Policy: domain.PolicyAnd},
			}},
			contains: []string{
				`root{"root"}`,
				`root_keep{{"keep"}}`,
				`root_steps[/"steps"/]`,
				`root_both[["both <br/> and"]]`,
			},
		},
		{
			name: "Loop And Action Labels",
			root: domain.Node{Name: "repeat", Type: domain.NodeTypeLoop, Count: domain.Int(3), Children: []domain.Node{
				{Name: "walk", Type: domain.NodeTypeAction, Action: "wait"},
			}},
			contains: []string{
				`repeat(("repeat <br/> ×3"))`,
				`repeat_walk(["walk <br/> wait"])`,
			},
		},
		{
			name: "Edges Carry Order And Preconditions",
			root: domain.Node{Name: "root", Type: domain.NodeTypeSequence, Children: []domain.Node{
				{Type: domain.NodeTypeAction, Action: "succeed"},
				{Type: domain.NodeTypeAction, Action: "fail", Precondition: &domain.Condition{Expr: `name == "x"`}},
			}},
			contains: []string{
				`root -- "1" --> root_succeed`,
				`root -- "2: name == 'x'" --> root_fail`,
			},
		},
		{
			name: "IDs Win Over Paths",
			root: domain.Node{ID: "n0", Name: "root", Type: domain.NodeTypeSequence, Children: []domain.Node{
				{ID: "n1", Name: "my-leaf", Type: domain.NodeTypeAction, Action: "succeed"},
			}},
			contains: []string{
				`n0 -- "1" --> n1`,
				`n1(["my-leaf <br/> succeed"])`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.root, nil)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header:\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	root := domain.Node{Name: "root", Type: domain.NodeTypeSequence, Children: []domain.Node{
		{Name: "a", Type: domain.NodeTypeAction, Action: "succeed"},
		{Name: "b", Type: domain.NodeTypeAction, Action: "succeed"},
	}}

	got := graph.GenerateMermaid(root, &graph.GraphOverlay{
		VisitedNodes: []string{"root/a", "root/a", "root/b"},
		CurrentNode:  "root/b",
	})

	for _, want := range []string{"classDef visited", "class root_b current;"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
	if strings.Count(got, "class root_a visited;") != 1 {
		t.Errorf("visited nodes should be deduplicated:\n%s", got)
	}
}
