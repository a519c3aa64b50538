package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() domain.Node {
	return domain.Node{Name: "guard", Type: domain.NodeTypePriority, Children: []domain.Node{
		{Name: "flee", Type: domain.NodeTypeSequence, Precondition: &domain.Condition{Expr: "hp < 3 || fear"},
			Children: []domain.Node{{Name: "run", Type: domain.NodeTypeAction, Action: "wait", Params: map[string]any{"ticks": 2}}}},
		{Name: "patrol", Type: domain.NodeTypeLoop, Children: []domain.Node{{Type: domain.NodeTypeAction, Action: "succeed"}}},
	}}
}

func TestReport(t *testing.T) {
	md := Report("guard", sampleTree())

	assert.True(t, strings.HasPrefix(md, "# guard\n"))
	assert.Contains(t, md, "- **guard** `priority`\n  - **flee** `sequence`\n    - **run** `action`")
	assert.Contains(t, md, "| guard/flee | sequence | `hp < 3 \\|\\| fear` |  |")
	assert.Contains(t, md, "| guard/flee/run | action |  | wait(ticks=2) |")
	assert.Contains(t, md, "| guard/patrol | loop |  | forever |")
	assert.Contains(t, md, "5 nodes, 2 leaves.")
}

func TestRenderer(t *testing.T) {
	render := NewRenderer(60)
	out, err := render(Report("guard", sampleTree()))
	require.NoError(t, err)
	assert.Contains(t, out, "guard")
}

func TestStyler_PlainWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	s := NewStyler(&buf)
	assert.Equal(t, "finish", s.Status(domain.Finish))
	assert.Equal(t, "error_transition", NewPlainStyler().Status(domain.ErrorTransition))
	assert.Equal(t, "-", s.Node(""))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
