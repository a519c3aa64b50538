package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bevtree/pkg/domain"
)

// Report builds a markdown summary of a tree definition: an outline and a node table.
func Report(title string, root domain.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("## Outline\n\n")
	depth := map[*domain.Node]int{&root: 0}
	var rows [][4]string
	counts := make(map[string]int)
	root.Walk(func(path string, n *domain.Node) bool {
		d := depth[n]
		for i := range n.Children {
			depth[&n.Children[i]] = d + 1
		}
		counts[n.Type]++
		fmt.Fprintf(&sb, "%s- **%s** `%s`\n", strings.Repeat("  ", d), n.DisplayName(), n.Type)

		when := ""
		if n.Precondition != nil {
			when = "`" + n.Precondition.String() + "`"
		}
		rows = append(rows, [4]string{path, n.Type, when, details(n)})
		return true
	})

	sb.WriteString("\n## Nodes\n\n")
	sb.WriteString("| Path | Type | Precondition | Details |\n")
	sb.WriteString("|------|------|--------------|---------|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", cell(r[0]), r[1], cell(r[2]), cell(r[3]))
	}

	fmt.Fprintf(&sb, "\n%d nodes, %d leaves.\n", len(rows), counts[domain.NodeTypeAction])
	return sb.String()
}

func details(n *domain.Node) string {
	switch n.Type {
	case domain.NodeTypeParallel:
		return "policy " + string(n.ParallelPolicy())
	case domain.NodeTypeLoop:
		if n.LoopCount() == domain.InfiniteLoop {
			return "forever"
		}
		return fmt.Sprintf("%d times", n.LoopCount())
	case domain.NodeTypeAction:
		if len(n.Params) == 0 {
			return n.Action
		}
		keys := make([]string, 0, len(n.Params))
		for k, v := range n.Params {
			keys = append(keys, fmt.Sprintf("%s=%v", k, v))
		}
		sort.Strings(keys)
		return fmt.Sprintf("%s(%s)", n.Action, strings.Join(keys, ", "))
	}
	return ""
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
