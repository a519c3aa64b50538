package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/bevtree/internal/logging"
	"github.com/aretw0/bevtree/internal/presentation/graph"
	"github.com/aretw0/bevtree/internal/presentation/tui"
	"github.com/aretw0/bevtree/pkg/domain"
)

// Graph formats.
const (
	FormatMermaid = "mermaid"
	FormatReport  = "report"
)

// Graph writes the tree as Mermaid or as a markdown report.
// The report is rendered with glamour when w is a terminal.
func Graph(w io.Writer, opts Options, format string) error {
	engine, err := createEngine(opts, logging.NewNop(), domain.LifecycleHooks{})
	if err != nil {
		return err
	}
	def := engine.Definition()

	switch format {
	case FormatMermaid, "":
		fmt.Fprint(w, graph.GenerateMermaid(def, nil))
	case FormatReport:
		report := tui.Report(engine.Name, def)
		if tui.IsTerminal(w) {
			rendered, err := tui.NewRenderer(0)(report)
			if err == nil {
				report = rendered
			}
		}
		fmt.Fprint(w, report)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatMermaid, FormatReport)
	}
	return nil
}
