package tui

import (
	"io"
	"os"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Styler colours step output. Without a terminal it emits plain text.
type Styler struct {
	profile termenv.Profile
}

// NewStyler picks a colour profile for w.
func NewStyler(w io.Writer) *Styler {
	if !IsTerminal(w) {
		return &Styler{profile: termenv.Ascii}
	}
	return &Styler{profile: termenv.ColorProfile()}
}

// NewPlainStyler never colours.
func NewPlainStyler() *Styler {
	return &Styler{profile: termenv.Ascii}
}

// Status renders a RunningStatus: executing in yellow, finish in green, error_transition in red.
func (s *Styler) Status(status domain.RunningStatus) string {
	color := "#facc15"
	switch status {
	case domain.Finish:
		color = "#4ade80"
	case domain.ErrorTransition:
		color = "#f87171"
	}
	return s.profile.String(status.String()).Foreground(s.profile.Color(color)).String()
}

// Node renders a node path in bold.
func (s *Styler) Node(path string) string {
	if path == "" {
		path = "-"
	}
	return s.profile.String(path).Bold().String()
}

// Muted renders secondary text.
func (s *Styler) Muted(text string) string {
	return s.profile.String(text).Faint().String()
}
