package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the bevtree ASCII banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                _", "#34d399"},
		{"| |__   _____   _| |_ _ __ ___  ___", "#2dd4bf"},
		{"| '_ \\ / _ \\ \\ / / __| '__/ _ \\/ _ \\", "#22d3ee"},
		{"| |_) |  __/\\ V /| |_| | |  __/  __/", "#38bdf8"},
		{"|_.__/ \\___| \\_/  \\__|_|  \\___|\\___|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
