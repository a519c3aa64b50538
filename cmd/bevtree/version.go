package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/bevtree"
	"github.com/aretw0/bevtree/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bevtree",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, strings.TrimSpace(bevtree.Version))
			return
		}
		fmt.Printf("bevtree version %s\n", strings.TrimSpace(bevtree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
