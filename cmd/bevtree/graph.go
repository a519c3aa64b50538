package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bevtree/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [tree]",
	Short: "Export the tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the tree, or a markdown report with --format report.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := sessionOptions(cmd, args)
		opts.LogLevel = "error"
		format, _ := cmd.Flags().GetString("format")

		if err := cli.Graph(os.Stdout, opts, format); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("tree", "t", "", "Tree to draw (required when the directory holds several)")
	graphCmd.Flags().StringP("format", "f", cli.FormatMermaid, "Output format: mermaid or report")
}
