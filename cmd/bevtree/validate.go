package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bevtree/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tree]",
	Short: "Check tree definitions for consistency",
	Long:  `Parses, validates and compiles one tree, or every tree in --dir, and reports every problem found.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		if err := cli.Validate(os.Stdout, dir, name); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All trees are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
