package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bevtree/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bevtree",
	Short: "bevtree runs behavior trees defined in YAML or JSON",
	Long: `bevtree loads behavior tree definitions (priority and sticky selectors, sequences,
parallels, loops and actions) from a directory and steps them, serves them or draws them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the tree definitions")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")
}

// sessionOptions reads the flags shared by run and serve. A positional argument names the tree.
func sessionOptions(cmd *cobra.Command, args []string) cli.Options {
	opts := cli.Options{}
	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.Tree, _ = cmd.Flags().GetString("tree")
	opts.LogLevel, _ = cmd.Flags().GetString("log-level")
	opts.LogFile, _ = cmd.Flags().GetString("log-file")
	opts.Blackboard, _ = cmd.Flags().GetString("blackboard")
	opts.Trace, _ = cmd.Flags().GetBool("trace")
	if opts.Tree == "" && len(args) > 0 {
		opts.Tree = args[0]
	}
	return opts
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tree", "t", "", "Tree to load (required when the directory holds several)")
	cmd.Flags().String("blackboard", "", "Initial blackboard as a JSON object")
	cmd.Flags().Bool("trace", false, "Print an OpenTelemetry span per leaf run to stderr")
}
