package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bevtree/internal/cli"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [tree]",
	Short: "Step a tree and print a trace",
	Long:  `Evaluates and ticks the tree once per step until the root completes, is not runnable or --steps is reached.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps, _ := cmd.Flags().GetInt("steps")
		interval, _ := cmd.Flags().GetDuration("interval")
		continuous, _ := cmd.Flags().GetBool("continuous")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		last, err := cli.Run(ctx, cli.RunOptions{
			Options:    sessionOptions(cmd, args),
			Steps:      steps,
			Interval:   interval,
			Continuous: continuous,
			Output:     os.Stdout,
		})
		if err != nil {
			if sig := ctx.Signal(); sig != nil {
				fmt.Printf("\nInterrupted by %v\n", sig)
				return
			}
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if last.Ran && last.Status == domain.ErrorTransition {
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSessionFlags(runCmd)

	runCmd.Flags().IntP("steps", "n", 100, "Maximum number of steps (0 for no bound)")
	runCmd.Flags().Duration("interval", 0, "Pause between steps")
	runCmd.Flags().Bool("continuous", false, "Keep stepping after the root completes")

	// 'run' is the default when no command is provided
	rootCmd.Run = runCmd.Run
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
