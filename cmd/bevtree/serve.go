package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bevtree/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [tree]",
	Short: "Drive a tree on a ticker and serve its state over HTTP",
	Long: `Steps the tree on a go-behaviortree ticker and exposes /tree, /active, /graph,
/events and /metrics. With --watch the tree is reloaded when its file changes.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		interval, _ := cmd.Flags().GetDuration("interval")
		watch, _ := cmd.Flags().GetBool("watch")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		opts := cli.ServeOptions{
			Options:  sessionOptions(cmd, args),
			Addr:     addr,
			Interval: interval,
			Watch:    watch,
		}
		fmt.Printf("Starting bevtree server on %s\n", addr)
		fmt.Printf("Serving trees from: %s\n", opts.Dir)
		if err := cli.Serve(ctx, opts); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
		if sig := ctx.Signal(); sig != nil {
			fmt.Printf("\nStopped by %v\n", sig)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addSessionFlags(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("interval", cli.DefaultInterval, "Time between steps")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the tree when its file changes")
}
