// Command render validates and builds portfolio template components
// locally, using the same pipeline the API serves previews with.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var strategy string

	root := &cobra.Command{
		Use:           "render",
		Short:         "Validate and build portfolio template components",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if strategy != "regex" && strategy != "ast" {
				return fmt.Errorf("--wrap must be regex or ast, got %q", strategy)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&strategy, "wrap", "regex", "component wrap strategy (regex|ast)")

	root.AddCommand(
		newValidateCmd(),
		newBuildCmd(&strategy),
		newWatchCmd(&strategy),
	)
	return root
}
