package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd(strategy *string) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Generate the standalone HTML document for a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, res, err := build(newEngine(*strategy), args[0], opts)
			if errors.Is(err, errInvalidComponent) {
				fmt.Fprint(cmd.ErrOrStderr(), formatErrors(res))
			}
			if err != nil {
				return err
			}
			if opts.output == "" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", opts.output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.customizations, "customizations", "c", "", "YAML file with customization values")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}
