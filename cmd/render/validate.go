package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check component sources against the denylist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.New()
			failed := 0
			for _, file := range args {
				code, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				res := v.Validate(string(code))
				if res.IsValid {
					fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", file)
					continue
				}
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n%s", file, formatErrors(res))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}
