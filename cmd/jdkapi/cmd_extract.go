package main

import (
	"fmt"

	"github.com/dhamidi/jdkapi/extract"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var flags imageFlags

	cmd := &cobra.Command{
		Use:   "extract <image> <output>",
		Short: "Write the classinfo file for a runtime image",
		Long: `Write one record per exported public or protected class of the
runtime image to output. Classes that cannot be loaded are reported on
stderr and skipped; only failures to produce the output end the run
with a non-zero status.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Output = args[1]

			stats, err := extract.Extract(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d classes written, %d skipped\n",
				opts.Output, stats.Written, stats.Skipped())
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
