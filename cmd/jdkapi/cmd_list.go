package main

import (
	"bufio"
	"fmt"

	"github.com/dhamidi/jdkapi/extract"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var flags imageFlags

	cmd := &cobra.Command{
		Use:   "list [image]",
		Short: "Print the candidate classes of a runtime image",
		Long: `Print the classes of exported packages of the boot module graph, one
internal name per line, in image order. The image defaults to
$JAVA_HOME/lib/modules.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			opts, err := flags.options(cmd, path)
			if err != nil {
				return err
			}

			sess, err := extract.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			names, err := sess.Candidates(cmd.Context())
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return w.Flush()
		},
	}

	flags.register(cmd)

	return cmd
}
