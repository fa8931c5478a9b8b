package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/classinfo"
	"github.com/dhamidi/jdkapi/extract"
	"github.com/dhamidi/jdkapi/format"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var flags imageFlags
	var describeFormat string

	cmd := &cobra.Command{
		Use:   "describe <image> <class>...",
		Short: "Print the classinfo records of individual classes",
		Long: `Print the records the extract command would write for the given
classes. Names may be given in internal (java/util/Map$Entry) or
source (java.util.Map$Entry) form.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(describeFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}

			sess, err := extract.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			names := make([]string, len(args)-1)
			for i, arg := range args[1:] {
				names[i] = classfile.SourceToInternalName(arg)
			}

			stats, err := sess.Pipeline().Run(names, encoderWriter{enc})
			if err != nil {
				return err
			}
			if stats.Filtered > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d classes are not public API\n", stats.Filtered, stats.Candidates)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&describeFormat, "format", "f", "line",
		"output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}

type encoderWriter struct {
	enc format.Encoder
}

func (w encoderWriter) Write(rec *classinfo.Record) error {
	return w.enc.Encode(rec)
}
