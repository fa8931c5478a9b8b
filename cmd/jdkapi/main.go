package main

import (
	"context"
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
	rootCmd := &cobra.Command{
		Use:   "jdkapi",
		Short: "Extract the public API of a JDK runtime image",
		Long: `Extract the public and protected constructors and methods of every
exported class of a JDK runtime image into a compact classinfo file.

Examples:
  jdkapi extract $JAVA_HOME/lib/modules jdk.classinfo
  jdkapi describe $JAVA_HOME/lib/modules java.lang.String
  jdkapi verify jdk.classinfo`,
		SilenceUsage: true,
	}

	registerGlobalFlags(rootCmd)

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newVerifyCmd())

	return rootCmd
}
