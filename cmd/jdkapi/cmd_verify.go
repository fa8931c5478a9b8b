package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jdkapi/classinfo"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that a classinfo file is well formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, nil); err != nil {
				return err
			}
			return runVerify(cmd, args[0])
		},
	}

	return cmd
}

func runVerify(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open classinfo file: %w", err)
	}
	defer f.Close()

	records, err := classinfo.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var ctors, methods int
	for _, r := range records {
		ctors += len(r.Constructors())
		methods += len(r.Methods())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d classes, %d constructors, %d methods\n",
		path, len(records), ctors, methods)
	return nil
}
