package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGreetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "greet NAME",
		Short: "Print a greeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.shutdown()

			fmt.Fprintln(cmd.OutOrStdout(), a.commands.Greet(args[0]))
			return nil
		},
	}
}
