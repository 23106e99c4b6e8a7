package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTakeCmd(opts *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Capture one photo and optionally save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.shutdown()

			img, err := a.commands.TakePhoto(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "captured %d bytes (%s)\n", len(img.Bytes), img.MIMEType)

			if !save {
				return nil
			}
			saved, err := a.commands.SavePhoto(cmd.Context(), img.Bytes, img.MIMEType)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, saved.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the photo under the configured storage directory")
	return cmd
}
