package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/CamGo/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve take_photo, save_photo and greet as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol
			a, err := newApp(cmd, opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.shutdown()

			return mcp.NewServer(a.commands, version).ServeStdio(cmd.Context())
		},
	}
}
