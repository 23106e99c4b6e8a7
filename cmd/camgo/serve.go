package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/CamGo/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	webPort := &webPortFlag{defaultPort: 8080}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and the invoke API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			broadcaster := web.NewStatusBroadcaster()
			a, err := newApp(cmd, opts, io.MultiWriter(os.Stderr, web.BroadcastWriter(broadcaster)))
			if err != nil {
				return err
			}
			defer a.shutdown()

			port := a.cfg.Web.Port
			if p := webPort.port(); p > 0 {
				port = p
			}
			srv, err := web.NewServer(web.Options{
				Addr:               fmt.Sprintf(":%d", port),
				RateLimitPerMinute: a.cfg.Web.RateLimitPerMinute,
				MaxBodyBytes:       a.cfg.Web.MaxBodyBytes,
			}, a.commands, broadcaster)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	f := cmd.Flags().VarPF(webPort, "web", "", "override web.port; bare --web uses 8080, --web=8980 for a custom port")
	f.NoOptDefVal = strconv.Itoa(webPort.defaultPort)
	return cmd
}
