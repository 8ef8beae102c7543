package main

import (
	"github.com/aretw0/bigroot/internal/cli"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serves square roots as JSON over HTTP.

Endpoints: GET/POST /sqrt, GET /healthz, GET /info, GET /metrics
and, with a cache configured, GET /cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")
			quiet, _ := cmd.Flags().GetBool("quiet")
			maxBits, _ := cmd.Flags().GetUint64("max-bits")

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			return cli.Serve(sc, cli.ServeOptions{
				Config:  cfg,
				MaxBits: maxBits,
				Debug:   debug,
				Quiet:   quiet,
				Stderr:  cmd.ErrOrStderr(),
			})
		},
	}

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Uint64("max-bits", 0, "Largest precision one request may ask for (0 uses the default)")
	return serveCmd
}
