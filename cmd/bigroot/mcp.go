package main

import (
	"github.com/aretw0/bigroot/internal/cli"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the calculator to AI agents as the "sqrt" MCP tool.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")
			transport, _ := cmd.Flags().GetString("transport")
			port, _ := cmd.Flags().GetInt("port")
			maxBits, _ := cmd.Flags().GetUint64("max-bits")

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			return cli.ServeMCP(sc, cli.MCPOptions{
				Config:    cfg,
				Transport: transport,
				Port:      port,
				MaxBits:   maxBits,
				Debug:     debug,
				Stderr:    cmd.ErrOrStderr(),
			})
		},
	}

	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Uint64("max-bits", 0, "Largest precision one call may ask for (0 uses the default)")
	return mcpCmd
}
