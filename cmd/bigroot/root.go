package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bigroot/internal/cli"
	"github.com/aretw0/bigroot/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bigroot [flags] [NUMBER...]",
		Short: "Arbitrary-precision square roots using integer arithmetic only",
		Long: `bigroot prints the square root of each NUMBER to any precision, in any base from 2 to 36.

Numbers may use '_' separators and a decimal exponent (1e18). With no NUMBER,
one number per line is read from standard input until EOF, "exit" or "quit".

Settings are read from bigroot.yaml (or --config) and overridden by flags.`,
		Example: `  bigroot 2
  bigroot -d 1000 2 3 5
  bigroot -b 64 -o 16 999999999999999989
  bigroot -z -d 40 5          # golden ratio
  seq 1 10 | bigroot -d 20`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")
			quiet, _ := cmd.Flags().GetBool("quiet")

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			err = cli.RunCompute(sc, cli.ComputeOptions{
				Config: cfg,
				Args:   args,
				Debug:  debug,
				Quiet:  quiet,
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			return cli.HandleExecutionError(cmd.ErrOrStderr(), err, sc.Signal())
		},
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", config.DefaultPath, "Config file (YAML or JSON)")
	pf.Bool("debug", false, "Enable debug logging on stderr")
	pf.BoolP("quiet", "q", false, "Suppress headers and status lines")
	pf.String("log-level", "", "Log level: off, debug, info, warn, error")
	pf.Uint("shift-bits", 0, "Digit-group width in bits: 2, 4, 8 or 16")
	pf.Bool("keep-zeros", false, "Keep trailing fractional zeros")
	pf.String("cache", "", "Result cache: none, memory or redis")
	pf.String("redis-addr", "", "Redis address for --cache redis")
	pf.Duration("cache-ttl", 0, "Expiry of cached results (0 keeps them)")

	f := rootCmd.Flags()
	f.Uint64P("bits", "b", 0, "Fractional bits to compute (overrides --digits)")
	f.Uint64P("digits", "d", 0, "Fractional digits to compute in the output base")
	f.IntP("base", "o", 10, "Output base, 2..36")
	f.BoolP("list", "l", false, "Print one digit per line with its position")
	f.BoolP("wrap", "w", false, "Wrap digits at 80 columns")
	f.String("format", "", "Output format: plain, list, wrap, json, markdown")
	f.BoolP("progress", "p", false, "Show progress on stderr")
	f.String("progress-mode", "", "Progress display: off, text, bar, auto")
	f.BoolP("golden", "z", false, "Compute (1 + sqrt(N)) / 2 instead")
	rootCmd.MarkFlagsMutuallyExclusive("list", "wrap", "format")

	rootCmd.AddCommand(newServeCmd(), newMCPCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
