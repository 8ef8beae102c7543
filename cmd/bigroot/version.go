package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/bigroot"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of bigroot",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bigroot version %s\n", strings.TrimSpace(bigroot.Version))
		},
	}
}
