package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolkov/loomgo/loom"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the loomcheck version",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := loom.GetInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "loomcheck %s (%s)\n", info.Version, info.Algorithm)
			return nil
		},
	}
}
