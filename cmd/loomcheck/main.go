// Package main implements the loomcheck CLI, a thin runner that sets the
// checker's LOOM_* environment variables and execs a compiled test binary
// (or any program importing github.com/kolkov/loomgo/loom) with them.
//
// Unlike the racedetector tool this module's internal packages are
// descended from, loomcheck performs no source instrumentation: a
// loom-checked program calls loom.Model directly, so there is nothing for
// the CLI to rewrite. Its only job is forwarding configuration and exit
// codes — the "mechanical forwarding wrapper" spec §1 places out of scope
// once the core primitives are correct.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loomcheck",
		Short: "Run a compiled loom test binary with exploration bounds set via environment",
		Long: `loomcheck runs a compiled test binary (or any program importing
github.com/kolkov/loomgo/loom) with the LOOM_MAX_BRANCHES, LOOM_MAX_PREEMPTIONS,
LOOM_MAX_THREADS and LOOM_CHECKPOINT_INTERVAL environment variables set from
flags, then forwards the child's exit code.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}
