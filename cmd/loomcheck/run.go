package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"
)

// runOptions mirrors internal/loom/config.Options' env-overridable fields,
// one flag per variable, so a CI pipeline can tighten or loosen bounds
// without touching the test binary's own code.
type runOptions struct {
	maxBranches        int
	maxPreemptions     int
	maxThreads         int
	checkpointInterval int
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run -- <binary> [args...]",
		Short: "Run a test binary with LOOM_* exploration bounds set",
		Long: `run execs the given binary (typically a 'go test -c' compiled test
binary, or any binary that calls loom.Model) with LOOM_MAX_BRANCHES,
LOOM_MAX_PREEMPTIONS, LOOM_MAX_THREADS and LOOM_CHECKPOINT_INTERVAL set in
its environment, then forwards stdin/stdout/stderr and the exit code.

Example:

  go test -c -o ./checker.test ./...
  loomcheck run --max-branches=50000 -- ./checker.test -test.run TestConcurrentIncrement
`,
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBinary(opts, args[0], args[1:])
		},
	}

	cmd.Flags().IntVar(&opts.maxBranches, "max-branches", 0, "cap on branch points per execution path (0 = leave unset)")
	cmd.Flags().IntVar(&opts.maxPreemptions, "max-preemptions", 0, "cap on non-continuing scheduling choices per execution (0 = leave unset)")
	cmd.Flags().IntVar(&opts.maxThreads, "max-threads", 0, "reject programs spawning more than this many logical threads (0 = leave unset)")
	cmd.Flags().IntVar(&opts.checkpointInterval, "checkpoint-interval", 0, "mark every Nth execution's schedule log with a checkpoint prefix (0 = leave unset)")

	return cmd
}

func runBinary(opts runOptions, name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), envOverrides(opts)...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("loomcheck: failed to run %s: %w", name, err)
	}
	return nil
}

func envOverrides(opts runOptions) []string {
	var env []string
	if opts.maxBranches > 0 {
		env = append(env, "LOOM_MAX_BRANCHES="+strconv.Itoa(opts.maxBranches))
	}
	if opts.maxPreemptions > 0 {
		env = append(env, "LOOM_MAX_PREEMPTIONS="+strconv.Itoa(opts.maxPreemptions))
	}
	if opts.maxThreads > 0 {
		env = append(env, "LOOM_MAX_THREADS="+strconv.Itoa(opts.maxThreads))
	}
	if opts.checkpointInterval > 0 {
		env = append(env, "LOOM_CHECKPOINT_INTERVAL="+strconv.Itoa(opts.checkpointInterval))
	}
	return env
}
