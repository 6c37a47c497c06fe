package loom

import (
	"github.com/kolkov/loomgo/internal/loom/config"
	"github.com/kolkov/loomgo/internal/loom/engine"
	"github.com/kolkov/loomgo/internal/loom/report"
)

// Failure is the structured report a failing execution surfaces: which
// invariant broke (Kind), a human-readable Message, and the branching Path
// that reproduces it. It implements error.
type Failure = report.Failure

// Kind classifies a Failure per spec §7's taxonomy.
type Kind = report.Kind

const (
	UserFailure       = report.UserFailure
	DataRace          = report.DataRace
	Deadlock          = report.Deadlock
	ExplorationBound  = report.ExplorationBound
	InternalInvariant = report.InternalInvariant
	DoubleCheck       = report.DoubleCheck
)

// Config configures one Model run: exploration bounds, thread limits, and
// an optional schedule-logging hook. Build one with [DefaultConfig] or
// [NewConfig].
type Config struct {
	opts config.Options
}

// DefaultConfig returns the checker's out-of-the-box bounds.
func DefaultConfig() Config {
	return Config{opts: config.Default()}
}

// Option mutates a Config in place; pass any number to [NewConfig].
type Option func(*Config)

// NewConfig builds a Config from [DefaultConfig] plus the given overrides.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithMaxBranches caps the number of branch points on the path of a single
// execution. Zero means unbounded.
func WithMaxBranches(n int) Option { return func(c *Config) { c.opts.MaxBranches = n } }

// WithMaxPreemptions bounds the number of non-continuing scheduling choices
// within a single execution. Zero means unbounded.
func WithMaxPreemptions(n int) Option { return func(c *Config) { c.opts.MaxPreemptions = n } }

// WithMaxThreads rejects closures that spawn more logical threads than n.
func WithMaxThreads(n int) Option { return func(c *Config) { c.opts.MaxThreads = n } }

// WithCheckpointInterval marks every nth execution's LogSchedule summary
// with a "[checkpoint @n]" prefix. The exploration cursor itself is not
// saved anywhere. Zero disables checkpoint annotations.
func WithCheckpointInterval(n int) Option { return func(c *Config) { c.opts.CheckpointInterval = n } }

// WithLogSchedule installs a callback invoked once per executed schedule
// with a human-readable dump of the path taken.
func WithLogSchedule(fn func(summary string)) Option {
	return func(c *Config) { c.opts.LogSchedule = fn }
}

// FromEnv overlays LOOM_MAX_BRANCHES, LOOM_MAX_PREEMPTIONS, LOOM_MAX_THREADS
// and LOOM_CHECKPOINT_INTERVAL onto c, mirroring the race detector's
// GORACE=... environment-variable convention.
func (c *Config) FromEnv() { c.opts.FromEnv() }

// LoadFile overlays a TOML configuration file onto c. The recognized keys
// are max_branches, max_preemptions, max_threads and checkpoint_interval.
func (c *Config) LoadFile(path string) error { return c.opts.LoadFile(path) }

// Model runs fn under exhaustive permutation exploration using
// [DefaultConfig]'s bounds overlaid with any LOOM_* environment variables
// (see [Config.FromEnv]), returning the first [*Failure] found (as an
// error), or nil once every schedule the explorer discovers has been
// checked. This is the model() entry point spec §6 describes.
func Model(fn func()) error {
	cfg := DefaultConfig()
	cfg.FromEnv()
	return ModelWithConfig(cfg, fn)
}

// ModelWithConfig is Model, with caller-supplied bounds — e.g. a smaller
// MaxBranches for a fast pre-commit check, or a LogSchedule hook for
// debugging a failure that only reproduces under CI.
func ModelWithConfig(cfg Config, fn func()) error {
	explorer := engine.NewExplorer(cfg.opts)
	failure := explorer.Run(fn)
	if failure != nil {
		return failure
	}
	return nil
}
