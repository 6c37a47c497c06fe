// Package config implements the checker's builder-with-defaults options
// struct, environment-variable overrides, and TOML file loading — the same
// shape as the teacher's DetectorOptions/SamplerConfig, generalized from a
// detector's sampling knob to the explorer's branch/preemption/thread bounds.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Options configures one Model run. Zero value is NOT valid — use Default()
// or New() to get sane bounds.
type Options struct {
	// MaxBranches caps the number of branch points on the path of a single
	// execution. Exceeding it surfaces an ExplorationBound failure rather
	// than a program failure. Zero means unbounded.
	MaxBranches int

	// MaxPreemptions bounds the number of non-continuing scheduling choices
	// within a single execution (preemption-bounded model checking).
	// Zero means unbounded.
	MaxPreemptions int

	// MaxThreads rejects closures that spawn more logical threads than this.
	MaxThreads int

	// CheckpointInterval marks every Nth execution's LogSchedule summary
	// with a "[checkpoint @N]" prefix. The exploration cursor itself is not
	// saved anywhere, and without LogSchedule the setting has no effect.
	// Zero disables the annotation.
	CheckpointInterval int

	// LogSchedule, when non-nil, is invoked once per executed schedule with
	// a human-readable dump of the path taken — useful for debugging a
	// model-checker failure without committing to any particular logger.
	LogSchedule func(summary string)
}

// Default returns the checker's out-of-the-box bounds: generous enough for
// the test scenarios in loom/example_test.go, conservative enough that a
// runaway exploration still terminates in a CI timeout.
func Default() Options {
	return Options{
		MaxBranches:        250_000,
		MaxPreemptions:     0,
		MaxThreads:         vectorClockThreadLimit,
		CheckpointInterval: 0,
		LogSchedule:        nil,
	}
}

// vectorClockThreadLimit mirrors vectorclock.MaxThreads without importing
// that package here (config must stay a leaf so engine can depend on it).
const vectorClockThreadLimit = 256

// Option mutates Options in place; used with New to compose overrides.
type Option func(*Options)

// New builds Options from Default() plus the given overrides.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxBranches overrides MaxBranches.
func WithMaxBranches(n int) Option { return func(o *Options) { o.MaxBranches = n } }

// WithMaxPreemptions overrides MaxPreemptions.
func WithMaxPreemptions(n int) Option { return func(o *Options) { o.MaxPreemptions = n } }

// WithMaxThreads overrides MaxThreads.
func WithMaxThreads(n int) Option { return func(o *Options) { o.MaxThreads = n } }

// WithCheckpointInterval overrides CheckpointInterval.
func WithCheckpointInterval(n int) Option { return func(o *Options) { o.CheckpointInterval = n } }

// WithLogSchedule installs a schedule-dump callback.
func WithLogSchedule(fn func(string)) Option { return func(o *Options) { o.LogSchedule = fn } }

// FromEnv overlays LOOM_MAX_BRANCHES, LOOM_MAX_PREEMPTIONS, LOOM_MAX_THREADS,
// and LOOM_CHECKPOINT_INTERVAL onto o, mirroring the teacher's GORACE=...
// environment-variable convention. Malformed values are ignored, leaving the
// existing setting in place.
func (o *Options) FromEnv() {
	overlayEnvInt("LOOM_MAX_BRANCHES", &o.MaxBranches)
	overlayEnvInt("LOOM_MAX_PREEMPTIONS", &o.MaxPreemptions)
	overlayEnvInt("LOOM_MAX_THREADS", &o.MaxThreads)
	overlayEnvInt("LOOM_CHECKPOINT_INTERVAL", &o.CheckpointInterval)
}

func overlayEnvInt(name string, dst *int) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}

// fileOptions mirrors Options' scalar fields for TOML decoding; LogSchedule
// has no file representation.
type fileOptions struct {
	MaxBranches        int `toml:"max_branches"`
	MaxPreemptions     int `toml:"max_preemptions"`
	MaxThreads         int `toml:"max_threads"`
	CheckpointInterval int `toml:"checkpoint_interval"`
}

// LoadFile overlays a TOML configuration file onto o. The recognized keys
// are max_branches, max_preemptions, max_threads and checkpoint_interval. A
// missing key leaves the current value in place.
func (o *Options) LoadFile(path string) error {
	var fo fileOptions
	fo.MaxBranches = o.MaxBranches
	fo.MaxPreemptions = o.MaxPreemptions
	fo.MaxThreads = o.MaxThreads
	fo.CheckpointInterval = o.CheckpointInterval

	if _, err := toml.DecodeFile(path, &fo); err != nil {
		return err
	}

	o.MaxBranches = fo.MaxBranches
	o.MaxPreemptions = fo.MaxPreemptions
	o.MaxThreads = fo.MaxThreads
	o.CheckpointInterval = fo.CheckpointInterval
	return nil
}
