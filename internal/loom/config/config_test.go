package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsUsable(t *testing.T) {
	o := Default()
	require.Positive(t, o.MaxBranches)
	require.Positive(t, o.MaxThreads)
}

func TestNewAppliesOverrides(t *testing.T) {
	o := New(WithMaxBranches(10), WithMaxThreads(4))
	require.Equal(t, 10, o.MaxBranches)
	require.Equal(t, 4, o.MaxThreads)
}

func TestFromEnvOverlaysValidValues(t *testing.T) {
	t.Setenv("LOOM_MAX_BRANCHES", "77")
	t.Setenv("LOOM_MAX_THREADS", "not-a-number")

	o := Default()
	o.FromEnv()

	require.Equal(t, 77, o.MaxBranches)
	require.Equal(t, Default().MaxThreads, o.MaxThreads, "malformed value must not overwrite the default")
}

func TestLoadFileOverlaysRecognizedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loom.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_branches = 500\nmax_preemptions = 2\n"), 0o644))

	o := Default()
	require.NoError(t, o.LoadFile(path))

	require.Equal(t, 500, o.MaxBranches)
	require.Equal(t, 2, o.MaxPreemptions)
	require.Equal(t, Default().MaxThreads, o.MaxThreads)
}

func TestLoadFileMissingPathErrors(t *testing.T) {
	o := Default()
	require.Error(t, o.LoadFile(filepath.Join(t.TempDir(), "missing.toml")))
}
