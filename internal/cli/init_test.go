package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/enclaveops/epctop/internal/config"
	"github.com/enclaveops/epctop/internal/errors"
)

func TestInit_CreatesConfig(t *testing.T) {
	dir := t.TempDir()

	err := Init(InitOptions{Dir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultConfig().Interval, cfg.Interval)
	assert.Equal(t, "/proc/sgx_stats", cfg.Feeds.Global)
	assert.Equal(t, "resident", cfg.Sort.Column)
}

func TestInit_ExistingNonInteractive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("interval: 5s\n"), 0o644))

	err := Init(InitOptions{Dir: dir, NonInteractive: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	// Existing file untouched
	data, _ := os.ReadFile(path)
	assert.Equal(t, "interval: 5s\n", string(data))
}

func TestInit_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("interval: 5s\n"), 0o644))

	err := Init(InitOptions{Dir: dir, Overwrite: true})
	require.NoError(t, err)

	var cfg config.Config
	data, _ := os.ReadFile(path)
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultConfig().Interval, cfg.Interval)
}
