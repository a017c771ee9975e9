package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveops/epctop/internal/config"
	"github.com/enclaveops/epctop/internal/errors"
)

func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct {
		interval time.Duration
		stats    string
		enclaves string
		noColor  bool
	}{intervalFlag, statsFeedFlag, enclavesFeedFlag, noColorFlag}
	t.Cleanup(func() {
		intervalFlag = orig.interval
		statsFeedFlag = orig.stats
		enclavesFeedFlag = orig.enclaves
		noColorFlag = orig.noColor
	})
}

func flagCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().DurationVar(&intervalFlag, "interval", time.Second, "")
	return cmd
}

func TestApplyOverrides_Defaults(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultConfig()

	require.NoError(t, applyOverrides(flagCmd(t), cfg))
	assert.Equal(t, time.Second, cfg.Interval, "config value kept when flag unset")
	assert.Equal(t, "/proc/sgx_stats", cfg.Feeds.Global)
}

func TestApplyOverrides_FlagsWin(t *testing.T) {
	resetFlags(t)
	cmd := flagCmd(t)
	require.NoError(t, cmd.Flags().Set("interval", "250ms"))
	statsFeedFlag = "/tmp/stats"
	enclavesFeedFlag = "/tmp/enclaves"
	noColorFlag = true

	cfg := config.DefaultConfig()
	require.NoError(t, applyOverrides(cmd, cfg))

	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, "/tmp/stats", cfg.Feeds.Global)
	assert.Equal(t, "/tmp/enclaves", cfg.Feeds.Enclaves)
	assert.Equal(t, "never", cfg.Color)
}

func TestApplyOverrides_RejectsShortInterval(t *testing.T) {
	resetFlags(t)
	cmd := flagCmd(t)
	require.NoError(t, cmd.Flags().Set("interval", "50ms"))

	err := applyOverrides(cmd, config.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["init"])
	assert.True(t, names["completion"])
}
