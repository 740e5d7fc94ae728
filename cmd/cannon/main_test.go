package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cannon/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, presetName, file string) *cobra.Command {
	t.Helper()
	preset, configFile = presetName, file
	t.Cleanup(func() { preset, configFile = "", "" })

	cmd := &cobra.Command{Use: "run"}
	addPhysicsFlags(cmd)
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := newTestCommand(t, "", "")

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Fingerprint(), cfg.Fingerprint())
}

func TestLoadConfigPresetThenFlags(t *testing.T) {
	cmd := newTestCommand(t, "cannon", "")
	require.NoError(t, cmd.Flags().Set("speed", "42"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	want := config.GetPreset("cannon")
	assert.Equal(t, want.Physics.G, cfg.Physics.G)
	assert.Equal(t, want.Physics.Response, cfg.Physics.Response)
	assert.Equal(t, 42.0, cfg.Launch.Speed)
}

func TestLoadConfigUnsetFlagsKeepFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cannon.yaml")
	fileCfg := config.DefaultConfig()
	fileCfg.Physics.G = 1.5
	fileCfg.Run.Duration = 7
	require.NoError(t, config.Save(path, fileCfg))

	cmd := newTestCommand(t, "", path)
	require.NoError(t, cmd.Flags().Set("time", "3"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Physics.G)
	assert.Equal(t, 3.0, cfg.Run.Duration)
}

func TestLoadConfigFileOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  duration: 7\n"), 0644))

	cmd := newTestCommand(t, "cannon", path)
	require.NoError(t, cmd.Flags().Set("speed", "12"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	want := config.GetPreset("cannon")
	assert.Equal(t, want.Physics.G, cfg.Physics.G)
	assert.Equal(t, want.Physics.Response, cfg.Physics.Response)
	assert.Equal(t, 7.0, cfg.Run.Duration)
	assert.Equal(t, 12.0, cfg.Launch.Speed)
}

func TestLoadConfigErrors(t *testing.T) {
	cmd := newTestCommand(t, "nope", "")
	_, err := loadConfig(cmd)
	assert.ErrorContains(t, err, "unknown preset")

	cmd = newTestCommand(t, "", "")
	require.NoError(t, cmd.Flags().Set("restitution", "1.5"))
	_, err = loadConfig(cmd)
	assert.Error(t, err)
}
