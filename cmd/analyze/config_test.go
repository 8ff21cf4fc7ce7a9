package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analyze.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.KeepLevel)
	assert.Equal(t, 1, cfg.BaseLevel)
	assert.True(t, cfg.PoolLevels)
	assert.True(t, cfg.StandardizeBeforeRegression)
	assert.Equal(t, "q7", cfg.Sentinel.Column)
	assert.Len(t, cfg.Categories, 5)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, cfg.InputDir)
	assert.Equal(t, filepath.Join(cwd, "generated"), cfg.OutputDir)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, "keep_level: 0\npool_levels: false\ninput_dir: /data/in\n")

	cfg, err := loadConfig(path, "", "")
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.KeepLevel)
	assert.False(t, cfg.PoolLevels)
	assert.Equal(t, "/data/in", cfg.InputDir)
}

func TestLoadConfigFlagBeatsFile(t *testing.T) {
	path := writeConfigFile(t, "input_dir: /data/in\noutput_dir: /data/out\n")

	cfg, err := loadConfig(path, "/flag/in", "/flag/out")
	require.NoError(t, err)

	assert.Equal(t, "/flag/in", cfg.InputDir)
	assert.Equal(t, "/flag/out", cfg.OutputDir)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ANALYZE_INPUT_DIR", "/env/in")
	t.Setenv("ANALYZE_OUTPUT_DIR", "/env/out")

	cfg, err := loadConfig("", "", "")
	require.NoError(t, err)

	assert.Equal(t, "/env/in", cfg.InputDir)
	assert.Equal(t, "/env/out", cfg.OutputDir)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "", "")
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := writeConfigFile(t, "keep_level: -1\n")

	_, err := loadConfig(path, "", "")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "analyze v")
	assert.Contains(t, out.String(), modulePath)
}
