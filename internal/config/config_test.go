package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "data-dir: ./data\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, ":9090", cfg.MetricsAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, "data-dir: /srv/exports\naddress: \":9999\"\nlog-level: debug\ntop-n: 3\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/exports", cfg.DataDir)
	assert.Equal(t, ":9999", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.TopN)
}

func TestLoadEnvironmentTakesPrecedence(t *testing.T) {
	t.Setenv("DATA_DIR", "/env/data")
	path := writeConfig(t, "data-dir: ./data\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/data", cfg.DataDir)
}

func TestLoadMissingRequiredField(t *testing.T) {
	path := writeConfig(t, "address: \":8080\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data-dir")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
