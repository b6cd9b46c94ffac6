package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[memgraph]
uri = "bolt://graph:7687"
user = "memgraph"

[loader]
workers = 8
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
	assert.Equal(t, "memgraph", cfg.Memgraph.User)
	assert.Equal(t, 8, cfg.Loader.Workers)
	// Defaults survive for keys the file leaves out.
	assert.True(t, cfg.Loader.QuoteText)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[memgraph\nuri="), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MEMGRAPH_URI", "bolt://env:7687")
	t.Setenv("MEMGRAPH_PASSWORD", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("LOADER_WORKERS", "2")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "bolt://env:7687", cfg.Memgraph.URI)
	assert.Equal(t, "secret", cfg.Memgraph.Password)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Loader.Workers)
}

func TestApplyEnv_BadWorkers(t *testing.T) {
	t.Setenv("LOADER_WORKERS", "many")
	assert.Error(t, Default().ApplyEnv())
}
