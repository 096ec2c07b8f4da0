package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 20, cfg.DefaultLimit)
	assert.Equal(t, 2, cfg.ContextLines)
	assert.Empty(t, cfg.DataDir)
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/from/env")

	cfg := Config{DataDir: "/from/file"}

	// Flag wins over everything.
	dir, err := cfg.ResolveDataDir("/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", dir)

	// Then the config file.
	dir, err = cfg.ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/file", dir)

	// Then the environment.
	dir, err = Config{}.ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", dir)
}

func TestResolveDataDirDefault(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv("HOME", t.TempDir())

	dir, err := Config{}.ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, ".claude", filepath.Base(dir))
}
