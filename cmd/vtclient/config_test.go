package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFixture(t *testing.T, dir string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "vtclient.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigDecodesTOML(t *testing.T) {
	path := writeConfigFixture(t, t.TempDir(), `
local = 38
partner = 192
required_memory = 1048576

[transport]
kind = "ws"

[transport.ws]
url = "ws://localhost:9000/can"

[pool]
index = 0
version = 2
file = "pool.bin"

[debug]
addr = ":9100"
metrics = true
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint8(38), cfg.Local)
	assert.Equal(t, uint8(192), cfg.Partner)
	assert.Equal(t, uint32(1048576), cfg.RequiredMemory)
	assert.Equal(t, "ws", cfg.Transport.Kind)
	assert.Equal(t, "ws://localhost:9000/can", cfg.Transport.WS.URL)
	assert.Equal(t, uint8(0), cfg.Pool.Index)
	assert.Equal(t, "pool.bin", cfg.Pool.File)
	assert.Equal(t, ":9100", cfg.Debug.Addr)
	assert.True(t, cfg.Debug.Metrics)
}

func TestLoadConfigMissingFileReturnsError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfigFallsBackToDefaultPath(t *testing.T) {
	dir := t.TempDir()
	writeConfigFixture(t, dir, `local = 1
partner = 2
`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), cfg.Local)
	assert.Equal(t, uint8(2), cfg.Partner)
}
