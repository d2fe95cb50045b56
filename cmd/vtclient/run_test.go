package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommandPrintsVersionString(t *testing.T) {
	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "vtclient")
}

func TestRunRejectsUnknownTransportKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtclient.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
local = 38
partner = 192

[transport]
kind = "carrier-pigeon"

[pool]
file = "pool.bin"
`), 0o644))

	_, _, err := executeCLI(t, "run", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transport.kind "carrier-pigeon"`)
}

func TestRunFailsWhenTransportUnreachable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtclient.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
local = 38
partner = 192

[transport]
kind = "ws"

[transport.ws]
url = "ws://127.0.0.1:1/unreachable"
`), 0o644))

	_, _, err := executeCLI(t, "run", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build transport")
}

func TestRunRejectsMissingConfigFile(t *testing.T) {
	_, _, err := executeCLI(t, "run", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
