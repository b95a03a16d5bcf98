package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	opts, done, err := parseArgs([]string{"--demo", "--config", "/tmp/rpane.toml"})
	require.NoError(t, err)
	assert.False(t, done)
	assert.True(t, opts.demo)
	assert.Equal(t, "/tmp/rpane.toml", opts.configPath)

	opts, _, err = parseArgs([]string{"--config=/etc/rpane.toml"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/rpane.toml", opts.configPath)
}

func TestParseArgsErrors(t *testing.T) {
	_, _, err := parseArgs([]string{"--config"})
	assert.Error(t, err)

	_, _, err = parseArgs([]string{"--bogus"})
	assert.ErrorContains(t, err, "unknown option")
}

func TestParseArgsVersionStops(t *testing.T) {
	_, done, err := parseArgs([]string{"--version", "--bogus"})
	require.NoError(t, err)
	assert.True(t, done)
}
