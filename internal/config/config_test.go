package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("RPANE_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.Search.Timeout)
	require.Equal(t, 50, cfg.Search.MaxResults)
	require.Equal(t, 128, cfg.Cache.Listings)
	require.Equal(t, 200, cfg.Clipboard.MaxItems)
	require.Equal(t, filepath.Join(home, ".local", "share", "rpane", "clipboard.db"), cfg.Clipboard.DBPath)
	require.Equal(t, filepath.Join(home, ".local", "state", "rpane", "rpane.log"), cfg.Log.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Watch.Enabled)
	require.False(t, cfg.Browse.ShowHidden)
	require.Empty(t, cfg.Browse.Start)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "rpane")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := `
[browse]
start = "/srv"
second_pane = "/tmp"
show_hidden = true

[search]
timeout = "5s"
max_results = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
	t.Setenv("RPANE_SEARCH_MAX_RESULTS", "25")
	t.Setenv("RPANE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/srv", cfg.Browse.Start)
	require.Equal(t, "/tmp", cfg.Browse.SecondPane)
	require.True(t, cfg.Browse.ShowHidden)
	require.Equal(t, 5*time.Second, cfg.Search.Timeout)
	require.Equal(t, 25, cfg.Search.MaxResults)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[watch]\nenabled = false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Watch.Enabled)

	t.Setenv("RPANE_CONFIG", path)
	cfg, err = Load("")
	require.NoError(t, err)
	require.False(t, cfg.Watch.Enabled)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
