package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Browse    BrowseConfig
	Search    SearchConfig
	Cache     CacheConfig
	Clipboard ClipboardConfig
	Log       LogConfig
	Watch     WatchConfig
}

// BrowseConfig holds the initial layout. Empty locations mean the home
// directory.
type BrowseConfig struct {
	Start      string
	SecondPane string `mapstructure:"second_pane"`
	ShowHidden bool   `mapstructure:"show_hidden"`
}

// SearchConfig bounds name searches.
type SearchConfig struct {
	Timeout    time.Duration
	MaxResults int `mapstructure:"max_results"`
}

// CacheConfig sizes the directory listing cache.
type CacheConfig struct {
	Listings int
}

// ClipboardConfig holds the history store settings.
type ClipboardConfig struct {
	DBPath   string `mapstructure:"db_path"`
	MaxItems int    `mapstructure:"max_items"`
}

// LogConfig controls the log file. An empty Path disables logging.
type LogConfig struct {
	Level  string
	Format string
	Path   string
}

// WatchConfig toggles filesystem change notifications.
type WatchConfig struct {
	Enabled bool
}

// Load reads configuration from file and env. The file is path when set,
// else $RPANE_CONFIG, else ~/.config/rpane/config.toml. Env var overrides
// use prefix RPANE_.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("browse.start", "")
	v.SetDefault("browse.second_pane", "")
	v.SetDefault("browse.show_hidden", false)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.max_results", 50)
	v.SetDefault("cache.listings", 128)
	v.SetDefault("clipboard.db_path", filepath.Join(dataDir(), "rpane", "clipboard.db"))
	v.SetDefault("clipboard.max_items", 200)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.path", filepath.Join(stateDir(), "rpane", "rpane.log"))
	v.SetDefault("watch.enabled", true)

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("RPANE_CONFIG")
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "rpane"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RPANE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; a named file must exist and parse.
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 50
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 30 * time.Second
	}
	return c, nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.TempDir()
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "state")
}
