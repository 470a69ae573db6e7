package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// GRIDSOURCE_UI_THEME=mono.
const EnvPrefix = "GRIDSOURCE"

// Config is the full application configuration.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Paging  PagingConfig  `mapstructure:"paging"`
	Logging LoggingConfig `mapstructure:"logging"`
	Source  SourceConfig  `mapstructure:"source"`
}

// UIConfig controls the terminal view.
type UIConfig struct {
	// MaxVisible caps the number of collection rows on screen (0 = fill the terminal)
	MaxVisible int `mapstructure:"max_visible"`
	// Theme is one of style.Themes (default: "default")
	Theme string `mapstructure:"theme"`
	// ShowStatus shows the position line under the collection (default: true)
	ShowStatus bool `mapstructure:"show_status"`
	// PoolSize is the number of cells kept for reuse (default: 512)
	PoolSize int `mapstructure:"pool_size"`
}

// PagingConfig controls loading more items.
type PagingConfig struct {
	// PageSize is the number of items a generated page holds (default: 25)
	PageSize int `mapstructure:"page_size"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging to a file is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where the log file goes (default: Dir())
	Dir string `mapstructure:"dir"`
}

// SourceConfig names the default data source when none is given on the
// command line.
type SourceConfig struct {
	// Script is a Lua file declaring sections
	Script string `mapstructure:"script"`
	// Manifest is a YAML file declaring sections
	Manifest string `mapstructure:"manifest"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:      "default",
			ShowStatus: true,
			PoolSize:   512,
		},
		Paging: PagingConfig{
			PageSize: 25,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("ui.max_visible", defaults.UI.MaxVisible)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.show_status", defaults.UI.ShowStatus)
	v.SetDefault("ui.pool_size", defaults.UI.PoolSize)

	v.SetDefault("paging.page_size", defaults.Paging.PageSize)

	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)

	v.SetDefault("source.script", defaults.Source.Script)
	v.SetDefault("source.manifest", defaults.Source.Manifest)
}

// NewViper returns a viper instance with defaults and environment
// overrides, reading path when set or File() when it exists.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(File()); err != nil {
			return v, nil
		}
		path = File()
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// LogDir returns the directory for the log file, or "" when logging to a
// file is disabled.
func (c *Config) LogDir() string {
	if !c.Logging.Enabled {
		return ""
	}
	if c.Logging.Dir != "" {
		return expandTilde(c.Logging.Dir)
	}
	return Dir()
}

// Dir returns the gridsource configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "gridsource")
}

// File returns the path to config.yaml
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
