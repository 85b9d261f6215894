package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
}

// APIConfig holds community backend settings.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DatabaseConfig holds sqlite settings for the local draft store.
type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// LogConfig holds the debug log sink. A TUI cannot log to the terminal.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize int    `mapstructure:"page_size"`
	Theme    string `mapstructure:"theme"`
}

// Load reads configuration from file and env. Env var overrides use prefix ELLIM_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "https://api.ellim.community")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("database.path", filepath.Join(dataDir(), "community.db"))
	v.SetDefault("database.migrations_path", "migrations")
	v.SetDefault("log.path", filepath.Join(dataDir(), "community.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.theme", "mocha")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ELLIM_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ellim-community"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ELLIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := os.Getenv("ELLIM_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "ellim-community", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_seconds", cfg.API.TimeoutSeconds)
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.theme", cfg.UI.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "ellim-community")
}
