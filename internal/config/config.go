// Package config loads runtime configuration from an optional YAML file and
// FCSPREP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from files and environment
// variables. Every field has a default; a missing config file is not an
// error.
type Config struct {
	DBPath     string   `mapstructure:"db_path"`     // SQLite database file; empty selects the XDG default
	ContentDir string   `mapstructure:"content_dir"` // study content override directory; empty uses the embedded dataset
	LogLevel   string   `mapstructure:"log_level"`   // zap level name (debug, info, warn, error)
	Categories []string `mapstructure:"categories"`  // category list override; empty derives from loaded content
}

// Load reads configuration from $XDG_CONFIG_HOME/fcsprep/config.yaml (or the
// ~/.config fallback) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("db_path", "")
	v.SetDefault("content_dir", "")
	v.SetDefault("log_level", "info")

	// FCSPREP_DB_PATH, FCSPREP_CONTENT_DIR, FCSPREP_LOG_LEVEL.
	v.SetEnvPrefix("fcsprep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// configDir resolves the configuration directory in XDG order.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fcsprep"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "fcsprep"), nil
}
