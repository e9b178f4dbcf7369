// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig maps generation defaults.
type GenerateConfig struct {
	Length  *int  `toml:"length"`
	Letters *bool `toml:"letters"`
	Numbers *bool `toml:"numbers"`
	Symbols *bool `toml:"symbols"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath picks the database path: PASSGENE_DB, then the config file,
// then the XDG default.
func ResolveDBPath(cfg FileConfig) string {
	if v := os.Getenv("PASSGENE_DB"); v != "" {
		return v
	}
	if cfg.Storage.DB != nil && *cfg.Storage.DB != "" {
		return *cfg.Storage.DB
	}
	return DefaultDBPath()
}

// LogLevel returns the configured log level or "warn".
func LogLevel(cfg FileConfig) string {
	if cfg.Log.Level != nil && *cfg.Log.Level != "" {
		return *cfg.Log.Level
	}
	return "warn"
}
