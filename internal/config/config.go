// Package config loads plume's project configuration (plume.yml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/spf13/viper"
)

// FileName is the configuration file name without extension.
const FileName = "plume"

// Config is the merged result of defaults, plume.yml and PLUME_* variables.
type Config struct {
	Generators GeneratorsConfig `mapstructure:"generators"`
	Defaults   DefaultsConfig   `mapstructure:"defaults"`
	Log        LogConfig        `mapstructure:"log"`

	// File is the configuration file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type GeneratorsConfig struct {
	Paths []string `mapstructure:"paths"`
}

// DefaultsConfig holds run modes applied unless a flag overrides them.
type DefaultsConfig struct {
	Force       bool   `mapstructure:"force"`
	Skip        bool   `mapstructure:"skip"`
	NoColor     bool   `mapstructure:"no_color"`
	Destination string `mapstructure:"destination"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads plume.yml from dir, falling back to $HOME/.config/plume.
// A missing file is not an error. Relative generator paths are resolved
// against the directory of the file they came from (dir when no file).
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "plume"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read plume.yml: %w", err)
		}
	}
	return decode(v, dir)
}

// LoadFile reads exactly path; the file must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode(v, filepath.Dir(path))
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("generators.paths", []string{filepath.Join(".plume", "generators")})
	v.SetDefault("defaults.force", false)
	v.SetDefault("defaults.skip", false)
	v.SetDefault("defaults.no_color", false)
	v.SetDefault("defaults.destination", ".")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	// PLUME_DEFAULTS_FORCE=true, PLUME_LOG_LEVEL=debug, ...
	v.SetEnvPrefix("PLUME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper, dir string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	base := dir
	if cfg.File != "" {
		base = filepath.Dir(cfg.File)
	}
	for i, p := range cfg.Generators.Paths {
		if !filepath.IsAbs(p) {
			cfg.Generators.Paths[i] = filepath.Join(base, p)
		}
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("invalid configuration: log.level: %w", err)
	}
	return &cfg, nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logger.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.LevelWarn
	}
	return level
}

// Rotation returns the log file rotation settings.
func (c *Config) Rotation() logger.Rotation {
	return logger.Rotation{
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
