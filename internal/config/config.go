// Package config provides configuration management for the mdtree CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix  = "MDTREE"
	configName = "mdtree"
)

var (
	// ErrUnknownFormat is returned for an unsupported export.format.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrUnknownLevel is returned for an unsupported log.level.
	ErrUnknownLevel = errors.New("unknown log level")
)

// Config holds all CLI configuration.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Input  InputConfig  `mapstructure:"input"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

// RenderConfig configures text and viewer output.
type RenderConfig struct {
	Width     int    `mapstructure:"width"` // 0 = terminal width or no wrapping
	Highlight bool   `mapstructure:"highlight"`
	CodeStyle string `mapstructure:"code_style"` // chroma style name
}

// InputConfig configures source decoding.
type InputConfig struct {
	Normalize bool `mapstructure:"normalize"` // apply NFC before parsing
}

// ExportConfig configures structured export.
type ExportConfig struct {
	Format string `mapstructure:"format"` // yaml or json
}

// LogConfig configures diagnostics on stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:     0,
			Highlight: true,
			CodeStyle: "monokai",
		},
		Input: InputConfig{
			Normalize: false,
		},
		Export: ExportConfig{
			Format: "yaml",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultSearchPaths lists the directories searched for mdtree.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "mdtree"))
	}
	return paths
}

// NewViper returns a viper instance with defaults and environment bindings
// registered. Every key needs a default so AutomaticEnv can override it.
func NewViper(searchPaths ...string) *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("render.width", def.Render.Width)
	v.SetDefault("render.highlight", def.Render.Highlight)
	v.SetDefault("render.code_style", def.Render.CodeStyle)
	v.SetDefault("input.normalize", def.Input.Normalize)
	v.SetDefault("export.format", def.Export.Format)
	v.SetDefault("log.level", def.Log.Level)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration into a Config. An explicit file must exist;
// otherwise a missing mdtree.yaml in the search paths is ignored.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Export.Format = strings.ToLower(cfg.Export.Format)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated and ranged values.
func (c *Config) Validate() error {
	switch c.Export.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Export.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLevel, c.Log.Level)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width must not be negative, got %d", c.Render.Width)
	}
	return nil
}
