// Package config loads the fcad configuration file from the XDG config
// directory.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

const (
	APP_NAME    = "fcad"
	CONFIG_FILE = "fcad/config.yaml"
)

var DEFAULT_CONFIG_FILE string = `# fcad configuration
log_level: warn
format: text
color: auto
debounce: 100ms
`

type Config struct {
	LogLevel zerolog.Level
	Format   OutputFormat
	Color    ColorMode
	Debounce time.Duration
	// Path is the file the configuration was read from, empty for the
	// defaults.
	Path string
}

// file mirrors the YAML document; empty fields keep their default.
type file struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
	Color    string `yaml:"color"`
	Debounce string `yaml:"debounce"`
}

func Default() *Config {
	return &Config{
		LogLevel: zerolog.WarnLevel,
		Format:   TEXT,
		Color:    COLOR_AUTO,
		Debounce: 100 * time.Millisecond,
	}
}

// Load reads the configuration at path. With an empty path the XDG config
// directories are searched, and the defaults are used when no file exists.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(CONFIG_FILE)
		if err != nil {
			return Default(), nil
		}
		path = found
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func Parse(content []byte) (*Config, error) {
	var f file
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, err
	}

	cfg := Default()
	if f.LogLevel != "" {
		level, err := zerolog.ParseLevel(f.LogLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	format, err := ParseFormat(f.Format)
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	color, err := ParseColorMode(f.Color)
	if err != nil {
		return nil, err
	}
	cfg.Color = color

	if f.Debounce != "" {
		debounce, err := time.ParseDuration(f.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid debounce: %w", err)
		}
		cfg.Debounce = debounce
	}
	return cfg, nil
}

// WriteDefault creates the default configuration file in the user's XDG
// config directory unless one exists, and returns its path.
func WriteDefault() (string, error) {
	path, err := xdg.ConfigFile(CONFIG_FILE)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if err := os.WriteFile(path, []byte(DEFAULT_CONFIG_FILE), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ShowAll prints every setting as key='value'.
func (cfg *Config) ShowAll(w io.Writer) {
	path := cfg.Path
	if path == "" {
		path = "(defaults)"
	}
	fmt.Fprintf(w, "config='%s'\n", path)
	fmt.Fprintf(w, "log_level='%s'\n", cfg.LogLevel)
	fmt.Fprintf(w, "format='%s'\n", cfg.Format)
	fmt.Fprintf(w, "color='%s'\n", cfg.Color)
	fmt.Fprintf(w, "debounce='%s'\n", cfg.Debounce)
}
