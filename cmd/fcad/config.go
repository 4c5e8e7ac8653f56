package main

import (
	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/config"
)

// loadConfig reads the configuration file and applies the command line
// overrides on top of it.
func loadConfig(args CliResult) (*config.Config, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}

	if args.Format != "" {
		format, err := config.ParseFormat(args.Format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if args.LogLevel != "" {
		level, err := zerolog.ParseLevel(args.LogLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	if args.Color != "" {
		color, err := config.ParseColorMode(args.Color)
		if err != nil {
			return nil, err
		}
		cfg.Color = color
	}
	return cfg, nil
}
