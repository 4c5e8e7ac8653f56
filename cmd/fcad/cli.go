package main

import (
	"flag"
	"fmt"
	"io"
)

type Command int

const (
	COMMAND_HELP Command = iota
	COMMAND_ENV
	COMMAND_PARSE
	COMMAND_EVAL
	COMMAND_SYMBOLS
	COMMAND_WATCH
)

type CliResult struct {
	Command Command
	Path    string

	// empty values keep the configuration file settings
	Format     string
	LogLevel   string
	Color      string
	ConfigPath string
	Init       bool
}

var HELP_COMMAND string = `fcad - a front end for a small 2D CAD description language.

Usage:
  fcad <command> [flags] [file]

Available Commands:
  parse <file>      Parse the file and print its syntax tree, deferred terms included
  eval <file>       Resolve the file and print its construction plan
  symbols <file>    Print the symbol table of the file
  watch <file>      Evaluate the file again every time it changes
      -format       Output format: text, yaml or json
      -log-level    Log level: debug, info, warn, error
      -color        Colored errors: auto, always or never
      -config       Configuration file (defaults to $XDG_CONFIG_HOME/fcad/config.yaml)

  env [-init]       Show the configuration, -init writes the default configuration file

  help              Show this help message

Examples:
  fcad parse shapes.fcad                 Print the syntax tree
  fcad eval shapes.fcad -format yaml     Print the resolved plan as YAML
  fcad watch shapes.fcad                 Re-evaluate on every save
`

func cli(args []string, stderr io.Writer) (CliResult, error) {
	result := CliResult{}

	if len(args) == 0 {
		result.Command = COMMAND_HELP
		return result, nil
	}

	command := args[0]
	switch command {
	case "help", "-h", "-help", "--help":
		result.Command = COMMAND_HELP
		return result, nil
	case "env":
		result.Command = COMMAND_ENV
		flags := flag.NewFlagSet(command, flag.ContinueOnError)
		flags.SetOutput(stderr)
		flags.BoolVar(&result.Init, "init", false, "write the default configuration file")
		flags.StringVar(&result.ConfigPath, "config", "", "configuration file")
		if err := flags.Parse(args[1:]); err != nil {
			return result, err
		}
		return result, nil
	case "parse":
		result.Command = COMMAND_PARSE
	case "eval":
		result.Command = COMMAND_EVAL
	case "symbols":
		result.Command = COMMAND_SYMBOLS
	case "watch":
		result.Command = COMMAND_WATCH
	default:
		return result, fmt.Errorf("unknown command '%s'", command)
	}

	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&result.Format, "format", "", "output format: text, yaml or json")
	flags.StringVar(&result.LogLevel, "log-level", "", "log level")
	flags.StringVar(&result.Color, "color", "", "colored errors: auto, always or never")
	flags.StringVar(&result.ConfigPath, "config", "", "configuration file")

	// the file may come before or after the flags
	rest := args[1:]
	if len(rest) > 0 && len(rest[0]) > 0 && rest[0][0] != '-' {
		result.Path = rest[0]
		rest = rest[1:]
	}
	if err := flags.Parse(rest); err != nil {
		return result, err
	}
	if result.Path == "" && flags.NArg() > 0 {
		result.Path = flags.Arg(0)
		if flags.NArg() > 1 {
			return result, fmt.Errorf("%s takes a single file, got %d", command, flags.NArg())
		}
	} else if flags.NArg() > 0 {
		return result, fmt.Errorf("%s takes a single file, got %d", command, flags.NArg()+1)
	}
	if result.Path == "" {
		return result, fmt.Errorf("%s: missing file argument", command)
	}
	return result, nil
}
