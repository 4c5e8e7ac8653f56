package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/HicaroD/fcad/internal/config"
	"github.com/HicaroD/fcad/internal/driver"
	"github.com/HicaroD/fcad/internal/plan"
	"github.com/HicaroD/fcad/internal/watch"
)

func main() {
	args, err := cli(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %s\n\n", err)
		}
		fmt.Fprint(os.Stderr, HELP_COMMAND)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args CliResult, stdout, stderr io.Writer) int {
	if args.Command == COMMAND_HELP {
		fmt.Fprint(stdout, HELP_COMMAND)
		return 0
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg)
	out := newPrinter(stdout, stderr, cfg)
	d := driver.New(logger)

	switch args.Command {
	case COMMAND_ENV:
		if args.Init {
			path, err := config.WriteDefault()
			if err != nil {
				out.reportError(err)
				return 1
			}
			logger.Info().Str("path", path).Msg("configuration file ready")
		}
		cfg.ShowAll(stdout)
		return 0
	case COMMAND_PARSE:
		return exitCode(parse(d, out, args.Path))
	case COMMAND_EVAL:
		return exitCode(eval(d, out, args.Path))
	case COMMAND_SYMBOLS:
		return exitCode(symbols(d, out, args.Path))
	case COMMAND_WATCH:
		w, err := watch.New(args.Path, cfg.Debounce, logger)
		if err != nil {
			out.reportError(err)
			return 1
		}
		evalOnce := func() {
			_ = eval(d, out, args.Path)
		}
		evalOnce()
		if err := w.Run(ctx, evalOnce); err != nil {
			out.reportError(err)
			return 1
		}
		return 0
	}
	return 2
}

func exitCode(ok bool) int {
	if ok {
		return 0
	}
	return 1
}

func parse(d *driver.Driver, out *printer, path string) bool {
	result, err := d.ParseFile(path)
	if err != nil {
		out.reportError(err)
		return false
	}
	out.reportDiags(result.Diagnostics)

	err = out.emit(dumpProgram(result.Program), func(w io.Writer) error {
		return writeNodes(w, result.Program.Body)
	})
	if err != nil {
		out.reportError(err)
		return false
	}
	return true
}

func eval(d *driver.Driver, out *printer, path string) bool {
	result, err := d.Compile(path)
	if err != nil {
		out.reportError(err)
		return false
	}
	out.reportDiags(result.Diagnostics)

	err = out.emit(plan.Dump(result.Plan), func(w io.Writer) error {
		return writeNodes(w, result.Resolved)
	})
	if err != nil {
		out.reportError(err)
		return false
	}
	return true
}

func symbols(d *driver.Driver, out *printer, path string) bool {
	result, err := d.ParseFile(path)
	if err != nil {
		out.reportError(err)
		return false
	}

	err = out.emit(dumpSymbols(result.Symbols), result.Symbols.Display)
	if err != nil {
		out.reportError(err)
		return false
	}
	return true
}
