package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/config"
	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/symtab"
)

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, NoColor: cfg.Color == config.COLOR_NEVER}
	return zerolog.New(console).Level(cfg.LogLevel).With().Timestamp().Logger()
}

type printer struct {
	stdout io.Writer
	stderr *termenv.Output
	format config.OutputFormat
}

func newPrinter(stdout, stderr io.Writer, cfg *config.Config) *printer {
	var opts []termenv.OutputOption
	switch cfg.Color {
	case config.COLOR_NEVER:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	case config.COLOR_ALWAYS:
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	}
	return &printer{
		stdout: stdout,
		stderr: termenv.NewOutput(stderr, opts...),
		format: cfg.Format,
	}
}

// emit writes value as YAML or JSON, or calls text for the text format.
func (p *printer) emit(value any, text func(w io.Writer) error) error {
	var content []byte
	var err error

	switch p.format {
	case config.YAML:
		content, err = yaml.Marshal(value)
	case config.JSON:
		content, err = json.MarshalIndent(value, "", "  ")
		content = append(content, '\n')
	default:
		return text(p.stdout)
	}
	if err != nil {
		return err
	}
	_, err = p.stdout.Write(content)
	return err
}

func (p *printer) reportError(err error) {
	label := p.stderr.String("error:").Foreground(p.stderr.Color("1")).Bold()
	fmt.Fprintf(p.stderr, "%s %s\n", label, err)
}

func (p *printer) reportDiags(diags []diagnostics.Diag) {
	for _, diag := range diags {
		label := p.stderr.String(diag.Severity.String() + ":").Foreground(p.stderr.Color("3")).Bold()
		if diag.Loc != nil {
			fmt.Fprintf(p.stderr, "%d:%d: %s %s\n", diag.Loc.Line, diag.Loc.Column, label, diag.Message)
		} else {
			fmt.Fprintf(p.stderr, "%s %s\n", label, diag.Message)
		}
	}
}

func dumpProgram(program *ast.Program) map[string]any {
	m := map[string]any{
		"file": program.Filename,
		"body": ast.Dump(program.Body),
	}
	if len(program.Uses) > 0 {
		m["uses"] = program.Uses
	}
	return m
}

func dumpSymbols(table *symtab.Table) []any {
	entries := make([]any, 0, table.Len())
	for _, entry := range table.Entries() {
		m := map[string]any{
			"name": entry.Name,
			"kind": entry.Kind.String(),
		}
		if entry.Parent != "" {
			m["parent"] = entry.Parent
		}
		if entry.Value != nil {
			m["value"] = ast.DumpTerm(entry.Value)
		}
		if len(entry.Parameters) > 0 {
			m["parameters"] = entry.Parameters
		}
		entries = append(entries, m)
	}
	return entries
}

func writeNodes(w io.Writer, nodes []ast.Node) error {
	for _, node := range nodes {
		if _, err := fmt.Fprintln(w, node); err != nil {
			return err
		}
	}
	return nil
}
