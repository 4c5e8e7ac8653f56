// Package driver runs the fcad front end over a file: parse, resolve and
// plan. Every failure comes back as a single error value.
package driver

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/lexer"
	"github.com/HicaroD/fcad/internal/parser"
	"github.com/HicaroD/fcad/internal/plan"
	"github.com/HicaroD/fcad/internal/sema"
	"github.com/HicaroD/fcad/internal/symtab"
)

type Result struct {
	Program *ast.Program
	Symbols *symtab.Table
	// Resolved and Plan are only set by Compile.
	Resolved    []ast.Node
	Plan        []*plan.Op
	Diagnostics []diagnostics.Diag
}

type Driver struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Driver {
	return &Driver{logger: logger}
}

// ParseFile reads and parses path. A missing file gives an error matching
// fs.ErrNotExist.
func (d *Driver) ParseFile(path string) (*Result, error) {
	lex, err := lexer.NewFromFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return d.parse(lex)
}

// ParseSource parses src as a whole; trailing input is an error.
func (d *Driver) ParseSource(filename string, src []byte) (*Result, error) {
	return d.parse(lexer.New(filename, src))
}

func (d *Driver) parse(lex *lexer.Lexer) (*Result, error) {
	collector := diagnostics.NewWithLogger(d.logger)
	p := parser.NewWithLogger(d.logger, collector)

	program, err := p.ParseLexer(lex)
	if err != nil {
		return nil, translate(err)
	}
	return &Result{
		Program:     program,
		Symbols:     p.Symbols(),
		Diagnostics: collector.Diags,
	}, nil
}

// Compile parses path, resolves every deferred term and plans the result.
func (d *Driver) Compile(path string) (*Result, error) {
	result, err := d.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return d.finish(result)
}

func (d *Driver) CompileSource(filename string, src []byte) (*Result, error) {
	result, err := d.ParseSource(filename, src)
	if err != nil {
		return nil, err
	}
	return d.finish(result)
}

func (d *Driver) finish(result *Result) (*Result, error) {
	resolver := sema.NewWithLogger(d.logger, result.Symbols)
	resolved, err := resolver.Resolve(result.Program)
	if err != nil {
		return nil, translate(err)
	}
	result.Resolved = resolved

	ops, err := plan.NewBuilder(d.logger, result.Program.Source).Build(resolved)
	if err != nil {
		return nil, translate(err)
	}
	result.Plan = ops

	d.logger.Debug().
		Str("file", result.Program.Filename).
		Int("ops", len(ops)).
		Msg("compiled")
	return result, nil
}

// translate wraps located diagnostics in a ParseFailure and leaves other
// errors alone.
func translate(err error) error {
	var semErr *diagnostics.SemanticError
	var synErr *diagnostics.SyntaxError
	if errors.As(err, &semErr) || errors.As(err, &synErr) {
		return &diagnostics.ParseFailure{Cause: err}
	}
	return err
}
