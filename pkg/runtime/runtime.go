// Package runtime loads Chirp scripts and exposes rendering entry points.
package runtime

import (
	"context"
	"fmt"
	"os"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/evaluator"
	"github.com/chirplang/chirp/pkg/parser"
	"github.com/chirplang/chirp/pkg/renderer"
	"github.com/chirplang/chirp/pkg/stdlib"
	"github.com/chirplang/chirp/pkg/validator"
)

// DiagnosticError carries one or more diagnostics from loading a script.
type DiagnosticError struct {
	Diags []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	if len(e.Diags) == 0 {
		return "load failed"
	}
	first := e.Diags[0]
	if len(e.Diags) == 1 {
		return fmt.Sprintf("%s: %s", first.Code, first.Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", first.Code, first.Message, len(e.Diags)-1)
}

// Option configures script loading.
type Option func(*options)

type options struct {
	maxDepth int
	workers  int
}

// WithMaxDepth sets the call-depth ceiling for evaluation.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithWorkers sets the default worker count for rendering.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Script is a loaded, validated program ready to render.
type Script struct {
	file    string
	prog    *ast.Program
	interp  *evaluator.Interp
	workers int
}

// Load parses, validates, and prepares a script. Global bindings are
// evaluated once here. All load problems are reported through a
// DiagnosticError.
func Load(source, filename string, opts ...Option) (*Script, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	prog, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return nil, &DiagnosticError{Diags: diags}
	}
	if vdiags := validator.Validate(prog); len(vdiags) > 0 {
		return nil, &DiagnosticError{Diags: vdiags}
	}

	interp, err := evaluator.New(prog, evaluator.Options{
		Builtins: stdlib.Builtins(),
		Consts:   stdlib.Consts(),
		MaxDepth: o.maxDepth,
	})
	if err != nil {
		if rtErr, ok := err.(*evaluator.RuntimeError); ok {
			return nil, &DiagnosticError{Diags: []diagnostics.Diagnostic{rtErr.Diag()}}
		}
		return nil, err
	}

	return &Script{
		file:    filename,
		prog:    prog,
		interp:  interp,
		workers: o.workers,
	}, nil
}

// LoadFile reads and loads a script from disk.
func LoadFile(path string, opts ...Option) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DiagnosticError{Diags: []diagnostics.Diagnostic{
			diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read %s: %v", path, err), nil, ""),
		}}
	}
	return Load(string(data), path, opts...)
}

// File returns the script's source filename.
func (s *Script) File() string { return s.file }

// Program returns the parsed program.
func (s *Script) Program() *ast.Program { return s.prog }

// Interp returns the script's interpreter.
func (s *Script) Interp() *evaluator.Interp { return s.interp }

// Render produces sample frames for the configured duration.
func (s *Script) Render(ctx context.Context, cfg renderer.Config) ([]float64, error) {
	if cfg.Workers == 0 {
		cfg.Workers = s.workers
	}
	return renderer.Render(ctx, s.interp, cfg)
}

// Stream renders sequentially, delivering chunks to fn.
func (s *Script) Stream(ctx context.Context, cfg renderer.StreamConfig, fn func([]float64) error) error {
	return renderer.Stream(ctx, s.interp, cfg, fn)
}
