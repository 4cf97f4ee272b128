// Package validator performs post-parse checks on Chirp programs.
package validator

import (
	"fmt"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/stdlib"
)

// Validate checks a parsed program for load-time errors: duplicate
// top-level names, declarations shadowing a builtin, and duplicate
// parameter names. It returns all problems found, not just the first.
func Validate(prog *ast.Program) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	reserved := make(map[string]bool)
	for _, name := range stdlib.Names() {
		reserved[name] = true
	}

	seen := make(map[string]bool)
	for _, d := range prog.Decls {
		name := d.DeclName()
		span := d.NodeSpan()
		if reserved[name] {
			diags = append(diags, diagnostics.MakeDiag(
				diagnostics.ELoad,
				fmt.Sprintf("'%s' shadows a builtin", name),
				&span,
				"rename the declaration",
			))
		}
		if seen[name] {
			diags = append(diags, diagnostics.MakeDiag(
				diagnostics.ELoad,
				fmt.Sprintf("duplicate top-level name '%s'", name),
				&span,
				"",
			))
		}
		seen[name] = true

		if fd, ok := d.(*ast.FuncDef); ok {
			diags = append(diags, checkParams(fd)...)
		}
	}
	return diags
}

func checkParams(fd *ast.FuncDef) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	seen := make(map[string]bool)
	for _, p := range fd.Params {
		if seen[p.Name] {
			span := p.Span
			diags = append(diags, diagnostics.MakeDiag(
				diagnostics.ELoad,
				fmt.Sprintf("duplicate parameter '%s' in function '%s'", p.Name, fd.Name),
				&span,
				"",
			))
		}
		seen[p.Name] = true
	}
	return diags
}
