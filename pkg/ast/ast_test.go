package ast_test

import (
	"testing"

	"github.com/chirplang/chirp/pkg/ast"
)

func TestProgramLookups(t *testing.T) {
	fd := &ast.FuncDef{Name: "main", Params: []*ast.Param{{Name: "t"}}}
	b := &ast.Binding{Name: "gain", Value: &ast.NumberLit{Value: 0.5}}
	prog := &ast.Program{Decls: []ast.Decl{b, fd}}

	if prog.Func("main") != fd {
		t.Error("Func(main) lookup failed")
	}
	if prog.Func("gain") != nil {
		t.Error("Func should not find bindings")
	}
	if prog.Binding("gain") != b {
		t.Error("Binding(gain) lookup failed")
	}
	if prog.Binding("main") != nil {
		t.Error("Binding should not find functions")
	}
}

func TestFuncDefParamLookup(t *testing.T) {
	fd := &ast.FuncDef{
		Name: "osc",
		Params: []*ast.Param{
			{Name: "freq"},
			{Name: "amp", Default: &ast.NumberLit{Value: 1}},
		},
	}
	if p := fd.Param("amp"); p == nil || p.Default == nil {
		t.Error("Param(amp) should find the defaulted parameter")
	}
	if fd.Param("phase") != nil {
		t.Error("Param(phase) should be nil")
	}
}

func TestArgumentPositional(t *testing.T) {
	pos := &ast.Argument{Value: &ast.NumberLit{Value: 1}}
	named := &ast.Argument{Name: "freq", Value: &ast.NumberLit{Value: 440}}
	if !pos.Positional() {
		t.Error("unnamed argument should be positional")
	}
	if named.Positional() {
		t.Error("named argument should not be positional")
	}
}

func TestDeclName(t *testing.T) {
	decls := []ast.Decl{
		&ast.Binding{Name: "a"},
		&ast.FuncDef{Name: "f"},
	}
	if decls[0].DeclName() != "a" || decls[1].DeclName() != "f" {
		t.Error("DeclName mismatch")
	}
}
