package parser_test

import (
	"strings"
	"testing"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/parser"
)

// parse fails the test on any diagnostic.
func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, diags := parser.Parse(src, "test.chirp")
	if len(diags) > 0 {
		t.Fatalf("parse errors: %s", diagnostics.FormatDiagnostics(diags, true))
	}
	return prog
}

// parseErr expects at least one diagnostic and returns the first.
func parseErr(t *testing.T, src string) diagnostics.Diagnostic {
	t.Helper()
	_, diags := parser.Parse(src, "test.chirp")
	if len(diags) == 0 {
		t.Fatal("expected parse errors, got none")
	}
	return diags[0]
}

func TestParseBinding(t *testing.T) {
	prog := parse(t, "freq = 440;")
	if len(prog.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(prog.Decls))
	}
	b, ok := prog.Decls[0].(*ast.Binding)
	if !ok {
		t.Fatalf("got %T, want *ast.Binding", prog.Decls[0])
	}
	if b.Name != "freq" {
		t.Errorf("name: got %q, want freq", b.Name)
	}
	num, ok := b.Value.(*ast.NumberLit)
	if !ok || num.Value != 440 {
		t.Errorf("value: got %#v, want 440", b.Value)
	}
}

func TestParseFuncDef(t *testing.T) {
	prog := parse(t, "osc freq, amp = 1 {\n    sin(freq);\n    cos(amp);\n}")
	fd := prog.Func("osc")
	if fd == nil {
		t.Fatal("osc not found")
	}
	if len(fd.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fd.Params))
	}
	if fd.Params[0].Name != "freq" || fd.Params[0].Default != nil {
		t.Errorf("param 0: got %q default=%v", fd.Params[0].Name, fd.Params[0].Default)
	}
	if fd.Params[1].Name != "amp" || fd.Params[1].Default == nil {
		t.Errorf("param 1: got %q, want amp with default", fd.Params[1].Name)
	}
	if len(fd.Body) != 2 {
		t.Errorf("got %d body statements, want 2", len(fd.Body))
	}
}

func TestParseFuncDefNoParams(t *testing.T) {
	prog := parse(t, "silence {\n    0;\n}")
	fd := prog.Func("silence")
	if fd == nil {
		t.Fatal("silence not found")
	}
	if len(fd.Params) != 0 {
		t.Errorf("got %d params, want 0", len(fd.Params))
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := parse(t, "x = 1 + 2 * 3;")
	b := prog.Binding("x")
	add, ok := b.Value.(*ast.BinaryExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("got %#v, want addition at top", b.Value)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("got %#v, want multiplication on right", add.Right)
	}
}

func TestParseComparisonPrecedence(t *testing.T) {
	prog := parse(t, "x = 1 + 2 > 2;")
	b := prog.Binding("x")
	gt, ok := b.Value.(*ast.BinaryExpr)
	if !ok || gt.Op != ast.OpGt {
		t.Fatalf("got %#v, want comparison at top", b.Value)
	}
}

func TestParseConditional(t *testing.T) {
	prog := parse(t, "x = 1 if flag else 2;")
	b := prog.Binding("x")
	cond, ok := b.Value.(*ast.CondExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CondExpr", b.Value)
	}
	if _, ok := cond.Then.(*ast.NumberLit); !ok {
		t.Errorf("then: got %T, want number", cond.Then)
	}
	if _, ok := cond.Cond.(*ast.Ident); !ok {
		t.Errorf("cond: got %T, want ident", cond.Cond)
	}
}

func TestParseConditionalRightAssoc(t *testing.T) {
	prog := parse(t, "x = 1 if a else 2 if b else 3;")
	b := prog.Binding("x")
	outer, ok := b.Value.(*ast.CondExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CondExpr", b.Value)
	}
	if _, ok := outer.Else.(*ast.CondExpr); !ok {
		t.Errorf("else: got %T, want nested conditional", outer.Else)
	}
}

func TestParseConditionalLowestPrecedence(t *testing.T) {
	// The whole sum is the then-branch.
	prog := parse(t, "x = 1 + 2 if flag else 3;")
	b := prog.Binding("x")
	cond, ok := b.Value.(*ast.CondExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CondExpr", b.Value)
	}
	if _, ok := cond.Then.(*ast.BinaryExpr); !ok {
		t.Errorf("then: got %T, want sum", cond.Then)
	}
}

func TestParseCallForms(t *testing.T) {
	for _, src := range []string{
		"x = f(1, 2);",
		"x = f[1, 2];",
	} {
		prog := parse(t, src)
		call, ok := prog.Binding("x").Value.(*ast.CallExpr)
		if !ok {
			t.Fatalf("%s: got %T, want *ast.CallExpr", src, prog.Binding("x").Value)
		}
		if call.Callee != "f" || len(call.Args) != 2 {
			t.Errorf("%s: got callee %q with %d args", src, call.Callee, len(call.Args))
		}
	}
}

func TestParseNamedArgs(t *testing.T) {
	prog := parse(t, "x = f(freq = 440, 2);")
	call := prog.Binding("x").Value.(*ast.CallExpr)
	if call.Args[0].Name != "freq" {
		t.Errorf("arg 0: got name %q, want freq", call.Args[0].Name)
	}
	if !call.Args[1].Positional() {
		t.Error("arg 1: want positional")
	}
}

func TestParseArrayLit(t *testing.T) {
	prog := parse(t, "x = [1, 2, 3];")
	arr, ok := prog.Binding("x").Value.(*ast.ArrayLit)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayLit", prog.Binding("x").Value)
	}
	if len(arr.Elements) != 3 {
		t.Errorf("got %d elements, want 3", len(arr.Elements))
	}
}

func TestParseArrayLitRejectsNamed(t *testing.T) {
	d := parseErr(t, "x = [a = 1];")
	if d.Code != diagnostics.EParse {
		t.Errorf("code: got %q, want E_PARSE", d.Code)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	prog := parse(t, "x = -y * 2;")
	mul := prog.Binding("x").Value.(*ast.BinaryExpr)
	if _, ok := mul.Left.(*ast.UnaryExpr); !ok {
		t.Errorf("left: got %T, want unary", mul.Left)
	}
}

func TestParseEmptyBody(t *testing.T) {
	d := parseErr(t, "f x {}")
	if d.Code != diagnostics.EParse {
		t.Errorf("code: got %q, want E_PARSE", d.Code)
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	d := parseErr(t, "x = 440")
	if d.Code != diagnostics.EParse {
		t.Errorf("code: got %q, want E_PARSE", d.Code)
	}
	if !strings.Contains(d.Message, ";") && !strings.Contains(d.Message, "end of file") {
		t.Errorf("message %q should mention the missing token", d.Message)
	}
}

func TestParseLexErrorSurfaces(t *testing.T) {
	d := parseErr(t, "x = $;")
	if d.Code != diagnostics.ELex {
		t.Errorf("code: got %q, want E_LEX", d.Code)
	}
}

func TestParseSpanPositions(t *testing.T) {
	prog := parse(t, "x = 1;\ny = oops;")
	id := prog.Binding("y").Value.(*ast.Ident)
	if id.Span.StartLine != 2 || id.Span.StartCol != 5 {
		t.Errorf("span: got %d:%d, want 2:5", id.Span.StartLine, id.Span.StartCol)
	}
}
