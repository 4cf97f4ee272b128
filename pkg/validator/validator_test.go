package validator_test

import (
	"strings"
	"testing"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/parser"
	"github.com/chirplang/chirp/pkg/validator"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, diags := parser.Parse(src, "test.chirp")
	if len(diags) > 0 {
		t.Fatalf("parse errors: %s", diagnostics.FormatDiagnostics(diags, true))
	}
	return prog
}

func TestValidateClean(t *testing.T) {
	prog := parse(t, `
gain = 0.5;
main t {
    sin(t) * gain;
}
`)
	if diags := validator.Validate(prog); len(diags) != 0 {
		t.Errorf("got %d diagnostics, want 0", len(diags))
	}
}

func TestValidateDuplicateTopLevel(t *testing.T) {
	prog := parse(t, `
f x {
    x;
}
f = 1;
`)
	diags := validator.Validate(prog)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != diagnostics.ELoad {
		t.Errorf("code: got %q, want E_LOAD", diags[0].Code)
	}
	if !strings.Contains(diags[0].Message, "f") {
		t.Errorf("message %q should name the duplicate", diags[0].Message)
	}
}

func TestValidateBuiltinShadow(t *testing.T) {
	for _, src := range []string{
		"sin x {\n    x;\n}",
		"pi = 3;",
	} {
		prog := parse(t, src)
		diags := validator.Validate(prog)
		if len(diags) != 1 {
			t.Fatalf("%s: got %d diagnostics, want 1", src, len(diags))
		}
		if diags[0].Code != diagnostics.ELoad {
			t.Errorf("%s: code: got %q, want E_LOAD", src, diags[0].Code)
		}
	}
}

func TestValidateDuplicateParam(t *testing.T) {
	prog := parse(t, `
f a, a {
    a;
}
`)
	diags := validator.Validate(prog)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != diagnostics.ELoad {
		t.Errorf("code: got %q, want E_LOAD", diags[0].Code)
	}
}

func TestValidateReportsAll(t *testing.T) {
	prog := parse(t, `
f a, a {
    a;
}
f = 1;
`)
	diags := validator.Validate(prog)
	if len(diags) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(diags))
	}
}
