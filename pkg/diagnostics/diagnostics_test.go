package diagnostics_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
)

func TestFormatDiagnosticJSON(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.EUnbound, "unbound identifier 'x'",
		&ast.Span{File: "song.chirp", StartLine: 3, StartCol: 7}, "")
	out := diagnostics.FormatDiagnostic(d, false)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["code"] != "E_UNBOUND" {
		t.Errorf("code: got %v", decoded["code"])
	}
}

func TestFormatDiagnosticPretty(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.EParse, "expected ';'",
		&ast.Span{File: "song.chirp", StartLine: 2, StartCol: 9}, "terminate the binding")
	out := diagnostics.FormatDiagnostic(d, true)

	for _, want := range []string{"error[E_PARSE]", "song.chirp:2:9", "hint: terminate the binding"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDiagnosticStack(t *testing.T) {
	d := diagnostics.Diagnostic{
		Code:    diagnostics.EUnbound,
		Message: "unbound identifier 'x'",
		Stack: []diagnostics.Frame{
			{Fn: "inner", Args: []diagnostics.ArgBind{{Name: "a", Value: "6"}}},
			{Fn: "outer", Args: []diagnostics.ArgBind{{Name: "x", Value: "3"}}},
		},
	}
	out := diagnostics.FormatDiagnostic(d, true)
	if !strings.Contains(out, "inner(a=6)") || !strings.Contains(out, "outer(x=3)") {
		t.Errorf("stack frames not rendered:\n%s", out)
	}
}

func TestFormatFrameSpan(t *testing.T) {
	f := diagnostics.Frame{
		Fn:   "partial",
		Args: []diagnostics.ArgBind{{Name: "mult", Value: "2"}},
		Span: &ast.Span{StartLine: 9, StartCol: 5},
	}
	got := diagnostics.FormatFrame(f)
	if got != "partial(mult=2) at 9:5" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDiagnosticsMultiple(t *testing.T) {
	diags := []diagnostics.Diagnostic{
		diagnostics.MakeDiag(diagnostics.ELoad, "duplicate top-level name 'f'", nil, ""),
		diagnostics.MakeDiag(diagnostics.ELoad, "'pi' shadows a builtin", nil, ""),
	}
	out := diagnostics.FormatDiagnostics(diags, false)
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(decoded))
	}
}
