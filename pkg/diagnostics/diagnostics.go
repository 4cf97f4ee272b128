// Package diagnostics defines Chirp diagnostic types for lex/parse/load/runtime errors.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chirplang/chirp/pkg/ast"
)

// Diagnostic code constants.
const (
	ELex       = "E_LEX"
	EParse     = "E_PARSE"
	ELoad      = "E_LOAD"
	EUnbound   = "E_UNBOUND"
	EUnknownFn = "E_UNKNOWN_FN"
	EArgs      = "E_ARGS"
	EType      = "E_TYPE"
	ERecursion = "E_RECURSION"
	EIO        = "E_IO"
)

// Diagnostic represents a lex, parse, load, or runtime diagnostic.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Span    *ast.Span `json:"span,omitempty"`
	Hint    string    `json:"hint,omitempty"`
	Stack   []Frame   `json:"stack,omitempty"`
}

// Frame is one entry of a runtime call-stack trace: the function called and
// the argument bindings of that call, in parameter order.
type Frame struct {
	Fn   string    `json:"fn"`
	Args []ArgBind `json:"args,omitempty"`
	Span *ast.Span `json:"span,omitempty"`
}

// ArgBind is a single parameter binding in a stack frame.
type ArgBind struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *ast.Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	loc := "<unknown>"
	if d.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", d.Span.File, d.Span.StartLine, d.Span.StartCol)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	for _, f := range d.Stack {
		out += "\n  in " + FormatFrame(f)
	}
	return out
}

// FormatFrame renders one stack frame as `name(a=1, b=2)`.
func FormatFrame(f Frame) string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = fmt.Sprintf("%s=%s", a.Name, a.Value)
	}
	out := fmt.Sprintf("%s(%s)", f.Fn, strings.Join(parts, ", "))
	if f.Span != nil {
		out += fmt.Sprintf(" at %d:%d", f.Span.StartLine, f.Span.StartCol)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}
