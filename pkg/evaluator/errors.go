package evaluator

import (
	"fmt"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
)

// RuntimeError is an evaluation failure. It carries the diagnostic code,
// the source span of the failing expression, and the call stack
// accumulated while unwinding. Stack[0] is the innermost frame.
type RuntimeError struct {
	Code    string
	Message string
	Span    ast.Span
	Stack   []diagnostics.Frame
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Diag converts the error into a diagnostic for reporting.
func (e *RuntimeError) Diag() diagnostics.Diagnostic {
	span := e.Span
	return diagnostics.Diagnostic{
		Code:    e.Code,
		Message: e.Message,
		Span:    &span,
		Stack:   e.Stack,
	}
}

func newError(code string, span ast.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// pushFrame records a call frame on an unwinding runtime error. Non-runtime
// errors pass through untouched.
func pushFrame(err error, fn string, span ast.Span, bindings []diagnostics.ArgBind) error {
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		return err
	}
	callSpan := span
	rtErr.Stack = append(rtErr.Stack, diagnostics.Frame{
		Fn:   fn,
		Args: bindings,
		Span: &callSpan,
	})
	return rtErr
}
