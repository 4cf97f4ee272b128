// Package testutil provides shared test helpers for Chirp tests.
package testutil

import (
	"errors"
	"testing"

	"github.com/chirplang/chirp/pkg/evaluator"
	"github.com/chirplang/chirp/pkg/runtime"
)

// LoadScript loads a source string, failing the test on any diagnostic.
func LoadScript(t *testing.T, source string, opts ...runtime.Option) *runtime.Script {
	t.Helper()
	script, err := runtime.Load(source, "test.chirp", opts...)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return script
}

// CallMain invokes main(tv) and requires a numeric result.
func CallMain(t *testing.T, script *runtime.Script, tv float64) float64 {
	t.Helper()
	v, err := script.Interp().CallFunction("main", []evaluator.Value{evaluator.NewNumber(tv)})
	if err != nil {
		t.Fatalf("main(%g) failed: %v", tv, err)
	}
	n, ok := v.(evaluator.Number)
	if !ok {
		t.Fatalf("main(%g) yielded %s, want number", tv, evaluator.TypeName(v))
	}
	return n.Value
}

// DiagCode extracts the diagnostic code from a load or runtime error.
func DiagCode(err error) string {
	var diagErr *runtime.DiagnosticError
	if errors.As(err, &diagErr) && len(diagErr.Diags) > 0 {
		return diagErr.Diags[0].Code
	}
	var rtErr *evaluator.RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr.Code
	}
	return ""
}
