// Package stdlib provides the builtin functions and constants available
// to every Chirp script.
package stdlib

import (
	"sort"

	"github.com/chirplang/chirp/pkg/evaluator"
)

// Builtins returns the default builtin function registry.
func Builtins() map[string]*evaluator.BuiltinFn {
	reg := make(map[string]*evaluator.BuiltinFn)
	registerMathOps(reg)
	registerOscillators(reg)
	return reg
}

// Consts returns the predefined global constants.
func Consts() map[string]float64 {
	return map[string]float64{
		"pi":    pi,
		"tau":   tau,
		"e":     eulerE,
		"true":  1,
		"false": 0,
	}
}

// Names returns every builtin function and constant name, sorted. The
// validator uses this to reject script declarations shadowing a builtin.
func Names() []string {
	var names []string
	for name := range Builtins() {
		names = append(names, name)
	}
	for name := range Consts() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func register(reg map[string]*evaluator.BuiltinFn, name string, params []evaluator.BuiltinParam, fn func([]float64) float64) {
	reg[name] = &evaluator.BuiltinFn{
		Name:    name,
		Params:  params,
		Execute: fn,
	}
}

func params(names ...string) []evaluator.BuiltinParam {
	ps := make([]evaluator.BuiltinParam, len(names))
	for i, n := range names {
		ps[i] = evaluator.BuiltinParam{Name: n}
	}
	return ps
}
