package evaluator

// BuiltinParam describes one parameter of a builtin function. A nil
// Default marks the parameter as required.
type BuiltinParam struct {
	Name    string
	Default *float64
}

// BuiltinFn is a host-implemented function callable from scripts.
// Builtins accept and return numbers only; argument binding follows the
// same positional, named, and default rules as script functions.
type BuiltinFn struct {
	Name    string
	Params  []BuiltinParam
	Execute func(args []float64) float64
}

// Options configures an Interp.
type Options struct {
	// Builtins maps function names to host implementations.
	Builtins map[string]*BuiltinFn
	// Consts maps names to predefined global constants.
	Consts map[string]float64
	// MaxDepth is the call-depth ceiling. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth is the call-depth ceiling used when none is configured.
const DefaultMaxDepth = 256
