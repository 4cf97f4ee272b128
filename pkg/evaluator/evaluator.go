package evaluator

import (
	"math"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
)

// Interp evaluates Chirp programs. It holds the function table, the
// global frame with constants and top-level bindings, and the builtin
// registry. An Interp is safe for concurrent calls once constructed:
// evaluation never mutates the global frame.
type Interp struct {
	funcs    map[string]*ast.FuncDef
	builtins map[string]*BuiltinFn
	globals  *Env
	maxDepth int

	// pending and resolving drive on-demand global binding resolution
	// during New and are nil afterwards.
	pending   map[string]*ast.Binding
	resolving map[string]bool
}

// New builds an interpreter for a parsed program. Top-level bindings are
// evaluated once, in dependency order regardless of declaration order.
// A reference cycle among bindings is reported as a load error.
func New(prog *ast.Program, opts Options) (*Interp, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	in := &Interp{
		funcs:     make(map[string]*ast.FuncDef),
		builtins:  opts.Builtins,
		globals:   NewEnv(nil),
		maxDepth:  maxDepth,
		pending:   make(map[string]*ast.Binding),
		resolving: make(map[string]bool),
	}
	if in.builtins == nil {
		in.builtins = map[string]*BuiltinFn{}
	}
	for name, c := range opts.Consts {
		in.globals.Set(name, NewNumber(c))
	}
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDef:
			in.funcs[decl.Name] = decl
		case *ast.Binding:
			in.pending[decl.Name] = decl
		}
	}
	for _, d := range prog.Decls {
		b, ok := d.(*ast.Binding)
		if !ok {
			continue
		}
		if err := in.resolveGlobal(b, 0); err != nil {
			return nil, err
		}
	}
	in.pending = nil
	in.resolving = nil
	return in, nil
}

// Globals returns the global frame.
func (in *Interp) Globals() *Env {
	return in.globals
}

// Func returns the definition of a named script function, or nil.
func (in *Interp) Func(name string) *ast.FuncDef {
	return in.funcs[name]
}

// Eval evaluates an expression against the global frame.
func (in *Interp) Eval(expr ast.Expr) (Value, error) {
	return in.evalExpr(expr, in.globals, 0)
}

// CallFunction invokes a named function with positional argument values.
func (in *Interp) CallFunction(name string, args []Value) (Value, error) {
	if def, ok := in.funcs[name]; ok {
		return in.invoke(name, def, args, nil, def.Span, 1)
	}
	if b, ok := in.builtins[name]; ok {
		return in.invokeBuiltin(b, args, nil, ast.Span{})
	}
	return nil, newError(diagnostics.EUnknownFn, ast.Span{}, "unknown function '%s'", name)
}

func (in *Interp) resolveGlobal(b *ast.Binding, depth int) error {
	if in.globals.Has(b.Name) {
		return nil
	}
	if in.resolving[b.Name] {
		return newError(diagnostics.ELoad, b.Span, "cycle in global bindings involving '%s'", b.Name)
	}
	in.resolving[b.Name] = true
	v, err := in.evalExpr(b.Value, in.globals, depth)
	delete(in.resolving, b.Name)
	if err != nil {
		return err
	}
	in.globals.Set(b.Name, v)
	delete(in.pending, b.Name)
	return nil
}

func (in *Interp) evalExpr(expr ast.Expr, env *Env, depth int) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return NewNumber(e.Value), nil

	case *ast.Ident:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		if in.pending != nil {
			if b, ok := in.pending[e.Name]; ok {
				if err := in.resolveGlobal(b, depth); err != nil {
					return nil, err
				}
				if v, ok := env.Get(e.Name); ok {
					return v, nil
				}
			}
		}
		return nil, newError(diagnostics.EUnbound, e.Span, "unbound identifier '%s'", e.Name)

	case *ast.ArrayLit:
		items := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.evalExpr(el, env, depth)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return NewList(items), nil

	case *ast.UnaryExpr:
		v, err := in.evalExpr(e.Operand, env, depth)
		if err != nil {
			return nil, err
		}
		n, ok := v.(Number)
		if !ok {
			return nil, newError(diagnostics.EType, e.Span, "operator '-' requires a number, got %s", TypeName(v))
		}
		return NewNumber(-n.Value), nil

	case *ast.BinaryExpr:
		return in.evalBinary(e, env, depth)

	case *ast.CondExpr:
		cond, err := in.evalExpr(e.Cond, env, depth)
		if err != nil {
			return nil, err
		}
		n, ok := cond.(Number)
		if !ok {
			return nil, newError(diagnostics.EType, e.Cond.NodeSpan(), "condition must be a number, got %s", TypeName(cond))
		}
		if Truthy(n) {
			return in.evalExpr(e.Then, env, depth)
		}
		return in.evalExpr(e.Else, env, depth)

	case *ast.CallExpr:
		return in.evalCall(e, env, depth)

	default:
		return nil, newError(diagnostics.EType, expr.NodeSpan(), "cannot evaluate %s node", expr.Kind())
	}
}

func (in *Interp) evalBinary(e *ast.BinaryExpr, env *Env, depth int) (Value, error) {
	lv, err := in.evalExpr(e.Left, env, depth)
	if err != nil {
		return nil, err
	}
	rv, err := in.evalExpr(e.Right, env, depth)
	if err != nil {
		return nil, err
	}
	ln, ok := lv.(Number)
	if !ok {
		return nil, newError(diagnostics.EType, e.Left.NodeSpan(), "operator '%s' requires numbers, got %s", opSymbol(e.Op), TypeName(lv))
	}
	rn, ok := rv.(Number)
	if !ok {
		return nil, newError(diagnostics.EType, e.Right.NodeSpan(), "operator '%s' requires numbers, got %s", opSymbol(e.Op), TypeName(rv))
	}
	l, r := ln.Value, rn.Value
	switch e.Op {
	case ast.OpAdd:
		return NewNumber(l + r), nil
	case ast.OpSub:
		return NewNumber(l - r), nil
	case ast.OpMul:
		return NewNumber(l * r), nil
	case ast.OpDiv:
		// Division by zero follows IEEE754: Inf or NaN, never an error.
		return NewNumber(l / r), nil
	case ast.OpMod:
		return NewNumber(math.Mod(l, r)), nil
	case ast.OpLt:
		if l < r {
			return NewNumber(1), nil
		}
		return NewNumber(0), nil
	case ast.OpGt:
		if l > r {
			return NewNumber(1), nil
		}
		return NewNumber(0), nil
	default:
		return nil, newError(diagnostics.EType, e.Span, "unknown operator '%s'", opSymbol(e.Op))
	}
}

// namedArg is an evaluated named argument awaiting binding.
type namedArg struct {
	name string
	val  Value
	span ast.Span
}

func (in *Interp) evalCall(call *ast.CallExpr, env *Env, depth int) (Value, error) {
	var pos []Value
	var named []namedArg
	for _, a := range call.Args {
		v, err := in.evalExpr(a.Value, env, depth)
		if err != nil {
			return nil, err
		}
		if a.Positional() {
			pos = append(pos, v)
		} else {
			named = append(named, namedArg{name: a.Name, val: v, span: a.Span})
		}
	}
	newDepth := depth + 1
	if newDepth > in.maxDepth {
		return nil, newError(diagnostics.ERecursion, call.Span, "recursion limit of %d exceeded in call to '%s'", in.maxDepth, call.Callee)
	}
	if def, ok := in.funcs[call.Callee]; ok {
		return in.invoke(call.Callee, def, pos, named, call.Span, newDepth)
	}
	if b, ok := in.builtins[call.Callee]; ok {
		return in.invokeBuiltin(b, pos, named, call.Span)
	}
	return nil, newError(diagnostics.EUnknownFn, call.Span, "unknown function '%s'", call.Callee)
}

// invoke binds arguments into a fresh parameter frame and evaluates the
// function body. Binding order: positional left to right, then named,
// then defaults for any parameter still unbound. Default expressions see
// the parameters bound so far plus the global frame.
func (in *Interp) invoke(name string, def *ast.FuncDef, pos []Value, named []namedArg, span ast.Span, depth int) (Value, error) {
	frame := NewEnv(in.globals)
	bound := make(map[string]bool, len(def.Params))
	binds := make([]diagnostics.ArgBind, 0, len(def.Params))

	if len(pos) > len(def.Params) {
		return nil, newError(diagnostics.EArgs, span, "too many arguments in call to '%s': expected at most %d, got %d", name, len(def.Params), len(pos))
	}
	for i, v := range pos {
		p := def.Params[i]
		frame.Set(p.Name, v)
		bound[p.Name] = true
		binds = append(binds, diagnostics.ArgBind{Name: p.Name, Value: FormatValue(v)})
	}
	for _, na := range named {
		if def.Param(na.name) == nil {
			return nil, newError(diagnostics.EArgs, na.span, "unknown parameter '%s' in call to '%s'", na.name, name)
		}
		if bound[na.name] {
			return nil, newError(diagnostics.EArgs, na.span, "parameter '%s' bound more than once in call to '%s'", na.name, name)
		}
		frame.Set(na.name, na.val)
		bound[na.name] = true
		binds = append(binds, diagnostics.ArgBind{Name: na.name, Value: FormatValue(na.val)})
	}
	for _, p := range def.Params {
		if bound[p.Name] {
			continue
		}
		if p.Default == nil {
			return nil, newError(diagnostics.EArgs, span, "missing argument '%s' in call to '%s'", p.Name, name)
		}
		v, err := in.evalExpr(p.Default, frame, depth)
		if err != nil {
			return nil, pushFrame(err, name, span, binds)
		}
		frame.Set(p.Name, v)
		bound[p.Name] = true
		binds = append(binds, diagnostics.ArgBind{Name: p.Name, Value: FormatValue(v)})
	}

	if len(def.Body) == 1 {
		v, err := in.evalExpr(def.Body[0], frame, depth)
		if err != nil {
			return nil, pushFrame(err, name, span, binds)
		}
		return v, nil
	}
	total := 0.0
	for _, stmt := range def.Body {
		v, err := in.evalExpr(stmt, frame, depth)
		if err != nil {
			return nil, pushFrame(err, name, span, binds)
		}
		n, ok := v.(Number)
		if !ok {
			return nil, pushFrame(newError(diagnostics.EType, stmt.NodeSpan(), "cannot sum list value in body of '%s'", name), name, span, binds)
		}
		total += n.Value
	}
	return NewNumber(total), nil
}

func (in *Interp) invokeBuiltin(b *BuiltinFn, pos []Value, named []namedArg, span ast.Span) (Value, error) {
	vals := make([]float64, len(b.Params))
	bound := make([]bool, len(b.Params))

	if len(pos) > len(b.Params) {
		return nil, newError(diagnostics.EArgs, span, "too many arguments in call to '%s': expected at most %d, got %d", b.Name, len(b.Params), len(pos))
	}
	for i, v := range pos {
		n, ok := v.(Number)
		if !ok {
			return nil, newError(diagnostics.EType, span, "builtin '%s' requires number arguments, got %s", b.Name, TypeName(v))
		}
		vals[i] = n.Value
		bound[i] = true
	}
	for _, na := range named {
		idx := -1
		for i, p := range b.Params {
			if p.Name == na.name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, newError(diagnostics.EArgs, na.span, "unknown parameter '%s' in call to '%s'", na.name, b.Name)
		}
		if bound[idx] {
			return nil, newError(diagnostics.EArgs, na.span, "parameter '%s' bound more than once in call to '%s'", na.name, b.Name)
		}
		n, ok := na.val.(Number)
		if !ok {
			return nil, newError(diagnostics.EType, na.span, "builtin '%s' requires number arguments, got %s", b.Name, TypeName(na.val))
		}
		vals[idx] = n.Value
		bound[idx] = true
	}
	for i, p := range b.Params {
		if bound[i] {
			continue
		}
		if p.Default == nil {
			return nil, newError(diagnostics.EArgs, span, "missing argument '%s' in call to '%s'", p.Name, b.Name)
		}
		vals[i] = *p.Default
		bound[i] = true
	}
	return NewNumber(b.Execute(vals)), nil
}

func opSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpLt:
		return "<"
	case ast.OpGt:
		return ">"
	default:
		return "?"
	}
}
