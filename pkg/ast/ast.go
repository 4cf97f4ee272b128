// Package ast defines the Chirp language AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpLt  BinaryOp = "<"
	OpGt  BinaryOp = ">"
)

// UnaryOp represents a unary operator.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Decl is the interface for all top-level declaration nodes ---

type Decl interface {
	Node
	declNode() // sealed marker
	DeclName() string
}

// --- Expressions ---

type NumberLit struct {
	Span  Span
	Value float64
}

func (n *NumberLit) Kind() string   { return "NumberLit" }
func (n *NumberLit) NodeSpan() Span { return n.Span }
func (n *NumberLit) exprNode()      {}

type Ident struct {
	Span Span
	Name string
}

func (n *Ident) Kind() string   { return "Ident" }
func (n *Ident) NodeSpan() Span { return n.Span }
func (n *Ident) exprNode()      {}

type BinaryExpr struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Kind() string   { return "BinaryExpr" }
func (n *BinaryExpr) NodeSpan() Span { return n.Span }
func (n *BinaryExpr) exprNode()      {}

type UnaryExpr struct {
	Span    Span
	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpr) Kind() string   { return "UnaryExpr" }
func (n *UnaryExpr) NodeSpan() Span { return n.Span }
func (n *UnaryExpr) exprNode()      {}

// CondExpr is the postfix conditional `then if cond else other`.
// Only the selected branch is ever evaluated.
type CondExpr struct {
	Span Span
	Then Expr
	Cond Expr
	Else Expr
}

func (n *CondExpr) Kind() string   { return "CondExpr" }
func (n *CondExpr) NodeSpan() Span { return n.Span }
func (n *CondExpr) exprNode()      {}

// Argument is a call argument or array element: positional when Name is
// empty, named (`name = expr`) otherwise.
type Argument struct {
	Span  Span
	Name  string
	Value Expr
}

func (n *Argument) Kind() string   { return "Argument" }
func (n *Argument) NodeSpan() Span { return n.Span }

// Positional reports whether the argument binds by position.
func (n *Argument) Positional() bool { return n.Name == "" }

// CallExpr is a function call, written either `f(args)` or `f[args]`.
// Both forms produce identical nodes.
type CallExpr struct {
	Span   Span
	Callee string
	Args   []*Argument
}

func (n *CallExpr) Kind() string   { return "CallExpr" }
func (n *CallExpr) NodeSpan() Span { return n.Span }
func (n *CallExpr) exprNode()      {}

// ArrayLit is a bare `[...]` used as a value rather than as call sugar.
// Elements are positional only.
type ArrayLit struct {
	Span     Span
	Elements []Expr
}

func (n *ArrayLit) Kind() string   { return "ArrayLit" }
func (n *ArrayLit) NodeSpan() Span { return n.Span }
func (n *ArrayLit) exprNode()      {}

// --- Declarations ---

// Binding is a top-level constant: `name = expr ;`.
type Binding struct {
	Span  Span
	Name  string
	Value Expr
}

func (n *Binding) Kind() string     { return "Binding" }
func (n *Binding) NodeSpan() Span   { return n.Span }
func (n *Binding) declNode()        {}
func (n *Binding) DeclName() string { return n.Name }

// Param is a function parameter with an optional default expression.
// Parameter order is the canonical positional-binding order regardless of
// default presence.
type Param struct {
	Span    Span
	Name    string
	Default Expr // nil when the parameter is required
}

func (n *Param) Kind() string   { return "Param" }
func (n *Param) NodeSpan() Span { return n.Span }

// FuncDef is a waveform-generator definition. The function's value is the
// sum of its body statement values, evaluated left to right.
type FuncDef struct {
	Span   Span
	Name   string
	Params []*Param
	Body   []Expr
}

func (n *FuncDef) Kind() string     { return "FuncDef" }
func (n *FuncDef) NodeSpan() Span   { return n.Span }
func (n *FuncDef) declNode()        {}
func (n *FuncDef) DeclName() string { return n.Name }

// Param returns the parameter with the given name, or nil.
func (n *FuncDef) Param(name string) *Param {
	for _, p := range n.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// --- Program ---

type Program struct {
	Span  Span
	Decls []Decl
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }

// Func returns the function declaration with the given name, or nil.
func (n *Program) Func(name string) *FuncDef {
	for _, d := range n.Decls {
		if fd, ok := d.(*FuncDef); ok && fd.Name == name {
			return fd
		}
	}
	return nil
}

// Binding returns the constant binding with the given name, or nil.
func (n *Program) Binding(name string) *Binding {
	for _, d := range n.Decls {
		if b, ok := d.(*Binding); ok && b.Name == name {
			return b
		}
	}
	return nil
}
