// Package formatter implements the Chirp source code formatter.
package formatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/chirplang/chirp/pkg/ast"
)

const indent = "    "

// Precedence table for binary operators (higher = tighter binding)
var precedence = map[ast.BinaryOp]int{
	ast.OpLt: 1, ast.OpGt: 1,
	ast.OpAdd: 2, ast.OpSub: 2,
	ast.OpMul: 3, ast.OpDiv: 3, ast.OpMod: 3,
}

func needsParens(child ast.Expr, parentOp ast.BinaryOp, isRight bool) bool {
	switch c := child.(type) {
	case *ast.CondExpr:
		// Conditionals bind loosest; always parenthesize under an operator.
		return true
	case *ast.BinaryExpr:
		childPrec := precedence[c.Op]
		parentPrec := precedence[parentOp]
		if childPrec < parentPrec {
			return true
		}
		// Left-associativity: same precedence on the right keeps parens.
		return childPrec == parentPrec && isRight
	default:
		return false
	}
}

// Format pretty-prints a Chirp AST back to source code.
func Format(program *ast.Program) string {
	var lines []string
	for _, d := range program.Decls {
		lines = append(lines, formatDecl(d))
	}
	return strings.Join(lines, "\n") + "\n"
}

// HasComments reports whether a source string contains // comments. The
// AST does not carry comments, so formatting such a source would drop
// them.
func HasComments(source string) bool {
	return strings.Contains(source, "//")
}

func formatDecl(d ast.Decl) string {
	switch decl := d.(type) {
	case *ast.Binding:
		return decl.Name + " = " + formatExpr(decl.Value) + ";"
	case *ast.FuncDef:
		var b strings.Builder
		b.WriteString(decl.Name)
		for i, p := range decl.Params {
			if i == 0 {
				b.WriteString(" ")
			} else {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			if p.Default != nil {
				b.WriteString(" = " + formatExpr(p.Default))
			}
		}
		b.WriteString(" {\n")
		for _, stmt := range decl.Body {
			b.WriteString(indent + formatExpr(stmt) + ";\n")
		}
		b.WriteString("}")
		return b.String()
	}
	return ""
}

func formatExpr(e ast.Expr) string {
	switch expr := e.(type) {
	case *ast.NumberLit:
		return formatNumber(expr.Value)
	case *ast.Ident:
		return expr.Name
	case *ast.BinaryExpr:
		left := formatExpr(expr.Left)
		right := formatExpr(expr.Right)
		if needsParens(expr.Left, expr.Op, false) {
			left = "(" + left + ")"
		}
		if needsParens(expr.Right, expr.Op, true) {
			right = "(" + right + ")"
		}
		return left + " " + string(expr.Op) + " " + right
	case *ast.UnaryExpr:
		operand := formatExpr(expr.Operand)
		switch expr.Operand.(type) {
		case *ast.BinaryExpr, *ast.CondExpr, *ast.UnaryExpr:
			return "-(" + operand + ")"
		}
		return "-" + operand
	case *ast.CondExpr:
		then := formatExpr(expr.Then)
		if _, ok := expr.Then.(*ast.CondExpr); ok {
			then = "(" + then + ")"
		}
		cond := formatExpr(expr.Cond)
		if _, ok := expr.Cond.(*ast.CondExpr); ok {
			cond = "(" + cond + ")"
		}
		// Else is right-associative; nested conditionals need no parens.
		return then + " if " + cond + " else " + formatExpr(expr.Else)
	case *ast.CallExpr:
		parts := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			parts[i] = formatArg(a)
		}
		return expr.Callee + "(" + strings.Join(parts, ", ") + ")"
	case *ast.ArrayLit:
		parts := make([]string, len(expr.Elements))
		for i, el := range expr.Elements {
			parts[i] = formatExpr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

func formatArg(a *ast.Argument) string {
	if a.Positional() {
		return formatExpr(a.Value)
	}
	return a.Name + " = " + formatExpr(a.Value)
}

func formatNumber(value float64) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
