// Package parser implements the Chirp language parser.
package parser

import (
	"fmt"
	"strconv"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

// Parse tokenizes source and parses it into an AST. Parsing is total: it
// returns either a complete Program or diagnostics, never a partial AST.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}

	p := &parser{tokens: tokens, pos: 0}
	prog := p.parseProgram(filename)
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return prog, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

func (p *parser) peekAt(offset int) lexer.TokenType {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.TokEOF
	}
	return p.tokens[idx].Type
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		p.addError(fmt.Sprintf("expected %s, got '%s'", tokenName(typ), describe(tok)), &tok.Span)
		return tok, false
	}
	return p.advance(), true
}

func (p *parser) addError(msg string, span *ast.Span) {
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, span, ""))
}

func (p *parser) spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokLBrace:
		return "'{'"
	case lexer.TokRBrace:
		return "'}'"
	case lexer.TokLBracket:
		return "'['"
	case lexer.TokRBracket:
		return "']'"
	case lexer.TokLParen:
		return "'('"
	case lexer.TokRParen:
		return "')'"
	case lexer.TokComma:
		return "','"
	case lexer.TokSemicolon:
		return "';'"
	case lexer.TokEquals:
		return "'='"
	case lexer.TokIdent:
		return "identifier"
	case lexer.TokNumber:
		return "number"
	case lexer.TokIf:
		return "'if'"
	case lexer.TokElse:
		return "'else'"
	case lexer.TokEOF:
		return "end of file"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.TokEOF {
		return "end of file"
	}
	return tok.Value
}

// --- Program ---

func (p *parser) parseProgram(filename string) *ast.Program {
	startSpan := p.current().Span

	var decls []ast.Decl
	for p.peek() != lexer.TokEOF {
		decl := p.parseDecl()
		if decl == nil {
			return nil
		}
		decls = append(decls, decl)
	}

	endSpan := p.current().Span
	return &ast.Program{
		Span:  p.spanFromTo(startSpan, endSpan),
		Decls: decls,
	}
}

// --- Declarations ---

// parseDecl parses one top-level declaration. A name followed by '=' is a
// constant binding; anything else is a function definition.
func (p *parser) parseDecl() ast.Decl {
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}

	if p.peek() == lexer.TokEquals {
		if b := p.parseBinding(nameTok); b != nil {
			return b
		}
		return nil
	}
	if fd := p.parseFuncDef(nameTok); fd != nil {
		return fd
	}
	return nil
}

func (p *parser) parseBinding(nameTok lexer.Token) *ast.Binding {
	p.advance() // consume '='
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	end, ok := p.expect(lexer.TokSemicolon)
	if !ok {
		return nil
	}
	return &ast.Binding{
		Span:  p.spanFromTo(nameTok.Span, end.Span),
		Name:  nameTok.Value,
		Value: value,
	}
}

func (p *parser) parseFuncDef(nameTok lexer.Token) *ast.FuncDef {
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.TokLBrace); !ok {
		return nil
	}

	var body []ast.Expr
	for p.peek() != lexer.TokRBrace && p.peek() != lexer.TokEOF {
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(lexer.TokSemicolon); !ok {
			return nil
		}
		body = append(body, expr)
	}

	end, ok := p.expect(lexer.TokRBrace)
	if !ok {
		return nil
	}
	if len(body) == 0 {
		span := p.spanFromTo(nameTok.Span, end.Span)
		p.addError(fmt.Sprintf("function '%s' requires at least one body expression", nameTok.Value), &span)
		return nil
	}

	return &ast.FuncDef{
		Span:   p.spanFromTo(nameTok.Span, end.Span),
		Name:   nameTok.Value,
		Params: params,
		Body:   body,
	}
}

// parseParamList parses `name (= default)?` pairs up to the opening '{'.
// The list may be empty.
func (p *parser) parseParamList() ([]*ast.Param, bool) {
	var params []*ast.Param

	for p.peek() == lexer.TokIdent {
		nameTok := p.advance()
		param := &ast.Param{Span: nameTok.Span, Name: nameTok.Value}

		if p.peek() == lexer.TokEquals {
			p.advance() // consume '='
			def := p.parseExpr()
			if def == nil {
				return nil, false
			}
			param.Default = def
			param.Span = p.spanFromTo(nameTok.Span, def.NodeSpan())
		}
		params = append(params, param)

		if p.peek() == lexer.TokComma {
			p.advance()
			continue
		}
		break
	}

	return params, true
}

// --- Expressions ---

// parseExpr parses a conditional, the lowest-precedence form. The postfix
// conditional `then if cond else other` is right-associative: the else
// branch may itself be another conditional.
func (p *parser) parseExpr() ast.Expr {
	then := p.parseComparison()
	if then == nil {
		return nil
	}

	if p.peek() != lexer.TokIf {
		return then
	}
	p.advance() // consume 'if'

	cond := p.parseComparison()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokElse); !ok {
		return nil
	}
	els := p.parseExpr()
	if els == nil {
		return nil
	}

	return &ast.CondExpr{
		Span: p.spanFromTo(then.NodeSpan(), els.NodeSpan()),
		Then: then,
		Cond: cond,
		Else: els,
	}
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokLt:
			op = ast.OpLt
		case lexer.TokGt:
			op = ast.OpGt
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokPlus:
			op = ast.OpAdd
		case lexer.TokMinus:
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokStar:
			op = ast.OpMul
		case lexer.TokSlash:
			op = ast.OpDiv
		case lexer.TokPercent:
			op = ast.OpMod
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseUnary() ast.Expr {
	if p.peek() == lexer.TokMinus {
		start := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			Span:    p.spanFromTo(start.Span, operand.NodeSpan()),
			Op:      ast.OpNeg,
			Operand: operand,
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.peek() {
	case lexer.TokLParen:
		// Grouped expression
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return expr

	case lexer.TokLBracket:
		return p.parseArrayLit()

	case lexer.TokNumber:
		tok := p.advance()
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.addError(fmt.Sprintf("invalid number literal '%s'", tok.Value), &tok.Span)
			return nil
		}
		return &ast.NumberLit{Span: tok.Span, Value: val}

	case lexer.TokIdent:
		return p.parseIdentOrCall()

	default:
		tok := p.current()
		p.addError(fmt.Sprintf("unexpected token '%s'", describe(tok)), &tok.Span)
		return nil
	}
}

// parseIdentOrCall parses an identifier reference, or a call when the name
// is immediately followed by '(' or '['. Both call forms produce identical
// nodes.
func (p *parser) parseIdentOrCall() ast.Expr {
	nameTok := p.advance()

	var closing lexer.TokenType
	switch p.peek() {
	case lexer.TokLParen:
		closing = lexer.TokRParen
	case lexer.TokLBracket:
		closing = lexer.TokRBracket
	default:
		return &ast.Ident{Span: nameTok.Span, Name: nameTok.Value}
	}
	p.advance() // consume opening bracket

	args, ok := p.parseArgList(closing)
	if !ok {
		return nil
	}
	end, ok := p.expect(closing)
	if !ok {
		return nil
	}

	return &ast.CallExpr{
		Span:   p.spanFromTo(nameTok.Span, end.Span),
		Callee: nameTok.Value,
		Args:   args,
	}
}

// parseArgList parses comma-separated arguments up to (not including) the
// closing token. An argument is `name = expr` or a bare expression.
func (p *parser) parseArgList(closing lexer.TokenType) ([]*ast.Argument, bool) {
	var args []*ast.Argument

	for p.peek() != closing && p.peek() != lexer.TokEOF {
		arg := p.parseArg()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		if p.peek() == lexer.TokComma {
			p.advance()
			continue
		}
		break
	}

	return args, true
}

func (p *parser) parseArg() *ast.Argument {
	// `name = expr` is a named argument; '=' cannot begin an expression, so
	// one token of lookahead suffices.
	if p.peek() == lexer.TokIdent && p.peekAt(1) == lexer.TokEquals {
		nameTok := p.advance()
		p.advance() // consume '='
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return &ast.Argument{
			Span:  p.spanFromTo(nameTok.Span, value.NodeSpan()),
			Name:  nameTok.Value,
			Value: value,
		}
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.Argument{Span: value.NodeSpan(), Value: value}
}

// parseArrayLit parses a bare `[...]` array literal. Elements are
// positional only; named-argument syntax is call sugar and is rejected here.
func (p *parser) parseArrayLit() ast.Expr {
	start, ok := p.expect(lexer.TokLBracket)
	if !ok {
		return nil
	}

	var elements []ast.Expr
	for p.peek() != lexer.TokRBracket && p.peek() != lexer.TokEOF {
		if p.peek() == lexer.TokIdent && p.peekAt(1) == lexer.TokEquals {
			tok := p.current()
			p.addError(fmt.Sprintf("named element '%s' is not allowed in an array literal", tok.Value), &tok.Span)
			return nil
		}
		elem := p.parseExpr()
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)

		if p.peek() == lexer.TokComma {
			p.advance()
			continue
		}
		break
	}

	end, ok := p.expect(lexer.TokRBracket)
	if !ok {
		return nil
	}

	return &ast.ArrayLit{
		Span:     p.spanFromTo(start.Span, end.Span),
		Elements: elements,
	}
}
