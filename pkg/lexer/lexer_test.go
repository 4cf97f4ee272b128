package lexer_test

import (
	"testing"

	"github.com/chirplang/chirp/pkg/lexer"
)

// tokenize runs the lexer and fails the test on any lex error.
func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Tokenize(src, "test.chirp")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return toks
}

func expectTypes(t *testing.T, toks []lexer.Token, want []lexer.TokenType) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got type %d (%q), want %d", i, tok.Type, tok.Value, want[i])
		}
	}
}

func TestTokenizeBinding(t *testing.T) {
	toks := tokenize(t, "freq = 440;")
	expectTypes(t, toks, []lexer.TokenType{
		lexer.TokIdent, lexer.TokEquals, lexer.TokNumber, lexer.TokSemicolon, lexer.TokEOF,
	})
	if toks[0].Value != "freq" {
		t.Errorf("ident value: got %q, want %q", toks[0].Value, "freq")
	}
	if toks[2].Value != "440" {
		t.Errorf("number value: got %q, want %q", toks[2].Value, "440")
	}
}

func TestTokenizeFunctionDef(t *testing.T) {
	toks := tokenize(t, "main t {\n    sin(t);\n}")
	expectTypes(t, toks, []lexer.TokenType{
		lexer.TokIdent, lexer.TokIdent, lexer.TokLBrace,
		lexer.TokIdent, lexer.TokLParen, lexer.TokIdent, lexer.TokRParen, lexer.TokSemicolon,
		lexer.TokRBrace, lexer.TokEOF,
	})
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e3", "1e3"},
		{"2.5e-4", "2.5e-4"},
		{"1E+6", "1E+6"},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.src)
		if toks[0].Type != lexer.TokNumber {
			t.Errorf("%q: got type %d, want number", tt.src, toks[0].Type)
			continue
		}
		if toks[0].Value != tt.want {
			t.Errorf("%q: got value %q, want %q", tt.src, toks[0].Value, tt.want)
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	toks := tokenize(t, "a if b else c")
	expectTypes(t, toks, []lexer.TokenType{
		lexer.TokIdent, lexer.TokIf, lexer.TokIdent, lexer.TokElse, lexer.TokIdent, lexer.TokEOF,
	})
}

func TestTokenizeOperators(t *testing.T) {
	toks := tokenize(t, "+ - * / % < > = , ; [ ] ( ) { }")
	expectTypes(t, toks, []lexer.TokenType{
		lexer.TokPlus, lexer.TokMinus, lexer.TokStar, lexer.TokSlash, lexer.TokPercent,
		lexer.TokLt, lexer.TokGt, lexer.TokEquals, lexer.TokComma, lexer.TokSemicolon,
		lexer.TokLBracket, lexer.TokRBracket, lexer.TokLParen, lexer.TokRParen,
		lexer.TokLBrace, lexer.TokRBrace, lexer.TokEOF,
	})
}

func TestTokenizeComments(t *testing.T) {
	toks := tokenize(t, "// leading comment\nx = 1; // trailing\n// final")
	expectTypes(t, toks, []lexer.TokenType{
		lexer.TokIdent, lexer.TokEquals, lexer.TokNumber, lexer.TokSemicolon, lexer.TokEOF,
	})
}

func TestTokenizeSpans(t *testing.T) {
	toks := tokenize(t, "x = 1;\ny = 2;")
	// y is the fifth token, on line 2 column 1.
	y := toks[4]
	if y.Value != "y" {
		t.Fatalf("got token %q, want y", y.Value)
	}
	if y.Span.StartLine != 2 || y.Span.StartCol != 1 {
		t.Errorf("span: got %d:%d, want 2:1", y.Span.StartLine, y.Span.StartCol)
	}
}

func TestTokenizeInvalidChar(t *testing.T) {
	_, err := lexer.Tokenize("x = $;", "test.chirp")
	if err == nil {
		t.Fatal("expected lex error for '$'")
	}
	lexErr, ok := err.(*lexer.LexError)
	if !ok {
		t.Fatalf("got %T, want *lexer.LexError", err)
	}
	if lexErr.Diag.Code != "E_LEX" {
		t.Errorf("code: got %q, want E_LEX", lexErr.Diag.Code)
	}
}

func TestTokenizeEmptySource(t *testing.T) {
	toks := tokenize(t, "")
	expectTypes(t, toks, []lexer.TokenType{lexer.TokEOF})
}
