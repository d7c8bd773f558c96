package lexer

import "testing"

func collectTokens(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestNextTokenPunctuation(t *testing.T) {
	input := `()[]{}+-*/.?` + "`" + `;`

	expected := []TokenType{
		LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE,
		PLUS, MINUS, STAR, SLASH, DOT, QUESTION, BACKTICK, EOF,
	}

	toks := collectTokens(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(toks), toks)
	}
	for i, tt := range expected {
		if toks[i].Type != tt {
			t.Errorf("token %d: expected %v, got %v (%q)", i, tt, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestNextTokenQuote(t *testing.T) {
	toks := collectTokens(`'done`)
	if toks[0].Type != QUOTE {
		t.Fatalf("expected QUOTE, got %v (%q)", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != IDENT || toks[1].Literal != "done" {
		t.Errorf("expected IDENT %q, got %v (%q)", "done", toks[1].Type, toks[1].Literal)
	}
}

func TestNextTokenTwoCharOperators(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"==", EQ},
		{"!=", NEQ},
		{"<=", LTE},
		{">=", GTE},
		{":=", ASSIGN},
		{",@", COMMA_AT},
		{"<", LT},
		{">", GT},
		{",", COMMA},
	}

	for _, tt := range tests {
		toks := collectTokens(tt.input)
		if toks[0].Type != tt.want {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, toks[0].Type)
		}
	}
}

func TestNextTokenIdentifiers(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"foo", "foo"},
		{"foo-bar?", "foo-bar?"},
		{"set!", "set!"},
		{"*global*", "*global*"},
		{"mod", "mod"},
	}

	for _, tt := range tests {
		toks := collectTokens(tt.input)
		if toks[0].Type != IDENT {
			t.Errorf("input %q: expected IDENT, got %v", tt.input, toks[0].Type)
			continue
		}
		if toks[0].Literal != tt.literal {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.literal, toks[0].Literal)
		}
	}
}

func TestNextTokenKeyword(t *testing.T) {
	toks := collectTokens(":strict")
	if toks[0].Type != KEYWORD {
		t.Fatalf("expected KEYWORD, got %v", toks[0].Type)
	}
	if toks[0].Literal != ":strict" {
		t.Errorf("expected literal %q, got %q", ":strict", toks[0].Literal)
	}
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []struct {
		input   string
		want    TokenType
		literal string
	}{
		{"42", INT, "42"},
		{"3.14", FLOAT, "3.14"},
		{"1e10", FLOAT, "1e10"},
		{"2.5e-3", FLOAT, "2.5e-3"},
	}

	for _, tt := range tests {
		toks := collectTokens(tt.input)
		if toks[0].Type != tt.want {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, toks[0].Type)
			continue
		}
		if toks[0].Literal != tt.literal {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.literal, toks[0].Literal)
		}
	}
}

func TestNextTokenNegativeNumberIsMinusThenInt(t *testing.T) {
	// A leading '-' is always its own MINUS token; the parser is
	// responsible for folding `-5` into a unary negation.
	toks := collectTokens("-5")
	if toks[0].Type != MINUS {
		t.Fatalf("expected MINUS, got %v", toks[0].Type)
	}
	if toks[1].Type != INT || toks[1].Literal != "5" {
		t.Fatalf("expected INT 5, got %v %q", toks[1].Type, toks[1].Literal)
	}
}

func TestNextTokenString(t *testing.T) {
	toks := collectTokens(`"hello\nworld"`)
	if toks[0].Type != STRING {
		t.Fatalf("expected STRING, got %v", toks[0].Type)
	}
	if toks[0].Literal != "hello\nworld" {
		t.Errorf("expected %q, got %q", "hello\nworld", toks[0].Literal)
	}
}

func TestNextTokenStringEscapes(t *testing.T) {
	toks := collectTokens(`"a\tb\\c\"d"`)
	want := "a\tb\\c\"d"
	if toks[0].Literal != want {
		t.Errorf("expected %q, got %q", want, toks[0].Literal)
	}
}

func TestSkipsCommentsToEndOfLine(t *testing.T) {
	input := "1 ; this is a comment\n2"
	toks := collectTokens(input)
	if toks[0].Type != INT || toks[0].Literal != "1" {
		t.Fatalf("expected INT 1 first, got %v %q", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != INT || toks[1].Literal != "2" {
		t.Fatalf("expected INT 2 second, got %v %q", toks[1].Type, toks[1].Literal)
	}
}

func TestNextTokenTracksLineAndColumn(t *testing.T) {
	input := "a\nb"
	toks := collectTokens(input)
	if toks[0].Pos.Line != 1 {
		t.Errorf("expected 'a' on line 1, got %d", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("expected 'b' on line 2, got %d", toks[1].Pos.Line)
	}
}

func TestNextTokenIllegalCharacter(t *testing.T) {
	toks := collectTokens("@")
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", toks[0].Type)
	}
}

func TestNextTokenFullExpression(t *testing.T) {
	input := `(define x (+ 1 2.5 "str" :key))`
	toks := collectTokens(input)

	expected := []TokenType{
		LPAREN, IDENT, IDENT, LPAREN, PLUS, INT, FLOAT, STRING, KEYWORD, RPAREN, RPAREN, EOF,
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(toks), toks)
	}
	for i, tt := range expected {
		if toks[i].Type != tt {
			t.Errorf("token %d: expected %v, got %v (%q)", i, tt, toks[i].Type, toks[i].Literal)
		}
	}
}
