// Package lexer tokenizes source text for internal/parser. It is
// grounded on the teacher's internal/lexer package: a hand-written
// scanner producing a flat Token stream consumed by a Pratt parser,
// generalized from DWScript's Pascal-family token set (keywords,
// compound assignment, `..` range) to this language's smaller
// Lisp-flavored one (parens/brackets/braces, quasiquote punctuation,
// a short infix operator set).
package lexer

import "github.com/openSVM/solisp-sub002/internal/errors"

// TokenType identifies one lexical category.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT
	KEYWORD // :name
	INT
	FLOAT
	STRING

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE

	PLUS
	MINUS
	STAR
	SLASH
	EQ
	NEQ
	LT
	LTE
	GT
	GTE
	ASSIGN // :=
	DOT
	QUESTION
	COLON
	BACKTICK
	COMMA
	COMMA_AT
	QUOTE
	SEMI
)

// Token is one scanned lexeme plus its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     errors.Position
}

var keywords = map[string]bool{
	"mod": true,
	"rem": true,
}

// IsOperatorWord reports whether literal is a word-form infix operator
// (mod/rem), which the parser treats like the symbolic operators for
// precedence purposes even though the lexer emits them as IDENT.
func IsOperatorWord(s string) bool { return keywords[s] }
