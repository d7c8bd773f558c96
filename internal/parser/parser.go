// Package parser implements a Pratt parser producing internal/ast from the
// token stream internal/lexer scans. It is grounded on the teacher's
// internal/parser package: prefix/infix parse-function tables keyed by
// token type plus an explicit precedence ladder, generalized from
// DWScript's Pascal-family statement grammar to this language's smaller
// mixed grammar — a short infix-operator/field-access/ternary surface for
// expressions outside parentheses, and Lisp-style parenthesized forms
// `(name arg...)` for everything else (control forms, function calls,
// macro calls, tool calls), disambiguated by head name at parse time for
// the handful of forms (loop/catch/throw/destructuring-bind/lambda) that
// need dedicated parsing rather than a flat argument list.
package parser

import (
	"fmt"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/lexer"
)

const (
	LOWEST = iota
	TERNARY
	EQUALITY
	COMPARISON
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.QUESTION: TERNARY,
	lexer.EQ:       EQUALITY,
	lexer.NEQ:      EQUALITY,
	lexer.LT:       COMPARISON,
	lexer.LTE:      COMPARISON,
	lexer.GT:       COMPARISON,
	lexer.GTE:      COMPARISON,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.STAR:     PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.DOT:      CALL,
	lexer.LBRACKET: CALL,
}

// Parser turns a lexer.Lexer's token stream into an *ast.Program, keeping
// one token of lookahead the way the teacher's parser does.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	// depth counts the enclosing (), [] or {} forms; infix operators,
	// field/index access and the ternary apply only at depth 0.
	depth int

	errs []string
}

// New constructs a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

// Errors returns every parse error accumulated so far, in source order.
func (p *Parser) Errors() []string { return p.errs }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Sprintf("%s: "+format, append([]interface{}{p.cur.Pos.String()}, args...)...))
}

func (p *Parser) expect(tt lexer.TokenType, what string) bool {
	if p.cur.Type != tt {
		p.errorf("expected %s, got %q", what, p.cur.Literal)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	if p.peek.Type == lexer.IDENT && lexer.IsOperatorWord(p.peek.Literal) {
		return PRODUCT
	}
	return LOWEST
}

// ParseProgram consumes the entire token stream and returns the resulting
// Program. Parse errors are recorded in p.errs and parsing resynchronizes
// at the next top-level form.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	pos := p.cur.Pos

	if p.cur.Type == lexer.LPAREN && p.peek.Type == lexer.IDENT {
		switch p.peek.Literal {
		case "const", "def":
			return p.parseConstantDef(pos)
		case "set!":
			return p.parseTopLevelAssignment(pos)
		}
	}

	expr := p.parseExpression(LOWEST)
	return &ast.ExpressionStatement{Base: ast.NewBase(pos), Expression: expr}
}

func (p *Parser) parseConstantDef(pos errors.Position) *ast.ConstantDef {
	p.advance() // (
	p.advance() // const/def
	name := p.cur.Literal
	p.advance()
	value := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, ")")
	return &ast.ConstantDef{Base: ast.NewBase(pos), Name: name, Value: value}
}

func (p *Parser) parseTopLevelAssignment(pos errors.Position) *ast.Assignment {
	p.advance() // (
	p.advance() // set!
	name := p.cur.Literal
	p.advance()
	value := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, ")")
	return &ast.Assignment{Base: ast.NewBase(pos), Name: name, Value: value}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()

	for p.depth == 0 && p.cur.Type != lexer.EOF && precedence < p.curPrecedence() {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	pos := p.cur.Pos
	if p.cur.Type == lexer.LPAREN || p.cur.Type == lexer.LBRACKET || p.cur.Type == lexer.LBRACE {
		p.depth++
		defer func() { p.depth-- }()
	}
	switch p.cur.Type {
	case lexer.INT:
		return p.parseIntLiteral(pos)
	case lexer.FLOAT:
		return p.parseFloatLiteral(pos)
	case lexer.STRING:
		lit := p.cur.Literal
		p.advance()
		return &ast.StringLiteral{Base: ast.NewBase(pos), Value: lit}
	case lexer.KEYWORD:
		name := p.cur.Literal
		p.advance()
		return &ast.Variable{Base: ast.NewBase(pos), Name: name}
	case lexer.IDENT:
		return p.parseIdentLike(pos)
	case lexer.MINUS:
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.Unary{Base: ast.NewBase(pos), Op: "-", X: x}
	case lexer.PLUS:
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.Unary{Base: ast.NewBase(pos), Op: "+", X: x}
	case lexer.LPAREN:
		return p.parseList()
	case lexer.LBRACKET:
		return p.parseArrayLiteral(pos)
	case lexer.LBRACE:
		return p.parseObjectLiteral(pos)
	case lexer.BACKTICK:
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.Quasiquote{Base: ast.NewBase(pos), X: x}
	case lexer.QUOTE:
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.Quote{Base: ast.NewBase(pos), X: x}
	case lexer.COMMA:
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.Unquote{Base: ast.NewBase(pos), X: x}
	case lexer.COMMA_AT:
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.UnquoteSplice{Base: ast.NewBase(pos), X: x}
	default:
		p.errorf("unexpected token %q", p.cur.Literal)
		p.advance()
		return &ast.NullLiteral{Base: ast.NewBase(pos)}
	}
}

func (p *Parser) parseIdentLike(pos errors.Position) ast.Expression {
	switch p.cur.Literal {
	case "true":
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(pos), Value: true}
	case "false":
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(pos), Value: false}
	case "null", "nil":
		p.advance()
		return &ast.NullLiteral{Base: ast.NewBase(pos)}
	case "not":
		p.advance()
		x := p.parseExpression(PREFIX)
		return &ast.Unary{Base: ast.NewBase(pos), Op: "not", X: x}
	default:
		name := p.cur.Literal
		p.advance()
		return &ast.Variable{Base: ast.NewBase(pos), Name: name}
	}
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	switch p.cur.Type {
	case lexer.DOT:
		p.advance()
		field := p.cur.Literal
		p.advance()
		return &ast.FieldAccess{Base: ast.NewBase(pos), Object: left, Field: field}
	case lexer.LBRACKET:
		p.advance()
		idx := p.parseExpression(LOWEST)
		p.expect(lexer.RBRACKET, "]")
		return &ast.IndexAccess{Base: ast.NewBase(pos), Array: left, Index: idx}
	case lexer.QUESTION:
		p.advance()
		then := p.parseExpression(LOWEST)
		p.expect(lexer.COLON, ":")
		els := p.parseExpression(TERNARY)
		return &ast.Ternary{Base: ast.NewBase(pos), Cond: left, Then: then, Else: els}
	default:
		op := p.cur.Literal
		precedence := p.curPrecedence()
		p.advance()
		right := p.parseExpression(precedence)
		return &ast.Binary{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	if p.cur.Type == lexer.IDENT && lexer.IsOperatorWord(p.cur.Literal) {
		return PRODUCT
	}
	return LOWEST
}
