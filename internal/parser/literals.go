package parser

import (
	"strconv"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/lexer"
)

func (p *Parser) parseIntLiteral(pos errors.Position) ast.Expression {
	n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", p.cur.Literal)
	}
	p.advance()
	return &ast.IntLiteral{Base: ast.NewBase(pos), Value: n}
}

func (p *Parser) parseFloatLiteral(pos errors.Position) ast.Expression {
	f, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		p.errorf("invalid float literal %q", p.cur.Literal)
	}
	p.advance()
	return &ast.FloatLiteral{Base: ast.NewBase(pos), Value: f}
}

func (p *Parser) parseArrayLiteral(pos errors.Position) ast.Expression {
	p.advance() // [
	var elems []ast.Expression
	for p.cur.Type != lexer.RBRACKET && p.cur.Type != lexer.EOF {
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RBRACKET, "]")
	return &ast.ArrayLiteral{Base: ast.NewBase(pos), Elements: elems}
}

// parseObjectLiteral parses `{ key value key value ... }`, a flat plist of
// alternating key and value expressions the same way keyword arguments are
// written elsewhere in the grammar.
func (p *Parser) parseObjectLiteral(pos errors.Position) ast.Expression {
	p.advance() // {
	var entries []ast.ObjectEntry
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		key := p.parseExpression(LOWEST)
		if p.cur.Type == lexer.RBRACE {
			p.errorf("object literal has a key %q with no matching value", key.String())
			break
		}
		val := p.parseExpression(LOWEST)
		entries = append(entries, ast.ObjectEntry{Key: key, Value: val})
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.ObjectLiteral{Base: ast.NewBase(pos), Entries: entries}
}
