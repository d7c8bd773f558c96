package parser

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/lexer"
)

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"mod": true, "rem": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

var unaryOps = map[string]bool{"-": true, "not": true, "+": true}

// parseList parses one parenthesized form. A head token that names an
// operator builds the same ast.Binary/Unary node the infix surface syntax
// would; a head token naming one of the few forms with their own AST node
// (lambda/loop/catch/throw/destructuring-bind) dispatches to a dedicated
// sub-parser; everything else becomes a ToolCall, the universal "apply
// something to arguments" node special forms and library tools share.
// A form whose head is neither a name nor an operator is a Grouping when
// it holds one expression and an ArrayLiteral when it holds several.
func (p *Parser) parseList() ast.Expression {
	pos := p.cur.Pos
	p.advance() // consume '('

	if p.cur.Type == lexer.RPAREN {
		p.advance()
		return &ast.NullLiteral{Base: ast.NewBase(pos)}
	}

	if p.cur.Type != lexer.IDENT && p.cur.Type != lexer.KEYWORD && !(p.cur.Type != lexer.STRING && binaryOps[p.cur.Literal]) {
		x := p.parseExpression(LOWEST)
		if p.cur.Type == lexer.RPAREN {
			p.advance()
			return &ast.Grouping{Base: ast.NewBase(pos), X: x}
		}
		elems := []ast.Expression{x}
		for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
			elems = append(elems, p.parseExpression(LOWEST))
		}
		p.expect(lexer.RPAREN, ")")
		return &ast.ArrayLiteral{Base: ast.NewBase(pos), Elements: elems}
	}

	name := p.cur.Literal

	switch name {
	case "lambda", "fn":
		p.advance()
		return p.parseLambda(pos)
	case "defun", "defn", "defmacro":
		p.advance()
		return p.parseDefLike(pos, name)
	case "loop":
		p.advance()
		return p.parseLoop(pos)
	case "catch":
		p.advance()
		return p.parseCatchForm(pos)
	case "throw":
		p.advance()
		return p.parseThrowForm(pos)
	case "destructuring-bind":
		p.advance()
		return p.parseDestructuringBindForm(pos)
	}

	if binaryOps[name] || unaryOps[name] {
		p.advance()
		return p.parseOperatorForm(pos, name)
	}

	return p.parseToolCall(pos)
}

func (p *Parser) parseOperatorForm(pos errors.Position, op string) ast.Expression {
	var args []ast.Expression
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RPAREN, ")")

	switch {
	case len(args) == 1 && unaryOps[op]:
		return &ast.Unary{Base: ast.NewBase(pos), Op: op, X: args[0]}
	case len(args) == 0:
		p.errorf("operator %q needs at least one operand", op)
		return &ast.NullLiteral{Base: ast.NewBase(pos)}
	default:
		left := args[0]
		for _, right := range args[1:] {
			left = &ast.Binary{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
		}
		return left
	}
}

// parseToolCall parses `(name arg...)` where each arg is either a bare
// expression (positional) or a `:keyword expr` pair (named), matching the
// keyword-argument convention parambind.Bind expects.
func (p *Parser) parseToolCall(pos errors.Position) ast.Expression {
	name := p.cur.Literal
	p.advance()

	var args []ast.Argument
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.KEYWORD {
			argName := p.cur.Literal[1:] // strip leading ':'
			p.advance()
			val := p.parseExpression(LOWEST)
			args = append(args, ast.Argument{Name: argName, Value: val})
			continue
		}
		val := p.parseExpression(LOWEST)
		args = append(args, ast.Argument{Value: val})
	}
	p.expect(lexer.RPAREN, ")")
	return &ast.ToolCall{Base: ast.NewBase(pos), Name: name, Args: args}
}

// parseLambda parses `(lambda (params...) body)`. Params is the flat
// lambda-list: required names followed by literal section markers
// "&optional"/"&rest"/"&key" and their entries, exactly as parambind.Parse
// expects.
func (p *Parser) parseLambda(pos errors.Position) ast.Expression {
	return p.parseLambdaTail(pos)
}

// parseLambdaTail parses the `(params...) body)` tail shared by a bare
// `(lambda ...)`/`(fn ...)` form and the synthesized Lambda argument
// parseDefLike builds for `defun`/`defn`/`defmacro`, leaving the closing
// paren of the outer form consumed in both cases.
func (p *Parser) parseLambdaTail(pos errors.Position) *ast.Lambda {
	p.expect(lexer.LPAREN, "(")
	var params []string
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		params = append(params, p.cur.Literal)
		p.advance()
	}
	p.expect(lexer.RPAREN, ")")
	body := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, ")")
	return &ast.Lambda{Base: ast.NewBase(pos), Params: params, Body: body}
}

// parseDefLike parses `(defun name (params...) body)` and its `defn`/
// `defmacro` siblings into a ToolCall whose second argument is already
// the combined Lambda node formDefun/formDefmacro (internal/special)
// expect via lambdaSpec, rather than two separate "(params...)" and
// "body" arguments.
func (p *Parser) parseDefLike(pos errors.Position, name string) ast.Expression {
	namePos := p.cur.Pos
	fname := p.cur.Literal
	p.advance()
	nameExpr := &ast.Variable{Base: ast.NewBase(namePos), Name: fname}
	lam := p.parseLambdaTail(pos)
	return &ast.ToolCall{Base: ast.NewBase(pos), Name: name, Args: []ast.Argument{
		{Value: nameExpr},
		{Value: lam},
	}}
}

// parseCatchForm parses `(catch tag body...)`.
func (p *Parser) parseCatchForm(pos errors.Position) ast.Expression {
	tag := p.parseExpression(LOWEST)
	var body []ast.Expression
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		body = append(body, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RPAREN, ")")
	return &ast.Catch{Base: ast.NewBase(pos), Tag: tag, Body: body}
}

// parseThrowForm parses `(throw tag value)`.
func (p *Parser) parseThrowForm(pos errors.Position) ast.Expression {
	tag := p.parseExpression(LOWEST)
	val := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, ")")
	return &ast.Throw{Base: ast.NewBase(pos), Tag: tag, Value: val}
}

// parseDestructuringBindForm parses `(destructuring-bind pattern value body...)`.
func (p *Parser) parseDestructuringBindForm(pos errors.Position) ast.Expression {
	pattern := p.parsePattern()
	value := p.parseExpression(LOWEST)
	var body []ast.Expression
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		body = append(body, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RPAREN, ")")
	return &ast.DestructuringBind{Base: ast.NewBase(pos), Pattern: pattern, Value: value, Body: body}
}

// parsePattern parses a destructuring-bind pattern: a bare name, or a
// parenthesized list of sub-patterns optionally ending in `&rest name`.
func (p *Parser) parsePattern() ast.Pattern {
	if p.cur.Type != lexer.LPAREN {
		name := p.cur.Literal
		p.advance()
		return ast.Pattern{Name: name}
	}
	p.advance() // (
	var sub []ast.Pattern
	var rest string
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.IDENT && p.cur.Literal == "&rest" {
			p.advance()
			rest = p.cur.Literal
			p.advance()
			continue
		}
		sub = append(sub, p.parsePattern())
	}
	p.expect(lexer.RPAREN, ")")
	return ast.Pattern{Sub: sub, RestName: rest}
}
