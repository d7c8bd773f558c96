package parser

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/lexer"
)

var loopKeywords = map[string]bool{
	"for": true, "while": true, "until": true, "when": true, "unless": true,
	"sum": true, "collect": true, "count": true, "do": true,
}

// parseLoop parses the clause list of a `(loop ...)` form (spec.md §4.5's
// iteration family). Every clause leads with a bare keyword word; at most
// one `for` clause is expected to drive the iteration, enforced by the
// evaluator rather than here.
func (p *Parser) parseLoop(pos errors.Position) ast.Expression {
	var clauses []ast.LoopClause
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.IDENT || !loopKeywords[p.cur.Literal] {
			p.errorf("expected loop clause keyword, got %q", p.cur.Literal)
			p.advance()
			continue
		}
		kw := p.cur.Literal
		p.advance()
		switch kw {
		case "for":
			clauses = append(clauses, p.parseForClause())
		case "while":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopWhileGuard, Expr: p.parseExpression(LOWEST)})
		case "until":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopUntilGuard, Expr: p.parseExpression(LOWEST)})
		case "when":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopWhenGuard, Expr: p.parseExpression(LOWEST)})
		case "unless":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopUnlessGuard, Expr: p.parseExpression(LOWEST)})
		case "sum":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopSum, Expr: p.parseExpression(LOWEST)})
		case "collect":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopCollect, Expr: p.parseExpression(LOWEST)})
		case "count":
			var expr ast.Expression
			if !(p.cur.Type == lexer.RPAREN || (p.cur.Type == lexer.IDENT && loopKeywords[p.cur.Literal])) {
				expr = p.parseExpression(LOWEST)
			}
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopCount, Expr: expr})
		case "do":
			clauses = append(clauses, ast.LoopClause{Kind: ast.LoopDo, Expr: p.parseExpression(LOWEST)})
		}
	}
	p.expect(lexer.RPAREN, ")")
	return &ast.Loop{Base: ast.NewBase(pos), Data: ast.LoopData{Clauses: clauses}}
}

// parseForClause parses the driving clause of a loop: either `for x in
// coll` (collection iteration) or a numeric `for x from/downfrom ...
// to/below ... by ...` clause. Any sub-keyword may be omitted; defaults
// are applied by the evaluator.
func (p *Parser) parseForClause() ast.LoopClause {
	clause := ast.LoopClause{Kind: ast.LoopFor, Var: p.cur.Literal}
	p.advance()

	if p.cur.Type == lexer.IDENT && p.cur.Literal == "in" {
		p.advance()
		clause.Collection = p.parseExpression(LOWEST)
		return clause
	}
	for p.cur.Type == lexer.IDENT {
		switch p.cur.Literal {
		case "from":
			p.advance()
			clause.From = p.parseExpression(LOWEST)
		case "downfrom":
			p.advance()
			clause.DownFrom = p.parseExpression(LOWEST)
		case "to":
			p.advance()
			clause.To = p.parseExpression(LOWEST)
		case "below":
			p.advance()
			clause.Below = p.parseExpression(LOWEST)
		case "by":
			p.advance()
			clause.By = p.parseExpression(LOWEST)
		default:
			return clause
		}
	}
	return clause
}
