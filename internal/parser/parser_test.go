package parser

import (
	"testing"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/lexer"
)

func testParser(input string) *Parser {
	l := lexer.New(input)
	return New(l)
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	t.Errorf("parser has %d errors", len(errs))
	for _, msg := range errs {
		t.Errorf("parser error: %q", msg)
	}
	t.FailNow()
}

func parseSingleExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	p := testParser(input)
	prog := p.ParseProgram()
	checkParserErrors(t, p)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement is not *ast.ExpressionStatement, got %T", prog.Statements[0])
	}
	return stmt.Expression
}

func TestParseIntAndFloatLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  interface{}
	}{
		{"42", int64(42)},
		{"3.14", 3.14},
	}

	for _, tt := range tests {
		expr := parseSingleExpr(t, tt.input)
		switch w := tt.want.(type) {
		case int64:
			lit, ok := expr.(*ast.IntLiteral)
			if !ok {
				t.Fatalf("input %q: expected *ast.IntLiteral, got %T", tt.input, expr)
			}
			if lit.Value != w {
				t.Errorf("input %q: expected %d, got %d", tt.input, w, lit.Value)
			}
		case float64:
			lit, ok := expr.(*ast.FloatLiteral)
			if !ok {
				t.Fatalf("input %q: expected *ast.FloatLiteral, got %T", tt.input, expr)
			}
			if lit.Value != w {
				t.Errorf("input %q: expected %v, got %v", tt.input, w, lit.Value)
			}
		}
	}
}

func TestParseNegativeNumberIsUnary(t *testing.T) {
	expr := parseSingleExpr(t, "-5")
	u, ok := expr.(*ast.Unary)
	if !ok {
		t.Fatalf("expected *ast.Unary, got %T", expr)
	}
	if u.Op != "-" {
		t.Errorf("expected op %q, got %q", "-", u.Op)
	}
	lit, ok := u.X.(*ast.IntLiteral)
	if !ok || lit.Value != 5 {
		t.Fatalf("expected operand IntLiteral(5), got %#v", u.X)
	}
}

func TestParseStringAndBoolAndNull(t *testing.T) {
	if s := parseSingleExpr(t, `"hi"`).(*ast.StringLiteral); s.Value != "hi" {
		t.Errorf("expected %q, got %q", "hi", s.Value)
	}
	if b := parseSingleExpr(t, "true").(*ast.BoolLiteral); b.Value != true {
		t.Errorf("expected true, got %v", b.Value)
	}
	if b := parseSingleExpr(t, "false").(*ast.BoolLiteral); b.Value != false {
		t.Errorf("expected false, got %v", b.Value)
	}
	if _, ok := parseSingleExpr(t, "null").(*ast.NullLiteral); !ok {
		t.Errorf("expected *ast.NullLiteral")
	}
}

func TestParseVariable(t *testing.T) {
	v, ok := parseSingleExpr(t, "my-var").(*ast.Variable)
	if !ok {
		t.Fatalf("expected *ast.Variable, got %T", v)
	}
	if v.Name != "my-var" {
		t.Errorf("expected %q, got %q", "my-var", v.Name)
	}
}

func TestParseInfixBinaryOutsideParens(t *testing.T) {
	expr := parseSingleExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected *ast.Binary, got %T", expr)
	}
	if bin.Op != "+" {
		t.Fatalf("expected top-level op %q, got %q", "+", bin.Op)
	}
	right, ok := bin.Right.(*ast.Binary)
	if !ok || right.Op != "*" {
		t.Fatalf("expected right side to be a '*' Binary (precedence), got %#v", bin.Right)
	}
}

func TestParseParenthesizedOperatorFormFoldsLeftAssociative(t *testing.T) {
	// (+ 1 2 3) => ((1+2)+3)
	expr := parseSingleExpr(t, "(+ 1 2 3)")
	outer, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected *ast.Binary, got %T", expr)
	}
	if outer.Op != "+" {
		t.Errorf("expected op %q, got %q", "+", outer.Op)
	}
	inner, ok := outer.Left.(*ast.Binary)
	if !ok {
		t.Fatalf("expected Left to be a nested Binary, got %#v", outer.Left)
	}
	if inner.Op != "+" {
		t.Errorf("expected nested op %q, got %q", "+", inner.Op)
	}
	third, ok := outer.Right.(*ast.IntLiteral)
	if !ok || third.Value != 3 {
		t.Fatalf("expected outer right operand 3, got %#v", outer.Right)
	}
}

func TestParseParenthesizedUnaryOperatorForm(t *testing.T) {
	expr := parseSingleExpr(t, "(not true)")
	u, ok := expr.(*ast.Unary)
	if !ok {
		t.Fatalf("expected *ast.Unary, got %T", expr)
	}
	if u.Op != "not" {
		t.Errorf("expected op %q, got %q", "not", u.Op)
	}
}

func TestParseFieldAccess(t *testing.T) {
	expr := parseSingleExpr(t, "obj.field")
	fa, ok := expr.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("expected *ast.FieldAccess, got %T", expr)
	}
	if fa.Field != "field" {
		t.Errorf("expected field %q, got %q", "field", fa.Field)
	}
	v, ok := fa.Object.(*ast.Variable)
	if !ok || v.Name != "obj" {
		t.Fatalf("expected object variable %q, got %#v", "obj", fa.Object)
	}
}

func TestParseIndexAccess(t *testing.T) {
	expr := parseSingleExpr(t, "arr[0]")
	ia, ok := expr.(*ast.IndexAccess)
	if !ok {
		t.Fatalf("expected *ast.IndexAccess, got %T", expr)
	}
	idx, ok := ia.Index.(*ast.IntLiteral)
	if !ok || idx.Value != 0 {
		t.Fatalf("expected index 0, got %#v", ia.Index)
	}
}

func TestParseTernary(t *testing.T) {
	expr := parseSingleExpr(t, `cond ? "yes" : "no"`)
	tern, ok := expr.(*ast.Ternary)
	if !ok {
		t.Fatalf("expected *ast.Ternary, got %T", expr)
	}
	then, ok := tern.Then.(*ast.StringLiteral)
	if !ok || then.Value != "yes" {
		t.Fatalf("expected then branch %q, got %#v", "yes", tern.Then)
	}
	els, ok := tern.Else.(*ast.StringLiteral)
	if !ok || els.Value != "no" {
		t.Fatalf("expected else branch %q, got %#v", "no", tern.Else)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	expr := parseSingleExpr(t, "[1 2 3]")
	arr, ok := expr.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayLiteral, got %T", expr)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
}

func TestParseObjectLiteral(t *testing.T) {
	expr := parseSingleExpr(t, `{"a" 1 "b" 2}`)
	obj, ok := expr.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("expected *ast.ObjectLiteral, got %T", expr)
	}
	if len(obj.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(obj.Entries))
	}
	key, ok := obj.Entries[0].Key.(*ast.StringLiteral)
	if !ok || key.Value != "a" {
		t.Fatalf("expected first key %q, got %#v", "a", obj.Entries[0].Key)
	}
}

func TestParseToolCallPositionalArgs(t *testing.T) {
	expr := parseSingleExpr(t, "(my-tool 1 2)")
	call, ok := expr.(*ast.ToolCall)
	if !ok {
		t.Fatalf("expected *ast.ToolCall, got %T", expr)
	}
	if call.Name != "my-tool" {
		t.Errorf("expected name %q, got %q", "my-tool", call.Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if call.Args[0].Name != "" {
		t.Errorf("expected positional arg with no name, got %q", call.Args[0].Name)
	}
}

func TestParseToolCallKeywordArgs(t *testing.T) {
	expr := parseSingleExpr(t, "(make-thing :name \"x\" :count 3)")
	call, ok := expr.(*ast.ToolCall)
	if !ok {
		t.Fatalf("expected *ast.ToolCall, got %T", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if call.Args[0].Name != "name" {
		t.Errorf("expected keyword arg name %q (colon stripped), got %q", "name", call.Args[0].Name)
	}
	if call.Args[1].Name != "count" {
		t.Errorf("expected keyword arg name %q (colon stripped), got %q", "count", call.Args[1].Name)
	}
}

func TestParseDefunSynthesizesLambdaArgument(t *testing.T) {
	expr := parseSingleExpr(t, "(defun add (a b) (+ a b))")
	call, ok := expr.(*ast.ToolCall)
	if !ok {
		t.Fatalf("expected *ast.ToolCall, got %T", expr)
	}
	if call.Name != "defun" {
		t.Fatalf("expected name %q, got %q", "defun", call.Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args (name, lambda), got %d", len(call.Args))
	}
	nameVar, ok := call.Args[0].Value.(*ast.Variable)
	if !ok || nameVar.Name != "add" {
		t.Fatalf("expected first arg to be Variable(add), got %#v", call.Args[0].Value)
	}
	lam, ok := call.Args[1].Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected second arg to be *ast.Lambda, got %T", call.Args[1].Value)
	}
	if len(lam.Params) != 2 || lam.Params[0] != "a" || lam.Params[1] != "b" {
		t.Fatalf("expected params [a b], got %v", lam.Params)
	}
}

func TestParseDefmacroSynthesizesLambdaArgument(t *testing.T) {
	expr := parseSingleExpr(t, "(defmacro passthrough (x) x)")
	call, ok := expr.(*ast.ToolCall)
	if !ok {
		t.Fatalf("expected *ast.ToolCall, got %T", expr)
	}
	if call.Name != "defmacro" {
		t.Fatalf("expected name %q, got %q", "defmacro", call.Name)
	}
	lam, ok := call.Args[1].Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected second arg to be *ast.Lambda, got %T", call.Args[1].Value)
	}
	if len(lam.Params) != 1 || lam.Params[0] != "x" {
		t.Fatalf("expected params [x], got %v", lam.Params)
	}
}

func TestParseLambda(t *testing.T) {
	expr := parseSingleExpr(t, "(lambda (x y) (+ x y))")
	lam, ok := expr.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", expr)
	}
	if len(lam.Params) != 2 || lam.Params[0] != "x" || lam.Params[1] != "y" {
		t.Fatalf("expected params [x y], got %v", lam.Params)
	}
}

func TestParseCatchAndThrow(t *testing.T) {
	expr := parseSingleExpr(t, `(catch "tag" 1 2)`)
	c, ok := expr.(*ast.Catch)
	if !ok {
		t.Fatalf("expected *ast.Catch, got %T", expr)
	}
	if len(c.Body) != 2 {
		t.Fatalf("expected 2 body expressions, got %d", len(c.Body))
	}

	expr = parseSingleExpr(t, `(throw "tag" 42)`)
	if _, ok := expr.(*ast.Throw); !ok {
		t.Fatalf("expected *ast.Throw, got %T", expr)
	}
}

func TestParseDestructuringBind(t *testing.T) {
	expr := parseSingleExpr(t, "(destructuring-bind (a b &rest rest) my-list a)")
	db, ok := expr.(*ast.DestructuringBind)
	if !ok {
		t.Fatalf("expected *ast.DestructuringBind, got %T", expr)
	}
	if len(db.Pattern.Sub) != 2 {
		t.Fatalf("expected 2 sub-patterns, got %d", len(db.Pattern.Sub))
	}
	if db.Pattern.RestName != "rest" {
		t.Errorf("expected rest name %q, got %q", "rest", db.Pattern.RestName)
	}
}

func TestParseLoopCollect(t *testing.T) {
	expr := parseSingleExpr(t, "(loop for i from 1 to 5 collect (* i i))")
	loop, ok := expr.(*ast.Loop)
	if !ok {
		t.Fatalf("expected *ast.Loop, got %T", expr)
	}
	if len(loop.Data.Clauses) != 2 {
		t.Fatalf("expected 2 clauses (for, collect), got %d", len(loop.Data.Clauses))
	}
}

func TestParseLoopForIn(t *testing.T) {
	expr := parseSingleExpr(t, "(loop for x in my-list collect x)")
	loop, ok := expr.(*ast.Loop)
	if !ok {
		t.Fatalf("expected *ast.Loop, got %T", expr)
	}
	if len(loop.Data.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(loop.Data.Clauses))
	}
}

func TestParseTopLevelConstDef(t *testing.T) {
	p := testParser("(const PI 3.14)")
	prog := p.ParseProgram()
	checkParserErrors(t, p)

	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	cd, ok := prog.Statements[0].(*ast.ConstantDef)
	if !ok {
		t.Fatalf("expected *ast.ConstantDef, got %T", prog.Statements[0])
	}
	if cd.Name != "PI" {
		t.Errorf("expected name %q, got %q", "PI", cd.Name)
	}
}

func TestParseTopLevelSetBang(t *testing.T) {
	p := testParser("(set! x 10)")
	prog := p.ParseProgram()
	checkParserErrors(t, p)

	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	as, ok := prog.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", prog.Statements[0])
	}
	if as.Name != "x" {
		t.Errorf("expected name %q, got %q", "x", as.Name)
	}
}

func TestParseNestedSetBangIsToolCall(t *testing.T) {
	// set! nested inside another form is not a top-level statement, so it
	// stays a plain ToolCall dispatched through the special-form table.
	expr := parseSingleExpr(t, "(when true (set! x 1))")
	call, ok := expr.(*ast.ToolCall)
	if !ok {
		t.Fatalf("expected *ast.ToolCall, got %T", expr)
	}
	if call.Name != "when" {
		t.Fatalf("expected name %q, got %q", "when", call.Name)
	}
	inner, ok := call.Args[1].Value.(*ast.ToolCall)
	if !ok || inner.Name != "set!" {
		t.Fatalf("expected nested ToolCall named set!, got %#v", call.Args[1].Value)
	}
}

func TestParseQuasiquoteUnquote(t *testing.T) {
	expr := parseSingleExpr(t, "`(a ,b ,@c)")
	qq, ok := expr.(*ast.Quasiquote)
	if !ok {
		t.Fatalf("expected *ast.Quasiquote, got %T", expr)
	}
	if _, ok := qq.X.(*ast.ToolCall); !ok {
		t.Fatalf("expected quoted form to be a ToolCall, got %#v", qq.X)
	}
}

func TestParseQuoteReadsAsQuoteNode(t *testing.T) {
	expr := parseSingleExpr(t, "'done")
	q, ok := expr.(*ast.Quote)
	if !ok {
		t.Fatalf("expected *ast.Quote, got %T", expr)
	}
	v, ok := q.X.(*ast.Variable)
	if !ok || v.Name != "done" {
		t.Fatalf("expected quoted Variable %q, got %#v", "done", q.X)
	}
}

func TestParseQuoteInCatchTag(t *testing.T) {
	expr := parseSingleExpr(t, "(catch 'done 1)")
	c, ok := expr.(*ast.Catch)
	if !ok {
		t.Fatalf("expected *ast.Catch, got %T", expr)
	}
	if _, ok := c.Tag.(*ast.Quote); !ok {
		t.Fatalf("expected catch tag to be *ast.Quote, got %#v", c.Tag)
	}
}

func TestParseMultipleStatements(t *testing.T) {
	p := testParser("(const A 1) (const B 2) (+ A B)")
	prog := p.ParseProgram()
	checkParserErrors(t, p)
	if len(prog.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Statements))
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	p := testParser(")")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for a stray ')'")
	}
}
