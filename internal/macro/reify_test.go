package macro

import (
	"testing"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

func pos() errors.Position { return errors.Position{Line: 1, Column: 1} }

func TestReifyScalars(t *testing.T) {
	if got := Reify(&ast.IntLiteral{Value: 7}); got != value.Int(7) {
		t.Errorf("expected Int(7), got %v", got)
	}
	if got := Reify(&ast.StringLiteral{Value: "hi"}); got != value.String("hi") {
		t.Errorf("expected String(hi), got %v", got)
	}
	if got := Reify(&ast.BoolLiteral{Value: true}); got != value.Bool(true) {
		t.Errorf("expected Bool(true), got %v", got)
	}
	if got := Reify(&ast.NullLiteral{}); got != value.Nil {
		t.Errorf("expected Null, got %v", got)
	}
}

func TestReifyVariableBecomesString(t *testing.T) {
	got := Reify(&ast.Variable{Name: "foo"})
	if got != value.String("foo") {
		t.Errorf("expected String(foo), got %v", got)
	}
}

func TestReifyArrayLiteral(t *testing.T) {
	got := Reify(&ast.ArrayLiteral{Elements: []ast.Expression{
		&ast.IntLiteral{Value: 1}, &ast.IntLiteral{Value: 2},
	}})
	arr, ok := got.(*value.Array)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected a 2-element array, got %v", got)
	}
}

func TestReifyCompoundFormBecomesCode(t *testing.T) {
	call := &ast.ToolCall{Name: "f"}
	got := Reify(call)
	code, ok := got.(value.Code)
	if !ok {
		t.Fatalf("expected value.Code, got %T", got)
	}
	if code.Expr.(ast.Expression) != ast.Expression(call) {
		t.Errorf("expected Code to wrap the original node")
	}
}

func TestDereifyScalars(t *testing.T) {
	e, err := Dereify(value.Int(5), pos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit, ok := e.(*ast.IntLiteral); !ok || lit.Value != 5 {
		t.Fatalf("expected IntLiteral(5), got %#v", e)
	}
}

func TestDereifyIdentifierStringBecomesVariable(t *testing.T) {
	e, err := Dereify(value.String("foo"), pos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := e.(*ast.Variable); !ok || v.Name != "foo" {
		t.Fatalf("expected Variable(foo), got %#v", e)
	}
}

func TestDereifyNonIdentifierStringBecomesStringLiteral(t *testing.T) {
	e, err := Dereify(value.String("has spaces"), pos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit, ok := e.(*ast.StringLiteral); !ok || lit.Value != "has spaces" {
		t.Fatalf("expected StringLiteral, got %#v", e)
	}
}

func TestDereifyNumericStringBecomesStringLiteralNotVariable(t *testing.T) {
	e, err := Dereify(value.String("42"), pos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*ast.StringLiteral); !ok {
		t.Fatalf("expected a StringLiteral for a numeric-looking string, got %#v", e)
	}
}

func TestDereifyCodeUnwraps(t *testing.T) {
	call := &ast.ToolCall{Name: "f"}
	e, err := Dereify(value.Code{Expr: call}, pos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != ast.Expression(call) {
		t.Errorf("expected Dereify to unwrap back to the original node")
	}
}

func TestDereifyArray(t *testing.T) {
	e, err := Dereify(value.NewArray(value.Int(1), value.Int(2)), pos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := e.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected a 2-element ArrayLiteral, got %#v", e)
	}
}

func TestDereifyFunctionIsError(t *testing.T) {
	_, err := Dereify(&value.Function{Name: "f"}, pos())
	if err == nil {
		t.Fatalf("expected an error: a function has no source representation")
	}
}

func TestGensymDefaultsToGPrefixAndIsUnique(t *testing.T) {
	a := Gensym("")
	b := Gensym("")
	if a == b {
		t.Errorf("expected two gensym calls to produce distinct names")
	}
	if a[0] != 'G' {
		t.Errorf("expected default prefix G, got %q", a)
	}
}

func TestGensymCustomPrefix(t *testing.T) {
	got := Gensym("tmp")
	if len(got) < 5 || got[:5] != "tmp__" {
		t.Errorf("expected a name starting with \"tmp__\", got %q", got)
	}
}
