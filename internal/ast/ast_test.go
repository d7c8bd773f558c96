package ast

import (
	"testing"

	"github.com/openSVM/solisp-sub002/internal/errors"
)

func TestLiteralStringsAreGenericTypeTags(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{&IntLiteral{Value: 42}, "int"},
		{&FloatLiteral{Value: 3.14}, "float"},
		{&StringLiteral{Value: "hi"}, "string"},
		{&BoolLiteral{Value: true}, "bool"},
		{&NullLiteral{}, "null"},
	}
	for _, c := range cases {
		if got := c.node.String(); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}

func TestVariableStringIsItsName(t *testing.T) {
	v := &Variable{Name: "x"}
	if v.String() != "x" {
		t.Errorf("expected x, got %q", v.String())
	}
}

func TestToolCallStringIncludesName(t *testing.T) {
	c := &ToolCall{Name: "foo"}
	if c.String() != "(foo ...)" {
		t.Errorf("expected (foo ...), got %q", c.String())
	}
}

func TestBasePosReturnsAttachedPosition(t *testing.T) {
	pos := errors.Position{Line: 2, Column: 5}
	n := &IntLiteral{Base: NewBase(pos)}
	if n.Pos() != pos {
		t.Errorf("expected %+v, got %+v", pos, n.Pos())
	}
}

func TestProgramPosDelegatesToFirstStatement(t *testing.T) {
	pos := errors.Position{Line: 9, Column: 1}
	stmt := &ExpressionStatement{Base: NewBase(pos), Expression: &NullLiteral{}}
	p := &Program{Statements: []Statement{stmt}}
	if p.Pos() != pos {
		t.Errorf("expected %+v, got %+v", pos, p.Pos())
	}
}

func TestProgramPosIsZeroValueWhenEmpty(t *testing.T) {
	p := &Program{}
	if p.Pos() != (errors.Position{}) {
		t.Errorf("expected the zero Position for an empty program, got %+v", p.Pos())
	}
}

func TestConstantDefAndAssignmentStrings(t *testing.T) {
	c := &ConstantDef{Name: "pi", Value: &FloatLiteral{Value: 3.14}}
	if c.String() != "(const pi float)" {
		t.Errorf("unexpected ConstantDef.String(): %q", c.String())
	}
	a := &Assignment{Name: "x", Value: &IntLiteral{Value: 1}}
	if a.String() != "(set! x int)" {
		t.Errorf("unexpected Assignment.String(): %q", a.String())
	}
}
