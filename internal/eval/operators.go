package eval

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// evalBinary implements true binary operators (spec.md §4.1 arithmetic
// and comparison); `and`/`or` are handled as short-circuiting special
// forms (internal/special/sequence.go) since they need unevaluated
// operands, so this switch never sees those two names.
func (e *Evaluator) evalBinary(n *ast.Binary, env *environment.Environment) (value.Value, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		return value.Add(left, right)
	case "-":
		return value.Sub(left, right)
	case "*":
		return value.Mul(left, right)
	case "/":
		return value.Div(left, right)
	case "mod":
		return value.Mod(left, right)
	case "rem":
		return value.Rem(left, right)
	case "==":
		return value.Bool(value.Equal(left, right)), nil
	case "!=":
		return value.Bool(!value.Equal(left, right)), nil
	case "<", "<=", ">", ">=":
		cmp, ok := value.Compare(left, right)
		if !ok {
			return nil, errors.InvalidOperation(n.Op, value.TypeName(left), value.TypeName(right))
		}
		switch n.Op {
		case "<":
			return value.Bool(cmp < 0), nil
		case "<=":
			return value.Bool(cmp <= 0), nil
		case ">":
			return value.Bool(cmp > 0), nil
		default:
			return value.Bool(cmp >= 0), nil
		}
	default:
		return nil, errors.New(errors.KindInvalidOperation, "unknown binary operator %q", n.Op).WithTool(n.Op)
	}
}

// evalUnary implements `-`/`not` prefix operators.
func (e *Evaluator) evalUnary(n *ast.Unary, env *environment.Environment) (value.Value, error) {
	x, err := e.Eval(n.X, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch v := x.(type) {
		case value.Int:
			return value.Sub(value.Int(0), v)
		case value.Float:
			return value.Float(-float64(v)), nil
		default:
			return nil, errors.InvalidOperation("-", value.TypeName(x), "")
		}
	case "not":
		return value.Bool(!value.Truthy(x)), nil
	case "+":
		if !value.IsNumber(x) {
			return nil, errors.InvalidOperation("+", value.TypeName(x), "")
		}
		return x, nil
	default:
		return nil, errors.New(errors.KindInvalidOperation, "unknown unary operator %q", n.Op).WithTool(n.Op)
	}
}
