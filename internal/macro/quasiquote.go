package macro

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// EvalQuasiquote implements the quasiquote template walk of spec.md §4.3:
// Unquote evaluates and inlines; UnquoteSplice evaluates (expecting an
// Array) and splices its elements into the enclosing array; every other
// subform is turned into a value literally via Reify. It recurses through
// ArrayLiteral (splice target) and ToolCall (the parser's representation
// of a parenthesized form, so `(if ,cond ,then)` rebuilds "if" with its
// unquoted operands filled in) so a template can mix literal structure
// with unquoted holes at any depth.
func EvalQuasiquote(x ast.Expression, env *environment.Environment, eval EvalFunc) (value.Value, error) {
	switch n := x.(type) {
	case *ast.Unquote:
		return eval(n.X, env)
	case *ast.UnquoteSplice:
		return nil, errors.New(errors.KindTypeError, "unquote-splice is only valid inside an array template")
	case *ast.ArrayLiteral:
		var elems []value.Value
		for _, el := range n.Elements {
			if us, isSplice := el.(*ast.UnquoteSplice); isSplice {
				v, err := eval(us.X, env)
				if err != nil {
					return nil, err
				}
				arr, ok := v.(*value.Array)
				if !ok {
					return nil, errors.TypeMismatch("array", value.TypeName(v)).WithTool("unquote-splice")
				}
				elems = append(elems, arr.Elements...)
				continue
			}
			v, err := EvalQuasiquote(el, env, eval)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewArray(elems...), nil
	case *ast.ToolCall:
		newArgs := make([]ast.Argument, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := EvalQuasiquote(a.Value, env, eval)
			if err != nil {
				return nil, err
			}
			expr, err := Dereify(v, n.Pos())
			if err != nil {
				return nil, err
			}
			newArgs = append(newArgs, ast.Argument{Name: a.Name, Value: expr})
		}
		return value.Code{Expr: &ast.ToolCall{Base: ast.NewBase(n.Pos()), Name: n.Name, Args: newArgs}}, nil
	default:
		return Reify(x), nil
	}
}
