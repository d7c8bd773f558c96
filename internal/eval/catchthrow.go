package eval

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// evalCatch implements non-local exit via `(catch tag body...)` (spec.md
// §4.5/§9): distinct from try/catch error handling, a catch frame only
// intercepts a throw whose tag string matches its own; a throw of any
// other tag, or an ordinary RuntimeError, propagates straight through.
func (e *Evaluator) evalCatch(n *ast.Catch, env *environment.Environment) (value.Value, error) {
	tagVal, err := e.Eval(n.Tag, env)
	if err != nil {
		return nil, err
	}
	tag, ok := tagVal.(value.String)
	if !ok {
		return nil, errors.TypeMismatch("string", value.TypeName(tagVal)).WithTool("catch")
	}

	var result value.Value = value.Nil
	for _, b := range n.Body {
		result, err = e.Eval(b, env)
		if err != nil {
			if errors.IsKind(err, errors.KindThrowValue) {
				re := err.(*errors.RuntimeError)
				if re.ThrowTag == string(tag) {
					if v, ok := re.ThrowValue.(value.Value); ok {
						return v, nil
					}
					return value.Nil, nil
				}
			}
			return nil, err
		}
	}
	return result, nil
}

// evalThrow implements `(throw tag value)`: raises the internal
// KindThrowValue control-transfer error that only a matching enclosing
// catch frame may intercept (spec.md §7 "non-local exit, distinct from
// error handling").
func (e *Evaluator) evalThrow(n *ast.Throw, env *environment.Environment) (value.Value, error) {
	tagVal, err := e.Eval(n.Tag, env)
	if err != nil {
		return nil, err
	}
	tag, ok := tagVal.(value.String)
	if !ok {
		return nil, errors.TypeMismatch("string", value.TypeName(tagVal)).WithTool("throw")
	}
	v, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	return nil, errors.Throw(string(tag), v)
}
