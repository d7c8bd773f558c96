package eval

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/macro"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// evalMacroexpandCall implements the `macroexpand` debugging primitive
// (spec.md §4.3): its single argument is the literal, unevaluated
// tool-call form to probe for one step of macro expansion, matching the
// original runtime's `macroexpand` taking a syntax form rather than a
// value.
func (e *Evaluator) evalMacroexpandCall(call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	if len(call.Args) != 1 {
		return nil, errors.Arity("macroexpand", 1, len(call.Args))
	}
	target, ok := call.Args[0].Value.(*ast.ToolCall)
	if !ok {
		return nil, errors.InvalidArguments("macroexpand", "argument must be a literal tool-call form")
	}

	expanded, did, err := macro.TryExpand(target, env, e.Eval)
	if err != nil {
		return nil, err
	}
	if !did {
		return value.String(target.String()), nil
	}
	return value.String(expanded.String()), nil
}
