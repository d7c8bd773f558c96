// Package macro implements the MacroExpander (spec.md §4.3): a hygienic,
// one-step expansion probe the Evaluator runs before evaluating any
// ToolCall, plus quasiquote/unquote/unquote-splice reification and
// gensym. It is grounded on the teacher's approach to compile-time
// desugaring in internal/interp/desugar.go, generalized from DWScript's
// fixed set of syntactic sugar forms to user-definable Macro values
// looked up dynamically through the Environment.
package macro

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/parambind"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// EvalFunc evaluates an Expression against env, supplied by the Evaluator
// so this package never needs to import internal/eval (which itself
// imports this package).
type EvalFunc func(expr ast.Expression, env *environment.Environment) (value.Value, error)

// TryExpand probes whether call's head names a Macro in env and, if so,
// performs one step of expansion (spec.md §4.3 steps 1-5). ok is false
// when call.Name is unbound or bound to something other than a Macro, in
// which case the Evaluator proceeds with ordinary dispatch.
func TryExpand(call *ast.ToolCall, env *environment.Environment, eval EvalFunc) (expanded ast.Expression, ok bool, err error) {
	v, lookupErr := env.Get(call.Name)
	if lookupErr != nil {
		return nil, false, nil
	}
	m, isMacro := v.(*value.Macro)
	if !isMacro {
		return nil, false, nil
	}

	macroEnv := environment.FromClosure(m.Closure)
	macroEnv.EnterScope()
	defer macroEnv.ExitScope()

	reified := make([]value.Value, 0, len(call.Args)*2)
	for _, a := range call.Args {
		if a.Name != "" {
			reified = append(reified, value.String(":"+a.Name))
		}
		reified = append(reified, Reify(a.Value))
	}

	if err := parambind.Bind(call.Name, m.Params, reified, macroEnv.Define); err != nil {
		return nil, true, err
	}

	body, ok := m.Body.(ast.Expression)
	if !ok {
		return nil, true, nil
	}

	result, err := eval(body, macroEnv)
	if err != nil {
		return nil, true, err
	}

	result = value.Collapse(result)
	out, err := Dereify(result, call.Pos())
	if err != nil {
		return nil, true, err
	}
	return out, true, nil
}
