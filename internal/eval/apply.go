package eval

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/parambind"
	"github.com/openSVM/solisp-sub002/internal/special"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// evalToolCall dispatches a ToolCall once the macro-expansion probe in
// Eval has already passed: first against the SpecialFormDispatcher, then
// against a user-defined Function bound in env, and finally against the
// ToolRegistry (spec.md §4.6).
func (e *Evaluator) evalToolCall(call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	ctx := &special.Context{Eval: e.Eval, MaxIterations: e.MaxIterations, Trace: e.recordTrace}
	if v, ok, err := special.Dispatch(ctx, call, env); ok {
		return v, err
	}

	switch call.Name {
	case "get":
		return e.evalGetCall(call, env)
	case "get-path":
		return e.evalGetPathCall(call, env)
	case "discover":
		return e.evalDiscoverCall(call, env)
	case "lazy-config":
		return e.evalLazyConfigCall(call, env)
	case "macroexpand":
		return e.evalMacroexpandCall(call, env)
	}

	if v, lookupErr := env.Get(call.Name); lookupErr == nil {
		if fn, ok := v.(*value.Function); ok {
			reified, err := e.evalArgsKeywordAware(call.Args, env)
			if err != nil {
				return nil, err
			}
			return e.callFunction(fn, reified)
		}
	}

	entry, ok := e.Registry.Get(call.Name)
	if !ok {
		return nil, errors.New(errors.KindUnboundVariable, "unbound tool or function: %s", call.Name).WithTool(call.Name)
	}
	args, err := e.evalArgsPositional(call.Args, env)
	if err != nil {
		return nil, err
	}
	return entry.Fn(args)
}

// evalArgsKeywordAware evaluates call arguments left-to-right, flattening
// a keyword argument (`:name value`) into a String(":name") marker
// immediately followed by its value - the encoding parambind.Bind expects
// for the &key section of a lambda list.
func (e *Evaluator) evalArgsKeywordAware(args []ast.Argument, env *environment.Environment) ([]value.Value, error) {
	out := make([]value.Value, 0, len(args)*2)
	for _, a := range args {
		if a.Name != "" {
			out = append(out, value.String(":"+a.Name))
		}
		v, err := e.Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// evalArgsPositional evaluates call arguments for a ToolRegistry builtin,
// which takes a flat positional slice and has no notion of a lambda list
// section to route keyword markers into.
func (e *Evaluator) evalArgsPositional(args []ast.Argument, env *environment.Environment) ([]value.Value, error) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := e.Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// callFunction runs fn's body against a fresh Environment built from its
// closure (spec.md §4.4/§4.6): NewChild of a live Environment for an
// ordinary function, or FromSnapshot of a flat map for an is_isolated
// (flet-bound) one.
func (e *Evaluator) callFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	callEnv := environment.FromClosure(fn.Closure)
	callEnv.EnterScope()
	defer callEnv.ExitScope()

	if err := parambind.Bind(fn.Name, fn.Params, args, callEnv.Define); err != nil {
		return nil, err
	}

	body, ok := fn.Body.(ast.Expression)
	if !ok {
		return value.Nil, nil
	}
	return e.Eval(body, callEnv)
}

// Apply invokes fn with already-evaluated positional args, the callback
// shape internal/toolregistry's higher-order builtins (map/filter/reduce,
// make-thread, async) and internal/special need in order to call back
// into user code without importing this package.
func (e *Evaluator) Apply(fn value.Value, args []value.Value) (value.Value, error) {
	f, ok := fn.(*value.Function)
	if !ok {
		return nil, errors.TypeMismatch("function", value.TypeName(fn))
	}
	return e.callFunction(f, args)
}
