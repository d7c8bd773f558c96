package special

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/concurrency"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// formTry implements `(try body (catch-clause var handler)?
// (finally-clause cleanup)?)`. A catch-clause only intercepts ordinary
// RuntimeErrors, never a ThrowValue escaping from catch/throw - those are
// a distinct unwind channel per spec.md §9 and always re-propagate. A
// finally-clause always runs; an error raised inside it is suppressed
// (spec.md §7).
func formTry(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	body := arg(call, 0)
	var catchVar string
	var catchHandler ast.Expression
	var finallyBody ast.Expression
	haveCatch := false

	for _, a := range call.Args[1:] {
		if cc, ok := asToolCall(a.Value, "catch-clause"); ok && len(cc.Args) == 2 {
			if name, ok := asVariableName(cc.Args[0].Value); ok {
				catchVar = name
				catchHandler = cc.Args[1].Value
				haveCatch = true
			}
			continue
		}
		if fc, ok := asToolCall(a.Value, "finally-clause"); ok && len(fc.Args) == 1 {
			finallyBody = fc.Args[0].Value
		}
	}

	result, bodyErr := ctx.Eval(body, env)

	if bodyErr != nil && haveCatch && !errors.IsKind(bodyErr, errors.KindThrowValue) {
		env.EnterScope()
		env.Define(catchVar, value.String(bodyErr.Error()))
		result, bodyErr = ctx.Eval(catchHandler, env)
		env.ExitScope()
	}

	if finallyBody != nil {
		// A finally error is suppressed; the body/catch outcome wins.
		_, _ = ctx.Eval(finallyBody, env)
	}

	return result, bodyErr
}

// formError implements `(error message)`: raises a RuntimeError carrying
// message.
func formError(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	v, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	msg, _ := v.(value.String)
	return nil, errors.New(errors.KindRuntimeError, "%s", string(msg))
}

// formAssert implements `(assert cond message)`: raises AssertionFailed
// if cond is falsy.
func formAssert(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	cond, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return value.Bool(true), nil
	}
	msg := "assertion failed"
	if m := arg(call, 1); m != nil {
		mv, err := ctx.Eval(m, env)
		if err != nil {
			return nil, err
		}
		if s, ok := mv.(value.String); ok {
			msg = string(s)
		}
	}
	return nil, errors.AssertionFailed(msg)
}

// formAssertType implements `(assert-type value predicate)`: predicate
// names a registered type predicate tool (e.g. "int?"); the special form
// itself only evaluates the operands, leaving the predicate call to
// ordinary tool dispatch via a synthesized ToolCall.
func formAssertType(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	predName, ok := asVariableName(arg(call, 1))
	if !ok {
		return nil, errors.InvalidArguments("assert-type", "predicate must be a name")
	}
	synthetic := &ast.ToolCall{Base: call.Base, Name: predName, Args: []ast.Argument{{Value: arg(call, 0)}}}
	result, err := ctx.Eval(synthetic, env)
	if err != nil {
		return nil, err
	}
	if !value.Truthy(result) {
		return nil, errors.AssertionFailed("value did not satisfy " + predName)
	}
	return value.Bool(true), nil
}

// formValues implements `(values x...)`: zero args is Null, one arg
// collapses to that value, more than one packages a value.Multiple.
func formValues(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	if len(call.Args) == 0 {
		return value.Nil, nil
	}
	vals := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := ctx.Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	if len(vals) == 1 {
		return vals[0], nil
	}
	return value.Multiple{Values: vals}, nil
}

// formWithLockHeld implements `(with-lock-held (lock) body...)`,
// guaranteeing release on every exit path including an error or a
// non-local throw (spec.md §4.7 invariant).
func formWithLockHeld(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	spec, err := asArrayLiteral(arg(call, 0), "with-lock-held")
	if err != nil || len(spec.Elements) != 1 {
		return nil, errors.InvalidArguments("with-lock-held", "expected (lock-expr)")
	}
	lockVal, err := ctx.Eval(spec.Elements[0], env)
	if err != nil {
		return nil, err
	}
	lock, ok := lockVal.(concurrency.Lockable)
	if !ok {
		return nil, errors.InvalidArguments("with-lock-held", "expected a lock or recursive-lock")
	}
	if !lock.Acquire(true, 0) {
		return nil, errors.ToolExecutionError("with-lock-held", "failed to acquire lock")
	}
	defer lock.Release()
	return evalBody(ctx, env, bodyExprs(call, 1))
}
