package special

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// formDo implements `(do expr...)`/`progn`: evaluate each in order,
// return the last (Null if empty).
func formDo(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	return evalBody(ctx, env, bodyExprs(call, 0))
}

// formProg1 evaluates every form but returns the first's value.
func formProg1(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	exprs := bodyExprs(call, 0)
	if len(exprs) == 0 {
		return value.Nil, nil
	}
	first, err := ctx.Eval(exprs[0], env)
	if err != nil {
		return nil, err
	}
	if _, err := evalBody(ctx, env, exprs[1:]); err != nil {
		return nil, err
	}
	return first, nil
}

// formProg2 evaluates every form but returns the second's value.
func formProg2(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	exprs := bodyExprs(call, 0)
	if len(exprs) < 2 {
		return nil, errors.InvalidArguments("prog2", "requires at least 2 forms")
	}
	if _, err := ctx.Eval(exprs[0], env); err != nil {
		return nil, err
	}
	second, err := ctx.Eval(exprs[1], env)
	if err != nil {
		return nil, err
	}
	if _, err := evalBody(ctx, env, exprs[2:]); err != nil {
		return nil, err
	}
	return second, nil
}

// formWhen implements `(when cond body...)`.
func formWhen(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	cond, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	if !value.Truthy(cond) {
		return value.Nil, nil
	}
	return evalBody(ctx, env, bodyExprs(call, 1))
}

// formUnless implements `(unless cond body...)`.
func formUnless(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	cond, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return value.Nil, nil
	}
	return evalBody(ctx, env, bodyExprs(call, 1))
}

// formIf implements `(if cond then else?)`.
func formIf(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	cond, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return ctx.Eval(arg(call, 1), env)
	}
	if e := arg(call, 2); e != nil {
		return ctx.Eval(e, env)
	}
	return value.Nil, nil
}

// isUniversalMatch reports whether name is one of the tokens spec.md §4.2
// treats as a universal match in cond/case pattern position.
func isUniversalMatch(name string) bool {
	switch name {
	case "else", "otherwise", "t", "true":
		return true
	}
	return false
}

// formCond implements `(cond [test result] ...)`: each clause is an
// ArrayLiteral{test, result}; a clause whose test is else/true/otherwise/t
// is unconditional.
func formCond(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	for _, a := range call.Args {
		clause, err := asArrayLiteral(a.Value, "cond")
		if err != nil || len(clause.Elements) != 2 {
			return nil, errors.InvalidArguments("cond", "each clause must be [test result]")
		}
		if name, ok := asVariableName(clause.Elements[0]); ok && isUniversalMatch(name) {
			return ctx.Eval(clause.Elements[1], env)
		}
		cond, err := ctx.Eval(clause.Elements[0], env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return ctx.Eval(clause.Elements[1], env)
		}
	}
	return value.Nil, nil
}

// formCase implements `(case expr [pattern result] ...)`: pattern may be
// a single value expression or an ArrayLiteral of alternatives; matching
// uses value.Equal.
func formCase(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	return caseLike(ctx, call, env, func(subject value.Value, patternExpr ast.Expression) (bool, error) {
		if name, ok := asVariableName(patternExpr); ok && isUniversalMatch(name) {
			return true, nil
		}
		if alts, ok := patternExpr.(*ast.ArrayLiteral); ok {
			for _, alt := range alts.Elements {
				av, err := ctx.Eval(alt, env)
				if err != nil {
					return false, err
				}
				if value.Equal(subject, av) {
					return true, nil
				}
			}
			return false, nil
		}
		pv, err := ctx.Eval(patternExpr, env)
		if err != nil {
			return false, err
		}
		return value.Equal(subject, pv), nil
	})
}

// formTypecase implements `(typecase expr [type-name result] ...)`,
// dispatching on the runtime type name (value.TypeName).
func formTypecase(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	return caseLike(ctx, call, env, func(subject value.Value, patternExpr ast.Expression) (bool, error) {
		name, ok := asVariableName(patternExpr)
		if !ok {
			if sl, ok := patternExpr.(*ast.StringLiteral); ok {
				name = sl.Value
			} else {
				return false, errors.InvalidArguments("typecase", "pattern must be a type name")
			}
		}
		if isUniversalMatch(name) {
			return true, nil
		}
		return value.TypeName(subject) == name, nil
	})
}

func caseLike(ctx *Context, call *ast.ToolCall, env *environment.Environment, matches func(value.Value, ast.Expression) (bool, error)) (value.Value, error) {
	subject, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	for _, a := range call.Args[1:] {
		clause, err := asArrayLiteral(a.Value, call.Name)
		if err != nil || len(clause.Elements) != 2 {
			return nil, errors.InvalidArguments(call.Name, "each clause must be [pattern result]")
		}
		ok, err := matches(subject, clause.Elements[0])
		if err != nil {
			return nil, err
		}
		if ok {
			return ctx.Eval(clause.Elements[1], env)
		}
	}
	return value.Nil, nil
}

// formAnd implements short-circuiting `and`: empty and is true (spec.md
// §8).
func formAnd(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	if len(call.Args) == 0 {
		return value.Bool(true), nil
	}
	var last value.Value = value.Bool(true)
	for _, a := range call.Args {
		v, err := ctx.Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(v) {
			return value.Bool(false), nil
		}
		last = v
	}
	return value.Bool(value.Truthy(last)), nil
}

// formOr implements short-circuiting `or`: empty or is false.
func formOr(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	for _, a := range call.Args {
		v, err := ctx.Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

// formNot implements `(not x)`.
func formNot(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	v, err := ctx.Eval(arg(call, 0), env)
	if err != nil {
		return nil, err
	}
	return value.Bool(!value.Truthy(v)), nil
}
