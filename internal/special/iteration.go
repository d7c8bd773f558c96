package special

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

const defaultMaxIterations = 10_000_000

func maxIterations(ctx *Context) int {
	if ctx.MaxIterations > 0 {
		return ctx.MaxIterations
	}
	return defaultMaxIterations
}

// formWhile implements `(while cond body...)`, bounded by the
// process-wide iteration cap (spec.md §4.5/§8).
func formWhile(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	limit := maxIterations(ctx)
	cond := arg(call, 0)
	body := bodyExprs(call, 1)
	for i := 0; ; i++ {
		if i >= limit {
			return nil, errors.TooManyIterations(limit)
		}
		cv, err := ctx.Eval(cond, env)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(cv) {
			return value.Nil, nil
		}
		if _, err := evalBody(ctx, env, body); err != nil {
			return nil, err
		}
	}
}

// formFor implements `(for (var collection) body...)`: iterates an Array
// or Range, binding var to each element/index in turn for the body's
// side effects; returns Null.
func formFor(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	spec, err := asArrayLiteral(arg(call, 0), "for")
	if err != nil || len(spec.Elements) != 2 {
		return nil, errors.InvalidArguments("for", "expected (var collection)")
	}
	varName, ok := asVariableName(spec.Elements[0])
	if !ok {
		return nil, errors.InvalidArguments("for", "loop variable must be a plain identifier")
	}
	collection, err := ctx.Eval(spec.Elements[1], env)
	if err != nil {
		return nil, err
	}
	body := bodyExprs(call, 1)
	limit := maxIterations(ctx)

	elements, err := iterableElements(collection)
	if err != nil {
		return nil, err
	}

	env.EnterScope()
	defer env.ExitScope()
	for i, el := range elements {
		if i >= limit {
			return nil, errors.TooManyIterations(limit)
		}
		env.Define(varName, el)
		if _, err := evalBody(ctx, env, body); err != nil {
			return nil, err
		}
	}
	return value.Nil, nil
}

func iterableElements(v value.Value) ([]value.Value, error) {
	switch x := v.(type) {
	case *value.Array:
		return x.Elements, nil
	case value.Range:
		out := make([]value.Value, 0, x.Len())
		for i := x.Start; i < x.End; i++ {
			out = append(out, value.Int(i))
		}
		return out, nil
	default:
		return nil, errors.TypeMismatch("array or range", value.TypeName(v)).WithTool("for")
	}
}
