package special

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// formDefine implements `(define name value)`: binds name in the
// innermost frame of env.
func formDefine(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	name, ok := asVariableName(arg(call, 0))
	if !ok {
		return nil, errors.InvalidArguments("define", "first argument must be a name")
	}
	v, err := ctx.Eval(arg(call, 1), env)
	if err != nil {
		return nil, err
	}
	env.Define(name, v)
	ctx.trace(name, v, call.Pos())
	return v, nil
}

// formSet implements `(set! name value)`: fails with UnboundVariable if
// name is not already bound anywhere in the lexical chain or dynamic
// stack.
func formSet(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	name, ok := asVariableName(arg(call, 0))
	if !ok {
		return nil, errors.InvalidArguments("set!", "first argument must be a name")
	}
	v, err := ctx.Eval(arg(call, 1), env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(name, v); err != nil {
		return nil, err
	}
	ctx.trace(name, v, call.Pos())
	return v, nil
}

// formSetf implements the generalized-reference assignment `(setf place
// value)`. A bare name place behaves exactly like set!; `(setf (first L)
// x)` rebinds the variable holding the list to a new Array with its first
// element replaced, since Array is logically immutable (spec.md §4.5).
func formSetf(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	place := arg(call, 0)
	newVal, err := ctx.Eval(arg(call, 1), env)
	if err != nil {
		return nil, err
	}

	if name, ok := asVariableName(place); ok {
		if err := env.Set(name, newVal); err != nil {
			return nil, err
		}
		ctx.trace(name, newVal, call.Pos())
		return newVal, nil
	}

	accessor, ok := place.(*ast.ToolCall)
	if !ok || len(accessor.Args) == 0 {
		return nil, errors.InvalidArguments("setf", "place must be a name or (accessor target)")
	}
	targetName, ok := asVariableName(accessor.Args[0].Value)
	if !ok {
		return nil, errors.InvalidArguments("setf", "accessor target must be a name")
	}
	target, err := env.Get(targetName)
	if err != nil {
		return nil, err
	}
	updated, err := setfAccessor(accessor.Name, target, newVal)
	if err != nil {
		return nil, err
	}
	if err := env.Set(targetName, updated); err != nil {
		return nil, err
	}
	ctx.trace(targetName, updated, call.Pos())
	return newVal, nil
}

func setfAccessor(accessor string, target, newVal value.Value) (value.Value, error) {
	arr, isArray := target.(*value.Array)
	switch accessor {
	case "first":
		if !isArray || len(arr.Elements) == 0 {
			return nil, errors.InvalidArguments("setf", "(first ...) target must be a non-empty array")
		}
		out := arr.Clone()
		out.Elements[0] = newVal
		return out, nil
	case "rest":
		if !isArray || len(arr.Elements) == 0 {
			return nil, errors.InvalidArguments("setf", "(rest ...) target must be a non-empty array")
		}
		restArr, ok := newVal.(*value.Array)
		if !ok {
			return nil, errors.TypeMismatch("array", value.TypeName(newVal)).WithTool("setf")
		}
		out := value.NewArray(append([]value.Value{arr.Elements[0]}, restArr.Elements...)...)
		return out, nil
	case "elt":
		if !isArray {
			return nil, errors.InvalidArguments("setf", "(elt ...) target must be an array")
		}
		return nil, errors.InvalidArguments("setf", "(setf (elt L i) x) requires an index argument, not yet supported by this accessor form")
	default:
		return nil, errors.InvalidArguments("setf", "unsupported place accessor: "+accessor)
	}
}

// formConst implements `(const name value)`: behaves like define; nothing
// in the Environment enforces immutability beyond convention (spec.md
// does not define a runtime write-barrier for const).
func formConst(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	return formDefine(ctx, call, env)
}

// formDefvar implements `(defvar name value)`: pushes onto the dynamic
// (special) binding stack rather than the lexical chain.
func formDefvar(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	name, ok := asVariableName(arg(call, 0))
	if !ok {
		return nil, errors.InvalidArguments("defvar", "first argument must be a name")
	}
	v, err := ctx.Eval(arg(call, 1), env)
	if err != nil {
		return nil, err
	}
	env.Defvar(name, v)
	ctx.trace(name, v, call.Pos())
	return v, nil
}

// lambdaSpec extracts (params, body) from the ast.Lambda node the parser
// produces for defun/defn/defmacro's "(params...) body" tail, reusing
// the anonymous-lambda node shape rather than inventing a parallel one.
func lambdaSpec(e ast.Expression, tool string) (*ast.Lambda, error) {
	l, ok := e.(*ast.Lambda)
	if !ok {
		return nil, errors.InvalidArguments(tool, "expected a parameter list and body")
	}
	return l, nil
}

// formDefun implements `(defun name (params...) body)` / its `defn`
// alias: Closure is the live env so a later top-level sibling defun stays
// visible through the chain (spec.md §9 "cyclic environments").
func formDefun(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	name, ok := asVariableName(arg(call, 0))
	if !ok {
		return nil, errors.InvalidArguments("defun", "first argument must be a name")
	}
	l, err := lambdaSpec(arg(call, 1), "defun")
	if err != nil {
		return nil, err
	}
	fn := &value.Function{Name: name, Params: l.Params, Body: l.Body, Closure: env}
	env.Define(name, fn)
	return fn, nil
}

// formDefmacro implements `(defmacro name (params...) body)`.
func formDefmacro(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	name, ok := asVariableName(arg(call, 0))
	if !ok {
		return nil, errors.InvalidArguments("defmacro", "first argument must be a name")
	}
	l, err := lambdaSpec(arg(call, 1), "defmacro")
	if err != nil {
		return nil, err
	}
	m := &value.Macro{Name: name, Params: l.Params, Body: l.Body, Closure: env}
	env.Define(name, m)
	return m, nil
}

// bindingPairs reads a `((name expr) (name expr) ...)` binding-list
// ArrayLiteral, as used by let/let*.
func bindingPairs(e ast.Expression, tool string) ([][2]ast.Expression, error) {
	arr, err := asArrayLiteral(e, tool)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]ast.Expression, 0, len(arr.Elements))
	for _, el := range arr.Elements {
		pair, err := asArrayLiteral(el, tool)
		if err != nil || len(pair.Elements) != 2 {
			return nil, errors.InvalidArguments(tool, "each binding must be (name expr)")
		}
		pairs = append(pairs, [2]ast.Expression{pair.Elements[0], pair.Elements[1]})
	}
	return pairs, nil
}

// formLet implements `(let ((name expr)...) body...)`: every init
// expression is evaluated against the outer environment before any
// binding takes effect (parallel let semantics).
func formLet(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	pairs, err := bindingPairs(arg(call, 0), "let")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pairs))
	vals := make([]value.Value, len(pairs))
	for i, p := range pairs {
		name, ok := asVariableName(p[0])
		if !ok {
			return nil, errors.InvalidArguments("let", "binding name must be a plain identifier")
		}
		v, err := ctx.Eval(p[1], env)
		if err != nil {
			return nil, err
		}
		names[i] = name
		vals[i] = v
	}
	env.EnterScope()
	defer env.ExitScope()
	for i, name := range names {
		env.Define(name, vals[i])
	}
	return evalBody(ctx, env, bodyExprs(call, 1))
}

// formLetStar implements `(let* ((name expr)...) body...)`: each init
// expression sees the bindings established by earlier ones in the same
// list (sequential let semantics).
func formLetStar(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	pairs, err := bindingPairs(arg(call, 0), "let*")
	if err != nil {
		return nil, err
	}
	env.EnterScope()
	defer env.ExitScope()
	for _, p := range pairs {
		name, ok := asVariableName(p[0])
		if !ok {
			return nil, errors.InvalidArguments("let*", "binding name must be a plain identifier")
		}
		v, err := ctx.Eval(p[1], env)
		if err != nil {
			return nil, err
		}
		env.Define(name, v)
	}
	return evalBody(ctx, env, bodyExprs(call, 1))
}

// fletBindings reads a `([name (lambda (params...) body)] ...)` binding
// list, as used by flet/labels.
func fletBindings(e ast.Expression, tool string) ([]struct {
	name string
	l    *ast.Lambda
}, error) {
	arr, err := asArrayLiteral(e, tool)
	if err != nil {
		return nil, err
	}
	out := make([]struct {
		name string
		l    *ast.Lambda
	}, 0, len(arr.Elements))
	for _, el := range arr.Elements {
		pair, err := asArrayLiteral(el, tool)
		if err != nil || len(pair.Elements) != 2 {
			return nil, errors.InvalidArguments(tool, "each binding must be [name (lambda (params...) body)]")
		}
		name, ok := asVariableName(pair.Elements[0])
		if !ok {
			return nil, errors.InvalidArguments(tool, "binding name must be a plain identifier")
		}
		l, err := lambdaSpec(pair.Elements[1], tool)
		if err != nil {
			return nil, err
		}
		out = append(out, struct {
			name string
			l    *ast.Lambda
		}{name, l})
	}
	return out, nil
}

// formFlet implements `(flet ([name (lambda (params...) body)] ...) body...)`:
// each bound function is is_isolated, capturing only the outer
// environment's snapshot so it cannot see its own name or its siblings
// (spec.md §9 Open Question (a): siblings are invisible).
func formFlet(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	bindings, err := fletBindings(arg(call, 0), "flet")
	if err != nil {
		return nil, err
	}
	snapshot := env.Snapshot()
	env.EnterScope()
	defer env.ExitScope()
	for _, b := range bindings {
		fn := &value.Function{Name: b.name, Params: b.l.Params, Body: b.l.Body, Closure: snapshot, IsIsolated: true}
		env.Define(b.name, fn)
	}
	return evalBody(ctx, env, bodyExprs(call, 1))
}

// formLabels implements `(labels ([name (lambda (params...) body)] ...)
// body...)` with two-pass binding (spec.md §9): forward-declare every
// sibling as Null, then rebind each to its real closure sharing the same
// updated frame, so mutually recursive siblings can see each other.
func formLabels(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	bindings, err := fletBindings(arg(call, 0), "labels")
	if err != nil {
		return nil, err
	}
	env.EnterScope()
	defer env.ExitScope()
	for _, b := range bindings {
		env.Define(b.name, value.Nil)
	}
	for _, b := range bindings {
		fn := &value.Function{Name: b.name, Params: b.l.Params, Body: b.l.Body, Closure: env}
		env.Define(b.name, fn)
	}
	return evalBody(ctx, env, bodyExprs(call, 1))
}

// formMultipleValueBind implements `(multiple-value-bind (names...)
// values-expr body...)`: evaluates values-expr, destructures a Multiple
// (padding with Null / dropping extras as needed), and binds each name.
func formMultipleValueBind(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	namesArr, err := asArrayLiteral(arg(call, 0), "multiple-value-bind")
	if err != nil {
		return nil, err
	}
	v, err := ctx.Eval(arg(call, 1), env)
	if err != nil {
		return nil, err
	}
	var vals []value.Value
	if m, ok := v.(value.Multiple); ok {
		vals = m.Values
	} else {
		vals = []value.Value{v}
	}
	env.EnterScope()
	defer env.ExitScope()
	for i, nameExpr := range namesArr.Elements {
		name, ok := asVariableName(nameExpr)
		if !ok {
			return nil, errors.InvalidArguments("multiple-value-bind", "binding name must be a plain identifier")
		}
		if i < len(vals) {
			env.Define(name, vals[i])
		} else {
			env.Define(name, value.Nil)
		}
	}
	return evalBody(ctx, env, bodyExprs(call, 2))
}

// bodyExprs collects call's trailing arguments starting at index from as
// a body to evaluate in sequence, the convention every multi-form special
// form in this package uses instead of a literal `do` wrapper.
func bodyExprs(call *ast.ToolCall, from int) []ast.Expression {
	if from >= len(call.Args) {
		return nil
	}
	out := make([]ast.Expression, 0, len(call.Args)-from)
	for _, a := range call.Args[from:] {
		out = append(out, a.Value)
	}
	return out
}
