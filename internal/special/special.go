// Package special implements the SpecialFormDispatcher (spec.md §4.5):
// the set of ToolCall names intercepted before generic function/tool
// application because they need unevaluated argument expressions, new
// lexical scopes, or control-flow that an ordinary call cannot express.
// It is grounded on the teacher's internal/interp/statements.go switch
// over statement kinds, generalized from DWScript's fixed statement-node
// types to this language's single ToolCall-dispatched-by-name shape.
package special

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/macro"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// EvalFunc evaluates an Expression against env; supplied by the Evaluator
// so this package never imports internal/eval (which imports this one).
type EvalFunc func(expr ast.Expression, env *environment.Environment) (value.Value, error)

// Context bundles what special-form handlers need beyond the call and
// its environment.
type Context struct {
	Eval          EvalFunc
	MaxIterations int

	// Trace, if non-nil, is called by every form that binds or rebinds a
	// name (define/set!/setf/defvar) so the Evaluator can maintain an
	// append-only assignment trace for `--trace` diagnostics.
	Trace func(name string, v value.Value, pos errors.Position)
}

func (ctx *Context) trace(name string, v value.Value, pos errors.Position) {
	if ctx.Trace != nil {
		ctx.Trace(name, v, pos)
	}
}

type handler func(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error)

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"define":               formDefine,
		"set!":                 formSet,
		"setf":                 formSetf,
		"const":                formConst,
		"defvar":               formDefvar,
		"defun":                formDefun,
		"defn":                 formDefun,
		"defmacro":             formDefmacro,
		"let":                  formLet,
		"let*":                 formLetStar,
		"flet":                 formFlet,
		"labels":               formLabels,
		"multiple-value-bind":  formMultipleValueBind,

		"do":     formDo,
		"progn":  formDo,
		"prog1":  formProg1,
		"prog2":  formProg2,
		"when":   formWhen,
		"unless": formUnless,
		"if":     formIf,
		"cond":   formCond,
		"case":   formCase,
		"typecase": formTypecase,
		"and":    formAnd,
		"or":     formOr,
		"not":    formNot,

		"while": formWhile,
		"for":   formFor,

		"try":         formTry,
		"error":       formError,
		"assert":      formAssert,
		"assert-type": formAssertType,

		"values": formValues,
		"quote":  formQuote,

		"with-lock-held": formWithLockHeld,
	}
}

// formQuote is the call-form spelling of the `'x` reader shorthand
// (ast.Quote, parsed directly by internal/parser and evaluated in
// internal/eval's switch) — (quote x) and 'x are equivalent, both
// reifying x as unevaluated data via macro.Reify rather than evaluating
// it, so `(catch 'done ...)` and `(catch (quote done) ...)` behave
// identically.
func formQuote(ctx *Context, call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	return macro.Reify(arg(call, 0)), nil
}

// Dispatch looks up call.Name as a special form. ok is false when the
// name is not one of the recognized forms, in which case the Evaluator
// proceeds with macro/function/tool dispatch instead.
func Dispatch(ctx *Context, call *ast.ToolCall, env *environment.Environment) (v value.Value, ok bool, err error) {
	h, found := handlers[call.Name]
	if !found {
		return nil, false, nil
	}
	v, err = h(ctx, call, env)
	return v, true, err
}

// IsSpecialForm reports whether name is a recognized special form, used
// by the evaluator to decide dispatch order without actually invoking it.
func IsSpecialForm(name string) bool {
	_, ok := handlers[name]
	return ok
}

func arg(call *ast.ToolCall, i int) ast.Expression {
	if i < len(call.Args) {
		return call.Args[i].Value
	}
	return nil
}

func evalBody(ctx *Context, env *environment.Environment, body []ast.Expression) (value.Value, error) {
	result := value.Value(value.Nil)
	for _, e := range body {
		v, err := ctx.Eval(e, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// asArrayLiteral reads a binding or clause list written either as `[...]`
// or in parentheses: a parenthesized `(name x...)` arrives as a ToolCall
// and a one-element `(x)` whose head is not a name as a Grouping.
func asArrayLiteral(e ast.Expression, tool string) (*ast.ArrayLiteral, error) {
	switch x := e.(type) {
	case *ast.ArrayLiteral:
		return x, nil
	case *ast.Grouping:
		return &ast.ArrayLiteral{Base: x.Base, Elements: []ast.Expression{x.X}}, nil
	case *ast.ToolCall:
		elems := []ast.Expression{&ast.Variable{Base: x.Base, Name: x.Name}}
		for _, a := range x.Args {
			elems = append(elems, a.Value)
		}
		return &ast.ArrayLiteral{Base: x.Base, Elements: elems}, nil
	}
	return nil, errors.InvalidArguments(tool, "expected an array-shaped form")
}

func asToolCall(e ast.Expression, name string) (*ast.ToolCall, bool) {
	c, ok := e.(*ast.ToolCall)
	if !ok || c.Name != name {
		return nil, false
	}
	return c, true
}

func asVariableName(e ast.Expression) (string, bool) {
	v, ok := e.(*ast.Variable)
	if !ok {
		return "", false
	}
	return v.Name, true
}
