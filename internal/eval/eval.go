// Package eval implements the Evaluator (spec.md §4.6): the main
// recursive tree walker tying together Environment, ToolRegistry,
// MacroExpander, ParamBinder, SpecialFormDispatcher, and
// ConcurrencyRuntime. It is grounded on the teacher's
// internal/interp/interp.go Interpreter.Eval switch, generalized from
// DWScript's statically-typed AST node set to this language's single
// ToolCall-dispatched-by-name shape plus a handful of dedicated control
// nodes (Loop, Catch, Throw, DestructuringBind, Quasiquote, Quote).
package eval

import (
	"io"
	"os"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/concurrency"
	"github.com/openSVM/solisp-sub002/internal/config"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/macro"
	"github.com/openSVM/solisp-sub002/internal/special"
	"github.com/openSVM/solisp-sub002/internal/toolregistry"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// LazyConfig controls the `get`/FieldAccess lazy field search behavior
// configurable via `(lazy-config ...)` (spec.md §4.6).
type LazyConfig struct {
	Strict       bool // miss raises TypeError instead of returning Null
	BreadthFirst bool // BFS instead of DFS when searching nested objects
	MaxDepth     int  // default 50
}

// TraceEntry is one recorded binding/rebinding event, collected when
// TraceEnabled is set on the owning Evaluator and surfaced via the CLI's
// `--trace` flag.
type TraceEntry struct {
	Name  string
	Value value.Value
	Pos   errors.Position
}

// Evaluator is the root of a single interpretation session: one
// Evaluator per OS thread (spec.md §5 "each thread owns exactly one
// Evaluator"), each with its own Environment but sharing the Registry and
// Runtime of the session that spawned it.
type Evaluator struct {
	Root     *environment.Environment
	Registry *toolregistry.Registry
	Runtime  *concurrency.Runtime

	MaxIterations int
	Lazy          LazyConfig

	// TraceEnabled turns on append-only recording of every
	// define/set!/setf/defvar into Trace.
	TraceEnabled bool
	Trace        []TraceEntry
}

func (e *Evaluator) recordTrace(name string, v value.Value, pos errors.Position) {
	if !e.TraceEnabled {
		return
	}
	e.Trace = append(e.Trace, TraceEntry{Name: name, Value: v, Pos: pos})
}

// New constructs an Evaluator with a fresh root Environment, given an
// already-populated Registry and Runtime. Most callers want Bootstrap
// instead, which also performs the standard builtin registration.
func New(reg *toolregistry.Registry, rt *concurrency.Runtime) *Evaluator {
	return &Evaluator{
		Root:          environment.New(),
		Registry:      reg,
		Runtime:       rt,
		MaxIterations: 10_000_000,
		Lazy:          LazyConfig{MaxDepth: 50},
	}
}

// Bootstrap builds a ready-to-use Evaluator: a fresh ToolRegistry with
// every standard library category registered, a ConcurrencyRuntime with
// workers OS threads backing its worker pool, print/println writing to
// out (os.Stdout if nil), and the concurrency builtins' Apply callback
// wired back to this Evaluator's own function-application path so
// `async`/`make-thread` can invoke user-defined functions without
// internal/toolregistry importing this package.
func Bootstrap(workers int, out io.Writer) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	if workers <= 0 {
		workers = 4
	}

	reg := toolregistry.New()
	rt := concurrency.NewRuntime(workers)
	e := New(reg, rt)

	toolregistry.RegisterMath(reg)
	toolregistry.RegisterString(reg)
	toolregistry.RegisterArray(reg)
	toolregistry.RegisterObject(reg)
	toolregistry.RegisterPredicate(reg)
	toolregistry.RegisterJSON(reg)
	toolregistry.RegisterIO(reg, out)
	toolregistry.RegisterConcurrency(reg, rt, e.Apply)

	return e
}

// BootstrapWithConfig is Bootstrap plus applying cfg's iteration cap,
// lazy-field-search defaults, and worker count, the path the CLI uses
// once it has loaded a config.Config from file/environment.
func BootstrapWithConfig(cfg config.Config, out io.Writer) *Evaluator {
	e := Bootstrap(cfg.Workers, out)
	e.MaxIterations = cfg.MaxIterations
	e.Lazy = LazyConfig{
		Strict:       cfg.LazyStrict,
		BreadthFirst: cfg.LazyBFS,
		MaxDepth:     cfg.LazyMaxDepth,
	}
	return e
}

// Execute runs every Statement in program against e.Root in order and
// returns the value of the last one (Null for an empty program).
func (e *Evaluator) Execute(program *ast.Program) (value.Value, error) {
	var result value.Value = value.Nil
	for _, stmt := range program.Statements {
		v, err := e.evalStatement(stmt, e.Root)
		if err != nil {
			return nil, escapedThrowToError(err)
		}
		result = v
	}
	return result, nil
}

// escapedThrowToError converts a throw that reached the top level without
// a matching catch into an ordinary RuntimeError, per the contract
// documented on errors.Throw: a ThrowValue is never meant to cross the
// host boundary in its internal form.
func escapedThrowToError(err error) error {
	if errors.IsKind(err, errors.KindThrowValue) {
		re := err.(*errors.RuntimeError)
		return errors.New(errors.KindRuntimeError, "uncaught throw of tag %q", re.ThrowTag)
	}
	return err
}

func (e *Evaluator) evalStatement(stmt ast.Statement, env *environment.Environment) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return e.Eval(s.Expression, env)
	case *ast.ConstantDef:
		v, err := e.Eval(s.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(s.Name, v)
		e.recordTrace(s.Name, v, s.Pos())
		return v, nil
	case *ast.Assignment:
		v, err := e.Eval(s.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Set(s.Name, v); err != nil {
			return nil, err
		}
		e.recordTrace(s.Name, v, s.Pos())
		return v, nil
	default:
		return nil, errors.New(errors.KindRuntimeError, "unhandled statement type")
	}
}

// Eval evaluates a single Expression against env, implementing spec.md
// §4.6's contract: a macro-expansion probe runs first for every ToolCall,
// restarting evaluation on the expansion; otherwise it dispatches on the
// expression variant.
func (e *Evaluator) Eval(expr ast.Expression, env *environment.Environment) (value.Value, error) {
	if call, ok := expr.(*ast.ToolCall); ok {
		expanded, didExpand, err := macro.TryExpand(call, env, e.Eval)
		if err != nil {
			return nil, err
		}
		if didExpand {
			return e.Eval(expanded, env)
		}
	}

	switch n := expr.(type) {
	case *ast.IntLiteral:
		return value.Int(n.Value), nil
	case *ast.FloatLiteral:
		return value.Float(n.Value), nil
	case *ast.StringLiteral:
		return value.String(n.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(n.Value), nil
	case *ast.NullLiteral:
		return value.Nil, nil
	case *ast.Variable:
		if value.String(n.Name).IsKeyword() {
			return value.String(n.Name), nil
		}
		return env.Get(n.Name)
	case *ast.Grouping:
		return e.Eval(n.X, env)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(n, env)
	case *ast.Binary:
		return e.evalBinary(n, env)
	case *ast.Unary:
		return e.evalUnary(n, env)
	case *ast.Ternary:
		return e.evalTernary(n, env)
	case *ast.FieldAccess:
		return e.evalFieldAccess(n, env)
	case *ast.IndexAccess:
		return e.evalIndexAccess(n, env)
	case *ast.Lambda:
		return &value.Function{Params: n.Params, Body: n.Body, Closure: env.Snapshot()}, nil
	case *ast.ToolCall:
		return e.evalToolCall(n, env)
	case *ast.Loop:
		return e.evalLoop(n, env)
	case *ast.Catch:
		return e.evalCatch(n, env)
	case *ast.Throw:
		return e.evalThrow(n, env)
	case *ast.DestructuringBind:
		return e.evalDestructuringBind(n, env)
	case *ast.Quasiquote:
		return macro.EvalQuasiquote(n.X, env, e.Eval)
	case *ast.Quote:
		return macro.Reify(n.X), nil
	case *ast.Unquote, *ast.UnquoteSplice:
		return nil, errors.New(errors.KindRuntimeError, "unquote used outside quasiquote")
	default:
		return nil, errors.New(errors.KindRuntimeError, "unhandled expression type")
	}
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, env *environment.Environment) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewArray(elems...), nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral, env *environment.Environment) (value.Value, error) {
	o := value.NewObject()
	for _, entry := range n.Entries {
		k, err := e.Eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		ks, ok := k.(value.String)
		if !ok {
			return nil, errors.TypeMismatch("string", value.TypeName(k)).WithTool("object-literal")
		}
		v, err := e.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		o.Fields[string(ks)] = v
	}
	return o, nil
}

func (e *Evaluator) evalTernary(n *ast.Ternary, env *environment.Environment) (value.Value, error) {
	c, err := e.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if value.Truthy(c) {
		return e.Eval(n.Then, env)
	}
	return e.Eval(n.Else, env)
}

func (e *Evaluator) evalDestructuringBind(n *ast.DestructuringBind, env *environment.Environment) (value.Value, error) {
	v, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	env.EnterScope()
	defer env.ExitScope()
	if err := special.BindPattern(n.Pattern, v, env.Define); err != nil {
		return nil, err
	}
	var result value.Value = value.Nil
	for _, b := range n.Body {
		result, err = e.Eval(b, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
