package eval

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// evalFieldAccess implements `obj.field`/`(get obj field)`: a direct key
// lookup on an Object, falling back to the lazy field search (spec.md
// §3/§4.6) on miss. Applied to anything but an Object it is a TypeError.
func (e *Evaluator) evalFieldAccess(n *ast.FieldAccess, env *environment.Environment) (value.Value, error) {
	obj, err := e.Eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	o, ok := obj.(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(obj)).WithTool("get")
	}
	if v, ok := o.Fields[n.Field]; ok {
		return v, nil
	}
	v, _, found := e.lazyFind(o, n.Field)
	if !found {
		if e.Lazy.Strict {
			return nil, errors.New(errors.KindTypeError, "field %q not found", n.Field).WithTool("get")
		}
		return value.Nil, nil
	}
	return v, nil
}

// evalIndexAccess implements `arr[idx]`/`(elt arr idx)`: integer indexing
// into an Array (IndexOutOfBounds on miss) or a Range, and key lookup into
// an Object when idx is a String (equivalent to FieldAccess, without the
// lazy fallback since the caller already named an explicit key).
func (e *Evaluator) evalIndexAccess(n *ast.IndexAccess, env *environment.Environment) (value.Value, error) {
	coll, err := e.Eval(n.Array, env)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}

	switch c := coll.(type) {
	case *value.Array:
		i, ok := value.AsInt(idx)
		if !ok {
			return nil, errors.TypeMismatch("int", value.TypeName(idx)).WithTool("elt")
		}
		if i < 0 || int(i) >= len(c.Elements) {
			return nil, errors.IndexOutOfBounds(int(i), len(c.Elements))
		}
		return c.Elements[i], nil
	case value.Range:
		i, ok := value.AsInt(idx)
		if !ok {
			return nil, errors.TypeMismatch("int", value.TypeName(idx)).WithTool("elt")
		}
		if i < 0 || i >= c.Len() {
			return nil, errors.IndexOutOfBounds(int(i), int(c.Len()))
		}
		return value.Int(c.Start + i), nil
	case *value.Object:
		key, ok := idx.(value.String)
		if !ok {
			return nil, errors.TypeMismatch("string", value.TypeName(idx)).WithTool("elt")
		}
		if v, ok := c.Fields[string(key)]; ok {
			return v, nil
		}
		return value.Nil, nil
	case value.String:
		i, ok := value.AsInt(idx)
		if !ok {
			return nil, errors.TypeMismatch("int", value.TypeName(idx)).WithTool("elt")
		}
		runes := []rune(c)
		if i < 0 || int(i) >= len(runes) {
			return nil, errors.IndexOutOfBounds(int(i), len(runes))
		}
		return value.String(string(runes[i])), nil
	default:
		return nil, errors.TypeMismatch("array, object, range, or string", value.TypeName(coll)).WithTool("elt")
	}
}

// lazyFind searches root for the first nested Object field named target,
// per the configured traversal order and depth limit (spec.md §3's lazy
// field access). path records the key chain to the match, used by
// get-path.
func (e *Evaluator) lazyFind(root *value.Object, target string) (v value.Value, path []string, found bool) {
	maxDepth := e.Lazy.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 50
	}
	if e.Lazy.BreadthFirst {
		return lazyFindBFS(root, target, maxDepth)
	}
	return lazyFindDFS(root, target, maxDepth, nil)
}

func lazyFindDFS(o *value.Object, target string, depthLeft int, path []string) (value.Value, []string, bool) {
	if depthLeft <= 0 {
		return nil, nil, false
	}
	if v, ok := o.Fields[target]; ok {
		return v, append(append([]string{}, path...), target), true
	}
	for k, fv := range o.Fields {
		if child, ok := fv.(*value.Object); ok {
			if v, p, ok := lazyFindDFS(child, target, depthLeft-1, append(path, k)); ok {
				return v, p, true
			}
		}
	}
	return nil, nil, false
}

type lazyQueueEntry struct {
	obj   *value.Object
	path  []string
	depth int
}

func lazyFindBFS(root *value.Object, target string, maxDepth int) (value.Value, []string, bool) {
	queue := []lazyQueueEntry{{obj: root, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if v, ok := cur.obj.Fields[target]; ok {
			return v, append(append([]string{}, cur.path...), target), true
		}
		if cur.depth >= maxDepth {
			continue
		}
		for k, fv := range cur.obj.Fields {
			if child, ok := fv.(*value.Object); ok {
				queue = append(queue, lazyQueueEntry{obj: child, path: append(append([]string{}, cur.path...), k), depth: cur.depth + 1})
			}
		}
	}
	return nil, nil, false
}

// evalGetCall implements the `get` tool form of field access, equivalent
// to the `obj.field` syntax but usable wherever a ToolCall is expected
// (e.g. inside a quasiquote template).
func (e *Evaluator) evalGetCall(call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	if len(call.Args) != 2 {
		return nil, errors.Arity("get", 2, len(call.Args))
	}
	fa := &ast.FieldAccess{Base: call.Base, Object: call.Args[0].Value}
	field, err := e.Eval(call.Args[1].Value, env)
	if err != nil {
		return nil, err
	}
	fs, ok := field.(value.String)
	if !ok {
		return nil, errors.TypeMismatch("string", value.TypeName(field)).WithTool("get")
	}
	fa.Field = string(fs)
	return e.evalFieldAccess(fa, env)
}

func (e *Evaluator) evalGetPathCall(call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	if len(call.Args) != 2 {
		return nil, errors.Arity("get-path", 2, len(call.Args))
	}
	obj, err := e.Eval(call.Args[0].Value, env)
	if err != nil {
		return nil, err
	}
	o, ok := obj.(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(obj)).WithTool("get-path")
	}
	field, err := e.Eval(call.Args[1].Value, env)
	if err != nil {
		return nil, err
	}
	fs, ok := field.(value.String)
	if !ok {
		return nil, errors.TypeMismatch("string", value.TypeName(field)).WithTool("get-path")
	}
	return e.GetPath(o, string(fs))
}

func (e *Evaluator) evalDiscoverCall(call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	if len(call.Args) != 1 {
		return nil, errors.Arity("discover", 1, len(call.Args))
	}
	obj, err := e.Eval(call.Args[0].Value, env)
	if err != nil {
		return nil, err
	}
	o, ok := obj.(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(obj)).WithTool("discover")
	}
	names := e.Discover(o)
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = value.String(n)
	}
	return value.NewArray(out...), nil
}

// evalLazyConfigCall implements `(lazy-config :strict bool :breadth-first
// bool :max-depth int)`: updates the Evaluator's LazyConfig in place and
// returns it as an Object. Any keyword omitted keeps its current value.
func (e *Evaluator) evalLazyConfigCall(call *ast.ToolCall, env *environment.Environment) (value.Value, error) {
	for _, a := range call.Args {
		v, err := e.Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		switch a.Name {
		case "strict":
			e.Lazy.Strict = value.Truthy(v)
		case "breadth-first":
			e.Lazy.BreadthFirst = value.Truthy(v)
		case "max-depth":
			if n, ok := value.AsInt(v); ok {
				e.Lazy.MaxDepth = int(n)
			}
		}
	}
	out := value.NewObject()
	out.Fields["strict"] = value.Bool(e.Lazy.Strict)
	out.Fields["breadth-first"] = value.Bool(e.Lazy.BreadthFirst)
	out.Fields["max-depth"] = value.Int(int64(e.Lazy.MaxDepth))
	return out, nil
}

// GetPath implements `(get-path obj field)`, returning an Object with
// "value" and "path" (the array of keys traversed to reach it), or Null
// for both when not found and not strict.
func (e *Evaluator) GetPath(o *value.Object, field string) (value.Value, error) {
	if v, ok := o.Fields[field]; ok {
		out := value.NewObject()
		out.Fields["value"] = v
		out.Fields["path"] = value.NewArray(value.String(field))
		return out, nil
	}
	v, path, found := e.lazyFind(o, field)
	if !found {
		if e.Lazy.Strict {
			return nil, errors.New(errors.KindTypeError, "field %q not found", field).WithTool("get-path")
		}
		out := value.NewObject()
		out.Fields["value"] = value.Nil
		out.Fields["path"] = value.NewArray()
		return out, nil
	}
	pathVals := make([]value.Value, len(path))
	for i, p := range path {
		pathVals[i] = value.String(p)
	}
	out := value.NewObject()
	out.Fields["value"] = v
	out.Fields["path"] = value.NewArray(pathVals...)
	return out, nil
}

// Discover implements `(discover obj)`: enumerates every reachable field
// name (depth-first, deduplicated), the introspection half of lazy field
// access (spec.md §3).
func (e *Evaluator) Discover(o *value.Object) []string {
	seen := map[string]bool{}
	var names []string
	var walk func(o *value.Object, depth int)
	maxDepth := e.Lazy.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 50
	}
	walk = func(o *value.Object, depth int) {
		if depth > maxDepth {
			return
		}
		for k, v := range o.Fields {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
			if child, ok := v.(*value.Object); ok {
				walk(child, depth+1)
			}
		}
	}
	walk(o, 0)
	return names
}
