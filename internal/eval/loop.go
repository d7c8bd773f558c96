package eval

import (
	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/environment"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// loopIterator drives one step of a `for` clause, returning the next
// bound value and whether the iteration continues.
type loopIterator func() (value.Value, bool, error)

// evalLoop implements the `loop` construct (spec.md §4.5's iteration
// family, generalized from a fixed `while`/`for` pair to a Common
// Lisp-flavored clause list): at most one `for` clause drives the
// iterator variable; while/until clauses gate the whole loop; when/unless
// gate only the clause immediately following them; sum/collect/count
// accumulate a result; do runs a clause purely for effect. Bounded by the
// same process-wide iteration cap every bounded construct uses.
func (e *Evaluator) evalLoop(n *ast.Loop, env *environment.Environment) (value.Value, error) {
	limit := e.MaxIterations
	if limit <= 0 {
		limit = 10_000_000
	}

	env.EnterScope()
	defer env.ExitScope()

	iter, varName, err := e.buildLoopIterator(n.Data, env)
	if err != nil {
		return nil, err
	}

	var sum value.Value
	var collected []value.Value
	var count int64
	haveSum, haveCollect, haveCount := false, false, false

	for i := 0; ; i++ {
		if i >= limit {
			return nil, errors.TooManyIterations(limit)
		}

		if iter != nil {
			v, ok, err := iter()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if varName != "" {
				env.Define(varName, v)
			}
		}

		skipNext := false
		stop := false
		for _, clause := range n.Data.Clauses {
			if clause.Kind == ast.LoopFor {
				continue
			}
			if skipNext {
				skipNext = false
				continue
			}
			switch clause.Kind {
			case ast.LoopWhileGuard:
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				if !value.Truthy(v) {
					stop = true
				}
			case ast.LoopUntilGuard:
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				if value.Truthy(v) {
					stop = true
				}
			case ast.LoopWhenGuard:
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				if !value.Truthy(v) {
					skipNext = true
				}
			case ast.LoopUnlessGuard:
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				if value.Truthy(v) {
					skipNext = true
				}
			case ast.LoopSum:
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				haveSum = true
				if sum == nil {
					sum = value.Int(0)
				}
				sum, err = value.Add(sum, v)
				if err != nil {
					return nil, err
				}
			case ast.LoopCollect:
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				haveCollect = true
				collected = append(collected, v)
			case ast.LoopCount:
				haveCount = true
				if clause.Expr == nil {
					count++
					continue
				}
				v, err := e.Eval(clause.Expr, env)
				if err != nil {
					return nil, err
				}
				if value.Truthy(v) {
					count++
				}
			case ast.LoopDo:
				if _, err := e.Eval(clause.Expr, env); err != nil {
					return nil, err
				}
			}
			if stop {
				break
			}
		}
		if stop {
			break
		}
		if iter == nil && !hasGuardClause(n.Data) {
			// No driver and no stopping guard: run exactly once to avoid
			// an unbounded loop with no way to terminate.
			break
		}
	}

	switch {
	case haveCollect:
		return value.NewArray(collected...), nil
	case haveSum:
		return sum, nil
	case haveCount:
		return value.Int(count), nil
	default:
		return value.Nil, nil
	}
}

func hasGuardClause(d ast.LoopData) bool {
	for _, c := range d.Clauses {
		if c.Kind == ast.LoopWhileGuard || c.Kind == ast.LoopUntilGuard {
			return true
		}
	}
	return false
}

// buildLoopIterator locates the (at most one) `for` clause and returns
// the iterator function driving it, plus the variable name its value
// should be bound to (empty if the for-clause has none).
func (e *Evaluator) buildLoopIterator(d ast.LoopData, env *environment.Environment) (loopIterator, string, error) {
	var forClause *ast.LoopClause
	for i := range d.Clauses {
		if d.Clauses[i].Kind == ast.LoopFor {
			forClause = &d.Clauses[i]
			break
		}
	}
	if forClause == nil {
		return nil, "", nil
	}

	if forClause.Collection != nil {
		coll, err := e.Eval(forClause.Collection, env)
		if err != nil {
			return nil, "", err
		}
		elems, err := loopIterableElements(coll)
		if err != nil {
			return nil, "", err
		}
		idx := 0
		return func() (value.Value, bool, error) {
			if idx >= len(elems) {
				return nil, false, nil
			}
			v := elems[idx]
			idx++
			return v, true, nil
		}, forClause.Var, nil
	}

	evalOrDefault := func(expr ast.Expression, def int64) (int64, error) {
		if expr == nil {
			return def, nil
		}
		v, err := e.Eval(expr, env)
		if err != nil {
			return 0, err
		}
		n, ok := value.AsInt(v)
		if !ok {
			return 0, errors.TypeMismatch("int", value.TypeName(v)).WithTool("loop")
		}
		return n, nil
	}

	if forClause.DownFrom != nil {
		start, err := evalOrDefault(forClause.DownFrom, 0)
		if err != nil {
			return nil, "", err
		}
		step, err := evalOrDefault(forClause.By, 1)
		if err != nil {
			return nil, "", err
		}
		var floor int64
		hasFloor := forClause.To != nil || forClause.Below != nil
		if forClause.To != nil {
			floor, err = evalOrDefault(forClause.To, 0)
		} else if forClause.Below != nil {
			floor, err = evalOrDefault(forClause.Below, 0)
		}
		if err != nil {
			return nil, "", err
		}
		cur := start
		first := true
		return func() (value.Value, bool, error) {
			if !first {
				cur -= step
			}
			first = false
			if hasFloor && cur < floor {
				return nil, false, nil
			}
			v := cur
			return value.Int(v), true, nil
		}, forClause.Var, nil
	}

	start, err := evalOrDefault(forClause.From, 0)
	if err != nil {
		return nil, "", err
	}
	step, err := evalOrDefault(forClause.By, 1)
	if err != nil {
		return nil, "", err
	}
	inclusive := forClause.To != nil
	var ceil int64
	hasCeil := forClause.To != nil || forClause.Below != nil
	if forClause.To != nil {
		ceil, err = evalOrDefault(forClause.To, 0)
	} else if forClause.Below != nil {
		ceil, err = evalOrDefault(forClause.Below, 0)
	}
	if err != nil {
		return nil, "", err
	}
	cur := start
	first := true
	return func() (value.Value, bool, error) {
		if !first {
			cur += step
		}
		first = false
		if hasCeil {
			if inclusive && cur > ceil {
				return nil, false, nil
			}
			if !inclusive && cur >= ceil {
				return nil, false, nil
			}
		}
		return value.Int(cur), true, nil
	}, forClause.Var, nil
}

func loopIterableElements(v value.Value) ([]value.Value, error) {
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
		return nil, errors.TypeMismatch("array or range", value.TypeName(v)).WithTool("loop")
	}
}
