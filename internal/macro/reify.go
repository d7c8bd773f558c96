package macro

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// Reify turns an unevaluated Expression into the Value a macro body
// receives as its argument (spec.md §4.3 step 2, §9 "expression-as-data"):
// atoms reify to the matching scalar Value, a Variable reifies to its
// name as a String (so macro bodies can build new names with ordinary
// string tools plus gensym), an ArrayLiteral reifies to a data Array, and
// any other compound form - the cases a macro typically wants to inspect
// or pass through unchanged rather than rebuild piecewise - reifies to a
// value.Code wrapping the node directly, the explicit-Code-variant
// alternative spec.md §9 names as "preferred for clarity".
func Reify(e ast.Expression) value.Value {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return value.Int(n.Value)
	case *ast.FloatLiteral:
		return value.Float(n.Value)
	case *ast.StringLiteral:
		return value.String(n.Value)
	case *ast.BoolLiteral:
		return value.Bool(n.Value)
	case *ast.NullLiteral:
		return value.Nil
	case *ast.Variable:
		return value.String(n.Name)
	case *ast.ArrayLiteral:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Reify(el)
		}
		return value.NewArray(elems...)
	case *ast.Grouping:
		return Reify(n.X)
	default:
		return value.Code{Expr: e}
	}
}

// Dereify turns a macro body's result Value back into an Expression
// (spec.md §4.3 step 4): a value.Code unwraps to the Expression it
// carries, an Array becomes an ArrayLiteral, a String matching identifier
// syntax becomes a Variable reference, scalars become their literal node.
// Anything else (Function, Macro, a concurrency handle, ...) cannot be
// reified into source and raises TypeError.
func Dereify(v value.Value, pos errors.Position) (ast.Expression, error) {
	base := ast.NewBase(pos)
	switch x := v.(type) {
	case value.Code:
		if expr, ok := x.Expr.(ast.Expression); ok {
			return expr, nil
		}
		return nil, errors.New(errors.KindTypeError, "macro expansion produced an unusable code value")
	case value.Null:
		return &ast.NullLiteral{Base: base}, nil
	case value.Bool:
		return &ast.BoolLiteral{Base: base, Value: bool(x)}, nil
	case value.Int:
		return &ast.IntLiteral{Base: base, Value: int64(x)}, nil
	case value.Float:
		return &ast.FloatLiteral{Base: base, Value: float64(x)}, nil
	case value.String:
		if isIdentifierSyntax(string(x)) {
			return &ast.Variable{Base: base, Name: string(x)}, nil
		}
		return &ast.StringLiteral{Base: base, Value: string(x)}, nil
	case *value.Array:
		elems := make([]ast.Expression, len(x.Elements))
		for i, el := range x.Elements {
			de, err := Dereify(el, pos)
			if err != nil {
				return nil, err
			}
			elems[i] = de
		}
		return &ast.ArrayLiteral{Base: base, Elements: elems}, nil
	default:
		return nil, errors.New(errors.KindTypeError, "macro expansion produced a %s, which has no source representation", value.TypeName(v))
	}
}

// isIdentifierSyntax reports whether s reads as a source identifier
// rather than string data: starts with a letter or one of the symbolic
// characters this language's reader treats as identifier-leading,
// continues with only letters, digits and those symbolic characters, and
// is not itself a numeric literal.
func isIdentifierSyntax(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	r := []rune(s)[0]
	if !unicode.IsLetter(r) && !strings.ContainsRune("+-*/<>=!?_:.", r) {
		return false
	}
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && !strings.ContainsRune("+-*/<>=!?_:.%&", c) {
			return false
		}
	}
	return true
}
