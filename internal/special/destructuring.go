package special

import (
	"fmt"

	"github.com/openSVM/solisp-sub002/internal/ast"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// BindPattern recursively matches pattern against v, calling define for
// every leaf name it binds (spec.md §4.5 "Destructuring"). A leaf pattern
// binds its whole value; a compound pattern requires v to be an Array and
// recurses positionally into its Sub elements, with a non-empty RestName
// collecting whatever elements remain past len(Sub) into an Array.
func BindPattern(pattern ast.Pattern, v value.Value, define func(name string, v value.Value)) error {
	if pattern.Name != "" {
		define(pattern.Name, v)
		return nil
	}
	arr, ok := v.(*value.Array)
	if !ok {
		return errors.TypeMismatch("array", value.TypeName(v)).WithTool("destructuring-bind")
	}
	n := len(pattern.Sub)
	if len(arr.Elements) < n {
		return errors.InvalidArguments("destructuring-bind", fmt.Sprintf("pattern expects at least %d elements, got %d", n, len(arr.Elements)))
	}
	for i, sub := range pattern.Sub {
		if err := BindPattern(sub, arr.Elements[i], define); err != nil {
			return err
		}
	}
	if pattern.RestName != "" {
		define(pattern.RestName, value.NewArray(arr.Elements[n:]...))
	}
	return nil
}
