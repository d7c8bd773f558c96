package toolregistry

import "github.com/openSVM/solisp-sub002/internal/value"

// RegisterPredicate installs the type-probe family from spec.md §4.1:
// int?, float?, number?, string?, bool?, array?, object?, function?,
// null?, empty?.
func RegisterPredicate(r *Registry) {
	reg := func(name string, pred func(value.Value) bool) {
		r.Register(name, func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return value.Bool(false), nil
			}
			return value.Bool(pred(args[0])), nil
		}, CategoryPredicate, name+" type predicate")
	}
	reg("int?", value.IsInt)
	reg("float?", value.IsFloat)
	reg("number?", value.IsNumber)
	reg("string?", value.IsString)
	reg("bool?", value.IsBool)
	reg("array?", value.IsArray)
	reg("object?", value.IsObject)
	reg("function?", value.IsFunction)
	reg("null?", value.IsNull)
	reg("empty?", value.IsEmpty)
}
