package toolregistry

import (
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

func RegisterArray(r *Registry) {
	r.Register("length", length, CategoryArray, "length of an array, string, or object")
	r.Register("elt", elt, CategoryArray, "element at index, error if out of range")
	r.Register("subseq", subseq, CategoryArray, "subsequence by start/end, error if out of range")
	r.Register("append", appendArr, CategoryArray, "new array with an element appended")
	r.Register("reverse", reverseBuiltin, CategoryArray, "reverse an array or string")
	r.Register("sort", sortBuiltin, CategoryArray, "stable sort; :natural for natural string order")
	r.Register("distinct", distinct, CategoryArray, "insertion-order unique prefix")
	r.Register("indexof", indexOf, CategoryArray, "index of first match, or -1")
	r.Register("contains", containsBuiltin, CategoryArray, "membership test")
	r.Register("first", firstBuiltin, CategoryArray, "first element")
	r.Register("rest", restBuiltin, CategoryArray, "all but the first element")
	r.Register("range", rangeBuiltin, CategoryArray, "construct a Range value")
	r.Register("range-to-array", rangeToArray, CategoryArray, "materialize a Range as an array of ints")
}

func length(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("length", 1, len(args))
	}
	switch x := args[0].(type) {
	case value.String:
		return value.Int(len([]rune(string(x)))), nil
	case *value.Array:
		return value.Int(len(x.Elements)), nil
	case *value.Object:
		return value.Int(len(x.Fields)), nil
	default:
		return nil, errors.TypeMismatch("string, array, or object", value.TypeName(args[0])).WithTool("length")
	}
}

func elt(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("elt", 2, len(args))
	}
	idx, ok := value.AsInt(args[1])
	if !ok {
		return nil, errors.TypeMismatch("int", value.TypeName(args[1])).WithTool("elt")
	}
	switch x := args[0].(type) {
	case *value.Array:
		if idx < 0 || idx >= int64(len(x.Elements)) {
			return nil, errors.InvalidArguments("elt", "index out of range")
		}
		return x.Elements[idx], nil
	case value.String:
		runes := []rune(string(x))
		if idx < 0 || idx >= int64(len(runes)) {
			return nil, errors.InvalidArguments("elt", "index out of range")
		}
		return value.String(string(runes[idx])), nil
	default:
		return nil, errors.TypeMismatch("array or string", value.TypeName(args[0])).WithTool("elt")
	}
}

func subseq(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, errors.Arity("subseq", 3, len(args))
	}
	start, ok1 := value.AsInt(args[1])
	end, ok2 := value.AsInt(args[2])
	if !ok1 || !ok2 {
		return nil, errors.TypeMismatch("int", "non-int").WithTool("subseq")
	}
	switch x := args[0].(type) {
	case *value.Array:
		if start < 0 || end > int64(len(x.Elements)) || start > end {
			return nil, errors.InvalidArguments("subseq", "range out of bounds")
		}
		out := make([]value.Value, end-start)
		copy(out, x.Elements[start:end])
		return &value.Array{Elements: out}, nil
	case value.String:
		runes := []rune(string(x))
		if start < 0 || end > int64(len(runes)) || start > end {
			return nil, errors.InvalidArguments("subseq", "range out of bounds")
		}
		return value.String(string(runes[start:end])), nil
	default:
		return nil, errors.TypeMismatch("array or string", value.TypeName(args[0])).WithTool("subseq")
	}
}

func appendArr(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, errors.Arity("append", 1, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, errors.TypeMismatch("array", value.TypeName(args[0])).WithTool("append")
	}
	out := make([]value.Value, 0, len(arr.Elements)+len(args)-1)
	out = append(out, arr.Elements...)
	out = append(out, args[1:]...)
	return &value.Array{Elements: out}, nil
}

func reverseBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("reverse", 1, len(args))
	}
	switch x := args[0].(type) {
	case *value.Array:
		out := make([]value.Value, len(x.Elements))
		for i, v := range x.Elements {
			out[len(out)-1-i] = v
		}
		return &value.Array{Elements: out}, nil
	case value.String:
		runes := []rune(string(x))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.String(string(runes)), nil
	default:
		return nil, errors.TypeMismatch("array or string", value.TypeName(args[0])).WithTool("reverse")
	}
}

func sortBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, errors.Arity("sort", 1, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, errors.TypeMismatch("array", value.TypeName(args[0])).WithTool("sort")
	}
	out := arr.Clone()

	naturalOrder := false
	if len(args) == 2 {
		kw, ok := args[1].(value.String)
		if !ok || kw != ":natural" {
			return nil, errors.InvalidArguments("sort", "second argument must be the keyword :natural")
		}
		naturalOrder = true
	}

	if naturalOrder {
		strs := make([]string, len(out.Elements))
		for i, v := range out.Elements {
			s, ok := v.(value.String)
			if !ok {
				return nil, errors.TypeMismatch("string", value.TypeName(v)).WithTool("sort")
			}
			strs[i] = string(s)
		}
		sort.Sort(natural.StringSlice(strs))
		for i, s := range strs {
			out.Elements[i] = value.String(s)
		}
		return out, nil
	}

	var sortErr error
	sort.SliceStable(out.Elements, func(i, j int) bool {
		cmp, ok := value.Compare(out.Elements[i], out.Elements[j])
		if !ok {
			sortErr = errors.TypeMismatch("comparable", value.TypeName(out.Elements[j])).WithTool("sort")
			return false
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

func distinct(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("distinct", 1, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, errors.TypeMismatch("array", value.TypeName(args[0])).WithTool("distinct")
	}
	var out []value.Value
	for _, v := range arr.Elements {
		seen := false
		for _, u := range out {
			if value.Equal(v, u) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
		}
	}
	return &value.Array{Elements: out}, nil
}

// indexOf and containsBuiltin implement spec.md §9 Open Question (c):
// non-matching types return Int(-1)/Bool(false) rather than erroring.
func indexOf(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("indexof", 2, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return value.Int(-1), nil
	}
	for i, v := range arr.Elements {
		if value.Equal(v, args[1]) {
			return value.Int(i), nil
		}
	}
	return value.Int(-1), nil
}

func containsBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("contains", 2, len(args))
	}
	switch x := args[0].(type) {
	case *value.Array:
		for _, v := range x.Elements {
			if value.Equal(v, args[1]) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.String:
		sub, ok := args[1].(value.String)
		if !ok {
			return value.Bool(false), nil
		}
		return value.Bool(strings.Contains(string(x), string(sub))), nil
	default:
		return value.Bool(false), nil
	}
}

func firstBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("first", 1, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, errors.TypeMismatch("array", value.TypeName(args[0])).WithTool("first")
	}
	if len(arr.Elements) == 0 {
		return nil, errors.InvalidArguments("first", "array is empty")
	}
	return arr.Elements[0], nil
}

func restBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("rest", 1, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, errors.TypeMismatch("array", value.TypeName(args[0])).WithTool("rest")
	}
	if len(arr.Elements) == 0 {
		return &value.Array{}, nil
	}
	out := make([]value.Value, len(arr.Elements)-1)
	copy(out, arr.Elements[1:])
	return &value.Array{Elements: out}, nil
}

func rangeBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("range", 2, len(args))
	}
	start, ok1 := value.AsInt(args[0])
	end, ok2 := value.AsInt(args[1])
	if !ok1 || !ok2 {
		return nil, errors.TypeMismatch("int", "non-int").WithTool("range")
	}
	return value.Range{Start: start, End: end}, nil
}

func rangeToArray(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("range-to-array", 1, len(args))
	}
	r, ok := args[0].(value.Range)
	if !ok {
		return nil, errors.TypeMismatch("range", value.TypeName(args[0])).WithTool("range-to-array")
	}
	out := make([]value.Value, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		out = append(out, value.Int(i))
	}
	return &value.Array{Elements: out}, nil
}
