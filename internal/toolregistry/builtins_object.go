package toolregistry

import (
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

func RegisterObject(r *Registry) {
	r.Register("object-keys", objectKeys, CategoryObject, "array of an object's keys")
	r.Register("object-values", objectValues, CategoryObject, "array of an object's values")
	r.Register("object-set", objectSet, CategoryObject, "new object with a key set")
	r.Register("object-has", objectHas, CategoryObject, "direct (non-lazy) key presence test")
	r.Register("object-merge", objectMerge, CategoryObject, "merge two objects, right-biased")
}

func objectKeys(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("object-keys", 1, len(args))
	}
	obj, ok := args[0].(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(args[0])).WithTool("object-keys")
	}
	out := make([]value.Value, 0, len(obj.Fields))
	for k := range obj.Fields {
		out = append(out, value.String(k))
	}
	return &value.Array{Elements: out}, nil
}

func objectValues(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("object-values", 1, len(args))
	}
	obj, ok := args[0].(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(args[0])).WithTool("object-values")
	}
	out := make([]value.Value, 0, len(obj.Fields))
	for _, v := range obj.Fields {
		out = append(out, v)
	}
	return &value.Array{Elements: out}, nil
}

func objectSet(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, errors.Arity("object-set", 3, len(args))
	}
	obj, ok := args[0].(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(args[0])).WithTool("object-set")
	}
	key, ok := args[1].(value.String)
	if !ok {
		return nil, errors.TypeMismatch("string", value.TypeName(args[1])).WithTool("object-set")
	}
	out := obj.Clone()
	out.Fields[string(key)] = args[2]
	return out, nil
}

func objectHas(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("object-has", 2, len(args))
	}
	obj, ok := args[0].(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(args[0])).WithTool("object-has")
	}
	key, ok := args[1].(value.String)
	if !ok {
		return nil, errors.TypeMismatch("string", value.TypeName(args[1])).WithTool("object-has")
	}
	_, present := obj.Fields[string(key)]
	return value.Bool(present), nil
}

func objectMerge(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("object-merge", 2, len(args))
	}
	a, ok := args[0].(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(args[0])).WithTool("object-merge")
	}
	b, ok := args[1].(*value.Object)
	if !ok {
		return nil, errors.TypeMismatch("object", value.TypeName(args[1])).WithTool("object-merge")
	}
	out := a.Clone()
	for k, v := range b.Fields {
		out.Fields[k] = v
	}
	return out, nil
}
