// Package jsonconv implements the JSON/YAML bridge for library tools
// (spec.md §6 "Wire formats"): Null/Bool/Int/Float/String/Array/Object
// convert straightforwardly; Function, Macro, Range, Multiple, and every
// concurrency handle are not serializable and conversion fails for them.
//
// JSON parsing and stringification use github.com/tidwall/gjson and
// github.com/tidwall/sjson rather than encoding/json: gjson walks an
// arbitrary document without building an intermediate generic tree, and
// sjson streams a value back into a JSON string incrementally, which
// together keep this bridge a single forward pass over the Value in each
// direction instead of two encoding/json round-trips through
// map[string]interface{}.
package jsonconv

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// ParseJSON parses a JSON document into a Value tree.
func ParseJSON(doc string) (value.Value, error) {
	if !gjson.Valid(doc) {
		return nil, errors.InvalidArguments("parse-json", "invalid JSON document")
	}
	return fromGJSON(gjson.Parse(doc)), nil
}

func fromGJSON(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Nil
	case gjson.True:
		return value.Bool(true)
	case gjson.False:
		return value.Bool(false)
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) && !hasDecimalPoint(r.Raw) {
			return value.Int(int64(r.Num))
		}
		return value.Float(r.Num)
	case gjson.String:
		return value.String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elements []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elements = append(elements, fromGJSON(v))
				return true
			})
			return &value.Array{Elements: elements}
		}
		obj := value.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Fields[k.String()] = fromGJSON(v)
			return true
		})
		return obj
	default:
		return value.Nil
	}
}

func hasDecimalPoint(raw string) bool {
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}

// StringifyJSON renders v as a JSON document, failing for values with no
// JSON representation (Function, Macro, Range, Multiple, concurrency
// handles).
func StringifyJSON(v value.Value) (string, error) {
	doc := "{}"
	out, err := setJSON(doc, "", v, true)
	if err != nil {
		return "", err
	}
	return out, nil
}

// setJSON writes v at path into doc (an in-progress JSON document),
// returning the updated document. The root call uses path="" against a
// throwaway "{}" scaffold and root=true so the first Set replaces the
// whole document rather than nesting under an empty key.
func setJSON(doc, path string, v value.Value, root bool) (string, error) {
	switch x := v.(type) {
	case value.Null:
		if root {
			return "null", nil
		}
		return sjson.Set(doc, path, nil)
	case value.Bool:
		if root {
			if x {
				return "true", nil
			}
			return "false", nil
		}
		return sjson.Set(doc, path, bool(x))
	case value.Int:
		if root {
			return fmt.Sprintf("%d", int64(x)), nil
		}
		return sjson.Set(doc, path, int64(x))
	case value.Float:
		if root {
			return fmt.Sprintf("%v", float64(x)), nil
		}
		return sjson.Set(doc, path, float64(x))
	case value.String:
		if root {
			return sjson.Set("", "", string(x))
		}
		return sjson.Set(doc, path, string(x))
	case *value.Array:
		cur := "[]"
		for i, elem := range x.Elements {
			next, err := setJSON(cur, fmt.Sprintf("%d", i), elem, false)
			if err != nil {
				return "", err
			}
			cur = next
		}
		if root {
			return cur, nil
		}
		return sjson.SetRaw(doc, path, cur)
	case *value.Object:
		cur := "{}"
		for k, val := range x.Fields {
			next, err := setJSON(cur, sjsonEscapeKey(k), val, false)
			if err != nil {
				return "", err
			}
			cur = next
		}
		if root {
			return cur, nil
		}
		return sjson.SetRaw(doc, path, cur)
	default:
		return "", errors.InvalidArguments("json-stringify", fmt.Sprintf("%s values are not JSON-serializable", v.Kind()))
	}
}

// sjsonEscapeKey guards against object keys containing sjson path
// metacharacters ('.', '*', '?') by using sjson's literal-key escape.
func sjsonEscapeKey(k string) string {
	escaped := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '.', '*', '?':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, k[i])
	}
	return string(escaped)
}

// ParseYAML and StringifyYAML back the `yaml-parse`/`yaml-stringify`
// library functions (SPEC_FULL.md Domain Stack), reusing the same Value
// tree shape as JSON via an intermediate interface{} decode, since
// goccy/go-yaml's Unmarshal target is a plain Go value rather than a
// streaming result type like gjson.Result.
func ParseYAML(doc string) (value.Value, error) {
	var generic interface{}
	if err := yaml.Unmarshal([]byte(doc), &generic); err != nil {
		return nil, errors.InvalidArguments("yaml-parse", "invalid YAML document: "+err.Error())
	}
	return fromGeneric(generic), nil
}

func fromGeneric(g interface{}) value.Value {
	switch x := g.(type) {
	case nil:
		return value.Nil
	case bool:
		return value.Bool(x)
	case int:
		return value.Int(int64(x))
	case int64:
		return value.Int(x)
	case uint64:
		return value.Int(int64(x))
	case float64:
		return value.Float(x)
	case string:
		return value.String(x)
	case []interface{}:
		elements := make([]value.Value, len(x))
		for i, e := range x {
			elements[i] = fromGeneric(e)
		}
		return &value.Array{Elements: elements}
	case map[string]interface{}:
		obj := value.NewObject()
		for k, v := range x {
			obj.Fields[k] = fromGeneric(v)
		}
		return obj
	case map[interface{}]interface{}:
		obj := value.NewObject()
		for k, v := range x {
			obj.Fields[fmt.Sprintf("%v", k)] = fromGeneric(v)
		}
		return obj
	default:
		return value.String(fmt.Sprintf("%v", x))
	}
}

// StringifyYAML renders v as a YAML document, with the same
// serializability restrictions as StringifyJSON.
func StringifyYAML(v value.Value) (string, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return "", err
	}
	out, merr := yaml.Marshal(generic)
	if merr != nil {
		return "", errors.ToolExecutionError("yaml-stringify", merr.Error())
	}
	return string(out), nil
}

func toGeneric(v value.Value) (interface{}, error) {
	switch x := v.(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return bool(x), nil
	case value.Int:
		return int64(x), nil
	case value.Float:
		return float64(x), nil
	case value.String:
		return string(x), nil
	case *value.Array:
		out := make([]interface{}, len(x.Elements))
		for i, e := range x.Elements {
			g, err := toGeneric(e)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	case *value.Object:
		out := make(map[string]interface{}, len(x.Fields))
		for k, val := range x.Fields {
			g, err := toGeneric(val)
			if err != nil {
				return nil, err
			}
			out[k] = g
		}
		return out, nil
	default:
		return nil, errors.InvalidArguments("yaml-stringify", fmt.Sprintf("%s values are not YAML-serializable", v.Kind()))
	}
}
