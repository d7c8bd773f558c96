package toolregistry

import (
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/jsonconv"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// RegisterJSON wires the JSON/YAML library functions onto internal/jsonconv
// (gjson/sjson/goccy-go-yaml backed), per SPEC_FULL.md's Domain Stack.
func RegisterJSON(r *Registry) {
	r.Register("parse-json", parseJSON, CategoryJSON, "parse a JSON document into a value")
	r.Register("json-stringify", jsonStringify, CategoryJSON, "render a value as a JSON document")
	r.Register("yaml-parse", parseYAML, CategoryJSON, "parse a YAML document into a value")
	r.Register("yaml-stringify", yamlStringify, CategoryJSON, "render a value as a YAML document")
}

func parseJSON(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("parse-json", 1, len(args))
	}
	s, err := asString("parse-json", args[0])
	if err != nil {
		return nil, err
	}
	return jsonconv.ParseJSON(s)
}

func jsonStringify(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("json-stringify", 1, len(args))
	}
	s, err := jsonconv.StringifyJSON(args[0])
	if err != nil {
		return nil, err
	}
	return value.String(s), nil
}

func parseYAML(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("yaml-parse", 1, len(args))
	}
	s, err := asString("yaml-parse", args[0])
	if err != nil {
		return nil, err
	}
	return jsonconv.ParseYAML(s)
}

func yamlStringify(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("yaml-stringify", 1, len(args))
	}
	s, err := jsonconv.StringifyYAML(args[0])
	if err != nil {
		return nil, err
	}
	return value.String(s), nil
}
