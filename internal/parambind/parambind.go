// Package parambind implements ParamBinder (spec.md §4.4): binding a
// positional+keyword call's arguments against a Common-Lisp-style lambda
// list of four ordered sections (required, &optional, &rest, &key). It is
// grounded on the teacher's internal/interp/params.Bind, generalized from
// DWScript's fixed-arity parameter lists to this language's sectioned
// lambda lists.
package parambind

import (
	"strconv"
	"strings"

	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

const (
	markerOptional = "&optional"
	markerRest     = "&rest"
	markerKey      = "&key"
)

// optParam is one &optional or &key entry: a name plus its serialized
// default (spec.md §4.4 step 3: "defaults include literal numbers,
// strings, booleans, null, and empty array/object placeholders").
type optParam struct {
	name    string
	hasDefault bool
	defLit  string
}

// lambdaList is params partitioned into its four sections.
type lambdaList struct {
	required []string
	optional []optParam
	rest     string // empty if no &rest section
	key      []optParam
}

// Parse partitions a stored parameter list into its four sections by
// scanning for the literal &optional/&rest/&key markers (spec.md §4.4
// step 1). Entries are either a bare name (required, &rest) or a
// "name=literal" encoding for &optional/&key defaults.
func Parse(params []string) lambdaList {
	var ll lambdaList
	section := "required"
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch p {
		case markerOptional:
			section = "optional"
			continue
		case markerRest:
			section = "rest"
			continue
		case markerKey:
			section = "key"
			continue
		}
		switch section {
		case "required":
			ll.required = append(ll.required, p)
		case "optional":
			ll.optional = append(ll.optional, parseOptParam(p))
		case "rest":
			ll.rest = p
			section = "key-wait" // a &rest name is exactly one name; further entries must be &key
		case "key-wait":
			if p == markerKey {
				section = "key"
			}
		case "key":
			ll.key = append(ll.key, parseOptParam(p))
		}
	}
	return ll
}

func parseOptParam(p string) optParam {
	if idx := strings.IndexByte(p, '='); idx >= 0 {
		return optParam{name: p[:idx], hasDefault: true, defLit: p[idx+1:]}
	}
	return optParam{name: p}
}

// Bind implements the five-step algorithm of spec.md §4.4 against args,
// which have already had keyword pairs flattened in by the caller
// (String(":name") immediately followed by its value, per the function
// application protocol in §4.6). define installs each bound name via
// define(name, v).
func Bind(tool string, params []string, args []value.Value, define func(name string, v value.Value)) error {
	ll := Parse(params)
	pos := 0

	// 2. Required.
	if len(args) < len(ll.required) {
		return errors.Arity(tool, len(ll.required), len(args))
	}
	for _, name := range ll.required {
		define(name, args[pos])
		pos++
	}

	// 3. Optional: bind the next positional argument unless it is a
	// keyword token, else the parsed default.
	for _, p := range ll.optional {
		if pos < len(args) && !isKeywordToken(args[pos]) {
			define(p.name, args[pos])
			pos++
		} else {
			define(p.name, defaultValue(p))
		}
	}

	// 4. &rest: everything positional up to the first keyword token.
	if ll.rest != "" {
		var rest []value.Value
		for pos < len(args) && !isKeywordToken(args[pos]) {
			rest = append(rest, args[pos])
			pos++
		}
		define(ll.rest, value.NewArray(rest...))
	}

	// 5. &key: scan the remainder as (keyword value) pairs.
	if len(ll.key) > 0 {
		supplied := make(map[string]value.Value)
		for pos+1 < len(args) {
			kw, ok := args[pos].(value.String)
			if !ok || !kw.IsKeyword() {
				pos++
				continue
			}
			supplied[strings.TrimPrefix(string(kw), ":")] = args[pos+1]
			pos += 2
		}
		for _, p := range ll.key {
			if v, ok := supplied[p.name]; ok {
				define(p.name, v)
			} else {
				define(p.name, defaultValue(p))
			}
		}
	}

	return nil
}

func isKeywordToken(v value.Value) bool {
	s, ok := v.(value.String)
	return ok && s.IsKeyword()
}

// defaultValue parses an optParam's serialized default literal back into
// a Value (spec.md §4.4 step 3). Literals recognized: integers, floats,
// "true"/"false", "null", quoted strings, "[]", "{}".
func defaultValue(p optParam) value.Value {
	if !p.hasDefault {
		return value.Nil
	}
	lit := p.defLit
	switch lit {
	case "", "null":
		return value.Nil
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	case "[]":
		return value.NewArray()
	case "{}":
		return value.NewObject()
	}
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return value.String(lit[1 : len(lit)-1])
	}
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return value.Int(n)
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return value.Float(f)
	}
	return value.String(lit)
}
