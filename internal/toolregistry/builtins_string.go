package toolregistry

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

func RegisterString(r *Registry) {
	r.Register("concat", strConcat, CategoryString, "concatenate strings")
	r.Register("string-length", strLength, CategoryString, "length of a string, in runes")
	r.Register("string-upcase", strUpcase, CategoryString, "Unicode-aware uppercasing")
	r.Register("string-downcase", strDowncase, CategoryString, "Unicode-aware lowercasing")
	r.Register("string-normalize", strNormalize, CategoryString, "Unicode NFC normalization")
	r.Register("string-trim", strTrim, CategoryString, "trim leading/trailing whitespace")
	r.Register("string-split", strSplit, CategoryString, "split on a separator")
	r.Register("string-join", strJoin, CategoryString, "join an array of strings with a separator")
	r.Register("string-contains", strContains, CategoryString, "substring test")
	r.Register("string-replace", strReplace, CategoryString, "replace all occurrences")
	r.Register("substr", strSubstr, CategoryString, "substring by start/length")
	r.Register("to-string", toStringBuiltin, CategoryConversion, "render any value as a string")
	r.Register("parse-int", parseIntBuiltin, CategoryConversion, "parse a string as an integer")
	r.Register("parse-float", parseFloatBuiltin, CategoryConversion, "parse a string as a float")
	r.Register("base64-encode", base64Encode, CategoryConversion, "base64 encode a string")
	r.Register("base64-decode", base64Decode, CategoryConversion, "base64 decode a string")
	r.Register("hex-encode", hexEncode, CategoryConversion, "hex encode a string")
	r.Register("hex-decode", hexDecode, CategoryConversion, "hex decode a string")
}

func strConcat(args []value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		s, ok := a.(value.String)
		if !ok {
			return nil, errors.TypeMismatch("string", value.TypeName(a)).WithTool("concat")
		}
		sb.WriteString(string(s))
	}
	return value.String(sb.String()), nil
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", errors.TypeMismatch("string", value.TypeName(v)).WithTool(name)
	}
	return string(s), nil
}

func strLength(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("string-length", 1, len(args))
	}
	s, err := asString("string-length", args[0])
	if err != nil {
		return nil, err
	}
	return value.Int(len([]rune(s))), nil
}

func strUpcase(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("string-upcase", 1, len(args))
	}
	s, err := asString("string-upcase", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(cases.Upper(language.Und).String(s)), nil
}

func strDowncase(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("string-downcase", 1, len(args))
	}
	s, err := asString("string-downcase", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(cases.Lower(language.Und).String(s)), nil
}

func strNormalize(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("string-normalize", 1, len(args))
	}
	s, err := asString("string-normalize", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(norm.NFC.String(s)), nil
}

func strTrim(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("string-trim", 1, len(args))
	}
	s, err := asString("string-trim", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSpace(s)), nil
}

func strSplit(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("string-split", 2, len(args))
	}
	s, err := asString("string-split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := asString("string-split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	elements := make([]value.Value, len(parts))
	for i, p := range parts {
		elements[i] = value.String(p)
	}
	return &value.Array{Elements: elements}, nil
}

func strJoin(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("string-join", 2, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, errors.TypeMismatch("array", value.TypeName(args[0])).WithTool("string-join")
	}
	sep, err := asString("string-join", args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(arr.Elements))
	for i, e := range arr.Elements {
		s, ok := e.(value.String)
		if !ok {
			return nil, errors.TypeMismatch("string", value.TypeName(e)).WithTool("string-join")
		}
		parts[i] = string(s)
	}
	return value.String(strings.Join(parts, sep)), nil
}

func strContains(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("string-contains", 2, len(args))
	}
	s, err := asString("string-contains", args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString("string-contains", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.Contains(s, sub)), nil
}

func strReplace(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, errors.Arity("string-replace", 3, len(args))
	}
	s, err := asString("string-replace", args[0])
	if err != nil {
		return nil, err
	}
	old, err := asString("string-replace", args[1])
	if err != nil {
		return nil, err
	}
	nw, err := asString("string-replace", args[2])
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(s, old, nw)), nil
}

func strSubstr(args []value.Value) (value.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, errors.Arity("substr", 2, len(args))
	}
	s, err := asString("substr", args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	start, ok := value.AsInt(args[1])
	if !ok || start < 0 || start > int64(len(runes)) {
		return nil, errors.InvalidArguments("substr", "start index out of range")
	}
	end := int64(len(runes))
	if len(args) == 3 {
		length, ok := value.AsInt(args[2])
		if !ok || length < 0 {
			return nil, errors.InvalidArguments("substr", "length must be non-negative")
		}
		end = start + length
		if end > int64(len(runes)) {
			return nil, errors.InvalidArguments("substr", "length runs past the end of the string")
		}
	}
	return value.String(string(runes[start:end])), nil
}

func toStringBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("to-string", 1, len(args))
	}
	return value.String(args[0].String()), nil
}

func parseIntBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("parse-int", 1, len(args))
	}
	s, err := asString("parse-int", args[0])
	if err != nil {
		return nil, err
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if perr != nil {
		return nil, errors.InvalidArguments("parse-int", "not a valid integer: "+s)
	}
	return value.Int(n), nil
}

func parseFloatBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("parse-float", 1, len(args))
	}
	s, err := asString("parse-float", args[0])
	if err != nil {
		return nil, err
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if perr != nil {
		return nil, errors.InvalidArguments("parse-float", "not a valid float: "+s)
	}
	return value.Float(f), nil
}

func base64Encode(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("base64-encode", 1, len(args))
	}
	s, err := asString("base64-encode", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(base64.StdEncoding.EncodeToString([]byte(s))), nil
}

func base64Decode(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("base64-decode", 1, len(args))
	}
	s, err := asString("base64-decode", args[0])
	if err != nil {
		return nil, err
	}
	out, derr := base64.StdEncoding.DecodeString(s)
	if derr != nil {
		return nil, errors.InvalidArguments("base64-decode", "not valid base64")
	}
	return value.String(out), nil
}

func hexEncode(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("hex-encode", 1, len(args))
	}
	s, err := asString("hex-encode", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(hex.EncodeToString([]byte(s))), nil
}

func hexDecode(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("hex-decode", 1, len(args))
	}
	s, err := asString("hex-decode", args[0])
	if err != nil {
		return nil, err
	}
	out, derr := hex.DecodeString(s)
	if derr != nil {
		return nil, errors.InvalidArguments("hex-decode", "not valid hex")
	}
	return value.String(out), nil
}
