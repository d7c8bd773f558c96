package toolregistry

import (
	"math"

	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

func RegisterMath(r *Registry) {
	r.Register("abs", mathAbs, CategoryMath, "absolute value")
	r.Register("min", mathMin, CategoryMath, "minimum of its arguments")
	r.Register("max", mathMax, CategoryMath, "maximum of its arguments")
	r.Register("sqrt", mathSqrt, CategoryMath, "square root")
	r.Register("ln", mathLn, CategoryMath, "natural logarithm")
	r.Register("log2", mathLog2, CategoryMath, "base-2 logarithm")
	r.Register("log10", mathLog10, CategoryMath, "base-10 logarithm")
	r.Register("exp", unaryFloat("exp", math.Exp), CategoryMath, "e^x")
	r.Register("pow", mathPow, CategoryMath, "x raised to y")
	r.Register("sin", unaryFloat("sin", math.Sin), CategoryMath, "sine")
	r.Register("cos", unaryFloat("cos", math.Cos), CategoryMath, "cosine")
	r.Register("tan", unaryFloat("tan", math.Tan), CategoryMath, "tangent")
	r.Register("asin", mathAsin, CategoryMath, "arc sine")
	r.Register("acos", mathAcos, CategoryMath, "arc cosine")
	r.Register("atan", unaryFloat("atan", math.Atan), CategoryMath, "arc tangent")
	r.Register("atan2", mathAtan2, CategoryMath, "two-argument arc tangent")
	r.Register("floor", mathFloor, CategoryMath, "round toward negative infinity")
	r.Register("ceil", mathCeil, CategoryMath, "round toward positive infinity")
	r.Register("round", mathRound, CategoryMath, "round to nearest integer")
	r.Register("gcd", mathGCD, CategoryMath, "greatest common divisor (empty -> 0)")
	r.Register("lcm", mathLCM, CategoryMath, "least common multiple (empty -> 1)")
	r.Register("mod", mathMod, CategoryMath, "Euclidean modulo")
	r.Register("rem", mathRem, CategoryMath, "truncating remainder")
	r.Register("random", mathRandom, CategoryMath, "pseudo-random float in [0,1) or int in [0,n)")
	r.Register("randomize", mathRandomize, CategoryMath, "reseed the shared random generator for reproducible runs")
}

func unaryFloat(name string, fn func(float64) float64) Func {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.Arity(name, 1, len(args))
		}
		f, ok := value.AsFloat(args[0])
		if !ok {
			return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool(name)
		}
		return value.Float(fn(f)), nil
	}
}

func mathAbs(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("abs", 1, len(args))
	}
	switch x := args[0].(type) {
	case value.Int:
		if x < 0 {
			return -x, nil
		}
		return x, nil
	case value.Float:
		return value.Float(math.Abs(float64(x))), nil
	default:
		return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool("abs")
	}
}

func mathMin(args []value.Value) (value.Value, error) {
	return reduceCompare(args, "min", -1)
}

func mathMax(args []value.Value) (value.Value, error) {
	return reduceCompare(args, "max", 1)
}

func reduceCompare(args []value.Value, name string, wantSign int) (value.Value, error) {
	if len(args) == 0 {
		return nil, errors.Arity(name, 1, 0)
	}
	best := args[0]
	for _, a := range args[1:] {
		cmp, ok := value.Compare(a, best)
		if !ok {
			return nil, errors.TypeMismatch("comparable", value.TypeName(a)).WithTool(name)
		}
		if cmp == wantSign {
			best = a
		}
	}
	return best, nil
}

func mathSqrt(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("sqrt", 1, len(args))
	}
	f, ok := value.AsFloat(args[0])
	if !ok {
		return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool("sqrt")
	}
	if f < 0 {
		return nil, errors.InvalidArguments("sqrt", "cannot take the square root of a negative number")
	}
	return value.Float(math.Sqrt(f)), nil
}

func mathLn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("ln", 1, len(args))
	}
	f, ok := value.AsFloat(args[0])
	if !ok {
		return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool("ln")
	}
	if f <= 0 {
		return nil, errors.InvalidArguments("ln", "argument must be positive")
	}
	return value.Float(math.Log(f)), nil
}

func mathLog2(args []value.Value) (value.Value, error) {
	v, err := mathLn(args)
	if err != nil {
		return nil, err
	}
	return value.Float(float64(v.(value.Float)) / math.Ln2), nil
}

func mathLog10(args []value.Value) (value.Value, error) {
	v, err := mathLn(args)
	if err != nil {
		return nil, err
	}
	return value.Float(float64(v.(value.Float)) / math.Ln10), nil
}

func mathPow(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("pow", 2, len(args))
	}
	x, ok1 := value.AsFloat(args[0])
	y, ok2 := value.AsFloat(args[1])
	if !ok1 || !ok2 {
		return nil, errors.TypeMismatch("number", "non-number").WithTool("pow")
	}
	return value.Float(math.Pow(x, y)), nil
}

func mathAsin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("asin", 1, len(args))
	}
	f, ok := value.AsFloat(args[0])
	if !ok || f < -1 || f > 1 {
		return nil, errors.InvalidArguments("asin", "argument must be in [-1, 1]")
	}
	return value.Float(math.Asin(f)), nil
}

func mathAcos(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("acos", 1, len(args))
	}
	f, ok := value.AsFloat(args[0])
	if !ok || f < -1 || f > 1 {
		return nil, errors.InvalidArguments("acos", "argument must be in [-1, 1]")
	}
	return value.Float(math.Acos(f)), nil
}

func mathAtan2(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("atan2", 2, len(args))
	}
	y, ok1 := value.AsFloat(args[0])
	x, ok2 := value.AsFloat(args[1])
	if !ok1 || !ok2 {
		return nil, errors.TypeMismatch("number", "non-number").WithTool("atan2")
	}
	return value.Float(math.Atan2(y, x)), nil
}

func mathFloor(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("floor", 1, len(args))
	}
	if i, ok := args[0].(value.Int); ok {
		return i, nil
	}
	f, ok := value.AsFloat(args[0])
	if !ok {
		return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool("floor")
	}
	return value.Int(int64(math.Floor(f))), nil
}

func mathCeil(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("ceil", 1, len(args))
	}
	if i, ok := args[0].(value.Int); ok {
		return i, nil
	}
	f, ok := value.AsFloat(args[0])
	if !ok {
		return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool("ceil")
	}
	return value.Int(int64(math.Ceil(f))), nil
}

func mathRound(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("round", 1, len(args))
	}
	if i, ok := args[0].(value.Int); ok {
		return i, nil
	}
	f, ok := value.AsFloat(args[0])
	if !ok {
		return nil, errors.TypeMismatch("number", value.TypeName(args[0])).WithTool("round")
	}
	return value.Int(int64(math.Round(f))), nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func mathGCD(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Int(0), nil
	}
	acc, ok := value.AsInt(args[0])
	if !ok {
		return nil, errors.TypeMismatch("int", value.TypeName(args[0])).WithTool("gcd")
	}
	for _, a := range args[1:] {
		n, ok := value.AsInt(a)
		if !ok {
			return nil, errors.TypeMismatch("int", value.TypeName(a)).WithTool("gcd")
		}
		acc = gcd(acc, n)
	}
	return value.Int(acc), nil
}

func mathLCM(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Int(1), nil
	}
	acc, ok := value.AsInt(args[0])
	if !ok {
		return nil, errors.TypeMismatch("int", value.TypeName(args[0])).WithTool("lcm")
	}
	if acc < 0 {
		acc = -acc
	}
	for _, a := range args[1:] {
		n, ok := value.AsInt(a)
		if !ok {
			return nil, errors.TypeMismatch("int", value.TypeName(a)).WithTool("lcm")
		}
		if n < 0 {
			n = -n
		}
		if acc == 0 || n == 0 {
			acc = 0
			continue
		}
		acc = acc / gcd(acc, n) * n
	}
	return value.Int(acc), nil
}

func mathMod(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("mod", 2, len(args))
	}
	return value.Mod(args[0], args[1])
}

func mathRem(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errors.Arity("rem", 2, len(args))
	}
	return value.Rem(args[0], args[1])
}
