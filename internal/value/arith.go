package value

import (
	"math"

	"github.com/openSVM/solisp-sub002/internal/errors"
)

// saturatingAdd adds two int64 values, clamping to the int64 range
// instead of wrapping on overflow (spec.md §4.1).
func saturatingAdd(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		if b > 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return sum
}

func saturatingSub(a, b int64) int64 {
	if b == math.MinInt64 {
		if a >= 0 {
			return math.MaxInt64
		}
		return saturatingAdd(a, math.MaxInt64)
	}
	return saturatingAdd(a, -b)
}

func saturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	result := a * b
	if result/b != a {
		if (a > 0) == (b > 0) {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return result
}

// Add implements `+`: numeric addition (saturating on Int, promoting to
// Float on mixed Int/Float), string concatenation, and array
// concatenation.
func Add(a, b Value) (Value, error) {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return Int(saturatingAdd(int64(x), int64(y))), nil
		case Float:
			return Float(float64(x) + float64(y)), nil
		}
	case Float:
		if fy, ok := AsFloat(b); ok && IsNumber(b) {
			return Float(float64(x) + fy), nil
		}
	case String:
		if y, ok := b.(String); ok {
			return x + y, nil
		}
	case *Array:
		if y, ok := b.(*Array); ok {
			merged := make([]Value, 0, len(x.Elements)+len(y.Elements))
			merged = append(merged, x.Elements...)
			merged = append(merged, y.Elements...)
			return &Array{Elements: merged}, nil
		}
	}
	return nil, errors.InvalidOperation("+", TypeName(a), TypeName(b))
}

// numericOp applies a binary float operation and an int operation,
// promoting to Float whenever either operand is Float.
func numericOp(op string, a, b Value, intOp func(x, y int64) (int64, error), floatOp func(x, y float64) (float64, error)) (Value, error) {
	ai, aIsInt := a.(Int)
	bi, bIsInt := b.(Int)
	if aIsInt && bIsInt {
		r, err := intOp(int64(ai), int64(bi))
		if err != nil {
			return nil, err
		}
		return Int(r), nil
	}
	af, aok := AsFloat(a)
	bf, bok := AsFloat(b)
	if !aok || !bok || !IsNumber(a) || !IsNumber(b) {
		return nil, errors.InvalidOperation(op, TypeName(a), TypeName(b))
	}
	r, err := floatOp(af, bf)
	if err != nil {
		return nil, err
	}
	return Float(r), nil
}

func Sub(a, b Value) (Value, error) {
	return numericOp("-", a, b,
		func(x, y int64) (int64, error) { return saturatingSub(x, y), nil },
		func(x, y float64) (float64, error) { return x - y, nil })
}

func Mul(a, b Value) (Value, error) {
	return numericOp("*", a, b,
		func(x, y int64) (int64, error) { return saturatingMul(x, y), nil },
		func(x, y float64) (float64, error) { return x * y, nil })
}

func Div(a, b Value) (Value, error) {
	return numericOp("/", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, errors.DivisionByZero()
			}
			if x == math.MinInt64 && y == -1 {
				return math.MaxInt64, nil
			}
			return x / y, nil
		},
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, errors.DivisionByZero()
			}
			return x / y, nil
		})
}

// Mod implements Euclidean modulo: the result always has the sign of the
// divisor's magnitude convention used by `mod` (non-negative remainder),
// per spec.md §4.1.
func Mod(a, b Value) (Value, error) {
	bi, ok := AsInt(b)
	if ok && IsInt(a) && IsInt(b) {
		if bi == 0 {
			return nil, errors.DivisionByZero()
		}
		ai, _ := AsInt(a)
		r := ai % bi
		if r < 0 {
			if bi > 0 {
				r += bi
			} else {
				r -= bi
			}
		}
		return Int(r), nil
	}
	af, aok := AsFloat(a)
	bf, bok := AsFloat(b)
	if !aok || !bok {
		return nil, errors.InvalidOperation("mod", TypeName(a), TypeName(b))
	}
	if bf == 0 {
		return nil, errors.DivisionByZero()
	}
	r := math.Mod(af, bf)
	if r < 0 {
		if bf > 0 {
			r += bf
		} else {
			r -= bf
		}
	}
	return Float(r), nil
}

// Rem implements truncating remainder (Common Lisp `rem` semantics):
// result takes the sign of the dividend.
func Rem(a, b Value) (Value, error) {
	return numericOp("rem", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, errors.DivisionByZero()
			}
			return x % y, nil
		},
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, errors.DivisionByZero()
			}
			return math.Mod(x, y), nil
		})
}

// Compare returns -1, 0, or 1 for a<b, a==b, a>b over numeric or string
// operands, widening Int/Float as needed. ok is false for non-comparable
// operand kinds.
func Compare(a, b Value) (result int, ok bool) {
	if IsNumber(a) && IsNumber(b) {
		af, _ := AsFloat(a)
		bf, _ := AsFloat(b)
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if sa, aok := a.(String); aok {
		if sb, bok := b.(String); bok {
			switch {
			case sa < sb:
				return -1, true
			case sa > sb:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}
