package value

import (
	"math"
	"strconv"
)

// Number is a numeric value which remembers whether it was constructed from
// an integer or a floating-point literal so that round-tripping does not
// turn `2` into `2.0` or vice versa.
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

// IntNumber creates a Number from an integer.
func IntNumber(i int64) Number {
	return Number{i: i}
}

// FloatNumber creates a Number from a float.
func FloatNumber(f float64) Number {
	return Number{isFloat: true, f: f}
}

// ParseNumber parses a JSON number literal, preserving the more specific
// integer representation when the literal has no fraction or exponent.
func ParseNumber(literal string) (Number, error) {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return IntNumber(i), nil
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Number{}, err
	}

	return FloatNumber(f), nil
}

// IsFloat reports whether the number holds a floating-point representation.
func (n Number) IsFloat() bool {
	return n.isFloat
}

// Int64 returns the integer representation. Floats are truncated.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns the value as a float64.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// String renders the number as a JSON literal. Integral floats keep a
// trailing `.0` so they re-parse as floats.
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}

	if n.f == math.Trunc(n.f) && math.Abs(n.f) < 1e15 {
		return strconv.FormatFloat(n.f, 'f', 1, 64)
	}

	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// Equal reports numeric equality. An integer and a float compare equal when
// they denote the same point on the number line.
func (n Number) Equal(other Number) bool {
	return n.Compare(other) == 0
}

// Compare returns -1, 0 or 1 comparing numeric values.
func (n Number) Compare(other Number) int {
	if !n.isFloat && !other.isFloat {
		switch {
		case n.i < other.i:
			return -1
		case n.i > other.i:
			return 1
		default:
			return 0
		}
	}

	a, b := n.Float64(), other.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
