package types

import "strconv"

// Number is the type of a floating point number. It is the only numeric type
// of the language; integral values print without a fractional part and
// values always display in plain decimal form, never in scientific notation.
type Number float64

var (
	_ Value   = Number(0)
	_ Ordered = Number(0)
)

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n Number) Type() string { return "number" }
func (n Number) Truth() Bool  { return True }

// Cmp implements comparison of two Number values.
func (n Number) Cmp(v Value) (int, error) {
	m := v.(Number)
	return numberCmp(n, m), nil
}

// numberCmp performs a three-valued comparison on numbers, which are totally
// ordered with NaN > +Inf. Total ordering makes NaN equal to itself, which
// keeps equality reflexive for all values.
func numberCmp(x, y Number) int {
	if x > y {
		return +1
	} else if x < y {
		return -1
	} else if x == y {
		return 0
	}

	// At least one operand is NaN.
	if x == x {
		return -1 // y is NaN
	} else if y == y {
		return +1 // x is NaN
	}
	return 0 // both NaN
}
