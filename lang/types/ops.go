package types

import (
	"fmt"

	"github.com/mna/nelumbo/lang/token"
)

// A TypeError reports an operator applied to operands it does not accept.
// The interpreter attaches the source position before surfacing it.
type TypeError struct {
	Expected string
	Found    string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

// Binary applies a binary operator to its operands. The supported operators
// are + - * / for arithmetic (with + also concatenating two strings),
// == and != for equality, and < <= > >= for ordering.
//
// Division follows IEEE semantics: dividing by zero produces an infinity or
// NaN, not an error.
func Binary(op token.Token, x, y Value) (Value, error) {
	switch op {
	case token.PLUS:
		switch x := x.(type) {
		case Number:
			if y, ok := y.(Number); ok {
				return x + y, nil
			}
		case String:
			if y, ok := y.(String); ok {
				return x + y, nil
			}
		}
		return nil, &TypeError{
			Expected: "string + string or number + number",
			Found:    fmt.Sprintf("%s + %s", x.Type(), y.Type()),
		}

	case token.MINUS, token.STAR, token.SLASH:
		xn, xok := x.(Number)
		yn, yok := y.(Number)
		if !xok || !yok {
			return nil, numberOperandsError(op, x, y)
		}
		switch op {
		case token.MINUS:
			return xn - yn, nil
		case token.STAR:
			return xn * yn, nil
		default:
			return xn / yn, nil
		}

	case token.EQEQ:
		return Bool(Equal(x, y)), nil
	case token.BANGEQ:
		return Bool(!Equal(x, y)), nil

	case token.LT, token.LE, token.GT, token.GE:
		return Compare(op, x, y)
	}

	return nil, fmt.Errorf("unknown binary operator: %s", op)
}

// Unary applies the unary - or ! operator to its operand.
func Unary(op token.Token, x Value) (Value, error) {
	switch op {
	case token.MINUS:
		n, ok := x.(Number)
		if !ok {
			return nil, &TypeError{Expected: "number", Found: x.Type()}
		}
		return -n, nil
	case token.BANG:
		return !x.Truth(), nil
	}
	return nil, fmt.Errorf("unknown unary operator: %s", op)
}

// Compare applies an ordering operator to its operands. Ordering is defined
// only between two numbers; any other pairing is a type error.
func Compare(op token.Token, x, y Value) (Value, error) {
	xn, xok := x.(Number)
	yn, yok := y.(Number)
	if !xok || !yok {
		return nil, numberOperandsError(op, x, y)
	}
	c := numberCmp(xn, yn)
	switch op {
	case token.LT:
		return Bool(c < 0), nil
	case token.LE:
		return Bool(c <= 0), nil
	case token.GT:
		return Bool(c > 0), nil
	case token.GE:
		return Bool(c >= 0), nil
	}
	return nil, fmt.Errorf("unknown comparison operator: %s", op)
}

// Equal reports whether two values are equal. Equality is structural for
// literals, custom for types that implement HasEqual (callables compare by
// name and arity), and reference identity otherwise. Values of different
// kinds are never equal.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case Number:
		y, ok := y.(Number)
		return ok && numberCmp(x, y) == 0
	case String, Bool, NilType:
		return x == y
	}
	if x, ok := x.(HasEqual); ok {
		eq, err := x.Equals(y)
		return err == nil && eq
	}
	return x == y
}

// Truth returns the truth value of v: only Nil and False are false.
func Truth(v Value) Bool { return v.Truth() }

func numberOperandsError(op token.Token, x, y Value) error {
	return &TypeError{
		Expected: fmt.Sprintf("number %s number", op),
		Found:    fmt.Sprintf("%s %s %s", x.Type(), op, y.Type()),
	}
}
