package interp

import (
	"fmt"

	"github.com/mna/nelumbo/lang/types"
)

// A Callable value f may be the operand of a call expression, f(x). Native
// functions, user functions and classes acting as constructors implement it.
// Clients should use the Call function, never the CallInternal method.
type Callable interface {
	types.Value

	// Name returns the name the callable was declared under.
	Name() string

	// Arity returns the number of arguments the callable accepts.
	Arity() int

	// CallInternal invokes the callable; the returned value replaces the call
	// expression.
	CallInternal(i *Interp, args []types.Value) (types.Value, error)
}

// Call invokes the callable value fn with the specified arguments. It fails
// with a RuntimeError if fn is not callable or if the number of arguments
// does not match its arity.
func Call(i *Interp, fn types.Value, args []types.Value) (types.Value, error) {
	c, ok := fn.(Callable)
	if !ok {
		return nil, &RuntimeError{
			Expected: "a function or class",
			Found:    fn.Type(),
		}
	}
	if len(args) != c.Arity() {
		return nil, &RuntimeError{
			Expected: fmt.Sprintf("%d arguments", c.Arity()),
			Found:    fmt.Sprintf("%d arguments", len(args)),
		}
	}

	res, err := c.CallInternal(i, args)
	if res == nil && err == nil {
		err = &InternalError{Message: fmt.Sprintf("nil result returned from %s", c.Name())}
	}
	return res, err
}

// callableEqual implements equality between callables: two callables are
// equal if they have the same name and arity, regardless of their kind.
func callableEqual(x Callable, y types.Value) bool {
	c, ok := y.(Callable)
	return ok && x.Name() == c.Name() && x.Arity() == c.Arity()
}
