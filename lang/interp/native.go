package interp

import (
	"fmt"
	"time"

	"github.com/mna/nelumbo/lang/types"
)

// A NativeFunc is a function implemented in Go and exposed to the language
// through the universe bindings.
type NativeFunc struct {
	name  string
	arity int
	fn    func(i *Interp, args []types.Value) (types.Value, error)
}

var (
	_ Callable       = (*NativeFunc)(nil)
	_ types.HasEqual = (*NativeFunc)(nil)
)

// NewNativeFunc returns a native function with the provided name and arity.
// The arguments passed to fn are guaranteed to match the arity.
func NewNativeFunc(name string, arity int, fn func(*Interp, []types.Value) (types.Value, error)) *NativeFunc {
	return &NativeFunc{name: name, arity: arity, fn: fn}
}

func (nf *NativeFunc) String() string    { return "<native fn " + nf.name + ">" }
func (nf *NativeFunc) Type() string      { return "function" }
func (nf *NativeFunc) Truth() types.Bool { return types.True }
func (nf *NativeFunc) Name() string      { return nf.name }
func (nf *NativeFunc) Arity() int        { return nf.arity }

func (nf *NativeFunc) Equals(y types.Value) (bool, error) {
	return callableEqual(nf, y), nil
}

func (nf *NativeFunc) CallInternal(i *Interp, args []types.Value) (types.Value, error) {
	return nf.fn(i, args)
}

// Universe defines the set of native bindings pre-defined in the globals
// frame of every interpreter.
var Universe = map[string]types.Value{
	"clock":     NewNativeFunc("clock", 0, clock),
	"assert_eq": NewNativeFunc("assert_eq", 2, assertEq),
}

// IsUniverse returns true if name is one of the universe bindings.
func IsUniverse(name string) bool {
	_, ok := Universe[name]
	return ok
}

// clock returns the number of seconds since the Unix epoch.
func clock(i *Interp, args []types.Value) (types.Value, error) {
	return types.Number(time.Now().Unix()), nil
}

// assertEq returns nil if both arguments are equal, and fails with a runtime
// error carrying both printed values otherwise.
func assertEq(i *Interp, args []types.Value) (types.Value, error) {
	x, y := args[0], args[1]
	if types.Equal(x, y) {
		return types.Nil, nil
	}
	return nil, &RuntimeError{
		Expected: fmt.Sprintf("%s == %s", x, y),
		Found:    fmt.Sprintf("%s != %s", x, y),
	}
}
