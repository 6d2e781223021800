package interp

import (
	"fmt"

	"github.com/mna/nelumbo/lang/token"
	"github.com/mna/nelumbo/lang/types"
)

// A RuntimeError is an error raised by the execution of valid source code:
// an operator applied to operands it does not accept, an undefined variable,
// a wrong call arity, a call of a non-callable value, a property access on a
// value without properties or a failed native assertion. It aborts the
// current Run invocation.
type RuntimeError struct {
	Expected string
	Found    string
	Pos      token.Position // the zero value means unknown
}

func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("runtime error: expected %s, found %s", e.Expected, e.Found)
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// An InternalError reports a broken interpreter invariant, such as a depth
// recorded by the resolver pointing to a frame that does not contain the
// name. It should be unreachable.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

// returnSignal unwinds a function body when a return statement executes. It
// travels through the error channel so that every nested evaluation
// propagates it without special cases, and the function call that started
// the body converts it back into a normal result. It is not user-visible: if
// it reaches the top level, the interpreter reports an internal error.
type returnSignal struct {
	value types.Value
}

func (e *returnSignal) Error() string {
	return "return outside of a function call"
}
