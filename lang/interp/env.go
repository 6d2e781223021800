package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/nelumbo/lang/types"
)

// An Environment is one frame of the scope chain: a table of name to value
// bindings plus a pointer to the enclosing frame. Frames form a tree rooted
// at the globals frame. A frame owns its table exclusively but shares its
// parent: closures capture the frame that was current at declaration time,
// so the interpreter's current frame and a closure's frame may point into
// the same chain. A frame stays reachable for as long as any closure or
// active call holds it.
type Environment struct {
	values *swiss.Map[string, types.Value]
	parent *Environment
}

// NewEnvironment returns an empty frame enclosed by parent, which is nil
// only for the globals frame.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: swiss.NewMap[string, types.Value](8),
		parent: parent,
	}
}

// Define unconditionally binds name in this frame. Redefining a name in the
// same frame silently overwrites it.
func (e *Environment) Define(name string, v types.Value) {
	e.values.Put(name, v)
}

// Assign sets name in the closest frame that already contains it, searching
// from this frame outward. It returns false if no frame contains the name.
func (e *Environment) Assign(name string, v types.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values.Get(name); ok {
			env.values.Put(name, v)
			return true
		}
	}
	return false
}

// Get returns the value of name from the closest frame that contains it,
// searching from this frame outward.
func (e *Environment) Get(name string) (types.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// GetAt returns the value of name in the frame exactly depth hops up the
// chain. The resolver guarantees the name is present there; its absence is
// an internal error.
func (e *Environment) GetAt(depth uint8, name string) (types.Value, error) {
	env := e.ancestor(depth)
	if env == nil {
		return nil, &InternalError{Message: fmt.Sprintf("no frame at depth %d for variable %q", depth, name)}
	}
	v, ok := env.values.Get(name)
	if !ok {
		return nil, &InternalError{Message: fmt.Sprintf("expected variable %q at depth %d", name, depth)}
	}
	return v, nil
}

// AssignAt sets name in the frame exactly depth hops up the chain. The
// resolver guarantees the name is present there; its absence is an internal
// error.
func (e *Environment) AssignAt(depth uint8, name string, v types.Value) error {
	env := e.ancestor(depth)
	if env == nil {
		return &InternalError{Message: fmt.Sprintf("no frame at depth %d for variable %q", depth, name)}
	}
	if _, ok := env.values.Get(name); !ok {
		return &InternalError{Message: fmt.Sprintf("expected variable %q at depth %d", name, depth)}
	}
	env.values.Put(name, v)
	return nil
}

// ancestor returns the frame depth hops up the chain, this frame itself for
// depth 0, or nil if the chain is shorter than depth.
func (e *Environment) ancestor(depth uint8) *Environment {
	env := e
	for ; depth > 0 && env != nil; depth-- {
		env = env.parent
	}
	return env
}
