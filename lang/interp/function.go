package interp

import (
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/token"
	"github.com/mna/nelumbo/lang/types"
)

// A Function is a function defined by a function declaration or a class
// method. It pairs the declaration with the environment frame captured at
// declaration time, which makes it a closure.
type Function struct {
	decl    *ast.FuncStmt
	closure *Environment
}

var (
	_ Callable       = (*Function)(nil)
	_ types.HasEqual = (*Function)(nil)
)

func (fn *Function) String() string { return "<fn " + fn.decl.Name.Lit + ">" }
func (fn *Function) Type() string   { return "function" }
func (fn *Function) Truth() types.Bool {
	return types.True
}

func (fn *Function) Name() string { return fn.decl.Name.Lit }
func (fn *Function) Arity() int   { return len(fn.decl.Params) }

func (fn *Function) Equals(y types.Value) (bool, error) {
	return callableEqual(fn, y), nil
}

// CallInternal executes the function body in a new frame enclosed by the
// closure frame, with each parameter bound to the corresponding argument. A
// return statement unwinds the body through the return signal, which is
// converted back into the call's result here; falling off the end of the
// body produces nil.
func (fn *Function) CallInternal(i *Interp, args []types.Value) (types.Value, error) {
	env := NewEnvironment(fn.closure)
	for ix, param := range fn.decl.Params {
		env.Define(param.Lit, args[ix])
	}

	if err := i.execBlock(fn.decl.Body.Stmts, env); err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return types.Nil, nil
}

// Bind returns a copy of the function whose closure is a fresh frame that
// defines "this" as the instance and is enclosed by the original closure.
// This is how property access produces bound methods without reifying them
// at class declaration time.
func (fn *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(fn.closure)
	env.Define(token.THIS.String(), inst)
	return &Function{decl: fn.decl, closure: env}
}
