// Package interp implements the tree-walking interpreter that executes a
// resolved AST. It owns the chain of environment frames rooted at the
// globals frame and drives evaluation by direct type switch over the AST
// nodes - statements execute for their effects, expressions evaluate to
// values of the types package.
//
// The interpreter is single-threaded and synchronous: it has exclusive
// access to its environment chain and resolution map for the duration of
// Run, statements execute in source order, and sub-expressions evaluate
// left to right.
package interp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dolthub/swiss"
	"github.com/mna/nelumbo/internal/logging"
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/resolver"
	"github.com/mna/nelumbo/lang/token"
	"github.com/mna/nelumbo/lang/types"
)

// Interp executes resolved chunks. The exported fields may be set before the
// first call to Run; the zero value of each selects a sensible default. An
// Interp retains its globals frame across calls to Run, so an interactive
// session can execute each line as an independent chunk against shared
// globals.
type Interp struct {
	// Stdout is where the print statement writes. If nil, os.Stdout is used.
	Stdout io.Writer

	// Log receives trace events on state transitions. If nil, nothing is
	// logged.
	Log *slog.Logger

	globals  *Environment
	env      *Environment
	locals   resolver.Bindings
	filename string
}

// New returns an interpreter with the universe bindings pre-defined in its
// globals frame.
func New() *Interp {
	g := NewEnvironment(nil)
	for name, v := range Universe {
		g.Define(name, v)
	}
	return &Interp{globals: g, env: g}
}

// Run executes the statements of the chunk in order, stopping at the first
// error. The bindings must come from a successful resolution of this chunk;
// they are merged with the bindings of previously run chunks.
func (i *Interp) Run(ctx context.Context, ch *ast.Chunk, bindings resolver.Bindings) error {
	if i.locals == nil {
		i.locals = make(resolver.Bindings, len(bindings))
	}
	for k, d := range bindings {
		i.locals[k] = d
	}
	i.filename = ch.Name

	for _, s := range ch.Stmts {
		if err := i.execStmt(s); err != nil {
			if _, ok := err.(*returnSignal); ok {
				return &InternalError{Message: "return signal escaped to the top level"}
			}
			return err
		}
	}
	return nil
}

func (i *Interp) stdout() io.Writer {
	if i.Stdout != nil {
		return i.Stdout
	}
	return os.Stdout
}

func (i *Interp) trace(msg string, args ...any) {
	if i.Log != nil {
		i.Log.Log(context.Background(), logging.LevelTrace, msg, args...)
	}
}

func (i *Interp) position(pos token.Pos) token.Position {
	return pos.ToPosition(i.filename)
}

// execBlock executes the statements in the provided frame and restores the
// prior current frame on exit, whether the statements complete normally or
// unwind with an error or a return signal.
func (i *Interp) execBlock(stmts []ast.Stmt, env *Environment) error {
	prev := i.env
	i.env = env
	i.trace("enter scope")
	defer func() {
		i.env = prev
		i.trace("leave scope")
	}()

	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interp) execStmt(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		return i.execBlock(stmt.Stmts, NewEnvironment(i.env))

	case *ast.ClassStmt:
		return i.execClass(stmt)

	case *ast.ExprStmt:
		_, err := i.evalExpr(stmt.Expr)
		return err

	case *ast.FuncStmt:
		fn := &Function{decl: stmt, closure: i.env}
		i.env.Define(stmt.Name.Lit, fn)
		i.trace("define", "name", stmt.Name.Lit, "type", fn.Type())
		return nil

	case *ast.IfStmt:
		cond, err := i.evalExpr(stmt.Cond)
		if err != nil {
			return err
		}
		if cond.Truth() {
			return i.execStmt(stmt.Then)
		}
		if stmt.Else != nil {
			return i.execStmt(stmt.Else)
		}
		return nil

	case *ast.PrintStmt:
		v, err := i.evalExpr(stmt.Expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.stdout(), v.String())
		return err

	case *ast.ReturnStmt:
		var v types.Value = types.Nil
		if stmt.Expr != nil {
			var err error
			if v, err = i.evalExpr(stmt.Expr); err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.VarStmt:
		var v types.Value = types.Nil
		if stmt.Init != nil {
			var err error
			if v, err = i.evalExpr(stmt.Init); err != nil {
				return err
			}
		}
		i.env.Define(stmt.Name.Lit, v)
		i.trace("define", "name", stmt.Name.Lit, "type", v.Type())
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(stmt.Cond)
			if err != nil {
				return err
			}
			if !cond.Truth() {
				return nil
			}
			if err := i.execStmt(stmt.Body); err != nil {
				return err
			}
		}

	default:
		return &InternalError{Message: fmt.Sprintf("unexpected stmt %T", stmt)}
	}
}

// execClass defines the class name to nil first, so that methods can refer
// to the class by name, then builds the method table and assigns the class
// value to the name.
func (i *Interp) execClass(stmt *ast.ClassStmt) error {
	i.env.Define(stmt.Name.Lit, types.Nil)

	methods := swiss.NewMap[string, *Function](uint32(len(stmt.Methods)) + 1)
	for _, m := range stmt.Methods {
		methods.Put(m.Name.Lit, &Function{decl: m, closure: i.env})
	}
	cls := &Class{name: stmt.Name.Lit, methods: methods}

	if !i.env.Assign(stmt.Name.Lit, cls) {
		return &InternalError{Message: fmt.Sprintf("class name %q vanished during declaration", stmt.Name.Lit)}
	}
	i.trace("define", "name", stmt.Name.Lit, "type", cls.Type())
	return nil
}

func (i *Interp) evalExpr(expr ast.Expr) (types.Value, error) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		return i.evalAssign(expr)

	case *ast.BinaryExpr:
		left, err := i.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		v, err := types.Binary(expr.Op, left, right)
		return v, i.operandError(err, expr.OpPos)

	case *ast.CallExpr:
		return i.evalCall(expr)

	case *ast.DotExpr:
		return i.evalDot(expr)

	case *ast.IdentExpr:
		return i.lookupVariable(expr, expr.Lit, expr.Start)

	case *ast.LiteralExpr:
		switch expr.Type {
		case token.NUMBER:
			return types.Number(expr.Num), nil
		case token.STRING:
			return types.String(expr.Str), nil
		case token.TRUE:
			return types.True, nil
		case token.FALSE:
			return types.False, nil
		default:
			return types.Nil, nil
		}

	case *ast.LogicalExpr:
		left, err := i.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		if expr.Op == token.OR {
			if left.Truth() {
				return left, nil
			}
		} else if !left.Truth() {
			return left, nil
		}
		return i.evalExpr(expr.Right)

	case *ast.ParenExpr:
		return i.evalExpr(expr.Expr)

	case *ast.SetExpr:
		return i.evalSet(expr)

	case *ast.ThisExpr:
		return i.lookupVariable(expr, token.THIS.String(), expr.Start)

	case *ast.UnaryExpr:
		right, err := i.evalExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		v, err := types.Unary(expr.Op, right)
		return v, i.operandError(err, expr.OpPos)

	default:
		return nil, &InternalError{Message: fmt.Sprintf("unexpected expr %T", expr)}
	}
}

// evalAssign assigns at the resolved depth, or on the globals frame when the
// target did not resolve to a local. The result is the assigned value.
func (i *Interp) evalAssign(expr *ast.AssignExpr) (types.Value, error) {
	v, err := i.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	name := expr.Left.Lit
	if depth, ok := i.locals[expr.Left]; ok {
		if err := i.env.AssignAt(depth, name, v); err != nil {
			return nil, err
		}
	} else if !i.globals.Assign(name, v) {
		return nil, i.undefinedVariable(name, expr.Left.Start)
	}
	i.trace("assign", "name", name, "type", v.Type())
	return v, nil
}

func (i *Interp) evalCall(expr *ast.CallExpr) (types.Value, error) {
	fn, err := i.evalExpr(expr.Fn)
	if err != nil {
		return nil, err
	}

	args := make([]types.Value, len(expr.Args))
	for ix, arg := range expr.Args {
		if args[ix], err = i.evalExpr(arg); err != nil {
			return nil, err
		}
	}

	i.trace("call", "callee", fn.String(), "args", len(args))
	v, err := Call(i, fn, args)
	if re, ok := err.(*RuntimeError); ok && !re.Pos.IsValid() {
		re.Pos = i.position(expr.Lparen)
	}
	return v, err
}

// evalDot reads a property: the field if the instance has one, else the
// class method bound to the instance.
func (i *Interp) evalDot(expr *ast.DotExpr) (types.Value, error) {
	obj, err := i.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}

	attrs, ok := obj.(types.HasAttrs)
	if !ok {
		return nil, &RuntimeError{
			Expected: "a value with properties",
			Found:    obj.Type(),
			Pos:      i.position(expr.Dot),
		}
	}

	v, err := attrs.Attr(expr.Name.Lit)
	if err == nil && v == nil {
		return nil, i.noSuchAttr(expr.Name.Lit, expr.Name.Start)
	}
	if _, ok := err.(types.NoSuchAttrError); ok {
		return nil, i.noSuchAttr(expr.Name.Lit, expr.Name.Start)
	}
	return v, err
}

// evalSet writes a property. The object is evaluated and checked before the
// value is evaluated.
func (i *Interp) evalSet(expr *ast.SetExpr) (types.Value, error) {
	obj, err := i.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}

	setter, ok := obj.(types.HasSetField)
	if !ok {
		return nil, &RuntimeError{
			Expected: "a value with settable fields",
			Found:    obj.Type(),
			Pos:      i.position(expr.Dot),
		}
	}

	v, err := i.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}
	if err := setter.SetField(expr.Name.Lit, v); err != nil {
		return nil, err
	}
	i.trace("set field", "name", expr.Name.Lit, "type", v.Type())
	return v, nil
}

// lookupVariable reads a variable at its resolved depth, or from the globals
// frame when the use site did not resolve to a local.
func (i *Interp) lookupVariable(key ast.Expr, name string, pos token.Pos) (types.Value, error) {
	if depth, ok := i.locals[key]; ok {
		return i.env.GetAt(depth, name)
	}
	v, ok := i.globals.Get(name)
	if !ok {
		return nil, i.undefinedVariable(name, pos)
	}
	return v, nil
}

func (i *Interp) undefinedVariable(name string, pos token.Pos) error {
	return &RuntimeError{
		Expected: "a defined variable",
		Found:    fmt.Sprintf("undefined variable '%s'", name),
		Pos:      i.position(pos),
	}
}

func (i *Interp) noSuchAttr(name string, pos token.Pos) error {
	return &RuntimeError{
		Expected: fmt.Sprintf("method or field named %s", name),
		Found:    "no such method or field",
		Pos:      i.position(pos),
	}
}

// operandError converts a type error from the operator dispatch into a
// runtime error carrying the operator's position.
func (i *Interp) operandError(err error, pos token.Pos) error {
	if err == nil {
		return nil
	}
	if te, ok := err.(*types.TypeError); ok {
		return &RuntimeError{Expected: te.Expected, Found: te.Found, Pos: i.position(pos)}
	}
	return err
}
