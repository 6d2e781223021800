// Package resolver implements the static resolution pass that runs between
// parsing and interpretation. It walks the AST and computes, for every
// variable reference, assignment target and "this" reference, the number of
// environment hops between the use site and the frame that defines the name.
// The interpreter uses the recorded depths to look names up directly in the
// defining frame, so that a closure keeps seeing the frame that was current
// at capture time even when enclosing blocks later define new names.
//
// # Scopes
//
// The resolver maintains a stack of lexical scopes, one per block, function
// body or class body. Each scope maps a name to its definition state: a name
// is "declared" while its initializer is being resolved and "defined" once it
// is usable. Reading a name in its own initializer, re-declaring a name in
// the same non-global scope, and returning from outside a function are the
// static errors of the language.
//
// Names that resolve in no enclosing scope are left out of the bindings map
// and are looked up in the globals frame at runtime; this is not a static
// error since the name may be defined by the time the reference executes.
package resolver

import (
	"context"
	"fmt"
	"math"

	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/scanner"
	"github.com/mna/nelumbo/lang/token"
)

// Bindings is the resolution map produced by the resolver and consumed by
// the interpreter. It is keyed by use-site identity - the *ast.IdentExpr or
// *ast.ThisExpr node pointer - and records the number of environment hops
// from the use site's frame to the defining frame. A use site absent from
// the map resolves against the globals frame.
type Bindings map[ast.Expr]uint8

// ResolveChunk resolves the bindings used in the chunk. On success, the
// returned map is ready to be passed to the interpreter along with the
// chunk.
//
// An AST that resulted in errors in the parse phase should never be passed
// to the resolver, the behavior is undefined.
//
// The returned error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ResolveChunk(ctx context.Context, ch *ast.Chunk) (Bindings, error) {
	r := resolver{
		filename: ch.Name,
		bindings: make(Bindings),
	}
	r.stmts(ch.Stmts)
	r.errors.Sort()
	return r.bindings, r.errors.Err()
}

// funcKind tracks what kind of function body is being resolved, to reject
// return statements at the top level.
type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
)

type resolver struct {
	filename string
	errors   scanner.ErrorList
	bindings Bindings

	// scopes is the stack of lexical scopes, innermost last. The value is
	// false while the name's initializer is being resolved, true once the
	// name is defined. The global scope is not represented on the stack.
	scopes []map[string]bool

	fn funcKind
}

func (r *resolver) errorf(p token.Pos, format string, args ...interface{}) {
	r.errors.Add(p.ToPosition(r.filename), fmt.Sprintf(format, args...))
}

func (r *resolver) push() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts the name in the innermost scope, not yet usable. It is a
// no-op at the global scope, where redefinition is allowed.
func (r *resolver) declare(ident *ast.IdentExpr) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[ident.Lit]; ok {
		r.errorf(ident.Start, "already declared in this scope: %s", ident.Lit)
		return
	}
	scope[ident.Lit] = false
}

// define marks the name as fully usable in the innermost scope.
func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *resolver) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		r.push()
		r.stmts(stmt.Stmts)
		r.pop()

	case *ast.ClassStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name.Lit)

		// methods resolve with "this" defined in a scope that encloses each
		// method's parameter scope, matching the frame that binding a method
		// to an instance inserts at runtime.
		r.push()
		r.define(token.THIS.String())
		for _, m := range stmt.Methods {
			r.function(m, funcMethod)
		}
		r.pop()

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.FuncStmt:
		// the function name is usable inside its own body, for recursion
		r.declare(stmt.Name)
		r.define(stmt.Name.Lit)
		r.function(stmt, funcFunction)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.ReturnStmt:
		if r.fn == funcNone {
			r.errorf(stmt.Return, "invalid return outside of a function")
		}
		if stmt.Expr != nil {
			r.expr(stmt.Expr)
		}

	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Init != nil {
			r.expr(stmt.Init)
		}
		r.define(stmt.Name.Lit)

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Body)

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

// function resolves a function or method body. The parameters live in their
// own scope and the body statements resolve directly in that scope, matching
// the single frame the interpreter creates per call.
func (r *resolver) function(fn *ast.FuncStmt, kind funcKind) {
	prev := r.fn
	r.fn = kind
	r.push()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param.Lit)
	}
	r.stmts(fn.Body.Stmts)
	r.pop()
	r.fn = prev
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		r.expr(expr.Right)
		r.resolveLocal(expr.Left, expr.Left.Lit)

	case *ast.BinaryExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.CallExpr:
		r.expr(expr.Fn)
		for _, e := range expr.Args {
			r.expr(e)
		}

	case *ast.DotExpr:
		// the property name resolves at runtime on the left value
		r.expr(expr.Left)

	case *ast.IdentExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Lit]; ok && !defined {
				r.errorf(expr.Start, "cannot read %s in its own initializer", expr.Lit)
			}
		}
		r.resolveLocal(expr, expr.Lit)

	case *ast.LiteralExpr:
		// nothing to do

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.ParenExpr:
		r.expr(expr.Expr)

	case *ast.SetExpr:
		r.expr(expr.Right)
		r.expr(expr.Left)

	case *ast.ThisExpr:
		r.resolveLocal(expr, token.THIS.String())

	case *ast.UnaryExpr:
		r.expr(expr.Right)

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// resolveLocal scans the scopes innermost first and records the hop count to
// the scope that contains the name, clamped to the uint8 range, keyed by the
// use-site node. Names found
// in no scope are left unrecorded and resolve against globals at runtime.
func (r *resolver) resolveLocal(key ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; !ok {
			continue
		}
		depth := len(r.scopes) - 1 - i
		if depth > math.MaxUint8 {
			depth = math.MaxUint8
		}
		r.bindings[key] = uint8(depth)
		return
	}
}
