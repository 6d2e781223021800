package ast

import (
	"fmt"

	"github.com/mna/nelumbo/lang/token"
)

type (
	// BlockStmt represents a braced block of statements, which introduces a
	// new lexical scope.
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// ClassStmt represents a class declaration statement.
	ClassStmt struct {
		Class   token.Pos
		Name    *IdentExpr
		Lbrace  token.Pos
		Methods []*FuncStmt
		Rbrace  token.Pos
	}

	// ExprStmt represents an expression used as a statement, evaluated for
	// its side effects.
	ExprStmt struct {
		Expr Expr
	}

	// FuncStmt represents a function declaration statement. It is also used
	// for the methods of a ClassStmt, in which case Fun is the zero position
	// (methods have no leading "fun" keyword).
	FuncStmt struct {
		Fun    token.Pos
		Name   *IdentExpr
		Lparen token.Pos
		Params []*IdentExpr
		Rparen token.Pos
		Body   *BlockStmt
	}

	// IfStmt represents an if statement with an optional else branch. The
	// branches are single statements, typically blocks.
	IfStmt struct {
		If   token.Pos
		Cond Expr
		Then Stmt
		Else Stmt // may be nil
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Print token.Pos
		Expr  Expr
	}

	// ReturnStmt represents a return statement, valid only inside a function
	// or method body.
	ReturnStmt struct {
		Return token.Pos
		Expr   Expr // may be nil
	}

	// VarStmt represents a variable declaration statement with an optional
	// initializer.
	VarStmt struct {
		Var  token.Pos
		Name *IdentExpr
		Init Expr // may be nil
	}

	// WhileStmt represents a while loop statement. The parser desugars for
	// loops into a block with a while statement, so the interpreter only ever
	// sees while loops.
	WhileStmt struct {
		While token.Pos
		Cond  Expr
		Body  Stmt
	}
)

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace.Shift(1)
}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "class decl "+n.Name.Lit, map[string]int{"methods": len(n.Methods)})
}
func (n *ClassStmt) Span() (start, end token.Pos) {
	return n.Class, n.Rbrace.Shift(1)
}
func (n *ClassStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()                         {}

func (n *FuncStmt) Format(f fmt.State, verb rune) {
	lbl := "fun decl "
	if !n.Fun.IsValid() {
		lbl = "method "
	}
	format(f, verb, n, lbl+n.Name.Lit, map[string]int{"params": len(n.Params)})
}
func (n *FuncStmt) Span() (start, end token.Pos) {
	start = n.Fun
	if !start.IsValid() {
		start, _ = n.Name.Span()
	}
	_, end = n.Body.Span()
	return start, end
}
func (n *FuncStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}
func (n *FuncStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl += " else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end token.Pos) {
	_, end = n.Then.Span()
	if n.Else != nil {
		_, end = n.Else.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "print", nil) }
func (n *PrintStmt) Span() (start, end token.Pos) {
	_, end = n.Expr.Span()
	return n.Print, end
}
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *PrintStmt) stmt()          {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	var exprCount int
	if n.Expr != nil {
		exprCount = 1
	}
	format(f, verb, n, "return", map[string]int{"expr": exprCount})
}
func (n *ReturnStmt) Span() (start, end token.Pos) {
	end = n.Return.Shift(len(token.RETURN.String()))
	if n.Expr != nil {
		_, end = n.Expr.Span()
	}
	return n.Return, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	var initCount int
	if n.Init != nil {
		initCount = 1
	}
	format(f, verb, n, "var decl "+n.Name.Lit, map[string]int{"init": initCount})
}
func (n *VarStmt) Span() (start, end token.Pos) {
	_, end = n.Name.Span()
	if n.Init != nil {
		_, end = n.Init.Span()
	}
	return n.Var, end
}
func (n *VarStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}
