package ast

import (
	"fmt"
	"strconv"

	"github.com/mna/nelumbo/lang/token"
)

type (
	// AssignExpr represents an assignment to a variable, e.g. x = 1. The
	// result of the expression is the assigned value.
	AssignExpr struct {
		Left      *IdentExpr
		AssignPos token.Pos
		Right     Expr
	}

	// BinaryExpr represents a binary arithmetic, equality or comparison
	// expression, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// CallExpr represents a function or constructor call expression.
	CallExpr struct {
		Fn     Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}

	// DotExpr represents a property read, e.g. point.x. The property name is
	// looked up at runtime on the left value.
	DotExpr struct {
		Left Expr
		Dot  token.Pos
		Name *IdentExpr
	}

	// IdentExpr represents a variable reference.
	IdentExpr struct {
		Start token.Pos
		Lit   string
	}

	// LiteralExpr represents a number, string, boolean or nil literal. Type is
	// one of NUMBER, STRING, TRUE, FALSE or NIL.
	LiteralExpr struct {
		Type  token.Token
		Start token.Pos
		Raw   string  // uninterpreted source text
		Num   float64 // value if Type == NUMBER
		Str   string  // value if Type == STRING
	}

	// LogicalExpr represents a short-circuiting "and" or "or" expression.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// ParenExpr represents a parenthesized (grouping) expression.
	ParenExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// SetExpr represents a property write, e.g. point.x = 1. It is produced by
	// the parser when the target of an assignment is a DotExpr.
	SetExpr struct {
		Left      Expr
		Dot       token.Pos
		Name      *IdentExpr
		AssignPos token.Pos
		Right     Expr
	}

	// ThisExpr represents the "this" keyword inside a method body.
	ThisExpr struct {
		Start token.Pos
	}

	// UnaryExpr represents a unary negation or logical not expression.
	UnaryExpr struct {
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}
)

func (n *AssignExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "assign "+n.Left.Lit, nil) }
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *AssignExpr) expr() {}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.GoString(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen.Shift(1)
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *DotExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "dot ."+n.Name.Lit, nil) }
func (n *DotExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Name.Span()
	return start, end
}
func (n *DotExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Name)
}
func (n *DotExpr) expr() {}

func (n *IdentExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "ident "+n.Lit, nil) }
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start.Shift(len(n.Lit))
}
func (n *IdentExpr) Walk(v Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	var lbl string
	switch n.Type {
	case token.NUMBER:
		lbl = "number " + n.Raw
	case token.STRING:
		lbl = "string " + strconv.Quote(n.Str)
	default:
		lbl = n.Type.String()
	}
	format(f, verb, n, lbl, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start.Shift(len(n.Raw))
}
func (n *LiteralExpr) Walk(v Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Op.String(), nil) }
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "paren", nil) }
func (n *ParenExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen.Shift(1)
}
func (n *ParenExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ParenExpr) expr()          {}

func (n *SetExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "set ."+n.Name.Lit, nil) }
func (n *SetExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Name)
	Walk(v, n.Right)
}
func (n *SetExpr) expr() {}

func (n *ThisExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "this", nil) }
func (n *ThisExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start.Shift(len(token.THIS.String()))
}
func (n *ThisExpr) Walk(v Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.OpPos, end
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryExpr) expr()          {}
