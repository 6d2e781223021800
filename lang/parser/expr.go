package parser

import (
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/token"
)

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses a (right-associative) assignment or anything of higher
// precedence. The left-hand side is parsed as an expression and then
// validated: a variable reference becomes an AssignExpr, a property read
// becomes a SetExpr, anything else is an invalid assignment target.
func (p *parser) assignment() ast.Expr {
	left := p.logicOr()
	if p.tok != token.EQ {
		return left
	}

	eq := p.val.Pos
	p.advance()
	right := p.assignment()

	switch left := left.(type) {
	case *ast.IdentExpr:
		return &ast.AssignExpr{Left: left, AssignPos: eq, Right: right}
	case *ast.DotExpr:
		return &ast.SetExpr{Left: left.Left, Dot: left.Dot, Name: left.Name, AssignPos: eq, Right: right}
	default:
		p.errorf(eq, "invalid assignment target")
		return left
	}
}

func (p *parser) logicOr() ast.Expr {
	left := p.logicAnd()
	for p.tok == token.OR {
		op, pos := p.tok, p.val.Pos
		p.advance()
		left = &ast.LogicalExpr{Left: left, Op: op, OpPos: pos, Right: p.logicAnd()}
	}
	return left
}

func (p *parser) logicAnd() ast.Expr {
	left := p.equality()
	for p.tok == token.AND {
		op, pos := p.tok, p.val.Pos
		p.advance()
		left = &ast.LogicalExpr{Left: left, Op: op, OpPos: pos, Right: p.equality()}
	}
	return left
}

func (p *parser) equality() ast.Expr {
	left := p.comparison()
	for p.tok == token.EQEQ || p.tok == token.BANGEQ {
		op, pos := p.tok, p.val.Pos
		p.advance()
		left = &ast.BinaryExpr{Left: left, Op: op, OpPos: pos, Right: p.comparison()}
	}
	return left
}

func (p *parser) comparison() ast.Expr {
	left := p.term()
	for p.tok == token.GT || p.tok == token.GE || p.tok == token.LT || p.tok == token.LE {
		op, pos := p.tok, p.val.Pos
		p.advance()
		left = &ast.BinaryExpr{Left: left, Op: op, OpPos: pos, Right: p.term()}
	}
	return left
}

func (p *parser) term() ast.Expr {
	left := p.factor()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op, pos := p.tok, p.val.Pos
		p.advance()
		left = &ast.BinaryExpr{Left: left, Op: op, OpPos: pos, Right: p.factor()}
	}
	return left
}

func (p *parser) factor() ast.Expr {
	left := p.unary()
	for p.tok == token.STAR || p.tok == token.SLASH {
		op, pos := p.tok, p.val.Pos
		p.advance()
		left = &ast.BinaryExpr{Left: left, Op: op, OpPos: pos, Right: p.unary()}
	}
	return left
}

func (p *parser) unary() ast.Expr {
	if p.tok == token.BANG || p.tok == token.MINUS {
		op, pos := p.tok, p.val.Pos
		p.advance()
		return &ast.UnaryExpr{Op: op, OpPos: pos, Right: p.unary()}
	}
	return p.call()
}

// call parses a primary expression followed by any number of call argument
// lists and property accesses.
func (p *parser) call() ast.Expr {
	e := p.primary()
	for {
		switch p.tok {
		case token.LPAREN:
			call := ast.CallExpr{Fn: e, Lparen: p.val.Pos}
			p.advance()
			for p.tok != token.RPAREN && p.tok != token.EOF {
				if len(call.Args) > 0 {
					p.expect(token.COMMA, "call arguments")
				}
				if len(call.Args) >= maxParams {
					p.errorf(p.val.Pos, "more than %d arguments", maxParams)
				}
				call.Args = append(call.Args, p.expression())
			}
			call.Rparen = p.expect(token.RPAREN, "call arguments")
			e = &call

		case token.DOT:
			dot := p.val.Pos
			p.advance()
			e = &ast.DotExpr{Left: e, Dot: dot, Name: p.ident("property access")}

		default:
			return e
		}
	}
}

func (p *parser) primary() ast.Expr {
	switch p.tok {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NIL:
		e := ast.LiteralExpr{
			Type:  p.tok,
			Start: p.val.Pos,
			Raw:   p.val.Raw,
			Num:   p.val.Num,
			Str:   p.val.Str,
		}
		p.advance()
		return &e

	case token.THIS:
		e := ast.ThisExpr{Start: p.val.Pos}
		p.advance()
		return &e

	case token.IDENT:
		return p.ident("expression")

	case token.LPAREN:
		e := ast.ParenExpr{Lparen: p.val.Pos}
		p.advance()
		e.Expr = p.expression()
		e.Rparen = p.expect(token.RPAREN, "parenthesized expression")
		return &e
	}

	p.bailout(p.val.Pos, "expected expression, found %#v", p.tok)
	return nil
}
