package parser

import (
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/token"
)

// maxParams is the maximum number of parameters and call arguments, so that
// every arity fits in an 8-bit count.
const maxParams = 255

// declaration parses a class, function or variable declaration, or any other
// statement. On a syntax error it synchronizes to the next statement boundary
// and returns nil.
func (p *parser) declaration() (s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bail); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()

	switch p.tok {
	case token.CLASS:
		return p.classDecl()
	case token.FUN:
		return p.funDecl()
	case token.VAR:
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	st := ast.ClassStmt{Class: p.val.Pos}
	p.advance()
	st.Name = p.ident("class declaration")
	st.Lbrace = p.expect(token.LBRACE, "class declaration")
	for p.tok != token.RBRACE && p.tok != token.EOF {
		st.Methods = append(st.Methods, p.function("method", token.Pos(0)))
	}
	st.Rbrace = p.expect(token.RBRACE, "class declaration")
	return &st
}

func (p *parser) funDecl() ast.Stmt {
	fn := p.val.Pos
	p.advance()
	return p.function("function declaration", fn)
}

// function parses a named function starting at the name (the fun keyword, if
// any, is already consumed). Methods pass the zero position as fn.
func (p *parser) function(context string, fn token.Pos) *ast.FuncStmt {
	st := ast.FuncStmt{Fun: fn}
	st.Name = p.ident(context)
	st.Lparen = p.expect(token.LPAREN, context)
	for p.tok != token.RPAREN && p.tok != token.EOF {
		if len(st.Params) > 0 {
			p.expect(token.COMMA, context)
		}
		if len(st.Params) >= maxParams {
			p.errorf(p.val.Pos, "more than %d parameters", maxParams)
		}
		st.Params = append(st.Params, p.ident("parameter"))
	}
	st.Rparen = p.expect(token.RPAREN, context)
	st.Body = p.block()
	return &st
}

func (p *parser) varDecl() ast.Stmt {
	st := ast.VarStmt{Var: p.val.Pos}
	p.advance()
	st.Name = p.ident("variable declaration")
	if p.tok == token.EQ {
		p.advance()
		st.Init = p.expression()
	}
	p.expect(token.SEMI, "variable declaration")
	return &st
}

func (p *parser) statement() ast.Stmt {
	switch p.tok {
	case token.FOR:
		return p.forStmt()
	case token.IF:
		return p.ifStmt()
	case token.PRINT:
		st := ast.PrintStmt{Print: p.val.Pos}
		p.advance()
		st.Expr = p.expression()
		p.expect(token.SEMI, "print statement")
		return &st
	case token.RETURN:
		st := ast.ReturnStmt{Return: p.val.Pos}
		p.advance()
		if p.tok != token.SEMI {
			st.Expr = p.expression()
		}
		p.expect(token.SEMI, "return statement")
		return &st
	case token.WHILE:
		st := ast.WhileStmt{While: p.val.Pos}
		p.advance()
		p.expect(token.LPAREN, "while statement")
		st.Cond = p.expression()
		p.expect(token.RPAREN, "while statement")
		st.Body = p.statement()
		return &st
	case token.LBRACE:
		return p.block()
	default:
		st := ast.ExprStmt{Expr: p.expression()}
		p.expect(token.SEMI, "expression statement")
		return &st
	}
}

func (p *parser) block() *ast.BlockStmt {
	st := ast.BlockStmt{Lbrace: p.expect(token.LBRACE, "block")}
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if s := p.declaration(); s != nil {
			st.Stmts = append(st.Stmts, s)
		}
	}
	st.Rbrace = p.expect(token.RBRACE, "block")
	return &st
}

// forStmt parses a for loop and desugars it into the equivalent block and
// while statements, so that no dedicated for node exists in the AST:
//
//	{ init; while (cond) { body; incr; } }
func (p *parser) forStmt() ast.Stmt {
	forPos := p.val.Pos
	p.advance()
	p.expect(token.LPAREN, "for statement")

	var init ast.Stmt
	switch p.tok {
	case token.SEMI:
		p.advance()
	case token.VAR:
		init = p.varDecl()
	default:
		init = &ast.ExprStmt{Expr: p.expression()}
		p.expect(token.SEMI, "for statement")
	}

	var cond ast.Expr
	if p.tok != token.SEMI {
		cond = p.expression()
	} else {
		cond = &ast.LiteralExpr{Type: token.TRUE, Start: forPos, Raw: token.TRUE.String()}
	}
	p.expect(token.SEMI, "for statement")

	var incr ast.Expr
	if p.tok != token.RPAREN {
		incr = p.expression()
	}
	rparen := p.expect(token.RPAREN, "for statement")

	body := p.statement()
	if incr != nil {
		body = &ast.BlockStmt{
			Lbrace: rparen,
			Stmts:  []ast.Stmt{body, &ast.ExprStmt{Expr: incr}},
			Rbrace: rparen,
		}
	}
	var loop ast.Stmt = &ast.WhileStmt{While: forPos, Cond: cond, Body: body}
	if init != nil {
		loop = &ast.BlockStmt{Lbrace: forPos, Stmts: []ast.Stmt{init, loop}, Rbrace: rparen}
	}
	return loop
}

func (p *parser) ifStmt() ast.Stmt {
	st := ast.IfStmt{If: p.val.Pos}
	p.advance()
	p.expect(token.LPAREN, "if statement")
	st.Cond = p.expression()
	p.expect(token.RPAREN, "if statement")
	st.Then = p.statement()
	if p.tok == token.ELSE {
		p.advance()
		st.Else = p.statement()
	}
	return &st
}

func (p *parser) ident(context string) *ast.IdentExpr {
	e := ast.IdentExpr{Start: p.val.Pos, Lit: p.val.Str}
	p.expect(token.IDENT, context)
	return &e
}
