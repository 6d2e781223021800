// Package parser implements the parser that transforms source code into an
// abstract syntax tree (AST).
package parser

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/scanner"
	"github.com/mna/nelumbo/lang/token"
)

// ParseFiles is a helper function that parses the source files and returns
// the ASTs and any error encountered. The error, if non-nil, is guaranteed to
// be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) ([]*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var p parser
	res := make([]*ast.Chunk, 0, len(files))
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		p.init(file, b)
		res = append(res, p.parseChunk())
	}
	p.errors.Sort()
	return res, p.errors.Err()
}

// ParseChunk is a helper function that parses a single chunk from a slice of
// bytes and returns the AST and any error encountered. The chunk is parsed
// under the name specified in filename for position reporting. The error, if
// non-nil, is guaranteed to be a scanner.ErrorList.
func ParseChunk(ctx context.Context, filename string, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(filename, src)
	ch := p.parseChunk()
	p.errors.Sort()
	return ch, p.errors.Err()
}

// parser parses source files and generates an AST.
type parser struct {
	scanner  scanner.Scanner
	errors   scanner.ErrorList
	filename string

	// current token
	tok token.Token
	val token.Value
}

func (p *parser) init(filename string, src []byte) {
	p.filename = filename
	p.scanner.Init(filename, src, p.errors.Add)
	p.advance()
}

func (p *parser) parseChunk() *ast.Chunk {
	ch := ast.Chunk{Name: p.filename}
	for p.tok != token.EOF {
		if s := p.declaration(); s != nil {
			ch.Stmts = append(ch.Stmts, s)
		}
	}
	ch.EOF = p.val.Pos
	return &ch
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

// expect consumes the current token if it is of the required type and returns
// its position, otherwise it records an error and bails out of the current
// statement.
func (p *parser) expect(tok token.Token, context string) token.Pos {
	if p.tok != tok {
		p.bailout(p.val.Pos, "expected %#v in %s, found %#v", tok, context, p.tok)
	}
	pos := p.val.Pos
	p.advance()
	return pos
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errors.Add(pos.ToPosition(p.filename), fmt.Sprintf(format, args...))
}

// bail is the sentinel panic value used to unwind the parser to the nearest
// synchronization point after an error.
type bail struct{}

func (p *parser) bailout(pos token.Pos, format string, args ...interface{}) {
	p.errorf(pos, format, args...)
	panic(bail{})
}

// synchronize discards tokens until a likely statement boundary so that a
// single syntax error does not cascade into spurious ones.
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMI {
			p.advance()
			return
		}
		switch p.tok {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
