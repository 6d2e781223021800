// Package scanner implements the lexer that tokenizes source files for the
// parser to consume.
package scanner

import (
	"context"
	"fmt"
	goscanner "go/scanner"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/mna/nelumbo/lang/token"
)

type (
	Error     = goscanner.Error
	ErrorList = goscanner.ErrorList
)

var PrintError = goscanner.PrintError

// TokenAndValue combines the token type with the token value in the same
// struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles is a helper function that tokenizes the source files and returns
// the list of tokens, grouped by the file at the same index, and any error
// encountered. The error, if non-nil, is guaranteed to be an ErrorList.
func ScanFiles(ctx context.Context, files ...string) ([][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var (
		s  Scanner
		el ErrorList
	)

	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		s.Init(file, b, el.Add)
		tokensByFile[i] = appendTokens(tokensByFile[i], &s)
	}
	el.Sort()
	return tokensByFile, el.Err()
}

// ScanChunk is a helper function that tokenizes a single chunk of source from
// a slice of bytes, under the name specified in filename for position
// reporting. The error, if non-nil, is guaranteed to be an ErrorList.
func ScanChunk(ctx context.Context, filename string, src []byte) ([]TokenAndValue, error) {
	var (
		s  Scanner
		el ErrorList
	)
	s.Init(filename, src, el.Add)
	toks := appendTokens(nil, &s)
	el.Sort()
	return toks, el.Err()
}

func appendTokens(toks []TokenAndValue, s *Scanner) []TokenAndValue {
	var val token.Value
	for {
		tok := s.Scan(&val)
		toks = append(toks, TokenAndValue{Token: tok, Value: val})
		if tok == token.EOF {
			return toks
		}
	}
}

// Scanner tokenizes source files for the parser to consume.
type Scanner struct {
	// immutable state after Init
	filename string
	src      []byte
	err      func(pos token.Position, msg string)

	// mutable scanning state
	cur       rune // current character, -1 at end of file
	off       int  // offset in bytes of cur
	roff      int  // reading offset in bytes (position after cur)
	line, col int  // 1-based position of cur
}

// Init initializes the scanner to tokenize a new source buffer. The errHandler
// is called for each error encountered, with the position and message; it may
// be nil.
func (s *Scanner) Init(filename string, src []byte, errHandler func(token.Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler

	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line, s.col = 1, 0
	s.advance()
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.col++
		s.cur = -1
		return
	}

	s.off = s.roff

	// fast path if the rune is an ASCII char, no decoding necessary
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.pos(), "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.col++
	s.cur = r
}

func (s *Scanner) pos() token.Pos {
	return token.MakePos(s.line, s.col)
}

func (s *Scanner) error(pos token.Pos, msg string) {
	if s.err != nil {
		s.err(pos.ToPosition(s.filename), msg)
	}
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// Scan returns the next token and stores its value and position in v, which
// must be non-nil. It returns token.EOF once the end of the source is
// reached, and then forever after.
func (s *Scanner) Scan(v *token.Value) token.Token {
	s.skipWhitespaceAndComments()

	*v = token.Value{Pos: s.pos()}
	if s.cur < 0 {
		return token.EOF
	}

	cur, start := s.cur, s.off
	switch {
	case isIdentStart(cur):
		s.scanIdent()
		v.Raw = string(s.src[start:s.off])
		v.Str = v.Raw
		return token.LookupIdent(v.Raw)

	case isDigit(cur):
		s.scanNumber()
		v.Raw = string(s.src[start:s.off])
		n, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			s.error(v.Pos, fmt.Sprintf("invalid number literal: %s", v.Raw))
		}
		v.Num = n
		return token.NUMBER

	case cur == '"':
		ok := s.scanString()
		v.Raw = string(s.src[start:s.off])
		if ok {
			v.Str = v.Raw[1 : len(v.Raw)-1]
		}
		return token.STRING
	}

	// punctuation, always a single token even when invalid
	s.advance()
	tok := token.ILLEGAL
	switch cur {
	case '(':
		tok = token.LPAREN
	case ')':
		tok = token.RPAREN
	case '{':
		tok = token.LBRACE
	case '}':
		tok = token.RBRACE
	case ',':
		tok = token.COMMA
	case '.':
		tok = token.DOT
	case ';':
		tok = token.SEMI
	case '+':
		tok = token.PLUS
	case '-':
		tok = token.MINUS
	case '*':
		tok = token.STAR
	case '/':
		tok = token.SLASH
	case '!':
		tok = s.ifEq(token.BANGEQ, token.BANG)
	case '=':
		tok = s.ifEq(token.EQEQ, token.EQ)
	case '>':
		tok = s.ifEq(token.GE, token.GT)
	case '<':
		tok = s.ifEq(token.LE, token.LT)
	default:
		s.error(v.Pos, fmt.Sprintf("unexpected character %q", cur))
	}
	v.Raw = string(s.src[start:s.off])
	return tok
}

// ifEq consumes a trailing '=' and returns eq if present, otherwise returns
// noEq without advancing.
func (s *Scanner) ifEq(eq, noEq token.Token) token.Token {
	if s.cur == '=' {
		s.advance()
		return eq
	}
	return noEq
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case s.cur == ' ' || s.cur == '\t' || s.cur == '\r' || s.cur == '\n':
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur >= 0 {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *Scanner) scanIdent() {
	for isIdentStart(s.cur) || isDigit(s.cur) {
		s.advance()
	}
}

// scanNumber scans an integer or decimal number literal. A trailing dot is
// not part of the number (it is a method access), nor is a leading dot.
func (s *Scanner) scanNumber() {
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigitByte(s.peek()) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
}

// scanString scans a double-quoted string literal. Strings may span multiple
// lines and support no escape sequences. Returns false if the string is not
// terminated.
func (s *Scanner) scanString() bool {
	pos := s.pos()
	s.advance() // opening quote
	for s.cur != '"' {
		if s.cur < 0 {
			s.error(pos, "unterminated string literal")
			return false
		}
		s.advance()
	}
	s.advance() // closing quote
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isDigitByte(b byte) bool { return '0' <= b && b <= '9' }
