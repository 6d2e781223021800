// Package ast defines the types to represent the abstract syntax tree (AST)
// of the language. Nodes record the positions of their significant tokens so
// that static and runtime errors can report precise locations.
//
// The parser is the only producer of nodes; the resolver and the interpreter
// consume them and never mutate them. A node's address is its identity: the
// resolver keys its bindings map by the use-site node pointer, so two
// textually identical references at different positions are distinct keys.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/nelumbo/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so they can print a
	// description of themselves. The only supported verbs are 'v' and 's'.
	// The '#' flag can be used to print count information about children
	// nodes. A width can be set to define the number of runes to print for
	// the node description - by default, that width is padded with spaces
	// on the left if the description is shorter, otherwise it is truncated
	// to that width. The '-' flag can be used to pad with spaces on the
	// right instead, and the '+' flag can be used to prevent padding
	// altogether - it only truncates if longer.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

// List of visit directions.
const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is the interface to implement to traverse the AST with Walk. Visit
// is called for each node reached during the traversal; returning a nil
// visitor from the enter call skips the node's children. The statement and
// expression walkers of the resolver and interpreter do not use it - they
// type-switch on the nodes directly - it only serves generic traversals such
// as the printer and the bindings listing.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc is a function that implements the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

// Visit implements the Visitor interface for VisitorFunc.
func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	return f(n, dir)
}

// Walk traverses the AST rooted at node in depth-first order. It calls
// v.Visit with the node in the VisitEnter direction and, if that call
// returns a non-nil visitor, walks the node's children with it before
// calling Visit again with the VisitExit direction.
func Walk(v Visitor, node Node) {
	w := v.Visit(node, VisitEnter)
	if w == nil {
		return
	}
	node.Walk(w)
	v.Visit(node, VisitExit)
}

// Chunk represents a whole unit of parsed source code, a file or a line of
// input in interactive mode. It keeps track of its name and the EOF position,
// which is useful for empty files to get a valid position.
type Chunk struct {
	// Name is the filename, which may be empty if the chunk is not a file.
	Name string

	// Stmts is the list of top-level statements contained in the chunk.
	Stmts []Stmt

	EOF token.Pos // position of the EOF marker
}

func (n *Chunk) Format(f fmt.State, verb rune) {
	format(f, verb, n, "chunk", map[string]int{"stmts": len(n.Stmts)})
}

func (n *Chunk) Span() (start, end token.Pos) {
	if len(n.Stmts) > 0 {
		start, _ = n.Stmts[0].Span()
		return start, n.EOF
	}
	return n.EOF, n.EOF
}

func (n *Chunk) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	// replace tabs and newlines with the corresponding unicode key
	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
