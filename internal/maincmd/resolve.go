package maincmd

import (
	"context"
	"fmt"
	"io"

	"github.com/mna/mainer"
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/parser"
	"github.com/mna/nelumbo/lang/resolver"
	"github.com/mna/nelumbo/lang/scanner"
	"github.com/mna/nelumbo/lang/token"
)

// ResolveFiles parses and resolves the files, pretty-prints each AST to
// stdout followed by the bindings recorded by the resolver, in source order.
// Use sites absent from the listing resolve against the globals frame at
// runtime. Errors are printed to stderr and returned.
func ResolveFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	printer := ast.Printer{
		Output: stdio.Stdout,
		Pos:    token.PosLong,
	}
	chunks, perr := parser.ParseFiles(ctx, files...)
	if perr != nil {
		// cannot resolve an AST if parsing has errors
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	for _, ch := range chunks {
		bindings, rerr := resolver.ResolveChunk(ctx, ch)
		if err := printer.Print(ch); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		printBindings(stdio.Stdout, ch, bindings)
		if rerr != nil {
			scanner.PrintError(stdio.Stderr, rerr)
			return rerr
		}
	}
	return nil
}

// printBindings prints the resolved use sites of the chunk in source walk
// order, one per line, with the recorded environment depth.
func printBindings(w io.Writer, ch *ast.Chunk, bindings resolver.Bindings) {
	fmt.Fprintln(w, "bindings:")

	var vf ast.VisitorFunc
	vf = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}

		if e, ok := n.(ast.Expr); ok {
			if depth, ok := bindings[e]; ok {
				name := token.THIS.String()
				if id, ok := e.(*ast.IdentExpr); ok {
					name = id.Lit
				}
				start, _ := e.Span()
				fmt.Fprintf(w, "%s %s -> depth %d\n", token.FormatPos(token.PosLong, start), name, depth)
			}
		}
		return vf
	}
	ast.Walk(vf, ch)
}
