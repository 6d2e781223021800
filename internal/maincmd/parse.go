package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/parser"
	"github.com/mna/nelumbo/lang/scanner"
	"github.com/mna/nelumbo/lang/token"
)

// ParseFiles parses the files and pretty-prints each AST to stdout. Parse
// errors are printed to stderr and returned.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	printer := ast.Printer{
		Output: stdio.Stdout,
		Pos:    token.PosLong,
	}
	chunks, err := parser.ParseFiles(ctx, files...)
	for _, ch := range chunks {
		if err := printer.Print(ch); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
