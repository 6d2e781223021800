package maincmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mna/mainer"
	"github.com/mna/nelumbo/lang/scanner"
	"github.com/mna/nelumbo/lang/token"
)

// TokenizeFiles scans the files and prints one token per line to stdout,
// with its position and, for value-carrying tokens, its raw lexeme. Scan
// errors are printed to stderr and returned.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	tokensByFile, err := scanner.ScanFiles(ctx, files...)
	for i, toks := range tokensByFile {
		if len(files) > 1 {
			fmt.Fprintf(stdio.Stdout, "%s:\n", files[i])
		}
		for _, tv := range toks {
			pos := token.FormatPos(token.PosLong, tv.Value.Pos)
			switch tv.Token {
			case token.IDENT, token.NUMBER, token.STRING:
				fmt.Fprintf(stdio.Stdout, "%s %s %s\n", pos, tv.Token, strconv.Quote(tv.Value.Raw))
			default:
				fmt.Fprintf(stdio.Stdout, "%s %s\n", pos, tv.Token)
			}
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
