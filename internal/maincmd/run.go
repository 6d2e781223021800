package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mna/mainer"
	"github.com/mna/nelumbo/lang/interp"
	"github.com/mna/nelumbo/lang/parser"
	"github.com/mna/nelumbo/lang/resolver"
	"github.com/mna/nelumbo/lang/scanner"
)

// replName is the chunk name under which interactive input is reported in
// error positions.
const replName = "repl"

// RunFile reads, parses, resolves and executes the script file and returns
// the corresponding exit code. Errors are printed to stderr.
func RunFile(ctx context.Context, stdio mainer.Stdio, log *slog.Logger, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "failed to run file: %s\n", err)
		return ExitStatic
	}

	in := interp.New()
	in.Stdout = stdio.Stdout
	in.Log = log
	return runChunk(ctx, in, stdio, path, src)
}

// runChunk runs a single chunk of source through the parse, resolve and
// interpret phases on the provided interpreter, printing errors to stderr
// and returning the corresponding exit code.
func runChunk(ctx context.Context, in *interp.Interp, stdio mainer.Stdio, name string, src []byte) mainer.ExitCode {
	ch, err := parser.ParseChunk(ctx, name, src)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return ExitStatic
	}

	bindings, err := resolver.ResolveChunk(ctx, ch)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return ExitStatic
	}

	if err := in.Run(ctx, ch, bindings); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return ExitRuntime
	}
	return mainer.Success
}

// repl runs the interactive prompt: each line is parsed, resolved and
// executed as an independent chunk against the shared globals of a single
// interpreter, and errors only abort the line, never the session. The prompt
// is only printed when stdin is a terminal.
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio, log *slog.Logger) mainer.ExitCode {
	in := interp.New()
	in.Stdout = stdio.Stdout
	in.Log = log

	tty := false
	if f, ok := stdio.Stdin.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}

	sc := bufio.NewScanner(stdio.Stdin)
	for {
		if tty {
			fmt.Fprint(stdio.Stdout, "> ")
		}
		if !sc.Scan() {
			break
		}
		runChunk(ctx, in, stdio, replName, sc.Bytes())
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(stdio.Stderr, "error in repl: %s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}
