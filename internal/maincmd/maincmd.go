// Package maincmd implements the command-line interface of the interpreter:
// running a script file, the interactive prompt, and the phase-debug flags
// that print the output of the scanner, parser or resolver phases.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nelumbo/internal/logging"
)

const binName = "nelumbo"

// Exit codes of the interpreter, following the BSD sysexits convention: 64
// for a usage error, 65 for a static (scan, parse or resolve) error and 70
// for a runtime error.
const (
	ExitUsage   = mainer.ExitCode(64)
	ExitStatic  = mainer.ExitCode(65)
	ExitRuntime = mainer.ExitCode(70)
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<script>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<script>]
       %[1]s -h|--help
       %[1]s -v|--version

Interpreter for the %[1]s scripting language. With a <script> path, runs the
script; without one, starts an interactive prompt where each line is parsed,
resolved and executed independently against shared globals.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --tokenize                Print the tokens of the script files
                                 instead of running them.
       --parse                   Print the abstract syntax tree (AST) of the
                                 script files instead of running them.
       --resolve                 Print the AST and the resolved bindings of
                                 the script files instead of running them.

The environment variable %[2]s controls the logging verbosity; valid
values are off, error, warn, info, debug and trace.

More information on the %[1]s repository:
       https://github.com/mna/nelumbo
`, binName, "NELUMBO_LOG")
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Tokenize bool `flag:"tokenize"`
	Parse    bool `flag:"parse"`
	Resolve  bool `flag:"resolve"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	var phases int
	for _, flag := range []string{"tokenize", "parse", "resolve"} {
		if c.flags[flag] {
			phases++
		}
	}
	if phases > 1 {
		return errors.New("at most one of --tokenize, --parse and --resolve may be set")
	}
	if phases == 1 && len(c.args) == 0 {
		return errors.New("at least one file must be provided with a phase flag")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return ExitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	log, err := logging.FromEnv(stdio.Stderr)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid logging configuration: %s\n", err)
		return ExitUsage
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch {
	case c.Tokenize:
		return staticExit(TokenizeFiles(ctx, stdio, c.args...))
	case c.Parse:
		return staticExit(ParseFiles(ctx, stdio, c.args...))
	case c.Resolve:
		return staticExit(ResolveFiles(ctx, stdio, c.args...))
	}

	switch len(c.args) {
	case 0:
		return c.repl(ctx, stdio, log)
	case 1:
		return RunFile(ctx, stdio, log, c.args[0])
	default:
		fmt.Fprintf(stdio.Stderr, "too many arguments\n%s", shortUsage)
		return ExitUsage
	}
}

func staticExit(err error) mainer.ExitCode {
	if err != nil {
		return ExitStatic
	}
	return mainer.Success
}
