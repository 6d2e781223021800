package resolver_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/nelumbo/internal/filetest"
	"github.com/mna/nelumbo/internal/maincmd"
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/parser"
	"github.com/mna/nelumbo/lang/resolver"
	"github.com/mna/nelumbo/lang/scanner"
)

var testUpdateResolverTests = flag.Bool("test.update-resolver-tests", false, "If set, replace expected resolver test results with actual results.")

func TestResolver(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, name := range filetest.SourceFiles(t, srcDir, ".nel") {
		t.Run(name, func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.ResolveFiles(ctx, stdio, filepath.Join(srcDir, name))
			filetest.DiffOutput(t, name, buf.String(), resultDir, testUpdateResolverTests)
			filetest.DiffErrors(t, name, ebuf.String(), resultDir, testUpdateResolverTests)

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, name))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}

func resolveSrc(t *testing.T, src string) (*ast.Chunk, resolver.Bindings, error) {
	t.Helper()
	ctx := context.Background()
	ch, err := parser.ParseChunk(ctx, "test", []byte(src))
	require.NoError(t, err)
	b, err := resolver.ResolveChunk(ctx, ch)
	return ch, b, err
}

func TestResolveGlobalUnrecorded(t *testing.T) {
	// global references are left out of the bindings map
	_, b, err := resolveSrc(t, `var a = 1; print a;`)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestResolveBlockDepths(t *testing.T) {
	ch, b, err := resolveSrc(t, `
{
  var a = 1;
  {
    print a;
    var b = a;
    b = 2;
  }
}
`)
	require.NoError(t, err)

	// print a -> depth 1, init a -> depth 1, assign b -> depth 0
	depths := make(map[int]uint8) // line -> depth
	var vf ast.VisitorFunc
	vf = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		if e, ok := n.(ast.Expr); ok {
			if d, ok := b[e]; ok {
				start, _ := e.Span()
				l, _ := start.LineCol()
				depths[l] = d
			}
		}
		return vf
	}
	ast.Walk(vf, ch)

	assert.Equal(t, map[int]uint8{5: 1, 6: 1, 7: 0}, depths)
}

func TestResolveClosureIgnoresLaterLocal(t *testing.T) {
	// the function body resolves "a" before the block declares its own, so
	// the reference stays global
	_, b, err := resolveSrc(t, `
var a = "global";
{
  fun show() {
    print a;
  }
  show();
  var a = "local";
  show();
}
`)
	require.NoError(t, err)
	for e, d := range b {
		if id, ok := e.(*ast.IdentExpr); ok && id.Lit == "a" {
			t.Errorf("a should resolve global, got depth %d", d)
		}
	}
}

func TestResolveThisInMethod(t *testing.T) {
	ch, b, err := resolveSrc(t, `
class A {
  m() {
    print this;
  }
}
`)
	require.NoError(t, err)

	var found bool
	var vf ast.VisitorFunc
	vf = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		if e, ok := n.(*ast.ThisExpr); ok {
			d, ok := b[e]
			require.True(t, ok, "this must be recorded")
			// one hop from the method's call frame to the bound frame
			assert.Equal(t, uint8(1), d)
			found = true
		}
		return vf
	}
	ast.Walk(vf, ch)
	assert.True(t, found)
}

func TestResolveStaticErrors(t *testing.T) {
	cases := []struct {
		name, src, msg string
	}{
		{"own initializer", `{ var a = a; }`, "cannot read a in its own initializer"},
		{"duplicate local", `{ var a = 1; var a = 2; }`, "already declared in this scope: a"},
		{"duplicate param", `fun f(x, x) { }`, "already declared in this scope: x"},
		{"top-level return", `return 1;`, "invalid return outside of a function"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := resolveSrc(t, c.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestResolveErrorsAccumulate(t *testing.T) {
	_, _, err := resolveSrc(t, "{ var a = 1; var a = 2; }\nreturn 1;\n")
	require.Error(t, err)
	list, ok := err.(scanner.ErrorList)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestResolveGlobalRedefinitionAllowed(t *testing.T) {
	_, _, err := resolveSrc(t, `var a = 1; var a = 2;`)
	assert.NoError(t, err)
}

func TestResolveReturnInNestedFunction(t *testing.T) {
	_, _, err := resolveSrc(t, `
fun outer() {
  fun inner() {
    return 1;
  }
  return inner;
}
`)
	assert.NoError(t, err)
}
