package interp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/parser"
	"github.com/mna/nelumbo/lang/resolver"
	"github.com/mna/nelumbo/lang/types"
)

func runSrc(t *testing.T, i *Interp, src string) error {
	t.Helper()
	ctx := context.Background()
	ch, err := parser.ParseChunk(ctx, "test", []byte(src))
	require.NoError(t, err)
	bindings, err := resolver.ResolveChunk(ctx, ch)
	require.NoError(t, err)
	return i.Run(ctx, ch, bindings)
}

func TestFrameRestoredOnError(t *testing.T) {
	i := New()
	entry := i.env

	// the error unwinds out of two nested blocks and a call
	err := runSrc(t, i, `
fun boom() {
  {
    {
      var x = nil + 1;
    }
  }
}
boom();
`)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Same(t, entry, i.env, "current frame must be restored on error exit")
}

func TestFrameRestoredOnReturn(t *testing.T) {
	i := New()
	entry := i.env

	err := runSrc(t, i, `
fun f() {
  {
    return 1;
  }
}
f();
`)
	require.NoError(t, err)
	assert.Same(t, entry, i.env)
}

func TestGlobalsSharedAcrossRuns(t *testing.T) {
	i := New()
	require.NoError(t, runSrc(t, i, `var a = 1;`))
	require.NoError(t, runSrc(t, i, `a = a + 1;`))

	v, ok := i.globals.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.Number(2), v)
}

func TestBindDefinesThis(t *testing.T) {
	i := New()
	require.NoError(t, runSrc(t, i, `
class A {
  m() {
  }
}
var inst = A();
`))

	v, ok := i.globals.Get("inst")
	require.True(t, ok)
	inst, ok := v.(*Instance)
	require.True(t, ok)

	m, err := inst.Attr("m")
	require.NoError(t, err)
	bound, ok := m.(*Function)
	require.True(t, ok)

	this, ok := bound.closure.Get("this")
	require.True(t, ok)
	assert.Same(t, inst, this)

	// binding does not mutate the class's method table
	unbound, ok := inst.Class().FindMethod("m")
	require.True(t, ok)
	_, ok = unbound.closure.Get("this")
	assert.False(t, ok)
}

func TestCallableEquality(t *testing.T) {
	i := New()
	require.NoError(t, runSrc(t, i, `
fun a() {}
fun b() {}
fun c(x) {}
`))

	get := func(name string) types.Value {
		v, ok := i.globals.Get(name)
		require.True(t, ok)
		return v
	}

	// name and arity equality
	assert.True(t, types.Equal(get("a"), get("a")))
	assert.False(t, types.Equal(get("a"), get("b")))
	assert.False(t, types.Equal(get("a"), get("c")))
	assert.False(t, types.Equal(get("a"), types.Number(1)))

	// a native and a user function of the same name and arity compare equal,
	// a design choice inherited from name+arity equality
	clock := Universe["clock"]
	require.NoError(t, runSrc(t, i, `fun clock() {}`))
	assert.True(t, types.Equal(clock, get("clock")))
}

func TestInstanceIdentityEquality(t *testing.T) {
	i := New()
	require.NoError(t, runSrc(t, i, `
class A {
}
var x = A();
var y = A();
var z = x;
`))

	get := func(name string) types.Value {
		v, ok := i.globals.Get(name)
		require.True(t, ok)
		return v
	}
	assert.True(t, types.Equal(get("x"), get("z")))
	assert.False(t, types.Equal(get("x"), get("y")))
}

func TestReturnSignalAtTopLevelIsInternal(t *testing.T) {
	// the resolver rejects top-level returns, so force the signal through a
	// hand-built chunk to exercise the interpreter's guard
	i := New()
	ch := &ast.Chunk{Name: "test", Stmts: []ast.Stmt{&ast.ReturnStmt{}}}
	err := i.Run(context.Background(), ch, nil)
	var ierr *InternalError
	require.ErrorAs(t, err, &ierr)
}

func TestNativeClock(t *testing.T) {
	i := New()
	v, err := Call(i, Universe["clock"], nil)
	require.NoError(t, err)
	n, ok := v.(types.Number)
	require.True(t, ok)
	assert.Greater(t, float64(n), float64(1e9)) // sometime after 2001
}

func TestNativeAssertEq(t *testing.T) {
	i := New()
	v, err := Call(i, Universe["assert_eq"], []types.Value{types.Number(1), types.Number(1)})
	require.NoError(t, err)
	assert.Equal(t, types.Nil, v)

	_, err = Call(i, Universe["assert_eq"], []types.Value{types.Number(1), types.String("1")})
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "1 == 1", re.Expected)
	assert.Equal(t, "1 != 1", re.Found)
}

func TestCallArityMismatch(t *testing.T) {
	i := New()
	_, err := Call(i, Universe["assert_eq"], []types.Value{types.Number(1)})
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "2 arguments", re.Expected)
	assert.Equal(t, "1 arguments", re.Found)
}

func TestCallNonCallable(t *testing.T) {
	i := New()
	_, err := Call(i, types.Number(1), nil)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "a function or class", re.Expected)
	assert.Equal(t, "number", re.Found)
}
