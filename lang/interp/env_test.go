package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/nelumbo/lang/types"
)

func TestEnvDefineGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", types.Number(1))

	v, ok := env.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.Number(1), v)

	_, ok = env.Get("b")
	assert.False(t, ok)

	// redefinition in the same frame silently overwrites
	env.Define("a", types.String("x"))
	v, _ = env.Get("a")
	assert.Equal(t, types.String("x"), v)
}

func TestEnvGetSearchesAncestors(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", types.Number(1))
	mid := NewEnvironment(root)
	leaf := NewEnvironment(mid)
	mid.Define("b", types.Number(2))

	v, ok := leaf.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.Number(1), v)
	v, ok = leaf.Get("b")
	require.True(t, ok)
	assert.Equal(t, types.Number(2), v)
}

func TestEnvAssign(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", types.Number(1))
	leaf := NewEnvironment(root)

	// assigns in the first frame that contains the name
	require.True(t, leaf.Assign("a", types.Number(2)))
	v, _ := root.Get("a")
	assert.Equal(t, types.Number(2), v)

	// never defines
	assert.False(t, leaf.Assign("b", types.Number(3)))
	_, ok := leaf.Get("b")
	assert.False(t, ok)
}

func TestEnvAssignShadow(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", types.Number(1))
	leaf := NewEnvironment(root)
	leaf.Define("a", types.Number(10))

	require.True(t, leaf.Assign("a", types.Number(20)))

	// only the innermost binding is touched
	v, _ := root.Get("a")
	assert.Equal(t, types.Number(1), v)
	v, ok := leaf.values.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.Number(20), v)
}

func TestEnvDepthIndexed(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", types.Number(1))
	mid := NewEnvironment(root)
	mid.Define("a", types.Number(2))
	leaf := NewEnvironment(mid)

	v, err := leaf.GetAt(1, "a")
	require.NoError(t, err)
	assert.Equal(t, types.Number(2), v)
	v, err = leaf.GetAt(2, "a")
	require.NoError(t, err)
	assert.Equal(t, types.Number(1), v)

	require.NoError(t, leaf.AssignAt(2, "a", types.Number(3)))
	v, _ = root.Get("a")
	assert.Equal(t, types.Number(3), v)
	v, _ = mid.values.Get("a")
	assert.Equal(t, types.Number(2), v)
}

func TestEnvDepthIndexedInternalError(t *testing.T) {
	root := NewEnvironment(nil)
	leaf := NewEnvironment(root)

	// a depth-indexed miss is a broken resolver invariant
	var ierr *InternalError
	_, err := leaf.GetAt(1, "missing")
	require.ErrorAs(t, err, &ierr)
	err = leaf.AssignAt(1, "missing", types.Nil)
	require.ErrorAs(t, err, &ierr)

	// walking past the root is also internal
	_, err = leaf.GetAt(5, "a")
	require.ErrorAs(t, err, &ierr)
}

func TestEnvAncestor(t *testing.T) {
	root := NewEnvironment(nil)
	mid := NewEnvironment(root)
	leaf := NewEnvironment(mid)

	assert.Same(t, leaf, leaf.ancestor(0))
	assert.Same(t, mid, leaf.ancestor(1))
	assert.Same(t, root, leaf.ancestor(2))
	assert.Nil(t, leaf.ancestor(3))
}
