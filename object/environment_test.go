package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clou/value"
)

func TestEnvironmentGetWalksChain(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("x", value.Number(1), false)

	inner := NewEnvironment(globals)
	v, ok := inner.Get("x")
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)
}

func TestEnvironmentAssignUpdatesNearestBinding(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", value.Number(1), false)
	inner := NewEnvironment(outer)

	err := inner.Assign("x", value.Number(2))
	require.NoError(t, err)

	v, _ := outer.Get("x")
	assert.Equal(t, value.Number(2), v)
}

func TestEnvironmentAssignUnknownNameErrors(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign("missing", value.Number(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'")
}

func TestEnvironmentAssignConstErrors(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("PI", value.Number(3.14159), true)

	err := env.Assign("PI", value.Number(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot reassign const variable 'PI'")
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", value.Number(1), false)
	inner := NewEnvironment(outer)
	inner.Define("x", value.Number(2), false)

	v, _ := inner.Get("x")
	assert.Equal(t, value.Number(2), v)
	v, _ = outer.Get("x")
	assert.Equal(t, value.Number(1), v)
}

func TestEnterCallNoModuleAncestorNeverSuppresses(t *testing.T) {
	globals := NewEnvironment(nil)
	frame := NewEnvironment(globals)

	release1, ok1 := EnterCall(frame, "fib")
	require.True(t, ok1)
	release2, ok2 := EnterCall(frame, "fib")
	assert.True(t, ok2, "top-level functions must be able to recurse")
	release2()
	release1()
}

func TestEnterCallModuleEnvironmentSuppressesReentry(t *testing.T) {
	globals := NewEnvironment(nil)
	moduleEnv := NewModuleEnvironment(globals)
	frame := NewEnvironment(moduleEnv)

	release, ok := EnterCall(frame, "getValue")
	require.True(t, ok)

	_, ok2 := EnterCall(frame, "getValue")
	assert.False(t, ok2, "re-entering the same module-scoped function must be suppressed")

	release()

	_, ok3 := EnterCall(frame, "getValue")
	assert.True(t, ok3, "releasing must allow a later call to re-enter")
}

func TestEnterCallTracksDistinctNamesIndependently(t *testing.T) {
	globals := NewEnvironment(nil)
	moduleEnv := NewModuleEnvironment(globals)

	release, ok := EnterCall(moduleEnv, "a")
	require.True(t, ok)
	defer release()

	_, ok2 := EnterCall(moduleEnv, "b")
	assert.True(t, ok2, "a different function name must not be suppressed")
}
