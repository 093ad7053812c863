package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, bool(Truthiness(Nil{})))
	assert.False(t, bool(Truthiness(Boolean(false))))
	assert.False(t, bool(Truthiness(Number(0))))
	assert.False(t, bool(Truthiness(String(""))))
	assert.True(t, bool(Truthiness(Number(1))))
	assert.True(t, bool(Truthiness(String("x"))))
	assert.True(t, bool(Truthiness(NewArray())))
}

func TestEqualToStrictlyTyped(t *testing.T) {
	assert.True(t, bool(EqualTo(Number(1), Number(1))))
	assert.False(t, bool(EqualTo(Number(1), String("1"))))
	assert.True(t, bool(EqualTo(String("a"), String("a"))))
	assert.False(t, bool(EqualTo(Boolean(true), Number(1))))
}

func TestAddStringConcatenation(t *testing.T) {
	got := Add(String("Rex"), String(" a"))
	assert.Equal(t, String("Rex a"), got)

	got = Add(String("n = "), Number(3))
	assert.Equal(t, String("n = 3"), got)
}

func TestAddNumeric(t *testing.T) {
	got := Add(Number(2), Number(3))
	assert.Equal(t, Number(5), got)
}

func TestDivByZeroPanics(t *testing.T) {
	assert.PanicsWithValue(t, TypeError{"Division by zero."}, func() {
		Div(Number(10), Number(0))
	})
}

func TestArrayStringify(t *testing.T) {
	a := NewArray(Number(0), Number(1), Number(4), Number(9), Number(16))
	assert.Equal(t, "[0, 1, 4, 9, 16]", a.String())
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", Number(2))
	o.Set("a", Number(1))
	o.Set("c", Number(3))

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	assert.Equal(t, "{ b: 2, a: 1, c: 3 }", o.String())
}

func TestObjectSetExistingKeyKeepsPosition(t *testing.T) {
	o := NewObject()
	o.Set("a", Number(1))
	o.Set("b", Number(2))
	o.Set("a", Number(99))

	assert.Equal(t, []string{"a", "b"}, o.Keys())
	v, ok := o.Get("a")
	assert.True(t, ok)
	assert.Equal(t, Number(99), v)
}
