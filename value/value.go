// Package value defines Clou's runtime value model: the tagged union of
// primitive and reference types every variable, field, and array slot
// holds.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is implemented by every runtime value. Primitive types (Nil,
// Boolean, Number, String) are stored by Go value; reference types
// (*Array, *Object, and the types in package object) are stored by
// pointer, so Go's == on a Value compares pointer identity for them —
// exactly the strict-equality rule §4.3 requires.
type Value interface {
	String() string
	ClouValueMarkerFunc()
}

// TypeError is panicked on an invalid logical or mathematical operation;
// the interpreter recovers it and re-raises as a RuntimeError carrying
// source position.
type TypeError struct {
	Message string
}

func (e TypeError) Error() string { return e.Message }

type Nil struct{}
type Boolean bool
type Number float64
type String string

func (Nil) ClouValueMarkerFunc()     {}
func (Boolean) ClouValueMarkerFunc() {}
func (Number) ClouValueMarkerFunc()  {}
func (String) ClouValueMarkerFunc()  {}

func (Nil) String() string { return "null" }

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (s String) String() string { return string(s) }

// Array is Clou's dense, ordered, mutable array.
type Array struct {
	Elements []Value
}

func NewArray(elements ...Value) *Array {
	return &Array{Elements: elements}
}

func (*Array) ClouValueMarkerFunc() {}

func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = Stringify(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Object is Clou's ordered string-keyed map. keys preserves insertion
// order for iteration and print (§8); a plain map[string]Value alone
// can't do that since Go map iteration order is random.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (*Object) ClouValueMarkerFunc() {}

// Get returns the value stored under key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set inserts or overwrites key, appending it to the key order the
// first time it is seen.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Keys returns the object's keys in insertion order. Callers must not
// mutate the returned slice.
func (o *Object) Keys() []string { return o.keys }

func (o *Object) Len() int { return len(o.keys) }

func (o *Object) String() string {
	parts := make([]string, len(o.keys))
	for i, k := range o.keys {
		parts[i] = fmt.Sprintf("%s: %s", k, Stringify(o.values[k]))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Stringify renders a value the way print() and string concatenation
// do.
func Stringify(v Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

// Truthiness implements §4.3: null, false, 0, and "" are falsey.
func Truthiness(v Value) Boolean {
	switch t := v.(type) {
	case Nil:
		return false
	case Boolean:
		return t
	case Number:
		return t != 0
	case String:
		return t != ""
	default:
		return true
	}
}

// EqualTo implements §4.3's strict equality: same type and same content,
// no coercion. Reference types compare by identity via Go's ==, which is
// valid because the same object is always held behind the same pointer.
func EqualTo(s, t Value) Boolean {
	if ns, ok := s.(Number); ok {
		if nt, ok := t.(Number); ok {
			return ns == nt
		}
		return false
	}
	if ss, ok := s.(String); ok {
		if st, ok := t.(String); ok {
			return ss == st
		}
		return false
	}
	if bs, ok := s.(Boolean); ok {
		if bt, ok := t.(Boolean); ok {
			return bs == bt
		}
		return false
	}
	_, sNil := s.(Nil)
	_, tNil := t.(Nil)
	if sNil || tNil {
		return Boolean(sNil && tNil)
	}
	return Boolean(s == t)
}

func LessThan(s, t Value) Boolean {
	if u, ok := s.(Number); ok {
		if v, ok := t.(Number); ok {
			return u < v
		}
	}
	if u, ok := s.(String); ok {
		if v, ok := t.(String); ok {
			return u < v
		}
	}
	panic(TypeError{"Operands must be two numbers or two strings."})
}

func GreaterThan(s, t Value) Boolean {
	if u, ok := s.(Number); ok {
		if v, ok := t.(Number); ok {
			return u > v
		}
	}
	if u, ok := s.(String); ok {
		if v, ok := t.(String); ok {
			return u > v
		}
	}
	panic(TypeError{"Operands must be two numbers or two strings."})
}

func Neg(s Value) Value {
	if u, ok := s.(Number); ok {
		return -u
	}
	panic(TypeError{"Operand must be a number."})
}

// Add implements §4.3: numeric addition for two numbers, otherwise
// string concatenation via default stringification if either side is a
// string.
func Add(s, t Value) Value {
	if u, ok := s.(Number); ok {
		if v, ok := t.(Number); ok {
			return u + v
		}
	}
	_, sIsStr := s.(String)
	_, tIsStr := t.(String)
	if sIsStr || tIsStr {
		return String(Stringify(s) + Stringify(t))
	}
	panic(TypeError{"Operands must be two numbers or at least one string."})
}

func arith(name string, s, t Value, f func(a, b float64) float64) Value {
	u, ok := s.(Number)
	v, ok2 := t.(Number)
	if !ok || !ok2 {
		panic(TypeError{fmt.Sprintf("Operands of '%s' must be numbers.", name)})
	}
	return Number(f(float64(u), float64(v)))
}

func Sub(s, t Value) Value { return arith("-", s, t, func(a, b float64) float64 { return a - b }) }
func Mul(s, t Value) Value { return arith("*", s, t, func(a, b float64) float64 { return a * b }) }

func Div(s, t Value) Value {
	u, ok := s.(Number)
	v, ok2 := t.(Number)
	if !ok || !ok2 {
		panic(TypeError{"Operands of '/' must be numbers."})
	}
	if v == 0 {
		panic(TypeError{"Division by zero."})
	}
	return Number(float64(u) / float64(v))
}

// Pow implements `^` (§4.3: exponentiation, pow(a,b)).
func Pow(s, t Value) Value {
	u, ok := s.(Number)
	v, ok2 := t.(Number)
	if !ok || !ok2 {
		panic(TypeError{"Operands of '^' must be numbers."})
	}
	return Number(math.Pow(float64(u), float64(v)))
}

func Mod(s, t Value) Value {
	u, ok := s.(Number)
	v, ok2 := t.(Number)
	if !ok || !ok2 {
		panic(TypeError{"Operands of '%' must be numbers."})
	}
	if v == 0 {
		panic(TypeError{"Modulo by zero."})
	}
	return Number(float64(int64(u) % int64(v)))
}
