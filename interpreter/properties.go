package interpreter

import (
	"strconv"
	"strings"

	"clou/ast"
	"clou/object"
	"clou/util"
	"clou/value"
)

// VisitGetExpr implements §4.3 Get. Instance lookup checks fields before
// methods; a miss on a plain Object is, per §9, not an error — it
// returns the property name itself as a string, a quirk this keeps
// rather than "fixes". Number and String expose a small set of virtual
// methods (toFixed, length, etc.) with no backing field.
func (i *Interpreter) VisitGetExpr(e *ast.Get) any {
	obj := i.evaluate(e.Object)
	name := e.Name.Lexeme

	switch o := obj.(type) {
	case *object.Instance:
		v, ok := o.Get(name)
		if !ok {
			panic(runtimeErr(e.Name, "Undefined property '%s'.", name))
		}
		return v
	case *value.Object:
		if v, ok := o.Get(name); ok {
			return v
		}
		return value.String(name)
	case value.String:
		return stringMember(o, name, e)
	case value.Number:
		return numberMember(o, name, e)
	case *value.Array:
		return arrayMember(o, name, e)
	default:
		panic(runtimeErr(e.Name, "Only instances and objects have properties."))
	}
}

// stringMember resolves a String's virtual methods (§3/§4.5): length,
// includes, split, and slice, each bound as a NativeFunction closing
// over the receiver so `s.includes("x")` round-trips through the
// ordinary Call path like numberMember/arrayMember do.
func stringMember(s value.String, name string, e *ast.Get) value.Value {
	switch name {
	case "length":
		return value.Number(len(s))
	case "includes":
		return &object.NativeFunction{
			Name:  "includes",
			Arity: 1,
			Fn: func(args []value.Value) value.Value {
				needle, ok := args[0].(value.String)
				if !ok {
					panic(object.NativeError{Message: "includes() expects a string argument."})
				}
				return value.Boolean(strings.Contains(string(s), string(needle)))
			},
		}
	case "split":
		return &object.NativeFunction{
			Name:  "split",
			Arity: 1,
			Fn: func(args []value.Value) value.Value {
				sep, ok := args[0].(value.String)
				if !ok {
					panic(object.NativeError{Message: "split() expects a string argument."})
				}
				parts := strings.Split(string(s), string(sep))
				elems := make([]value.Value, len(parts))
				for idx, p := range parts {
					elems[idx] = value.String(p)
				}
				return value.NewArray(elems...)
			},
		}
	case "slice":
		return &object.NativeFunction{
			Name:     "slice",
			Variadic: true,
			Fn: func(args []value.Value) value.Value {
				if len(args) < 1 || len(args) > 2 {
					panic(object.NativeError{Message: "slice() expects 1 or 2 arguments."})
				}
				start, ok := args[0].(value.Number)
				if !ok {
					panic(object.NativeError{Message: "slice() expects a number start argument."})
				}
				end := value.Number(len(s))
				if len(args) == 2 {
					end, ok = args[1].(value.Number)
					if !ok {
						panic(object.NativeError{Message: "slice() expects a number end argument."})
					}
				}
				lo, hi := clampSliceBounds(int(start), int(end), len(s))
				return value.String(s[lo:hi])
			},
		}
	default:
		panic(runtimeErr(e.Name, "Undefined property '%s'.", name))
	}
}

// clampSliceBounds clamps a start/end pair to a valid [lo, hi] range
// within [0, length], treating an end before start as an empty slice.
func clampSliceBounds(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end < start {
		end = start
	}
	if end > length {
		end = length
	}
	return start, end
}

// numberMember resolves a Number's virtual methods (§4.5): toFixed is
// the only one, a one-argument NativeFunction closing over the receiver
// so `n.toFixed(2)` round-trips through the ordinary Call path.
func numberMember(n value.Number, name string, e *ast.Get) value.Value {
	switch name {
	case "toFixed":
		return &object.NativeFunction{
			Name:  "toFixed",
			Arity: 1,
			Fn: func(args []value.Value) value.Value {
				digits, ok := args[0].(value.Number)
				if !ok {
					panic(object.NativeError{Message: "toFixed expects a number argument."})
				}
				return formatFixed(n, int(digits))
			},
		}
	default:
		panic(runtimeErr(e.Name, "Undefined property '%s'.", name))
	}
}

func arrayMember(a *value.Array, name string, e *ast.Get) value.Value {
	switch name {
	case "length":
		return value.Number(len(a.Elements))
	case "pop":
		return &object.NativeFunction{
			Name:  "pop",
			Arity: 0,
			Fn: func(args []value.Value) value.Value {
				if len(a.Elements) == 0 {
					panic(object.NativeError{Message: "pop() called on an empty array."})
				}
				last := *util.Last(a.Elements)
				util.Pop(&a.Elements)
				return last
			},
		}
	default:
		panic(runtimeErr(e.Name, "Undefined property '%s'.", name))
	}
}

func (i *Interpreter) VisitSetExpr(e *ast.Set) any {
	obj := i.evaluate(e.Object)
	v := i.evaluate(e.Value)

	switch o := obj.(type) {
	case *object.Instance:
		o.Set(e.Name.Lexeme, v)
		return v
	case *value.Object:
		o.Set(e.Name.Lexeme, v)
		return v
	default:
		panic(runtimeErr(e.Name, "Only instances and objects have settable properties."))
	}
}

// VisitIndexExpr implements §4.3 Index for Array, String, and Object.
func (i *Interpreter) VisitIndexExpr(e *ast.Index) any {
	obj := i.evaluate(e.Object)
	idx := i.evaluate(e.Index)

	switch o := obj.(type) {
	case *value.Array:
		n, ok := idx.(value.Number)
		if !ok {
			panic(runtimeErr(e.Bracket, "Array index must be a number."))
		}
		pos := int(n)
		if pos < 0 || pos >= len(o.Elements) {
			panic(runtimeErr(e.Bracket, "Array index out of bounds."))
		}
		return o.Elements[pos]
	case value.String:
		n, ok := idx.(value.Number)
		if !ok {
			panic(runtimeErr(e.Bracket, "String index must be a number."))
		}
		pos := int(n)
		if pos < 0 || pos >= len(o) {
			panic(runtimeErr(e.Bracket, "String index out of bounds."))
		}
		return value.String(o[pos])
	case *value.Object:
		key, ok := idx.(value.String)
		if !ok {
			panic(runtimeErr(e.Bracket, "Object index must be a string."))
		}
		v, ok := o.Get(string(key))
		if !ok {
			panic(runtimeErr(e.Bracket, "Object property not found."))
		}
		return v
	default:
		panic(runtimeErr(e.Bracket, "Only arrays, strings, and objects can be indexed."))
	}
}

// VisitIndexAssignExpr implements §4.3 IndexAssign. Writing at or past
// Array length grows the array, filling any gap between the previous
// length and the new index with null; a negative index is out of bounds.
func (i *Interpreter) VisitIndexAssignExpr(e *ast.IndexAssign) any {
	obj := i.evaluate(e.Object)
	idx := i.evaluate(e.Index)
	v := i.evaluate(e.Value)

	switch o := obj.(type) {
	case *value.Array:
		n, ok := idx.(value.Number)
		if !ok {
			panic(runtimeErr(e.Bracket, "Array index must be a number."))
		}
		pos := int(n)
		if pos < 0 {
			panic(runtimeErr(e.Bracket, "Array index out of bounds."))
		}
		for len(o.Elements) < pos {
			o.Elements = append(o.Elements, value.Nil{})
		}
		if pos == len(o.Elements) {
			o.Elements = append(o.Elements, v)
		} else {
			o.Elements[pos] = v
		}
		return v
	case *value.Object:
		key, ok := idx.(value.String)
		if !ok {
			panic(runtimeErr(e.Bracket, "Object index must be a string."))
		}
		o.Set(string(key), v)
		return v
	default:
		panic(runtimeErr(e.Bracket, "Only arrays and objects support index assignment."))
	}
}

func (i *Interpreter) VisitArrayExpr(e *ast.Array) any {
	elems := make([]value.Value, len(e.Elements))
	for idx, el := range e.Elements {
		elems[idx] = i.evaluate(el)
	}
	return value.NewArray(elems...)
}

func (i *Interpreter) VisitObjectExpr(e *ast.Object) any {
	obj := value.NewObject()
	for _, prop := range e.Properties {
		obj.Set(prop.Key.Lexeme, i.evaluate(prop.Value))
	}
	return obj
}

// formatFixed implements Number.toFixed(n): fixed-point string with n
// digits after the decimal point.
func formatFixed(n value.Number, digits int) value.String {
	return value.String(strconv.FormatFloat(float64(n), 'f', digits, 64))
}
