package interpreter

import (
	"fmt"

	"clou/ast"
	"clou/object"
	"clou/value"
)

func (i *Interpreter) VisitCallExpr(e *ast.Call) any {
	callee := i.evaluate(e.Callee)

	args := make([]value.Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		args[idx] = i.evaluate(a)
	}

	switch fn := callee.(type) {
	case *object.NativeFunction:
		return i.callNative(fn, args, e.Paren)
	case *object.Function:
		return i.callFunction(fn, args)
	default:
		panic(runtimeErr(e.Paren, "Can only call functions and classes."))
	}
}

func (i *Interpreter) callNative(fn *object.NativeFunction, args []value.Value, paren any) value.Value {
	if !fn.Variadic && len(args) != fn.Arity {
		// A wrong argument count to a built-in (e.g. `len()`) is a
		// user-program error; it surfaces as a RuntimeError.
		panic(object.NativeError{Message: fmt.Sprintf("native function %q expects %d arguments, got %d", fn.Name, fn.Arity, len(args))})
	}
	return fn.Fn(args)
}

// callFunction implements §4.3 Call for a user Function: bind
// positional arguments to parameters (defaults fire for a
// missing-or-explicit-null argument, per §9), collect the rest
// parameter if any, bind `this` if the function is bound, execute the
// body, and unwind on Return.
func (i *Interpreter) callFunction(fn *object.Function, args []value.Value) value.Value {
	callFrame := object.NewEnvironment(fn.Closure)

	previous := i.environment
	i.environment = callFrame

	params := fn.Declaration.Params
	for idx, param := range params {
		var arg value.Value
		if idx < len(args) {
			arg = args[idx]
		}
		if (idx >= len(args) || isNil(arg)) && param.Default != nil {
			arg = i.evaluate(param.Default)
		} else if idx >= len(args) {
			arg = value.Nil{}
		}
		callFrame.Define(param.Name.Lexeme, arg, false)
	}

	if fn.Declaration.Rest != nil {
		var rest []value.Value
		if len(args) > len(params) {
			rest = append(rest, args[len(params):]...)
		}
		callFrame.Define(fn.Declaration.Rest.Lexeme, value.NewArray(rest...), false)
	}

	if fn.BoundThis != nil {
		callFrame.Define("this", fn.BoundThis, false)
	}

	release, ok := object.EnterCall(fn.Closure, callName(fn))
	defer release()
	if !ok {
		i.environment = previous
		return value.String("")
	}

	result := i.runFunctionBody(fn)
	i.environment = previous
	return result
}

func callName(fn *object.Function) string {
	if fn.Declaration.Name.Lexeme == "" {
		return "<anonymous>"
	}
	return fn.Declaration.Name.Lexeme
}

func (i *Interpreter) runFunctionBody(fn *object.Function) (result value.Value) {
	result = value.Nil{}
	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				if fn.IsInitializer {
					result = fn.BoundThis
				} else {
					result = ret.Value
				}
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range fn.Declaration.Body {
		i.execute(stmt)
	}
	if fn.IsInitializer {
		result = fn.BoundThis
	}
	return result
}

func isNil(v value.Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(value.Nil)
	return ok
}

// VisitNewExpr implements §4.3 New: construct an Instance, and if the
// class chain has an init method, bind and call it before returning the
// instance.
func (i *Interpreter) VisitNewExpr(e *ast.New) any {
	classVal, ok := i.environment.Get(e.ClassName.Lexeme)
	if !ok {
		panic(runtimeErr(e.ClassName, "Undefined variable '%s'", e.ClassName.Lexeme))
	}
	class, ok := classVal.(*object.Class)
	if !ok {
		panic(runtimeErr(e.ClassName, "'%s' is not a class.", e.ClassName.Lexeme))
	}

	instance := object.NewInstance(class)

	if init, ok := class.FindMethod("init"); ok {
		args := make([]value.Value, len(e.Arguments))
		for idx, a := range e.Arguments {
			args[idx] = i.evaluate(a)
		}
		i.callFunction(init.Bind(instance), args)
	}

	return instance
}

func (i *Interpreter) VisitFunctionExpr(e *ast.Function) any {
	return object.NewFunction(e, i.environment, false)
}

func (i *Interpreter) VisitThisExpr(e *ast.This) any {
	if v, ok := i.environment.Get("this"); ok {
		return v
	}
	panic(runtimeErr(e.Keyword, "Cannot use 'this' outside of a method."))
}

func (i *Interpreter) VisitSuperExpr(e *ast.Super) any {
	superVal, ok := i.environment.Get("super")
	if !ok {
		panic(runtimeErr(e.Keyword, "Cannot use 'super' outside of a subclass method."))
	}
	superclass, ok := superVal.(*object.Class)
	if !ok {
		panic(runtimeErr(e.Keyword, "'super' did not resolve to a class."))
	}

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		panic(runtimeErr(e.Method, "Undefined property '%s'.", e.Method.Lexeme))
	}

	thisVal, ok := i.environment.Get("this")
	if !ok {
		panic(runtimeErr(e.Keyword, "Cannot use 'super' outside of a method."))
	}
	instance, ok := thisVal.(*object.Instance)
	if !ok {
		panic(runtimeErr(e.Keyword, "'this' did not resolve to an instance."))
	}

	return method.Bind(instance)
}
