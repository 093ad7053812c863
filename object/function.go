package object

import (
	"fmt"

	"clou/ast"
	"clou/value"
)

// Function is a user-defined closure, as declared by a `function`
// statement/expression or a class method (§3).
type Function struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
	BoundThis     *Instance // non-nil once bound to an instance via Bind (Get on an Instance, or `super`)
}

func (*Function) ClouValueMarkerFunc() {}

func (f *Function) String() string {
	name := f.Declaration.Name.Lexeme
	if name == "" {
		return "<anonymous fn>"
	}
	return fmt.Sprintf("<fn %v>", name)
}

func NewFunction(decl *ast.Function, closure *Environment, isInit bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInitializer: isInit}
}

// Arity is the number of declared positional parameters, not counting a
// trailing rest parameter.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Bind returns a copy of f with BoundThis set, used when a method is
// looked up off an Instance (§4.3 Get) or off a superclass via `super`.
func (f *Function) Bind(instance *Instance) *Function {
	bound := *f
	bound.BoundThis = instance
	return &bound
}

// NativeFunction wraps a built-in implemented in Go (§4.5). Arity is
// fixed; variadic built-ins (print) use Variadic instead and ignore
// Arity.
type NativeFunction struct {
	Name     string
	Arity    int
	Variadic bool
	Fn       func(args []value.Value) value.Value
}

func (*NativeFunction) ClouValueMarkerFunc() {}

func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %v>", n.Name) }

// NativeError is panicked by a native function body on a domain/type
// error (wrong argument type, out-of-range value, etc); the interpreter
// catches it and re-raises as a RuntimeError.
type NativeError struct {
	Message string
}

func (e NativeError) Error() string { return e.Message }
