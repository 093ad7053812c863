package interpreter

import (
	"clou/ast"
	"clou/object"
)

// VisitClassStmt implements §4.3's class declaration protocol:
//  1. evaluate the superclass expression, if any, and check it names a
//     Class;
//  2. define the class's own name in the current scope up front (bound
//     to nil momentarily) so methods can refer to the class in a
//     self-recursive way if needed;
//  3. if there is a superclass, open a scope binding `super` to it, so
//     every method's closure captures that scope;
//  4. build each method as a Function closing over that scope, marking
//     `init` specially;
//  5. pop the `super` scope (if any) and redefine the class name to the
//     finished Class value in the original scope.
func (i *Interpreter) VisitClassStmt(s *ast.Class) {
	var superclass *object.Class
	if s.Superclass != nil {
		v, ok := i.environment.Get(s.Superclass.Name.Lexeme)
		if !ok {
			panic(runtimeErr(s.Superclass.Name, "Undefined variable '%s'", s.Superclass.Name.Lexeme))
		}
		sc, ok := v.(*object.Class)
		if !ok {
			panic(runtimeErr(s.Superclass.Name, "Superclass must be a class."))
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, nil, false)

	methodEnv := i.environment
	if superclass != nil {
		methodEnv = object.NewEnvironment(i.environment)
		methodEnv.Define("super", superclass, true)
	}

	class := object.NewClass(s.Name.Lexeme, superclass)
	for _, m := range s.Methods {
		fn := object.NewFunction(m.Fn, methodEnv, m.IsInit)
		class.Methods.Set(m.Fn.Name.Lexeme, fn)
	}

	i.environment.Define(s.Name.Lexeme, class, false)
}
