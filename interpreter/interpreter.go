// Package interpreter walks the AST (§4.3): expression evaluation,
// statement execution, and the built-ins of §4.5.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"clou/ast"
	"clou/clouerr"
	"clou/module"
	"clou/object"
	"clou/token"
	"clou/value"
)

// returnSignal is panicked by VisitReturnStmt and recovered by the
// nearest enclosing call frame (§4.3 Return) — not an error, ordinary
// non-local control flow.
type returnSignal struct {
	Value value.Value
}

// Interpreter is Clou's evaluator. It doubles as the embedding-API
// engine of §6 (RunFile/RunPrompt) since the spec draws no hard line
// between "the evaluator" and "the engine a host constructs".
type Interpreter struct {
	globals     *object.Environment
	environment *object.Environment
	loader      *module.Loader
	out         io.Writer

	// currentDir is the directory of the module currently executing,
	// used to resolve relative paths passed to require() (§4.4). Empty
	// for the top-level script/REPL.
	currentDir string
}

// New constructs an engine with its own globals frame and built-ins
// installed (§4.5). loader may be nil, in which case require() always
// raises a runtime error (no module system configured).
func New(out io.Writer, loader *module.Loader) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	i := &Interpreter{
		globals: object.NewEnvironment(nil),
		loader:  loader,
		out:     out,
	}
	i.environment = i.globals
	i.installBuiltins()
	return i
}

// RunFile fetches path's source from the loader's store and evaluates
// it at top level (§6 run_file).
func (i *Interpreter) RunFile(path string) error {
	if i.loader == nil {
		return &clouerr.RuntimeError{Message: "No module system configured."}
	}
	content, ok := i.loader.GetFile(path)
	if !ok {
		return &clouerr.RuntimeError{Message: fmt.Sprintf("Cannot find module %q.", path)}
	}
	return i.RunPrompt(content)
}

// RunPrompt evaluates a single chunk of source (a REPL entry or a whole
// file) in the shared globals frame. Per §7, a failed parse or runtime
// error is returned to the caller without corrupting interpreter state
// for the next call — each RunPrompt call starts its own fresh parse,
// so the "had error" latch is just this call's return value.
func (i *Interpreter) RunPrompt(source string) error {
	stmts, perr := parseSource(source)
	if perr != nil {
		return perr
	}

	i.environment = i.globals
	return i.interpretTopLevel(stmts)
}

func (i *Interpreter) interpretTopLevel(statements []ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toRuntimeError(r)
		}
	}()

	for _, s := range statements {
		i.execute(s)
	}
	return nil
}

// toRuntimeError normalizes the panics evaluation can produce — a
// *clouerr.RuntimeError raised directly, or a value.TypeError/
// object.NativeError from a lower-level helper — into a
// *clouerr.RuntimeError callers branch on via errors.As. A
// *clouerr.ParseError or *clouerr.LexError from a require()d module's
// source is returned unchanged.
func toRuntimeError(r any) error {
	switch e := r.(type) {
	case *clouerr.RuntimeError:
		return e
	case *clouerr.ParseError:
		return e
	case *clouerr.LexError:
		return e
	case value.TypeError:
		return &clouerr.RuntimeError{Message: e.Message}
	case object.NativeError:
		return &clouerr.RuntimeError{Message: e.Message}
	case error:
		return &clouerr.RuntimeError{Message: e.Error()}
	default:
		panic(r)
	}
}

func (i *Interpreter) execute(s ast.Stmt) {
	s.Accept(i)
}

func (i *Interpreter) evaluate(e ast.Expr) value.Value {
	return e.Accept(i).(value.Value)
}

func runtimeErr(tok token.Token, format string, args ...any) *clouerr.RuntimeError {
	return &clouerr.RuntimeError{Token: &tok, Message: fmt.Sprintf(format, args...)}
}

// Statement visitors.
// --------------------------------------------------------

func (i *Interpreter) VisitBlockStmt(s *ast.Block) {
	i.executeInScope(s.Statements, object.NewEnvironment(i.environment))
}

func (i *Interpreter) executeInScope(statements []ast.Stmt, env *object.Environment) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) VisitExpressionStmt(s *ast.Expression) {
	i.evaluate(s.Expression)
}

func (i *Interpreter) VisitVarStmt(s *ast.Var) {
	var v value.Value = value.Nil{}
	if s.Initializer != nil {
		v = i.evaluate(s.Initializer)
	}
	i.environment.Define(s.Name.Lexeme, v, s.IsConst)
}

func (i *Interpreter) VisitIfStmt(s *ast.If) {
	if bool(value.Truthiness(i.evaluate(s.Condition))) {
		i.execute(s.ThenBranch)
	} else if s.ElseBranch != nil {
		i.execute(s.ElseBranch)
	}
}

func (i *Interpreter) VisitWhileStmt(s *ast.While) {
	for bool(value.Truthiness(i.evaluate(s.Condition))) {
		i.execute(s.Body)
	}
}

func (i *Interpreter) VisitReturnStmt(s *ast.Return) {
	var v value.Value = value.Nil{}
	if s.Value != nil {
		v = i.evaluate(s.Value)
	}
	panic(returnSignal{Value: v})
}

func (i *Interpreter) VisitFunctionDeclStmt(s *ast.FunctionDecl) {
	fn := object.NewFunction(s.Fn, i.environment, false)
	i.environment.Define(s.Fn.Name.Lexeme, fn, false)
}

// Expression visitors.
// --------------------------------------------------------

func (i *Interpreter) VisitLiteralExpr(e *ast.Literal) any {
	return literalValue(e.Value)
}

func literalValue(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Boolean(t)
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	default:
		panic(fmt.Sprintf("unreachable literal type %T", v))
	}
}

func (i *Interpreter) VisitVariableExpr(e *ast.Variable) any {
	if v, ok := i.environment.Get(e.Name.Lexeme); ok {
		return v
	}
	panic(runtimeErr(e.Name, "Undefined variable '%s'", e.Name.Lexeme))
}

func (i *Interpreter) VisitGroupingExpr(e *ast.Grouping) any {
	return i.evaluate(e.Expr)
}

func (i *Interpreter) VisitUnaryExpr(e *ast.Unary) any {
	right := i.evaluate(e.Right)
	switch e.Operator.Kind {
	case token.BANG, token.NOT:
		return value.Boolean(!value.Truthiness(right))
	case token.MINUS:
		return withTypeError(e.Operator, func() value.Value { return value.Neg(right) })
	default:
		panic(fmt.Sprintf("unreachable unary operator %v", e.Operator.Kind))
	}
}

func (i *Interpreter) VisitBinaryExpr(e *ast.Binary) any {
	left := i.evaluate(e.Left)
	right := i.evaluate(e.Right)

	switch e.Operator.Kind {
	case token.PLUS:
		return withTypeError(e.Operator, func() value.Value { return value.Add(left, right) })
	case token.MINUS:
		return withTypeError(e.Operator, func() value.Value { return value.Sub(left, right) })
	case token.STAR:
		return withTypeError(e.Operator, func() value.Value { return value.Mul(left, right) })
	case token.SLASH:
		return withTypeError(e.Operator, func() value.Value { return value.Div(left, right) })
	case token.PERCENT:
		return withTypeError(e.Operator, func() value.Value { return value.Mod(left, right) })
	case token.CARET:
		return withTypeError(e.Operator, func() value.Value { return value.Pow(left, right) })
	case token.LESS:
		return withTypeError(e.Operator, func() value.Value { return value.LessThan(left, right) })
	case token.LESS_EQUAL:
		return withTypeError(e.Operator, func() value.Value {
			return value.Boolean(value.LessThan(left, right) || value.EqualTo(left, right))
		})
	case token.GREATER:
		return withTypeError(e.Operator, func() value.Value { return value.GreaterThan(left, right) })
	case token.GREATER_EQUAL:
		return withTypeError(e.Operator, func() value.Value {
			return value.Boolean(value.GreaterThan(left, right) || value.EqualTo(left, right))
		})
	case token.EQUAL_EQUAL:
		return value.EqualTo(left, right)
	case token.BANG_EQUAL:
		return value.Boolean(!value.EqualTo(left, right))
	default:
		panic(fmt.Sprintf("unreachable binary operator %v", e.Operator.Kind))
	}
}

// withTypeError converts a value.TypeError panicked by a value package
// helper into a *clouerr.RuntimeError located at operator, so the
// caller sees a source position instead of a bare type-error message.
func withTypeError(operator token.Token, f func() value.Value) value.Value {
	defer func() {
		if r := recover(); r != nil {
			if te, ok := r.(value.TypeError); ok {
				panic(runtimeErr(operator, "%s", te.Message))
			}
			panic(r)
		}
	}()
	return f()
}

func (i *Interpreter) VisitLogicalExpr(e *ast.Logical) any {
	left := i.evaluate(e.Left)
	switch e.Operator.Kind {
	case token.OR:
		if value.Truthiness(left) {
			return left
		}
	case token.AND:
		if !bool(value.Truthiness(left)) {
			return left
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) VisitAssignExpr(e *ast.Assign) any {
	v := i.evaluate(e.Expr)
	if err := i.environment.Assign(e.Name.Lexeme, v); err != nil {
		panic(runtimeErr(e.Name, "%s", err.Error()))
	}
	return v
}
