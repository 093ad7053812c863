package interpreter

import (
	"strings"

	"clou/ast"
)

// ExprPrinter renders an expression tree as a parenthesized prefix form,
// e.g. `x + 1` becomes `(+ x 1)`. It exists for `clou run --ast`
// debugging and is otherwise unused by evaluation.
type ExprPrinter struct{}

func (p ExprPrinter) Print(e ast.Expr) string {
	return e.Accept(p).(string)
}

func (p ExprPrinter) VisitAssignExpr(e *ast.Assign) any {
	return parens("=", e.Name.Lexeme, p.Print(e.Expr))
}

func (p ExprPrinter) VisitLogicalExpr(e *ast.Logical) any {
	return parens(e.Operator.Lexeme, p.Print(e.Left), p.Print(e.Right))
}

func (p ExprPrinter) VisitBinaryExpr(e *ast.Binary) any {
	return parens(e.Operator.Lexeme, p.Print(e.Left), p.Print(e.Right))
}

func (p ExprPrinter) VisitUnaryExpr(e *ast.Unary) any {
	return parens(e.Operator.Lexeme, p.Print(e.Right))
}

func (p ExprPrinter) VisitCallExpr(e *ast.Call) any {
	frags := []string{"call", p.Print(e.Callee)}
	for _, arg := range e.Arguments {
		frags = append(frags, p.Print(arg))
	}
	return parens(frags...)
}

func (p ExprPrinter) VisitGetExpr(e *ast.Get) any {
	return parens("get", p.Print(e.Object), e.Name.Lexeme)
}

func (p ExprPrinter) VisitSetExpr(e *ast.Set) any {
	return parens("set", p.Print(e.Object), e.Name.Lexeme, p.Print(e.Value))
}

func (p ExprPrinter) VisitIndexExpr(e *ast.Index) any {
	return parens("index", p.Print(e.Object), p.Print(e.Index))
}

func (p ExprPrinter) VisitIndexAssignExpr(e *ast.IndexAssign) any {
	return parens("index=", p.Print(e.Object), p.Print(e.Index), p.Print(e.Value))
}

func (p ExprPrinter) VisitNewExpr(e *ast.New) any {
	frags := []string{"new", e.ClassName.Lexeme}
	for _, arg := range e.Arguments {
		frags = append(frags, p.Print(arg))
	}
	return parens(frags...)
}

func (p ExprPrinter) VisitArrayExpr(e *ast.Array) any {
	frags := []string{"array"}
	for _, el := range e.Elements {
		frags = append(frags, p.Print(el))
	}
	return parens(frags...)
}

func (p ExprPrinter) VisitObjectExpr(e *ast.Object) any {
	frags := []string{"object"}
	for _, prop := range e.Properties {
		frags = append(frags, prop.Key.Lexeme+":"+p.Print(prop.Value))
	}
	return parens(frags...)
}

func (p ExprPrinter) VisitFunctionExpr(e *ast.Function) any {
	name := e.Name.Lexeme
	if name == "" {
		name = "anonymous"
	}
	return parens("fn", name)
}

func (p ExprPrinter) VisitSuperExpr(e *ast.Super) any {
	return "super." + e.Method.Lexeme
}

func (p ExprPrinter) VisitThisExpr(e *ast.This) any {
	return "this"
}

func (p ExprPrinter) VisitGroupingExpr(e *ast.Grouping) any {
	return parens("group", p.Print(e.Expr))
}

func (p ExprPrinter) VisitLiteralExpr(e *ast.Literal) any {
	if e.Value == nil {
		return "null"
	}
	return literalValue(e.Value).String()
}

func (p ExprPrinter) VisitVariableExpr(e *ast.Variable) any {
	return e.Name.Lexeme
}

func parens(frags ...string) string {
	return "(" + strings.Join(frags, " ") + ")"
}

// DumpAST renders every top-level expression statement and let/const
// declaration in prefix form, for `clou run --ast`. Any other statement
// kind is shown as the placeholder `(stmt)`; this is a debugging aid,
// not a serialization format.
func DumpAST(statements []ast.Stmt) []string {
	p := ExprPrinter{}
	lines := make([]string, 0, len(statements))
	for _, s := range statements {
		switch st := s.(type) {
		case *ast.Expression:
			lines = append(lines, p.Print(st.Expression))
		case *ast.Var:
			kind := "let"
			if st.IsConst {
				kind = "const"
			}
			lines = append(lines, parens(kind, st.Name.Lexeme, p.Print(st.Initializer)))
		default:
			lines = append(lines, "(stmt)")
		}
	}
	return lines
}
