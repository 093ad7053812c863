package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clou/ast"
)

func TestParseSimpleExpressionStatement(t *testing.T) {
	stmts, err := New(`let r = (5+3)*2/(1+1);`).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.Var)
	assert.True(t, ok)
}

func TestParseMissingSemicolonReportsExpectedMessage(t *testing.T) {
	_, err := New("let x = 10\nprint(x);").Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expect ';' after variable declaration.")
}

func TestParseConstWithoutInitializerErrors(t *testing.T) {
	_, err := New("const PI;").Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expect initializer after 'const'.")
}

func TestParseInvalidAssignmentTargetErrors(t *testing.T) {
	_, err := New("1 + 1 = 2;").Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestParseTooManyParametersErrors(t *testing.T) {
	var src string
	src = "function f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "p" + itoa(i)
	}
	src += ") { return 1; }"

	_, err := New(src).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 parameters.")
}

func TestParseStopsAfterFirstError(t *testing.T) {
	_, err := New("let x = ;\nlet y = ;").Parse()
	require.Error(t, err)
}

func TestParseForLoopDesugarsToWhile(t *testing.T) {
	stmts, err := New(`for (let i = 0; i < 5; i = i + 1) { print(i); }`).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)

	_, isVar := block.Statements[0].(*ast.Var)
	assert.True(t, isVar)
	_, isWhile := block.Statements[1].(*ast.While)
	assert.True(t, isWhile)
}

func TestParseClassWithSuperclass(t *testing.T) {
	src := `class B extends A { function init(n) { this.n = n; } }`
	stmts, err := New(src).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	class, ok := stmts[0].(*ast.Class)
	require.True(t, ok)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "A", class.Superclass.Name.Lexeme)
}

func TestParseRestAndDefaultParameters(t *testing.T) {
	src := `function f(a, b = 10, ...rest) { return a; }`
	stmts, err := New(src).Parse()
	require.NoError(t, err)

	decl, ok := stmts[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Len(t, decl.Fn.Params, 2)
	assert.Nil(t, decl.Fn.Params[0].Default)
	assert.NotNil(t, decl.Fn.Params[1].Default)
	require.NotNil(t, decl.Fn.Rest)
	assert.Equal(t, "rest", decl.Fn.Rest.Lexeme)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}
