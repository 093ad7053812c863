package interpreter

import (
	"clou/ast"
	"clou/parser"
)

// parseSource runs the full lex+parse pipeline over source, returning
// the statement list or the single *clouerr.ParseError/*clouerr.LexError
// the parser recorded (§7: a parse aborts at the first error).
func parseSource(source string) ([]ast.Stmt, error) {
	return parser.New(source).Parse()
}

// Parse exposes parseSource to callers outside this package (cmd/clou's
// `run --ast` debug dump).
func Parse(source string) ([]ast.Stmt, error) {
	return parseSource(source)
}
