// Package clouerr defines the three concrete error kinds the spec's
// error-handling model distinguishes: lexing, parsing, and evaluation.
// Each carries a message and a line (LexError directly, the others
// through an optional token) so a caller can render a "[line N] ..."
// report; none carries the source text. Each is distinguishable via
// errors.As/errors.Is.
package clouerr

import (
	"fmt"

	"clou/token"
)

// LexError is raised (via panic, then recovered at the nearest lex/parse
// boundary) on an unterminated string or an unrecognized byte.
type LexError struct {
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d] Lex error: %s", e.Line, e.Message)
}

// ParseError is raised on malformed syntax. Token is the token the
// parser was looking at when it gave up; it may be the end-of-file
// token.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	where := "'" + e.Token.Lexeme + "'"
	if e.Token.Kind == token.END_OF_FILE {
		where = "end"
	}
	return fmt.Sprintf("[line %d] Parse error at %s: %s", e.Token.Line, where, e.Message)
}

// RuntimeError is raised by the evaluator for any failure that isn't a
// Return/control-flow signal: type errors, undefined names, out-of-range
// indices, and so on. Token, when non-nil, locates the failure; it is
// nil for errors synthesized outside of evaluating a specific AST node
// (e.g. a require() path failure).
type RuntimeError struct {
	Token   *token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("Runtime error: %s", e.Message)
	}
	return fmt.Sprintf("[line %d] Runtime error: %s", e.Token.Line, e.Message)
}
