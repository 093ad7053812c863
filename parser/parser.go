// Package parser turns a Clou token stream into an AST via recursive
// descent, following precedence climbing for expressions (§4.2).
package parser

import (
	"fmt"

	"clou/ast"
	"clou/clouerr"
	"clou/lexer"
	"clou/token"
)

const maxParams = 255

// syntaxError is an internal, unexported signal panicked to unwind to
// the statement boundary after a *clouerr.ParseError has already been
// recorded; it carries no data of its own.
type syntaxError struct{}

type Parser struct {
	lx       *lexer.Lexer
	previous token.Token
	current  token.Token

	currentClass    classKind
	currentFunction functionKind

	err *clouerr.ParseError
}

type classKind int

const (
	kindNoClass classKind = iota
	kindClass
	kindSubclass
)

type functionKind int

const (
	kindNoFunction functionKind = iota
	kindFunction
	kindMethod
	kindInitializer
)

func New(source string) *Parser {
	return &Parser{lx: lexer.New(source)}
}

// Parse returns the program's statements, or nil and the recorded error
// if parsing failed. Per §7, a single parse reports at most the first
// error encountered.
func (p *Parser) Parse() (stmts []ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			lexErr, isLex := r.(*clouerr.LexError)
			if _, ok := r.(syntaxError); !ok && !isLex {
				panic(r)
			}
			stmts, err = nil, nil
			if p.err != nil {
				err = p.err
			} else if isLex {
				err = lexErr
			}
		}
	}()

	p.advance()
	for !p.check(token.END_OF_FILE) && p.err == nil {
		stmts = append(stmts, p.declarationSync())
	}

	if p.err != nil {
		return nil, p.err
	}
	return stmts, nil
}

// declarationSync wraps declaration() so a parse error in one top-level
// declaration synchronizes and lets the caller keep scanning, even
// though Parse() ultimately discards everything once p.err is set (§7:
// "a single parse always reports at most one error and aborts" — the
// continued scan only serves to consume tokens past the error site
// cleanly, matching the teacher's synchronize-then-continue shape).
func (p *Parser) declarationSync() ast.Stmt {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syntaxError); ok {
				p.synchronize()
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUNCTION):
		fn := p.function(kindFunction)
		return &ast.FunctionDecl{Fn: fn}
	case p.match(token.LET):
		return p.varDeclaration(false)
	case p.match(token.CONST):
		return p.varDeclaration(true)
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.EXTENDS) {
		sname := p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: sname}
	}

	oldClass := p.currentClass
	p.currentClass = kindClass
	if superclass != nil {
		p.currentClass = kindSubclass
	}
	defer func() { p.currentClass = oldClass }()

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	var methods []ast.MethodDecl
	for !p.check(token.RIGHT_BRACE) && !p.check(token.END_OF_FILE) {
		p.consume(token.FUNCTION, "Expect method declaration.")
		kind := kindMethod
		isInit := p.current.Lexeme == "init"
		if isInit {
			kind = kindInitializer
		}
		fn := p.function(kind)
		methods = append(methods, ast.MethodDecl{Fn: fn, IsInit: isInit})
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

// function parses a name, parameter list, and body. For kindFunction a
// name is required; callers of functionExpr (anonymous function
// expressions) skip straight to the parameter list instead.
func (p *Parser) function(kind functionKind) *ast.Function {
	oldFn := p.currentFunction
	p.currentFunction = kind
	defer func() { p.currentFunction = oldFn }()

	kindStr := "function"
	if kind == kindMethod || kind == kindInitializer {
		kindStr = "method"
	}
	name := p.consume(token.IDENTIFIER, "Expect "+kindStr+" name.")

	return p.functionRest(name)
}

func (p *Parser) functionRest(name token.Token) *ast.Function {
	p.consume(token.LEFT_PAREN, "Expect '(' after function name.")
	params, rest := p.parameterList()
	p.consume(token.LEFT_BRACE, "Expect '{' before function body.")
	body := p.bareBlock()

	return &ast.Function{Name: name, Params: params, Rest: rest, Body: body}
}

// parameterList parses `(' already consumed) a comma-separated list of
// identifiers, each optionally followed by `= expr`, with an optional
// trailing `...ident` rest parameter, up to `)`.
func (p *Parser) parameterList() ([]ast.Param, *token.Token) {
	var params []ast.Param
	var rest *token.Token

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxParams {
				p.errorAt(p.current, fmt.Sprintf("Can't have more than %d parameters.", maxParams))
			}

			if p.match(token.SPREAD) {
				name := p.consume(token.IDENTIFIER, "Expect rest parameter name.")
				rest = &name
				break
			}

			pname := p.consume(token.IDENTIFIER, "Expect parameter name.")
			var def ast.Expr
			if p.match(token.EQUAL) {
				def = p.expression()
			}
			params = append(params, ast.Param{Name: pname, Default: def})

			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	return params, rest
}

func (p *Parser) varDeclaration(isConst bool) ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect a variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	} else if isConst {
		p.errorAt(p.previous, "Expect initializer after 'const'.")
	} else {
		init = &ast.Literal{Value: nil}
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, IsConst: isConst, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.LEFT_BRACE):
		return p.block()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) returnStatement() ast.Stmt {
	kw := p.previous
	var val ast.Expr
	if !p.check(token.SEMICOLON) {
		val = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: kw, Value: val}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Condition: cond, Body: body}
}

// forStatement desugars `for (init; cond; update) body` into
// `{ init; while (cond) { body; update; } }` at parse time (§4.2, §9);
// the evaluator never sees a For node.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.LET):
		init = p.varDeclaration(false)
	case p.match(token.CONST):
		init = p.varDeclaration(true)
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr = &ast.Literal{Value: true}
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var update ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		update = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()
	loopBody := ast.NewBlock(body)
	if update != nil {
		loopBody.Statements = append(loopBody.Statements, &ast.Expression{Expression: update})
	}

	whileLoop := &ast.While{Condition: cond, Body: loopBody}
	return ast.NewBlock(init, whileLoop)
}

func (p *Parser) block() ast.Stmt {
	return ast.NewBlock(p.bareBlock()...)
}

func (p *Parser) bareBlock() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.check(token.END_OF_FILE) {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Expression: expr}
}

// Expression parsing, lowest to highest precedence (§4.2).
// --------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative; the LHS must be a Variable, Get, or
// Index, rewritten here into Assign, Set, or IndexAssign respectively.
func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous
		val := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Expr: val}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: val}
		case *ast.Index:
			return &ast.IndexAssign{Object: target.Object, Bracket: target.Bracket, Index: target.Index, Value: val}
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func doLeftBinary[T ast.Binary | ast.Logical, E interface {
	*T
	ast.Expr
}](p *Parser, next func() ast.Expr, kinds ...token.TokenKind) ast.Expr {
	left := next()
	for p.matchAny(kinds...) {
		op := p.previous
		right := next()
		e := T{Operator: op, Left: left, Right: right}
		left = E(&e)
	}
	return left
}

func (p *Parser) logicOr() ast.Expr {
	return doLeftBinary[ast.Logical, *ast.Logical](p, p.logicAnd, token.OR)
}

func (p *Parser) logicAnd() ast.Expr {
	return doLeftBinary[ast.Logical, *ast.Logical](p, p.equality, token.AND)
}

func (p *Parser) equality() ast.Expr {
	return doLeftBinary[ast.Binary, *ast.Binary](p, p.comparison, token.EQUAL_EQUAL, token.BANG_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return doLeftBinary[ast.Binary, *ast.Binary](p, p.additive,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL)
}

func (p *Parser) additive() ast.Expr {
	return doLeftBinary[ast.Binary, *ast.Binary](p, p.multiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) multiplicative() ast.Expr {
	return doLeftBinary[ast.Binary, *ast.Binary](p, p.unary, token.STAR, token.SLASH, token.PERCENT)
}

func (p *Parser) unary() ast.Expr {
	if p.matchAny(token.BANG, token.NOT, token.MINUS) {
		op := p.previous
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.power()
}

// power is right-associative, binding tighter than unary's operand but
// looser than postfix call/member/index (§4.2): `-a^b` is `-(a^b)`, and
// `a^b^c` is `a^(b^c)`.
func (p *Parser) power() ast.Expr {
	left := p.call()
	if p.match(token.CARET) {
		op := p.previous
		right := p.unary()
		return &ast.Binary{Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.LEFT_BRACKET):
			bracket := p.previous
			idx := p.expression()
			p.consume(token.RIGHT_BRACKET, "Expect ']' after index.")
			expr = &ast.Index{Object: expr, Bracket: bracket, Index: idx}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxParams {
				p.errorAt(p.current, fmt.Sprintf("Can't have more than %d arguments.", maxParams))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}
	case p.match(token.NULL):
		return &ast.Literal{Value: nil}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous}
	case p.match(token.SUPER):
		return p.super_()
	case p.matchAny(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous.Literal}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous}
	case p.match(token.NEW):
		return p.newExpr()
	case p.match(token.FUNCTION):
		return p.functionExpr()
	case p.match(token.LEFT_BRACKET):
		return p.arrayExpr()
	case p.match(token.LEFT_BRACE):
		return p.objectExpr()
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Expr: expr}
	}

	p.errorAt(p.current, "Expect expression.")
	panic(syntaxError{})
}

func (p *Parser) super_() ast.Expr {
	keyword := p.previous
	switch p.currentClass {
	case kindNoClass:
		p.errorAt(keyword, "Cannot use 'super' outside of a class.")
	case kindClass:
		p.errorAt(keyword, "Cannot use 'super' in a class with no superclass.")
	}
	p.consume(token.DOT, "Expect '.' after 'super'.")
	method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
	return &ast.Super{Keyword: keyword, Method: method}
}

func (p *Parser) newExpr() ast.Expr {
	name := p.consume(token.IDENTIFIER, "Expect class name after 'new'.")
	p.consume(token.LEFT_PAREN, "Expect '(' after class name.")
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.New{ClassName: name, Paren: paren, Arguments: args}
}

func (p *Parser) functionExpr() ast.Expr {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'function'.")
	params, rest := p.parameterList()
	p.consume(token.LEFT_BRACE, "Expect '{' before function body.")
	body := p.bareBlock()
	return &ast.Function{Params: params, Rest: rest, Body: body}
}

func (p *Parser) arrayExpr() ast.Expr {
	var elements []ast.Expr
	if !p.check(token.RIGHT_BRACKET) {
		for {
			elements = append(elements, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_BRACKET, "Expect ']' after array elements.")
	return &ast.Array{Elements: elements}
}

func (p *Parser) objectExpr() ast.Expr {
	var props []ast.Property
	if !p.check(token.RIGHT_BRACE) {
		for {
			key := p.consume(token.IDENTIFIER, "Expect property name.")
			p.consume(token.COLON, "Expect ':' after property name.")
			val := p.expression()
			props = append(props, ast.Property{Key: key, Value: val})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after object properties.")
	return &ast.Object{Properties: props}
}

// Token plumbing.
// --------------------------------------------------------

func (p *Parser) consume(kind token.TokenKind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.current, message)
	panic(syntaxError{})
}

func (p *Parser) matchAny(kinds ...token.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) match(kind token.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.current.Kind == kind
}

func (p *Parser) advance() token.Token {
	p.previous = p.current
	p.current = p.lx.NextToken()
	return p.previous
}

func (p *Parser) errorAt(tok token.Token, message string) {
	if p.err == nil {
		p.err = &clouerr.ParseError{Token: tok, Message: message}
	}
}

// synchronize discards tokens until it finds a likely statement
// boundary, letting the parser keep scanning cleanly past the first
// error (§4.2, §7).
func (p *Parser) synchronize() {
	p.advance()
	for p.current.Kind != token.END_OF_FILE {
		if p.previous.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUNCTION, token.LET, token.CONST,
			token.FOR, token.IF, token.WHILE, token.RETURN:
			return
		}
		p.advance()
	}
}
