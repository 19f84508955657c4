// parser.go — recursive-descent parser for NovaScript.
//
// The parser consumes the full token slice produced by the lexer and builds
// a Program. Statement dispatch is keyword-driven; expressions use a single
// binary precedence level (left-associative) under an assignment layer, per
// the language grammar:
//
//	statement := let | set | say | when | match | repeat (while|for|with)
//	           | define function | call | return | throw | try
//	expr      := assignment
//	assignment:= binary [ '=' assignment ]      (target must be a name/index)
//	binary    := primary { op primary }         op ∈ + - * / > < >= <= == !=
//	primary   := NUMBER | '-' NUMBER | STRING | name [index|call]
//	           | '(' expr ')' | '[' list ']' | '{' dict '}'
//
// While building nodes the parser maintains the SymbolTable: names must be
// declared before use, redeclaration in the current scope is rejected, and
// a function is registered in its enclosing scope before its body parses so
// the body can call it recursively. Each indented block opens a nested
// scope, so declarations inside a block do not leak past its end.
//
// Error policy: a failed production surfaces a *ParseError carrying the
// offending token. Parse resynchronizes to the next statement boundary and
// then reports that first error to its caller (single error per run).
package novascript

import "fmt"

// Parser turns a token stream into a Program.
type Parser struct {
	tokens []Token
	cur    int
	table  *SymbolTable
}

// NewParser creates a parser over tokens with a fresh symbol table.
func NewParser(tokens []Token) *Parser {
	return NewParserWith(tokens, NewSymbolTable())
}

// NewParserWith creates a parser that records declarations into an existing
// table. REPL sessions use this to keep declarations across inputs.
func NewParserWith(tokens []Token, table *SymbolTable) *Parser {
	return &Parser{tokens: tokens, table: table}
}

// Parse lexes and parses src in one step, returning the program and the
// symbol table the parser built.
func Parse(src string) (*Program, *SymbolTable, error) {
	return ParseWith(src, DefaultConfig())
}

// ParseWith is Parse with explicit lexer limits.
func ParseWith(src string, cfg *Config) (*Program, *SymbolTable, error) {
	tokens := NewLexerWith(src, cfg).Scan()
	p := NewParser(tokens)
	prog, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return prog, p.Table(), nil
}

// Table exposes the symbol table built during parsing; the semantic pass
// continues to refine it.
func (p *Parser) Table() *SymbolTable { return p.table }

// Parse consumes the whole token stream. On failure it resynchronizes to
// the next statement boundary and surfaces the first error.
func (p *Parser) Parse() (*Program, error) {
	var stmts []Stmt
	for !p.check(END_OF_FILE) {
		if p.match(NEWLINE) || p.match(DEDENT) {
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			p.synchronize()
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Program{Statements: stmts}, nil
}

// ───────────────────────── token plumbing ─────────────────────────

func (p *Parser) peek() Token {
	if p.cur >= len(p.tokens) {
		return Token{Type: END_OF_FILE}
	}
	return p.tokens[p.cur]
}

func (p *Parser) peekNext() Token {
	if p.cur+1 >= len(p.tokens) {
		return Token{Type: END_OF_FILE}
	}
	return p.tokens[p.cur+1]
}

func (p *Parser) previous() Token { return p.tokens[p.cur-1] }

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.cur < len(p.tokens) {
		p.cur++
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.fail(msg)
}

func (p *Parser) fail(msg string) error {
	return &ParseError{Tok: p.peek(), Msg: msg}
}

// synchronize skips tokens up to the next plausible statement start so a
// caller could continue after an error. Parse currently stops at the first
// error regardless; the skip keeps the table and cursor sane for REPL reuse.
func (p *Parser) synchronize() {
	for !p.check(END_OF_FILE) {
		switch p.peek().Type {
		case NEWLINE, DEDENT:
			p.advance()
			return
		case LET, SET, SAY, WHEN, MATCH, REPEAT, DEFINE, CALL, RETURN, THROW, TRY, END:
			return
		}
		p.advance()
	}
}

// ───────────────────────── statements ─────────────────────────

func (p *Parser) parseStmt() (Stmt, error) {
	if p.check(UNKNOWN) {
		return nil, p.fail("invalid token")
	}
	switch {
	case p.match(LET):
		return p.parseVarDecl()
	case p.match(SET):
		return p.parseSetStmt()
	case p.match(SAY):
		return p.parseSayStmt()
	case p.match(WHEN):
		return p.parseWhenStmt()
	case p.match(MATCH):
		return p.parseMatchStmt()
	case p.match(REPEAT):
		return p.parseRepeatStmt()
	case p.match(DEFINE):
		return p.parseFunctionDef()
	case p.match(CALL):
		return p.parseCallStmt()
	case p.match(RETURN):
		return p.parseReturnStmt()
	case p.match(THROW):
		return p.parseThrowStmt()
	case p.match(TRY):
		return p.parseTryCatchStmt()
	case p.check(INCREASE), p.check(CREATE), p.check(OPEN):
		return nil, p.fail(fmt.Sprintf("'%s' is reserved but not supported", p.peek().Lexeme))
	default:
		return nil, p.fail("expected statement")
	}
}

// parseBlock parses one indented block in a nested scope: INDENT, a
// statement list, DEDENT. pre, when non-nil, runs inside the fresh scope
// before the first statement (loop iterators, parameters, catch variables).
func (p *Parser) parseBlock(pre func() error) ([]Stmt, error) {
	if _, err := p.expect(INDENT, "expected an indented block"); err != nil {
		return nil, err
	}
	p.table.Enter()
	defer func() { _ = p.table.Exit() }()
	if pre != nil {
		if err := pre(); err != nil {
			return nil, err
		}
	}
	stmts, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DEDENT, "expected dedent to close block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseStmtList() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(DEDENT) && !p.check(END) && !p.check(END_OF_FILE) {
		if p.match(NEWLINE) {
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	for p.match(NEWLINE) {
	}
	return stmts, nil
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	name, err := p.expect(IDENTIFIER, "expected identifier after 'let'")
	if err != nil {
		return nil, err
	}
	if !p.match(BE) && !p.match(EQUAL) {
		return nil, p.fail("expected 'be' or '=' after identifier")
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	declared := TypeNone
	isLong := false
	if p.match(AS) {
		typeTok, err := p.expect(IDENTIFIER, "expected type name after 'as'")
		if err != nil {
			return nil, err
		}
		t, ok := typeNames[typeTok.Lexeme]
		if !ok {
			return nil, &ParseError{Tok: typeTok, Msg: fmt.Sprintf("unknown type name '%s'", typeTok.Lexeme)}
		}
		declared = t
		if p.check(IDENTIFIER) && p.peek().Lexeme == "long" {
			p.advance()
			isLong = true
		}
	}
	p.match(NEWLINE)

	if p.table.ExistsInCurrent(name.Lexeme) {
		return nil, &ParseError{Tok: name, Msg: fmt.Sprintf("'%s' is already declared in this scope", name.Lexeme)}
	}
	// Provisional type for immediate use-checking; the semantic pass
	// refines it from the full initializer.
	provisional := declared
	if provisional == TypeNone {
		if lit, ok := init.(*LiteralExpr); ok {
			switch lit.Value.Type {
			case NUMBER:
				provisional = TypeInteger
			case STRING:
				provisional = TypeString
			}
		}
	}
	if err := p.table.Declare(&Symbol{Name: name, Type: provisional, IsLong: isLong}); err != nil {
		return nil, &ParseError{Tok: name, Msg: err.Error()}
	}
	return &VarDeclStmt{Name: name, Init: init, Declared: declared, IsLong: isLong}, nil
}

func (p *Parser) parseSetStmt() (Stmt, error) {
	name, err := p.expect(IDENTIFIER, "expected identifier after 'set'")
	if err != nil {
		return nil, err
	}
	if !p.table.Exists(name.Lexeme) {
		return nil, &ParseError{Tok: name, Msg: fmt.Sprintf("undeclared identifier '%s'", name.Lexeme)}
	}

	if p.match(LEFT_BRACKET) {
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_BRACKET, "expected ']' after index"); err != nil {
			return nil, err
		}
		if _, err := p.expect(EQUAL, "expected '=' after index target"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.match(NEWLINE)
		target := &IndexExpr{Base: &VariableExpr{Name: name}, Index: index}
		return &IndexAssignStmt{Target: target, Value: value}, nil
	}

	if _, err := p.expect(EQUAL, "expected '=' after identifier"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &SetStmt{Name: name, Value: value}, nil
}

func (p *Parser) parseSayStmt() (Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &SayStmt{Expr: expr}, nil
}

func (p *Parser) parseWhenStmt() (Stmt, error) {
	var branches []WhenBranch

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN, "expected 'then' after condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	branches = append(branches, WhenBranch{Condition: cond, Body: body})

	sawFinal := false
	for p.match(OTHERWISE) {
		if sawFinal {
			return nil, p.fail("no branch may follow an unconditional 'otherwise'")
		}
		if p.match(WHEN) {
			cond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(THEN, "expected 'then' after condition"); err != nil {
				return nil, err
			}
			body, err := p.parseBlock(nil)
			if err != nil {
				return nil, err
			}
			branches = append(branches, WhenBranch{Condition: cond, Body: body})
		} else {
			body, err := p.parseBlock(nil)
			if err != nil {
				return nil, err
			}
			branches = append(branches, WhenBranch{Body: body})
			sawFinal = true
		}
	}

	if _, err := p.expect(END, "expected 'end' to close 'when' statement"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &WhenStmt{Branches: branches}, nil
}

func (p *Parser) parseMatchStmt() (Stmt, error) {
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT, "expected indented cases after 'match'"); err != nil {
		return nil, err
	}

	var cases []MatchCase
	for p.match(CASE) {
		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN, "expected 'then' after case pattern"); err != nil {
			return nil, err
		}

		var body []Stmt
		if p.check(INDENT) {
			body, err = p.parseBlock(nil)
			if err != nil {
				return nil, err
			}
		} else {
			// Single-statement case body; still scoped on its own.
			p.table.Enter()
			stmt, err := p.parseStmt()
			_ = p.table.Exit()
			if err != nil {
				return nil, err
			}
			body = []Stmt{stmt}
		}
		cases = append(cases, MatchCase{Pattern: pattern, Body: body})
		for p.match(NEWLINE) {
		}
	}

	if _, err := p.expect(DEDENT, "expected dedent after match cases"); err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "expected 'end' to close 'match' statement"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &MatchStmt{Subject: subject, Cases: cases}, nil
}

func (p *Parser) parseRepeatStmt() (Stmt, error) {
	switch {
	case p.match(WHILE):
		return p.parseWhileLoop()
	case p.match(FOR):
		return p.parseForLoop()
	case p.match(WITH):
		return p.parseWithLoop()
	default:
		return nil, p.fail("expected 'while', 'for' or 'with' after 'repeat'")
	}
}

func (p *Parser) parseWhileLoop() (Stmt, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "expected 'end' to close 'repeat while' loop"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) parseForLoop() (Stmt, error) {
	iter, err := p.expect(IDENTIFIER, "expected iterator name after 'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FROM, "expected 'from' after iterator name"); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO, "expected 'to' after start expression"); err != nil {
		return nil, err
	}
	endExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var step Expr
	if p.match(STEP) {
		if step, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock(func() error {
		return p.table.Declare(&Symbol{Name: iter, Type: TypeInteger})
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "expected 'end' to close 'repeat for' loop"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &ForStmt{Iterator: iter, Start: start, End: endExpr, Step: step, Body: body}, nil
}

func (p *Parser) parseWithLoop() (Stmt, error) {
	iter, err := p.expect(IDENTIFIER, "expected iterator name after 'with'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(STARTING, "expected 'starting' after iterator name"); err != nil {
		return nil, err
	}
	if _, err := p.expect(AT, "expected 'at' after 'starting'"); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(UNTIL, "expected 'until' after start expression"); err != nil {
		return nil, err
	}
	until, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var step Expr
	if p.match(STEP) {
		if step, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock(func() error {
		return p.table.Declare(&Symbol{Name: iter, Type: TypeInteger})
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "expected 'end' to close 'repeat with' loop"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &WithStmt{Iterator: iter, Start: start, Until: until, Step: step, Body: body}, nil
}

func (p *Parser) parseFunctionDef() (Stmt, error) {
	if _, err := p.expect(FUNCTION, "expected 'function' after 'define'"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LEFT_PAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RIGHT_PAREN) {
		for {
			param, err := p.expect(IDENTIFIER, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RIGHT_PAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	// Register in the enclosing scope before the body parses so the body
	// can call the function recursively.
	if p.table.ExistsInCurrent(name.Lexeme) {
		return nil, &ParseError{Tok: name, Msg: fmt.Sprintf("'%s' is already declared in this scope", name.Lexeme)}
	}
	if err := p.table.Declare(&Symbol{Name: name, Type: TypeFunction, Params: params}); err != nil {
		return nil, &ParseError{Tok: name, Msg: err.Error()}
	}

	body, err := p.parseBlock(func() error {
		for _, param := range params {
			if err := p.table.Declare(&Symbol{Name: param, Type: TypeNone}); err != nil {
				return &ParseError{Tok: param, Msg: err.Error()}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "expected 'end' to close function definition"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &FunctionDefStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseCallStmt() (Stmt, error) {
	name, args, err := p.parseCallTail()
	if err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &CallStmt{Name: name, Args: args}, nil
}

// parseCallTail parses `NAME(args)` and validates the callee symbol:
// it must be declared, function-typed, and called with its declared arity.
func (p *Parser) parseCallTail() (Token, []Expr, error) {
	name, err := p.expect(IDENTIFIER, "expected function name after 'call'")
	if err != nil {
		return Token{}, nil, err
	}
	sym, rerr := p.table.Resolve(name.Lexeme)
	if rerr != nil {
		return Token{}, nil, &ParseError{Tok: name, Msg: fmt.Sprintf("undeclared identifier '%s'", name.Lexeme)}
	}
	if sym.Type != TypeFunction {
		return Token{}, nil, &ParseError{Tok: name, Msg: fmt.Sprintf("'%s' is not a function", name.Lexeme)}
	}
	if _, err := p.expect(LEFT_PAREN, "expected '(' after function name"); err != nil {
		return Token{}, nil, err
	}
	var args []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return Token{}, nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RIGHT_PAREN, "expected ')' after arguments"); err != nil {
		return Token{}, nil, err
	}
	if len(args) != len(sym.Params) {
		return Token{}, nil, &ParseError{
			Tok: name,
			Msg: fmt.Sprintf("function '%s' expects %d argument(s), got %d", name.Lexeme, len(sym.Params), len(args)),
		}
	}
	return name, args, nil
}

func (p *Parser) parseReturnStmt() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	if !p.check(NEWLINE) && !p.check(DEDENT) && !p.check(END) && !p.check(END_OF_FILE) {
		var err error
		if value, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	p.match(NEWLINE)
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) parseThrowStmt() (Stmt, error) {
	keyword := p.previous()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &ThrowStmt{Keyword: keyword, Expr: expr}, nil
}

func (p *Parser) parseTryCatchStmt() (Stmt, error) {
	tryBody, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(CATCH, "expected 'catch' after try block"); err != nil {
		return nil, err
	}
	excName, err := p.expect(IDENTIFIER, "expected exception variable after 'catch'")
	if err != nil {
		return nil, err
	}
	catchBody, err := p.parseBlock(func() error {
		return p.table.Declare(&Symbol{Name: excName, Type: TypeString})
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END, "expected 'end' to close try/catch"); err != nil {
		return nil, err
	}
	p.match(NEWLINE)
	return &TryCatchStmt{TryBody: tryBody, ExcName: excName, CatchBody: catchBody}, nil
}

// ───────────────────────── expressions ─────────────────────────

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expr, error) {
	expr, err := p.parseBinary()
	if err != nil {
		return nil, err
	}
	if p.check(EQUAL) {
		eq := p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{Name: target.Name, Value: value}, nil
		case *IndexExpr:
			return &IndexAssignExpr{Target: target, Value: value}, nil
		default:
			return nil, &ParseError{Tok: eq, Msg: "invalid assignment target (use '==' for comparison)"}
		}
	}
	return expr, nil
}

func isBinaryOp(tt TokenType) bool {
	switch tt {
	case PLUS, MINUS, STAR, SLASH,
		GREATER, LESS, GREATER_EQUAL, LESS_EQUAL, EQUAL_EQUAL, NOT_EQUAL:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBinary() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for isBinaryOp(p.peek().Type) {
		op := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch {
	case p.match(NUMBER), p.match(STRING):
		return &LiteralExpr{Value: p.previous()}, nil

	case p.check(MINUS) && p.peekNext().Type == NUMBER:
		minus := p.advance()
		num := p.advance()
		folded := Token{Type: NUMBER, Lexeme: "-" + num.Lexeme, Line: minus.Line}
		return &LiteralExpr{Value: folded}, nil

	case p.check(IDENTIFIER):
		return p.parseIdentifierExpr()

	case p.match(LEFT_PAREN):
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ParenExpr{Inner: inner}, nil

	case p.check(LEFT_BRACKET):
		return p.parseListLiteral()

	case p.check(LEFT_BRACE):
		return p.parseDictLiteral()

	case p.check(UNKNOWN):
		return nil, p.fail("invalid token")

	default:
		return nil, p.fail("expected expression")
	}
}

func (p *Parser) parseIdentifierExpr() (Expr, error) {
	name := p.advance()

	// Call expression: validated against the declared symbol like `call`.
	if p.check(LEFT_PAREN) {
		p.cur-- // rewind so parseCallTail re-reads the name
		name, args, err := p.parseCallTail()
		if err != nil {
			return nil, err
		}
		return &CallExpr{Name: name, Args: args}, nil
	}

	if !p.table.Exists(name.Lexeme) {
		return nil, &ParseError{Tok: name, Msg: fmt.Sprintf("undeclared identifier '%s'", name.Lexeme)}
	}

	var expr Expr = &VariableExpr{Name: name}
	for p.match(LEFT_BRACKET) {
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_BRACKET, "expected ']' after index"); err != nil {
			return nil, err
		}
		expr = &IndexExpr{Base: expr, Index: index}
	}
	return expr, nil
}

func (p *Parser) parseListLiteral() (Expr, error) {
	bracket := p.advance()
	var elements []Expr
	if !p.check(RIGHT_BRACKET) {
		for {
			elem, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RIGHT_BRACKET, "expected ']' after list elements"); err != nil {
		return nil, err
	}
	return &ListLiteralExpr{Bracket: bracket, Elements: elements}, nil
}

func (p *Parser) parseDictLiteral() (Expr, error) {
	brace := p.advance()
	var pairs []DictPair
	if !p.check(RIGHT_BRACE) {
		for {
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON, "expected ':' after dictionary key"); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, DictPair{Key: key, Value: value})
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RIGHT_BRACE, "expected '}' after dictionary pairs"); err != nil {
		return nil, err
	}
	return &DictLiteralExpr{Brace: brace, Pairs: pairs}, nil
}
