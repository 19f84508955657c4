// lexer.go — indentation-sensitive lexer for NovaScript.
//
// The lexer is pull-based: callers request tokens one at a time with
// NextToken, or drain the whole stream with Scan. It is finite and
// non-restartable — once END_OF_FILE is produced the lexer only yields
// further END_OF_FILE tokens.
//
// Block structure is whitespace: the lexer measures the indentation of each
// non-blank, non-comment line against a stack of open widths (initially [0])
// and emits structural INDENT/DEDENT tokens. A multi-level outdent yields one
// DEDENT per popped level; a width that lands between open levels is a
// lexical error and produces an UNKNOWN token. A NEWLINE is suppressed when
// the same line boundary emits INDENT or DEDENT.
package novascript

import "strings"

// TokenType is the kind tag of a lexical token.
type TokenType int

const (
	// Keywords
	LET TokenType = iota
	SET
	BE
	AS
	SAY
	WHEN
	THEN
	OTHERWISE
	MATCH
	CASE
	REPEAT
	WHILE
	FOR
	FROM
	TO
	UNTIL
	STEP
	STARTING
	IN
	AT
	DEFINE
	FUNCTION
	CALL
	RETURN
	THROW
	END
	INCREASE
	BY
	WITH
	CREATE
	MODEL
	TRY
	CATCH
	OPEN
	FILE

	// Structural
	NEWLINE
	INDENT
	DEDENT

	// Literals
	IDENTIFIER
	NUMBER
	STRING

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	EQUAL
	EQUAL_EQUAL
	NOT_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	UNDERSCORE

	// Punctuation
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COLON
	SEMICOLON
	COMMA

	// Special
	UNKNOWN
	END_OF_FILE
)

var tokenNames = map[TokenType]string{
	LET: "LET", SET: "SET", BE: "BE", AS: "AS", SAY: "SAY",
	WHEN: "WHEN", THEN: "THEN", OTHERWISE: "OTHERWISE",
	MATCH: "MATCH", CASE: "CASE",
	REPEAT: "REPEAT", WHILE: "WHILE", FOR: "FOR", FROM: "FROM", TO: "TO",
	UNTIL: "UNTIL", STEP: "STEP", STARTING: "STARTING", IN: "IN", AT: "AT",
	DEFINE: "DEFINE", FUNCTION: "FUNCTION", CALL: "CALL", RETURN: "RETURN",
	THROW: "THROW", END: "END", INCREASE: "INCREASE", BY: "BY", WITH: "WITH",
	CREATE: "CREATE", MODEL: "MODEL", TRY: "TRY", CATCH: "CATCH",
	OPEN: "OPEN", FILE: "FILE",
	NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	IDENTIFIER: "IDENTIFIER", NUMBER: "NUMBER", STRING: "STRING",
	PLUS: "PLUS", MINUS: "MINUS", STAR: "STAR", SLASH: "SLASH",
	EQUAL: "EQUAL", EQUAL_EQUAL: "EQUAL_EQUAL", NOT_EQUAL: "NOT_EQUAL",
	GREATER: "GREATER", GREATER_EQUAL: "GREATER_EQUAL",
	LESS: "LESS", LESS_EQUAL: "LESS_EQUAL", UNDERSCORE: "UNDERSCORE",
	LEFT_PAREN: "LEFT_PAREN", RIGHT_PAREN: "RIGHT_PAREN",
	LEFT_BRACE: "LEFT_BRACE", RIGHT_BRACE: "RIGHT_BRACE",
	LEFT_BRACKET: "LEFT_BRACKET", RIGHT_BRACKET: "RIGHT_BRACKET",
	COLON: "COLON", SEMICOLON: "SEMICOLON", COMMA: "COMMA",
	UNKNOWN: "UNKNOWN", END_OF_FILE: "END_OF_FILE",
}

// String returns the canonical name of the token type, matching the
// spelling used by the token dump.
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "UNDEFINED"
}

// Token is an immutable lexical token. Line is 1-based. Structural tokens
// (NEWLINE/INDENT/DEDENT) carry an empty Lexeme.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

// keywords maps reserved words to their token types. Built once; some of
// these are reserved ahead of the grammar (see parser.go).
var keywords = map[string]TokenType{
	"let":       LET,
	"set":       SET,
	"be":        BE,
	"as":        AS,
	"say":       SAY,
	"when":      WHEN,
	"then":      THEN,
	"otherwise": OTHERWISE,
	"match":     MATCH,
	"case":      CASE,
	"repeat":    REPEAT,
	"while":     WHILE,
	"for":       FOR,
	"from":      FROM,
	"to":        TO,
	"until":     UNTIL,
	"step":      STEP,
	"starting":  STARTING,
	"in":        IN,
	"at":        AT,
	"define":    DEFINE,
	"function":  FUNCTION,
	"call":      CALL,
	"return":    RETURN,
	"throw":     THROW,
	"end":       END,
	"increase":  INCREASE,
	"by":        BY,
	"with":      WITH,
	"create":    CREATE,
	"model":     MODEL,
	"try":       TRY,
	"catch":     CATCH,
	"open":      OPEN,
	"file":      FILE,
}

// singleCharTokens maps one-character operators and punctuation.
var singleCharTokens = map[byte]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'=': EQUAL,
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	'[': LEFT_BRACKET,
	']': RIGHT_BRACKET,
	':': COLON,
	';': SEMICOLON,
	',': COMMA,
}

// Lexer scans a NovaScript source string into tokens.
type Lexer struct {
	src     string
	cur     int
	line    int   // 1-based
	indents []int // open indentation widths; indents[0] == 0, never popped
	pending int   // DEDENTs owed from a multi-level outdent
	done    bool  // END_OF_FILE has been emitted
	cfg     *Config
}

// NewLexer creates a lexer with default limits.
func NewLexer(src string) *Lexer {
	return NewLexerWith(src, DefaultConfig())
}

// NewLexerWith creates a lexer using the given limits.
func NewLexerWith(src string, cfg *Config) *Lexer {
	return &Lexer{
		src:     src,
		line:    1,
		indents: []int{0},
		cfg:     cfg,
	}
}

func (lx *Lexer) isAtEnd() bool { return lx.cur >= len(lx.src) }

func (lx *Lexer) peek() byte {
	if lx.isAtEnd() {
		return 0
	}
	return lx.src[lx.cur]
}

func (lx *Lexer) peekNext() byte {
	if lx.cur+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.cur+1]
}

func (lx *Lexer) advance() byte {
	if lx.isAtEnd() {
		return 0
	}
	ch := lx.src[lx.cur]
	lx.cur++
	return ch
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// IndentDepth reports how many indentation levels are currently open
// (0 when the stack is back to its initial [0] state).
func (lx *Lexer) IndentDepth() int { return len(lx.indents) - 1 }

// NextToken produces the next token. After END_OF_FILE it keeps returning
// END_OF_FILE.
func (lx *Lexer) NextToken() Token {
	if lx.pending > 0 {
		lx.pending--
		return Token{Type: DEDENT, Line: lx.line}
	}
	if lx.done {
		return Token{Type: END_OF_FILE, Line: lx.line}
	}

	for !lx.isAtEnd() {
		ch := lx.advance()

		// Inter-token whitespace; line-start runs are measured in the
		// newline branch below.
		if ch == ' ' || ch == '\t' || ch == '\r' {
			continue
		}

		if ch == '\n' {
			if tok, emitted := lx.lineBreak(); emitted {
				return tok
			}
			continue
		}

		// Comments.
		if ch == '#' {
			lx.skipLineComment()
			continue
		}
		if ch == '/' && lx.peek() == '/' {
			lx.skipLineComment()
			continue
		}
		if ch == '/' && lx.peek() == '*' {
			if ok := lx.skipBlockComment(); !ok {
				return Token{Type: UNKNOWN, Lexeme: "/*", Line: lx.line}
			}
			continue
		}

		// Two-character operators before single-character fallbacks.
		switch ch {
		case '>':
			if lx.peek() == '=' {
				lx.advance()
				return Token{Type: GREATER_EQUAL, Lexeme: ">=", Line: lx.line}
			}
			return Token{Type: GREATER, Lexeme: ">", Line: lx.line}
		case '<':
			if lx.peek() == '=' {
				lx.advance()
				return Token{Type: LESS_EQUAL, Lexeme: "<=", Line: lx.line}
			}
			return Token{Type: LESS, Lexeme: "<", Line: lx.line}
		case '=':
			if lx.peek() == '=' {
				lx.advance()
				return Token{Type: EQUAL_EQUAL, Lexeme: "==", Line: lx.line}
			}
			return Token{Type: EQUAL, Lexeme: "=", Line: lx.line}
		case '!':
			if lx.peek() == '=' {
				lx.advance()
				return Token{Type: NOT_EQUAL, Lexeme: "!=", Line: lx.line}
			}
			return Token{Type: UNKNOWN, Lexeme: "!", Line: lx.line}
		case '_':
			if !isAlphaNum(lx.peek()) {
				return Token{Type: UNDERSCORE, Lexeme: "_", Line: lx.line}
			}
			lx.cur--
			return lx.identifier()
		}

		if tt, ok := singleCharTokens[ch]; ok {
			return Token{Type: tt, Lexeme: string(ch), Line: lx.line}
		}

		if isAlpha(ch) {
			lx.cur--
			return lx.identifier()
		}
		if isDigit(ch) {
			lx.cur--
			return lx.number()
		}
		if ch == '"' || ch == '\'' {
			return lx.stringLiteral(ch)
		}

		return Token{Type: UNKNOWN, Lexeme: string(ch), Line: lx.line}
	}

	// Close any open indentation levels before the final END_OF_FILE.
	if len(lx.indents) > 1 {
		lx.pending = len(lx.indents) - 2
		lx.indents = lx.indents[:1]
		return Token{Type: DEDENT, Line: lx.line}
	}

	lx.done = true
	return Token{Type: END_OF_FILE, Line: lx.line}
}

// Scan drains the lexer and returns all tokens, END_OF_FILE included.
func (lx *Lexer) Scan() []Token {
	var out []Token
	for {
		tok := lx.NextToken()
		out = append(out, tok)
		if tok.Type == END_OF_FILE {
			return out
		}
	}
}

// lineBreak measures the indentation of the line that follows a '\n' and
// decides between INDENT, DEDENT(s), NEWLINE, or nothing (blank/comment
// line). The boolean reports whether a token was emitted.
func (lx *Lexer) lineBreak() (Token, bool) {
	lx.line++
	mark := lx.cur

	width := 0
	for !lx.isAtEnd() {
		switch lx.peek() {
		case ' ':
			width++
		case '\t':
			width += lx.cfg.TabWidth
		default:
			goto measured
		}
		lx.advance()
	}
measured:

	// Only lines that carry code adjust the block structure; blank lines
	// and comment-only lines just produce the pending NEWLINE.
	if !lx.isAtEnd() && lx.peek() != '\n' && !lx.atComment() {
		top := lx.indents[len(lx.indents)-1]
		switch {
		case width > top:
			lx.indents = append(lx.indents, width)
			return Token{Type: INDENT, Line: lx.line}, true
		case width < top:
			pops := 0
			for len(lx.indents) > 1 && width < lx.indents[len(lx.indents)-1] {
				lx.indents = lx.indents[:len(lx.indents)-1]
				pops++
			}
			if width != lx.indents[len(lx.indents)-1] {
				// Dedent landed between open levels.
				return Token{Type: UNKNOWN, Line: lx.line}, true
			}
			lx.pending = pops - 1
			return Token{Type: DEDENT, Line: lx.line}, true
		}
	}

	lx.cur = mark
	return Token{Type: NEWLINE, Line: lx.line - 1}, true
}

// atComment reports whether the scan position sits on a comment opener.
func (lx *Lexer) atComment() bool {
	b := lx.peek()
	if b == '#' {
		return true
	}
	return b == '/' && (lx.peekNext() == '/' || lx.peekNext() == '*')
}

func (lx *Lexer) skipLineComment() {
	for !lx.isAtEnd() && lx.peek() != '\n' {
		lx.advance()
	}
}

// skipBlockComment consumes a /* ... */ run, tracking line increments.
// Returns false when the comment is unterminated.
func (lx *Lexer) skipBlockComment() bool {
	lx.advance() // the '*'
	for !lx.isAtEnd() {
		if lx.peek() == '*' && lx.peekNext() == '/' {
			lx.advance()
			lx.advance()
			return true
		}
		if lx.peek() == '\n' {
			lx.line++
		}
		lx.advance()
	}
	return false
}

func (lx *Lexer) identifier() Token {
	var b strings.Builder
	for !lx.isAtEnd() && isAlphaNum(lx.peek()) {
		if b.Len() >= lx.cfg.MaxIdentLen {
			return Token{Type: UNKNOWN, Lexeme: b.String(), Line: lx.line}
		}
		b.WriteByte(lx.advance())
	}
	lex := b.String()
	if tt, ok := keywords[lex]; ok {
		return Token{Type: tt, Lexeme: lex, Line: lx.line}
	}
	return Token{Type: IDENTIFIER, Lexeme: lex, Line: lx.line}
}

// number scans digits with at most one decimal point and an optional
// trailing 'L' long marker, kept in the lexeme.
func (lx *Lexer) number() Token {
	var b strings.Builder
	sawDot := false
	for !lx.isAtEnd() {
		ch := lx.peek()
		if ch == '.' {
			if sawDot {
				break
			}
			sawDot = true
		} else if !isDigit(ch) {
			break
		}
		b.WriteByte(lx.advance())
	}
	if lx.peek() == 'L' {
		b.WriteByte(lx.advance())
	}
	return Token{Type: NUMBER, Lexeme: b.String(), Line: lx.line}
}

// stringLiteral captures the body verbatim until the matching delimiter.
// An unterminated string yields an UNKNOWN token with the text read so far.
func (lx *Lexer) stringLiteral(delim byte) Token {
	startLine := lx.line
	var b strings.Builder
	for !lx.isAtEnd() && lx.peek() != delim {
		if lx.peek() == '\n' {
			lx.line++
		}
		b.WriteByte(lx.advance())
	}
	if lx.isAtEnd() {
		return Token{Type: UNKNOWN, Lexeme: b.String(), Line: startLine}
	}
	lx.advance() // closing delimiter
	return Token{Type: STRING, Lexeme: b.String(), Line: startLine}
}
