// session.go — incremental evaluation for the REPL.
package novascript

import "io"

// Session evaluates inputs one after another while keeping declarations,
// types, and variable values alive between them. The REPL feeds it one
// complete input at a time.
type Session struct {
	cfg    *Config
	table  *SymbolTable
	interp *Interpreter
}

// NewSession returns an empty session writing `say` output to out.
func NewSession(out io.Writer, cfg *Config) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Session{
		cfg:    cfg,
		table:  NewSymbolTable(),
		interp: NewInterpreter(out),
	}
}

// Eval runs one input through the full pipeline. A failed input leaves
// earlier declarations and values intact.
func (s *Session) Eval(src string) error {
	tokens := NewLexerWith(src, s.cfg).Scan()
	prog, err := NewParserWith(tokens, s.table).Parse()
	if err != nil {
		return err
	}
	if err := Analyze(prog, s.table); err != nil {
		return err
	}
	return s.interp.Interpret(prog)
}

// Incomplete reports whether src ends inside an open block, so the REPL
// can keep reading continuation lines. It is a token-level heuristic:
// block openers and closers are counted, and a trailing unterminated
// block comment also counts as incomplete.
func Incomplete(src string, cfg *Config) bool {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	depth := 0
	prev := UNKNOWN
	for _, tok := range NewLexerWith(src, cfg).Scan() {
		switch tok.Type {
		case WHEN:
			// `otherwise when` continues the block opened by `when`.
			if prev != OTHERWISE {
				depth++
			}
		case MATCH, REPEAT, DEFINE, TRY:
			depth++
		case END:
			if depth > 0 {
				depth--
			}
		}
		prev = tok.Type
	}
	return depth > 0
}
