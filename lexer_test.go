package novascript

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func scanSrc(t *testing.T, src string) []Token {
	t.Helper()
	return NewLexer(src).Scan()
}

func kindsOf(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func wantKinds(t *testing.T, tokens []Token, want ...TokenType) {
	t.Helper()
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("want %d tokens %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: want %v, got %v (stream %v)", i, want[i], got[i], got)
		}
	}
}

func countKind(tokens []Token, tt TokenType) int {
	n := 0
	for _, tok := range tokens {
		if tok.Type == tt {
			n++
		}
	}
	return n
}

// --- basic streams ---------------------------------------------------------

func TestScanDeclaration(t *testing.T) {
	tokens := scanSrc(t, "let x be 5")
	wantKinds(t, tokens, LET, IDENTIFIER, BE, NUMBER, END_OF_FILE)
	if tokens[1].Lexeme != "x" || tokens[3].Lexeme != "5" {
		t.Fatalf("unexpected lexemes: %v", tokens)
	}
}

func TestScanOperators(t *testing.T) {
	tokens := scanSrc(t, "let a be 1\nsay a >= 1 == a <= 2 != a > 0 < 3")
	want := []TokenType{GREATER_EQUAL, EQUAL_EQUAL, LESS_EQUAL, NOT_EQUAL, GREATER, LESS}
	var got []TokenType
	for _, tok := range tokens {
		switch tok.Type {
		case GREATER_EQUAL, EQUAL_EQUAL, LESS_EQUAL, NOT_EQUAL, GREATER, LESS:
			got = append(got, tok.Type)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("want operators %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("operator %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScanPunctuation(t *testing.T) {
	tokens := scanSrc(t, `{"k": [1, 2]}`)
	wantKinds(t, tokens,
		LEFT_BRACE, STRING, COLON, LEFT_BRACKET, NUMBER, COMMA, NUMBER,
		RIGHT_BRACKET, RIGHT_BRACE, END_OF_FILE)
}

func TestKeywordsLexAsKeywords(t *testing.T) {
	tokens := scanSrc(t, "repeat while for from to until step starting define function")
	wantKinds(t, tokens,
		REPEAT, WHILE, FOR, FROM, TO, UNTIL, STEP, STARTING, DEFINE, FUNCTION,
		END_OF_FILE)
}

func TestNumberKeepsLongSuffix(t *testing.T) {
	tokens := scanSrc(t, "let big be 123L")
	if tokens[3].Type != NUMBER || tokens[3].Lexeme != "123L" {
		t.Fatalf("want NUMBER '123L', got %v '%s'", tokens[3].Type, tokens[3].Lexeme)
	}
}

func TestStringLiteralBothQuotes(t *testing.T) {
	tokens := scanSrc(t, `say "hello" say 'world'`)
	if tokens[1].Type != STRING || tokens[1].Lexeme != "hello" {
		t.Fatalf("double-quoted: got %v '%s'", tokens[1].Type, tokens[1].Lexeme)
	}
	if tokens[3].Type != STRING || tokens[3].Lexeme != "world" {
		t.Fatalf("single-quoted: got %v '%s'", tokens[3].Type, tokens[3].Lexeme)
	}
}

func TestUnterminatedStringIsUnknown(t *testing.T) {
	tokens := scanSrc(t, `say "oops`)
	if tokens[1].Type != UNKNOWN {
		t.Fatalf("want UNKNOWN for unterminated string, got %v", tokens[1].Type)
	}
}

func TestOverlongIdentifierIsUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIdentLen = 4
	tokens := NewLexerWith("abcdefgh", cfg).Scan()
	if tokens[0].Type != UNKNOWN {
		t.Fatalf("want UNKNOWN for overlong identifier, got %v", tokens[0].Type)
	}
	if tokens[0].Lexeme != "abcd" {
		t.Fatalf("want truncated prefix 'abcd', got '%s'", tokens[0].Lexeme)
	}
}

// --- comments --------------------------------------------------------------

func TestCommentsAreSkipped(t *testing.T) {
	src := "# leading\nsay 1 // trailing\n/* block\nspans lines */ say 2\n"
	tokens := scanSrc(t, src)
	if countKind(tokens, SAY) != 2 || countKind(tokens, NUMBER) != 2 {
		t.Fatalf("comments leaked into stream: %v", tokens)
	}
}

func TestBlockCommentTracksLines(t *testing.T) {
	tokens := scanSrc(t, "/* a\nb\nc */ say 9")
	for _, tok := range tokens {
		if tok.Type == SAY && tok.Line != 3 {
			t.Fatalf("say after block comment: want line 3, got %d", tok.Line)
		}
	}
}

func TestUnterminatedBlockCommentIsUnknown(t *testing.T) {
	tokens := scanSrc(t, "say 1 /* never closed")
	last := tokens[len(tokens)-2]
	if last.Type != UNKNOWN {
		t.Fatalf("want UNKNOWN for unterminated block comment, got %v", last.Type)
	}
}

// --- indentation -----------------------------------------------------------

func TestIndentDedentPairing(t *testing.T) {
	src := "when 1 then\n" +
		"    say 1\n" +
		"    when 2 then\n" +
		"        say 2\n" +
		"    end\n" +
		"end\n"
	lx := NewLexer(src)
	tokens := lx.Scan()
	indents := countKind(tokens, INDENT)
	dedents := countKind(tokens, DEDENT)
	if indents != dedents {
		t.Fatalf("unbalanced: %d INDENT vs %d DEDENT", indents, dedents)
	}
	if indents != 2 {
		t.Fatalf("want 2 indent levels, got %d", indents)
	}
	if lx.IndentDepth() != 0 {
		t.Fatalf("indent stack not drained: depth %d", lx.IndentDepth())
	}
}

func TestMultiLevelDedent(t *testing.T) {
	src := "when 1 then\n" +
		"    when 2 then\n" +
		"        say 3\n" +
		"end\n"
	tokens := scanSrc(t, src)
	// The outdent from width 8 to width 0 pops both levels at once.
	if countKind(tokens, DEDENT) != 2 {
		t.Fatalf("want 2 DEDENT from multi-level outdent, got %d: %v",
			countKind(tokens, DEDENT), tokens)
	}
}

func TestEOFClosesOpenIndents(t *testing.T) {
	tokens := scanSrc(t, "when 1 then\n    say 1")
	if countKind(tokens, INDENT) != countKind(tokens, DEDENT) {
		t.Fatalf("EOF did not close open indents: %v", tokens)
	}
}

func TestDanglingIndentIsUnknown(t *testing.T) {
	src := "when 1 then\n" +
		"        say 1\n" +
		"    say 2\n" +
		"end\n"
	tokens := scanSrc(t, src)
	if countKind(tokens, UNKNOWN) == 0 {
		t.Fatalf("outdent between open levels should produce UNKNOWN: %v", tokens)
	}
}

func TestTabsCountAsConfiguredWidth(t *testing.T) {
	src := "when 1 then\n\tsay 1\nend\n"
	tokens := scanSrc(t, src)
	if countKind(tokens, INDENT) != 1 || countKind(tokens, DEDENT) != 1 {
		t.Fatalf("tab indentation not recognized: %v", tokens)
	}
}

func TestBlankAndCommentLinesKeepIndentState(t *testing.T) {
	src := "when 1 then\n" +
		"    say 1\n" +
		"\n" +
		"    # note\n" +
		"    say 2\n" +
		"end\n"
	tokens := scanSrc(t, src)
	if countKind(tokens, INDENT) != 1 || countKind(tokens, DEDENT) != 1 {
		t.Fatalf("blank/comment lines changed block structure: %v", tokens)
	}
}

// --- stability -------------------------------------------------------------

func TestScanIsDeterministic(t *testing.T) {
	src := "let x be 5\nwhen x > 1 then\n    say x\nend\n"
	first := scanSrc(t, src)
	second := scanSrc(t, src)
	if len(first) != len(second) {
		t.Fatalf("stream lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRelexingLexemesKeepsClassification(t *testing.T) {
	src := "let x = 42\nsay x + 1 == 43\nlet s be \"hi\"\n"
	var words []string
	var firstKinds []TokenType
	for _, tok := range scanSrc(t, src) {
		switch tok.Type {
		case NEWLINE, INDENT, DEDENT, END_OF_FILE:
			continue
		case STRING:
			words = append(words, `"`+tok.Lexeme+`"`)
		default:
			words = append(words, tok.Lexeme)
		}
		firstKinds = append(firstKinds, tok.Type)
	}

	var secondKinds []TokenType
	for _, tok := range scanSrc(t, strings.Join(words, " ")) {
		switch tok.Type {
		case NEWLINE, INDENT, DEDENT, END_OF_FILE:
			continue
		}
		secondKinds = append(secondKinds, tok.Type)
	}

	if len(firstKinds) != len(secondKinds) {
		t.Fatalf("token counts differ: %v vs %v", firstKinds, secondKinds)
	}
	for i := range firstKinds {
		if firstKinds[i] != secondKinds[i] {
			t.Fatalf("token %d reclassified: %v vs %v", i, firstKinds[i], secondKinds[i])
		}
	}
}

func TestPullAndDrainAgree(t *testing.T) {
	src := "when 1 then\n    say 1\nend\n"
	drained := scanSrc(t, src)
	lx := NewLexer(src)
	var pulled []Token
	for {
		tok := lx.NextToken()
		pulled = append(pulled, tok)
		if tok.Type == END_OF_FILE {
			break
		}
	}
	if len(drained) != len(pulled) {
		t.Fatalf("pull vs drain: %d vs %d tokens", len(pulled), len(drained))
	}
	for i := range drained {
		if drained[i] != pulled[i] {
			t.Fatalf("token %d: pull %v, drain %v", i, pulled[i], drained[i])
		}
	}
}
