package novascript

import (
	"strings"
	"testing"
)

// --- values ----------------------------------------------------------------

func TestFormatScalarValues(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NoneValue(), "<none>"},
		{IntValue(42), "42"},
		{IntValue(-7), "-7"},
		{StrValue("hello"), "hello"},
	}
	for _, c := range cases {
		if got := FormatValue(c.v); got != c.want {
			t.Fatalf("FormatValue(%#v): want %q, got %q", c.v, c.want, got)
		}
	}
}

func TestFormatListKeepsElementQuotes(t *testing.T) {
	v := ListValue([]Value{IntValue(1), StrValue("a")})
	if got := FormatValue(v); got != `[1, "a"]` {
		t.Fatalf("want %q, got %q", `[1, "a"]`, got)
	}
}

func TestFormatDictSortsKeys(t *testing.T) {
	v := DictValue(map[string]Value{
		"b": IntValue(2),
		"a": IntValue(1),
	})
	if got := FormatValue(v); got != `{"a": 1, "b": 2}` {
		t.Fatalf("want sorted keys, got %q", got)
	}
}

func TestFormatFunctionValue(t *testing.T) {
	def := &FunctionDefStmt{Name: ident("greet")}
	if got := FormatValue(FunValue(def)); got != "<function greet>" {
		t.Fatalf("want %q, got %q", "<function greet>", got)
	}
}

func TestFormatNestedContainers(t *testing.T) {
	v := ListValue([]Value{
		ListValue([]Value{IntValue(1)}),
		DictValue(map[string]Value{"k": StrValue("v")}),
	})
	if got := FormatValue(v); got != `[[1], {"k": "v"}]` {
		t.Fatalf("got %q", got)
	}
}

// --- tokens ----------------------------------------------------------------

func TestFormatTokensPlaceholders(t *testing.T) {
	src := "when 1 then\n    say 1\nend\n"
	dump := FormatTokens(NewLexer(src).Scan())
	for _, want := range []string{"<indent>", "<dedent>", "<eof>", "WHEN 'when'", "NUMBER '1'"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("token dump missing %q:\n%s", want, dump)
		}
	}
}

// --- trees -----------------------------------------------------------------

func TestFormatProgramShowsInferredTypes(t *testing.T) {
	prog, table, err := Parse("let a be 1\nsay a + 2\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Analyze(prog, table); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	dump := FormatProgram(prog)
	for _, want := range []string{"let a", "say", "binary '+' : integer", "variable a : integer", "literal 2 : integer"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("tree dump missing %q:\n%s", want, dump)
		}
	}
}

func TestFormatProgramCoversStatements(t *testing.T) {
	src := "define function f(a)\n" +
		"    return a\n" +
		"end\n" +
		"try\n" +
		"    throw \"x\"\n" +
		"catch e\n" +
		"    say e\n" +
		"end\n" +
		"repeat for i from 1 to 2\n" +
		"    say i\n" +
		"end\n"
	prog, _, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dump := FormatProgram(prog)
	for _, want := range []string{"function f(a)", "return", "try", "catch e", "throw", "repeat for i"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("tree dump missing %q:\n%s", want, dump)
		}
	}
}
