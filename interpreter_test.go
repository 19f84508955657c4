package novascript

import (
	"bytes"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func runSrc(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	if err := Run(src, &out); err != nil {
		t.Fatalf("run error: %v\nsource:\n%s", err, src)
	}
	return out.String()
}

func runFails(t *testing.T, src, substr string) (string, *RuntimeError) {
	t.Helper()
	var out bytes.Buffer
	err := Run(src, &out)
	if err == nil {
		t.Fatalf("want runtime error containing %q, got none\nsource:\n%s", substr, src)
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(rerr.Msg, substr) {
		t.Fatalf("want error containing %q, got %q", substr, rerr.Msg)
	}
	return out.String(), rerr
}

func wantOutput(t *testing.T, src, want string) {
	t.Helper()
	got := runSrc(t, src)
	if got != want {
		t.Fatalf("output mismatch\nwant: %q\ngot:  %q\nsource:\n%s", want, got, src)
	}
}

// --- basics ----------------------------------------------------------------

func TestSayLiteral(t *testing.T) {
	wantOutput(t, "say 42\n", "42\n")
}

func TestArithmetic(t *testing.T) {
	wantOutput(t, "say 2 + 3 * 4\n", "20\n") // single precedence level, left to right
	wantOutput(t, "say 2 + (3 * 4)\n", "14\n")
	wantOutput(t, "say 10 - 2 - 3\n", "5\n")
	wantOutput(t, "say -7 + 10\n", "3\n")
}

func TestComparisonPrintsZeroOrOne(t *testing.T) {
	wantOutput(t, "say 2 > 1\nsay 1 > 2\nsay \"a\" == \"a\"\n", "1\n0\n1\n")
}

func TestEqualsDeclarationForm(t *testing.T) {
	wantOutput(t, "let x = 42\nsay x\n", "42\n")
}

func TestVariablesAndAssignment(t *testing.T) {
	wantOutput(t, "let x be 5\nset x = x + 1\nsay x\n", "6\n")
}

func TestStringValuePrintsVerbatim(t *testing.T) {
	wantOutput(t, "let s be \"hello world\"\nsay s\n", "hello world\n")
}

// --- control flow ----------------------------------------------------------

func TestWhenOtherwiseChain(t *testing.T) {
	src := "let x be 2\n" +
		"when x > 3 then\n" +
		"    say \"big\"\n" +
		"otherwise when x > 1 then\n" +
		"    say \"mid\"\n" +
		"otherwise\n" +
		"    say \"small\"\n" +
		"end\n"
	wantOutput(t, src, "mid\n")
}

func TestMatchPicksFirstEqualCase(t *testing.T) {
	src := "let x be 2\n" +
		"match x\n" +
		"    case 1 then\n" +
		"        say \"one\"\n" +
		"    case 2 then\n" +
		"        say \"two\"\n" +
		"    case 2 then\n" +
		"        say \"dup\"\n" +
		"end\n"
	wantOutput(t, src, "two\n")
}

func TestMatchNoCaseFallsThrough(t *testing.T) {
	src := "let x be 9\n" +
		"match x\n" +
		"    case 1 then\n" +
		"        say \"one\"\n" +
		"end\n" +
		"say \"after\"\n"
	wantOutput(t, src, "after\n")
}

func TestForLoopInclusiveBound(t *testing.T) {
	wantOutput(t, "repeat for i from 1 to 3\n    say i\nend\n", "1\n2\n3\n")
}

func TestForLoopNegativeStep(t *testing.T) {
	wantOutput(t, "repeat for i from 3 to 1 step -1\n    say i\nend\n", "3\n2\n1\n")
}

func TestWithLoopExclusiveBound(t *testing.T) {
	wantOutput(t, "repeat with i starting at 0 until 3\n    say i\nend\n", "0\n1\n2\n")
}

func TestZeroStepIsRuntimeError(t *testing.T) {
	runFails(t, "repeat for i from 1 to 3 step 0\n    say i\nend\n", "loop step cannot be zero")
}

func TestWhileLoop(t *testing.T) {
	src := "let n be 0\n" +
		"repeat while n < 3\n" +
		"    set n = n + 1\n" +
		"    say n\n" +
		"end\n"
	wantOutput(t, src, "1\n2\n3\n")
}

// --- functions -------------------------------------------------------------

func TestFunctionCallAndReturn(t *testing.T) {
	src := "define function add(a, b)\n" +
		"    return a + b\n" +
		"end\n" +
		"say add(2, 3)\n"
	wantOutput(t, src, "5\n")
}

func TestRecursion(t *testing.T) {
	src := "define function fact(n)\n" +
		"    when n <= 1 then\n" +
		"        return 1\n" +
		"    end\n" +
		"    return n * fact(n - 1)\n" +
		"end\n" +
		"say fact(5)\n"
	wantOutput(t, src, "120\n")
}

func TestFunctionWithoutReturnYieldsNone(t *testing.T) {
	src := "define function noop()\n" +
		"    say \"ran\"\n" +
		"end\n" +
		"let x be noop()\n" +
		"say x\n"
	wantOutput(t, src, "ran\n<none>\n")
}

func TestReturnStopsBody(t *testing.T) {
	src := "define function f()\n" +
		"    return 1\n" +
		"    say \"unreachable\"\n" +
		"end\n" +
		"say f()\n"
	wantOutput(t, src, "1\n")
}

func TestReturnFromLoopInsideFunction(t *testing.T) {
	src := "define function firstOver(limit)\n" +
		"    repeat for i from 1 to 100\n" +
		"        when i > limit then\n" +
		"            return i\n" +
		"        end\n" +
		"    end\n" +
		"end\n" +
		"say firstOver(4)\n"
	wantOutput(t, src, "5\n")
}

func TestTopLevelReturnIsRuntimeError(t *testing.T) {
	_, rerr := runFails(t, "say 1\nreturn 5\n", "'return' outside of a function")
	if rerr.Line != 2 {
		t.Fatalf("want line 2, got %d", rerr.Line)
	}
}

// --- containers ------------------------------------------------------------

func TestListIndexing(t *testing.T) {
	wantOutput(t, "let l be [10, 20, 30]\nsay l[1]\n", "20\n")
}

func TestListIndexAssignment(t *testing.T) {
	wantOutput(t, "let l be [1, 2]\nset l[0] = 9\nsay l\n", "[9, 2]\n")
}

func TestDictLookupAndUpdate(t *testing.T) {
	src := "let d be {\"x\": 1, \"y\": 2}\n" +
		"set d[\"x\"] = 5\n" +
		"say d[\"x\"]\n" +
		"say d\n"
	wantOutput(t, src, "5\n{\"x\": 5, \"y\": 2}\n")
}

func TestListOutOfRange(t *testing.T) {
	out, rerr := runFails(t, "let l be [1]\nsay \"before\"\nsay l[5]\n", "out of range")
	if out != "before\n" {
		t.Fatalf("output before failure: want %q, got %q", "before\n", out)
	}
	if rerr.Line != 3 {
		t.Fatalf("want line 3, got %d", rerr.Line)
	}
}

func TestMissingDictKey(t *testing.T) {
	runFails(t, "let d be {\"a\": 1}\nsay d[\"b\"]\n", "key 'b' not found")
}

func TestCopyOnAssign(t *testing.T) {
	src := "let a be [1, 2]\n" +
		"let b be a\n" +
		"set b[0] = 9\n" +
		"say a\n" +
		"say b\n"
	wantOutput(t, src, "[1, 2]\n[9, 2]\n")
}

func TestArgumentMutationStaysInCallee(t *testing.T) {
	src := "define function bump(n)\n" +
		"    set n = n + 1\n" +
		"    return n\n" +
		"end\n" +
		"let a be 5\n" +
		"say bump(a)\n" +
		"say a\n"
	wantOutput(t, src, "6\n5\n")
}

// --- errors ----------------------------------------------------------------

func TestDivisionByZeroStopsExecution(t *testing.T) {
	out, rerr := runFails(t, "say 1\nsay 1 / 0\nsay 2\n", "division by zero")
	if out != "1\n" {
		t.Fatalf("output before failure: want %q, got %q", "1\n", out)
	}
	if rerr.Line != 2 {
		t.Fatalf("want line 2, got %d", rerr.Line)
	}
}

func TestThrowCaught(t *testing.T) {
	src := "try\n" +
		"    say \"in try\"\n" +
		"    throw \"boom\"\n" +
		"    say \"unreachable\"\n" +
		"catch e\n" +
		"    say e\n" +
		"end\n" +
		"say \"after\"\n"
	wantOutput(t, src, "in try\nboom\nafter\n")
}

func TestThrowFromFunctionCaughtByCaller(t *testing.T) {
	src := "define function risky(n)\n" +
		"    when n > 2 then\n" +
		"        throw \"too big\"\n" +
		"    end\n" +
		"    return n\n" +
		"end\n" +
		"try\n" +
		"    say risky(5)\n" +
		"catch e\n" +
		"    say e\n" +
		"end\n"
	wantOutput(t, src, "too big\n")
}

func TestUncaughtThrowIsRuntimeError(t *testing.T) {
	_, rerr := runFails(t, "throw \"boom\"\n", "uncaught error: boom")
	if rerr.Line != 1 {
		t.Fatalf("want line 1, got %d", rerr.Line)
	}
}

func TestRuntimeFaultNotCatchable(t *testing.T) {
	src := "try\n" +
		"    say 1 / 0\n" +
		"catch e\n" +
		"    say e\n" +
		"end\n"
	runFails(t, src, "division by zero")
}

// --- scoping ---------------------------------------------------------------

func TestShadowingRestoredAfterBlock(t *testing.T) {
	src := "let x be 1\n" +
		"when 1 then\n" +
		"    let x be 2\n" +
		"    say x\n" +
		"end\n" +
		"say x\n"
	wantOutput(t, src, "2\n1\n")
}

func TestLoopIteratorScoped(t *testing.T) {
	src := "let total be 0\n" +
		"repeat for i from 1 to 4\n" +
		"    set total = total + i\n" +
		"end\n" +
		"say total\n"
	wantOutput(t, src, "10\n")
}

// --- long integers ---------------------------------------------------------

func TestLongLiteralArithmetic(t *testing.T) {
	wantOutput(t, "let big be 2147483648L as integer long\nsay big + 1\n", "2147483649\n")
}
