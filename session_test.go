package novascript

import (
	"bytes"
	"strings"
	"testing"
)

func TestSessionKeepsStateAcrossInputs(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	if err := s.Eval("let a be 5\n"); err != nil {
		t.Fatalf("first input: %v", err)
	}
	if err := s.Eval("set a = a + 1\n"); err != nil {
		t.Fatalf("second input: %v", err)
	}
	if err := s.Eval("say a\n"); err != nil {
		t.Fatalf("third input: %v", err)
	}
	if got := out.String(); got != "6\n" {
		t.Fatalf("want %q, got %q", "6\n", got)
	}
}

func TestSessionKeepsFunctionsAcrossInputs(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	def := "define function double(n)\n    return n * 2\nend\n"
	if err := s.Eval(def); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := s.Eval("say double(21)\n"); err != nil {
		t.Fatalf("call: %v", err)
	}
	if got := out.String(); got != "42\n" {
		t.Fatalf("want %q, got %q", "42\n", got)
	}
}

func TestSessionFailedInputLeavesStateIntact(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	if err := s.Eval("let a be 5\n"); err != nil {
		t.Fatalf("first input: %v", err)
	}
	if err := s.Eval("say nosuch\n"); err == nil {
		t.Fatal("want error for undeclared name")
	}
	if err := s.Eval("say a\n"); err != nil {
		t.Fatalf("state lost after failed input: %v", err)
	}
	if !strings.HasSuffix(out.String(), "5\n") {
		t.Fatalf("want trailing %q, got %q", "5\n", out.String())
	}
}

func TestSessionRedeclarationAcrossInputsRejected(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	if err := s.Eval("let a be 5\n"); err != nil {
		t.Fatalf("first input: %v", err)
	}
	if err := s.Eval("let a be 6\n"); err == nil {
		t.Fatal("redeclaring a global across inputs should fail")
	}
}

func TestIncompleteDetectsOpenBlocks(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"say 1", false},
		{"when 1 then", true},
		{"when 1 then\n    say 1\nend", false},
		{"when 1 then\n    say 1\notherwise when 2 then\n    say 2\nend", false},
		{"repeat for i from 1 to 3", true},
		{"define function f()\n    say 1", true},
		{"define function f()\n    say 1\nend", false},
		{"try\n    say 1", true},
		{"match 1\n    case 1 then say 1\nend", false},
	}
	for _, c := range cases {
		if got := Incomplete(c.src, nil); got != c.want {
			t.Fatalf("Incomplete(%q): want %v, got %v", c.src, c.want, got)
		}
	}
}
