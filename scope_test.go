package novascript

import "testing"

func ident(name string) Token {
	return Token{Type: IDENTIFIER, Lexeme: name, Line: 1}
}

func TestDeclareAndResolve(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Declare(&Symbol{Name: ident("x"), Type: TypeInteger}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	sym, err := st.Resolve("x")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sym.Type != TypeInteger {
		t.Fatalf("want integer, got %s", sym.Type)
	}
}

func TestRedeclareInSameScopeFails(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Declare(&Symbol{Name: ident("x"), Type: TypeInteger}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := st.Declare(&Symbol{Name: ident("x"), Type: TypeString}); err == nil {
		t.Fatal("redeclaration in same scope should fail")
	}
}

func TestShadowingAndExit(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Declare(&Symbol{Name: ident("x"), Type: TypeInteger}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	st.Enter()
	if err := st.Declare(&Symbol{Name: ident("x"), Type: TypeString}); err != nil {
		t.Fatalf("shadowing declare: %v", err)
	}
	sym, _ := st.Resolve("x")
	if sym.Type != TypeString {
		t.Fatalf("inner resolve: want string, got %s", sym.Type)
	}
	if err := st.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	sym, _ = st.Resolve("x")
	if sym.Type != TypeInteger {
		t.Fatalf("outer resolve after exit: want integer, got %s", sym.Type)
	}
}

func TestInnerDeclarationGoneAfterExit(t *testing.T) {
	st := NewSymbolTable()
	st.Enter()
	if err := st.Declare(&Symbol{Name: ident("tmp"), Type: TypeInteger}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := st.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if st.Exists("tmp") {
		t.Fatal("inner declaration survived scope exit")
	}
}

func TestCannotExitGlobalScope(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Exit(); err == nil {
		t.Fatal("exiting the global scope should fail")
	}
	if st.Depth() != 1 {
		t.Fatalf("depth after failed exit: want 1, got %d", st.Depth())
	}
}

func TestExistsInCurrentIgnoresOuterScopes(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Declare(&Symbol{Name: ident("x"), Type: TypeInteger}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	st.Enter()
	if st.ExistsInCurrent("x") {
		t.Fatal("outer declaration reported in current scope")
	}
	if !st.Exists("x") {
		t.Fatal("outer declaration should still resolve")
	}
}

func TestSetTypeAndReturnType(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Declare(&Symbol{Name: ident("f"), Type: TypeFunction}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := st.SetReturnType("f", TypeString); err != nil {
		t.Fatalf("set return type: %v", err)
	}
	sym, _ := st.Resolve("f")
	if sym.ReturnType != TypeString {
		t.Fatalf("want string return, got %s", sym.ReturnType)
	}
	if err := st.SetType("missing", TypeInteger); err == nil {
		t.Fatal("SetType on unknown name should fail")
	}
}
