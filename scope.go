// scope.go — compile-time symbol table.
//
// The SymbolTable is a stack of name→symbol maps: index 0 is the global
// scope and is never popped. Lookup walks from the innermost scope outward,
// so an inner declaration shadows an outer one for the lifetime of its
// scope. The parser uses the table to enforce declaration-before-use and to
// reject redeclarations; the semantic pass re-walks the tree with the same
// discipline and refines symbol types in place.
package novascript

import "fmt"

// Type is the semantic type of a symbol or expression.
type Type int

const (
	TypeNone Type = iota
	TypeInteger
	TypeString
	TypeList
	TypeDict
	TypeFunction
	TypeError
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeDict:
		return "dict"
	case TypeFunction:
		return "function"
	case TypeError:
		return "error"
	default:
		return "undefined"
	}
}

// typeNames maps the surface spelling of an `as TYPE` clause to a Type.
var typeNames = map[string]Type{
	"integer": TypeInteger,
	"string":  TypeString,
	"list":    TypeList,
	"dict":    TypeDict,
}

// Symbol is the compile-time record of a declared name. Params and
// ReturnType are meaningful for function symbols only.
type Symbol struct {
	Name       Token
	Type       Type
	IsLong     bool
	Params     []Token
	ReturnType Type
}

// SymbolTable is the scope stack. The zero value is not usable; call
// NewSymbolTable.
type SymbolTable struct {
	scopes []map[string]*Symbol
}

// NewSymbolTable returns a table holding only the global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]*Symbol{{}}}
}

// Enter pushes a fresh innermost scope.
func (st *SymbolTable) Enter() {
	st.scopes = append(st.scopes, map[string]*Symbol{})
}

// Exit pops the innermost scope. Popping the global scope is a programming
// error.
func (st *SymbolTable) Exit() error {
	if len(st.scopes) == 1 {
		return fmt.Errorf("cannot exit global scope")
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
	return nil
}

// Depth reports how many scopes are open (1 = global only).
func (st *SymbolTable) Depth() int { return len(st.scopes) }

// Declare binds a symbol in the current scope. Redeclaring a name already
// present in the current scope is rejected; shadowing an outer scope is not.
func (st *SymbolTable) Declare(sym *Symbol) error {
	cur := st.scopes[len(st.scopes)-1]
	name := sym.Name.Lexeme
	if _, ok := cur[name]; ok {
		return fmt.Errorf("'%s' is already declared in this scope", name)
	}
	cur[name] = sym
	return nil
}

// Exists reports whether name resolves in any open scope.
func (st *SymbolTable) Exists(name string) bool {
	_, err := st.Resolve(name)
	return err == nil
}

// ExistsInCurrent reports whether name is declared in the innermost scope.
func (st *SymbolTable) ExistsInCurrent(name string) bool {
	_, ok := st.scopes[len(st.scopes)-1][name]
	return ok
}

// Resolve finds the nearest declaration of name, searching innermost to
// global.
func (st *SymbolTable) Resolve(name string) (*Symbol, error) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i][name]; ok {
			return sym, nil
		}
	}
	return nil, fmt.Errorf("symbol '%s' not found", name)
}

// SetType updates the nearest declaration's type.
func (st *SymbolTable) SetType(name string, t Type) error {
	sym, err := st.Resolve(name)
	if err != nil {
		return err
	}
	sym.Type = t
	return nil
}

// SetReturnType updates the nearest declaration's return type (functions).
func (st *SymbolTable) SetReturnType(name string, t Type) error {
	sym, err := st.Resolve(name)
	if err != nil {
		return err
	}
	sym.ReturnType = t
	return nil
}
