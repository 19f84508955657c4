// types.go — runtime values and the variable environment.
//
// Value is a tagged union. The Tag selects which payload field is live;
// the others hold their zero values. Lists and dictionaries are copied
// deeply on every assignment, so two variables never alias one container.
// Function values hold the definition node by reference and are exempt
// from copying.
package novascript

import "fmt"

// ValueTag discriminates the live payload of a Value.
type ValueTag int

const (
	VTNone ValueTag = iota
	VTInt
	VTStr
	VTList
	VTDict
	VTFun
)

func (t ValueTag) String() string {
	switch t {
	case VTNone:
		return "none"
	case VTInt:
		return "integer"
	case VTStr:
		return "string"
	case VTList:
		return "list"
	case VTDict:
		return "dict"
	case VTFun:
		return "function"
	default:
		return "undefined"
	}
}

// Value is one runtime value. Construct with the helpers below; a zero
// Value is none.
type Value struct {
	Tag  ValueTag
	Int  int64
	Str  string
	List []Value
	Dict map[string]Value
	Fun  *FunctionDefStmt
}

func NoneValue() Value             { return Value{} }
func IntValue(n int64) Value       { return Value{Tag: VTInt, Int: n} }
func StrValue(s string) Value      { return Value{Tag: VTStr, Str: s} }
func ListValue(es []Value) Value   { return Value{Tag: VTList, List: es} }
func DictValue(m map[string]Value) Value {
	return Value{Tag: VTDict, Dict: m}
}
func FunValue(def *FunctionDefStmt) Value { return Value{Tag: VTFun, Fun: def} }

// Truthy reports the truth of an integer condition (non-zero is true).
func (v Value) Truthy() bool { return v.Tag == VTInt && v.Int != 0 }

// Copy returns a deep copy for list and dict values and the value itself
// otherwise. Assignment goes through Copy so containers never alias.
func (v Value) Copy() Value {
	switch v.Tag {
	case VTList:
		elems := make([]Value, len(v.List))
		for i, e := range v.List {
			elems[i] = e.Copy()
		}
		return ListValue(elems)
	case VTDict:
		m := make(map[string]Value, len(v.Dict))
		for k, e := range v.Dict {
			m[k] = e.Copy()
		}
		return DictValue(m)
	default:
		return v
	}
}

// Equal is deep structural equality. Function values compare by identity
// of their definition.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTNone:
		return true
	case VTInt:
		return v.Int == o.Int
	case VTStr:
		return v.Str == o.Str
	case VTList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case VTDict:
		if len(v.Dict) != len(o.Dict) {
			return false
		}
		for k, e := range v.Dict {
			oe, ok := o.Dict[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	case VTFun:
		return v.Fun == o.Fun
	default:
		return false
	}
}

// Environment is the runtime scope stack, mirroring the SymbolTable the
// front end used: index 0 is the global scope, lookup walks outward.
type Environment struct {
	scopes []map[string]Value
}

// NewEnvironment returns an environment holding only the global scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]Value{{}}}
}

// Enter pushes a fresh innermost scope.
func (env *Environment) Enter() {
	env.scopes = append(env.scopes, map[string]Value{})
}

// Exit pops the innermost scope; the global scope stays.
func (env *Environment) Exit() {
	if len(env.scopes) > 1 {
		env.scopes = env.scopes[:len(env.scopes)-1]
	}
}

// Define binds name in the current scope, shadowing any outer binding.
func (env *Environment) Define(name string, v Value) {
	env.scopes[len(env.scopes)-1][name] = v
}

// Assign rebinds the nearest existing binding of name.
func (env *Environment) Assign(name string, v Value) error {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if _, ok := env.scopes[i][name]; ok {
			env.scopes[i][name] = v
			return nil
		}
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

// Get resolves name from the innermost scope outward.
func (env *Environment) Get(name string) (Value, bool) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if v, ok := env.scopes[i][name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
