// semantic.go — the type-checking pass.
//
// The analyzer re-walks the parsed tree with the same scope discipline the
// parser used, on the same SymbolTable: every indented block opens a nested
// scope, loop iterators and catch variables are bound inside the block, and
// declarations met again on the walk are re-registered so block-local names
// resolve exactly as they did at parse time.
//
// The type system is deliberately small. Literals are integer or string;
// list and dict literals must be homogeneous; indexing a list needs an
// integer index and indexing a dict needs a string key, and either yields
// an integer. Arithmetic needs integer operands; comparisons need operands
// of one shared type and yield an integer truth value (0 or 1). A variable
// whose type is still unknown (a bare function parameter, a none-returning
// call result) adopts the type the surrounding context demands, so a
// parameter compared against a string becomes a string from then on.
//
// Function return types are unified across the body: the first typed
// `return` fixes the type, a later conflicting one is an error, and a body
// with no typed return leaves the function returning none.
//
// The walk also writes each expression's inferred type into the node, which
// the AST dumper shows and the interpreter trusts.
package novascript

import "fmt"

// Analyzer performs the semantic pass over a Program.
type Analyzer struct {
	table *SymbolTable
	// fnRet tracks the unified return type of each enclosing function
	// definition, innermost last.
	fnRet []*fnReturn
}

type fnReturn struct {
	name string
	typ  Type
}

// NewAnalyzer wraps an existing table, usually the one the parser built.
func NewAnalyzer(table *SymbolTable) *Analyzer {
	return &Analyzer{table: table}
}

// Analyze type-checks prog against table and annotates the tree with
// inferred types. The first error aborts the pass.
func Analyze(prog *Program, table *SymbolTable) error {
	return NewAnalyzer(table).Run(prog)
}

// Run walks every top-level statement in order.
func (a *Analyzer) Run(prog *Program) error {
	for _, stmt := range prog.Statements {
		if err := a.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ───────────────────────── statements ─────────────────────────

func (a *Analyzer) checkStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		return a.checkVarDecl(s)
	case *SetStmt:
		valueT, err := a.inferExpr(s.Value)
		if err != nil {
			return err
		}
		return a.checkAssignable(s.Name, valueT)
	case *IndexAssignStmt:
		if _, err := a.inferExpr(s.Target); err != nil {
			return err
		}
		_, err := a.inferExpr(s.Value)
		return err
	case *SayStmt:
		_, err := a.inferExpr(s.Expr)
		return err
	case *WhenStmt:
		return a.checkWhen(s)
	case *MatchStmt:
		return a.checkMatch(s)
	case *WhileStmt:
		if err := a.requireInteger(s.Condition, "loop condition"); err != nil {
			return err
		}
		return a.checkBlock(s.Body, nil)
	case *ForStmt:
		return a.checkCountedLoop(s.Iterator, s.Start, s.End, s.Step, s.Body)
	case *WithStmt:
		return a.checkCountedLoop(s.Iterator, s.Start, s.Until, s.Step, s.Body)
	case *FunctionDefStmt:
		return a.checkFunctionDef(s)
	case *CallStmt:
		_, err := a.inferCall(s.Name, s.Args)
		return err
	case *ReturnStmt:
		return a.checkReturn(s)
	case *ThrowStmt:
		return a.checkThrow(s)
	case *TryCatchStmt:
		if err := a.checkBlock(s.TryBody, nil); err != nil {
			return err
		}
		return a.checkBlock(s.CatchBody, func() error {
			return a.redeclare(&Symbol{Name: s.ExcName, Type: TypeString})
		})
	default:
		return fmt.Errorf("unhandled statement %T", stmt)
	}
}

// checkBlock opens a nested scope for a block body, runs pre inside it
// (iterator and catch-variable bindings), and checks each statement.
func (a *Analyzer) checkBlock(body []Stmt, pre func() error) error {
	a.table.Enter()
	defer func() { _ = a.table.Exit() }()
	if pre != nil {
		if err := pre(); err != nil {
			return err
		}
	}
	for _, stmt := range body {
		if err := a.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// redeclare binds sym in the current scope, overwriting a binding left
// behind by an earlier pass over the same scope.
func (a *Analyzer) redeclare(sym *Symbol) error {
	if a.table.ExistsInCurrent(sym.Name.Lexeme) {
		existing, err := a.table.Resolve(sym.Name.Lexeme)
		if err != nil {
			return err
		}
		*existing = *sym
		return nil
	}
	return a.table.Declare(sym)
}

func (a *Analyzer) checkVarDecl(s *VarDeclStmt) error {
	initT, err := a.inferExpr(s.Init)
	if err != nil {
		return err
	}
	t := s.Declared
	if t == TypeNone {
		t = initT
	} else if initT != TypeNone && initT != t {
		return &SemanticError{
			Tok: s.Name,
			Msg: fmt.Sprintf("initializer of '%s' has type %s, declared as %s", s.Name.Lexeme, initT, t),
		}
	}
	return a.redeclare(&Symbol{Name: s.Name, Type: t, IsLong: s.IsLong})
}

// checkAssignable validates `name = value`, letting a still-untyped
// variable adopt the assigned type.
func (a *Analyzer) checkAssignable(name Token, valueT Type) error {
	sym, err := a.table.Resolve(name.Lexeme)
	if err != nil {
		return &SemanticError{Tok: name, Msg: fmt.Sprintf("undeclared identifier '%s'", name.Lexeme)}
	}
	if sym.Type == TypeFunction {
		return &SemanticError{Tok: name, Msg: fmt.Sprintf("cannot assign to function '%s'", name.Lexeme)}
	}
	if sym.Type == TypeNone {
		sym.Type = valueT
		return nil
	}
	if valueT != TypeNone && valueT != sym.Type {
		return &SemanticError{
			Tok: name,
			Msg: fmt.Sprintf("cannot assign %s to '%s' of type %s", valueT, name.Lexeme, sym.Type),
		}
	}
	return nil
}

func (a *Analyzer) checkWhen(s *WhenStmt) error {
	for _, branch := range s.Branches {
		if branch.Condition != nil {
			if err := a.requireInteger(branch.Condition, "condition"); err != nil {
				return err
			}
		}
		if err := a.checkBlock(branch.Body, nil); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkMatch(s *MatchStmt) error {
	subjectT, err := a.inferExpr(s.Subject)
	if err != nil {
		return err
	}
	for _, c := range s.Cases {
		patternT, err := a.inferExpr(c.Pattern)
		if err != nil {
			return err
		}
		if subjectT != TypeNone && patternT != TypeNone && patternT != subjectT {
			return &SemanticError{
				Tok: c.Pattern.Tok(),
				Msg: fmt.Sprintf("case pattern has type %s, match subject has type %s", patternT, subjectT),
			}
		}
		if err := a.checkBlock(c.Body, nil); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkCountedLoop(iter Token, start, bound, step Expr, body []Stmt) error {
	if err := a.requireInteger(start, "loop start"); err != nil {
		return err
	}
	if err := a.requireInteger(bound, "loop bound"); err != nil {
		return err
	}
	if step != nil {
		if err := a.requireInteger(step, "loop step"); err != nil {
			return err
		}
	}
	return a.checkBlock(body, func() error {
		return a.redeclare(&Symbol{Name: iter, Type: TypeInteger})
	})
}

func (a *Analyzer) checkFunctionDef(s *FunctionDefStmt) error {
	if err := a.redeclare(&Symbol{Name: s.Name, Type: TypeFunction, Params: s.Params}); err != nil {
		return err
	}
	a.fnRet = append(a.fnRet, &fnReturn{name: s.Name.Lexeme})
	err := a.checkBlock(s.Body, func() error {
		for _, param := range s.Params {
			if err := a.redeclare(&Symbol{Name: param, Type: TypeInteger}); err != nil {
				return err
			}
		}
		return nil
	})
	ret := a.fnRet[len(a.fnRet)-1]
	a.fnRet = a.fnRet[:len(a.fnRet)-1]
	if err != nil {
		return err
	}
	// A return type already adopted from a recursive use stands when the
	// unification found nothing firmer.
	if ret.typ != TypeNone {
		return a.table.SetReturnType(s.Name.Lexeme, ret.typ)
	}
	return nil
}

func (a *Analyzer) checkReturn(s *ReturnStmt) error {
	valueT := TypeNone
	if s.Value != nil {
		var err error
		if valueT, err = a.inferExpr(s.Value); err != nil {
			return err
		}
	}
	// A top-level return parses and checks; the interpreter rejects it.
	if len(a.fnRet) == 0 {
		return nil
	}
	cur := a.fnRet[len(a.fnRet)-1]
	if valueT == TypeNone {
		return nil
	}
	if cur.typ == TypeNone {
		cur.typ = valueT
		return nil
	}
	if cur.typ != valueT {
		return &SemanticError{
			Tok: s.Keyword,
			Msg: fmt.Sprintf("function '%s' returns both %s and %s", cur.name, cur.typ, valueT),
		}
	}
	return nil
}

func (a *Analyzer) checkThrow(s *ThrowStmt) error {
	t, err := a.inferExpr(s.Expr)
	if err != nil {
		return err
	}
	if t == TypeString {
		return nil
	}
	if t == TypeNone && a.adoptType(s.Expr, TypeString) {
		return nil
	}
	return &SemanticError{Tok: s.Keyword, Msg: fmt.Sprintf("throw requires a string value, got %s", t)}
}

// ───────────────────────── expressions ─────────────────────────

// inferExpr computes the type of e, records it on the node, and returns it.
func (a *Analyzer) inferExpr(e Expr) (Type, error) {
	t, err := a.inferExprInner(e)
	if err != nil {
		return TypeNone, err
	}
	e.setInferred(t)
	return t, nil
}

func (a *Analyzer) inferExprInner(e Expr) (Type, error) {
	switch n := e.(type) {
	case *LiteralExpr:
		if n.Value.Type == STRING {
			return TypeString, nil
		}
		return TypeInteger, nil

	case *VariableExpr:
		sym, err := a.table.Resolve(n.Name.Lexeme)
		if err != nil {
			return TypeNone, &SemanticError{Tok: n.Name, Msg: fmt.Sprintf("undeclared identifier '%s'", n.Name.Lexeme)}
		}
		return sym.Type, nil

	case *ParenExpr:
		return a.inferExpr(n.Inner)

	case *BinaryExpr:
		return a.inferBinary(n)

	case *ListLiteralExpr:
		return a.inferList(n)

	case *DictLiteralExpr:
		return a.inferDict(n)

	case *IndexExpr:
		return a.inferIndex(n)

	case *AssignExpr:
		valueT, err := a.inferExpr(n.Value)
		if err != nil {
			return TypeNone, err
		}
		if err := a.checkAssignable(n.Name, valueT); err != nil {
			return TypeNone, err
		}
		return valueT, nil

	case *IndexAssignExpr:
		if _, err := a.inferExpr(n.Target); err != nil {
			return TypeNone, err
		}
		return a.inferExpr(n.Value)

	case *CallExpr:
		return a.inferCall(n.Name, n.Args)

	default:
		return TypeNone, fmt.Errorf("unhandled expression %T", e)
	}
}

func (a *Analyzer) inferBinary(n *BinaryExpr) (Type, error) {
	leftT, err := a.inferExpr(n.Left)
	if err != nil {
		return TypeNone, err
	}
	rightT, err := a.inferExpr(n.Right)
	if err != nil {
		return TypeNone, err
	}

	switch n.Op.Type {
	case PLUS, MINUS, STAR, SLASH:
		if leftT != TypeInteger && !(leftT == TypeNone && a.adoptType(n.Left, TypeInteger)) {
			return TypeNone, &SemanticError{
				Tok: n.Left.Tok(),
				Msg: fmt.Sprintf("operand of '%s' must be integer, got %s", n.Op.Lexeme, leftT),
			}
		}
		if rightT != TypeInteger && !(rightT == TypeNone && a.adoptType(n.Right, TypeInteger)) {
			return TypeNone, &SemanticError{
				Tok: n.Right.Tok(),
				Msg: fmt.Sprintf("operand of '%s' must be integer, got %s", n.Op.Lexeme, rightT),
			}
		}
		return TypeInteger, nil

	default: // comparison: both sides share one type, result is 0 or 1
		switch {
		case leftT == rightT && leftT != TypeNone:
		case leftT == TypeNone && rightT == TypeNone:
			if !a.adoptType(n.Left, TypeInteger) || !a.adoptType(n.Right, TypeInteger) {
				return TypeNone, a.compareError(n, leftT, rightT)
			}
		case leftT == TypeNone:
			if !a.adoptType(n.Left, rightT) {
				return TypeNone, a.compareError(n, leftT, rightT)
			}
		case rightT == TypeNone:
			if !a.adoptType(n.Right, leftT) {
				return TypeNone, a.compareError(n, leftT, rightT)
			}
		default:
			return TypeNone, a.compareError(n, leftT, rightT)
		}
		return TypeInteger, nil
	}
}

func (a *Analyzer) compareError(n *BinaryExpr, leftT, rightT Type) error {
	return &SemanticError{
		Tok: n.Op,
		Msg: fmt.Sprintf("cannot compare %s with %s", leftT, rightT),
	}
}

func (a *Analyzer) inferList(n *ListLiteralExpr) (Type, error) {
	elemT := TypeNone
	for _, elem := range n.Elements {
		t, err := a.inferExpr(elem)
		if err != nil {
			return TypeNone, err
		}
		if elemT == TypeNone {
			elemT = t
			continue
		}
		if t != TypeNone && t != elemT {
			return TypeNone, &SemanticError{
				Tok: elem.Tok(),
				Msg: fmt.Sprintf("list elements must share one type, found %s and %s", elemT, t),
			}
		}
	}
	return TypeList, nil
}

func (a *Analyzer) inferDict(n *DictLiteralExpr) (Type, error) {
	valueT := TypeNone
	for _, pair := range n.Pairs {
		keyT, err := a.inferExpr(pair.Key)
		if err != nil {
			return TypeNone, err
		}
		if keyT != TypeString && !(keyT == TypeNone && a.adoptType(pair.Key, TypeString)) {
			return TypeNone, &SemanticError{
				Tok: pair.Key.Tok(),
				Msg: fmt.Sprintf("dictionary keys must be strings, got %s", keyT),
			}
		}
		t, err := a.inferExpr(pair.Value)
		if err != nil {
			return TypeNone, err
		}
		if valueT == TypeNone {
			valueT = t
			continue
		}
		if t != TypeNone && t != valueT {
			return TypeNone, &SemanticError{
				Tok: pair.Value.Tok(),
				Msg: fmt.Sprintf("dictionary values must share one type, found %s and %s", valueT, t),
			}
		}
	}
	return TypeDict, nil
}

// inferIndex enforces the container rules: lists take integer positions,
// dictionaries take string keys. Either lookup yields an integer.
func (a *Analyzer) inferIndex(n *IndexExpr) (Type, error) {
	baseT, err := a.inferExpr(n.Base)
	if err != nil {
		return TypeNone, err
	}
	indexT, err := a.inferExpr(n.Index)
	if err != nil {
		return TypeNone, err
	}
	switch baseT {
	case TypeList:
		if indexT != TypeInteger && !(indexT == TypeNone && a.adoptType(n.Index, TypeInteger)) {
			return TypeNone, &SemanticError{
				Tok: n.Index.Tok(),
				Msg: fmt.Sprintf("list index must be integer, got %s", indexT),
			}
		}
	case TypeDict:
		if indexT != TypeString && !(indexT == TypeNone && a.adoptType(n.Index, TypeString)) {
			return TypeNone, &SemanticError{
				Tok: n.Index.Tok(),
				Msg: fmt.Sprintf("dictionary key must be string, got %s", indexT),
			}
		}
	default:
		return TypeNone, &SemanticError{
			Tok: n.Base.Tok(),
			Msg: fmt.Sprintf("only lists and dictionaries can be indexed, got %s", baseT),
		}
	}
	return TypeInteger, nil
}

func (a *Analyzer) inferCall(name Token, args []Expr) (Type, error) {
	sym, err := a.table.Resolve(name.Lexeme)
	if err != nil {
		return TypeNone, &SemanticError{Tok: name, Msg: fmt.Sprintf("undeclared identifier '%s'", name.Lexeme)}
	}
	if sym.Type != TypeFunction {
		return TypeNone, &SemanticError{Tok: name, Msg: fmt.Sprintf("'%s' is not a function", name.Lexeme)}
	}
	if len(args) != len(sym.Params) {
		return TypeNone, &SemanticError{
			Tok: name,
			Msg: fmt.Sprintf("function '%s' expects %d argument(s), got %d", name.Lexeme, len(sym.Params), len(args)),
		}
	}
	for _, arg := range args {
		if _, err := a.inferExpr(arg); err != nil {
			return TypeNone, err
		}
	}
	return sym.ReturnType, nil
}

// requireInteger checks that e has integer type, letting a still-untyped
// variable adopt it.
func (a *Analyzer) requireInteger(e Expr, what string) error {
	t, err := a.inferExpr(e)
	if err != nil {
		return err
	}
	if t == TypeInteger {
		return nil
	}
	if t == TypeNone && a.adoptType(e, TypeInteger) {
		return nil
	}
	return &SemanticError{Tok: e.Tok(), Msg: fmt.Sprintf("%s must be integer, got %s", what, t)}
}

// adoptType retroactively fixes a still-unknown type from context: an
// untyped variable reference adopts the demanded type, and a call to a
// function whose return type is still unresolved (a recursive call inside
// the body being checked) fixes that return type.
func (a *Analyzer) adoptType(e Expr, t Type) bool {
	switch n := e.(type) {
	case *VariableExpr:
		sym, err := a.table.Resolve(n.Name.Lexeme)
		if err != nil || sym.Type != TypeNone {
			return false
		}
		sym.Type = t
		n.setInferred(t)
		return true
	case *CallExpr:
		sym, err := a.table.Resolve(n.Name.Lexeme)
		if err != nil || sym.Type != TypeFunction || sym.ReturnType != TypeNone {
			return false
		}
		sym.ReturnType = t
		n.setInferred(t)
		return true
	case *ParenExpr:
		if a.adoptType(n.Inner, t) {
			n.setInferred(t)
			return true
		}
	}
	return false
}
