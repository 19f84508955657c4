// ast.go — syntax tree for NovaScript.
//
// Expressions and statements are closed tagged unions: a sealed marker
// interface with one struct per variant. Consumers (the semantic pass, the
// interpreter, the dumper) switch exhaustively over the variants; an
// unhandled variant is a programming error surfaced by the default case.
//
// The tree is strictly owned and acyclic. After the parser returns, its
// structure is never mutated — the semantic pass only writes each
// expression's inferred-type slot, exactly once. Function values share the
// *FunctionDefStmt node by reference; nothing is cloned.
package novascript

// Expr is the closed expression union.
type Expr interface {
	exprNode()
	// Tok returns the token used to attribute errors to this node.
	Tok() Token
	// Inferred reads the type written by the semantic pass (TypeNone if
	// the node was never visited).
	Inferred() Type
	// setInferred is the single write point used by the semantic pass.
	setInferred(t Type)
}

// exprType is the mutable inferred-type slot embedded in every expression.
type exprType struct {
	typ Type
}

func (s *exprType) Inferred() Type     { return s.typ }
func (s *exprType) setInferred(t Type) { s.typ = t }

// LiteralExpr is a number or string literal (the token tells which).
type LiteralExpr struct {
	exprType
	Value Token
}

// VariableExpr is a reference to a declared name.
type VariableExpr struct {
	exprType
	Name Token
}

// BinaryExpr is a left-associative binary operation.
type BinaryExpr struct {
	exprType
	Left  Expr
	Op    Token
	Right Expr
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	exprType
	Inner Expr
}

// ListLiteralExpr is `[e1, e2, ...]`.
type ListLiteralExpr struct {
	exprType
	Bracket  Token
	Elements []Expr
}

// DictPair is one `key: value` entry of a dict literal. Keys are
// expressions that must evaluate to strings at runtime.
type DictPair struct {
	Key   Expr
	Value Expr
}

// DictLiteralExpr is `{k1: v1, k2: v2, ...}`.
type DictLiteralExpr struct {
	exprType
	Brace Token
	Pairs []DictPair
}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	exprType
	Base  Expr
	Index Expr
}

// AssignExpr is `name = value` in expression position.
type AssignExpr struct {
	exprType
	Name  Token
	Value Expr
}

// IndexAssignExpr is `base[index] = value` in expression position.
type IndexAssignExpr struct {
	exprType
	Target *IndexExpr
	Value  Expr
}

// CallExpr is `name(arg1, arg2, ...)`.
type CallExpr struct {
	exprType
	Name Token
	Args []Expr
}

func (*LiteralExpr) exprNode()     {}
func (*VariableExpr) exprNode()    {}
func (*BinaryExpr) exprNode()      {}
func (*ParenExpr) exprNode()       {}
func (*ListLiteralExpr) exprNode() {}
func (*DictLiteralExpr) exprNode() {}
func (*IndexExpr) exprNode()       {}
func (*AssignExpr) exprNode()      {}
func (*IndexAssignExpr) exprNode() {}
func (*CallExpr) exprNode()        {}

func (e *LiteralExpr) Tok() Token     { return e.Value }
func (e *VariableExpr) Tok() Token    { return e.Name }
func (e *BinaryExpr) Tok() Token      { return e.Op }
func (e *ParenExpr) Tok() Token       { return e.Inner.Tok() }
func (e *ListLiteralExpr) Tok() Token { return e.Bracket }
func (e *DictLiteralExpr) Tok() Token { return e.Brace }
func (e *IndexExpr) Tok() Token       { return e.Base.Tok() }
func (e *AssignExpr) Tok() Token      { return e.Name }
func (e *IndexAssignExpr) Tok() Token { return e.Target.Tok() }
func (e *CallExpr) Tok() Token        { return e.Name }

// Stmt is the closed statement union.
type Stmt interface {
	stmtNode()
}

// VarDeclStmt is `let NAME (be|=) expr [as TYPE [long]]`.
type VarDeclStmt struct {
	Name     Token
	Init     Expr
	Declared Type // TypeNone when no `as` clause was given
	IsLong   bool
}

// SetStmt is `set NAME = expr`.
type SetStmt struct {
	Name  Token
	Value Expr
}

// IndexAssignStmt is `set NAME[expr] = expr`.
type IndexAssignStmt struct {
	Target *IndexExpr
	Value  Expr
}

// SayStmt is `say expr`.
type SayStmt struct {
	Expr Expr
}

// WhenBranch is one arm of a when statement. Condition is nil for the
// unconditional `otherwise` arm, which must come last.
type WhenBranch struct {
	Condition Expr
	Body      []Stmt
}

// WhenStmt is `when ... then ... {otherwise [when ... then] ...} end`.
// Exactly one branch executes.
type WhenStmt struct {
	Branches []WhenBranch
}

// MatchCase is one `case pattern then body` arm.
type MatchCase struct {
	Pattern Expr
	Body    []Stmt
}

// MatchStmt is `match expr <cases> end`.
type MatchStmt struct {
	Subject Expr
	Cases   []MatchCase
}

// WhileStmt is `repeat while expr <block> end`.
type WhileStmt struct {
	Condition Expr
	Body      []Stmt
}

// ForStmt is `repeat for NAME from start to end [step expr] <block> end`.
// The bound is inclusive.
type ForStmt struct {
	Iterator Token
	Start    Expr
	End      Expr
	Step     Expr // nil means step 1
	Body     []Stmt
}

// WithStmt is `repeat with NAME starting at start until end [step expr]
// <block> end`. The bound is exclusive.
type WithStmt struct {
	Iterator Token
	Start    Expr
	Until    Expr
	Step     Expr // nil means step 1
	Body     []Stmt
}

// FunctionDefStmt is `define function NAME(params) <block> end`. Function
// values hold this node by reference; bodies are never duplicated.
type FunctionDefStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// CallStmt is `call NAME(args)`; the result is discarded.
type CallStmt struct {
	Name Token
	Args []Expr
}

// ReturnStmt is `return [expr]`.
type ReturnStmt struct {
	Keyword Token
	Value   Expr // nil for a bare return
}

// ThrowStmt is `throw expr`.
type ThrowStmt struct {
	Keyword Token
	Expr    Expr
}

// TryCatchStmt is `try <block> catch NAME <block> end`.
type TryCatchStmt struct {
	TryBody   []Stmt
	ExcName   Token
	CatchBody []Stmt
}

func (*VarDeclStmt) stmtNode()     {}
func (*SetStmt) stmtNode()         {}
func (*IndexAssignStmt) stmtNode() {}
func (*SayStmt) stmtNode()         {}
func (*WhenStmt) stmtNode()        {}
func (*MatchStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()       {}
func (*ForStmt) stmtNode()         {}
func (*WithStmt) stmtNode()        {}
func (*FunctionDefStmt) stmtNode() {}
func (*CallStmt) stmtNode()        {}
func (*ReturnStmt) stmtNode()      {}
func (*ThrowStmt) stmtNode()       {}
func (*TryCatchStmt) stmtNode()    {}

// Program is the root of a parsed source text.
type Program struct {
	Statements []Stmt
}
