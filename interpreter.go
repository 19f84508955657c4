// interpreter.go — the tree-walking evaluator.
//
// Statements execute against an Environment scope stack that mirrors the
// scope shape the parser and analyzer enforced: every block body runs in a
// fresh scope, counted loops keep their iterator in one scope that outlives
// the per-iteration body scopes, and function calls push a scope holding
// the parameters.
//
// Control flow is explicit. `return` surfaces as a signal threaded through
// the statement walk and is absorbed by the function call that caused it;
// a `return` reaching the top level is a runtime error. `throw` surfaces
// as a *thrownError on the error path so it also unwinds mid-expression
// (a throwing function call inside an initializer, for instance); the
// nearest try/catch absorbs it, and an uncaught one becomes a runtime
// error. Genuine runtime faults (division by zero, a bad index) are
// *RuntimeError and are never catchable from script code.
package novascript

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Interpreter executes a checked Program. Output from `say` goes to Out.
type Interpreter struct {
	env *Environment
	out io.Writer
}

// NewInterpreter returns an interpreter writing to out.
func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{env: NewEnvironment(), out: out}
}

// Run parses, checks, and executes src, writing `say` output to out.
func Run(src string, out io.Writer) error {
	return RunWith(src, out, DefaultConfig())
}

// RunWith is Run with explicit limits.
func RunWith(src string, out io.Writer, cfg *Config) error {
	prog, table, err := ParseWith(src, cfg)
	if err != nil {
		return err
	}
	if err := Analyze(prog, table); err != nil {
		return err
	}
	return NewInterpreter(out).Interpret(prog)
}

// thrownError carries a script-level `throw` up the call stack until a
// try/catch absorbs it.
type thrownError struct {
	msg  string
	line int
}

func (t *thrownError) Error() string { return t.msg }

// ctrlKind tags the signal a statement walk returns.
type ctrlKind int

const (
	ctrlNormal ctrlKind = iota
	ctrlReturn
)

type signal struct {
	kind  ctrlKind
	value Value
	line  int
}

var proceed = signal{}

// Interpret executes every top-level statement in order.
func (in *Interpreter) Interpret(prog *Program) error {
	sig, err := in.execStmts(prog.Statements)
	if err != nil {
		if t, ok := err.(*thrownError); ok {
			return &RuntimeError{Line: t.line, Msg: "uncaught error: " + t.msg}
		}
		return err
	}
	if sig.kind == ctrlReturn {
		return &RuntimeError{Line: sig.line, Msg: "'return' outside of a function"}
	}
	return nil
}

func (in *Interpreter) execStmts(body []Stmt) (signal, error) {
	for _, stmt := range body {
		sig, err := in.execStmt(stmt)
		if err != nil {
			return proceed, err
		}
		if sig.kind != ctrlNormal {
			return sig, nil
		}
	}
	return proceed, nil
}

// execBlock runs a block body in a fresh scope.
func (in *Interpreter) execBlock(body []Stmt) (signal, error) {
	in.env.Enter()
	defer in.env.Exit()
	return in.execStmts(body)
}

func (in *Interpreter) execStmt(stmt Stmt) (signal, error) {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		v, err := in.evalExpr(s.Init)
		if err != nil {
			return proceed, err
		}
		in.env.Define(s.Name.Lexeme, v.Copy())
		return proceed, nil

	case *SetStmt:
		v, err := in.evalExpr(s.Value)
		if err != nil {
			return proceed, err
		}
		if err := in.env.Assign(s.Name.Lexeme, v.Copy()); err != nil {
			return proceed, &RuntimeError{Line: s.Name.Line, Msg: err.Error()}
		}
		return proceed, nil

	case *IndexAssignStmt:
		_, err := in.assignIndex(s.Target, s.Value)
		return proceed, err

	case *SayStmt:
		v, err := in.evalExpr(s.Expr)
		if err != nil {
			return proceed, err
		}
		fmt.Fprintln(in.out, FormatValue(v))
		return proceed, nil

	case *WhenStmt:
		return in.execWhen(s)

	case *MatchStmt:
		return in.execMatch(s)

	case *WhileStmt:
		return in.execWhile(s)

	case *ForStmt:
		return in.execCounted(s.Iterator, s.Start, s.End, s.Step, s.Body, true)

	case *WithStmt:
		return in.execCounted(s.Iterator, s.Start, s.Until, s.Step, s.Body, false)

	case *FunctionDefStmt:
		in.env.Define(s.Name.Lexeme, FunValue(s))
		return proceed, nil

	case *CallStmt:
		_, err := in.callFunction(s.Name, s.Args)
		return proceed, err

	case *ReturnStmt:
		v := NoneValue()
		if s.Value != nil {
			var err error
			if v, err = in.evalExpr(s.Value); err != nil {
				return proceed, err
			}
		}
		return signal{kind: ctrlReturn, value: v, line: s.Keyword.Line}, nil

	case *ThrowStmt:
		v, err := in.evalExpr(s.Expr)
		if err != nil {
			return proceed, err
		}
		if v.Tag != VTStr {
			return proceed, &RuntimeError{Line: s.Keyword.Line, Msg: fmt.Sprintf("throw requires a string value, got %s", v.Tag)}
		}
		return proceed, &thrownError{msg: v.Str, line: s.Keyword.Line}

	case *TryCatchStmt:
		return in.execTryCatch(s)

	default:
		return proceed, fmt.Errorf("unhandled statement %T", stmt)
	}
}

func (in *Interpreter) execWhen(s *WhenStmt) (signal, error) {
	for _, branch := range s.Branches {
		if branch.Condition != nil {
			cond, err := in.evalExpr(branch.Condition)
			if err != nil {
				return proceed, err
			}
			if !cond.Truthy() {
				continue
			}
		}
		return in.execBlock(branch.Body)
	}
	return proceed, nil
}

func (in *Interpreter) execMatch(s *MatchStmt) (signal, error) {
	subject, err := in.evalExpr(s.Subject)
	if err != nil {
		return proceed, err
	}
	for _, c := range s.Cases {
		pattern, err := in.evalExpr(c.Pattern)
		if err != nil {
			return proceed, err
		}
		if subject.Equal(pattern) {
			return in.execBlock(c.Body)
		}
	}
	return proceed, nil
}

func (in *Interpreter) execWhile(s *WhileStmt) (signal, error) {
	for {
		cond, err := in.evalExpr(s.Condition)
		if err != nil {
			return proceed, err
		}
		if !cond.Truthy() {
			return proceed, nil
		}
		sig, err := in.execBlock(s.Body)
		if err != nil || sig.kind != ctrlNormal {
			return sig, err
		}
	}
}

// execCounted runs `repeat for` (inclusive bound) and `repeat with`
// (exclusive bound). The iterator lives in one scope for the whole loop;
// each iteration runs the body in a nested fresh scope.
func (in *Interpreter) execCounted(iter Token, startE, boundE, stepE Expr, body []Stmt, inclusive bool) (signal, error) {
	start, err := in.evalInt(startE)
	if err != nil {
		return proceed, err
	}
	bound, err := in.evalInt(boundE)
	if err != nil {
		return proceed, err
	}
	step := int64(1)
	if stepE != nil {
		if step, err = in.evalInt(stepE); err != nil {
			return proceed, err
		}
	}
	if step == 0 {
		return proceed, &RuntimeError{Line: iter.Line, Msg: "loop step cannot be zero"}
	}

	in.env.Enter()
	defer in.env.Exit()
	in.env.Define(iter.Lexeme, IntValue(start))

	for i := start; withinBound(i, bound, step, inclusive); i += step {
		_ = in.env.Assign(iter.Lexeme, IntValue(i))
		sig, err := in.execBlock(body)
		if err != nil || sig.kind != ctrlNormal {
			return sig, err
		}
	}
	return proceed, nil
}

func withinBound(i, bound, step int64, inclusive bool) bool {
	if step > 0 {
		if inclusive {
			return i <= bound
		}
		return i < bound
	}
	if inclusive {
		return i >= bound
	}
	return i > bound
}

func (in *Interpreter) execTryCatch(s *TryCatchStmt) (signal, error) {
	sig, err := in.execBlock(s.TryBody)
	thrown, ok := err.(*thrownError)
	if !ok {
		return sig, err
	}

	in.env.Enter()
	defer in.env.Exit()
	in.env.Define(s.ExcName.Lexeme, StrValue(thrown.msg))
	return in.execStmts(s.CatchBody)
}

func (in *Interpreter) callFunction(name Token, args []Expr) (Value, error) {
	fv, ok := in.env.Get(name.Lexeme)
	if !ok {
		return NoneValue(), &RuntimeError{Line: name.Line, Msg: fmt.Sprintf("undefined variable '%s'", name.Lexeme)}
	}
	if fv.Tag != VTFun {
		return NoneValue(), &RuntimeError{Line: name.Line, Msg: fmt.Sprintf("'%s' is not a function", name.Lexeme)}
	}
	def := fv.Fun
	if len(args) != len(def.Params) {
		return NoneValue(), &RuntimeError{
			Line: name.Line,
			Msg:  fmt.Sprintf("function '%s' expects %d argument(s), got %d", name.Lexeme, len(def.Params), len(args)),
		}
	}

	// Arguments evaluate in the caller's scope before the callee's scope
	// opens.
	vals := make([]Value, len(args))
	for i, arg := range args {
		v, err := in.evalExpr(arg)
		if err != nil {
			return NoneValue(), err
		}
		vals[i] = v.Copy()
	}

	in.env.Enter()
	defer in.env.Exit()
	for i, param := range def.Params {
		in.env.Define(param.Lexeme, vals[i])
	}
	sig, err := in.execStmts(def.Body)
	if err != nil {
		return NoneValue(), err
	}
	if sig.kind == ctrlReturn {
		return sig.value, nil
	}
	return NoneValue(), nil
}

// ───────────────────────── expressions ─────────────────────────

func (in *Interpreter) evalExpr(e Expr) (Value, error) {
	switch n := e.(type) {
	case *LiteralExpr:
		return in.evalLiteral(n)

	case *VariableExpr:
		v, ok := in.env.Get(n.Name.Lexeme)
		if !ok {
			return NoneValue(), &RuntimeError{Line: n.Name.Line, Msg: fmt.Sprintf("undefined variable '%s'", n.Name.Lexeme)}
		}
		return v, nil

	case *ParenExpr:
		return in.evalExpr(n.Inner)

	case *BinaryExpr:
		return in.evalBinary(n)

	case *ListLiteralExpr:
		elems := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := in.evalExpr(el)
			if err != nil {
				return NoneValue(), err
			}
			elems[i] = v
		}
		return ListValue(elems), nil

	case *DictLiteralExpr:
		m := make(map[string]Value, len(n.Pairs))
		for _, pair := range n.Pairs {
			k, err := in.evalExpr(pair.Key)
			if err != nil {
				return NoneValue(), err
			}
			if k.Tag != VTStr {
				return NoneValue(), &RuntimeError{Line: pair.Key.Tok().Line, Msg: fmt.Sprintf("dictionary key must be string, got %s", k.Tag)}
			}
			v, err := in.evalExpr(pair.Value)
			if err != nil {
				return NoneValue(), err
			}
			m[k.Str] = v
		}
		return DictValue(m), nil

	case *IndexExpr:
		return in.evalIndex(n)

	case *AssignExpr:
		v, err := in.evalExpr(n.Value)
		if err != nil {
			return NoneValue(), err
		}
		if err := in.env.Assign(n.Name.Lexeme, v.Copy()); err != nil {
			return NoneValue(), &RuntimeError{Line: n.Name.Line, Msg: err.Error()}
		}
		return v, nil

	case *IndexAssignExpr:
		return in.assignIndex(n.Target, n.Value)

	case *CallExpr:
		return in.callFunction(n.Name, n.Args)

	default:
		return NoneValue(), fmt.Errorf("unhandled expression %T", e)
	}
}

func (in *Interpreter) evalLiteral(n *LiteralExpr) (Value, error) {
	if n.Value.Type == STRING {
		return StrValue(n.Value.Lexeme), nil
	}
	text := strings.TrimSuffix(strings.TrimSuffix(n.Value.Lexeme, "L"), "l")
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return NoneValue(), &RuntimeError{Line: n.Value.Line, Msg: fmt.Sprintf("malformed number '%s'", n.Value.Lexeme)}
		}
		return IntValue(int64(f)), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return NoneValue(), &RuntimeError{Line: n.Value.Line, Msg: fmt.Sprintf("malformed number '%s'", n.Value.Lexeme)}
	}
	return IntValue(i), nil
}

func (in *Interpreter) evalInt(e Expr) (int64, error) {
	v, err := in.evalExpr(e)
	if err != nil {
		return 0, err
	}
	if v.Tag != VTInt {
		return 0, &RuntimeError{Line: e.Tok().Line, Msg: fmt.Sprintf("expected integer, got %s", v.Tag)}
	}
	return v.Int, nil
}

func (in *Interpreter) evalBinary(n *BinaryExpr) (Value, error) {
	left, err := in.evalExpr(n.Left)
	if err != nil {
		return NoneValue(), err
	}
	right, err := in.evalExpr(n.Right)
	if err != nil {
		return NoneValue(), err
	}

	switch n.Op.Type {
	case PLUS, MINUS, STAR, SLASH:
		if left.Tag != VTInt || right.Tag != VTInt {
			return NoneValue(), &RuntimeError{
				Line: n.Op.Line,
				Msg:  fmt.Sprintf("operands of '%s' must be integers, got %s and %s", n.Op.Lexeme, left.Tag, right.Tag),
			}
		}
		switch n.Op.Type {
		case PLUS:
			return IntValue(left.Int + right.Int), nil
		case MINUS:
			return IntValue(left.Int - right.Int), nil
		case STAR:
			return IntValue(left.Int * right.Int), nil
		default:
			if right.Int == 0 {
				return NoneValue(), &RuntimeError{Line: n.Op.Line, Msg: "division by zero"}
			}
			return IntValue(left.Int / right.Int), nil
		}

	case EQUAL_EQUAL:
		return boolValue(left.Equal(right)), nil
	case NOT_EQUAL:
		return boolValue(!left.Equal(right)), nil

	case GREATER, LESS, GREATER_EQUAL, LESS_EQUAL:
		return in.evalOrdered(n.Op, left, right)

	default:
		return NoneValue(), &RuntimeError{Line: n.Op.Line, Msg: fmt.Sprintf("unknown operator '%s'", n.Op.Lexeme)}
	}
}

// evalOrdered compares two integers or two strings.
func (in *Interpreter) evalOrdered(op Token, left, right Value) (Value, error) {
	if left.Tag != right.Tag || (left.Tag != VTInt && left.Tag != VTStr) {
		return NoneValue(), &RuntimeError{
			Line: op.Line,
			Msg:  fmt.Sprintf("cannot compare %s with %s", left.Tag, right.Tag),
		}
	}
	var cmp int
	if left.Tag == VTInt {
		switch {
		case left.Int < right.Int:
			cmp = -1
		case left.Int > right.Int:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(left.Str, right.Str)
	}
	switch op.Type {
	case GREATER:
		return boolValue(cmp > 0), nil
	case LESS:
		return boolValue(cmp < 0), nil
	case GREATER_EQUAL:
		return boolValue(cmp >= 0), nil
	default:
		return boolValue(cmp <= 0), nil
	}
}

func boolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

// evalIndex reads base[index] with bounds and key checking.
func (in *Interpreter) evalIndex(n *IndexExpr) (Value, error) {
	base, err := in.evalExpr(n.Base)
	if err != nil {
		return NoneValue(), err
	}
	index, err := in.evalExpr(n.Index)
	if err != nil {
		return NoneValue(), err
	}
	line := n.Index.Tok().Line

	switch base.Tag {
	case VTList:
		if index.Tag != VTInt {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("list index must be integer, got %s", index.Tag)}
		}
		if index.Int < 0 || index.Int >= int64(len(base.List)) {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("list index %d out of range (size %d)", index.Int, len(base.List))}
		}
		return base.List[index.Int], nil
	case VTDict:
		if index.Tag != VTStr {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("dictionary key must be string, got %s", index.Tag)}
		}
		v, ok := base.Dict[index.Str]
		if !ok {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("key '%s' not found", index.Str)}
		}
		return v, nil
	default:
		return NoneValue(), &RuntimeError{Line: n.Base.Tok().Line, Msg: fmt.Sprintf("only lists and dictionaries can be indexed, got %s", base.Tag)}
	}
}

// assignIndex writes through base[index]. The base must be a variable
// holding a list or dictionary; the stored container mutates in place.
func (in *Interpreter) assignIndex(target *IndexExpr, valueExpr Expr) (Value, error) {
	baseVar, ok := target.Base.(*VariableExpr)
	if !ok {
		return NoneValue(), &RuntimeError{Line: target.Tok().Line, Msg: "index assignment target must be a variable"}
	}
	container, found := in.env.Get(baseVar.Name.Lexeme)
	if !found {
		return NoneValue(), &RuntimeError{Line: baseVar.Name.Line, Msg: fmt.Sprintf("undefined variable '%s'", baseVar.Name.Lexeme)}
	}
	index, err := in.evalExpr(target.Index)
	if err != nil {
		return NoneValue(), err
	}
	value, err := in.evalExpr(valueExpr)
	if err != nil {
		return NoneValue(), err
	}
	line := target.Index.Tok().Line

	switch container.Tag {
	case VTList:
		if index.Tag != VTInt {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("list index must be integer, got %s", index.Tag)}
		}
		if index.Int < 0 || index.Int >= int64(len(container.List)) {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("list index %d out of range (size %d)", index.Int, len(container.List))}
		}
		container.List[index.Int] = value.Copy()
	case VTDict:
		if index.Tag != VTStr {
			return NoneValue(), &RuntimeError{Line: line, Msg: fmt.Sprintf("dictionary key must be string, got %s", index.Tag)}
		}
		container.Dict[index.Str] = value.Copy()
	default:
		return NoneValue(), &RuntimeError{Line: baseVar.Name.Line, Msg: fmt.Sprintf("only lists and dictionaries can be indexed, got %s", container.Tag)}
	}
	return value, nil
}
