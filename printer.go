// printer.go — human-readable rendering of tokens, trees, and values.
//
// The token and tree dumps back the `ns tokens` and `ns ast` commands and
// the tests. FormatValue is the single definition of how `say` prints a
// value; the REPL and the interpreter both go through it.
package novascript

import (
	"fmt"
	"sort"
	"strings"
)

// FormatToken renders one token. Layout tokens print as placeholders
// because their lexemes are empty.
func FormatToken(t Token) string {
	switch t.Type {
	case INDENT:
		return "<indent>"
	case DEDENT:
		return "<dedent>"
	case NEWLINE:
		return "<newline>"
	case END_OF_FILE:
		return "<eof>"
	default:
		return fmt.Sprintf("%s '%s'", t.Type, t.Lexeme)
	}
}

// FormatTokens renders a token stream one token per line, prefixed with
// the source line each token came from.
func FormatTokens(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "%4d  %s\n", t.Line, FormatToken(t))
	}
	return b.String()
}

// FormatProgram renders the tree as an indented outline. Expressions show
// the type the semantic pass inferred when one was recorded.
func FormatProgram(prog *Program) string {
	var b strings.Builder
	for _, stmt := range prog.Statements {
		formatStmt(&b, stmt, 0)
	}
	return b.String()
}

func indentLine(b *strings.Builder, depth int, format string, args ...any) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func formatStmt(b *strings.Builder, stmt Stmt, depth int) {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		label := "let " + s.Name.Lexeme
		if s.Declared != TypeNone {
			label += " as " + s.Declared.String()
		}
		if s.IsLong {
			label += " long"
		}
		indentLine(b, depth, "%s", label)
		formatExpr(b, s.Init, depth+1)
	case *SetStmt:
		indentLine(b, depth, "set %s", s.Name.Lexeme)
		formatExpr(b, s.Value, depth+1)
	case *IndexAssignStmt:
		indentLine(b, depth, "set-index")
		formatExpr(b, s.Target, depth+1)
		formatExpr(b, s.Value, depth+1)
	case *SayStmt:
		indentLine(b, depth, "say")
		formatExpr(b, s.Expr, depth+1)
	case *WhenStmt:
		indentLine(b, depth, "when")
		for _, branch := range s.Branches {
			if branch.Condition != nil {
				indentLine(b, depth+1, "branch")
				formatExpr(b, branch.Condition, depth+2)
			} else {
				indentLine(b, depth+1, "otherwise")
			}
			formatStmts(b, branch.Body, depth+2)
		}
	case *MatchStmt:
		indentLine(b, depth, "match")
		formatExpr(b, s.Subject, depth+1)
		for _, c := range s.Cases {
			indentLine(b, depth+1, "case")
			formatExpr(b, c.Pattern, depth+2)
			formatStmts(b, c.Body, depth+2)
		}
	case *WhileStmt:
		indentLine(b, depth, "repeat while")
		formatExpr(b, s.Condition, depth+1)
		formatStmts(b, s.Body, depth+1)
	case *ForStmt:
		indentLine(b, depth, "repeat for %s", s.Iterator.Lexeme)
		formatExpr(b, s.Start, depth+1)
		formatExpr(b, s.End, depth+1)
		if s.Step != nil {
			formatExpr(b, s.Step, depth+1)
		}
		formatStmts(b, s.Body, depth+1)
	case *WithStmt:
		indentLine(b, depth, "repeat with %s", s.Iterator.Lexeme)
		formatExpr(b, s.Start, depth+1)
		formatExpr(b, s.Until, depth+1)
		if s.Step != nil {
			formatExpr(b, s.Step, depth+1)
		}
		formatStmts(b, s.Body, depth+1)
	case *FunctionDefStmt:
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			names[i] = p.Lexeme
		}
		indentLine(b, depth, "function %s(%s)", s.Name.Lexeme, strings.Join(names, ", "))
		formatStmts(b, s.Body, depth+1)
	case *CallStmt:
		indentLine(b, depth, "call %s", s.Name.Lexeme)
		for _, arg := range s.Args {
			formatExpr(b, arg, depth+1)
		}
	case *ReturnStmt:
		indentLine(b, depth, "return")
		if s.Value != nil {
			formatExpr(b, s.Value, depth+1)
		}
	case *ThrowStmt:
		indentLine(b, depth, "throw")
		formatExpr(b, s.Expr, depth+1)
	case *TryCatchStmt:
		indentLine(b, depth, "try")
		formatStmts(b, s.TryBody, depth+1)
		indentLine(b, depth, "catch %s", s.ExcName.Lexeme)
		formatStmts(b, s.CatchBody, depth+1)
	default:
		indentLine(b, depth, "unknown statement %T", stmt)
	}
}

func formatStmts(b *strings.Builder, body []Stmt, depth int) {
	for _, stmt := range body {
		formatStmt(b, stmt, depth)
	}
}

func formatExpr(b *strings.Builder, e Expr, depth int) {
	label := exprLabel(e)
	if t := e.Inferred(); t != TypeNone {
		label += " : " + t.String()
	}
	indentLine(b, depth, "%s", label)

	switch n := e.(type) {
	case *BinaryExpr:
		formatExpr(b, n.Left, depth+1)
		formatExpr(b, n.Right, depth+1)
	case *ParenExpr:
		formatExpr(b, n.Inner, depth+1)
	case *ListLiteralExpr:
		for _, el := range n.Elements {
			formatExpr(b, el, depth+1)
		}
	case *DictLiteralExpr:
		for _, pair := range n.Pairs {
			formatExpr(b, pair.Key, depth+1)
			formatExpr(b, pair.Value, depth+1)
		}
	case *IndexExpr:
		formatExpr(b, n.Base, depth+1)
		formatExpr(b, n.Index, depth+1)
	case *AssignExpr:
		formatExpr(b, n.Value, depth+1)
	case *IndexAssignExpr:
		formatExpr(b, n.Target, depth+1)
		formatExpr(b, n.Value, depth+1)
	case *CallExpr:
		for _, arg := range n.Args {
			formatExpr(b, arg, depth+1)
		}
	}
}

func exprLabel(e Expr) string {
	switch n := e.(type) {
	case *LiteralExpr:
		if n.Value.Type == STRING {
			return fmt.Sprintf("literal %q", n.Value.Lexeme)
		}
		return "literal " + n.Value.Lexeme
	case *VariableExpr:
		return "variable " + n.Name.Lexeme
	case *BinaryExpr:
		return "binary '" + n.Op.Lexeme + "'"
	case *ParenExpr:
		return "paren"
	case *ListLiteralExpr:
		return "list"
	case *DictLiteralExpr:
		return "dict"
	case *IndexExpr:
		return "index"
	case *AssignExpr:
		return "assign " + n.Name.Lexeme
	case *IndexAssignExpr:
		return "index-assign"
	case *CallExpr:
		return "call " + n.Name.Lexeme
	default:
		return fmt.Sprintf("unknown %T", e)
	}
}

// FormatValue renders a runtime value the way `say` prints it. Dictionary
// keys print sorted so output is stable.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNone:
		return "<none>"
	case VTInt:
		return fmt.Sprintf("%d", v.Int)
	case VTStr:
		return v.Str
	case VTList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = formatElem(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTDict:
		keys := make([]string, 0, len(v.Dict))
		for k := range v.Dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q: %s", k, formatElem(v.Dict[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFun:
		return "<function " + v.Fun.Name.Lexeme + ">"
	default:
		return "<undefined>"
	}
}

// formatElem renders a container element; strings keep their quotes so
// list and dict dumps round-trip visually.
func formatElem(v Value) string {
	if v.Tag == VTStr {
		return fmt.Sprintf("%q", v.Str)
	}
	return FormatValue(v)
}
