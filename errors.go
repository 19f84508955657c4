// errors.go — user-facing error wrapping and source-snippet rendering.
//
// The pipeline stages surface typed errors carrying a 1-based source line:
// *ParseError and *SemanticError also carry the offending token. The CLI
// (and any other embedder) passes errors through WrapErrorWithSource, which
// renders a numbered snippet of the source with a marker on the failing
// line. Errors of other types pass through unchanged, so the wrapper can sit
// unconditionally on the output path.
package novascript

import (
	"fmt"
	"strings"
)

// ParseError is a syntactic failure: an unexpected or missing token, an
// undeclared name, or a redeclaration. Tok is the token the parser was
// looking at when it gave up.
type ParseError struct {
	Tok Token
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Tok.Line, e.Msg)
}

// SemanticError is a type-level failure found by the analysis pass.
type SemanticError struct {
	Tok Token
	Msg string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error at line %d: %s", e.Tok.Line, e.Msg)
}

// RuntimeError is an execution-time failure (division by zero, bad index,
// uncaught throw, ...). Line is 1-based.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Msg)
}

// WrapErrorWithSource augments a pipeline error with a source snippet. It
// recognizes *ParseError, *SemanticError, and *RuntimeError; anything else
// is returned untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", e.Tok.Line, e.Msg))
	case *SemanticError:
		return fmt.Errorf("%s", snippet(src, "SEMANTIC ERROR", e.Tok.Line, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", e.Line, e.Msg))
	default:
		return err
	}
}

// snippet builds the rendered message: a header, then the failing line with
// one line of context on each side. The failing line is marked with '>'.
// Tokens carry no column, so there is no caret; the marker is per-line.
func snippet(src, header string, line int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at line %d: %s\n\n", header, line, msg)
	if line > 1 {
		fmt.Fprintf(&b, "  %4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "> %4d | %s\n", line, lines[line-1])
	if line < len(lines) {
		fmt.Fprintf(&b, "  %4d | %s\n", line+1, lines[line])
	}
	return strings.TrimRight(b.String(), "\n")
}
