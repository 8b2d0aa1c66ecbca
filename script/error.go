package script

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/nestkit/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrParse        = pkg.NewError("parse error")
	ErrReadInput    = pkg.NewError("failed to read input")
	ErrExprCompile  = pkg.NewError("expression compilation failed")
	ErrExprEvaluate = pkg.NewError("expression evaluation failed")
	ErrFormat       = pkg.NewError("value has no literal form")
)

// ParseError describes a syntax error at a position in the source.
// It matches [ErrParse] with errors.Is.
type ParseError struct {
	Pos      Position
	Expected string // what the parser was looking for
	Found    string // what it found instead, empty at end of input
	Source   string // the complete source, used for context
}

// Error formats the error with the offending source line and a caret under
// the failing column.
func (e *ParseError) Error() string {
	var b strings.Builder

	b.WriteString("parse error at line ")
	b.WriteString(strconv.Itoa(e.Pos.Line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(e.Pos.Column))
	b.WriteString(": expected ")
	b.WriteString(e.Expected)

	if e.Found != "" {
		b.WriteString(", found ")
		b.WriteString(strconv.Quote(e.Found))
	} else {
		b.WriteString(", found end of input")
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > 0 && e.Pos.Line <= len(lines) {
		num := strconv.Itoa(e.Pos.Line)

		b.WriteString("\n  ")
		b.WriteString(num)
		b.WriteString(" | ")
		b.WriteString(lines[e.Pos.Line-1])
		b.WriteByte('\n')

		// 2 leading spaces + " | "
		pad := len(num) + 5
		if e.Pos.Column > 0 {
			pad += e.Pos.Column - 1
		}

		b.WriteString(strings.Repeat(" ", pad))
		b.WriteByte('^')
	}

	return b.String()
}

// Is reports whether target is [ErrParse].
func (e *ParseError) Is(target error) bool {
	return target == ErrParse //nolint:errorlint
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.Error()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.String("expected", e.Expected),
		slog.String("found", e.Found),
	)
}
