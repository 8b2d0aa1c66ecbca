package script

import (
	"strconv"
	"sync"

	"github.com/expr-lang/expr/vm"
)

// Position is a location in source text. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Kind identifies the form of a [Value].
type Kind int

const (
	KindExpr Kind = iota
	KindBlock
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindExpr:
		return "Expr"

	case KindBlock:
		return "Block"

	case KindArray:
		return "Array"

	default:
		return "Unknown"
	}
}

// Value is the right-hand side of an assignment or an array element.
type Value struct {
	Kind     Kind
	Source   string       // expression text, for KindExpr
	Body     []*Statement // statements, for KindBlock
	Elements []*Value     // elements, for KindArray
	Pos      Position

	compileOnce sync.Once
	program     *vm.Program
	compileErr  error
}

// StatementKind identifies the form of a [Statement].
type StatementKind int

const (
	StmtAssign StatementKind = iota
	StmtIf
)

// Statement is a single assignment or conditional.
type Statement struct {
	Kind StatementKind
	Pos  Position

	// Assignment fields.
	Name   string
	Setter bool // written with '=' instead of ':'
	Value  *Value

	// Conditional fields.
	Cond *Value // KindExpr
	Then *Value // KindBlock
	Else *Value // KindBlock, or nil
}

// AST is a parsed script. An AST is immutable once parsed and may be
// evaluated any number of times, concurrently.
type AST struct {
	Statements []*Statement
	Source     string
}

// Walk calls fn for every statement in ast, depth first, including the
// statements of blocks, array entries, and both branches of conditionals.
// Walk stops early if fn returns false.
func (ast *AST) Walk(fn func(*Statement) bool) {
	walkStatements(ast.Statements, fn)
}

func walkStatements(stmts []*Statement, fn func(*Statement) bool) bool {
	for _, st := range stmts {
		if !fn(st) {
			return false
		}

		for _, v := range []*Value{st.Value, st.Then, st.Else} {
			if !walkValue(v, fn) {
				return false
			}
		}
	}

	return true
}

func walkValue(v *Value, fn func(*Statement) bool) bool {
	if v == nil {
		return true
	}

	switch v.Kind {
	case KindBlock:
		return walkStatements(v.Body, fn)

	case KindArray:
		for _, e := range v.Elements {
			if !walkValue(e, fn) {
				return false
			}
		}
	}

	return true
}
