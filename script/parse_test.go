package script

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *AST {
	t.Helper()

	ast, err := newParser(src).parseScript()
	if err != nil {
		t.Fatalf("parse(%q) error = %v", src, err)
	}

	return ast
}

func TestParse_Assignments(t *testing.T) {
	ast := mustParse(t, `
		price: 10
		name = "x; y"   # comment
		"quoted key": 1 + 2, other: (1 +
			2)
		key!: "k"; flag?: true
	`)

	want := []struct {
		name   string
		setter bool
		source string
	}{
		{"price", false, "10"},
		{"name", true, `"x; y"`},
		{"quoted key", false, "1 + 2"},
		{"other", false, "(1 +\n\t\t\t2)"},
		{"key!", false, `"k"`},
		{"flag?", false, "true"},
	}

	if len(ast.Statements) != len(want) {
		t.Fatalf("got %d statements, want %d", len(ast.Statements), len(want))
	}

	for i, w := range want {
		st := ast.Statements[i]
		if st.Kind != StmtAssign || st.Name != w.name || st.Setter != w.setter {
			t.Errorf("statement %d = {%v %q %v}, want {assign %q %v}",
				i, st.Kind, st.Name, st.Setter, w.name, w.setter)
		}

		if st.Value.Kind != KindExpr || st.Value.Source != w.source {
			t.Errorf("statement %d value = %v %q, want Expr %q",
				i, st.Value.Kind, st.Value.Source, w.source)
		}
	}
}

func TestParse_BlocksAndArrays(t *testing.T) {
	ast := mustParse(t, `client: { first: "a"; last: "b" }
features: [
  { name: "dynamic" },
  { name: "object_oriented" },
]
empty: {}
list: [1, [2, 3], "x,y"]`)

	if len(ast.Statements) != 4 {
		t.Fatalf("got %d statements, want 4", len(ast.Statements))
	}

	client := ast.Statements[0].Value
	if client.Kind != KindBlock || len(client.Body) != 2 {
		t.Errorf("client = %v with %d statements", client.Kind, len(client.Body))
	}

	features := ast.Statements[1].Value
	if features.Kind != KindArray || len(features.Elements) != 2 {
		t.Fatalf("features = %v with %d elements", features.Kind, len(features.Elements))
	}

	for _, el := range features.Elements {
		if el.Kind != KindBlock || el.Body[0].Name != "name" {
			t.Errorf("element = %v %v", el.Kind, el.Body)
		}
	}

	if v := ast.Statements[2].Value; v.Kind != KindBlock || len(v.Body) != 0 {
		t.Errorf("empty = %v with %d statements", v.Kind, len(v.Body))
	}

	list := ast.Statements[3].Value
	if list.Kind != KindArray || len(list.Elements) != 3 {
		t.Fatalf("list = %v with %d elements", list.Kind, len(list.Elements))
	}

	for i, want := range []string{"1", "[2, 3]", `"x,y"`} {
		if got := list.Elements[i].Source; got != want {
			t.Errorf("list[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestParse_Conditions(t *testing.T) {
	ast := mustParse(t, `
if exists("a") { b: 1 } else if x > 2 {
  c: 2
} else { d: 3 }
if: "a key named if"
`)

	if len(ast.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(ast.Statements))
	}

	st := ast.Statements[0]
	if st.Kind != StmtIf || st.Cond.Source != `exists("a")` {
		t.Fatalf("statement 0 = %v %q", st.Kind, st.Cond.Source)
	}

	if len(st.Then.Body) != 1 || st.Then.Body[0].Name != "b" {
		t.Errorf("then = %v", st.Then.Body)
	}

	nested := st.Else.Body[0]
	if nested.Kind != StmtIf || nested.Cond.Source != "x > 2" {
		t.Fatalf("else if = %v %q", nested.Kind, nested.Cond.Source)
	}

	if nested.Else == nil || nested.Else.Body[0].Name != "d" {
		t.Error("missing final else")
	}

	if st := ast.Statements[1]; st.Kind != StmtAssign || st.Name != "if" {
		t.Errorf("statement 1 = %v %q, want assignment to if", st.Kind, st.Name)
	}
}

func TestParse_Comments(t *testing.T) {
	ast := mustParse(t, `
// line comment
/* block
   comment */ a: 1 // trailing
b: count([1, 2, 3], # > 1) # predicate
`)

	if len(ast.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(ast.Statements))
	}

	if got := ast.Statements[1].Value.Source; got != "count([1, 2, 3], # > 1)" {
		t.Errorf("b = %q", got)
	}
}

func TestParse_Positions(t *testing.T) {
	ast := mustParse(t, "a: 1\n  b: {\n    c: 2\n  }")

	tests := []struct {
		st   *Statement
		line int
		col  int
	}{
		{ast.Statements[0], 1, 1},
		{ast.Statements[1], 2, 3},
		{ast.Statements[1].Value.Body[0], 3, 5},
	}

	for _, tt := range tests {
		if tt.st.Pos.Line != tt.line || tt.st.Pos.Column != tt.col {
			t.Errorf("%s at %v, want %d:%d", tt.st.Name, tt.st.Pos, tt.line, tt.col)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		line     int
	}{
		{"missing operator", "a 1", "':' or '='", 1},
		{"missing value", "a:", "expression", 1},
		{"unclosed block", "a: {\n  b: 1", "'}'", 2},
		{"unclosed array", "a: [1, 2", "',' or ']'", 1},
		{"unclosed string", `a: "abc`, "closing '\"'", 1},
		{"unbalanced paren", "a: (1 + 2", "closing bracket", 1},
		{"stray closer", "}", "name", 1},
		{"two statements on a line", "a: {} b: 1", "';', ',' or line break", 1},
		{"if without block", "if true\n", "'{'", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newParser(tt.src).parseScript()
			if !errors.Is(err, ErrParse) {
				t.Fatalf("error = %v, want ErrParse", err)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}

			if pe.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", pe.Expected, tt.expected)
			}

			if pe.Pos.Line != tt.line {
				t.Errorf("line = %d, want %d", pe.Pos.Line, tt.line)
			}
		})
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := newParser("a: 1\nb 2").parseScript()
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	for _, want := range []string{"line 2, column 3", "2 | b 2", "^"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

func TestAST_Walk(t *testing.T) {
	ast := mustParse(t, `a: { b: 1 }; c: [{ d: 2 }]; if true { e: 3 } else { f: 4 }`)

	var names []string

	ast.Walk(func(st *Statement) bool {
		if st.Kind == StmtAssign {
			names = append(names, st.Name)
		}

		return true
	})

	if got := strings.Join(names, ","); got != "a,b,c,d,e,f" {
		t.Errorf("Walk visited %s", got)
	}
}
