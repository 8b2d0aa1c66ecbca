package script

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ardnew/nestkit/nest"
)

func mustBuild(t *testing.T, src string, opts ...Option) *nest.Map {
	t.Helper()

	m, err := Build(t.Context(), src, opts...)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", src, err)
	}

	return m
}

func TestEval_LocalReferences(t *testing.T) {
	m := mustBuild(t, `
price: 10
client: {
  first_name: "Patrick"
  last_name = "Stewart"
  full_name: local_dig("first_name") + " " + local_dig("last_name")
}
inexistent: "i won't be there"
`)

	want := nest.NewMap().
		Set(nest.Sym("price"), 10).
		Set(nest.Sym("client"), nest.NewMap().
			Set(nest.Sym("first_name"), "Patrick").
			Set(nest.Sym("last_name"), "Stewart").
			Set(nest.Sym("full_name"), "Patrick Stewart")).
		Set(nest.Sym("inexistent"), "i won't be there")

	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestEval_ArrayOfEntries(t *testing.T) {
	m := mustBuild(t, `features: [
  { name: "dynamic" },
  { name: "object_oriented"; copy: exists("features") },
  1 + 1,
]`)

	want := nest.NewMap().Set(nest.Sym("features"), nest.NewSeq(
		nest.NewMap().Set(nest.Sym("name"), "dynamic"),
		nest.NewMap().
			Set(nest.Sym("name"), "object_oriented").
			Set(nest.Sym("copy"), false),
		2,
	))

	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestEval_TextKeys(t *testing.T) {
	m := mustBuild(t, `features: { typing: "dynamic" }
has_typing: exists("features", "typing")`, WithSymbolize(false))

	want := nest.NewMap().
		Set(nest.Text("features"), nest.NewMap().Set(nest.Text("typing"), "dynamic")).
		Set(nest.Text("has_typing"), true)

	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestEval_Conditions(t *testing.T) {
	tests := []struct {
		name  string
		price int
		want  string
	}{
		{"then", 20, "high"},
		{"else if", 10, "mid"},
		{"else", 1, "low"},
	}

	const src = `
if dig("price") > 15 {
  band: "high"
} else if dig("price") > 5 {
  band: "mid"
} else {
  band: "low"
}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := nest.NewMap().Set(nest.Sym("price"), tt.price)

			m := mustBuild(t, src, WithBase(base))

			if v, _ := m.Get(nest.Sym("band")); v != tt.want {
				t.Errorf("band = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestEval_ConditionWritesCurrentScope(t *testing.T) {
	m := mustBuild(t, `outer: {
  a: 1
  if local_exists("a") { b: 2 }
}`)

	want := nest.NewMap().Set(nest.Sym("outer"), nest.NewMap().
		Set(nest.Sym("a"), 1).
		Set(nest.Sym("b"), 2))

	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestEval_ReservedNames(t *testing.T) {
	m := mustBuild(t, `key!: "empty"
present: exists("empty")`)

	want := nest.NewMap().
		Set(nest.Sym("empty"), nil).
		Set(nest.Sym("present"), false)

	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}

	_, err := Build(t.Context(), "nope!: 1")
	if !errors.Is(err, nest.ErrUnknownOperation) {
		t.Errorf("error = %v, want ErrUnknownOperation", err)
	}
}

func TestEval_NilAndExistence(t *testing.T) {
	m := mustBuild(t, `x: nil
y: exists("x")
z: dig("x") == nil`)

	if v, _ := m.Get(nest.Sym("y")); v != false {
		t.Errorf("exists(x) = %v, want false", v)
	}

	if v, _ := m.Get(nest.Sym("z")); v != true {
		t.Errorf("dig(x) == nil = %v, want true", v)
	}
}

func TestEval_ProcessEnv(t *testing.T) {
	m := mustBuild(t, `home: env("HOME")
path: mung.prefix("/usr/bin", "/opt/bin")`,
		WithProcessEnv([]string{"HOME=/home/test"}))

	if v, _ := m.Get(nest.Sym("home")); v != "/home/test" {
		t.Errorf("home = %v", v)
	}

	if v, _ := m.Get(nest.Sym("path")); v == "" {
		t.Error("mung.prefix returned an empty path")
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"compile", "a: 1 +", ErrExprCompile},
		{"undefined name", "a: undefined_name", ErrExprCompile},
		{"runtime", `a: 1 / dig("zero")`, ErrExprEvaluate},
		{"non-bool condition", `if 1 { a: 1 }`, ErrExprEvaluate},
		{"scalar scope", "a: 1\na: { b: 2 }", nest.ErrNotStructure},
		{"parse", "a: {", ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(t.Context(), tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}

			if m != nil {
				t.Errorf("map = %v, want nil", m)
			}
		})
	}
}

func TestEval_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	ast, err := Parse(ctx, "a: 1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ast.Eval(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEval_SharedASTConcurrently(t *testing.T) {
	ast, err := Parse(t.Context(), `n: dig("seed") * 2
list: [{ v: 1 }, { v: 2 }]`)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Go(func() {
			base := nest.NewMap().Set(nest.Sym("seed"), i)

			m, err := ast.Eval(t.Context(), WithBase(base))
			if err != nil {
				t.Error(err)

				return
			}

			if v, _ := m.Get(nest.Sym("n")); v != i*2 {
				t.Errorf("n = %v, want %d", v, i*2)
			}
		})
	}

	wg.Wait()
}
