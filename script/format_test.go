package script

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ardnew/nestkit/nest"
)

func sample() *nest.Map {
	return nest.NewMap().
		Set(nest.Sym("price"), 10).
		Set(nest.Sym("ratio"), 2.0).
		Set(nest.Sym("client"), nest.NewMap().
			Set(nest.Sym("name"), "Patrick \"P\" Stewart").
			Set(nest.Sym("tags"), nest.NewSeq("a", nil, true))).
		Set(nest.Sym("features"), nest.NewSeq(
			nest.NewMap().Set(nest.Sym("name"), "dynamic"),
			nest.NewMap(),
		)).
		Set(nest.Sym("first-name"), "x").
		Set(nest.Sym("two words"), 1).
		Set(nest.Sym("if"), "keyword")
}

func TestFormat_Indented(t *testing.T) {
	var b strings.Builder

	if err := Format(&b, sample(), 2); err != nil {
		t.Fatal(err)
	}

	want := `price: 10
ratio: 2.0
client: {
  name: "Patrick \"P\" Stewart"
  tags: [
    "a",
    nil,
    true
  ]
}
features: [
  {
    name: "dynamic"
  },
  {}
]
first-name: "x"
"two words": 1
"if": "keyword"
`

	if got := b.String(); got != want {
		t.Errorf("Format() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormat_SingleLine(t *testing.T) {
	var b strings.Builder

	m := nest.NewMap().
		Set(nest.Sym("a"), 1).
		Set(nest.Sym("b"), nest.NewMap().Set(nest.Sym("c"), nest.NewSeq(1, 2)))

	if err := Format(&b, m, 0); err != nil {
		t.Fatal(err)
	}

	if got, want := b.String(), "a: 1; b: { c: [1, 2] }"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, indent := range []int{0, 2, 4} {
		var b strings.Builder

		if err := Format(&b, sample(), indent); err != nil {
			t.Fatal(err)
		}

		m, err := Build(t.Context(), b.String())
		if err != nil {
			t.Fatalf("indent %d: Build() error = %v\n%s", indent, err, b.String())
		}

		if !m.Equal(sample()) {
			t.Errorf("indent %d: round trip = %v, want %v", indent, m, sample())
		}
	}
}

func TestFormat_NativeContainers(t *testing.T) {
	var b strings.Builder

	m := nest.NewMap().Set(nest.Text("native"), map[string]any{
		"z": []any{1, "two"},
		"a": nil,
	})

	if err := Format(&b, m, 0); err != nil {
		t.Fatal(err)
	}

	if got, want := b.String(), `native: { a: nil; z: [1, "two"] }`; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_NoLiteral(t *testing.T) {
	var b strings.Builder

	m := nest.NewMap().Set(nest.Sym("x"), math.NaN())

	if err := Format(&b, m, 0); !errors.Is(err, ErrFormat) {
		t.Errorf("error = %v, want ErrFormat", err)
	}

	if b.Len() != 0 {
		t.Errorf("wrote %q on error", b.String())
	}
}
