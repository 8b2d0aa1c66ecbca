package nest

import (
	"errors"
	"testing"
)

func TestCall_Assignment(t *testing.T) {
	m := build(t, func(p *Proxy) error {
		tests := []struct {
			name string
			args []any
		}{
			{"price", []any{10}},
			{"currency=", []any{"USD"}},
			{"empty", nil},
			{"first_only", []any{1, 2, 3}},
			{"to_h", []any{"plain key"}},
		}

		for _, tt := range tests {
			got, err := p.Call(tt.name, tt.args...)
			if err != nil {
				t.Fatalf("Call(%q) error = %v", tt.name, err)
			}

			if got != p.Map() {
				t.Errorf("Call(%q) = %v, want the root", tt.name, got)
			}
		}

		return nil
	})

	want := NewMap().
		Set(Sym("price"), 10).
		Set(Sym("currency"), "USD").
		Set(Sym("empty"), nil).
		Set(Sym("first_only"), 1).
		Set(Sym("to_h"), "plain key")

	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestCall_UnknownOperation(t *testing.T) {
	build(t, func(p *Proxy) error {
		for _, name := range []string{"foo?", "bar!", "key=!", "to_h!"} {
			if _, err := p.Call(name, 1); !errors.Is(err, ErrUnknownOperation) {
				t.Errorf("Call(%q) error = %v, want ErrUnknownOperation", name, err)
			}
		}

		if p.Map().Len() != 0 {
			t.Errorf("unknown operations wrote keys: %v", p.Map())
		}

		return nil
	})
}

func TestCall_BlockOpensScope(t *testing.T) {
	m := build(t, func(p *Proxy) error {
		_, err := p.Call("client", func() error {
			_, err := p.Call("name", "Patrick")

			return err
		})

		return err
	})

	want := NewMap().Set(Sym("client"), NewMap().Set(Sym("name"), "Patrick"))
	if !m.Equal(want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestCall_ExplicitOperations(t *testing.T) {
	m := build(t, func(p *Proxy) error {
		steps := []struct {
			name string
			args []any
		}{
			{OpKey, []any{"a", 1}},
			{OpKey, []any{"b=", 2}},
			{OpHash, []any{"h", func() error {
				_, err := p.Call(OpKey, Text("inner"), true)

				return err
			}}},
			{OpAry, []any{"xs", func(s *Seq) { s.Push(1, 2) }}},
			{OpArray, []any{"ys", func(s *Seq) error {
				e, err := p.Call(OpEntry, func(e *Proxy) { e.Set("n", 1) })
				if err != nil {
					return err
				}

				s.Push(e)

				return nil
			}}},
		}

		for _, st := range steps {
			if _, err := p.Call(st.name, st.args...); err != nil {
				t.Fatalf("Call(%q) error = %v", st.name, err)
			}
		}

		checks := []struct {
			name string
			args []any
			want any
		}{
			{OpDig, []any{"a"}, 1},
			{OpDig, []any{"h", "inner"}, true},
			{OpDig, []any{"missing"}, nil},
			{OpLocalDig, []any{"b"}, 2},
			{OpDig, []any{"ys", 0, "n"}, 1},
			{OpHasKey, []any{"xs"}, true},
			{OpHasKey, []any{"nope"}, false},
			{OpLocalKey, []any{"a"}, true},
		}

		for _, c := range checks {
			got, err := p.Call(c.name, c.args...)
			if err != nil {
				t.Fatalf("Call(%q, %v) error = %v", c.name, c.args, err)
			}

			if got != c.want {
				t.Errorf("Call(%q, %v) = %v, want %v", c.name, c.args, got, c.want)
			}
		}

		return nil
	})

	if v, _ := m.Get(Sym("xs")); v.(*Seq).Len() != 2 {
		t.Errorf("xs = %v", v)
	}
}

func TestCall_LocalOperationsUseScope(t *testing.T) {
	build(t, func(p *Proxy) error {
		p.Set("name", "root")

		return p.Hash("child", func() error {
			p.Set("name", "child")

			got, _ := p.Call(OpLocalDig, "name")
			if got != "child" {
				t.Errorf("local_dig! = %v, want child", got)
			}

			got, _ = p.Call(OpDig, "name")
			if got != "root" {
				t.Errorf("dig! = %v, want root", got)
			}

			if ok, _ := p.Call(OpLocalKey, "child"); ok != false {
				t.Error("local_key? found a key outside the scope")
			}

			return nil
		})
	})
}

func TestCall_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{OpKey, nil},
		{OpKey, []any{42}},
		{OpHash, []any{"h"}},
		{OpHash, []any{"h", "not a block"}},
		{OpAry, nil},
		{OpAry, []any{"xs", func() {}}},
		{OpEntry, nil},
		{OpEntry, []any{func(*Seq) {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build(t, func(p *Proxy) error {
				if _, err := p.Call(tt.name, tt.args...); !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("Call(%q, %v) error = %v, want ErrInvalidArgument",
						tt.name, tt.args, err)
				}

				return nil
			})
		})
	}
}

func TestCall_ErrorPropagatesThroughScopes(t *testing.T) {
	sentinel := errors.New("deep")

	build(t, func(p *Proxy) error {
		_, err := p.Call("a", func() error {
			_, err := p.Call(OpHash, "b", func() error { return sentinel })

			return err
		})

		if err != sentinel { //nolint:errorlint
			t.Errorf("error = %v, want the block's error unmodified", err)
		}

		if p.Depth() != 0 {
			t.Errorf("Depth() = %d, want 0", p.Depth())
		}

		return nil
	})
}

func TestReserved(t *testing.T) {
	tests := map[string]bool{
		"key!":  true,
		"key?":  true,
		"name":  false,
		"name=": false,
		"":      false,
	}

	for name, want := range tests {
		if got := Reserved(name); got != want {
			t.Errorf("Reserved(%q) = %v, want %v", name, got, want)
		}
	}
}

func BenchmarkCall_Assignment(b *testing.B) {
	p := newProxy(NewMap(), makeOptions())

	for b.Loop() {
		if _, err := p.Call("price=", 10); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCall_NestedScope(b *testing.B) {
	p := newProxy(NewMap(), makeOptions())
	body := func() error {
		_, err := p.Call("name", "value")

		return err
	}

	for b.Loop() {
		if _, err := p.Call("client", body); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDig(b *testing.B) {
	m, err := Build(func(p *Proxy) error {
		return p.Hash("a", func() error {
			return p.Hash("b", func() error {
				p.Set("c", 1)

				return nil
			})
		})
	})
	if err != nil {
		b.Fatal(err)
	}

	p := newProxy(m, makeOptions())

	for b.Loop() {
		if !p.Has("a", "b", "c") {
			b.Fatal("missing path")
		}
	}
}
