package cmd

import (
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/nestkit/nest"
)

const evalSource = `a: 1; b: { c: [1, "x"] }`

func TestEval_Run(t *testing.T) {
	tests := []struct {
		name   string
		path   []string
		indent int
		want   string
	}{
		{
			name:   "whole_structure",
			indent: 2,
			want: `a: 1
b: {
  c: [
    1,
    "x"
  ]
}
`,
		},
		{
			name: "single_line",
			want: "a: 1; b: { c: [1, \"x\"] }\n",
		},
		{
			name:   "scalar_path",
			path:   []string{"b.c.1"},
			indent: 2,
			want:   "\"x\"\n",
		},
		{
			name: "negative_index",
			path: []string{"b.c.-2", "a"},
			want: "1\n1\n",
		},
		{
			name:   "map_path",
			path:   []string{"b"},
			indent: 2,
			want:   "c: [\n  1,\n  \"x\"\n]\n",
		},
		{
			name: "root_path",
			path: []string{"."},
			want: "a: 1; b: { c: [1, \"x\"] }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := sourceContext(t, evalSource, BuildConfig{Symbolize: true})

			e := &Eval{Path: tt.path, Indent: tt.indent}
			if err := e.Run(ctx); err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("Eval.Run() output =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestEval_Run_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path []string
		want error
	}{
		{"missing_key", evalSource, []string{"b.d"}, ErrNotFound},
		{"through_scalar", evalSource, []string{"a.b"}, ErrNotFound},
		{"empty_segment", evalSource, []string{"b..c"}, ErrInvalidPath},
		{"unknown_operation", `nope!: 1`, nil, nest.ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := sourceContext(t, tt.src, BuildConfig{Symbolize: true})

			err := (&Eval{Path: tt.path}).Run(ctx)
			if !errors.Is(err, tt.want) {
				t.Errorf("Eval.Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEval_TextKeys(t *testing.T) {
	const src = `"dotted.name": { x: 1 }`

	ctx, out := sourceContext(t, src, BuildConfig{Symbolize: false})

	if err := (&Eval{}).Run(ctx); err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if want := src + "\n"; out.String() != want {
		t.Errorf("Eval.Run() output = %q, want %q", out.String(), want)
	}

	ctx, _ = sourceContext(t, src, BuildConfig{Symbolize: false})

	if err := (&Eval{Path: []string{"dotted"}}).Run(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Eval.Run() error = %v, want %v", err, ErrNotFound)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []any
		wantErr bool
	}{
		{"", nil, false},
		{".", nil, false},
		{"a", []any{"a"}, false},
		{"a.b.c", []any{"a", "b", "c"}, false},
		{"list.0.name", []any{"list", 0, "name"}, false},
		{"list.-1", []any{"list", -1}, false},
		{"log-level", []any{"log-level"}, false},
		{"a.", nil, true},
		{".a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
