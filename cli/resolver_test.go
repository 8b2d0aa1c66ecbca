package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nestkit/script"
)

func flag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	const src = `
config: {
  log-level: "debug"
  log_format: "text"
  count: 2 * 21
  ratio: 0.5
  pretty: false
  source: ["a.nest", "b.nest"]
}
other: { foo: "bar" }
`

	script.ClearCache()

	resolver, err := resolve(t.Context(), baseConfig)(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"count", "42"},
		{"ratio", "0.5"},
		{"pretty", false},
		{"source", []any{"a.nest", "b.nest"}},
		{"foo", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := resolver.Resolve(nil, nil, flag(tt.flag))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_Unresolved(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing_block", `existing: { foo: "bar" }`},
		{"not_a_block", `config: "flat"`},
		{"parse_error", `config: {`},
		{"eval_error", `config: { x: undefined_name }`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := resolve(t.Context(), baseConfig)(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}

			if got, _ := resolver.Resolve(nil, nil, flag("foo")); got != nil {
				t.Errorf("Resolve() = %v, want nil", got)
			}
		})
	}
}

func TestResolve_ReadError(t *testing.T) {
	r := iotestErrReader{}

	resolver, err := resolve(t.Context(), baseConfig)(r)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if got, _ := resolver.Resolve(nil, nil, flag("foo")); got != nil {
		t.Errorf("Resolve() = %v, want nil", got)
	}
}

type iotestErrReader struct{}

func (iotestErrReader) Read([]byte) (int, error) { return 0, bytes.ErrTooLarge }

// TestResolve_Kong checks that resolved values reach parsed flags and that
// command-line flags take precedence.
func TestResolve_Kong(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseConfig)

	err := os.WriteFile(path, []byte(`config: { name: "from-file"; count: 3; tags: ["x", "y"] }`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	type cli struct {
		Name  string
		Count int
		Tags  []string
	}

	for _, tt := range []struct {
		args      []string
		wantName  string
		wantCount int
	}{
		{nil, "from-file", 3},
		{[]string{"--name=flag", "--count=9"}, "flag", 9},
	} {
		var c cli

		parser, err := kong.New(&c, kong.Configuration(resolve(t.Context(), baseConfig), path))
		if err != nil {
			t.Fatal(err)
		}

		if _, err := parser.Parse(tt.args); err != nil {
			t.Fatalf("Parse(%v) error = %v", tt.args, err)
		}

		if c.Name != tt.wantName || c.Count != tt.wantCount {
			t.Errorf("Parse(%v) = %+v, want name=%s count=%d",
				tt.args, c, tt.wantName, tt.wantCount)
		}

		if !reflect.DeepEqual(c.Tags, []string{"x", "y"}) {
			t.Errorf("Parse(%v) tags = %v", tt.args, c.Tags)
		}
	}
}
