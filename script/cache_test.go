package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestParse_CachesBySource(t *testing.T) {
	ClearCache()

	const src = "a: 1; b: { c: 2 }"

	first, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatal(err)
	}

	second, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("identical sources were parsed twice")
	}

	other, err := Parse(t.Context(), src+"\n")
	if err != nil {
		t.Fatal(err)
	}

	if other == first {
		t.Error("distinct sources share a cache entry")
	}

	ClearCache()

	third, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatal(err)
	}

	if third == first {
		t.Error("ClearCache did not discard the entry")
	}
}

func TestParse_CachesErrors(t *testing.T) {
	ClearCache()

	_, err1 := Parse(t.Context(), "a: {")
	_, err2 := Parse(t.Context(), "a: {")

	if !errors.Is(err1, ErrParse) || err1 != err2 { //nolint:errorlint
		t.Errorf("errors = %v, %v; want the same cached parse error", err1, err2)
	}
}

func TestParse_Concurrent(t *testing.T) {
	ClearCache()

	const src = "x: [1, 2, 3]"

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[*AST]bool{}
	)

	for range 16 {
		wg.Go(func() {
			ast, err := Parse(t.Context(), src)
			if err != nil {
				t.Error(err)

				return
			}

			mu.Lock()
			seen[ast] = true
			mu.Unlock()
		})
	}

	wg.Wait()

	if len(seen) != 1 {
		t.Errorf("got %d distinct ASTs, want 1", len(seen))
	}
}

func TestParseReader(t *testing.T) {
	ast, err := ParseReader(t.Context(), strings.NewReader("a: 1\nb: 2"))
	if err != nil {
		t.Fatal(err)
	}

	if len(ast.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(ast.Statements))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.nest")

	if err := os.WriteFile(path, []byte("name: \"file\""), 0o600); err != nil {
		t.Fatal(err)
	}

	ast, err := ParseFile(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	if len(ast.Statements) != 1 || ast.Statements[0].Name != "name" {
		t.Errorf("statements = %v", ast.Statements)
	}

	_, err = ParseFile(t.Context(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrReadInput) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrReadInput wrapping os.ErrNotExist", err)
	}
}

func BenchmarkParse_Cached(b *testing.B) {
	const src = `client: { first: "a"; last: "b"; full: local_dig("first") + local_dig("last") }`

	for b.Loop() {
		if _, err := Parse(b.Context(), src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	ast, err := Parse(b.Context(), `price: 10
client: { first: "a"; last: "b"; full: local_dig("first") + local_dig("last") }
features: [{ name: "x" }, { name: "y" }]`)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := ast.Eval(b.Context()); err != nil {
			b.Fatal(err)
		}
	}
}
