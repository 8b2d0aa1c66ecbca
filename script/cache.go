package script

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// parseCache stores parse results keyed by the xxh3 hash of their source.
var parseCache sync.Map

// cacheEntry holds the single parse result for one source text.
type cacheEntry struct {
	once sync.Once
	src  string
	ast  *AST
	err  error
}

// Parse parses src and returns the AST.
//
// Results are cached by source content, so parsing the same text again
// returns the same immutable AST (or the same error) without reparsing.
func Parse(ctx context.Context, src string, opts ...Option) (*AST, error) {
	o := makeOptions(opts...)

	hash := xxh3.HashString(src)

	value, hit := parseCache.LoadOrStore(hash, new(cacheEntry))

	entry, ok := value.(*cacheEntry)
	if !ok {
		return parseUncached(ctx, src, o)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.src = src
		entry.ast, entry.err = parseUncached(ctx, src, o)
	})

	// Distinct sources with colliding hashes are parsed independently.
	if entry.src != src {
		return parseUncached(ctx, src, o)
	}

	return entry.ast, entry.err
}

// ParseReader reads all of r and parses it with [Parse].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*AST, error) {
	// Read-ahead lets the next chunk load while the previous one is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return Parse(ctx, string(data), opts...)
}

// ParseFile opens and parses the file at path. The path "-" reads from
// standard input.
func ParseFile(ctx context.Context, path string, opts ...Option) (*AST, error) {
	if path == "-" {
		return ParseReader(ctx, os.Stdin, opts...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}

	defer f.Close()

	return ParseReader(ctx, f, opts...)
}

// ClearCache discards all cached parse results.
func ClearCache() {
	parseCache.Clear()
}

func parseUncached(ctx context.Context, src string, o options) (*AST, error) {
	o.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(src)))

	ast, err := newParser(src).parseScript()
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(ast.Statements)))

	return ast, nil
}
