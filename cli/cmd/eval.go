package cmd

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/nestkit/nest"
)

// Eval builds the source files and prints the structure, or the value at each
// given path.
type Eval struct {
	Path   []string `arg:"" help:"Dotted lookup path; integer segments index arrays" name:"path" optional:""`
	Indent int      `       help:"Indent width for output (0 for a single line)"                    default:"2" short:"i"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := build(ctx)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)

	if len(e.Path) == 0 {
		return renderNative(out, m, e.Indent)
	}

	for _, p := range e.Path {
		v, err := lookup(ctx, m, p)
		if err != nil {
			return err
		}

		if err := renderNative(out, v, e.Indent); err != nil {
			return err
		}
	}

	return nil
}

// ParsePath splits a dotted path into lookup segments. Segments that parse as
// integers index arrays; all others name keys.
func ParsePath(path string) ([]any, error) {
	if path == "" || path == "." {
		return nil, nil
	}

	parts := strings.Split(path, ".")
	segs := make([]any, len(parts))

	for i, s := range parts {
		if s == "" {
			return nil, ErrInvalidPath.With(
				slog.String("path", path),
				slog.Int("segment", i),
			)
		}

		if n, err := strconv.Atoi(s); err == nil {
			segs[i] = n
		} else {
			segs[i] = s
		}
	}

	return segs, nil
}

// lookup returns the value at path in m, normalizing segments with the key
// form of the BuildConfig in ctx.
func lookup(ctx context.Context, m *nest.Map, path string) (any, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	var (
		v  any
		ok bool
	)

	_, err = nest.Build(func(p *nest.Proxy) error {
		v, ok = p.Dig(segs...)

		return nil
	},
		nest.WithBase(m),
		nest.WithSymbolize(buildConfigFrom(ctx).Symbolize),
	)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrNotFound.With(slog.String("path", path))
	}

	return v, nil
}
