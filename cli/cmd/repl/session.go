package repl

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/builtin"

	"github.com/ardnew/nestkit/log"
	"github.com/ardnew/nestkit/nest"
	"github.com/ardnew/nestkit/script"
)

// session accumulates the statements accepted so far and the structure they
// build.
type session struct {
	src    string
	m      *nest.Map
	opts   []script.Option
	logger log.Logger
}

// result is the outcome of one line of input.
type result struct {
	names []string // keys assigned by accepted statements
	value any      // value of a query
	query bool
}

func newSession(
	ctx context.Context,
	src string,
	logger log.Logger,
	opts ...script.Option,
) (*session, error) {
	s := &session{opts: opts, logger: logger}

	if err := s.load(ctx, src); err != nil {
		return nil, err
	}

	return s, nil
}

// load replaces the session source with src and rebuilds the structure. On
// error the session is unchanged.
func (s *session) load(ctx context.Context, src string) error {
	m, err := script.Build(ctx, src, s.opts...)
	if err != nil {
		return err
	}

	s.src, s.m = src, m

	s.logger.TraceContext(ctx, "repl session loaded",
		slog.Int("source_length", len(src)),
		slog.Int("keys", m.Len()),
	)

	return nil
}

// eval applies one line of input.
//
// Input that parses as statements is appended to the session source and the
// structure is rebuilt; if the rebuild fails the line is rejected. Any other
// input is evaluated as an expression against the current structure.
func (s *session) eval(ctx context.Context, input string) (result, error) {
	ast, perr := script.Parse(ctx, input, s.opts...)
	if perr == nil {
		src := input
		if s.src != "" {
			src = s.src + "\n" + input
		}

		if err := s.load(ctx, src); err != nil {
			return result{}, err
		}

		var names []string

		for _, st := range ast.Statements {
			if st.Kind == script.StmtAssign && !nest.Reserved(st.Name) {
				names = append(names, st.Name)
			}
		}

		return result{names: names}, nil
	}

	v, err := script.Query(ctx, s.m, input, s.opts...)
	if err != nil {
		if errors.Is(err, script.ErrExprCompile) {
			return result{}, perr
		}

		return result{}, err
	}

	return result{value: v, query: true}, nil
}

// get returns the value of the top-level key name.
func (s *session) get(ctx context.Context, name string) (any, error) {
	return script.Query(ctx, s.m, "dig("+strconv.Quote(name)+")", s.opts...)
}

// resolve walks path through the structure, matching keys by name in either
// key form. Integer segments index sequences.
func (s *session) resolve(path string) (any, bool) {
	var cur any = s.m
	if path == "" {
		return cur, true
	}

	for seg := range strings.SplitSeq(path, ".") {
		switch t := cur.(type) {
		case *nest.Map:
			var found bool

			for k, v := range t.All() {
				if k.Name == seg {
					cur, found = v, true

					break
				}
			}

			if !found {
				return nil, false
			}

		case *nest.Seq:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false
			}

			v, ok := t.At(i)
			if !ok {
				return nil, false
			}

			cur = v

		default:
			return nil, false
		}
	}

	return cur, true
}

// names returns the key names of the map at path, the indices of the
// sequence at path, or the members of the expression environment at path.
func (s *session) names(path string) []string {
	v, ok := s.resolve(path)
	if !ok {
		return script.EnvLookup(path)
	}

	switch t := v.(type) {
	case *nest.Map:
		names := make([]string, 0, t.Len())
		for k := range t.Keys() {
			names = append(names, k.Name)
		}

		if path == "" {
			names = append(names, script.EnvKeys()...)
			names = append(names, slices.Sorted(maps.Keys(builtin.Index))...)
		}

		return names

	case *nest.Seq:
		names := make([]string, t.Len())
		for i := range names {
			names[i] = strconv.Itoa(i)
		}

		return names

	default:
		return nil
	}
}
