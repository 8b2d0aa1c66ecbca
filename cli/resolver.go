package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nestkit/log"
	"github.com/ardnew/nestkit/nest"
	"github.com/ardnew/nestkit/script"
)

// resolve returns a [kong.ConfigurationLoader] that evaluates a config file
// written in script syntax and resolves flags from the block called name.
//
//	config: {
//	  log-level: "debug"
//	  log_format: "text"
//	  source: ["base.nest", "local.nest"]
//	}
//
// Flag names may be written with hyphens or underscores. Numbers are passed
// to kong as strings and arrays as lists. A file that fails to build, or
// that has no block called name, resolves nothing. Command-line flags
// override config file values.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		m, err := buildConfig(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		for k, v := range m.All() {
			if c, ok := v.(*nest.Map); ok && k.Name == name {
				return makeConfig(c), nil
			}
		}

		return config{}, nil
	}
}

func buildConfig(ctx context.Context, r io.Reader) (*nest.Map, error) {
	ast, err := script.ParseReader(ctx, r)
	if err != nil {
		return nil, err
	}

	return ast.Eval(ctx, script.WithLogger(log.Default()))
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

func makeConfig(m *nest.Map) config {
	c := make(config, m.Len())
	for k, v := range m.All() {
		c[k.Name] = flagArg(v)
	}

	return c
}

// flagArg converts a structure value to a form kong can decode.
func flagArg(v any) any {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)

	case int64:
		return strconv.FormatInt(t, 10)

	case uint64:
		return strconv.FormatUint(t, 10)

	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)

	case *nest.Seq:
		s := make([]any, 0, t.Len())
		for e := range t.Values() {
			s = append(s, flagArg(e))
		}

		return s

	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if v, ok := c[name]; ok {
			return v, nil
		}
	}

	return nil, nil //nolint:nilnil
}
