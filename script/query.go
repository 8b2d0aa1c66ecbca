package script

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/nestkit/nest"
)

// Query evaluates a single expression against m and returns its result.
//
// The lookup functions (dig, exists and their local forms) read from a
// shallow copy of m, so m is never modified. Key form follows
// [WithSymbolize]; any [WithBase] option is replaced by m.
func Query(
	ctx context.Context,
	m *nest.Map,
	src string,
	opts ...Option,
) (any, error) {
	v := &Value{Kind: KindExpr, Source: strings.TrimSpace(src)}
	if v.Source == "" {
		return nil, ErrExprCompile.With(slog.String("issue", "empty expression"))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := makeOptions(append(opts, WithBase(m))...)

	e := &evaluator{
		ctx:        ctx,
		processEnv: processEnvMap(o.processEnv),
		logger:     o.logger,
	}
	e.env = newEnv(e)

	var result any

	_, err := nest.Build(func(p *nest.Proxy) error {
		e.proxy = p

		var err error

		result, err = e.expr(v)

		return err
	}, o.buildOptions()...)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "query",
		slog.String("source", v.Source),
		slog.String("type", typeName(result)),
	)

	return result, nil
}
