package nest

import (
	"log/slog"

	"github.com/ardnew/nestkit/log"
)

// DefaultSymbolize is the key form used when [WithSymbolize] is not given.
const DefaultSymbolize = true

// options holds the configuration shared by a proxy and its detached entries.
type options struct {
	base      *Map
	symbolize bool
	logger    log.Logger
}

// Option configures [Build].
type Option func(*options)

// WithBase seeds the structure with a shallow copy of base.
// The caller's map is never modified; keys written by the callback replace
// keys copied from base.
func WithBase(base *Map) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithSymbolize selects symbol keys (true) or text keys (false) for every key
// written and every lookup segment.
func WithSymbolize(symbolize bool) Option {
	return func(o *options) {
		o.symbolize = symbolize
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	o := options{symbolize: DefaultSymbolize}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Build creates a [Proxy], passes it to fn, and returns the finished
// structure.
//
// Any error returned by fn is returned unmodified with a nil map. A panic in
// fn propagates to the caller after every open scope has been closed.
func Build(fn func(*Proxy) error, opts ...Option) (*Map, error) {
	if fn == nil {
		return nil, ErrInvalidArgument.With(
			slog.String("issue", "nil build callback"))
	}

	o := makeOptions(opts...)

	p := newProxy(o.base.Clone(), o)

	p.logger.Trace("build start",
		slog.Bool("symbolize", o.symbolize),
		slog.Int("base_keys", o.base.Len()),
	)

	if err := fn(p); err != nil {
		p.logger.Trace("build failed", slog.Any("error", err))

		return nil, err
	}

	p.logger.Trace("build done", slog.Int("keys", p.root.Len()))

	return p.Map(), nil
}
