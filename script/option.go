package script

import (
	"github.com/ardnew/nestkit/log"
	"github.com/ardnew/nestkit/nest"
)

// options holds parse and evaluation settings.
type options struct {
	base       *nest.Map
	symbolize  bool
	logger     log.Logger
	processEnv []string
}

// Option configures parsing or evaluation.
type Option func(*options)

// WithSymbolize selects symbol keys (true, the default) or text keys.
func WithSymbolize(symbolize bool) Option {
	return func(o *options) {
		o.symbolize = symbolize
	}
}

// WithBase seeds evaluation with a shallow copy of base.
func WithBase(base *nest.Map) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProcessEnv sets the environment variables visible to env().
// The format is []string{"KEY=VALUE", ...}. If nil, os.Environ() is used.
func WithProcessEnv(env []string) Option {
	return func(o *options) {
		o.processEnv = env
	}
}

func makeOptions(opts ...Option) options {
	o := options{symbolize: nest.DefaultSymbolize}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// buildOptions translates o into [nest.Build] options.
func (o options) buildOptions() []nest.Option {
	return []nest.Option{
		nest.WithBase(o.base),
		nest.WithSymbolize(o.symbolize),
		nest.WithLogger(o.logger),
	}
}
