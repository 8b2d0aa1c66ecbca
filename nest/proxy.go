package nest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/nestkit/log"
)

// Proxy is the builder context passed to a [Build] callback.
//
// It owns the structure under construction and a scope pointer into it.
// Writes go to the current scope; nested scopes are opened with
// [Proxy.Hash] (or a block argument to [Proxy.Key] and [Proxy.Call]) and
// closed when their body returns.
//
// A Proxy must not be used concurrently or retained after its callback
// returns.
type Proxy struct {
	root      *Map
	scope     *Map
	stack     []*Map // enclosing scopes, innermost last
	path      []Key  // keys of the open scopes, for diagnostics
	symbolize bool
	logger    log.Logger
	tracing   bool
}

func newProxy(root *Map, o options) *Proxy {
	return &Proxy{
		root:      root,
		scope:     root,
		symbolize: o.symbolize,
		logger:    o.logger,
		tracing:   o.logger.TraceEnabled(context.Background()),
	}
}

// key normalizes a name into the proxy's key form.
// One trailing '=' is removed, so "name=" and "name" address the same key.
func (p *Proxy) key(name string) Key {
	return Key{
		Name:   strings.TrimSuffix(name, "="),
		Symbol: p.symbolize,
	}
}

// Symbolize reports whether p writes symbol keys.
func (p *Proxy) Symbolize() bool { return p.symbolize }

// Depth returns the number of open nested scopes.
func (p *Proxy) Depth() int { return len(p.stack) }

// Map returns the root of the structure. Called during construction it
// returns the partial state built so far.
func (p *Proxy) Map() *Map { return p.root }

// Set writes value at name in the current scope and returns the root.
func (p *Proxy) Set(name string, value any) *Map {
	k := p.key(name)

	p.scope.Set(k, value)

	if p.tracing {
		p.logger.Trace("set key",
			slog.String("key", k.Name),
			slog.String("scope", p.scopePath()),
			slog.String("kind", KindOf(value).String()),
		)
	}

	return p.root
}

// Key assigns name in the current scope.
//
// If args holds a block (a func() error or func()), a nested scope is opened
// at name and the block runs inside it; any other argument is ignored.
// Otherwise the first argument, or nil when args is empty, is written at
// name. The root is returned in both cases.
func (p *Proxy) Key(name string, args ...any) (*Map, error) {
	body, ok, err := blockOf(args)
	if err != nil {
		return nil, err
	}

	if ok {
		if err := p.Hash(name, body); err != nil {
			return nil, err
		}

		return p.root, nil
	}

	var value any
	if len(args) > 0 {
		value = args[0]
	}

	return p.Set(name, value), nil
}

// Hash runs body with the scope moved to the map at name, creating that map
// if name is absent or nil. The enclosing scope is restored when body
// returns, including when it returns an error or panics.
//
// If name already holds a value that is not a map, Hash returns
// [ErrNotStructure] and changes nothing.
func (p *Proxy) Hash(name string, body func() error) error {
	if body == nil {
		return ErrInvalidArgument.With(
			slog.String("operation", "hash!"),
			slog.String("issue", "missing block"),
		)
	}

	k := p.key(name)

	child, err := p.child(k)
	if err != nil {
		return err
	}

	p.push(k, child)
	defer p.pop()

	return body()
}

// Array builds a sequence with body and writes it at name in the current
// scope. The scope is unchanged. If body returns an error nothing is written.
// A nil body writes an empty sequence.
func (p *Proxy) Array(name string, body func(*Seq) error) error {
	seq := NewSeq()

	if body != nil {
		if err := body(seq); err != nil {
			return err
		}
	}

	p.Set(name, seq)

	return nil
}

// Entry builds a detached structure with a fresh proxy that shares p's key
// form and logger, for use as a sequence element.
func (p *Proxy) Entry(body func(*Proxy) error) (*Map, error) {
	if body == nil {
		return nil, ErrInvalidArgument.With(
			slog.String("operation", "entry!"),
			slog.String("issue", "missing block"),
		)
	}

	e := newProxy(NewMap(), options{symbolize: p.symbolize, logger: p.logger})

	if err := body(e); err != nil {
		return nil, err
	}

	p.logger.Trace("entry built", slog.Int("keys", e.root.Len()))

	return e.Map(), nil
}

// child returns the map at k in the current scope, creating it when k is
// absent or nil.
func (p *Proxy) child(k Key) (*Map, error) {
	v, ok := p.scope.Get(k)
	if ok && v != nil {
		m, isMap := v.(*Map)
		if !isMap || m == nil {
			return nil, ErrNotStructure.With(
				slog.String("key", k.Name),
				slog.String("scope", p.scopePath()),
				slog.String("kind", KindOf(v).String()),
			)
		}

		return m, nil
	}

	m := NewMap()
	p.scope.Set(k, m)

	return m, nil
}

func (p *Proxy) push(k Key, m *Map) {
	p.stack = append(p.stack, p.scope)
	p.path = append(p.path, k)
	p.scope = m

	if p.tracing {
		p.logger.Trace("scope push",
			slog.String("scope", p.scopePath()),
			slog.Int("depth", len(p.stack)),
		)
	}
}

func (p *Proxy) pop() {
	n := len(p.stack) - 1

	if p.tracing {
		p.logger.Trace("scope pop",
			slog.String("scope", p.scopePath()),
			slog.Int("depth", n),
		)
	}

	p.scope = p.stack[n]
	p.stack[n] = nil
	p.stack = p.stack[:n]
	p.path = p.path[:n]
}

func (p *Proxy) scopePath() string {
	if len(p.path) == 0 {
		return "."
	}

	names := make([]string, len(p.path))
	for i, k := range p.path {
		names[i] = k.Name
	}

	return strings.Join(names, ".")
}

// blockOf returns the first block in args. A block is a func() error or a
// func().
func blockOf(args []any) (func() error, bool, error) {
	for _, a := range args {
		switch fn := a.(type) {
		case func() error:
			if fn == nil {
				return nil, false, ErrInvalidArgument.With(
					slog.String("issue", "nil block"))
			}

			return fn, true, nil

		case func():
			if fn == nil {
				return nil, false, ErrInvalidArgument.With(
					slog.String("issue", "nil block"))
			}

			return func() error {
				fn()

				return nil
			}, true, nil
		}
	}

	return nil, false, nil
}
