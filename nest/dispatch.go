package nest

import (
	"log/slog"
	"strings"
)

// Names of the operations reserved by [Proxy.Call].
const (
	OpKey      = "key!"
	OpHash     = "hash!"
	OpAry      = "ary!"
	OpArray    = "array!"
	OpEntry    = "entry!"
	OpDig      = "dig!"
	OpLocalDig = "local_dig!"
	OpHasKey   = "key?"
	OpLocalKey = "local_key?"
)

// Reserved reports whether name is reserved for proxy operations, that is,
// whether it ends in '?' or '!'.
func Reserved(name string) bool {
	return strings.HasSuffix(name, "?") || strings.HasSuffix(name, "!")
}

// Call dispatches name the way a dynamic front end would call a method on
// the proxy.
//
// A reserved name must be one of the Op* operations; any other reserved name
// fails with [ErrUnknownOperation]. Every other name is an assignment handled
// by [Proxy.Key], after one trailing '=' is removed.
//
// Results by operation:
//
//	key!, hash!, ary!, array!, assignment  the root *Map
//	entry!                                 the detached *Map
//	dig!, local_dig!                       the value found, or nil
//	key?, local_key?                       a bool
//
// Block arguments are a func() error or func() for key! and hash!, a
// func(*Seq) error or func(*Seq) for ary!, and a func(*Proxy) error or
// func(*Proxy) for entry!.
func (p *Proxy) Call(name string, args ...any) (any, error) {
	if !Reserved(name) {
		return p.Key(name, args...)
	}

	switch name {
	case OpKey:
		key, rest, err := nameArg(name, args)
		if err != nil {
			return nil, err
		}

		return p.Key(key, rest...)

	case OpHash:
		key, rest, err := nameArg(name, args)
		if err != nil {
			return nil, err
		}

		body, ok, err := blockOf(rest)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, invalidArg(name, "missing block")
		}

		if err := p.Hash(key, body); err != nil {
			return nil, err
		}

		return p.root, nil

	case OpAry, OpArray:
		key, rest, err := nameArg(name, args)
		if err != nil {
			return nil, err
		}

		body, err := seqBlockOf(name, rest)
		if err != nil {
			return nil, err
		}

		if err := p.Array(key, body); err != nil {
			return nil, err
		}

		return p.root, nil

	case OpEntry:
		body, err := entryBlockOf(name, args)
		if err != nil {
			return nil, err
		}

		return p.Entry(body)

	case OpDig:
		v, _ := p.Dig(args...)

		return v, nil

	case OpLocalDig:
		v, _ := p.LocalDig(args...)

		return v, nil

	case OpHasKey:
		return p.Has(args...), nil

	case OpLocalKey:
		return p.LocalHas(args...), nil
	}

	return nil, ErrUnknownOperation.With(slog.String("operation", name))
}

func invalidArg(op, issue string) error {
	return ErrInvalidArgument.With(
		slog.String("operation", op),
		slog.String("issue", issue),
	)
}

// nameArg splits the leading key name from args.
func nameArg(op string, args []any) (string, []any, error) {
	if len(args) == 0 {
		return "", nil, invalidArg(op, "missing key name")
	}

	switch k := args[0].(type) {
	case string:
		return k, args[1:], nil
	case Key:
		return k.Name, args[1:], nil
	default:
		return "", nil, invalidArg(op, "key name must be a string")
	}
}

func seqBlockOf(op string, args []any) (func(*Seq) error, error) {
	if len(args) == 0 {
		return nil, nil //nolint:nilnil
	}

	switch fn := args[0].(type) {
	case func(*Seq) error:
		return fn, nil
	case func(*Seq):
		if fn == nil {
			return nil, nil //nolint:nilnil
		}

		return func(s *Seq) error {
			fn(s)

			return nil
		}, nil
	default:
		return nil, invalidArg(op, "block must be func(*Seq) error")
	}
}

func entryBlockOf(op string, args []any) (func(*Proxy) error, error) {
	if len(args) == 0 {
		return nil, invalidArg(op, "missing block")
	}

	switch fn := args[0].(type) {
	case func(*Proxy) error:
		return fn, nil
	case func(*Proxy):
		if fn == nil {
			return nil, invalidArg(op, "missing block")
		}

		return func(e *Proxy) error {
			fn(e)

			return nil
		}, nil
	default:
		return nil, invalidArg(op, "block must be func(*Proxy) error")
	}
}
