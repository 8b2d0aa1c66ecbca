package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nestkit/log"
	"github.com/ardnew/nestkit/nest"
	"github.com/ardnew/nestkit/profile"
	"github.com/ardnew/nestkit/script"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.With(slog.String("issue", "no command context"))
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	m, err := i.buildConfig(ktx)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	err = script.Format(file, m, defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flags", configLen(m)),
	)

	return nil
}

// buildConfig builds a structure holding a single config block with the
// value of every visible flag.
func (i *Init) buildConfig(ktx *kong.Context) (*nest.Map, error) {
	prefixIgnore := []string{"help", profile.Tag}

	return nest.Build(func(p *nest.Proxy) error {
		return p.Hash(ConfigIdentifier, func() error {
			for _, flag := range ktx.Model.Flags {
				if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
					return strings.HasPrefix(flag.Name, s)
				}) {
					continue
				}

				if v, ok := flagValue(ktx.FlagValue(flag)); ok {
					p.Set(flag.Name, v)
				}
			}

			return nil
		})
	})
}

// flagValue converts a parsed flag value into a structure value. Empty
// strings and empty lists are omitted.
func flagValue(val any) (any, bool) {
	if val == nil {
		return nil, false
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true

	case reflect.String:
		if rv.Len() == 0 {
			return nil, false
		}

		return rv.String(), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return rv.Uint(), true

	case reflect.Float32, reflect.Float64:
		return rv.Float(), true

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil, false
		}

		s := nest.NewSeq()
		for i := range rv.Len() {
			if v, ok := flagValue(rv.Index(i).Interface()); ok {
				s.Push(v)
			}
		}

		return s, true

	default:
		return fmt.Sprint(val), true
	}
}

func configLen(m *nest.Map) int {
	v, _ := m.Get(nest.Sym(ConfigIdentifier))
	if c, ok := v.(*nest.Map); ok {
		return c.Len()
	}

	return 0
}
