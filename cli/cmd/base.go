package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/nestkit/nest"
)

// LoadBase decodes the YAML document at path into a structure for use as a
// build base. Mapping order is preserved, nested mappings become [nest.Map]
// and sequences become [nest.Seq]. Keys are written in the form selected by
// symbolize. An empty document yields an empty structure.
func LoadBase(ctx context.Context, path string, symbolize bool) (*nest.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrYAMLBase.Wrap(err).With(slog.String("file", path))
	}
	defer f.Close()

	m, err := decodeBase(ctx, f, symbolize)
	if err != nil {
		return nil, ErrYAMLBase.Wrap(err).With(slog.String("file", path))
	}

	return m, nil
}

func decodeBase(ctx context.Context, r io.Reader, symbolize bool) (*nest.Map, error) {
	var doc any

	err := yaml.NewDecoder(r, yaml.UseOrderedMap()).DecodeContext(ctx, &doc)
	if err != nil && err != io.EOF { //nolint:errorlint
		return nil, err
	}

	switch t := fromYAML(doc, symbolize).(type) {
	case nil:
		return nest.NewMap(), nil

	case *nest.Map:
		return t, nil

	default:
		return nil, fmt.Errorf("document is a %s, not a mapping", nest.KindOf(t))
	}
}

func fromYAML(v any, symbolize bool) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := nest.NewMap()
		for _, item := range t {
			m.Set(nest.Key{
				Name:   fmt.Sprint(item.Key),
				Symbol: symbolize,
			}, fromYAML(item.Value, symbolize))
		}

		return m

	case map[string]any:
		m := nest.NewMap()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			m.Set(nest.Key{Name: k, Symbol: symbolize}, fromYAML(t[k], symbolize))
		}

		return m

	case []any:
		s := nest.NewSeq()
		for _, v := range t {
			s.Push(fromYAML(v, symbolize))
		}

		return s

	default:
		return v
	}
}
