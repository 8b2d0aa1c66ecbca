package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/nestkit/nest"
	"github.com/ardnew/nestkit/script"
)

// object is an insertion-ordered rendering of a [nest.Map].
type object []member

type member struct {
	key   string
	value any
}

// MarshalJSON implements json.Marshaler, keeping member order.
func (o object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}

		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}

		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}

	b.WriteByte('}')

	return b.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler, keeping member order.
func (o object) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, len(o))
	for i, m := range o {
		ms[i] = yaml.MapItem{Key: m.key, Value: m.value}
	}

	return ms, nil
}

// document converts v into values the JSON and YAML encoders understand.
// Maps become objects in insertion order, native maps in key order, and
// sequences become slices.
func document(v any) any {
	switch t := v.(type) {
	case *nest.Map:
		if t == nil {
			return nil
		}

		o := make(object, 0, t.Len())
		for k, v := range t.All() {
			o = append(o, member{key: k.Name, value: document(v)})
		}

		return o

	case *nest.Seq:
		if t == nil {
			return nil
		}

		s := make([]any, 0, t.Len())
		for v := range t.Values() {
			s = append(s, document(v))
		}

		return s

	case map[string]any:
		o := make(object, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			o = append(o, member{key: k, value: document(t[k])})
		}

		return o

	case []any:
		s := make([]any, len(t))
		for i, v := range t {
			s[i] = document(v)
		}

		return s

	case fmt.Stringer:
		return t.String()

	default:
		return v
	}
}

// renderNative writes v in script syntax. A structure is written as
// statements; any other value as a single literal line.
func renderNative(w io.Writer, v any, indent int) error {
	m, ok := v.(*nest.Map)
	if !ok {
		_, err := fmt.Fprintln(w, nest.Format(v))

		return err
	}

	if err := script.Format(w, m, indent); err != nil {
		return err
	}

	if indent == 0 && m.Len() > 0 {
		_, err := fmt.Fprintln(w)

		return err
	}

	return nil
}

// renderJSON writes v as JSON, indented when indent > 0.
func renderJSON(w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(document(v), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(document(v))
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// renderYAML writes v as YAML, in flow style when indent is 0.
func renderYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, document(v), opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}
