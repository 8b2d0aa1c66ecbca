package script

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/nestkit/nest"
)

// Format writes m to w as script source that evaluates back to an equal
// structure.
//
// With indent > 0 each statement is written on its own line and nested
// blocks are indented by that many spaces. With indent == 0 the output is a
// single line.
//
// Key form is not written; it is chosen again by [WithSymbolize] when the
// output is evaluated. Native Go maps and slices stored as scalars are
// written as blocks and arrays, so they come back as [nest.Map] and
// [nest.Seq].
func Format(w io.Writer, m *nest.Map, indent int) error {
	f := &formatter{indent: indent}

	f.statements(m, 0)

	if indent > 0 && m.Len() > 0 {
		f.b.WriteByte('\n')
	}

	if f.err != nil {
		return f.err
	}

	_, err := io.WriteString(w, f.b.String())

	return err
}

type formatter struct {
	b      strings.Builder
	indent int
	err    error
}

func (f *formatter) statements(m *nest.Map, depth int) {
	n := 0
	for k, v := range m.All() {
		if n > 0 {
			if f.indent > 0 {
				f.b.WriteByte('\n')
			} else {
				f.b.WriteString("; ")
			}
		}

		f.pad(depth)
		f.b.WriteString(formatName(k.Name))
		f.b.WriteString(": ")
		f.value(v, depth)

		n++
	}
}

func (f *formatter) value(v any, depth int) {
	switch t := v.(type) {
	case *nest.Map:
		if t == nil {
			f.b.WriteString("nil")

			return
		}

		f.block(t, depth)

	case *nest.Seq:
		if t == nil {
			f.b.WriteString("nil")

			return
		}

		f.array(slices.Collect(t.Values()), depth)

	case []any:
		f.array(t, depth)

	case map[string]any:
		m := nest.NewMap()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			m.Set(nest.Text(k), t[k])
		}

		f.block(m, depth)

	default:
		s, err := formatScalar(v)
		if err != nil && f.err == nil {
			f.err = err
		}

		f.b.WriteString(s)
	}
}

func (f *formatter) block(m *nest.Map, depth int) {
	if m.Len() == 0 {
		f.b.WriteString("{}")

		return
	}

	f.b.WriteByte('{')

	if f.indent > 0 {
		f.b.WriteByte('\n')
		f.statements(m, depth+1)
		f.b.WriteByte('\n')
		f.pad(depth)
	} else {
		f.b.WriteByte(' ')
		f.statements(m, depth+1)
		f.b.WriteByte(' ')
	}

	f.b.WriteByte('}')
}

func (f *formatter) array(items []any, depth int) {
	if len(items) == 0 {
		f.b.WriteString("[]")

		return
	}

	f.b.WriteByte('[')

	for i, v := range items {
		if i > 0 {
			f.b.WriteByte(',')
		}

		if f.indent > 0 {
			f.b.WriteByte('\n')
			f.pad(depth + 1)
		} else if i > 0 {
			f.b.WriteByte(' ')
		}

		f.value(v, depth+1)
	}

	if f.indent > 0 {
		f.b.WriteByte('\n')
		f.pad(depth)
	}

	f.b.WriteByte(']')
}

func (f *formatter) pad(depth int) {
	if f.indent > 0 {
		f.b.WriteString(strings.Repeat(" ", depth*f.indent))
	}
}

// formatName writes name bare when it parses back as an identifier, and
// quoted otherwise.
func formatName(name string) string {
	if name == "" || name == "if" || name == "else" {
		return strconv.Quote(name)
	}

	p := newParser(name)
	if !isIdentifierStart(p.peek()) {
		return strconv.Quote(name)
	}

	if p.parseIdentifier(); !p.eof() {
		return strconv.Quote(name)
	}

	return name
}

// formatScalar renders v as an expression literal. Values with no literal
// form other than NaN and infinities are written as quoted strings.
func formatScalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "nil", nil

	case string:
		return strconv.Quote(t), nil

	case bool:
		return strconv.FormatBool(t), nil

	case fmt.Stringer:
		return strconv.Quote(t.String()), nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "nil", ErrFormat.With(slog.Float64("value", f))
		}

		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}

		return s, nil

	default:
		return strconv.Quote(fmt.Sprint(v)), nil
	}
}
